package repository

import "context"

// KVStore - долговременное хранилище ключ-значение
type KVStore interface {
	// Get возвращает nil, nil если ключ отсутствует
	Get(ctx context.Context, key string) ([]byte, error)

	// Put сохраняет значение без срока жизни
	Put(ctx context.Context, key string, value []byte) error

	// Delete удаляет ключ
	Delete(ctx context.Context, key string) error
}
