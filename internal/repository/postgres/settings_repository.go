package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/places-finder/internal/domain/repository"
	"go.uber.org/zap"
)

const settingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type settingsRepository struct {
	db *DB
}

// NewSettingsRepository создает хранилище ключ-значение в таблице settings
func NewSettingsRepository(db *DB) repository.KVStore {
	return &settingsRepository{db: db}
}

// EnsureSchema создает таблицу settings, если ее нет
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, settingsSchema); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.db.logger.Error("Failed to get setting", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func (r *settingsRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		r.db.logger.Error("Failed to put setting", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("put setting %s: %w", key, err)
	}

	r.db.logger.Debug("Setting stored", zap.String("key", key))
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key); err != nil {
		r.db.logger.Error("Failed to delete setting", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}
