package repository

import (
	"context"

	"github.com/places-finder/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams.
// Используется потоком позиций устройства и скриптом публикации.
type StreamRepository interface {
	// ConsumeStream читает новые сообщения группы до отмены ctx
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует data как JSON в поле "data"
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
