package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/places-finder/internal/config"
	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/domain/repository"
	"github.com/places-finder/internal/location"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"go.uber.org/zap"
)

// PositionWatcher - позиционирование устройства через Redis Stream.
// Шлюз устройства публикует PositionEvent в поле "data".
type PositionWatcher struct {
	streams      repository.StreamRepository
	stream       string
	group        string
	consumerName string
	enabled      bool
	logger       *zap.Logger
}

var _ location.Watcher = (*PositionWatcher)(nil)

// NewPositionWatcher создает watcher для потока позиций
func NewPositionWatcher(
	streams repository.StreamRepository,
	cfg *config.PositioningConfig,
	logger *zap.Logger,
) *PositionWatcher {
	hostname, _ := os.Hostname()

	return &PositionWatcher{
		streams:      streams,
		stream:       cfg.Stream,
		group:        cfg.ConsumerGroup,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		enabled:      cfg.Enabled && cfg.Stream != "",
		logger:       logger,
	}
}

// Available сообщает, настроен ли поток позиций
func (w *PositionWatcher) Available() bool {
	return w.enabled
}

// Watch подписывается на поток. Сообщения подтверждаются после обработки.
func (w *PositionWatcher) Watch(
	ctx context.Context,
	onPosition func(location.Position),
	onError func(error),
) (func(), error) {
	if !w.enabled {
		return nil, apperrors.ErrLocationUnavailable.Wrap(fmt.Errorf("position stream disabled"))
	}

	if err := w.streams.CreateConsumerGroup(ctx, w.stream, w.group); err != nil {
		return nil, apperrors.ErrLocationUnavailable.Wrap(err)
	}

	watchCtx, cancel := context.WithCancel(ctx)

	messages, err := w.streams.ConsumeStream(watchCtx, w.stream, w.group, w.consumerName)
	if err != nil {
		cancel()
		return nil, apperrors.ErrLocationUnavailable.Wrap(err)
	}

	w.logger.Info("Watching position stream",
		zap.String("stream", w.stream),
		zap.String("group", w.group),
		zap.String("consumer", w.consumerName))

	go func() {
		for msg := range messages {
			w.dispatch(msg, onPosition, onError)

			// после остановки сообщение остается в pending группы
			if watchCtx.Err() != nil {
				w.logger.Debug("Watch stopped, message left unacknowledged",
					zap.String("message_id", msg.ID))
				continue
			}
			// ACK даже битых сообщений, чтобы они не застревали
			if err := w.streams.AckMessage(watchCtx, w.stream, w.group, msg.ID); err != nil {
				w.logger.Debug("Position message left unacknowledged",
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
		}
	}()

	return cancel, nil
}

func (w *PositionWatcher) dispatch(
	msg domain.StreamMessage,
	onPosition func(location.Position),
	onError func(error),
) {
	var event domain.PositionEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		w.logger.Warn("Failed to parse position message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return
	}

	if event.IsFailure() {
		reason := event.Error
		if reason == "" {
			reason = "incomplete coordinates"
		}
		onError(apperrors.ErrLocationUnavailable.WithDetails(map[string]interface{}{"reason": reason}))
		return
	}

	if !domain.ValidCoordinates(*event.Latitude, *event.Longitude) {
		onError(apperrors.ErrLocationUnavailable.WithDetails(map[string]interface{}{"reason": "coordinates out of range"}))
		return
	}

	onPosition(location.Position{Latitude: *event.Latitude, Longitude: *event.Longitude})
}
