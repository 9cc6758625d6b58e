package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/places-finder/internal/config"
	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/location"
	"github.com/places-finder/internal/domain/repository"
	apperrors "github.com/places-finder/internal/pkg/errors"
	redisRepo "github.com/places-finder/internal/repository/redis"
)

type positionRecorder struct {
	mu        sync.Mutex
	positions []location.Position
	errs      []error
}

func (r *positionRecorder) onPosition(p location.Position) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions = append(r.positions, p)
}

func (r *positionRecorder) onError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *positionRecorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.positions), len(r.errs)
}

func positioningConfig(enabled bool) *config.PositioningConfig {
	return &config.PositioningConfig{
		Enabled:       enabled,
		Stream:        testStream,
		ConsumerGroup: testGroup,
	}
}

func TestPositionWatcher_Available(t *testing.T) {
	client, _ := newTestClient(t)
	streams := redisRepo.NewStreamRepository(client, zap.NewNop())

	assert.True(t, redisRepo.NewPositionWatcher(streams, positioningConfig(true), zap.NewNop()).Available())
	assert.False(t, redisRepo.NewPositionWatcher(streams, positioningConfig(false), zap.NewNop()).Available())
}

func TestPositionWatcher_WatchDisabled(t *testing.T) {
	client, _ := newTestClient(t)
	streams := redisRepo.NewStreamRepository(client, zap.NewNop())
	watcher := redisRepo.NewPositionWatcher(streams, positioningConfig(false), zap.NewNop())

	rec := &positionRecorder{}
	stop, err := watcher.Watch(context.Background(), rec.onPosition, rec.onError)

	assert.Nil(t, stop)
	assert.True(t, errors.Is(err, apperrors.ErrLocationUnavailable))
}

func TestPositionWatcher_DeliversPositionsAndFailures(t *testing.T) {
	client, _ := newTestClient(t)
	streams := redisRepo.NewStreamRepository(client, zap.NewNop())
	watcher := redisRepo.NewPositionWatcher(streams, positioningConfig(true), zap.NewNop())
	ctx := context.Background()

	rec := &positionRecorder{}
	stop, err := watcher.Watch(ctx, rec.onPosition, rec.onError)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, streams.PublishToStream(ctx, testStream,
		domain.PositionEvent{Latitude: floatPtr(48.85), Longitude: floatPtr(2.35)}))
	require.NoError(t, streams.PublishToStream(ctx, testStream,
		domain.PositionEvent{Error: domain.PositionErrorPermissionDenied}))
	require.NoError(t, streams.PublishToStream(ctx, testStream,
		domain.PositionEvent{Latitude: floatPtr(120), Longitude: floatPtr(2.35)}))
	// Битое сообщение пропускается
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: testStream,
		Values: map[string]interface{}{"data": "{not json"},
	}).Err())

	require.Eventually(t, func() bool {
		positions, errs := rec.counts()
		return positions == 1 && errs == 2
	}, 5*time.Second, 20*time.Millisecond)

	rec.mu.Lock()
	assert.Equal(t, location.Position{Latitude: 48.85, Longitude: 2.35}, rec.positions[0])
	for _, e := range rec.errs {
		assert.True(t, errors.Is(e, apperrors.ErrLocationUnavailable))
	}
	rec.mu.Unlock()

	require.Eventually(t, func() bool {
		pending, err := client.XPending(ctx, testStream, testGroup).Result()
		return err == nil && pending.Count == 0
	}, 5*time.Second, 20*time.Millisecond, "all messages should be acknowledged")
}

func TestPositionWatcher_StopEndsDelivery(t *testing.T) {
	client, _ := newTestClient(t)
	streams := redisRepo.NewStreamRepository(client, zap.NewNop())
	watcher := redisRepo.NewPositionWatcher(streams, positioningConfig(true), zap.NewNop())
	ctx := context.Background()

	rec := &positionRecorder{}
	stop, err := watcher.Watch(ctx, rec.onPosition, rec.onError)
	require.NoError(t, err)

	stop()
	// Читатель завершается после текущего блокирующего чтения
	time.Sleep(1500 * time.Millisecond)

	require.NoError(t, streams.PublishToStream(ctx, testStream,
		domain.PositionEvent{Latitude: floatPtr(1), Longitude: floatPtr(1)}))

	time.Sleep(300 * time.Millisecond)
	positions, errs := rec.counts()
	assert.Zero(t, positions)
	assert.Zero(t, errs)
}

// ackCounter считает подтверждения поверх настоящего репозитория
type ackCounter struct {
	repository.StreamRepository
	mu    sync.Mutex
	acked []string
}

func (c *ackCounter) AckMessage(ctx context.Context, stream, group, messageID string) error {
	c.mu.Lock()
	c.acked = append(c.acked, messageID)
	c.mu.Unlock()
	return c.StreamRepository.AckMessage(ctx, stream, group, messageID)
}

func (c *ackCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.acked)
}

func TestPositionWatcher_StopDuringDispatchSkipsAck(t *testing.T) {
	client, _ := newTestClient(t)
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	streams := &ackCounter{StreamRepository: redisRepo.NewStreamRepository(client, logger)}
	watcher := redisRepo.NewPositionWatcher(streams, positioningConfig(true), logger)
	ctx := context.Background()

	stopFn := make(chan func(), 1)
	dispatched := make(chan struct{})
	var once sync.Once
	onPosition := func(location.Position) {
		once.Do(func() {
			(<-stopFn)()
			close(dispatched)
		})
	}

	stop, err := watcher.Watch(ctx, onPosition, func(error) {})
	require.NoError(t, err)
	stopFn <- stop

	require.NoError(t, streams.PublishToStream(ctx, testStream,
		domain.PositionEvent{Latitude: floatPtr(10), Longitude: floatPtr(20)}))

	select {
	case <-dispatched:
	case <-time.After(5 * time.Second):
		t.Fatal("position was not dispatched")
	}
	// Читатель завершается после текущего блокирующего чтения
	time.Sleep(1500 * time.Millisecond)

	assert.Zero(t, streams.count())
	assert.Zero(t, logs.Len(), "stop should not produce warnings or errors")

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
}
