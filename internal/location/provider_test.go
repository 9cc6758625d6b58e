package location

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-finder/internal/domain"
	apperrors "github.com/places-finder/internal/pkg/errors"
)

// stubWatcher позволяет тестам вручную отправлять позиции и ошибки
type stubWatcher struct {
	mu         sync.Mutex
	available  bool
	startErr   error
	starts     int
	stops      int
	onPosition func(Position)
	onError    func(error)
}

func (w *stubWatcher) Available() bool {
	return w.available
}

func (w *stubWatcher) Watch(ctx context.Context, onPosition func(Position), onError func(error)) (func(), error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.startErr != nil {
		return nil, w.startErr
	}
	w.starts++
	w.onPosition = onPosition
	w.onError = onError
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.stops++
	}, nil
}

func (w *stubWatcher) emit(lat, lng float64) {
	w.mu.Lock()
	cb := w.onPosition
	w.mu.Unlock()
	cb(Position{Latitude: lat, Longitude: lng})
}

func (w *stubWatcher) fail(err error) {
	w.mu.Lock()
	cb := w.onError
	w.mu.Unlock()
	cb(err)
}

type event struct {
	loc domain.Location
	err error
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) listen(loc domain.Location, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{loc: loc, err: err})
}

func (r *recorder) all() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) failures() int {
	n := 0
	for _, e := range r.all() {
		if e.err != nil {
			n++
		}
	}
	return n
}

var defaultOpts = Options{Initial: domain.Location{Latitude: 52.520008, Longitude: 13.404954}}

func TestNewProvider_InitialMode(t *testing.T) {
	logger := zap.NewNop()

	t.Run("automatic when positioning available", func(t *testing.T) {
		p := NewProvider(&stubWatcher{available: true}, defaultOpts, logger)
		assert.Equal(t, domain.Automatic, p.Get().Mode)
	})

	t.Run("manual when positioning unavailable", func(t *testing.T) {
		p := NewProvider(&stubWatcher{available: false}, defaultOpts, logger)
		assert.Equal(t, domain.Location{Latitude: 52.520008, Longitude: 13.404954, Mode: domain.Manual}, p.Get())
	})

	t.Run("manual without watcher", func(t *testing.T) {
		p := NewProvider(nil, defaultOpts, logger)
		assert.Equal(t, domain.Manual, p.Get().Mode)
	})

	t.Run("manual when persisted manual location preferred", func(t *testing.T) {
		opts := Options{Initial: domain.Location{Latitude: 1, Longitude: 2}, PreferManual: true}
		p := NewProvider(&stubWatcher{available: true}, opts, logger)
		assert.Equal(t, domain.Location{Latitude: 1, Longitude: 2, Mode: domain.Manual}, p.Get())
	})
}

func TestProvider_StartBeginsWatchInAutomaticMode(t *testing.T) {
	w := &stubWatcher{available: true}
	p := NewProvider(w, defaultOpts, zap.NewNop())

	p.Start(context.Background())
	defer p.Stop()

	assert.Equal(t, 1, w.starts)

	rec := &recorder{}
	p.OnChange(rec.listen)
	w.emit(48.85, 2.35)

	assert.Equal(t, domain.Location{Latitude: 48.85, Longitude: 2.35, Mode: domain.Automatic}, p.Get())
	require.Len(t, rec.all(), 1)
	assert.NoError(t, rec.all()[0].err)
}

func TestProvider_StartInManualModeDoesNotWatch(t *testing.T) {
	w := &stubWatcher{available: false}
	p := NewProvider(w, defaultOpts, zap.NewNop())

	p.Start(context.Background())
	defer p.Stop()

	assert.Equal(t, 0, w.starts)
}

func TestProvider_SwitchToAutomaticModeIsIdempotent(t *testing.T) {
	w := &stubWatcher{available: true}
	p := NewProvider(w, defaultOpts, zap.NewNop())
	ctx := context.Background()

	p.SwitchToAutomaticMode(ctx)
	p.SwitchToAutomaticMode(ctx)

	assert.Equal(t, 1, w.starts)
	assert.Equal(t, 1, p.WatchStarts())
}

func TestProvider_SwitchToManualModeIsSynchronous(t *testing.T) {
	w := &stubWatcher{available: true}
	p := NewProvider(w, defaultOpts, zap.NewNop())

	var seenInsideCallback domain.Location
	p.OnChange(func(loc domain.Location, err error) {
		seenInsideCallback = loc
	})

	p.SwitchToManualMode(52.5, 13.4)

	expected := domain.Location{Latitude: 52.5, Longitude: 13.4, Mode: domain.Manual}
	assert.Equal(t, expected, p.Get())
	// подписчик вызван до возврата
	assert.Equal(t, expected, seenInsideCallback)
}

func TestProvider_SwitchToManualModeStopsWatch(t *testing.T) {
	w := &stubWatcher{available: true}
	p := NewProvider(w, defaultOpts, zap.NewNop())
	p.Start(context.Background())

	rec := &recorder{}
	p.OnChange(rec.listen)

	p.SwitchToManualMode(10, 20)
	assert.Equal(t, 1, w.stops)

	// запоздавший колбэк остановленного наблюдения игнорируется
	w.emit(1, 1)
	w.fail(errors.New("late"))

	assert.Equal(t, domain.Location{Latitude: 10, Longitude: 20, Mode: domain.Manual}, p.Get())
	assert.Len(t, rec.all(), 1)
}

func TestProvider_ManualThenAutomaticRestartsWatch(t *testing.T) {
	w := &stubWatcher{available: true}
	p := NewProvider(w, defaultOpts, zap.NewNop())
	ctx := context.Background()
	p.Start(ctx)

	rec := &recorder{}
	p.OnChange(rec.listen)

	p.SwitchToManualMode(10, 20)
	p.SwitchToAutomaticMode(ctx)

	assert.Equal(t, 2, w.starts)
	// смена режима оповещает подписчиков, координаты прежние
	events := rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, domain.Location{Latitude: 10, Longitude: 20, Mode: domain.Automatic}, events[1].loc)

	w.emit(11, 21)
	assert.Equal(t, domain.Location{Latitude: 11, Longitude: 21, Mode: domain.Automatic}, p.Get())
}

func TestProvider_FailureNotifiesOnceAndKeepsLocation(t *testing.T) {
	w := &stubWatcher{available: true}
	p := NewProvider(w, defaultOpts, zap.NewNop())
	p.Start(context.Background())
	defer p.Stop()

	rec := &recorder{}
	p.OnChange(rec.listen)

	w.emit(40.4, -3.7)
	w.fail(errors.New("permission denied"))
	w.fail(errors.New("permission denied"))
	w.fail(errors.New("signal lost"))

	assert.Equal(t, 1, rec.failures())
	assert.Equal(t, domain.Location{Latitude: 40.4, Longitude: -3.7, Mode: domain.Automatic}, p.Get())

	events := rec.all()
	last := events[len(events)-1]
	assert.ErrorIs(t, last.err, apperrors.ErrLocationUnavailable)
	assert.Equal(t, p.Get(), last.loc)

	// после успешной позиции новый сбой снова оповещается
	w.emit(40.5, -3.6)
	w.fail(errors.New("signal lost"))
	assert.Equal(t, 2, rec.failures())
}

func TestProvider_WatchStartErrorIsSoft(t *testing.T) {
	w := &stubWatcher{available: true, startErr: errors.New("no gps")}
	p := NewProvider(w, defaultOpts, zap.NewNop())

	rec := &recorder{}
	p.OnChange(rec.listen)

	assert.NotPanics(t, func() { p.Start(context.Background()) })
	assert.Equal(t, 1, rec.failures())
	assert.Equal(t, domain.Automatic, p.Get().Mode)

	// повторный вызов может попробовать снова
	w.mu.Lock()
	w.startErr = nil
	w.mu.Unlock()
	p.SwitchToAutomaticMode(context.Background())
	assert.Equal(t, 1, w.starts)
}

func TestProvider_Unsubscribe(t *testing.T) {
	p := NewProvider(nil, defaultOpts, zap.NewNop())

	first := &recorder{}
	second := &recorder{}
	unsubscribe := p.OnChange(first.listen)
	p.OnChange(second.listen)

	p.SwitchToManualMode(1, 1)
	unsubscribe()
	unsubscribe()
	p.SwitchToManualMode(2, 2)

	assert.Len(t, first.all(), 1)
	assert.Len(t, second.all(), 2)
}

func TestProvider_SubscribersNotifiedInOrder(t *testing.T) {
	p := NewProvider(nil, defaultOpts, zap.NewNop())

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		p.OnChange(func(domain.Location, error) { order = append(order, i) })
	}

	p.SwitchToManualMode(1, 1)
	assert.Equal(t, []int{0, 1, 2}, order)
}
