package location

import (
	"context"
	"sync"

	"github.com/places-finder/internal/domain"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"go.uber.org/zap"
)

// Listener получает каждую смену локации. err != nil только для уведомления
// о недоступности позиционирования, loc при этом - последняя известная локация.
type Listener func(loc domain.Location, err error)

// Options - начальные параметры провайдера
type Options struct {
	// Initial - координаты ручного режима, если позиционирование недоступно
	Initial domain.Location
	// PreferManual - стартовать в ручном режиме даже при доступном позиционировании
	PreferManual bool
}

type subscriber struct {
	id       uint64
	listener Listener
}

// Provider владеет текущей локацией и режимом, переключает режимы и оповещает подписчиков
type Provider struct {
	watcher Watcher
	logger  *zap.Logger

	mu          sync.Mutex
	location    domain.Location
	subscribers []subscriber
	nextSubID   uint64

	// активное наблюдение
	watchCtx    context.Context
	stopWatch   func()
	cancelWatch context.CancelFunc
	watchGen    uint64
	watching    bool
	failed      bool
	watchStarts int
}

// NewProvider создает провайдер. Начальный режим Automatic, если позиционирование
// доступно, иначе Manual с opts.Initial.
func NewProvider(watcher Watcher, opts Options, logger *zap.Logger) *Provider {
	initial := domain.Location{
		Latitude:  opts.Initial.Latitude,
		Longitude: opts.Initial.Longitude,
		Mode:      domain.Manual,
	}
	if watcher != nil && watcher.Available() && !opts.PreferManual {
		initial.Mode = domain.Automatic
	}

	return &Provider{
		watcher:  watcher,
		logger:   logger,
		location: initial,
	}
}

// Start запускает наблюдение, если провайдер в автоматическом режиме
func (p *Provider) Start(ctx context.Context) {
	p.mu.Lock()
	p.watchCtx = ctx
	automatic := p.location.Mode == domain.Automatic
	p.mu.Unlock()

	p.logger.Info("Location provider started",
		zap.String("mode", p.Get().Mode.String()))

	if automatic {
		p.SwitchToAutomaticMode(ctx)
	}
}

// Stop останавливает активное наблюдение
func (p *Provider) Stop() {
	p.mu.Lock()
	stop := p.detachWatchLocked()
	p.mu.Unlock()

	if stop != nil {
		stop()
	}
	p.logger.Info("Location provider stopped")
}

// Get возвращает снимок текущей локации
func (p *Provider) Get() domain.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location
}

// OnChange регистрирует подписчика и возвращает функцию отписки
func (p *Provider) OnChange(listener Listener) (unsubscribe func()) {
	p.mu.Lock()
	p.nextSubID++
	id := p.nextSubID
	p.subscribers = append(p.subscribers, subscriber{id: id, listener: listener})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, s := range p.subscribers {
				if s.id == id {
					p.subscribers = append(p.subscribers[:i:i], p.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// SwitchToAutomaticMode переводит провайдер в автоматический режим и запускает
// наблюдение, если оно еще не запущено. Ошибки позиционирования не возвращаются.
func (p *Provider) SwitchToAutomaticMode(ctx context.Context) {
	p.mu.Lock()
	if p.watching {
		p.mu.Unlock()
		return
	}

	modeChanged := p.location.Mode != domain.Automatic
	p.location.Mode = domain.Automatic
	p.failed = false
	p.watching = true
	p.watchGen++
	p.watchStarts++
	gen := p.watchGen

	parent := ctx
	if p.watchCtx != nil {
		parent = p.watchCtx
	}
	watchCtx, cancel := context.WithCancel(parent)
	p.cancelWatch = cancel
	snapshot := p.location
	p.mu.Unlock()

	if modeChanged {
		p.notify(snapshot, nil)
	}

	if p.watcher == nil {
		p.abortWatch(gen, apperrors.ErrLocationUnavailable)
		return
	}

	p.logger.Debug("Starting position watch", zap.Uint64("generation", gen))

	stop, err := p.watcher.Watch(
		watchCtx,
		func(pos Position) { p.handlePosition(gen, pos) },
		func(err error) { p.handleFailure(gen, err) },
	)
	if err != nil {
		p.logger.Warn("Failed to start position watch", zap.Error(err))
		p.abortWatch(gen, err)
		return
	}

	p.mu.Lock()
	if p.watchGen != gen || !p.watching {
		// режим сменился, пока наблюдение запускалось
		p.mu.Unlock()
		stop()
		return
	}
	p.stopWatch = stop
	p.mu.Unlock()
}

// SwitchToManualMode останавливает наблюдение и синхронно устанавливает локацию.
// Подписчики оповещаются до возврата.
func (p *Provider) SwitchToManualMode(lat, lng float64) {
	p.mu.Lock()
	stop := p.detachWatchLocked()
	p.location = domain.Location{Latitude: lat, Longitude: lng, Mode: domain.Manual}
	p.failed = false
	snapshot := p.location
	p.mu.Unlock()

	if stop != nil {
		stop()
	}

	p.logger.Info("Switched to manual location",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng))

	p.notify(snapshot, nil)
}

// WatchStarts - сколько раз запускалось наблюдение
func (p *Provider) WatchStarts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.watchStarts
}

func (p *Provider) handlePosition(gen uint64, pos Position) {
	p.mu.Lock()
	if gen != p.watchGen || !p.watching {
		p.mu.Unlock()
		return
	}
	p.location = domain.Location{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Mode:      domain.Automatic,
	}
	p.failed = false
	snapshot := p.location
	p.mu.Unlock()

	p.logger.Debug("Position updated",
		zap.Float64("lat", pos.Latitude),
		zap.Float64("lng", pos.Longitude))

	p.notify(snapshot, nil)
}

func (p *Provider) handleFailure(gen uint64, cause error) {
	p.mu.Lock()
	if gen != p.watchGen || !p.watching || p.failed {
		p.mu.Unlock()
		return
	}
	p.failed = true
	snapshot := p.location
	p.mu.Unlock()

	err := cause
	if _, ok := apperrors.As(cause); !ok {
		err = apperrors.ErrLocationUnavailable.Wrap(cause)
	}

	p.logger.Warn("Location unavailable, keeping last known location",
		zap.Float64("lat", snapshot.Latitude),
		zap.Float64("lng", snapshot.Longitude),
		zap.Error(err))

	p.notify(snapshot, err)
}

// abortWatch сообщает об отказе и снимает незапущенное наблюдение, чтобы следующий
// вызов SwitchToAutomaticMode мог попробовать снова. Режим остается Automatic.
func (p *Provider) abortWatch(gen uint64, cause error) {
	p.handleFailure(gen, cause)

	p.mu.Lock()
	var cancel context.CancelFunc
	if p.watchGen == gen && p.watching {
		p.watching = false
		cancel = p.cancelWatch
		p.cancelWatch = nil
	}
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// detachWatchLocked снимает активное наблюдение; вызывать под p.mu
func (p *Provider) detachWatchLocked() func() {
	if !p.watching {
		return nil
	}
	p.watching = false
	p.watchGen++

	stop := p.stopWatch
	cancel := p.cancelWatch
	p.stopWatch = nil
	p.cancelWatch = nil

	return func() {
		if stop != nil {
			stop()
		}
		if cancel != nil {
			cancel()
		}
	}
}

func (p *Provider) notify(loc domain.Location, err error) {
	p.mu.Lock()
	subs := make([]subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	for _, s := range subs {
		s.listener(loc, err)
	}
}
