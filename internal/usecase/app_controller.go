package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/domain/repository"
	"github.com/places-finder/internal/location"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"github.com/places-finder/internal/telemetry"
	"github.com/places-finder/internal/worker"
	"go.uber.org/zap"
)

const (
	// ControllerName - имя воркера контроллера
	ControllerName = "app-controller"

	eventBufferSize = 64
)

// ErrControllerStopped возвращается операциям, вызванным после остановки цикла
var ErrControllerStopped = errors.New("controller stopped")

// LocationSource - то, что контроллеру нужно от провайдера локации
type LocationSource interface {
	Start(ctx context.Context)
	Stop()
	Get() domain.Location
	OnChange(listener location.Listener) (unsubscribe func())
	SwitchToAutomaticMode(ctx context.Context)
	SwitchToManualMode(lat, lng float64)
}

// ControllerOptions - параметры загрузки мест
type ControllerOptions struct {
	// Margin - полуширина bounding box в градусах
	Margin float64
	// SequenceGuard - применять результат только если он не старше уже примененного.
	// Без него побеждает последний пришедший ответ.
	SequenceGuard bool
}

// State - снимок состояния приложения для отдачи клиенту
type State struct {
	Location      domain.Location
	Filters       domain.FilterSet
	Places        []domain.Place
	LocationError error
	UpdatedAt     time.Time
}

type locationEvent struct {
	location domain.Location
	err      error
}

type filtersEvent struct {
	filters domain.FilterSet
	applied chan struct{}
}

// barrierEvent закрывает applied, когда цикл обработал все события до него
type barrierEvent struct {
	applied chan struct{}
}

type fetchResult struct {
	seq    uint64
	places []domain.Place
}

// AppController держит состояние приложения: локацию, фильтры и список мест.
// Состояние меняет только цикл событий, загрузки мест идут в отдельных горутинах.
type AppController struct {
	*worker.BaseWorker

	provider      LocationSource
	places        repository.PlacesRepository
	filterStore   repository.FilterStore
	locationStore repository.LocationStore
	opts          ControllerOptions
	logger        *zap.Logger

	events  chan interface{}
	ready   chan struct{}
	fetches sync.WaitGroup

	// только для цикла событий
	loopCtx    context.Context
	issuedSeq  uint64
	appliedSeq uint64

	// сериализует чтение-изменение-запись фильтров
	filtersMu sync.Mutex

	mu    sync.RWMutex
	state State
}

var (
	_ worker.Worker  = (*AppController)(nil)
	_ LocationSource = (*location.Provider)(nil)
)

func NewAppController(
	provider LocationSource,
	places repository.PlacesRepository,
	filterStore repository.FilterStore,
	locationStore repository.LocationStore,
	opts ControllerOptions,
	logger *zap.Logger,
) *AppController {
	return &AppController{
		BaseWorker:    worker.NewBaseWorker(ControllerName, logger),
		provider:      provider,
		places:        places,
		filterStore:   filterStore,
		locationStore: locationStore,
		opts:          opts,
		logger:        logger.With(zap.String("component", ControllerName)),
		events:        make(chan interface{}, eventBufferSize),
		ready:         make(chan struct{}),
		state: State{
			Location: provider.Get(),
			Places:   []domain.Place{},
		},
	}
}

// Start загружает фильтры, подписывается на провайдер, запускает первую загрузку
// и крутит цикл событий до Stop или отмены ctx.
func (c *AppController) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.loopCtx = ctx

	filters := c.filterStore.LoadFilters(ctx)

	// подписка до снимка: смена локации между ними придет событием
	unsubscribe := c.provider.OnChange(func(loc domain.Location, err error) {
		c.post(locationEvent{location: loc, err: err})
	})
	defer unsubscribe()

	c.mu.Lock()
	c.state.Filters = filters
	c.state.Location = c.provider.Get()
	c.state.UpdatedAt = time.Now()
	c.mu.Unlock()

	c.provider.Start(ctx)
	defer c.provider.Stop()

	c.logger.Info("Controller started",
		zap.Strings("filters", filters.Strings()),
		zap.String("mode", c.provider.Get().Mode.String()))

	c.issueFetch()
	close(c.ready)

	for {
		select {
		case <-ctx.Done():
			c.shutdown(cancel)
			return nil
		case <-c.StopChan():
			c.shutdown(cancel)
			return nil
		case ev := <-c.events:
			c.handle(ev)
		}
	}
}

func (c *AppController) shutdown(cancel context.CancelFunc) {
	cancel()
	// ожидающие SetFilters получат ErrControllerStopped
	_ = c.BaseWorker.Stop()
	c.fetches.Wait()
	c.logger.Info("Controller stopped")
}

func (c *AppController) handle(ev interface{}) {
	switch e := ev.(type) {
	case locationEvent:
		c.applyLocation(e)
	case filtersEvent:
		c.mu.Lock()
		c.state.Filters = e.filters
		c.state.UpdatedAt = time.Now()
		c.mu.Unlock()
		close(e.applied)
		c.issueFetch()
	case fetchResult:
		c.applyFetch(e)
	case barrierEvent:
		close(e.applied)
	}
}

func (c *AppController) applyLocation(e locationEvent) {
	mode := e.location.Mode.String()

	if e.err != nil {
		telemetry.LocationEvents.WithLabelValues(mode, telemetry.LocationEventFailure).Inc()
		c.logger.Warn("Location unavailable, keeping last known location",
			zap.Float64("lat", e.location.Latitude),
			zap.Float64("lng", e.location.Longitude),
			zap.Error(e.err))

		c.mu.Lock()
		c.state.Location = e.location
		c.state.LocationError = e.err
		c.state.UpdatedAt = time.Now()
		c.mu.Unlock()
		return
	}

	telemetry.LocationEvents.WithLabelValues(mode, telemetry.LocationEventUpdate).Inc()

	c.mu.Lock()
	c.state.Location = e.location
	c.state.LocationError = nil
	c.state.UpdatedAt = time.Now()
	c.mu.Unlock()

	c.issueFetch()
}

// issueFetch запускает загрузку мест для текущих фильтров и локации, не дожидаясь ответа
func (c *AppController) issueFetch() {
	c.issuedSeq++
	seq := c.issuedSeq

	c.mu.RLock()
	filters := c.state.Filters
	loc := c.state.Location
	c.mu.RUnlock()

	ctx := c.loopCtx
	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()

		places := c.places.FetchPlaces(ctx, filters, loc, c.opts.Margin)
		select {
		case c.events <- fetchResult{seq: seq, places: places}:
		case <-ctx.Done():
		}
	}()
}

func (c *AppController) applyFetch(r fetchResult) {
	if c.opts.SequenceGuard && r.seq < c.appliedSeq {
		telemetry.PlacesResults.WithLabelValues(telemetry.OutcomeStale).Inc()
		c.logger.Debug("Dropping stale places result",
			zap.Uint64("seq", r.seq),
			zap.Uint64("applied_seq", c.appliedSeq))
		return
	}
	if r.seq > c.appliedSeq {
		c.appliedSeq = r.seq
	}

	places := r.places
	if places == nil {
		places = []domain.Place{}
	}

	c.mu.Lock()
	c.state.Places = places
	c.state.UpdatedAt = time.Now()
	c.mu.Unlock()

	telemetry.PlacesResults.WithLabelValues(telemetry.OutcomeApplied).Inc()
	telemetry.PlacesCurrent.Set(float64(len(places)))

	c.logger.Debug("Places replaced",
		zap.Uint64("seq", r.seq),
		zap.Int("count", len(places)))
}

// post доставляет событие в цикл, пока он жив
func (c *AppController) post(ev interface{}) bool {
	if c.IsStopped() {
		return false
	}

	var done <-chan struct{}
	if c.loopCtx != nil {
		done = c.loopCtx.Done()
	}

	select {
	case c.events <- ev:
		return true
	case <-c.StopChan():
		return false
	case <-done:
		return false
	}
}

func (c *AppController) waitReady(ctx context.Context) error {
	if c.IsStopped() {
		return ErrControllerStopped
	}

	select {
	case <-c.ready:
		return nil
	case <-c.StopChan():
		return ErrControllerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// awaitApplied ждет, пока цикл применит события, отправленные до вызова.
// До старта цикла ждать нечего: Start сам возьмет локацию у провайдера.
func (c *AppController) awaitApplied(ctx context.Context) error {
	select {
	case <-c.ready:
	default:
		return nil
	}

	ev := barrierEvent{applied: make(chan struct{})}
	if !c.post(ev) {
		return ErrControllerStopped
	}

	select {
	case <-ev.applied:
		return nil
	case <-c.StopChan():
		return ErrControllerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot возвращает копию текущего состояния
func (c *AppController) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := c.state
	state.Places = make([]domain.Place, len(c.state.Places))
	copy(state.Places, c.state.Places)
	return state
}

// SetFilters заменяет набор фильтров, синхронно сохраняет его и перезагружает места.
// Ошибка сохранения возвращается, но набор в памяти все равно заменяется.
func (c *AppController) SetFilters(ctx context.Context, filters domain.FilterSet) error {
	c.filtersMu.Lock()
	defer c.filtersMu.Unlock()

	return c.setFiltersLocked(ctx, filters)
}

// AddFilter добавляет фильтр в конец набора
func (c *AppController) AddFilter(ctx context.Context, filter domain.Filter) error {
	c.filtersMu.Lock()
	defer c.filtersMu.Unlock()

	if err := c.waitReady(ctx); err != nil {
		return err
	}
	return c.setFiltersLocked(ctx, c.Snapshot().Filters.With(filter))
}

// RemoveFilter удаляет фильтр из набора, отсутствующий фильтр не ошибка
func (c *AppController) RemoveFilter(ctx context.Context, filter domain.Filter) error {
	c.filtersMu.Lock()
	defer c.filtersMu.Unlock()

	if err := c.waitReady(ctx); err != nil {
		return err
	}
	return c.setFiltersLocked(ctx, c.Snapshot().Filters.Without(filter))
}

func (c *AppController) setFiltersLocked(ctx context.Context, filters domain.FilterSet) error {
	if err := c.waitReady(ctx); err != nil {
		return err
	}

	changeID := uuid.New().String()
	saveErr := c.filterStore.SaveFilters(ctx, filters)
	if saveErr != nil {
		c.logger.Error("Failed to persist filters",
			zap.String("change_id", changeID),
			zap.Strings("filters", filters.Strings()),
			zap.Error(saveErr))
	}

	ev := filtersEvent{filters: filters, applied: make(chan struct{})}
	if !c.post(ev) {
		return ErrControllerStopped
	}

	select {
	case <-ev.applied:
	case <-c.StopChan():
		return ErrControllerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	c.logger.Info("Filters replaced",
		zap.String("change_id", changeID),
		zap.Strings("filters", filters.Strings()))

	if saveErr != nil {
		return fmt.Errorf("persist filters: %w", saveErr)
	}
	return nil
}

// SwitchToManual фиксирует локацию пользователя и сохраняет ее для следующего запуска.
// После возврата Snapshot уже содержит новую локацию.
func (c *AppController) SwitchToManual(ctx context.Context, lat, lng float64) error {
	if !domain.ValidCoordinates(lat, lng) {
		return apperrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": lat,
			"lng": lng,
		})
	}

	c.provider.SwitchToManualMode(lat, lng)
	if err := c.awaitApplied(ctx); err != nil {
		c.logger.Debug("Manual location not applied to state", zap.Error(err))
	}

	loc := domain.Location{Latitude: lat, Longitude: lng, Mode: domain.Manual}
	if err := c.locationStore.SaveManualLocation(ctx, loc); err != nil {
		c.logger.Warn("Failed to persist manual location", zap.Error(err))
	}
	return nil
}

// SwitchToAutomatic возвращает провайдер к позиционированию устройства.
// Смена режима видна в Snapshot сразу после возврата, позиции приходят позже.
func (c *AppController) SwitchToAutomatic(ctx context.Context) {
	c.provider.SwitchToAutomaticMode(ctx)
	if err := c.awaitApplied(ctx); err != nil {
		c.logger.Debug("Automatic mode not applied to state", zap.Error(err))
	}

	if err := c.locationStore.ClearManualLocation(ctx); err != nil {
		c.logger.Warn("Failed to clear manual location", zap.Error(err))
	}
}
