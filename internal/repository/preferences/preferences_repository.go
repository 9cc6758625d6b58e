package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/domain/repository"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"go.uber.org/zap"
)

// Ключи хранилища
const (
	FiltersKey        = "filters"
	ManualLocationKey = "location:manual"
)

type storedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Repository хранит фильтры и ручную локацию в KVStore
type Repository struct {
	kv     repository.KVStore
	logger *zap.Logger
}

var (
	_ repository.FilterStore   = (*Repository)(nil)
	_ repository.LocationStore = (*Repository)(nil)
)

func NewRepository(kv repository.KVStore, logger *zap.Logger) *Repository {
	return &Repository{kv: kv, logger: logger}
}

// LoadFilters читает сохраненный набор. Отсутствующее или поврежденное значение
// заменяется набором по умолчанию.
func (r *Repository) LoadFilters(ctx context.Context) domain.FilterSet {
	data, err := r.kv.Get(ctx, FiltersKey)
	if err != nil {
		r.logger.Warn("Failed to read filters, using defaults", zap.Error(err))
		return domain.DefaultFilterSet()
	}
	if data == nil {
		r.logger.Debug("No stored filters, using defaults")
		return domain.DefaultFilterSet()
	}

	filters, err := decodeFilters(data)
	if err != nil {
		r.logger.Warn("Stored filters are corrupt, using defaults",
			zap.ByteString("value", data),
			zap.Error(err))
		return domain.DefaultFilterSet()
	}

	return filters
}

func decodeFilters(data []byte) (domain.FilterSet, error) {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return domain.FilterSet{}, apperrors.ErrPersistenceCorrupt.Wrap(err)
	}
	if tokens == nil {
		// JSON null
		return domain.FilterSet{}, apperrors.ErrPersistenceCorrupt.Wrap(fmt.Errorf("filters value is null"))
	}

	filters, err := domain.ParseFilterSet(tokens)
	if err != nil {
		return domain.FilterSet{}, apperrors.ErrPersistenceCorrupt.Wrap(err)
	}
	return filters, nil
}

// SaveFilters синхронно записывает набор как JSON массив строк
func (r *Repository) SaveFilters(ctx context.Context, filters domain.FilterSet) error {
	data, err := json.Marshal(filters.Strings())
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	if err := r.kv.Put(ctx, FiltersKey, data); err != nil {
		return apperrors.ErrStoreError.Wrap(err)
	}

	r.logger.Debug("Filters saved", zap.Strings("filters", filters.Strings()))
	return nil
}

// LoadManualLocation возвращает сохраненную ручную локацию
func (r *Repository) LoadManualLocation(ctx context.Context) (domain.Location, bool) {
	data, err := r.kv.Get(ctx, ManualLocationKey)
	if err != nil {
		r.logger.Warn("Failed to read manual location", zap.Error(err))
		return domain.Location{}, false
	}
	if data == nil {
		return domain.Location{}, false
	}

	var stored storedLocation
	if err := json.Unmarshal(data, &stored); err != nil || !domain.ValidCoordinates(stored.Latitude, stored.Longitude) {
		r.logger.Warn("Stored manual location is corrupt, ignoring", zap.ByteString("value", data))
		return domain.Location{}, false
	}

	return domain.Location{
		Latitude:  stored.Latitude,
		Longitude: stored.Longitude,
		Mode:      domain.Manual,
	}, true
}

// SaveManualLocation сохраняет координаты ручной локации
func (r *Repository) SaveManualLocation(ctx context.Context, loc domain.Location) error {
	data, err := json.Marshal(storedLocation{Latitude: loc.Latitude, Longitude: loc.Longitude})
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}

	if err := r.kv.Put(ctx, ManualLocationKey, data); err != nil {
		return apperrors.ErrStoreError.Wrap(err)
	}
	return nil
}

// ClearManualLocation удаляет сохраненную ручную локацию
func (r *Repository) ClearManualLocation(ctx context.Context) error {
	if err := r.kv.Delete(ctx, ManualLocationKey); err != nil {
		return apperrors.ErrStoreError.Wrap(err)
	}
	return nil
}
