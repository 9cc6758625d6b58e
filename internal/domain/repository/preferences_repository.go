package repository

import (
	"context"

	"github.com/places-finder/internal/domain"
)

// FilterStore хранит набор фильтров пользователя
type FilterStore interface {
	// LoadFilters возвращает сохраненный набор или набор по умолчанию, никогда не падает
	LoadFilters(ctx context.Context) domain.FilterSet

	// SaveFilters синхронно сохраняет набор
	SaveFilters(ctx context.Context, filters domain.FilterSet) error
}

// LocationStore хранит последнюю ручную локацию
type LocationStore interface {
	// LoadManualLocation возвращает сохраненную локацию, false если ее нет
	LoadManualLocation(ctx context.Context) (domain.Location, bool)

	// SaveManualLocation сохраняет ручную локацию
	SaveManualLocation(ctx context.Context, loc domain.Location) error

	// ClearManualLocation удаляет сохраненную локацию при возврате в автоматический режим
	ClearManualLocation(ctx context.Context) error
}
