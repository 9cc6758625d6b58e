package handler

import (
	"context"

	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/usecase"
)

// PlacesController - операции контроллера, доступные через HTTP
type PlacesController interface {
	Snapshot() usecase.State
	SetFilters(ctx context.Context, filters domain.FilterSet) error
	AddFilter(ctx context.Context, filter domain.Filter) error
	RemoveFilter(ctx context.Context, filter domain.Filter) error
	SwitchToManual(ctx context.Context, lat, lng float64) error
	SwitchToAutomatic(ctx context.Context)
}

var _ PlacesController = (*usecase.AppController)(nil)
