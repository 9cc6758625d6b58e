package repository

import (
	"context"

	"github.com/places-finder/internal/domain"
)

// PlacesRepository загружает места вокруг локации из Overpass
type PlacesRepository interface {
	// FetchPlaces никогда не возвращает ошибку: при любом сбое результат пустой
	FetchPlaces(ctx context.Context, filters domain.FilterSet, loc domain.Location, margin float64) []domain.Place
}
