package dto

import (
	"math"
	"time"

	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/pkg/utils"
	"github.com/places-finder/internal/usecase"
)

// LocationResponse - текущая локация
type LocationResponse struct {
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Mode      domain.Mode `json:"mode" swaggertype:"string" enums:"automatic,manual"`
}

// PlaceResponse - узел OSM, найденный по фильтрам
type PlaceResponse struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
	// DistanceM - расстояние от текущей локации в метрах
	DistanceM float64 `json:"distance_m"`
}

// FiltersResponse - текущий набор фильтров
type FiltersResponse struct {
	Filters []string `json:"filters"`
}

// PlacesResponse - текущий список мест
type PlacesResponse struct {
	Places []PlaceResponse `json:"places"`
	Total  int             `json:"total"`
}

// StateResponse - снимок состояния приложения
type StateResponse struct {
	Location      LocationResponse `json:"location"`
	Filters       []string         `json:"filters"`
	Places        []PlaceResponse  `json:"places"`
	LocationError string           `json:"location_error,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func NewLocationResponse(loc domain.Location) LocationResponse {
	return LocationResponse{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Mode:      loc.Mode,
	}
}

func NewFiltersResponse(filters domain.FilterSet) FiltersResponse {
	return FiltersResponse{Filters: filters.Strings()}
}

// NewPlacesResponse сохраняет порядок ответа Overpass
func NewPlacesResponse(places []domain.Place, from domain.Location) PlacesResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		tags := p.Tags
		if tags == nil {
			tags = map[string]string{}
		}
		out = append(out, PlaceResponse{
			ID:        p.ID,
			Lat:       p.Lat,
			Lon:       p.Lon,
			Tags:      tags,
			DistanceM: math.Round(utils.HaversineDistance(from.Latitude, from.Longitude, p.Lat, p.Lon) * 1000),
		})
	}
	return PlacesResponse{Places: out, Total: len(out)}
}

func NewStateResponse(state usecase.State) StateResponse {
	resp := StateResponse{
		Location:  NewLocationResponse(state.Location),
		Filters:   state.Filters.Strings(),
		Places:    NewPlacesResponse(state.Places, state.Location).Places,
		UpdatedAt: state.UpdatedAt,
	}
	if state.LocationError != nil {
		resp.LocationError = state.LocationError.Error()
	}
	return resp
}
