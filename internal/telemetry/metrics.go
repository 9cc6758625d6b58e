package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты запроса мест
const (
	OutcomeSuccess       = "success"
	OutcomeStatus        = "bad_status"
	OutcomeTransport     = "transport_error"
	OutcomeDecode        = "decode_error"
	OutcomeSkipped       = "skipped"
	OutcomeStale         = "stale"
	OutcomeApplied       = "applied"
)

// События провайдера локации
const (
	LocationEventUpdate  = "update"
	LocationEventFailure = "failure"
)

var (
	// PlacesFetches counts Overpass queries by outcome
	PlacesFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "places_finder",
			Name:      "places_fetch_total",
			Help:      "Total number of Overpass place queries by outcome",
		},
		[]string{"outcome"},
	)

	// PlacesFetchDuration measures Overpass round trips
	PlacesFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "places_finder",
			Name:      "places_fetch_duration_seconds",
			Help:      "Duration of Overpass place queries",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		},
	)

	// PlacesResults tracks how fetch results were applied to the place list
	PlacesResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "places_finder",
			Name:      "places_results_total",
			Help:      "Fetch results applied to or dropped from the place list",
		},
		[]string{"result"},
	)

	// PlacesCurrent is the size of the current place list
	PlacesCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "places_finder",
			Name:      "places_current",
			Help:      "Number of places in the current place list",
		},
	)

	// LocationEvents counts location provider notifications
	LocationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "places_finder",
			Name:      "location_events_total",
			Help:      "Location changes and failures seen by the controller",
		},
		[]string{"mode", "event"},
	)

	// NodeRequests counts OSM node API calls
	NodeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "places_finder",
			Name:      "osm_node_requests_total",
			Help:      "OSM node API requests by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Safe to call more than once.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(PlacesFetches)
		prometheus.DefaultRegisterer.Register(PlacesFetchDuration)
		prometheus.DefaultRegisterer.Register(PlacesResults)
		prometheus.DefaultRegisterer.Register(PlacesCurrent)
		prometheus.DefaultRegisterer.Register(LocationEvents)
		prometheus.DefaultRegisterer.Register(NodeRequests)
	})
}
