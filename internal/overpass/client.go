package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/places-finder/internal/config"
	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/domain/repository"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"github.com/places-finder/internal/telemetry"
	"go.uber.org/zap"
)

const maxErrorBodyLog = 512

type client struct {
	httpClient     *http.Client
	interpreterURL string
	logger         *zap.Logger
}

// interpreterResponse - ответ интерпретатора в формате [out:json]
type interpreterResponse struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// NewClient создает клиент интерпретатора Overpass
func NewClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.PlacesRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		interpreterURL: cfg.InterpreterURL,
		logger:         logger,
	}
}

// FetchPlaces выполняет запрос мест вокруг локации. Любой сбой сети, статуса или
// декодирования логируется и дает пустой результат.
func (c *client) FetchPlaces(
	ctx context.Context,
	filters domain.FilterSet,
	loc domain.Location,
	margin float64,
) []domain.Place {
	if filters.Len() == 0 {
		telemetry.PlacesFetches.WithLabelValues(telemetry.OutcomeSkipped).Inc()
		return []domain.Place{}
	}
	if margin <= 0 {
		margin = DefaultMargin
	}

	box := BuildBoundingBox(loc, margin)
	query := BuildQuery(filters, box)
	fetchID := uuid.NewString()

	c.logger.Debug("Calling Overpass interpreter",
		zap.String("fetch_id", fetchID),
		zap.Strings("filters", filters.Strings()),
		zap.Float64("south", box.South),
		zap.Float64("west", box.West),
		zap.Float64("north", box.North),
		zap.Float64("east", box.East))

	start := time.Now()
	places, outcome, err := c.execute(ctx, query)
	telemetry.PlacesFetchDuration.Observe(time.Since(start).Seconds())
	telemetry.PlacesFetches.WithLabelValues(outcome).Inc()

	if err != nil {
		c.logger.Error("Overpass query failed, returning no places",
			zap.String("fetch_id", fetchID),
			zap.String("outcome", outcome),
			zap.Error(err))
		return []domain.Place{}
	}

	c.logger.Debug("Overpass query successful",
		zap.String("fetch_id", fetchID),
		zap.Int("places", len(places)),
		zap.Int("outside_box", countOutside(box, places)),
		zap.Duration("took", time.Since(start)))

	return places
}

func (c *client) execute(ctx context.Context, query string) ([]domain.Place, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.interpreterURL, strings.NewReader(query))
	if err != nil {
		return nil, telemetry.OutcomeTransport, apperrors.ErrNetworkFailure.Wrap(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, telemetry.OutcomeTransport, apperrors.ErrNetworkFailure.Wrap(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if !IsSuccessStatus(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLog))
		return nil, telemetry.OutcomeStatus, apperrors.ErrNetworkFailure.
			WithDetails(map[string]interface{}{"status_code": resp.StatusCode}).
			Wrap(fmt.Errorf("overpass status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var decoded interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, telemetry.OutcomeDecode, apperrors.ErrDecodeFailure.Wrap(fmt.Errorf("failed to decode response: %w", err))
	}

	return toPlaces(decoded.Elements), telemetry.OutcomeSuccess, nil
}

// IsSuccessStatus - 200..204 или 0 (ответ без статуса) считаются успехом
func IsSuccessStatus(code int) bool {
	return code == 0 || (code >= http.StatusOK && code <= http.StatusNoContent)
}

// countOutside считает места вне области запроса, сами места не отбрасываются
func countOutside(box domain.BoundingBox, places []domain.Place) int {
	n := 0
	for _, p := range places {
		if !box.Contains(p.Lat, p.Lon) {
			n++
		}
	}
	return n
}

func toPlaces(elements []element) []domain.Place {
	places := make([]domain.Place, 0, len(elements))
	for _, e := range elements {
		tags := e.Tags
		if tags == nil {
			tags = map[string]string{}
		}
		places = append(places, domain.Place{
			ID:   e.ID,
			Lat:  e.Lat,
			Lon:  e.Lon,
			Tags: tags,
		})
	}
	return places
}
