package osmapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/places-finder/internal/config"
	"github.com/places-finder/internal/domain/repository"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"github.com/places-finder/internal/telemetry"
	"go.uber.org/zap"
)

const maxErrorBodyLog = 512

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создает клиент API узлов OSM (/api/0.6/node)
func NewClient(cfg *config.OSMConfig, logger *zap.Logger) repository.NodeRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

func (c *client) nodeURL(nodeID int64) string {
	return fmt.Sprintf("%s/api/0.6/node/%d", c.baseURL, nodeID)
}

// GetNode возвращает сырой payload узла. Ошибки логируются, результат тогда пустой.
func (c *client) GetNode(ctx context.Context, nodeID int64) []byte {
	url := c.nodeURL(nodeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Int64("node_id", nodeID), zap.Error(err))
		telemetry.NodeRequests.WithLabelValues(http.MethodGet, telemetry.OutcomeTransport).Inc()
		return []byte{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Int64("node_id", nodeID), zap.Error(err))
		telemetry.NodeRequests.WithLabelValues(http.MethodGet, telemetry.OutcomeTransport).Inc()
		return []byte{}
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLog))
		c.logger.Error("OSM API returned error",
			zap.Int64("node_id", nodeID),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		telemetry.NodeRequests.WithLabelValues(http.MethodGet, telemetry.OutcomeStatus).Inc()
		return []byte{}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read node payload", zap.Int64("node_id", nodeID), zap.Error(err))
		telemetry.NodeRequests.WithLabelValues(http.MethodGet, telemetry.OutcomeDecode).Inc()
		return []byte{}
	}

	telemetry.NodeRequests.WithLabelValues(http.MethodGet, telemetry.OutcomeSuccess).Inc()
	c.logger.Debug("Node fetched", zap.Int64("node_id", nodeID), zap.Int("bytes", len(payload)))
	return payload
}

// UpdateNode отправляет новый payload узла. В отличие от GetNode ошибки возвращаются.
func (c *client) UpdateNode(ctx context.Context, nodeID int64, payload []byte) error {
	url := c.nodeURL(nodeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Int64("node_id", nodeID), zap.Error(err))
		telemetry.NodeRequests.WithLabelValues(http.MethodPut, telemetry.OutcomeTransport).Inc()
		return apperrors.ErrNetworkFailure.Wrap(err)
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLog))
		c.logger.Error("OSM API rejected node update",
			zap.Int64("node_id", nodeID),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		telemetry.NodeRequests.WithLabelValues(http.MethodPut, telemetry.OutcomeStatus).Inc()
		return apperrors.ErrNodeUpdateFailed.WithDetails(map[string]interface{}{
			"node_id":     nodeID,
			"status_code": resp.StatusCode,
		})
	}

	telemetry.NodeRequests.WithLabelValues(http.MethodPut, telemetry.OutcomeSuccess).Inc()
	c.logger.Info("Node updated", zap.Int64("node_id", nodeID))
	return nil
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code <= http.StatusNoContent
}
