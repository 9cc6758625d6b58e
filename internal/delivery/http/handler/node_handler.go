package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/places-finder/internal/domain/repository"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"github.com/places-finder/internal/pkg/utils"
	"go.uber.org/zap"
)

// NodeHandler проксирует чтение и обновление узлов OSM
type NodeHandler struct {
	nodes  repository.NodeRepository
	logger *zap.Logger
}

func NewNodeHandler(nodes repository.NodeRepository, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		nodes:  nodes,
		logger: logger,
	}
}

// GetNode godoc
// @Summary Узел OSM
// @Description Сырые данные узла из API OSM
// @Tags Nodes
// @Produce xml
// @Param id path int true "ID узла"
// @Success 200 {string} string "Данные узла"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/nodes/{id} [get]
func (h *NodeHandler) GetNode(c *fiber.Ctx) error {
	id, err := parseNodeID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	payload := h.nodes.GetNode(c.UserContext(), id)
	if len(payload) == 0 {
		return utils.SendError(c, apperrors.ErrNetworkFailure.WithDetails(map[string]interface{}{
			"node_id": id,
		}))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextXMLCharsetUTF8)
	return c.Send(payload)
}

// UpdateNode godoc
// @Summary Обновить узел OSM
// @Description Тело запроса передается в API OSM без изменений
// @Tags Nodes
// @Accept xml
// @Produce json
// @Param id path int true "ID узла"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/nodes/{id} [put]
func (h *NodeHandler) UpdateNode(c *fiber.Ctx) error {
	id, err := parseNodeID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	body := append([]byte(nil), c.Body()...)
	if len(body) == 0 {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "required",
		}))
	}

	if err := h.nodes.UpdateNode(c.UserContext(), id, body); err != nil {
		h.logger.Warn("Node update failed",
			zap.Int64("node_id", id),
			zap.String("request_id", requestID(c)),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseNodeID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidNodeID.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		})
	}
	return id, nil
}
