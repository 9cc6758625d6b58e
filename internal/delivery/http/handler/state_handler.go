package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/places-finder/internal/pkg/utils"
	"github.com/places-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// StateHandler отдает снимок состояния и список мест
type StateHandler struct {
	controller PlacesController
	logger     *zap.Logger
}

func NewStateHandler(controller PlacesController, logger *zap.Logger) *StateHandler {
	return &StateHandler{
		controller: controller,
		logger:     logger,
	}
}

// GetState godoc
// @Summary Состояние приложения
// @Description Текущая локация, набор фильтров, список мест и ошибка позиционирования, если есть
// @Tags State
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StateResponse}
// @Router /api/v1/state [get]
func (h *StateHandler) GetState(c *fiber.Ctx) error {
	state := dto.NewStateResponse(h.controller.Snapshot())

	return utils.SendSuccess(c, state, &utils.Meta{
		Total:     len(state.Places),
		RequestID: requestID(c),
	})
}

// GetPlaces godoc
// @Summary Найденные места
// @Description Результат последнего примененного запроса к Overpass, в порядке ответа
// @Tags Places
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.PlacesResponse}
// @Router /api/v1/places [get]
func (h *StateHandler) GetPlaces(c *fiber.Ctx) error {
	state := h.controller.Snapshot()
	places := dto.NewPlacesResponse(state.Places, state.Location)

	return utils.SendSuccess(c, places, &utils.Meta{
		Total:     places.Total,
		RequestID: requestID(c),
	})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("request_id").(string)
	return id
}
