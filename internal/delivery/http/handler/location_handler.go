package handler

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"github.com/places-finder/internal/pkg/utils"
	"github.com/places-finder/internal/pkg/validator"
	"github.com/places-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// LocationHandler - чтение и переключение режима локации
type LocationHandler struct {
	controller PlacesController
	logger     *zap.Logger
}

func NewLocationHandler(controller PlacesController, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		controller: controller,
		logger:     logger,
	}
}

// GetLocation godoc
// @Summary Текущая локация
// @Tags Location
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Router /api/v1/location [get]
func (h *LocationHandler) GetLocation(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.NewLocationResponse(h.controller.Snapshot().Location), nil)
}

// SetManual godoc
// @Summary Ручная локация
// @Description Останавливает позиционирование и фиксирует координаты. Места перезагружаются асинхронно.
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.ManualLocationRequest true "Координаты"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location/manual [post]
func (h *LocationHandler) SetManual(c *fiber.Ctx) error {
	var req dto.ManualLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidCoordinates.WithDetails(validator.Details(err)))
	}

	if err := h.controller.SwitchToManual(c.UserContext(), *req.Lat, *req.Lng); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Manual location set",
		zap.Float64("lat", *req.Lat),
		zap.Float64("lng", *req.Lng),
		zap.String("request_id", requestID(c)))

	return utils.SendSuccess(c, dto.NewLocationResponse(h.controller.Snapshot().Location), nil)
}

// SetAutomatic godoc
// @Summary Автоматическая локация
// @Description Включает позиционирование устройства. Ошибки позиционирования видны в location_error состояния.
// @Tags Location
// @Produce json
// @Success 202 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Router /api/v1/location/automatic [post]
func (h *LocationHandler) SetAutomatic(c *fiber.Ctx) error {
	h.controller.SwitchToAutomatic(c.UserContext())

	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{
		Data: dto.NewLocationResponse(h.controller.Snapshot().Location),
	})
}
