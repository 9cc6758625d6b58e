package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/places-finder/internal/domain"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"github.com/places-finder/internal/pkg/utils"
	"github.com/places-finder/internal/pkg/validator"
	"github.com/places-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// FilterHandler - управление набором фильтров
type FilterHandler struct {
	controller PlacesController
	logger     *zap.Logger
}

func NewFilterHandler(controller PlacesController, logger *zap.Logger) *FilterHandler {
	return &FilterHandler{
		controller: controller,
		logger:     logger,
	}
}

// GetFilters godoc
// @Summary Текущие фильтры
// @Tags Filters
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.FiltersResponse}
// @Router /api/v1/filters [get]
func (h *FilterHandler) GetFilters(c *fiber.Ctx) error {
	filters := h.controller.Snapshot().Filters

	return utils.SendSuccess(c, dto.NewFiltersResponse(filters), &utils.Meta{
		Total: filters.Len(),
	})
}

// SetFilters godoc
// @Summary Заменить фильтры
// @Description Сохраняет набор и перезагружает места. Пустой набор допустим, список мест станет пустым.
// @Tags Filters
// @Accept json
// @Produce json
// @Param request body dto.SetFiltersRequest true "Фильтры вида namespace:value"
// @Success 200 {object} utils.SuccessResponse{data=dto.FiltersResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/filters [put]
func (h *FilterHandler) SetFilters(c *fiber.Ctx) error {
	var req dto.SetFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidFilter.WithDetails(validator.Details(err)))
	}

	filters, err := domain.ParseFilterSet(req.Filters)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidFilter.Wrap(err))
	}

	return h.apply(c, h.controller.SetFilters(c.UserContext(), filters))
}

// AddFilter godoc
// @Summary Добавить фильтр
// @Tags Filters
// @Accept json
// @Produce json
// @Param request body dto.AddFilterRequest true "Фильтр"
// @Success 200 {object} utils.SuccessResponse{data=dto.FiltersResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/filters [post]
func (h *FilterHandler) AddFilter(c *fiber.Ctx) error {
	var req dto.AddFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidFilter.WithDetails(validator.Details(err)))
	}

	filter, err := domain.ParseFilter(req.Filter)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidFilter.Wrap(err))
	}

	return h.apply(c, h.controller.AddFilter(c.UserContext(), filter))
}

// RemoveFilter godoc
// @Summary Удалить фильтр
// @Tags Filters
// @Produce json
// @Param filter path string true "Фильтр, например diet:vegan"
// @Success 200 {object} utils.SuccessResponse{data=dto.FiltersResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/filters/{filter} [delete]
func (h *FilterHandler) RemoveFilter(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("filter"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidFilter.Wrap(err))
	}

	filter, err := domain.ParseFilter(raw)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidFilter.Wrap(err))
	}

	return h.apply(c, h.controller.RemoveFilter(c.UserContext(), filter))
}

func (h *FilterHandler) apply(c *fiber.Ctx, err error) error {
	if err != nil {
		h.logger.Error("Failed to update filters",
			zap.String("request_id", requestID(c)),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	filters := h.controller.Snapshot().Filters
	return utils.SendSuccess(c, dto.NewFiltersResponse(filters), &utils.Meta{
		Total: filters.Len(),
	})
}
