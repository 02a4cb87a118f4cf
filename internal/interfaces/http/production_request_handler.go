package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
)

// ProductionRequestHandler solicitudes diarias de recursos.
type ProductionRequestHandler struct {
	uc  *production.RequestUseCase
	log zerolog.Logger
}

// NewProductionRequestHandler construye el handler.
func NewProductionRequestHandler(uc *production.RequestUseCase, log zerolog.Logger) *ProductionRequestHandler {
	return &ProductionRequestHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear solicitud de recurso
// @Tags         production-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la línea"
// @Param        body  body  dto.CreateRequestRequest  true  "Solicitud"
// @Success      201   {object}  dto.ProductionRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id}/requests [post]
func (h *ProductionRequestHandler) Create(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.CreateRequestRequest
	if !bindBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), businessID, GetUserID(c), pathID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de una línea
// @Tags         production-requests
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la línea"
// @Param        status  query  string  false  "PENDING | FULFILLED | CANCELLED"
// @Param        day     query  int     false  "Día de producción"
// @Success      200     {array}   dto.ProductionRequestResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id}/requests [get]
func (h *ProductionRequestHandler) List(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.ListRequestsRequest
	if !bindQuery(c, &in) {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), businessID, pathID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Fulfill godoc
// @Summary      Cumplir solicitud (descuenta stock del recurso)
// @Tags         production-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.FulfillmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "INVALID_STATE o INSUFFICIENT_STOCK"
// @Router       /api/production-requests/{id}/fulfill [put]
func (h *ProductionRequestHandler) Fulfill(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Fulfill(c.UserContext(), businessID, GetUserID(c), pathID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar solicitud pendiente
// @Tags         production-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ProductionRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-requests/{id}/cancel [put]
func (h *ProductionRequestHandler) Cancel(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Cancel(c.UserContext(), businessID, pathID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar solicitud pendiente
// @Tags         production-requests
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-requests/{id} [delete]
func (h *ProductionRequestHandler) Delete(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), businessID, pathID(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
