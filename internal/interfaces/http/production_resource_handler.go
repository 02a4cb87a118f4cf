package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
)

// ProductionResourceHandler catálogo de recursos de una línea.
type ProductionResourceHandler struct {
	uc  *production.ResourceUseCase
	log zerolog.Logger
}

// NewProductionResourceHandler construye el handler.
func NewProductionResourceHandler(uc *production.ResourceUseCase, log zerolog.Logger) *ProductionResourceHandler {
	return &ProductionResourceHandler{uc: uc, log: log}
}

// Add godoc
// @Summary      Agregar recurso a una línea
// @Tags         production-resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la línea"
// @Param        body  body  dto.ResourceInput  true  "Recurso"
// @Success      201   {object}  dto.ProductionResourceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id}/resources [post]
func (h *ProductionResourceHandler) Add(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.ResourceInput
	if !bindBody(c, &in) {
		return nil
	}
	out, err := h.uc.Add(c.UserContext(), businessID, pathID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar recursos de una línea
// @Tags         production-resources
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {array}   dto.ProductionResourceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id}/resources [get]
func (h *ProductionResourceHandler) List(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), businessID, pathID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar recurso
// @Tags         production-resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del recurso"
// @Param        body  body  dto.UpdateResourceRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductionResourceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-resources/{id} [put]
func (h *ProductionResourceHandler) Update(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.UpdateResourceRequest
	if !bindBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), businessID, pathID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar recurso (409 si tiene solicitudes)
// @Tags         production-resources
// @Security     Bearer
// @Param        id   path  string  true  "ID del recurso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-resources/{id} [delete]
func (h *ProductionResourceHandler) Delete(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), businessID, pathID(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
