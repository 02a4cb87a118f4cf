package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
)

// ProductionLineHandler ciclo de vida de las líneas de producción.
type ProductionLineHandler struct {
	uc  *production.LineUseCase
	log zerolog.Logger
}

// NewProductionLineHandler construye el handler.
func NewProductionLineHandler(uc *production.LineUseCase, log zerolog.Logger) *ProductionLineHandler {
	return &ProductionLineHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear línea de producción
// @Description  Crea la línea en estado PENDING con sus recursos. businessId del body, si viene, debe coincidir con el del token.
// @Tags         production-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionLineRequest  true  "Línea y recursos"
// @Success      201   {object}  dto.ProductionLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production-lines [post]
func (h *ProductionLineHandler) Create(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.CreateProductionLineRequest
	if !bindBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), businessID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar líneas de producción
// @Tags         production-lines
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | IN_PROGRESS | COMPLETED | CANCELLED"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {object}  dto.ProductionLineListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/production-lines [get]
func (h *ProductionLineHandler) List(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.ListProductionLinesRequest
	if !bindQuery(c, &in) {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), businessID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener línea de producción con sus recursos
// @Tags         production-lines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.ProductionLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id} [get]
func (h *ProductionLineHandler) GetByID(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.UserContext(), businessID, pathID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar línea de producción
// @Description  Nombre, responsable y descripción mientras no esté COMPLETED; actualItemsNumber solo en PENDING.
// @Tags         production-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID de la línea"
// @Param        body  body  dto.UpdateProductionLineRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductionLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id} [put]
func (h *ProductionLineHandler) Update(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.UpdateProductionLineRequest
	if !bindBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), businessID, pathID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar línea (PENDING → IN_PROGRESS)
// @Tags         production-lines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.ProductionLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id}/start [put]
func (h *ProductionLineHandler) Start(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Start(c.UserContext(), businessID, pathID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar línea (IN_PROGRESS → COMPLETED)
// @Description  Acredita finalItemsProduced al producto terminado en la misma transacción del cambio de estado.
// @Tags         production-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID de la línea"
// @Param        body  body  dto.CompleteProductionLineRequest  true  "Cantidad final producida"
// @Success      200   {object}  dto.CompletionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id}/complete [put]
func (h *ProductionLineHandler) Complete(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.CompleteProductionLineRequest
	if !bindBody(c, &in) {
		return nil
	}
	out, err := h.uc.Complete(c.UserContext(), businessID, GetUserID(c), pathID(c), *in.FinalItemsProduced)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar línea (solo PENDING)
// @Tags         production-lines
// @Security     Bearer
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-lines/{id} [delete]
func (h *ProductionLineHandler) Delete(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), businessID, pathID(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
