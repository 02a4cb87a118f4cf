package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
)

// InventoryHandler ajustes manuales, historial y verificación del ledger.
type InventoryHandler struct {
	ledger *inventory.Ledger
	log    zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, log: log}
}

// Credit godoc
// @Summary      Acreditar stock a un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del producto"
// @Param        body  body  dto.LedgerAdjustmentRequest  true  "Cantidad y motivo"
// @Success      201   {object}  dto.LedgerResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/credit [post]
func (h *InventoryHandler) Credit(c *fiber.Ctx) error {
	return h.adjust(c, h.ledger.Credit)
}

// Debit godoc
// @Summary      Debitar stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del producto"
// @Param        body  body  dto.LedgerAdjustmentRequest  true  "Cantidad y motivo"
// @Success      201   {object}  dto.LedgerResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/inventory/products/{id}/debit [post]
func (h *InventoryHandler) Debit(c *fiber.Ctx) error {
	return h.adjust(c, h.ledger.Debit)
}

func (h *InventoryHandler) adjust(c *fiber.Ctx, op func(context.Context, inventory.LedgerInput) (*inventory.LedgerResult, error)) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var in dto.LedgerAdjustmentRequest
	if !bindBody(c, &in) {
		return nil
	}
	res, err := op(c.UserContext(), inventory.LedgerInput{
		ProductID:   pathID(c),
		BusinessID:  businessID,
		UserID:      GetUserID(c),
		Amount:      in.Amount,
		Reason:      in.Reason,
		ReferenceID: in.ReferenceID,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToResultResponse(res))
}

// Transactions godoc
// @Summary      Historial del ledger de un producto (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del producto"
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.InventoryTransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/transactions [get]
func (h *InventoryHandler) Transactions(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var q struct {
		dto.DateRangeRequest
		dto.PageRequest
	}
	if !bindQuery(c, &q) {
		return nil
	}
	out, err := h.ledger.History(c.UserContext(), businessID, pathID(c), q.DateRangeRequest, q.PageRequest)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar stock contra el historial del ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerVerificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/verify [get]
func (h *InventoryHandler) Verify(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	out, err := h.ledger.Verify(c.UserContext(), businessID, pathID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
