package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
)

// ProductionAnalyticsHandler reportes de producción de solo lectura.
type ProductionAnalyticsHandler struct {
	uc  *production.AnalyticsUseCase
	log zerolog.Logger
}

// NewProductionAnalyticsHandler construye el handler.
func NewProductionAnalyticsHandler(uc *production.AnalyticsUseCase, log zerolog.Logger) *ProductionAnalyticsHandler {
	return &ProductionAnalyticsHandler{uc: uc, log: log}
}

// Summary godoc
// @Summary      Resumen de producción
// @Description  Conteo por estado, totales planeado y final, varianza promedio de líneas completadas.
// @Tags         production-analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductionSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/analytics/summary [get]
func (h *ProductionAnalyticsHandler) Summary(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var rng dto.DateRangeRequest
	if !bindQuery(c, &rng) {
		return nil
	}
	out, err := h.uc.Summary(c.UserContext(), businessID, rng)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Efficiency godoc
// @Summary      Eficiencia por línea completada
// @Tags         production-analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.EfficiencyReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/analytics/efficiency [get]
func (h *ProductionAnalyticsHandler) Efficiency(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var rng dto.DateRangeRequest
	if !bindQuery(c, &rng) {
		return nil
	}
	out, err := h.uc.Efficiency(c.UserContext(), businessID, rng)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// EfficiencyPDF godoc
// @Summary      Reporte de eficiencia en PDF
// @Tags         production-analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/analytics/efficiency/pdf [get]
func (h *ProductionAnalyticsHandler) EfficiencyPDF(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var rng dto.DateRangeRequest
	if !bindQuery(c, &rng) {
		return nil
	}
	pdf, err := h.uc.EfficiencyPDF(c.UserContext(), businessID, rng)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="eficiencia-produccion.pdf"`)
	return c.Send(pdf)
}

// Overview godoc
// @Summary      Resumen + eficiencia en una sola respuesta
// @Tags         production-analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductionOverviewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/analytics/overview [get]
func (h *ProductionAnalyticsHandler) Overview(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	var rng dto.DateRangeRequest
	if !bindQuery(c, &rng) {
		return nil
	}
	out, err := h.uc.Overview(c.UserContext(), businessID, rng)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ResourceVariance godoc
// @Summary      Varianza de recursos de una línea
// @Description  Necesario vs consumido por recurso. Con format=xml devuelve el documento XML.
// @Tags         production-analytics
// @Security     Bearer
// @Produce      json
// @Produce      xml
// @Param        id      path   string  true   "ID de la línea"
// @Param        format  query  string  false  "json | xml"
// @Success      200  {object}  dto.ResourceVarianceReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id}/variance [get]
func (h *ProductionAnalyticsHandler) ResourceVariance(c *fiber.Ctx) error {
	businessID, ok := requireBusiness(c)
	if !ok {
		return nil
	}
	lineID := pathID(c)
	switch strings.ToLower(c.Query("format", "json")) {
	case "json":
		out, err := h.uc.ResourceVarianceReport(c.UserContext(), businessID, lineID)
		if err != nil {
			return writeError(c, h.log, err)
		}
		return c.JSON(out)
	case "xml":
		out, err := h.uc.ResourceVarianceXML(c.UserContext(), businessID, lineID)
		if err != nil {
			return writeError(c, h.log, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
		return c.Send(out)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json o xml"})
	}
}
