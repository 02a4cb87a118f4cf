package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
)

// ReportMeta datos de cabecera comunes a los reportes exportados.
type ReportMeta struct {
	BusinessID  string
	GeneratedAt time.Time
	StartDate   *time.Time
	EndDate     *time.Time
}

// EfficiencyPDFRenderer genera el PDF del reporte de eficiencia.
type EfficiencyPDFRenderer interface {
	RenderEfficiency(ctx context.Context, meta ReportMeta, report *dto.EfficiencyReportDTO) ([]byte, error)
}

// VarianceXMLExporter serializa el reporte de varianza de recursos a XML.
type VarianceXMLExporter interface {
	ExportVariance(meta ReportMeta, report *dto.ResourceVarianceReportDTO) ([]byte, error)
}
