package production

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	rules "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// AnalyticsUseCase vistas de solo lectura sobre líneas y solicitudes. No guarda estado propio.
type AnalyticsUseCase struct {
	repo  repository.ProductionAnalyticsRepository
	lines repository.ProductionLineRepository
	log   zerolog.Logger

	pdf ports.EfficiencyPDFRenderer
	xml ports.VarianceXMLExporter
	now func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.ProductionAnalyticsRepository, lines repository.ProductionLineRepository, log zerolog.Logger) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		repo:  repo,
		lines: lines,
		log:   log.With().Str("component", "production_analytics").Logger(),
		now:   time.Now,
	}
}

// WithExporters habilita las salidas PDF y XML. Cualquiera puede ser nil.
func (uc *AnalyticsUseCase) WithExporters(pdf ports.EfficiencyPDFRenderer, xml ports.VarianceXMLExporter) *AnalyticsUseCase {
	uc.pdf = pdf
	uc.xml = xml
	return uc
}

// Summary conteo por estado, sumas de cantidades y varianza promedio de las líneas completadas.
func (uc *AnalyticsUseCase) Summary(ctx context.Context, businessID string, rng dto.DateRangeRequest) (*dto.ProductionSummaryDTO, error) {
	from, to, err := inventory.ParseDateRange(rng)
	if err != nil {
		return nil, err
	}
	res, err := uc.repo.Summary(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductionSummaryDTO{
		StartDate:          from,
		EndDate:            to,
		CountByStatus:      make(map[string]int, len(entity.LineStatuses)),
		TotalPlanned:       res.TotalPlanned,
		TotalFinal:         res.TotalFinal,
		AverageVariance:    res.AvgVariance.Round(2),
		AverageVariancePct: res.AvgVariancePercentage.Round(2),
	}
	for _, s := range entity.LineStatuses {
		n := res.CountByStatus[s]
		out.CountByStatus[string(s)] = n
		out.TotalLines += n
	}
	return out, nil
}

// Efficiency eficiencia, varianza y duración de cada línea completada.
func (uc *AnalyticsUseCase) Efficiency(ctx context.Context, businessID string, rng dto.DateRangeRequest) (*dto.EfficiencyReportDTO, error) {
	from, to, err := inventory.ParseDateRange(rng)
	if err != nil {
		return nil, err
	}
	lines, err := uc.repo.CompletedLines(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.EfficiencyReportDTO{
		Lines:                make([]dto.LineEfficiencyDTO, 0, len(lines)),
		AverageEfficiencyPct: decimal.Zero,
	}
	sum := decimal.Zero
	for _, l := range lines {
		if l.FinalQuantity == nil || l.CompletedAt == nil {
			uc.log.Warn().Str("line_id", l.ID).Msg("línea COMPLETED sin cantidad final o fecha de cierre")
			continue
		}
		final := *l.FinalQuantity
		v := rules.ComputeVariance(final, l.PlannedQuantity)
		eff := rules.Efficiency(final, l.PlannedQuantity)
		sum = sum.Add(eff)
		out.Lines = append(out.Lines, dto.LineEfficiencyDTO{
			LineID:             l.ID,
			Name:               l.Name,
			ItemID:             l.FinishedProductID,
			Planned:            l.PlannedQuantity,
			Final:              final,
			EfficiencyPct:      eff,
			Variance:           v.Units,
			VariancePercentage: v.Percentage,
			DurationDays:       rules.DurationDays(l.CreatedAt, *l.CompletedAt),
			CreatedAt:          l.CreatedAt,
			CompletedAt:        *l.CompletedAt,
		})
	}
	if n := len(out.Lines); n > 0 {
		out.AverageEfficiencyPct = sum.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	return out, nil
}

// Overview arma resumen y eficiencia en paralelo.
func (uc *AnalyticsUseCase) Overview(ctx context.Context, businessID string, rng dto.DateRangeRequest) (*dto.ProductionOverviewDTO, error) {
	var (
		summary    *dto.ProductionSummaryDTO
		efficiency *dto.EfficiencyReportDTO
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = uc.Summary(gctx, businessID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		efficiency, err = uc.Efficiency(gctx, businessID, rng)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.ProductionOverviewDTO{Summary: *summary, Efficiency: *efficiency}, nil
}

// ResourceVarianceReport compara lo necesario de cada recurso contra lo consumido (solicitudes FULFILLED).
func (uc *AnalyticsUseCase) ResourceVarianceReport(ctx context.Context, businessID, lineID string) (*dto.ResourceVarianceReportDTO, error) {
	line, err := uc.lines.GetByID(ctx, lineID, businessID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, notFound("línea de producción", lineID)
	}
	rows, err := uc.repo.ResourceConsumption(ctx, lineID)
	if err != nil {
		return nil, err
	}
	out := &dto.ResourceVarianceReportDTO{
		LineID:     line.ID,
		LineName:   line.Name,
		LineStatus: string(line.Status),
		Resources:  make([]dto.ResourceVarianceDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Resources = append(out.Resources, dto.ResourceVarianceDTO{
			ResourceID:        r.ResourceID,
			ResourceItemID:    r.ResourceProductID,
			ResourceName:      r.ResourceName,
			UnitOfMeasure:     r.UnitOfMeasure,
			NeededQuantity:    r.NeededQuantity,
			ConsumedQuantity:  r.FulfilledQuantity,
			PendingQuantity:   r.PendingQuantity,
			Difference:        r.FulfilledQuantity - r.NeededQuantity,
			FulfilledRequests: r.FulfilledRequests,
			Status:            rules.ConsumptionStatus(r.FulfilledQuantity, r.NeededQuantity),
		})
	}
	return out, nil
}

// EfficiencyPDF genera el reporte de eficiencia en PDF.
func (uc *AnalyticsUseCase) EfficiencyPDF(ctx context.Context, businessID string, rng dto.DateRangeRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte PDF no configurado")
	}
	rep, err := uc.Efficiency(ctx, businessID, rng)
	if err != nil {
		return nil, err
	}
	from, to, _ := inventory.ParseDateRange(rng)
	meta := ports.ReportMeta{BusinessID: businessID, GeneratedAt: uc.now().UTC(), StartDate: from, EndDate: to}
	return uc.pdf.RenderEfficiency(ctx, meta, rep)
}

// ResourceVarianceXML exporta el reporte de varianza de recursos en XML.
func (uc *AnalyticsUseCase) ResourceVarianceXML(ctx context.Context, businessID, lineID string) ([]byte, error) {
	if uc.xml == nil {
		return nil, fmt.Errorf("exportación XML no configurada")
	}
	rep, err := uc.ResourceVarianceReport(ctx, businessID, lineID)
	if err != nil {
		return nil, err
	}
	return uc.xml.ExportVariance(ports.ReportMeta{BusinessID: businessID, GeneratedAt: uc.now().UTC()}, rep)
}
