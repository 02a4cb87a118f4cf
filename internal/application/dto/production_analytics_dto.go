package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionSummaryDTO resumen agregado de producción de un negocio.
type ProductionSummaryDTO struct {
	StartDate          *time.Time      `json:"startDate,omitempty"`
	EndDate            *time.Time      `json:"endDate,omitempty"`
	CountByStatus      map[string]int  `json:"countByStatus"`
	TotalLines         int             `json:"totalLines"`
	TotalPlanned       int64           `json:"totalPlanned"`
	TotalFinal         int64           `json:"totalFinal"`      // solo COMPLETED
	AverageVariance    decimal.Decimal `json:"averageVariance"` // unidades
	AverageVariancePct decimal.Decimal `json:"averageVariancePercentage"`
}

// LineEfficiencyDTO eficiencia de una línea completada.
type LineEfficiencyDTO struct {
	LineID             string          `json:"lineId"`
	Name               string          `json:"name"`
	ItemID             string          `json:"itemId"`
	Planned            int64           `json:"planned"`
	Final              int64           `json:"final"`
	EfficiencyPct      decimal.Decimal `json:"efficiencyPercentage"`
	Variance           int64           `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
	DurationDays       int             `json:"durationDays"`
	CreatedAt          time.Time       `json:"createdAt"`
	CompletedAt        time.Time       `json:"completedAt"`
}

// EfficiencyReportDTO listado de eficiencia por línea.
type EfficiencyReportDTO struct {
	Lines                []LineEfficiencyDTO `json:"lines"`
	AverageEfficiencyPct decimal.Decimal     `json:"averageEfficiencyPercentage"`
}

// ProductionOverviewDTO resumen + eficiencia en una sola respuesta.
type ProductionOverviewDTO struct {
	Summary    ProductionSummaryDTO `json:"summary"`
	Efficiency EfficiencyReportDTO  `json:"efficiency"`
}

// ResourceVarianceDTO consumo real frente a lo necesario de un recurso.
type ResourceVarianceDTO struct {
	ResourceID        string `json:"resourceId"`
	ResourceItemID    string `json:"resourceItemId"`
	ResourceName      string `json:"resourceName"`
	UnitOfMeasure     string `json:"unitOfMeasure"`
	NeededQuantity    int64  `json:"neededQuantity"`
	ConsumedQuantity  int64  `json:"consumedQuantity"`
	PendingQuantity   int64  `json:"pendingQuantity"`
	Difference        int64  `json:"difference"` // consumed - needed; > 0 sobreconsumo
	FulfilledRequests int    `json:"fulfilledRequests"`
	Status            string `json:"status"` // OVER | UNDER | EXACT
}

// ResourceVarianceReportDTO reporte de varianza de recursos de una línea.
type ResourceVarianceReportDTO struct {
	LineID     string                `json:"lineId"`
	LineName   string                `json:"lineName"`
	LineStatus string                `json:"lineStatus"`
	Resources  []ResourceVarianceDTO `json:"resources"`
}
