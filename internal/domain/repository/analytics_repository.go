package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductionSummaryResult resultado crudo del resumen de producción de un negocio.
// Lo produce la DB; el use case lo convierte en DTO.
type ProductionSummaryResult struct {
	CountByStatus         map[entity.LineStatus]int
	TotalPlanned          int64
	TotalFinal            int64 // solo líneas COMPLETED
	CompletedLines        int
	AvgVariance           decimal.Decimal // AVG(final - planned) de las COMPLETED
	AvgVariancePercentage decimal.Decimal // AVG((final - planned) / planned * 100) de las COMPLETED
}

// ResourceConsumptionResult consumo agregado de un recurso de una línea.
type ResourceConsumptionResult struct {
	ResourceID        string
	ResourceProductID string
	ResourceName      string
	UnitOfMeasure     string
	NeededQuantity    int64
	FulfilledQuantity int64 // Σ requested de solicitudes FULFILLED
	PendingQuantity   int64 // Σ requested de solicitudes PENDING
	FulfilledRequests int
}

// ProductionAnalyticsRepository consultas de solo lectura sobre líneas y solicitudes.
// El rango de fechas filtra por created_at de la línea; nil = sin límite.
type ProductionAnalyticsRepository interface {
	Summary(ctx context.Context, businessID string, from, to *time.Time) (*ProductionSummaryResult, error)
	CompletedLines(ctx context.Context, businessID string, from, to *time.Time) ([]*entity.ProductionLine, error)
	ResourceConsumption(ctx context.Context, lineID string) ([]ResourceConsumptionResult, error)
}
