package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionAnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre líneas y solicitudes de producción.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// Summary conteos por estado y agregados de las líneas COMPLETED.
// Los promedios salen como NUMERIC y se leen con el codec de shopspring/decimal.
func (r *AnalyticsRepo) Summary(ctx context.Context, businessID string, from, to *time.Time) (*repository.ProductionSummaryResult, error) {
	const query = `
	SELECT
	    status,
	    COUNT(*)                                                             AS lines,
	    COALESCE(SUM(planned_quantity), 0)::BIGINT                           AS planned,
	    COALESCE(SUM(final_quantity), 0)::BIGINT                             AS final,
	    COALESCE(SUM(final_quantity - planned_quantity)::NUMERIC, 0)         AS variance_sum,
	    COALESCE(SUM((final_quantity - planned_quantity)::NUMERIC
	                 / planned_quantity * 100), 0)                           AS variance_pct_sum
	FROM production_lines
	WHERE business_id = $1
	  AND ($2::timestamptz IS NULL OR created_at >= $2)
	  AND ($3::timestamptz IS NULL OR created_at <= $3)
	GROUP BY status`

	rows, err := r.pool.Query(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summary query: %w", err)
	}
	defer rows.Close()

	res := &repository.ProductionSummaryResult{
		CountByStatus:         make(map[entity.LineStatus]int),
		AvgVariance:           decimal.Zero,
		AvgVariancePercentage: decimal.Zero,
	}
	var varianceSum, pctSum decimal.Decimal
	for rows.Next() {
		var (
			status        string
			lines         int
			planned, fin  int64
			vSum, pctPart decimal.Decimal
		)
		if err := rows.Scan(&status, &lines, &planned, &fin, &vSum, &pctPart); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s := entity.LineStatus(status)
		res.CountByStatus[s] = lines
		res.TotalPlanned += planned
		if s == entity.LineStatusCompleted {
			res.TotalFinal = fin
			res.CompletedLines = lines
			varianceSum = vSum
			pctSum = pctPart
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if res.CompletedLines > 0 {
		n := decimal.NewFromInt(int64(res.CompletedLines))
		res.AvgVariance = varianceSum.Div(n)
		res.AvgVariancePercentage = pctSum.Div(n)
	}
	return res, nil
}

// CompletedLines líneas COMPLETED del negocio en el rango, por fecha de cierre.
func (r *AnalyticsRepo) CompletedLines(ctx context.Context, businessID string, from, to *time.Time) ([]*entity.ProductionLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+lineColumns+`
		FROM production_lines
		WHERE business_id = $1 AND status = 'COMPLETED'
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY completed_at DESC, id`,
		businessID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("completed lines query: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completed line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ResourceConsumption suma por recurso lo cumplido y lo pendiente.
func (r *AnalyticsRepo) ResourceConsumption(ctx context.Context, lineID string) ([]repository.ResourceConsumptionResult, error) {
	const query = `
	SELECT
	    pr.id,
	    pr.resource_product_id,
	    pr.resource_name,
	    pr.unit_of_measure,
	    pr.needed_quantity,
	    COALESCE(SUM(rq.requested_quantity) FILTER (WHERE rq.status = 'FULFILLED'), 0)::BIGINT AS fulfilled,
	    COALESCE(SUM(rq.requested_quantity) FILTER (WHERE rq.status = 'PENDING'), 0)::BIGINT   AS pending,
	    COUNT(rq.id) FILTER (WHERE rq.status = 'FULFILLED')                             AS fulfilled_requests
	FROM production_resources pr
	LEFT JOIN production_requests rq ON rq.resource_id = pr.id
	WHERE pr.production_line_id = $1
	GROUP BY pr.id, pr.resource_product_id, pr.resource_name, pr.unit_of_measure, pr.needed_quantity, pr.created_at
	ORDER BY pr.created_at, pr.id`

	rows, err := r.pool.Query(ctx, query, lineID)
	if err != nil {
		return nil, fmt.Errorf("resource consumption query: %w", err)
	}
	defer rows.Close()

	var out []repository.ResourceConsumptionResult
	for rows.Next() {
		var c repository.ResourceConsumptionResult
		if err := rows.Scan(&c.ResourceID, &c.ResourceProductID, &c.ResourceName, &c.UnitOfMeasure,
			&c.NeededQuantity, &c.FulfilledQuantity, &c.PendingQuantity, &c.FulfilledRequests); err != nil {
			return nil, fmt.Errorf("scan resource consumption: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
