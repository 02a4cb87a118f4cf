package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionLineRepository = (*ProductionLineRepo)(nil)

const lineColumns = `id, business_id, finished_product_id, planned_quantity, final_quantity, name, manager,
	description, status, created_at, updated_at, completed_at`

// ProductionLineRepo persistencia de líneas. Toda transición es un UPDATE condicional sobre status.
type ProductionLineRepo struct {
	q Querier
}

// NewProductionLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionLineRepository(q Querier) *ProductionLineRepo {
	return &ProductionLineRepo{q: q}
}

func (r *ProductionLineRepo) Create(ctx context.Context, l *entity.ProductionLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_lines (`+lineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.BusinessID, l.FinishedProductID, l.PlannedQuantity, l.FinalQuantity, l.Name, l.Manager,
		l.Description, string(l.Status), l.CreatedAt, l.UpdatedAt, l.CompletedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %s: %w", l.FinishedProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert production line: %w", err)
	}
	return nil
}

func (r *ProductionLineRepo) GetByID(ctx context.Context, id, businessID string) (*entity.ProductionLine, error) {
	return r.getOne(ctx, `SELECT `+lineColumns+` FROM production_lines WHERE id = $1 AND business_id = $2`, id, businessID)
}

// GetForUpdate bloquea la fila de la línea (SELECT FOR UPDATE).
func (r *ProductionLineRepo) GetForUpdate(ctx context.Context, id, businessID string) (*entity.ProductionLine, error) {
	return r.getOne(ctx, `SELECT `+lineColumns+` FROM production_lines WHERE id = $1 AND business_id = $2 FOR UPDATE`, id, businessID)
}

func (r *ProductionLineRepo) getOne(ctx context.Context, query, id, businessID string) (*entity.ProductionLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production line: %w", err)
	}
	return l, nil
}

// List líneas del negocio, más recientes primero, con el total para paginar.
func (r *ProductionLineRepo) List(ctx context.Context, f repository.LineFilter) ([]*entity.ProductionLine, int, error) {
	where := `business_id = $1 AND ($2 = '' OR status = $2)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM production_lines WHERE `+where,
		f.BusinessID, string(f.Status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count production lines: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT `+lineColumns+` FROM production_lines WHERE `+where+`
		ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`,
		f.BusinessID, string(f.Status), f.Limit, f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list production lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan production line: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// Transition UPDATE ... WHERE status = ANY(from). final_quantity y completed_at solo se tocan si vienen.
func (r *ProductionLineRepo) Transition(ctx context.Context, t repository.LineTransition) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_lines
		SET status         = $4,
		    final_quantity = COALESCE($5, final_quantity),
		    completed_at   = COALESCE($6, completed_at),
		    updated_at     = $7
		WHERE id = $1 AND business_id = $2 AND status = ANY($3)`,
		t.ID, t.BusinessID, statusArgs(t.From), string(t.To), t.FinalQuantity, t.CompletedAt, t.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("transition production line: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// UpdateDetails actualiza campos descriptivos y cantidad planeada si el estado está en allowed.
func (r *ProductionLineRepo) UpdateDetails(ctx context.Context, l *entity.ProductionLine, allowed []entity.LineStatus) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_lines
		SET name = $4, manager = $5, description = $6, planned_quantity = $7, updated_at = $8
		WHERE id = $1 AND business_id = $2 AND status = ANY($3)`,
		l.ID, l.BusinessID, statusArgs(allowed), l.Name, l.Manager, l.Description, l.PlannedQuantity, l.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update production line: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Delete borra la línea si su estado está en allowed. Recursos y solicitudes caen por ON DELETE CASCADE.
func (r *ProductionLineRepo) Delete(ctx context.Context, id, businessID string, allowed []entity.LineStatus) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM production_lines WHERE id = $1 AND business_id = $2 AND status = ANY($3)`,
		id, businessID, statusArgs(allowed),
	)
	if err != nil {
		return false, fmt.Errorf("delete production line: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanLine(row pgx.Row) (*entity.ProductionLine, error) {
	var l entity.ProductionLine
	var status string
	err := row.Scan(&l.ID, &l.BusinessID, &l.FinishedProductID, &l.PlannedQuantity, &l.FinalQuantity,
		&l.Name, &l.Manager, &l.Description, &status, &l.CreatedAt, &l.UpdatedAt, &l.CompletedAt)
	if err != nil {
		return nil, err
	}
	l.Status = entity.LineStatus(status)
	return &l, nil
}
