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

var _ repository.ProductionResourceRepository = (*ProductionResourceRepo)(nil)

const resourceColumns = `id, production_line_id, resource_product_id, resource_name, needed_quantity,
	unit_of_measure, notes, created_at, updated_at`

// ProductionResourceRepo catálogo de recursos por línea.
type ProductionResourceRepo struct {
	q Querier
}

func NewProductionResourceRepository(q Querier) *ProductionResourceRepo {
	return &ProductionResourceRepo{q: q}
}

func (r *ProductionResourceRepo) Create(ctx context.Context, res *entity.ProductionResource) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID, res.ProductionLineID, res.ResourceProductID, res.ResourceName, res.NeededQuantity,
		res.UnitOfMeasure, res.Notes, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %s: %w", res.ResourceProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert production resource: %w", err)
	}
	return nil
}

func (r *ProductionResourceRepo) GetByID(ctx context.Context, id string) (*entity.ProductionResource, error) {
	res, err := scanResource(r.q.QueryRow(ctx, `SELECT `+resourceColumns+` FROM production_resources WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production resource: %w", err)
	}
	return res, nil
}

func (r *ProductionResourceRepo) ListByLine(ctx context.Context, lineID string) ([]*entity.ProductionResource, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+resourceColumns+` FROM production_resources WHERE production_line_id = $1 ORDER BY created_at, id`, lineID)
	if err != nil {
		return nil, fmt.Errorf("list production resources: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionResource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production resource: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

func (r *ProductionResourceRepo) Update(ctx context.Context, res *entity.ProductionResource) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_resources
		SET resource_name = $2, needed_quantity = $3, unit_of_measure = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		res.ID, res.ResourceName, res.NeededQuantity, res.UnitOfMeasure, res.Notes, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production resource: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("recurso %s: %w", res.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete borra el recurso solo si ninguna solicitud lo referencia.
func (r *ProductionResourceRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		DELETE FROM production_resources
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM production_requests WHERE resource_id = $1)`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete production resource: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanResource(row pgx.Row) (*entity.ProductionResource, error) {
	var res entity.ProductionResource
	err := row.Scan(&res.ID, &res.ProductionLineID, &res.ResourceProductID, &res.ResourceName,
		&res.NeededQuantity, &res.UnitOfMeasure, &res.Notes, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
