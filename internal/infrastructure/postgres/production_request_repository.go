package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionRequestRepository = (*ProductionRequestRepo)(nil)

const requestColumns = `id, production_line_id, resource_id, day_number, requested_quantity, status, user_id,
	COALESCE(transaction_id::text, ''), created_at, updated_at, fulfilled_at`

// ProductionRequestRepo solicitudes diarias de recursos.
type ProductionRequestRepo struct {
	q Querier
}

func NewProductionRequestRepository(q Querier) *ProductionRequestRepo {
	return &ProductionRequestRepo{q: q}
}

func (r *ProductionRequestRepo) Create(ctx context.Context, req *entity.ProductionRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_requests
		    (id, production_line_id, resource_id, day_number, requested_quantity, status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.ID, req.ProductionLineID, req.ResourceID, req.DayNumber, req.RequestedQuantity,
		string(req.Status), req.UserID, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production request: %w", err)
	}
	return nil
}

func (r *ProductionRequestRepo) GetByID(ctx context.Context, id string) (*entity.ProductionRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM production_requests WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE).
func (r *ProductionRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM production_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductionRequestRepo) getOne(ctx context.Context, query, id string) (*entity.ProductionRequest, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production request: %w", err)
	}
	return req, nil
}

func (r *ProductionRequestRepo) List(ctx context.Context, f repository.RequestFilter) ([]*entity.ProductionRequest, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+requestColumns+` FROM production_requests
		WHERE production_line_id = $1
		  AND ($2 = '' OR resource_id::text = $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4 = 0 OR day_number = $4)
		ORDER BY day_number, created_at, id`,
		f.LineID, f.ResourceID, string(f.Status), f.DayNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("list production requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func (r *ProductionRequestRepo) CountByResource(ctx context.Context, resourceID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM production_requests WHERE resource_id = $1`, resourceID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count production requests: %w", err)
	}
	return n, nil
}

// Transition UPDATE condicional sobre status; transaction_id y fulfilled_at solo si vienen.
func (r *ProductionRequestRepo) Transition(ctx context.Context, t repository.RequestTransition) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_requests
		SET status = $3, transaction_id = COALESCE($4::uuid, transaction_id),
		    fulfilled_at = COALESCE($5, fulfilled_at), updated_at = $6
		WHERE id = $1 AND status = $2`,
		t.ID, string(t.From), string(t.To), nullIfEmpty(t.TransactionID), t.FulfilledAt, t.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("transition production request: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ProductionRequestRepo) Delete(ctx context.Context, id string, from entity.RequestStatus) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM production_requests WHERE id = $1 AND status = $2`, id, string(from))
	if err != nil {
		return false, fmt.Errorf("delete production request: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanRequest(row pgx.Row) (*entity.ProductionRequest, error) {
	var req entity.ProductionRequest
	var status string
	err := row.Scan(&req.ID, &req.ProductionLineID, &req.ResourceID, &req.DayNumber, &req.RequestedQuantity,
		&status, &req.UserID, &req.TransactionID, &req.CreatedAt, &req.UpdatedAt, &req.FulfilledAt)
	if err != nil {
		return nil, err
	}
	req.Status = entity.RequestStatus(status)
	return &req, nil
}
