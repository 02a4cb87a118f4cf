package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

const transactionColumns = `id, seq, product_id, business_id, user_id, type, old_quantity, new_quantity,
	amount, reason, COALESCE(reference_id, ''), created_at`

// InventoryTransactionRepo log de auditoría del ledger. Solo INSERT y SELECT; un trigger rechaza UPDATE/DELETE.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create inserta la fila y devuelve en tx.Seq el orden asignado por la secuencia.
func (r *InventoryTransactionRepo) Create(ctx context.Context, tx *entity.InventoryTransaction) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO inventory_transactions
		    (id, product_id, business_id, user_id, type, old_quantity, new_quantity, amount, reason, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`,
		tx.ID, tx.ProductID, tx.BusinessID, tx.UserID, string(tx.Type), tx.OldQuantity, tx.NewQuantity,
		tx.Amount, tx.Reason, nullIfEmpty(tx.ReferenceID), tx.CreatedAt,
	).Scan(&tx.Seq)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

func (r *InventoryTransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM inventory_transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	return t, nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *InventoryTransactionRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	where, args := transactionFilter(productID, from, to)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM inventory_transactions WHERE %s ORDER BY seq DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)-1, len(args))
	return r.list(ctx, query, args...)
}

func (r *InventoryTransactionRepo) CountByProduct(ctx context.Context, productID string, from, to *time.Time) (int, error) {
	where, args := transactionFilter(productID, from, to)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_transactions WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory transactions: %w", err)
	}
	return n, nil
}

// ListForReplay historial completo en orden de inserción.
func (r *InventoryTransactionRepo) ListForReplay(ctx context.Context, productID string) ([]*entity.InventoryTransaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM inventory_transactions WHERE product_id = $1 ORDER BY seq`, productID)
}

func (r *InventoryTransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func transactionFilter(productID string, from, to *time.Time) (string, []any) {
	conds := []string{"product_id = $1"}
	args := []any{productID}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	var typ string
	err := row.Scan(&t.ID, &t.Seq, &t.ProductID, &t.BusinessID, &t.UserID, &typ, &t.OldQuantity,
		&t.NewQuantity, &t.Amount, &t.Reason, &t.ReferenceID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = entity.TransactionType(typ)
	return &t, nil
}
