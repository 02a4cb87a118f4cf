package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// InventoryTransactionRepository puerto del log de auditoría del ledger. Solo inserta y lee:
// no existen Update ni Delete.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error)
	// ListByProduct lista en orden descendente (más reciente primero) con filtro de fechas opcional.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error)
	CountByProduct(ctx context.Context, productID string, from, to *time.Time) (int, error)
	// ListForReplay devuelve todo el historial del producto en orden ascendente de Seq.
	ListForReplay(ctx context.Context, productID string) ([]*entity.InventoryTransaction, error)
}
