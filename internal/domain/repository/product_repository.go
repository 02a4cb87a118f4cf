package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.Product, error)
	CountByBusiness(ctx context.Context, businessID string) (int, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// CompareAndSetQuantity escribe newQty solo si la cantidad actual sigue siendo oldQty.
	// Devuelve false si otra escritura intervino.
	CompareAndSetQuantity(ctx context.Context, id string, oldQty, newQty int64) (bool, error)
}
