package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductionResourceRepository puerto de persistencia del catálogo de recursos de cada línea.
type ProductionResourceRepository interface {
	Create(ctx context.Context, resource *entity.ProductionResource) error
	GetByID(ctx context.Context, id string) (*entity.ProductionResource, error)
	ListByLine(ctx context.Context, lineID string) ([]*entity.ProductionResource, error)
	Update(ctx context.Context, resource *entity.ProductionResource) error
	// Delete borra el recurso solo si ninguna solicitud lo referencia. Devuelve false si había solicitudes.
	Delete(ctx context.Context, id string) (bool, error)
}
