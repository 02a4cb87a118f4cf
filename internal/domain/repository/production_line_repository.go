package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// LineFilter filtros del listado de líneas.
type LineFilter struct {
	BusinessID string
	Status     entity.LineStatus // vacío = todos
	Limit      int
	Offset     int
}

// LineTransition cambio de estado condicional (compare-and-swap sobre status).
// FinalQuantity y CompletedAt solo se escriben si no son nil.
type LineTransition struct {
	ID            string
	BusinessID    string
	From          []entity.LineStatus
	To            entity.LineStatus
	FinalQuantity *int64
	CompletedAt   *time.Time
	UpdatedAt     time.Time
}

// ProductionLineRepository puerto de persistencia para ProductionLine.
// Todas las lecturas filtran por negocio: una línea de otro negocio es (nil, nil).
type ProductionLineRepository interface {
	Create(ctx context.Context, line *entity.ProductionLine) error
	GetByID(ctx context.Context, id, businessID string) (*entity.ProductionLine, error)
	// GetForUpdate bloquea la fila de la línea (serializa contra Transition).
	GetForUpdate(ctx context.Context, id, businessID string) (*entity.ProductionLine, error)
	List(ctx context.Context, filter LineFilter) ([]*entity.ProductionLine, int, error)
	// Transition aplica el cambio solo si el estado actual está en From. Devuelve las filas afectadas > 0.
	Transition(ctx context.Context, t LineTransition) (bool, error)
	// UpdateDetails actualiza campos descriptivos y PlannedQuantity si el estado actual está en allowed.
	UpdateDetails(ctx context.Context, line *entity.ProductionLine, allowed []entity.LineStatus) (bool, error)
	// Delete elimina la línea (y sus recursos) solo si el estado actual está en allowed.
	Delete(ctx context.Context, id, businessID string, allowed []entity.LineStatus) (bool, error)
}
