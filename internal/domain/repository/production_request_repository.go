package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// RequestFilter filtros del listado de solicitudes de una línea.
type RequestFilter struct {
	LineID     string
	ResourceID string
	Status     entity.RequestStatus // vacío = todos
	DayNumber  int                  // 0 = todos
}

// RequestTransition cambio de estado condicional sobre una solicitud.
type RequestTransition struct {
	ID            string
	From          entity.RequestStatus
	To            entity.RequestStatus
	TransactionID string     // solo FULFILLED
	FulfilledAt   *time.Time // solo FULFILLED
	UpdatedAt     time.Time
}

// ProductionRequestRepository puerto de persistencia para las solicitudes diarias de recursos.
type ProductionRequestRepository interface {
	Create(ctx context.Context, req *entity.ProductionRequest) error
	GetByID(ctx context.Context, id string) (*entity.ProductionRequest, error)
	// GetForUpdate bloquea la fila de la solicitud (serializa cumplimientos concurrentes de la misma solicitud).
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]*entity.ProductionRequest, error)
	CountByResource(ctx context.Context, resourceID string) (int, error)
	Transition(ctx context.Context, t RequestTransition) (bool, error)
	// Delete borra la solicitud solo si su estado es from.
	Delete(ctx context.Context, id string, from entity.RequestStatus) (bool, error)
}
