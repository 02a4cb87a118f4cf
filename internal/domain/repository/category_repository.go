package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// CategoryRepository puerto de lectura de categorías (el CRUD vive fuera de este servicio).
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
}
