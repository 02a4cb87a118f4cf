package production

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	rules "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ResourceUseCase catálogo de recursos de cada línea. Solo mutable mientras la línea no terminó.
type ResourceUseCase struct {
	d Deps
}

// NewResourceUseCase construye el caso de uso.
func NewResourceUseCase(d Deps) *ResourceUseCase {
	return &ResourceUseCase{d: d.withDefaults("production_resource")}
}

// Add agrega un recurso a la línea. El producto debe pertenecer al negocio de la línea.
func (uc *ResourceUseCase) Add(ctx context.Context, businessID, lineID string, in dto.ResourceInput) (*dto.ProductionResourceResponse, error) {
	if err := validateResource(in); err != nil {
		return nil, err
	}
	var res *entity.ProductionResource
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		line, err := lockLine(ctx, repos, lineID, businessID, rules.ActionAddResource)
		if err != nil {
			return err
		}
		p, err := ownedProduct(ctx, repos.Products, line.BusinessID, in.ResourceItemID)
		if err != nil {
			return err
		}
		res = newResource(line.ID, p, in, uc.d.Now())
		return repos.Resources.Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	uc.d.Log.Info().Str("line_id", lineID).Str("resource_id", res.ID).Msg("recurso agregado")
	out := toResourceResponse(res)
	return &out, nil
}

// Update modifica cantidad necesaria, unidad, nombre o notas. El producto recurso no cambia.
func (uc *ResourceUseCase) Update(ctx context.Context, businessID, resourceID string, in dto.UpdateResourceRequest) (*dto.ProductionResourceResponse, error) {
	if in.ActualNeededQuantity != nil && *in.ActualNeededQuantity <= 0 {
		return nil, invalid("actualNeededQuantity debe ser mayor que 0")
	}
	if in.UnitOfMeasure != nil && strings.TrimSpace(*in.UnitOfMeasure) == "" {
		return nil, invalid("unitOfMeasure no puede quedar vacío")
	}
	var res *entity.ProductionResource
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		res, err = lockResource(ctx, repos, businessID, resourceID, rules.ActionUpdateResource)
		if err != nil {
			return err
		}
		if in.ActualNeededQuantity != nil {
			res.NeededQuantity = *in.ActualNeededQuantity
		}
		if in.UnitOfMeasure != nil {
			res.UnitOfMeasure = strings.TrimSpace(*in.UnitOfMeasure)
		}
		if in.ResourceName != nil {
			res.ResourceName = strings.TrimSpace(*in.ResourceName)
		}
		if in.Notes != nil {
			res.Notes = strings.TrimSpace(*in.Notes)
		}
		res.UpdatedAt = uc.d.Now()
		return repos.Resources.Update(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	out := toResourceResponse(res)
	return &out, nil
}

// Delete borra el recurso. Con cualquier solicitud asociada (de cualquier estado) devuelve Conflict.
func (uc *ResourceUseCase) Delete(ctx context.Context, businessID, resourceID string) error {
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := lockResource(ctx, repos, businessID, resourceID, rules.ActionDeleteResource); err != nil {
			return err
		}
		n, err := repos.Requests.CountByResource(ctx, resourceID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("el recurso %s tiene %d solicitudes asociadas: %w", resourceID, n, domain.ErrConflict)
		}
		ok, err := repos.Resources.Delete(ctx, resourceID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("el recurso %s tiene solicitudes asociadas: %w", resourceID, domain.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.d.Log.Info().Str("resource_id", resourceID).Msg("recurso eliminado")
	return nil
}

// List recursos de la línea.
func (uc *ResourceUseCase) List(ctx context.Context, businessID, lineID string) ([]dto.ProductionResourceResponse, error) {
	line, err := uc.d.Lines.GetByID(ctx, lineID, businessID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, notFound("línea de producción", lineID)
	}
	list, err := uc.d.Resources.ListByLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionResourceResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResourceResponse(r))
	}
	return out, nil
}

// lockResource carga el recurso y bloquea su línea, que debe ser del negocio y admitir action.
func lockResource(ctx context.Context, repos repository.TxRepos, businessID, resourceID string, action rules.LineAction) (*entity.ProductionResource, error) {
	res, err := repos.Resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, notFound("recurso", resourceID)
	}
	if _, err := lockLine(ctx, repos, res.ProductionLineID, businessID, action); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound("recurso", resourceID)
		}
		return nil, err
	}
	return res, nil
}

func newResource(lineID string, p *entity.Product, in dto.ResourceInput, now time.Time) *entity.ProductionResource {
	name := strings.TrimSpace(in.ResourceName)
	if name == "" {
		name = p.Name
	}
	return &entity.ProductionResource{
		ID:                uuid.New().String(),
		ProductionLineID:  lineID,
		ResourceProductID: p.ID,
		ResourceName:      name,
		NeededQuantity:    in.ActualNeededQuantity,
		UnitOfMeasure:     strings.TrimSpace(in.UnitOfMeasure),
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func validateResource(in dto.ResourceInput) error {
	switch {
	case in.ResourceItemID == "":
		return invalid("resourceItemId requerido")
	case in.ActualNeededQuantity <= 0:
		return invalid("actualNeededQuantity debe ser mayor que 0")
	case strings.TrimSpace(in.UnitOfMeasure) == "":
		return invalid("unitOfMeasure requerido")
	}
	return nil
}
