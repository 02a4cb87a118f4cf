// Package production implementa el flujo de producción: máquina de estados de líneas,
// catálogo de recursos, cumplimiento de solicitudes diarias y analítica.
// Todo cambio de cantidad pasa por el ledger de inventario dentro de la misma transacción.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	rules "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Deps dependencias compartidas por los casos de uso de producción.
// Los repositorios sueltos se usan para lecturas; las escrituras van por TxRunner.
type Deps struct {
	TxRunner  inventory.TxRunner
	Ledger    *inventory.Ledger
	Products  repository.ProductRepository
	Lines     repository.ProductionLineRepository
	Resources repository.ProductionResourceRepository
	Requests  repository.ProductionRequestRepository
	Metrics   ports.Metrics
	Log       zerolog.Logger
	Now       func() time.Time
}

func (d Deps) withDefaults(component string) Deps {
	if d.Metrics == nil {
		d.Metrics = ports.NopMetrics{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	d.Log = d.Log.With().Str("component", component).Logger()
	return d
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, domain.ErrValidation)...)
}

// ownedProduct verifica que el producto exista y pertenezca al negocio.
func ownedProduct(ctx context.Context, products repository.ProductRepository, businessID, productID string) (*entity.Product, error) {
	p, err := products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.BusinessID != businessID {
		return nil, notFound("producto", productID)
	}
	return p, nil
}

// lockLine bloquea la línea del negocio y comprueba que action sea legal en su estado actual.
func lockLine(ctx context.Context, repos repository.TxRepos, lineID, businessID string, action rules.LineAction) (*entity.ProductionLine, error) {
	line, err := repos.Lines.GetForUpdate(ctx, lineID, businessID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, notFound("línea de producción", lineID)
	}
	if err := rules.CheckLine(line.Status, action); err != nil {
		return nil, fmt.Errorf("línea %s: %w", lineID, err)
	}
	return line, nil
}

// lineRejected explica por qué un update condicional sobre la línea no afectó filas.
func lineRejected(ctx context.Context, lines repository.ProductionLineRepository, lineID, businessID string, action rules.LineAction) error {
	line, err := lines.GetByID(ctx, lineID, businessID)
	if err != nil {
		return err
	}
	if line == nil {
		return notFound("línea de producción", lineID)
	}
	if err := rules.CheckLine(line.Status, action); err != nil {
		return fmt.Errorf("línea %s: %w", lineID, err)
	}
	return fmt.Errorf("línea %s cambió de estado durante %s: %w", lineID, action, domain.ErrInvalidState)
}
