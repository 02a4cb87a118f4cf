package ports

import (
	"errors"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

// Metrics puerto de observabilidad de los casos de uso. Lo implementa el adaptador Prometheus;
// NopMetrics sirve para tests y para METRICS_ENABLED=false.
type Metrics interface {
	LedgerOperation(kind, outcome string)
	LineTransition(action, outcome string)
	RequestTransition(action, outcome string)
}

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) LedgerOperation(string, string)   {}
func (NopMetrics) LineTransition(string, string)    {}
func (NopMetrics) RequestTransition(string, string) {}

// Outcome traduce el resultado de una operación a una etiqueta de baja cardinalidad.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
