package production

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Resultado de comparar consumo real contra cantidad necesaria.
const (
	ConsumptionOver  = "OVER"
	ConsumptionUnder = "UNDER"
	ConsumptionExact = "EXACT"
)

// Variance diferencia entre lo producido y lo planeado.
type Variance struct {
	Units      int64           // final - planned
	Percentage decimal.Decimal // Units / planned * 100, 2 decimales
}

// ComputeVariance calcula la varianza de una corrida. planned <= 0 devuelve porcentaje 0.
func ComputeVariance(final, planned int64) Variance {
	units := final - planned
	return Variance{Units: units, Percentage: Percent(units, planned)}
}

// Efficiency final / planned * 100, 2 decimales.
func Efficiency(final, planned int64) decimal.Decimal {
	return Percent(final, planned)
}

// Percent part / whole * 100 redondeado a 2 decimales; whole <= 0 devuelve 0.
func Percent(part, whole int64) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Div(decimal.NewFromInt(whole)).Mul(hundred).Round(2)
}

// DurationDays días completos entre creación y cierre, redondeando hacia arriba.
func DurationDays(createdAt, completedAt time.Time) int {
	d := completedAt.Sub(createdAt)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// ConsumptionStatus clasifica consumed frente a needed.
func ConsumptionStatus(consumed, needed int64) string {
	switch {
	case consumed > needed:
		return ConsumptionOver
	case consumed < needed:
		return ConsumptionUnder
	default:
		return ConsumptionExact
	}
}
