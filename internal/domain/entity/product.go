package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un negocio.
// Quantity solo la modifica el ledger de inventario (nunca negativa); el resto de campos es CRUD simple.
type Product struct {
	ID          string
	BusinessID  string
	CategoryID  string
	SKU         string
	Name        string
	Price       decimal.Decimal
	Quantity    int64
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
