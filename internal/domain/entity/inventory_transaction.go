package entity

import "time"

// TransactionType tipo de movimiento del ledger.
type TransactionType string

// Tipos de transacción de inventario.
const (
	TransactionCredit TransactionType = "CREDIT" // entrada
	TransactionDebit  TransactionType = "DEBIT"  // salida
)

// Razones estándar usadas por el flujo de producción.
const (
	ReasonProductionCompleted = "production completed"
	ReasonProductionUsage     = "production usage"
)

// InventoryTransaction registro inmutable de auditoría: una fila por cada crédito/débito exitoso.
// Invariante: NewQuantity = OldQuantity ± Amount según Type; Amount > 0.
type InventoryTransaction struct {
	ID          string
	Seq         int64 // orden de inserción, define el orden de replay
	ProductID   string
	BusinessID  string
	UserID      string
	Type        TransactionType
	OldQuantity int64
	NewQuantity int64
	Amount      int64
	Reason      string
	ReferenceID string // opcional: línea o solicitud de producción
	CreatedAt   time.Time
}

// Delta devuelve el cambio con signo que aplica la transacción.
func (t *InventoryTransaction) Delta() int64 {
	if t.Type == TransactionDebit {
		return -t.Amount
	}
	return t.Amount
}

// Consistent indica si la fila cumple NewQuantity = OldQuantity ± Amount.
func (t *InventoryTransaction) Consistent() bool {
	return t.Amount > 0 && t.OldQuantity+t.Delta() == t.NewQuantity
}
