package entity

import "time"

// LineStatus estado de una línea de producción.
type LineStatus string

// Estados de ProductionLine.
const (
	LineStatusPending    LineStatus = "PENDING"
	LineStatusInProgress LineStatus = "IN_PROGRESS"
	LineStatusCompleted  LineStatus = "COMPLETED"
	LineStatusCancelled  LineStatus = "CANCELLED"
)

// LineStatuses lista cerrada de estados válidos (orden de reporte).
var LineStatuses = []LineStatus{LineStatusPending, LineStatusInProgress, LineStatusCompleted, LineStatusCancelled}

// Valid indica si el estado pertenece a la enumeración.
func (s LineStatus) Valid() bool {
	for _, v := range LineStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ProductionLine corrida de fabricación de un producto terminado.
// FinalQuantity se fija una sola vez, al completar.
type ProductionLine struct {
	ID                string
	BusinessID        string
	FinishedProductID string
	PlannedQuantity   int64
	FinalQuantity     *int64
	Name              string
	Manager           string
	Description       string
	Status            LineStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}
