package entity

import "time"

// RequestStatus estado de una solicitud diaria de recurso.
type RequestStatus string

// Estados de ProductionRequest. FULFILLED y CANCELLED son terminales.
const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusFulfilled RequestStatus = "FULFILLED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// Valid indica si el estado pertenece a la enumeración.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusFulfilled, RequestStatusCancelled:
		return true
	}
	return false
}

// ProductionRequest consumo solicitado de un recurso para un día de la corrida.
type ProductionRequest struct {
	ID                string
	ProductionLineID  string
	ResourceID        string
	DayNumber         int
	RequestedQuantity int64
	Status            RequestStatus
	UserID            string
	TransactionID     string // transacción de débito, solo si FULFILLED
	CreatedAt         time.Time
	UpdatedAt         time.Time
	FulfilledAt       *time.Time
}
