package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResourceInput recurso declarado al crear una línea o al agregarlo después.
type ResourceInput struct {
	ResourceItemID       string `json:"resourceItemId" validate:"required"`
	ResourceName         string `json:"resourceName" validate:"max=200"`
	ActualNeededQuantity int64  `json:"actualNeededQuantity" validate:"required,gt=0"`
	UnitOfMeasure        string `json:"unitOfMeasure" validate:"required,max=20"`
	Notes                string `json:"notes" validate:"max=500"`
}

// CreateProductionLineRequest body para POST /api/production-lines.
type CreateProductionLineRequest struct {
	ItemID            string          `json:"itemId" validate:"required"`
	BusinessID        string          `json:"businessId"`
	ActualItemsNumber int64           `json:"actualItemsNumber" validate:"required,gt=0"`
	Name              string          `json:"name" validate:"required,max=200"`
	Manager           string          `json:"manager" validate:"required,max=200"`
	Description       string          `json:"description" validate:"max=1000"`
	Resources         []ResourceInput `json:"resources" validate:"required,min=1,dive"`
}

// UpdateProductionLineRequest body para PUT /api/production-lines/:id (campos opcionales).
type UpdateProductionLineRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	Manager           *string `json:"manager" validate:"omitempty,min=1,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=1000"`
	ActualItemsNumber *int64  `json:"actualItemsNumber" validate:"omitempty,gt=0"`
}

// CompleteProductionLineRequest body para PUT /api/production-lines/:id/complete.
type CompleteProductionLineRequest struct {
	FinalItemsProduced *int64 `json:"finalItemsProduced" validate:"required,min=0"`
}

// ListProductionLinesRequest query de GET /api/production-lines.
type ListProductionLinesRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

// UpdateResourceRequest body para PUT /api/production-resources/:id.
type UpdateResourceRequest struct {
	ActualNeededQuantity *int64  `json:"actualNeededQuantity" validate:"omitempty,gt=0"`
	UnitOfMeasure        *string `json:"unitOfMeasure" validate:"omitempty,min=1,max=20"`
	ResourceName         *string `json:"resourceName" validate:"omitempty,max=200"`
	Notes                *string `json:"notes" validate:"omitempty,max=500"`
}

// CreateRequestRequest body para POST /api/production-lines/:id/requests.
type CreateRequestRequest struct {
	ResourceID        string `json:"resourceId" validate:"required"`
	DayNumber         int    `json:"dayNumber" validate:"required,gt=0"`
	RequestedQuantity int64  `json:"requestedQuantity" validate:"required,gt=0"`
}

// ListRequestsRequest query de GET /api/production-lines/:id/requests.
type ListRequestsRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=PENDING FULFILLED CANCELLED"`
	DayNumber int    `query:"day" validate:"min=0"`
}

// ProductionResourceResponse salida de un recurso.
type ProductionResourceResponse struct {
	ID                   string    `json:"id"`
	ProductionLineID     string    `json:"productionLineId"`
	ResourceItemID       string    `json:"resourceItemId"`
	ResourceName         string    `json:"resourceName"`
	ActualNeededQuantity int64     `json:"actualNeededQuantity"`
	UnitOfMeasure        string    `json:"unitOfMeasure"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ProductionLineResponse salida de una línea de producción.
type ProductionLineResponse struct {
	ID                 string                       `json:"id"`
	BusinessID         string                       `json:"businessId"`
	ItemID             string                       `json:"itemId"`
	ActualItemsNumber  int64                        `json:"actualItemsNumber"`
	FinalItemsProduced *int64                       `json:"finalItemsProduced"`
	Name               string                       `json:"name"`
	Manager            string                       `json:"manager"`
	Description        string                       `json:"description,omitempty"`
	Status             string                       `json:"status"`
	CreatedAt          time.Time                    `json:"createdAt"`
	UpdatedAt          time.Time                    `json:"updatedAt"`
	CompletedAt        *time.Time                   `json:"completedAt"`
	Resources          []ProductionResourceResponse `json:"resources,omitempty"`
}

// ProductionLineListResponse lista paginada de líneas.
type ProductionLineListResponse struct {
	Items []ProductionLineResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// CompletionResponse resultado de completar una línea.
type CompletionResponse struct {
	Line               ProductionLineResponse `json:"line"`
	Variance           int64                  `json:"variance"`
	VariancePercentage decimal.Decimal        `json:"variancePercentage"`
	TransactionID      string                 `json:"transactionId,omitempty"`
}

// ProductionRequestResponse salida de una solicitud diaria.
type ProductionRequestResponse struct {
	ID                string     `json:"id"`
	ProductionLineID  string     `json:"productionLineId"`
	ResourceID        string     `json:"resourceId"`
	DayNumber         int        `json:"dayNumber"`
	RequestedQuantity int64      `json:"requestedQuantity"`
	Status            string     `json:"status"`
	UserID            string     `json:"userId"`
	TransactionID     string     `json:"transactionId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	FulfilledAt       *time.Time `json:"fulfilledAt,omitempty"`
}

// FulfillmentResponse resultado de cumplir una solicitud.
type FulfillmentResponse struct {
	Request     ProductionRequestResponse `json:"request"`
	OldQuantity int64                     `json:"oldQuantity"`
	NewQuantity int64                     `json:"newQuantity"`
}
