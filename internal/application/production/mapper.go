package production

import (
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

func toLineResponse(l *entity.ProductionLine, resources []*entity.ProductionResource) dto.ProductionLineResponse {
	out := dto.ProductionLineResponse{
		ID:                 l.ID,
		BusinessID:         l.BusinessID,
		ItemID:             l.FinishedProductID,
		ActualItemsNumber:  l.PlannedQuantity,
		FinalItemsProduced: l.FinalQuantity,
		Name:               l.Name,
		Manager:            l.Manager,
		Description:        l.Description,
		Status:             string(l.Status),
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
		CompletedAt:        l.CompletedAt,
	}
	if len(resources) > 0 {
		out.Resources = make([]dto.ProductionResourceResponse, 0, len(resources))
		for _, r := range resources {
			out.Resources = append(out.Resources, toResourceResponse(r))
		}
	}
	return out
}

func toResourceResponse(r *entity.ProductionResource) dto.ProductionResourceResponse {
	return dto.ProductionResourceResponse{
		ID:                   r.ID,
		ProductionLineID:     r.ProductionLineID,
		ResourceItemID:       r.ResourceProductID,
		ResourceName:         r.ResourceName,
		ActualNeededQuantity: r.NeededQuantity,
		UnitOfMeasure:        r.UnitOfMeasure,
		Notes:                r.Notes,
		CreatedAt:            r.CreatedAt,
	}
}

func toRequestResponse(r *entity.ProductionRequest) dto.ProductionRequestResponse {
	return dto.ProductionRequestResponse{
		ID:                r.ID,
		ProductionLineID:  r.ProductionLineID,
		ResourceID:        r.ResourceID,
		DayNumber:         r.DayNumber,
		RequestedQuantity: r.RequestedQuantity,
		Status:            string(r.Status),
		UserID:            r.UserID,
		TransactionID:     r.TransactionID,
		CreatedAt:         r.CreatedAt,
		FulfilledAt:       r.FulfilledAt,
	}
}
