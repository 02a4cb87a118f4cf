package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	rules "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// RequestUseCase solicitudes diarias de recursos y su cumplimiento contra el inventario.
type RequestUseCase struct {
	d Deps
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(d Deps) *RequestUseCase {
	return &RequestUseCase{d: d.withDefaults("production_request")}
}

// Create registra una solicitud PENDING para un recurso de la línea.
func (uc *RequestUseCase) Create(ctx context.Context, businessID, userID, lineID string, in dto.CreateRequestRequest) (*dto.ProductionRequestResponse, error) {
	switch {
	case in.ResourceID == "":
		return nil, invalid("resourceId requerido")
	case in.DayNumber <= 0:
		return nil, invalid("dayNumber debe ser mayor que 0")
	case in.RequestedQuantity <= 0:
		return nil, invalid("requestedQuantity debe ser mayor que 0")
	}
	var req *entity.ProductionRequest
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		line, err := lockLine(ctx, repos, lineID, businessID, rules.ActionCreateRequest)
		if err != nil {
			return err
		}
		res, err := repos.Resources.GetByID(ctx, in.ResourceID)
		if err != nil {
			return err
		}
		if res == nil || res.ProductionLineID != line.ID {
			return notFound("recurso de la línea", in.ResourceID)
		}
		now := uc.d.Now()
		req = &entity.ProductionRequest{
			ID:                uuid.New().String(),
			ProductionLineID:  line.ID,
			ResourceID:        res.ID,
			DayNumber:         in.DayNumber,
			RequestedQuantity: in.RequestedQuantity,
			Status:            entity.RequestStatusPending,
			UserID:            userID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		return repos.Requests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.d.Log.Info().
		Str("request_id", req.ID).
		Str("line_id", lineID).
		Int("day", req.DayNumber).
		Int64("requested", req.RequestedQuantity).
		Msg("solicitud de recurso creada")
	out := toRequestResponse(req)
	return &out, nil
}

// Fulfill consume la solicitud: débito del producto recurso y PENDING -> FULFILLED en una sola
// transacción. Con stock insuficiente la solicitud queda PENDING y sin cambios.
// Orden de bloqueo: línea, solicitud, producto.
func (uc *RequestUseCase) Fulfill(ctx context.Context, businessID, userID, requestID string) (*dto.FulfillmentResponse, error) {
	var (
		req   *entity.ProductionRequest
		debit *inventory.LedgerResult
	)
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		req, err = lockRequest(ctx, repos, businessID, requestID, rules.ActionConsume, rules.ActionFulfill)
		if err != nil {
			return err
		}
		res, err := repos.Resources.GetByID(ctx, req.ResourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return notFound("recurso", req.ResourceID)
		}
		debit, err = uc.d.Ledger.DebitInTx(ctx, repos, inventory.LedgerInput{
			ProductID:   res.ResourceProductID,
			BusinessID:  businessID,
			UserID:      userID,
			Amount:      req.RequestedQuantity,
			Reason:      entity.ReasonProductionUsage,
			ReferenceID: req.ID,
		})
		if err != nil {
			return err
		}
		now := uc.d.Now()
		ok, err := repos.Requests.Transition(ctx, repository.RequestTransition{
			ID:            req.ID,
			From:          entity.RequestStatusPending,
			To:            entity.RequestStatusFulfilled,
			TransactionID: debit.TransactionID,
			FulfilledAt:   &now,
			UpdatedAt:     now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("solicitud %s ya no está pendiente: %w", req.ID, domain.ErrInvalidState)
		}
		req.Status = entity.RequestStatusFulfilled
		req.TransactionID = debit.TransactionID
		req.FulfilledAt = &now
		req.UpdatedAt = now
		return nil
	})
	uc.d.Metrics.RequestTransition(string(rules.ActionFulfill), ports.Outcome(err))
	if err != nil {
		return nil, err
	}
	uc.d.Log.Info().
		Str("request_id", req.ID).
		Str("line_id", req.ProductionLineID).
		Str("user_id", userID).
		Str("transaction_id", debit.TransactionID).
		Int64("new_quantity", debit.NewQuantity).
		Msg("solicitud cumplida")
	return &dto.FulfillmentResponse{
		Request:     toRequestResponse(req),
		OldQuantity: debit.OldQuantity,
		NewQuantity: debit.NewQuantity,
	}, nil
}

// Cancel PENDING -> CANCELLED. No toca el inventario.
func (uc *RequestUseCase) Cancel(ctx context.Context, businessID, requestID string) (*dto.ProductionRequestResponse, error) {
	var req *entity.ProductionRequest
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		req, err = lockRequest(ctx, repos, businessID, requestID, "", rules.ActionCancel)
		if err != nil {
			return err
		}
		to, _ := rules.NextRequestStatus(req.Status, rules.ActionCancel)
		now := uc.d.Now()
		ok, err := repos.Requests.Transition(ctx, repository.RequestTransition{
			ID:        req.ID,
			From:      req.Status,
			To:        to,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("solicitud %s ya no está pendiente: %w", req.ID, domain.ErrInvalidState)
		}
		req.Status = to
		req.UpdatedAt = now
		return nil
	})
	uc.d.Metrics.RequestTransition(string(rules.ActionCancel), ports.Outcome(err))
	if err != nil {
		return nil, err
	}
	uc.d.Log.Info().Str("request_id", requestID).Msg("solicitud cancelada")
	out := toRequestResponse(req)
	return &out, nil
}

// Delete elimina una solicitud PENDING.
func (uc *RequestUseCase) Delete(ctx context.Context, businessID, requestID string) error {
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		req, err := lockRequest(ctx, repos, businessID, requestID, "", rules.ActionDeleteRequest)
		if err != nil {
			return err
		}
		ok, err := repos.Requests.Delete(ctx, req.ID, req.Status)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("solicitud %s ya no está pendiente: %w", req.ID, domain.ErrInvalidState)
		}
		return nil
	})
	uc.d.Metrics.RequestTransition(string(rules.ActionDeleteRequest), ports.Outcome(err))
	if err != nil {
		return err
	}
	uc.d.Log.Info().Str("request_id", requestID).Msg("solicitud eliminada")
	return nil
}

// List solicitudes de la línea, filtrables por estado y día.
func (uc *RequestUseCase) List(ctx context.Context, businessID, lineID string, in dto.ListRequestsRequest) ([]dto.ProductionRequestResponse, error) {
	status := entity.RequestStatus(in.Status)
	if status != "" && !status.Valid() {
		return nil, invalid("status %q desconocido", in.Status)
	}
	if in.DayNumber < 0 {
		return nil, invalid("day debe ser >= 0")
	}
	line, err := uc.d.Lines.GetByID(ctx, lineID, businessID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, notFound("línea de producción", lineID)
	}
	list, err := uc.d.Requests.List(ctx, repository.RequestFilter{
		LineID:    lineID,
		Status:    status,
		DayNumber: in.DayNumber,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRequestResponse(r))
	}
	return out, nil
}

// lockRequest bloquea la línea y luego la solicitud, verificando negocio y transiciones.
// lineAction vacío omite la comprobación sobre el estado de la línea.
func lockRequest(ctx context.Context, repos repository.TxRepos, businessID, requestID string, lineAction rules.LineAction, action rules.RequestAction) (*entity.ProductionRequest, error) {
	peek, err := repos.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, notFound("solicitud", requestID)
	}
	line, err := repos.Lines.GetForUpdate(ctx, peek.ProductionLineID, businessID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, notFound("solicitud", requestID)
	}
	if lineAction != "" {
		if err := rules.CheckLine(line.Status, lineAction); err != nil {
			return nil, fmt.Errorf("línea %s: %w", line.ID, err)
		}
	}
	req, err := repos.Requests.GetForUpdate(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, notFound("solicitud", requestID)
	}
	if _, err := rules.NextRequestStatus(req.Status, action); err != nil {
		return nil, fmt.Errorf("solicitud %s: %w", requestID, err)
	}
	return req, nil
}
