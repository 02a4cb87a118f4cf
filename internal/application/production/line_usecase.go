package production

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	rules "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// LineUseCase máquina de estados de las líneas de producción.
type LineUseCase struct {
	d Deps
}

// NewLineUseCase construye el caso de uso.
func NewLineUseCase(d Deps) *LineUseCase {
	return &LineUseCase{d: d.withDefaults("production_line")}
}

// Create crea la línea en PENDING junto con su catálogo de recursos, todo o nada.
// El producto terminado y cada producto recurso deben pertenecer al negocio.
func (uc *LineUseCase) Create(ctx context.Context, businessID string, in dto.CreateProductionLineRequest) (*dto.ProductionLineResponse, error) {
	if in.BusinessID != "" && in.BusinessID != businessID {
		return nil, fmt.Errorf("businessId no coincide con el negocio autenticado: %w", domain.ErrForbidden)
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := uc.d.Now()
	line := &entity.ProductionLine{
		ID:                uuid.New().String(),
		BusinessID:        businessID,
		FinishedProductID: in.ItemID,
		PlannedQuantity:   in.ActualItemsNumber,
		Name:              strings.TrimSpace(in.Name),
		Manager:           strings.TrimSpace(in.Manager),
		Description:       strings.TrimSpace(in.Description),
		Status:            entity.LineStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	resources := make([]*entity.ProductionResource, 0, len(in.Resources))

	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := ownedProduct(ctx, repos.Products, businessID, in.ItemID); err != nil {
			return err
		}
		for _, r := range in.Resources {
			p, err := ownedProduct(ctx, repos.Products, businessID, r.ResourceItemID)
			if err != nil {
				return err
			}
			resources = append(resources, newResource(line.ID, p, r, now))
		}
		if err := repos.Lines.Create(ctx, line); err != nil {
			return err
		}
		for _, r := range resources {
			if err := repos.Resources.Create(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.d.Log.Info().
		Str("line_id", line.ID).
		Str("business_id", businessID).
		Int64("planned", line.PlannedQuantity).
		Int("resources", len(resources)).
		Msg("línea de producción creada")
	out := toLineResponse(line, resources)
	return &out, nil
}

// Get devuelve la línea con sus recursos.
func (uc *LineUseCase) Get(ctx context.Context, businessID, lineID string) (*dto.ProductionLineResponse, error) {
	line, err := uc.d.Lines.GetByID(ctx, lineID, businessID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, notFound("línea de producción", lineID)
	}
	resources, err := uc.d.Resources.ListByLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	out := toLineResponse(line, resources)
	return &out, nil
}

// List lista las líneas del negocio, opcionalmente filtradas por estado.
func (uc *LineUseCase) List(ctx context.Context, businessID string, in dto.ListProductionLinesRequest) (*dto.ProductionLineListResponse, error) {
	status := entity.LineStatus(in.Status)
	if status != "" && !status.Valid() {
		return nil, invalid("status %q desconocido", in.Status)
	}
	in.DefaultPage()
	list, total, err := uc.d.Lines.List(ctx, repository.LineFilter{
		BusinessID: businessID,
		Status:     status,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionLineResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toLineResponse(l, nil))
	}
	return &dto.ProductionLineListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: in.Page, Limit: in.Limit, Total: total},
	}, nil
}

// Start PENDING -> IN_PROGRESS con un update condicional; dos llamadas concurrentes dejan exactamente un éxito.
// Una línea inexistente o de otro negocio devuelve domain.ErrNotFound (404), no ErrInvalidState.
func (uc *LineUseCase) Start(ctx context.Context, businessID, lineID string) (*dto.ProductionLineResponse, error) {
	err := uc.start(ctx, businessID, lineID)
	uc.d.Metrics.LineTransition(string(rules.ActionStart), ports.Outcome(err))
	if err != nil {
		return nil, err
	}
	uc.d.Log.Info().Str("line_id", lineID).Str("business_id", businessID).Msg("línea iniciada")
	return uc.Get(ctx, businessID, lineID)
}

func (uc *LineUseCase) start(ctx context.Context, businessID, lineID string) error {
	to, err := rules.NextLineStatus(entity.LineStatusPending, rules.ActionStart)
	if err != nil {
		return err
	}
	ok, err := uc.d.Lines.Transition(ctx, repository.LineTransition{
		ID:         lineID,
		BusinessID: businessID,
		From:       rules.LineFromStates(rules.ActionStart),
		To:         to,
		UpdatedAt:  uc.d.Now(),
	})
	if err != nil {
		return err
	}
	if !ok {
		return lineRejected(ctx, uc.d.Lines, lineID, businessID, rules.ActionStart)
	}
	return nil
}

// Complete IN_PROGRESS -> COMPLETED fijando finalQuantity una sola vez y acreditando el producto
// terminado en la misma transacción. Si el crédito falla, la línea sigue IN_PROGRESS.
// finalQuantity = 0 completa sin fila en el ledger (el ledger rechaza montos no positivos).
func (uc *LineUseCase) Complete(ctx context.Context, businessID, userID, lineID string, finalQuantity int64) (*dto.CompletionResponse, error) {
	if finalQuantity < 0 {
		return nil, invalid("finalItemsProduced debe ser >= 0")
	}
	var (
		line   *entity.ProductionLine
		credit *inventory.LedgerResult
	)
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		line, err = lockLine(ctx, repos, lineID, businessID, rules.ActionComplete)
		if err != nil {
			return err
		}
		to, _ := rules.NextLineStatus(line.Status, rules.ActionComplete)
		now := uc.d.Now()
		final := finalQuantity
		ok, err := repos.Lines.Transition(ctx, repository.LineTransition{
			ID:            lineID,
			BusinessID:    businessID,
			From:          rules.LineFromStates(rules.ActionComplete),
			To:            to,
			FinalQuantity: &final,
			CompletedAt:   &now,
			UpdatedAt:     now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("línea %s ya no está en curso: %w", lineID, domain.ErrInvalidState)
		}
		line.Status = to
		line.FinalQuantity = &final
		line.CompletedAt = &now
		line.UpdatedAt = now

		if finalQuantity == 0 {
			return nil
		}
		credit, err = uc.d.Ledger.CreditInTx(ctx, repos, inventory.LedgerInput{
			ProductID:   line.FinishedProductID,
			BusinessID:  businessID,
			UserID:      userID,
			Amount:      finalQuantity,
			Reason:      entity.ReasonProductionCompleted,
			ReferenceID: line.ID,
		})
		return err
	})
	uc.d.Metrics.LineTransition(string(rules.ActionComplete), ports.Outcome(err))
	if err != nil {
		return nil, err
	}

	variance := rules.ComputeVariance(finalQuantity, line.PlannedQuantity)
	uc.d.Log.Info().
		Str("line_id", lineID).
		Str("business_id", businessID).
		Str("user_id", userID).
		Int64("planned", line.PlannedQuantity).
		Int64("final", finalQuantity).
		Int64("variance", variance.Units).
		Msg("línea completada")

	out := &dto.CompletionResponse{
		Line:               toLineResponse(line, nil),
		Variance:           variance.Units,
		VariancePercentage: variance.Percentage,
	}
	if credit != nil {
		out.TransactionID = credit.TransactionID
	}
	return out, nil
}

// Delete elimina una línea PENDING con sus recursos. Cualquier otro estado es InvalidState.
func (uc *LineUseCase) Delete(ctx context.Context, businessID, lineID string) error {
	ok, err := uc.d.Lines.Delete(ctx, lineID, businessID, rules.LineFromStates(rules.ActionDelete))
	if err == nil && !ok {
		err = lineRejected(ctx, uc.d.Lines, lineID, businessID, rules.ActionDelete)
	}
	uc.d.Metrics.LineTransition(string(rules.ActionDelete), ports.Outcome(err))
	if err != nil {
		return err
	}
	uc.d.Log.Info().Str("line_id", lineID).Str("business_id", businessID).Msg("línea eliminada")
	return nil
}

// Update modifica los campos descriptivos. actualItemsNumber solo mientras la línea está PENDING.
func (uc *LineUseCase) Update(ctx context.Context, businessID, lineID string, in dto.UpdateProductionLineRequest) (*dto.ProductionLineResponse, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	action := rules.ActionUpdate
	if in.ActualItemsNumber != nil {
		action = rules.ActionUpdatePlanned
	}
	var line *entity.ProductionLine
	err := uc.d.TxRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		line, err = lockLine(ctx, repos, lineID, businessID, action)
		if err != nil {
			return err
		}
		if in.Name != nil {
			line.Name = strings.TrimSpace(*in.Name)
		}
		if in.Manager != nil {
			line.Manager = strings.TrimSpace(*in.Manager)
		}
		if in.Description != nil {
			line.Description = strings.TrimSpace(*in.Description)
		}
		if in.ActualItemsNumber != nil {
			line.PlannedQuantity = *in.ActualItemsNumber
		}
		line.UpdatedAt = uc.d.Now()
		ok, err := repos.Lines.UpdateDetails(ctx, line, rules.LineFromStates(action))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("línea %s cambió de estado: %w", lineID, domain.ErrInvalidState)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, businessID, line.ID)
}

func validateCreate(in dto.CreateProductionLineRequest) error {
	switch {
	case in.ItemID == "":
		return invalid("itemId requerido")
	case in.ActualItemsNumber <= 0:
		return invalid("actualItemsNumber debe ser mayor que 0")
	case strings.TrimSpace(in.Name) == "":
		return invalid("name requerido")
	case strings.TrimSpace(in.Manager) == "":
		return invalid("manager requerido")
	case len(in.Resources) == 0:
		return invalid("se requiere al menos un recurso")
	}
	for i, r := range in.Resources {
		if err := validateResource(r); err != nil {
			return fmt.Errorf("resources[%d]: %w", i, err)
		}
	}
	return nil
}

func validateUpdate(in dto.UpdateProductionLineRequest) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("name no puede quedar vacío")
	}
	if in.Manager != nil && strings.TrimSpace(*in.Manager) == "" {
		return invalid("manager no puede quedar vacío")
	}
	if in.ActualItemsNumber != nil && *in.ActualItemsNumber <= 0 {
		return invalid("actualItemsNumber debe ser mayor que 0")
	}
	return nil
}
