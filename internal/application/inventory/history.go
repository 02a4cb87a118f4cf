package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	inv "github.com/jhoicas/Produccion-api/internal/domain/inventory"
)

const dateLayout = "2006-01-02"

// ParseDateRange convierte start_date/end_date (YYYY-MM-DD) en límites inclusivos.
// Campos vacíos quedan en nil. end_date cubre el día completo.
func ParseDateRange(r dto.DateRangeRequest) (from, to *time.Time, err error) {
	if r.StartDate != "" {
		t, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date debe tener formato YYYY-MM-DD: %w", domain.ErrValidation)
		}
		from = &t
	}
	if r.EndDate != "" {
		t, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date debe tener formato YYYY-MM-DD: %w", domain.ErrValidation)
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("start_date posterior a end_date: %w", domain.ErrValidation)
	}
	return from, to, nil
}

// History devuelve el historial del producto, más reciente primero.
func (l *Ledger) History(ctx context.Context, businessID, productID string, rng dto.DateRangeRequest, page dto.PageRequest) (*dto.InventoryTransactionListResponse, error) {
	from, to, err := ParseDateRange(rng)
	if err != nil {
		return nil, err
	}
	if _, err := l.ownedProduct(ctx, businessID, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := l.txRepo.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := l.txRepo.CountByProduct(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryTransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, toTransactionResponse(tx))
	}
	return &dto.InventoryTransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}, nil
}

// Verify reconstruye la cantidad desde el log de transacciones y la compara con la almacenada.
// Es de solo lectura: una discrepancia se reporta, no se corrige.
func (l *Ledger) Verify(ctx context.Context, businessID, productID string) (*dto.LedgerVerificationResponse, error) {
	product, err := l.ownedProduct(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}
	txs, err := l.txRepo.ListForReplay(ctx, productID)
	if err != nil {
		return nil, err
	}
	res := inv.Replay(txs)
	balanced := res.Balanced(product.Quantity)
	if !balanced {
		l.log.Warn().
			Str("product_id", productID).
			Int64("stored", product.Quantity).
			Int64("replayed", res.ReplayedQty).
			Int64("first_broken_seq", res.FirstBrokenSeq).
			Msg("ledger descuadrado")
	}
	return &dto.LedgerVerificationResponse{
		ProductID:      productID,
		StoredQuantity: product.Quantity,
		ReplayedQty:    res.ReplayedQty,
		Transactions:   res.Transactions,
		TotalCredits:   res.Credits,
		TotalDebits:    res.Debits,
		FirstBrokenSeq: res.FirstBrokenSeq,
		NegativeAtSeq:  res.NegativeAtSeq,
		Balanced:       balanced,
	}, nil
}

func (l *Ledger) ownedProduct(ctx context.Context, businessID, productID string) (*entity.Product, error) {
	product, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return product, nil
}

func toTransactionResponse(tx *entity.InventoryTransaction) dto.InventoryTransactionResponse {
	return dto.InventoryTransactionResponse{
		ID:          tx.ID,
		Seq:         tx.Seq,
		ProductID:   tx.ProductID,
		BusinessID:  tx.BusinessID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		OldQuantity: tx.OldQuantity,
		NewQuantity: tx.NewQuantity,
		Amount:      tx.Amount,
		Reason:      tx.Reason,
		ReferenceID: tx.ReferenceID,
		CreatedAt:   tx.CreatedAt,
	}
}

// ToResultResponse adapta un LedgerResult al DTO HTTP.
func ToResultResponse(r *LedgerResult) dto.LedgerResultResponse {
	return dto.LedgerResultResponse{
		TransactionID: r.TransactionID,
		ProductID:     r.ProductID,
		Type:          string(r.Type),
		Amount:        r.Amount,
		OldQuantity:   r.OldQuantity,
		NewQuantity:   r.NewQuantity,
	}
}
