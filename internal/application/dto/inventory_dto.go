package dto

import "time"

// LedgerAdjustmentRequest body para POST /api/inventory/products/:id/credit|debit.
type LedgerAdjustmentRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required,max=255"`
	ReferenceID string `json:"referenceId" validate:"omitempty,max=64"`
}

// LedgerResultResponse resultado de un crédito o débito.
type LedgerResultResponse struct {
	TransactionID string `json:"transactionId"`
	ProductID     string `json:"productId"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	OldQuantity   int64  `json:"oldQuantity"`
	NewQuantity   int64  `json:"newQuantity"`
}

// InventoryTransactionResponse fila del historial del ledger.
type InventoryTransactionResponse struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	ProductID   string    `json:"productId"`
	BusinessID  string    `json:"businessId"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	OldQuantity int64     `json:"oldQuantity"`
	NewQuantity int64     `json:"newQuantity"`
	Amount      int64     `json:"amount"`
	Reason      string    `json:"reason"`
	ReferenceID string    `json:"referenceId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InventoryTransactionListResponse historial paginado.
type InventoryTransactionListResponse struct {
	Items []InventoryTransactionResponse `json:"items"`
	Page  PageResponse                   `json:"page"`
}

// LedgerVerificationResponse resultado de reconstruir el stock desde el historial.
type LedgerVerificationResponse struct {
	ProductID      string `json:"productId"`
	StoredQuantity int64  `json:"storedQuantity"`
	ReplayedQty    int64  `json:"replayedQuantity"`
	Transactions   int    `json:"transactions"`
	TotalCredits   int64  `json:"totalCredits"`
	TotalDebits    int64  `json:"totalDebits"`
	FirstBrokenSeq int64  `json:"firstBrokenSeq,omitempty"`
	NegativeAtSeq  int64  `json:"negativeAtSeq,omitempty"`
	Balanced       bool   `json:"balanced"`
}
