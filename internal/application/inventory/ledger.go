package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

const maxReasonLength = 255

// LedgerInput entrada de un crédito o débito.
type LedgerInput struct {
	ProductID   string
	BusinessID  string
	UserID      string
	Amount      int64
	Reason      string
	ReferenceID string
}

// LedgerResult resultado de una operación exitosa del ledger.
type LedgerResult struct {
	TransactionID string
	ProductID     string
	Type          entity.TransactionType
	Amount        int64
	OldQuantity   int64
	NewQuantity   int64
}

// Ledger es el único camino legal para modificar Product.Quantity.
// Cada operación es una unidad atómica: bloqueo de la fila del producto (SELECT FOR UPDATE),
// validación, escritura condicional de la cantidad e inserción del registro de auditoría.
// No reintenta: stock insuficiente es un resultado de negocio.
type Ledger struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	txRepo      repository.InventoryTransactionRepository
	metrics     ports.Metrics
	log         zerolog.Logger
	now         func() time.Time
}

// NewLedger construye el ledger. metrics puede ser nil.
func NewLedger(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	txRepo repository.InventoryTransactionRepository,
	metrics ports.Metrics,
	log zerolog.Logger,
) *Ledger {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Ledger{
		txRunner:    txRunner,
		productRepo: productRepo,
		txRepo:      txRepo,
		metrics:     metrics,
		log:         log.With().Str("component", "ledger").Logger(),
		now:         time.Now,
	}
}

// Credit suma amount al stock del producto en su propia transacción.
// Verifica que el producto pertenezca a in.BusinessID.
func (l *Ledger) Credit(ctx context.Context, in LedgerInput) (*LedgerResult, error) {
	return l.run(ctx, entity.TransactionCredit, in)
}

// Debit resta amount del stock del producto en su propia transacción.
// Falla con domain.ErrInsufficientStock (sin mutar nada) si la cantidad actual es menor que amount.
func (l *Ledger) Debit(ctx context.Context, in LedgerInput) (*LedgerResult, error) {
	return l.run(ctx, entity.TransactionDebit, in)
}

// CreditInTx igual que Credit pero dentro de la transacción del caller (repos atados a esa tx).
func (l *Ledger) CreditInTx(ctx context.Context, repos repository.TxRepos, in LedgerInput) (*LedgerResult, error) {
	res, err := l.applyInTx(ctx, repos, entity.TransactionCredit, in)
	l.metrics.LedgerOperation(string(entity.TransactionCredit), ports.Outcome(err))
	return res, err
}

// DebitInTx igual que Debit pero dentro de la transacción del caller.
func (l *Ledger) DebitInTx(ctx context.Context, repos repository.TxRepos, in LedgerInput) (*LedgerResult, error) {
	res, err := l.applyInTx(ctx, repos, entity.TransactionDebit, in)
	l.metrics.LedgerOperation(string(entity.TransactionDebit), ports.Outcome(err))
	return res, err
}

func (l *Ledger) run(ctx context.Context, kind entity.TransactionType, in LedgerInput) (*LedgerResult, error) {
	if in.BusinessID == "" {
		return nil, fmt.Errorf("business_id requerido: %w", domain.ErrValidation)
	}
	var res *LedgerResult
	err := l.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		res, err = l.applyInTx(ctx, repos, kind, in)
		return err
	})
	l.metrics.LedgerOperation(string(kind), ports.Outcome(err))
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Ledger) applyInTx(ctx context.Context, repos repository.TxRepos, kind entity.TransactionType, in LedgerInput) (*LedgerResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || (in.BusinessID != "" && product.BusinessID != in.BusinessID) {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}

	oldQty := product.Quantity
	var newQty int64
	switch kind {
	case entity.TransactionCredit:
		if oldQty > math.MaxInt64-in.Amount {
			return nil, fmt.Errorf("producto %s: crédito de %d desborda la cantidad %d: %w",
				product.ID, in.Amount, oldQty, domain.ErrValidation)
		}
		newQty = oldQty + in.Amount
	case entity.TransactionDebit:
		if oldQty < in.Amount {
			l.log.Debug().
				Str("product_id", product.ID).
				Int64("available", oldQty).
				Int64("requested", in.Amount).
				Msg("débito rechazado por stock insuficiente")
			return nil, fmt.Errorf("producto %s: disponible %d, solicitado %d: %w",
				product.ID, oldQty, in.Amount, domain.ErrInsufficientStock)
		}
		newQty = oldQty - in.Amount
	default:
		return nil, fmt.Errorf("tipo de transacción %q: %w", kind, domain.ErrValidation)
	}

	// La fila ya está bloqueada; el CAS detecta cualquier adaptador que no respete el bloqueo.
	ok, err := repos.Products.CompareAndSetQuantity(ctx, product.ID, oldQty, newQty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("ledger: la cantidad del producto %s cambió durante la transacción", product.ID)
	}

	tx := &entity.InventoryTransaction{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		BusinessID:  product.BusinessID,
		UserID:      in.UserID,
		Type:        kind,
		OldQuantity: oldQty,
		NewQuantity: newQty,
		Amount:      in.Amount,
		Reason:      strings.TrimSpace(in.Reason),
		ReferenceID: in.ReferenceID,
		CreatedAt:   l.now(),
	}
	if err := repos.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	l.log.Debug().
		Str("transaction_id", tx.ID).
		Str("product_id", product.ID).
		Str("type", string(kind)).
		Int64("old_quantity", oldQty).
		Int64("new_quantity", newQty).
		Str("reference_id", in.ReferenceID).
		Msg("movimiento de inventario registrado")

	return &LedgerResult{
		TransactionID: tx.ID,
		ProductID:     product.ID,
		Type:          kind,
		Amount:        in.Amount,
		OldQuantity:   oldQty,
		NewQuantity:   newQty,
	}, nil
}

func validateInput(in LedgerInput) error {
	if in.ProductID == "" {
		return fmt.Errorf("product_id requerido: %w", domain.ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("amount debe ser positivo: %w", domain.ErrValidation)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" || len(reason) > maxReasonLength {
		return fmt.Errorf("reason requerido (máx. %d caracteres): %w", maxReasonLength, domain.ErrValidation)
	}
	return nil
}
