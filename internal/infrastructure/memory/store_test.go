package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
)

func seed(t *testing.T) (*memory.Store, *entity.Product) {
	t.Helper()
	s := memory.New()
	s.PutCategory(entity.Category{ID: "cat-1", BusinessID: "biz-1", Name: "Insumos"})
	p := &entity.Product{ID: "p-1", BusinessID: "biz-1", CategoryID: "cat-1", SKU: "HAR-01", Name: "harina", Quantity: 10}
	require.NoError(t, s.Repos().Products.Create(context.Background(), p))
	return s, p
}

// ──────────────────────────────────────────────────────────────────────────────
// Run
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RunRevierteSiFalla(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		ok, err := repos.Products.CompareAndSetQuantity(ctx, p.ID, 10, 4)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, repos.Transactions.Create(ctx, &entity.InventoryTransaction{
			ID: "tx-1", ProductID: p.ID, BusinessID: p.BusinessID, Type: entity.TransactionDebit,
			OldQuantity: 10, NewQuantity: 4, Amount: 6, Reason: "x", CreatedAt: time.Now(),
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Quantity)
	n, err := s.Repos().Transactions.CountByProduct(ctx, p.ID, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_RunConContextoCancelado(t *testing.T) {
	s, _ := seed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(context.Context, repository.TxRepos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_Create(t *testing.T) {
	s, _ := seed(t)
	ctx := context.Background()
	repo := s.Repos().Products

	err := repo.Create(ctx, &entity.Product{ID: "p-2", BusinessID: "biz-1", CategoryID: "cat-1", SKU: "HAR-01"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "sku repetido en el mismo negocio")

	err = repo.Create(ctx, &entity.Product{ID: "p-3", BusinessID: "biz-1", CategoryID: "no-existe", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Create(ctx, &entity.Product{ID: "p-4", BusinessID: "biz-1", CategoryID: "cat-1", SKU: "NEG", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	n, err := repo.CountByBusiness(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestProductRepo_CompareAndSet(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	repo := s.Repos().Products

	ok, err := repo.CompareAndSetQuantity(ctx, p.ID, 7, 3)
	require.NoError(t, err)
	assert.False(t, ok, "cantidad anterior desactualizada")

	_, err = repo.CompareAndSetQuantity(ctx, p.ID, 10, -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	ok, err = repo.CompareAndSetQuantity(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTransactionRepo_RechazaFilasInconsistentes(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	repo := s.Repos().Transactions

	err := repo.Create(ctx, &entity.InventoryTransaction{
		ID: "tx-1", ProductID: p.ID, Type: entity.TransactionCredit, OldQuantity: 10, NewQuantity: 12, Amount: 3,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = repo.Create(ctx, &entity.InventoryTransaction{
		ID: "tx-2", ProductID: "otro", Type: entity.TransactionCredit, OldQuantity: 0, NewQuantity: 1, Amount: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionRepo_SeqCrecienteYOrdenDescendente(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	repo := s.Repos().Transactions
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	qty := int64(10)
	for i := 0; i < 3; i++ {
		tx := &entity.InventoryTransaction{
			ID: "tx-" + string(rune('a'+i)), ProductID: p.ID, Type: entity.TransactionCredit,
			OldQuantity: qty, NewQuantity: qty + 1, Amount: 1, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, tx))
		assert.Equal(t, int64(i+1), tx.Seq)
		qty++
	}

	list, err := repo.ListByProduct(ctx, p.ID, nil, nil, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "tx-c", list[0].ID)
	assert.Equal(t, "tx-b", list[1].ID)

	from := base.Add(30 * time.Minute)
	n, err := repo.CountByProduct(ctx, p.ID, &from, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	replay, err := repo.ListForReplay(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, replay, 3)
	assert.Equal(t, "tx-a", replay[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción
// ──────────────────────────────────────────────────────────────────────────────

func TestLineRepo_DeleteEnCascada(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	repos := s.Repos()
	now := time.Now()

	line := &entity.ProductionLine{ID: "l-1", BusinessID: "biz-1", FinishedProductID: p.ID, PlannedQuantity: 5, Status: entity.LineStatusPending, CreatedAt: now}
	require.NoError(t, repos.Lines.Create(ctx, line))
	require.NoError(t, repos.Resources.Create(ctx, &entity.ProductionResource{ID: "r-1", ProductionLineID: line.ID, ResourceProductID: p.ID, NeededQuantity: 2}))
	require.NoError(t, repos.Requests.Create(ctx, &entity.ProductionRequest{ID: "q-1", ProductionLineID: line.ID, ResourceID: "r-1", DayNumber: 1, RequestedQuantity: 1, Status: entity.RequestStatusPending}))

	ok, err := repos.Lines.Delete(ctx, line.ID, "biz-2", []entity.LineStatus{entity.LineStatusPending})
	require.NoError(t, err)
	assert.False(t, ok, "otro negocio")

	ok, err = repos.Lines.Delete(ctx, line.ID, "biz-1", []entity.LineStatus{entity.LineStatusPending})
	require.NoError(t, err)
	assert.True(t, ok)

	res, err := repos.Resources.GetByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Nil(t, res)
	req, err := repos.Requests.GetByID(ctx, "q-1")
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestResourceRepo_DeleteConSolicitudes(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	repos := s.Repos()

	require.NoError(t, repos.Lines.Create(ctx, &entity.ProductionLine{ID: "l-1", BusinessID: "biz-1", FinishedProductID: p.ID, PlannedQuantity: 5, Status: entity.LineStatusPending}))
	require.NoError(t, repos.Resources.Create(ctx, &entity.ProductionResource{ID: "r-1", ProductionLineID: "l-1", ResourceProductID: p.ID, NeededQuantity: 2}))
	require.NoError(t, repos.Requests.Create(ctx, &entity.ProductionRequest{ID: "q-1", ProductionLineID: "l-1", ResourceID: "r-1", DayNumber: 1, RequestedQuantity: 1, Status: entity.RequestStatusCancelled}))

	ok, err := repos.Resources.Delete(ctx, "r-1")
	require.NoError(t, err)
	assert.False(t, ok)

	err = repos.Requests.Create(ctx, &entity.ProductionRequest{ID: "q-2", ProductionLineID: "otra", ResourceID: "r-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el recurso debe ser de la misma línea")
}

func TestLineRepo_TransitionCondicional(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	repo := s.Repos().Lines
	require.NoError(t, repo.Create(ctx, &entity.ProductionLine{ID: "l-1", BusinessID: "biz-1", FinishedProductID: p.ID, PlannedQuantity: 5, Status: entity.LineStatusPending}))

	move := repository.LineTransition{
		ID: "l-1", BusinessID: "biz-1",
		From: []entity.LineStatus{entity.LineStatusPending},
		To:   entity.LineStatusInProgress,
	}
	ok, err := repo.Transition(ctx, move)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Transition(ctx, move)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, "l-1", "biz-1")
	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusInProgress, got.Status)

	other, err := repo.GetByID(ctx, "l-1", "biz-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

// Los ids que llegan de fiber apuntan a un buffer que se reutiliza; el store no debe quedarse con ellos.
func TestLineRepo_EscriturasNoRetienenElIDDelLlamador(t *testing.T) {
	s, p := seed(t)
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Lines.Create(ctx, &entity.ProductionLine{ID: "l-1", BusinessID: "biz-1", FinishedProductID: p.ID, PlannedQuantity: 5, Status: entity.LineStatusPending}))
	require.NoError(t, repos.Resources.Create(ctx, &entity.ProductionResource{ID: "r-1", ProductionLineID: "l-1", ResourceProductID: p.ID, NeededQuantity: 2, UnitOfMeasure: "kg"}))
	require.NoError(t, repos.Requests.Create(ctx, &entity.ProductionRequest{ID: "q-1", ProductionLineID: "l-1", ResourceID: "r-1", DayNumber: 1, RequestedQuantity: 1, Status: entity.RequestStatusPending}))

	buf := []byte("l-1")
	borrowed := func(id string) string {
		copy(buf[:cap(buf)], id)
		buf = buf[:len(id)]
		return unsafe.String(&buf[0], len(buf))
	}
	overwrite := func() { copy(buf, "zzz") }

	ok, err := repos.Lines.Transition(ctx, repository.LineTransition{
		ID: borrowed("l-1"), BusinessID: "biz-1",
		From: []entity.LineStatus{entity.LineStatusPending},
		To:   entity.LineStatusInProgress,
	})
	require.NoError(t, err)
	require.True(t, ok)
	overwrite()

	ok, err = repos.Lines.UpdateDetails(ctx, &entity.ProductionLine{ID: borrowed("l-1"), BusinessID: "biz-1", Name: "Lote", PlannedQuantity: 5},
		[]entity.LineStatus{entity.LineStatusInProgress})
	require.NoError(t, err)
	require.True(t, ok)
	overwrite()

	require.NoError(t, repos.Resources.Update(ctx, &entity.ProductionResource{ID: borrowed("r-1"), ProductionLineID: "l-1", ResourceProductID: p.ID, NeededQuantity: 3, UnitOfMeasure: "kg"}))
	overwrite()

	ok, err = repos.Requests.Transition(ctx, repository.RequestTransition{
		ID: borrowed("q-1"), From: entity.RequestStatusPending, To: entity.RequestStatusCancelled,
	})
	require.NoError(t, err)
	require.True(t, ok)
	overwrite()

	line, err := repos.Lines.GetByID(ctx, "l-1", "biz-1")
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, entity.LineStatusInProgress, line.Status)
	assert.Equal(t, "Lote", line.Name)

	res, err := repos.Resources.GetByID(ctx, "r-1")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, int64(3), res.NeededQuantity)

	req, err := repos.Requests.GetByID(ctx, "q-1")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, entity.RequestStatusCancelled, req.Status)
}
