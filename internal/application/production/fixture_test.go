package production_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	bizID    = "biz-1"
	otherBiz = "biz-2"
	userID   = "user-1"
	catID    = "cat-1"
)

// clock reloj manual para fijar createdAt/completedAt.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// spyMetrics cuenta observaciones por acción y resultado.
type spyMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (s *spyMetrics) inc(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int{}
	}
	s.counts[key]++
}

func (s *spyMetrics) LedgerOperation(kind, outcome string)      { s.inc("ledger/" + kind + "/" + outcome) }
func (s *spyMetrics) LineTransition(action, outcome string)    { s.inc("line/" + action + "/" + outcome) }
func (s *spyMetrics) RequestTransition(action, outcome string) { s.inc("request/" + action + "/" + outcome) }

func (s *spyMetrics) count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

type env struct {
	store     *memory.Store
	clock     *clock
	metrics   *spyMetrics
	ledger    *inventory.Ledger
	lines     *production.LineUseCase
	resources *production.ResourceUseCase
	requests  *production.RequestUseCase
	analytics *production.AnalyticsUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.New()
	store.PutCategory(entity.Category{ID: catID, BusinessID: bizID, Name: "Materias primas"})
	store.PutCategory(entity.Category{ID: "cat-2", BusinessID: otherBiz, Name: "Ajena"})

	clk := &clock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	spy := &spyMetrics{}
	repos := store.Repos()
	ledger := inventory.NewLedger(store, repos.Products, repos.Transactions, spy, zerolog.Nop())
	deps := production.Deps{
		TxRunner:  store,
		Ledger:    ledger,
		Products:  repos.Products,
		Lines:     repos.Lines,
		Resources: repos.Resources,
		Requests:  repos.Requests,
		Metrics:   spy,
		Log:       zerolog.Nop(),
		Now:       clk.Now,
	}
	return &env{
		store:     store,
		clock:     clk,
		metrics:   spy,
		ledger:    ledger,
		lines:     production.NewLineUseCase(deps),
		resources: production.NewResourceUseCase(deps),
		requests:  production.NewRequestUseCase(deps),
		analytics: production.NewAnalyticsUseCase(store.Analytics(), repos.Lines, zerolog.Nop()),
	}
}

// product crea un producto del negocio con stock inicial acreditado por el ledger.
func (e *env) product(t *testing.T, business, name string, qty int64) string {
	t.Helper()
	id := uuid.NewString()
	cat := catID
	if business != bizID {
		cat = "cat-2"
	}
	require.NoError(t, e.store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, BusinessID: business, CategoryID: cat, SKU: name + "-" + id[:6], Name: name,
	}))
	if qty > 0 {
		_, err := e.ledger.Credit(context.Background(), inventory.LedgerInput{
			ProductID: id, BusinessID: business, UserID: userID, Amount: qty, Reason: "initial stock",
		})
		require.NoError(t, err)
	}
	return id
}

func (e *env) quantity(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := e.store.Repos().Products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (e *env) transactions(t *testing.T, productID string) []dto.InventoryTransactionResponse {
	t.Helper()
	out, err := e.ledger.History(context.Background(), bizID, productID, dto.DateRangeRequest{}, dto.PageRequest{Limit: 100})
	require.NoError(t, err)
	return out.Items
}

func lineRequest(finished, resource string, planned, needed int64) dto.CreateProductionLineRequest {
	return dto.CreateProductionLineRequest{
		ItemID:            finished,
		ActualItemsNumber: planned,
		Name:              "Lote pan",
		Manager:           "Ana",
		Description:       "corrida semanal",
		Resources: []dto.ResourceInput{{
			ResourceItemID:       resource,
			ActualNeededQuantity: needed,
			UnitOfMeasure:        "kg",
		}},
	}
}

// line crea una línea con un recurso y devuelve la respuesta.
func (e *env) line(t *testing.T, finished, resource string, planned, needed int64) *dto.ProductionLineResponse {
	t.Helper()
	out, err := e.lines.Create(context.Background(), bizID, lineRequest(finished, resource, planned, needed))
	require.NoError(t, err)
	require.Len(t, out.Resources, 1)
	return out
}

// startedLine crea e inicia una línea.
func (e *env) startedLine(t *testing.T, finished, resource string, planned, needed int64) *dto.ProductionLineResponse {
	t.Helper()
	l := e.line(t, finished, resource, planned, needed)
	_, err := e.lines.Start(context.Background(), bizID, l.ID)
	require.NoError(t, err)
	return l
}

func (e *env) request(t *testing.T, lineID, resourceID string, day int, qty int64) *dto.ProductionRequestResponse {
	t.Helper()
	out, err := e.requests.Create(context.Background(), bizID, userID, lineID, dto.CreateRequestRequest{
		ResourceID: resourceID, DayNumber: day, RequestedQuantity: qty,
	})
	require.NoError(t, err)
	return out
}

func (e *env) status(t *testing.T, lineID string) string {
	t.Helper()
	out, err := e.lines.Get(context.Background(), bizID, lineID)
	require.NoError(t, err)
	return out.Status
}

func ptr[T any](v T) *T { return &v }
