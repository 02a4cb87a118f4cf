package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Produccion-api/pkg/config"
)

// Estas pruebas necesitan un PostgreSQL real: TEST_DATABASE_URL=postgres://... go test ./...
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool, zerolog.Nop())
	require.NoError(t, err)
	return pool
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, ledger *inventory.Ledger, businessID string, qty int64) string {
	t.Helper()
	ctx := context.Background()
	catID := uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO categories (id, business_id, name) VALUES ($1, $2, 'Insumos')`, catID, businessID)
	require.NoError(t, err)

	now := time.Now().UTC()
	p := &entity.Product{
		ID:          uuid.NewString(),
		BusinessID:  businessID,
		CategoryID:  catID,
		SKU:         "SKU-" + uuid.NewString()[:8],
		Name:        "Harina",
		Price:       decimal.RequireFromString("2500.00"),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, p))
	if qty > 0 {
		_, err = ledger.Credit(ctx, inventory.LedgerInput{
			ProductID: p.ID, BusinessID: businessID, UserID: "tester", Amount: qty, Reason: "initial stock",
		})
		require.NoError(t, err)
	}
	return p.ID
}

func newLedger(pool *pgxpool.Pool) *inventory.Ledger {
	return inventory.NewLedger(
		postgres.NewTxRunner(pool),
		postgres.NewProductRepository(pool),
		postgres.NewInventoryTransactionRepository(pool),
		nil,
		zerolog.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerPostgres_DebitosConcurrentesNoSobregiran(t *testing.T) {
	pool := testPool(t)
	ledger := newLedger(pool)
	businessID := uuid.NewString()
	productID := seedProduct(t, pool, ledger, businessID, 5)

	const workers = 12
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Debit(context.Background(), inventory.LedgerInput{
				ProductID: productID, BusinessID: businessID, UserID: "tester", Amount: 1, Reason: "production usage",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, workers-5, rejected)

	p, err := postgres.NewProductRepository(pool).GetByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity)

	report, err := ledger.Verify(context.Background(), businessID, productID)
	require.NoError(t, err)
	assert.True(t, report.Balanced)
	assert.Equal(t, 6, report.Transactions)
	assert.Equal(t, int64(5), report.TotalCredits)
	assert.Equal(t, int64(5), report.TotalDebits)
}

func TestLedgerPostgres_ElHistorialEsSoloInsercion(t *testing.T) {
	pool := testPool(t)
	ledger := newLedger(pool)
	businessID := uuid.NewString()
	productID := seedProduct(t, pool, ledger, businessID, 3)

	_, err := pool.Exec(context.Background(),
		`UPDATE inventory_transactions SET amount = 99 WHERE product_id = $1`, productID)
	assert.Error(t, err)

	_, err = pool.Exec(context.Background(),
		`DELETE FROM inventory_transactions WHERE product_id = $1`, productID)
	assert.Error(t, err)
}

func TestProductRepo_SKUDuplicadoYCategoriaInexistente(t *testing.T) {
	pool := testPool(t)
	ledger := newLedger(pool)
	businessID := uuid.NewString()
	productID := seedProduct(t, pool, ledger, businessID, 0)

	repo := postgres.NewProductRepository(pool)
	existing, err := repo.GetByID(context.Background(), productID)
	require.NoError(t, err)

	dup := *existing
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Create(context.Background(), &dup), domain.ErrDuplicate)

	orphan := *existing
	orphan.ID = uuid.NewString()
	orphan.SKU = "SKU-ORPHAN-" + uuid.NewString()[:8]
	orphan.CategoryID = uuid.NewString()
	assert.ErrorIs(t, repo.Create(context.Background(), &orphan), domain.ErrNotFound)
}
