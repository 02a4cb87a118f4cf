package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
)

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *inventory.Ledger) {
	t.Helper()
	store := memory.New()
	store.PutCategory(entity.Category{ID: "cat-1", BusinessID: "biz-1", Name: "Insumos"})
	store.PutCategory(entity.Category{ID: "cat-2", BusinessID: "biz-2", Name: "Ajena"})
	repos := store.Repos()
	ledger := inventory.NewLedger(store, repos.Products, repos.Transactions, nil, zerolog.Nop())
	return usecase.NewProductUseCase(repos.Products, store.Categories(), store, ledger, zerolog.Nop()), ledger
}

func TestProductUseCase_CreateConStockInicial(t *testing.T) {
	uc, ledger := newProductUC(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, "biz-1", "user-1", dto.CreateProductRequest{
		CategoryID: "cat-1", SKU: " HAR-01 ", Name: "Harina", Price: decimal.RequireFromString("2.50"), InitialQuantity: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, "HAR-01", out.SKU)
	assert.Equal(t, int64(40), out.Quantity)
	assert.True(t, out.IsAvailable)

	hist, err := ledger.History(ctx, "biz-1", out.ID, dto.DateRangeRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, usecase.ReasonInitialStock, hist.Items[0].Reason)
	assert.Equal(t, int64(0), hist.Items[0].OldQuantity)
	assert.Equal(t, "user-1", hist.Items[0].UserID)
}

func TestProductUseCase_CreateSinStockNoEscribeLedger(t *testing.T) {
	uc, ledger := newProductUC(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, "biz-1", "user-1", dto.CreateProductRequest{CategoryID: "cat-1", SKU: "SAL", Name: "Sal"})
	require.NoError(t, err)
	hist, err := ledger.History(ctx, "biz-1", out.ID, dto.DateRangeRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, hist.Items)
}

func TestProductUseCase_CreateErrores(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, "biz-1", "u", dto.CreateProductRequest{CategoryID: "cat-1", SKU: "DUP", Name: "x"})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"sin sku", dto.CreateProductRequest{CategoryID: "cat-1", Name: "x"}, domain.ErrValidation},
		{"precio negativo", dto.CreateProductRequest{CategoryID: "cat-1", SKU: "A", Name: "x", Price: decimal.NewFromInt(-1)}, domain.ErrValidation},
		{"stock negativo", dto.CreateProductRequest{CategoryID: "cat-1", SKU: "B", Name: "x", InitialQuantity: -3}, domain.ErrValidation},
		{"categoría de otro negocio", dto.CreateProductRequest{CategoryID: "cat-2", SKU: "C", Name: "x"}, domain.ErrNotFound},
		{"sku repetido", dto.CreateProductRequest{CategoryID: "cat-1", SKU: "DUP", Name: "x"}, domain.ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, "biz-1", "u", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestProductUseCase_GetYList(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, "biz-1", "u", dto.CreateProductRequest{CategoryID: "cat-1", SKU: "A", Name: "a"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "biz-1", "u", dto.CreateProductRequest{CategoryID: "cat-1", SKU: "B", Name: "b"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, "biz-1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = uc.GetByID(ctx, "biz-2", a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "biz-1", dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Page.Total)
}
