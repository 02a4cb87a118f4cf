package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ReasonInitialStock razón del crédito con el que un producto nuevo recibe su stock inicial.
const ReasonInitialStock = "initial stock"

// ProductUseCase alta y consulta de productos. La cantidad nunca se escribe directo:
// el stock inicial entra como crédito del ledger.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	txRunner   inventory.TxRunner
	ledger     *inventory.Ledger
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		repo:       repo,
		categories: categories,
		txRunner:   txRunner,
		ledger:     ledger,
		log:        log.With().Str("component", "product").Logger(),
	}
}

// Create crea el producto con cantidad 0 y, si InitialQuantity > 0, lo acredita en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("sku y name requeridos: %w", domain.ErrValidation)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("price no puede ser negativo: %w", domain.ErrValidation)
	}
	if in.InitialQuantity < 0 {
		return nil, fmt.Errorf("initialQuantity no puede ser negativo: %w", domain.ErrValidation)
	}
	cat, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.BusinessID != businessID {
		return nil, fmt.Errorf("categoría %s: %w", in.CategoryID, domain.ErrNotFound)
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		CategoryID:  cat.ID,
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Quantity:    0,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		res, err := uc.ledger.CreditInTx(ctx, repos, inventory.LedgerInput{
			ProductID:  product.ID,
			BusinessID: businessID,
			UserID:     userID,
			Amount:     in.InitialQuantity,
			Reason:     ReasonInitialStock,
		})
		if err != nil {
			return err
		}
		product.Quantity = res.NewQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Int64("quantity", product.Quantity).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del negocio.
func (uc *ProductUseCase) GetByID(ctx context.Context, businessID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// List lista productos del negocio con paginación.
func (uc *ProductUseCase) List(ctx context.Context, businessID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByBusiness(ctx, businessID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
