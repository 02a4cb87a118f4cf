package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository              = (*ProductRepo)(nil)
	_ repository.CategoryRepository             = (*CategoryRepo)(nil)
	_ repository.InventoryTransactionRepository = (*TransactionRepo)(nil)
)

// CategoryRepo lectura de categorías.
type CategoryRepo struct{ se session }

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.se.read(func(st *state) {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ se session }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	var err error
	r.se.read(func(st *state) {
		if _, ok := st.categories[p.CategoryID]; !ok {
			err = fmt.Errorf("categoría %s: %w", p.CategoryID, domain.ErrNotFound)
			return
		}
		for _, other := range st.products {
			if other.BusinessID == p.BusinessID && other.SKU == p.SKU {
				err = fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
				return
			}
		}
		if _, ok := st.products[p.ID]; ok {
			err = fmt.Errorf("producto %s: %w", p.ID, domain.ErrDuplicate)
			return
		}
		if p.Quantity < 0 {
			err = fmt.Errorf("producto %s: %w", p.ID, domain.ErrInsufficientStock)
			return
		}
		st.products[p.ID] = *p
	})
	return err
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.se.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: dentro de Run el mutex del store ya serializa.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) CompareAndSetQuantity(_ context.Context, id string, oldQty, newQty int64) (bool, error) {
	var (
		ok  bool
		err error
	)
	r.se.read(func(st *state) {
		p, found := st.products[id]
		if !found || p.Quantity != oldQty {
			return
		}
		if newQty < 0 {
			err = fmt.Errorf("producto %s: %w", id, domain.ErrInsufficientStock)
			return
		}
		p.Quantity = newQty
		p.UpdatedAt = time.Now()
		st.products[p.ID] = p
		ok = true
	})
	return ok, err
}

func (r *ProductRepo) ListByBusiness(_ context.Context, businessID string, limit, offset int) ([]*entity.Product, error) {
	var list []entity.Product
	r.se.read(func(st *state) {
		for _, p := range st.products {
			if p.BusinessID == businessID {
				list = append(list, p)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	list = page(list, limit, offset)
	out := make([]*entity.Product, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

func (r *ProductRepo) CountByBusiness(_ context.Context, businessID string) (int, error) {
	n := 0
	r.se.read(func(st *state) {
		for _, p := range st.products {
			if p.BusinessID == businessID {
				n++
			}
		}
	})
	return n, nil
}

// TransactionRepo log de auditoría; no expone update ni delete.
type TransactionRepo struct{ se session }

func (r *TransactionRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	var err error
	r.se.read(func(st *state) {
		if _, ok := st.products[tx.ProductID]; !ok {
			err = fmt.Errorf("producto %s: %w", tx.ProductID, domain.ErrNotFound)
			return
		}
		if !tx.Consistent() || tx.NewQuantity < 0 {
			err = fmt.Errorf("transacción inconsistente para %s: %w", tx.ProductID, domain.ErrValidation)
			return
		}
		st.seq++
		tx.Seq = st.seq
		st.transactions = append(st.transactions, *tx)
	})
	return err
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.InventoryTransaction, error) {
	var out *entity.InventoryTransaction
	r.se.read(func(st *state) {
		for i := range st.transactions {
			if st.transactions[i].ID == id {
				t := st.transactions[i]
				out = &t
				return
			}
		}
	})
	return out, nil
}

func (r *TransactionRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	matched := r.filter(productID, from, to)
	// más reciente primero
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return toTxPointers(page(matched, limit, offset)), nil
}

func (r *TransactionRepo) CountByProduct(_ context.Context, productID string, from, to *time.Time) (int, error) {
	return len(r.filter(productID, from, to)), nil
}

func (r *TransactionRepo) ListForReplay(_ context.Context, productID string) ([]*entity.InventoryTransaction, error) {
	return toTxPointers(r.filter(productID, nil, nil)), nil
}

func (r *TransactionRepo) filter(productID string, from, to *time.Time) []entity.InventoryTransaction {
	var out []entity.InventoryTransaction
	r.se.read(func(st *state) {
		for _, t := range st.transactions {
			if t.ProductID != productID {
				continue
			}
			if from != nil && t.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && t.CreatedAt.After(*to) {
				continue
			}
			out = append(out, t)
		}
	})
	return out
}

func toTxPointers(list []entity.InventoryTransaction) []*entity.InventoryTransaction {
	out := make([]*entity.InventoryTransaction, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out
}
