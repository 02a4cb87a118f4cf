// Package memory implementa todos los puertos de persistencia en memoria.
// Una transacción toma el mutex del store completo y, si fn falla, restaura una copia
// del estado: mismas garantías de atomicidad y serialización que PostgreSQL para tests y desarrollo local.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado en memoria protegido por un único mutex.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	seq          int64
	categories   map[string]entity.Category
	products     map[string]entity.Product
	transactions []entity.InventoryTransaction // orden de seq
	lines        map[string]entity.ProductionLine
	resources    map[string]entity.ProductionResource
	requests     map[string]entity.ProductionRequest
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: &state{
		categories: make(map[string]entity.Category),
		products:   make(map[string]entity.Product),
		lines:      make(map[string]entity.ProductionLine),
		resources:  make(map[string]entity.ProductionResource),
		requests:   make(map[string]entity.ProductionRequest),
	}}
}

func (st *state) clone() *state {
	out := &state{
		seq:          st.seq,
		categories:   make(map[string]entity.Category, len(st.categories)),
		products:     make(map[string]entity.Product, len(st.products)),
		transactions: append([]entity.InventoryTransaction(nil), st.transactions...),
		lines:        make(map[string]entity.ProductionLine, len(st.lines)),
		resources:    make(map[string]entity.ProductionResource, len(st.resources)),
		requests:     make(map[string]entity.ProductionRequest, len(st.requests)),
	}
	for k, v := range st.categories {
		out.categories[k] = v
	}
	for k, v := range st.products {
		out.products[k] = v
	}
	for k, v := range st.lines {
		out.lines[k] = copyLine(v)
	}
	for k, v := range st.resources {
		out.resources[k] = v
	}
	for k, v := range st.requests {
		out.requests[k] = copyRequest(v)
	}
	return out
}

// session acceso al estado: dentro de Run el mutex ya está tomado; fuera, cada llamada lo toma.
type session struct {
	s  *Store
	tx bool
}

func (se session) read(fn func(st *state)) {
	if !se.tx {
		se.s.mu.Lock()
		defer se.s.mu.Unlock()
	}
	fn(se.s.data)
}

func (se session) repos() repository.TxRepos {
	return repository.TxRepos{
		Products:     &ProductRepo{se},
		Transactions: &TransactionRepo{se},
		Lines:        &LineRepo{se},
		Resources:    &ResourceRepo{se},
		Requests:     &RequestRepo{se},
	}
}

// Run ejecuta fn de forma exclusiva. Si fn devuelve error el estado vuelve al de antes de Run.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(ctx, session{s: s, tx: true}.repos()); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Repos repositorios fuera de transacción (cada llamada es atómica por sí sola).
func (s *Store) Repos() repository.TxRepos {
	return session{s: s}.repos()
}

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo {
	return &CategoryRepo{session{s: s}}
}

// Analytics repositorio de analítica.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{session{s: s}}
}

// PutCategory registra una categoría (el CRUD de categorías es externo).
func (s *Store) PutCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.categories[c.ID] = c
}

func copyLine(l entity.ProductionLine) entity.ProductionLine {
	if l.FinalQuantity != nil {
		v := *l.FinalQuantity
		l.FinalQuantity = &v
	}
	if l.CompletedAt != nil {
		v := *l.CompletedAt
		l.CompletedAt = &v
	}
	return l
}

func copyRequest(r entity.ProductionRequest) entity.ProductionRequest {
	if r.FulfilledAt != nil {
		v := *r.FulfilledAt
		r.FulfilledAt = &v
	}
	return r
}

func statusIn[S comparable](s S, allowed []S) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
