package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var (
	_ repository.ProductionLineRepository     = (*LineRepo)(nil)
	_ repository.ProductionResourceRepository = (*ResourceRepo)(nil)
	_ repository.ProductionRequestRepository  = (*RequestRepo)(nil)
)

// LineRepo líneas de producción en memoria.
type LineRepo struct{ se session }

func (r *LineRepo) Create(_ context.Context, l *entity.ProductionLine) error {
	var err error
	r.se.read(func(st *state) {
		if _, ok := st.products[l.FinishedProductID]; !ok {
			err = fmt.Errorf("producto %s: %w", l.FinishedProductID, domain.ErrNotFound)
			return
		}
		if _, ok := st.lines[l.ID]; ok {
			err = fmt.Errorf("línea %s: %w", l.ID, domain.ErrDuplicate)
			return
		}
		st.lines[l.ID] = copyLine(*l)
	})
	return err
}

func (r *LineRepo) GetByID(_ context.Context, id, businessID string) (*entity.ProductionLine, error) {
	var out *entity.ProductionLine
	r.se.read(func(st *state) {
		if l, ok := st.lines[id]; ok && l.BusinessID == businessID {
			c := copyLine(l)
			out = &c
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID bajo el mutex de la transacción.
func (r *LineRepo) GetForUpdate(ctx context.Context, id, businessID string) (*entity.ProductionLine, error) {
	return r.GetByID(ctx, id, businessID)
}

func (r *LineRepo) List(_ context.Context, f repository.LineFilter) ([]*entity.ProductionLine, int, error) {
	var list []entity.ProductionLine
	r.se.read(func(st *state) {
		for _, l := range st.lines {
			if l.BusinessID != f.BusinessID || (f.Status != "" && l.Status != f.Status) {
				continue
			}
			list = append(list, copyLine(l))
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	total := len(list)
	list = page(list, f.Limit, f.Offset)
	out := make([]*entity.ProductionLine, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, total, nil
}

func (r *LineRepo) Transition(_ context.Context, t repository.LineTransition) (bool, error) {
	ok := false
	r.se.read(func(st *state) {
		l, found := st.lines[t.ID]
		if !found || l.BusinessID != t.BusinessID || !statusIn(l.Status, t.From) {
			return
		}
		l.Status = t.To
		if t.FinalQuantity != nil {
			v := *t.FinalQuantity
			l.FinalQuantity = &v
		}
		if t.CompletedAt != nil {
			v := *t.CompletedAt
			l.CompletedAt = &v
		}
		l.UpdatedAt = t.UpdatedAt
		st.lines[l.ID] = l
		ok = true
	})
	return ok, nil
}

func (r *LineRepo) UpdateDetails(_ context.Context, in *entity.ProductionLine, allowed []entity.LineStatus) (bool, error) {
	ok := false
	r.se.read(func(st *state) {
		l, found := st.lines[in.ID]
		if !found || l.BusinessID != in.BusinessID || !statusIn(l.Status, allowed) {
			return
		}
		l.Name = in.Name
		l.Manager = in.Manager
		l.Description = in.Description
		l.PlannedQuantity = in.PlannedQuantity
		l.UpdatedAt = in.UpdatedAt
		st.lines[l.ID] = l
		ok = true
	})
	return ok, nil
}

// Delete borra la línea y en cascada sus recursos y solicitudes.
func (r *LineRepo) Delete(_ context.Context, id, businessID string, allowed []entity.LineStatus) (bool, error) {
	ok := false
	r.se.read(func(st *state) {
		l, found := st.lines[id]
		if !found || l.BusinessID != businessID || !statusIn(l.Status, allowed) {
			return
		}
		for rid, req := range st.requests {
			if req.ProductionLineID == id {
				delete(st.requests, rid)
			}
		}
		for rid, res := range st.resources {
			if res.ProductionLineID == id {
				delete(st.resources, rid)
			}
		}
		delete(st.lines, id)
		ok = true
	})
	return ok, nil
}

// ResourceRepo recursos de producción en memoria.
type ResourceRepo struct{ se session }

func (r *ResourceRepo) Create(_ context.Context, res *entity.ProductionResource) error {
	var err error
	r.se.read(func(st *state) {
		if _, ok := st.lines[res.ProductionLineID]; !ok {
			err = fmt.Errorf("línea %s: %w", res.ProductionLineID, domain.ErrNotFound)
			return
		}
		if _, ok := st.products[res.ResourceProductID]; !ok {
			err = fmt.Errorf("producto %s: %w", res.ResourceProductID, domain.ErrNotFound)
			return
		}
		st.resources[res.ID] = *res
	})
	return err
}

func (r *ResourceRepo) GetByID(_ context.Context, id string) (*entity.ProductionResource, error) {
	var out *entity.ProductionResource
	r.se.read(func(st *state) {
		if res, ok := st.resources[id]; ok {
			out = &res
		}
	})
	return out, nil
}

func (r *ResourceRepo) ListByLine(_ context.Context, lineID string) ([]*entity.ProductionResource, error) {
	var list []entity.ProductionResource
	r.se.read(func(st *state) {
		for _, res := range st.resources {
			if res.ProductionLineID == lineID {
				list = append(list, res)
			}
		}
	})
	sortResources(list)
	out := make([]*entity.ProductionResource, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

func (r *ResourceRepo) Update(_ context.Context, in *entity.ProductionResource) error {
	var err error
	r.se.read(func(st *state) {
		res, ok := st.resources[in.ID]
		if !ok {
			err = fmt.Errorf("recurso %s: %w", in.ID, domain.ErrNotFound)
			return
		}
		res.ResourceName = in.ResourceName
		res.NeededQuantity = in.NeededQuantity
		res.UnitOfMeasure = in.UnitOfMeasure
		res.Notes = in.Notes
		res.UpdatedAt = in.UpdatedAt
		st.resources[res.ID] = res
	})
	return err
}

func (r *ResourceRepo) Delete(_ context.Context, id string) (bool, error) {
	ok := false
	r.se.read(func(st *state) {
		if _, found := st.resources[id]; !found {
			return
		}
		for _, req := range st.requests {
			if req.ResourceID == id {
				return
			}
		}
		delete(st.resources, id)
		ok = true
	})
	return ok, nil
}

func sortResources(list []entity.ProductionResource) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

// RequestRepo solicitudes de recursos en memoria.
type RequestRepo struct{ se session }

func (r *RequestRepo) Create(_ context.Context, req *entity.ProductionRequest) error {
	var err error
	r.se.read(func(st *state) {
		res, ok := st.resources[req.ResourceID]
		if !ok || res.ProductionLineID != req.ProductionLineID {
			err = fmt.Errorf("recurso %s: %w", req.ResourceID, domain.ErrNotFound)
			return
		}
		st.requests[req.ID] = copyRequest(*req)
	})
	return err
}

func (r *RequestRepo) GetByID(_ context.Context, id string) (*entity.ProductionRequest, error) {
	var out *entity.ProductionRequest
	r.se.read(func(st *state) {
		if req, ok := st.requests[id]; ok {
			c := copyRequest(req)
			out = &c
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID bajo el mutex de la transacción.
func (r *RequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *RequestRepo) List(_ context.Context, f repository.RequestFilter) ([]*entity.ProductionRequest, error) {
	var list []entity.ProductionRequest
	r.se.read(func(st *state) {
		for _, req := range st.requests {
			switch {
			case req.ProductionLineID != f.LineID:
			case f.ResourceID != "" && req.ResourceID != f.ResourceID:
			case f.Status != "" && req.Status != f.Status:
			case f.DayNumber != 0 && req.DayNumber != f.DayNumber:
			default:
				list = append(list, copyRequest(req))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.DayNumber != b.DayNumber {
			return a.DayNumber < b.DayNumber
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	out := make([]*entity.ProductionRequest, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

func (r *RequestRepo) CountByResource(_ context.Context, resourceID string) (int, error) {
	n := 0
	r.se.read(func(st *state) {
		for _, req := range st.requests {
			if req.ResourceID == resourceID {
				n++
			}
		}
	})
	return n, nil
}

func (r *RequestRepo) Transition(_ context.Context, t repository.RequestTransition) (bool, error) {
	ok := false
	r.se.read(func(st *state) {
		req, found := st.requests[t.ID]
		if !found || req.Status != t.From {
			return
		}
		req.Status = t.To
		if t.TransactionID != "" {
			req.TransactionID = t.TransactionID
		}
		if t.FulfilledAt != nil {
			v := *t.FulfilledAt
			req.FulfilledAt = &v
		}
		req.UpdatedAt = t.UpdatedAt
		st.requests[req.ID] = req
		ok = true
	})
	return ok, nil
}

func (r *RequestRepo) Delete(_ context.Context, id string, from entity.RequestStatus) (bool, error) {
	ok := false
	r.se.read(func(st *state) {
		req, found := st.requests[id]
		if !found || req.Status != from {
			return
		}
		delete(st.requests, id)
		ok = true
	})
	return ok, nil
}
