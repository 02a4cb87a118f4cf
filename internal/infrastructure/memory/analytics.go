package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionAnalyticsRepository = (*AnalyticsRepo)(nil)

var hundred = decimal.NewFromInt(100)

// AnalyticsRepo agregados calculados recorriendo el estado.
type AnalyticsRepo struct{ se session }

func inRange(t time.Time, from, to *time.Time) bool {
	return (from == nil || !t.Before(*from)) && (to == nil || !t.After(*to))
}

func (r *AnalyticsRepo) Summary(_ context.Context, businessID string, from, to *time.Time) (*repository.ProductionSummaryResult, error) {
	res := &repository.ProductionSummaryResult{
		CountByStatus:         make(map[entity.LineStatus]int),
		AvgVariance:           decimal.Zero,
		AvgVariancePercentage: decimal.Zero,
	}
	varianceSum, pctSum := decimal.Zero, decimal.Zero
	r.se.read(func(st *state) {
		for _, l := range st.lines {
			if l.BusinessID != businessID || !inRange(l.CreatedAt, from, to) {
				continue
			}
			res.CountByStatus[l.Status]++
			res.TotalPlanned += l.PlannedQuantity
			if l.Status != entity.LineStatusCompleted || l.FinalQuantity == nil {
				continue
			}
			res.CompletedLines++
			res.TotalFinal += *l.FinalQuantity
			v := decimal.NewFromInt(*l.FinalQuantity - l.PlannedQuantity)
			varianceSum = varianceSum.Add(v)
			pctSum = pctSum.Add(v.Div(decimal.NewFromInt(l.PlannedQuantity)).Mul(hundred))
		}
	})
	if res.CompletedLines > 0 {
		n := decimal.NewFromInt(int64(res.CompletedLines))
		res.AvgVariance = varianceSum.Div(n)
		res.AvgVariancePercentage = pctSum.Div(n)
	}
	return res, nil
}

func (r *AnalyticsRepo) CompletedLines(_ context.Context, businessID string, from, to *time.Time) ([]*entity.ProductionLine, error) {
	var list []entity.ProductionLine
	r.se.read(func(st *state) {
		for _, l := range st.lines {
			if l.BusinessID == businessID && l.Status == entity.LineStatusCompleted && inRange(l.CreatedAt, from, to) {
				list = append(list, copyLine(l))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].CompletedAt, list[j].CompletedAt
		if a != nil && b != nil && !a.Equal(*b) {
			return a.After(*b)
		}
		return list[i].ID < list[j].ID
	})
	out := make([]*entity.ProductionLine, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

func (r *AnalyticsRepo) ResourceConsumption(_ context.Context, lineID string) ([]repository.ResourceConsumptionResult, error) {
	var out []repository.ResourceConsumptionResult
	r.se.read(func(st *state) {
		var resources []entity.ProductionResource
		for _, res := range st.resources {
			if res.ProductionLineID == lineID {
				resources = append(resources, res)
			}
		}
		sortResources(resources)
		for _, res := range resources {
			c := repository.ResourceConsumptionResult{
				ResourceID:        res.ID,
				ResourceProductID: res.ResourceProductID,
				ResourceName:      res.ResourceName,
				UnitOfMeasure:     res.UnitOfMeasure,
				NeededQuantity:    res.NeededQuantity,
			}
			for _, req := range st.requests {
				if req.ResourceID != res.ID {
					continue
				}
				switch req.Status {
				case entity.RequestStatusFulfilled:
					c.FulfilledQuantity += req.RequestedQuantity
					c.FulfilledRequests++
				case entity.RequestStatusPending:
					c.PendingQuantity += req.RequestedQuantity
				}
			}
			out = append(out, c)
		}
	})
	return out, nil
}
