package production_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

func TestRequestUseCase_CreateValidaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 10)
	line := e.line(t, pan, harina, 100, 5)
	other := e.line(t, pan, harina, 50, 5)
	resID := line.Resources[0].ID

	cases := []struct {
		name string
		in   dto.CreateRequestRequest
		want error
	}{
		{"sin recurso", dto.CreateRequestRequest{DayNumber: 1, RequestedQuantity: 1}, domain.ErrValidation},
		{"día cero", dto.CreateRequestRequest{ResourceID: resID, RequestedQuantity: 1}, domain.ErrValidation},
		{"cantidad cero", dto.CreateRequestRequest{ResourceID: resID, DayNumber: 1}, domain.ErrValidation},
		{"recurso de otra línea", dto.CreateRequestRequest{ResourceID: other.Resources[0].ID, DayNumber: 1, RequestedQuantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.requests.Create(ctx, bizID, userID, line.ID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := e.requests.Create(ctx, otherBiz, userID, line.ID, dto.CreateRequestRequest{ResourceID: resID, DayNumber: 1, RequestedQuantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestUseCase_CreateEnPendienteOEnCurso(t *testing.T) {
	e := newEnv(t)
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 10)
	line := e.line(t, pan, harina, 100, 5)

	req := e.request(t, line.ID, line.Resources[0].ID, 1, 2)
	assert.Equal(t, string(entity.RequestStatusPending), req.Status)
	assert.Equal(t, userID, req.UserID)
	assert.Equal(t, 1, req.DayNumber)

	_, err := e.lines.Start(context.Background(), bizID, line.ID)
	require.NoError(t, err)
	req2 := e.request(t, line.ID, line.Resources[0].ID, 2, 3)
	assert.Equal(t, 2, req2.DayNumber)
}

func TestRequestUseCase_FulfillRequiereLineaEnCurso(t *testing.T) {
	e := newEnv(t)
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 10)
	line := e.line(t, pan, harina, 100, 5)
	req := e.request(t, line.ID, line.Resources[0].ID, 1, 2)

	_, err := e.requests.Fulfill(context.Background(), bizID, userID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(10), e.quantity(t, harina))
}

func TestRequestUseCase_FulfillStockInsuficienteNoCambiaNada(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 10)
	line := e.startedLine(t, pan, harina, 100, 50)
	req := e.request(t, line.ID, line.Resources[0].ID, 1, 11)

	_, err := e.requests.Fulfill(ctx, bizID, userID, req.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(10), e.quantity(t, harina))
	assert.Len(t, e.transactions(t, harina), 1)
	list, err := e.requests.List(ctx, bizID, line.ID, dto.ListRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(entity.RequestStatusPending), list[0].Status)
	assert.Empty(t, list[0].TransactionID)
}

func TestRequestUseCase_FulfillDosVecesEsInvalidState(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 10)
	line := e.startedLine(t, pan, harina, 100, 5)
	req := e.request(t, line.ID, line.Resources[0].ID, 1, 2)

	_, err := e.requests.Fulfill(ctx, bizID, userID, req.ID)
	require.NoError(t, err)
	_, err = e.requests.Fulfill(ctx, bizID, userID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(8), e.quantity(t, harina))

	_, err = e.requests.Cancel(ctx, bizID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	err = e.requests.Delete(ctx, bizID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRequestUseCase_FulfillOtroNegocio(t *testing.T) {
	e := newEnv(t)
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 10)
	line := e.startedLine(t, pan, harina, 100, 5)
	req := e.request(t, line.ID, line.Resources[0].ID, 1, 2)

	_, err := e.requests.Fulfill(context.Background(), otherBiz, userID, req.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.requests.Fulfill(context.Background(), bizID, userID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestUseCase_CancelYDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 10)
	line := e.startedLine(t, pan, harina, 100, 5)
	resID := line.Resources[0].ID
	r1 := e.request(t, line.ID, resID, 1, 2)
	r2 := e.request(t, line.ID, resID, 2, 2)

	out, err := e.requests.Cancel(ctx, bizID, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RequestStatusCancelled), out.Status)
	assert.Equal(t, int64(10), e.quantity(t, harina))

	require.NoError(t, e.requests.Delete(ctx, bizID, r2.ID))
	err = e.requests.Delete(ctx, bizID, r1.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	list, err := e.requests.List(ctx, bizID, line.ID, dto.ListRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r1.ID, list[0].ID)
	assert.Equal(t, 1, e.metrics.count("request/cancel/ok"))
	assert.Equal(t, 1, e.metrics.count("request/delete/ok"))
}

func TestRequestUseCase_ListFiltros(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pan := e.product(t, bizID, "pan", 0)
	harina := e.product(t, bizID, "harina", 100)
	line := e.startedLine(t, pan, harina, 100, 50)
	resID := line.Resources[0].ID
	e.request(t, line.ID, resID, 1, 5)
	e.request(t, line.ID, resID, 1, 6)
	r3 := e.request(t, line.ID, resID, 2, 7)
	_, err := e.requests.Fulfill(ctx, bizID, userID, r3.ID)
	require.NoError(t, err)

	day1, err := e.requests.List(ctx, bizID, line.ID, dto.ListRequestsRequest{DayNumber: 1})
	require.NoError(t, err)
	assert.Len(t, day1, 2)

	fulfilled, err := e.requests.List(ctx, bizID, line.ID, dto.ListRequestsRequest{Status: "FULFILLED"})
	require.NoError(t, err)
	require.Len(t, fulfilled, 1)
	assert.Equal(t, r3.ID, fulfilled[0].ID)

	_, err = e.requests.List(ctx, bizID, line.ID, dto.ListRequestsRequest{Status: "DONE"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.requests.List(ctx, otherBiz, line.ID, dto.ListRequestsRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
