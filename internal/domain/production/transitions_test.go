package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

// ──────────────────────────────────────────────────────────────────────────────
// Líneas de producción
// ──────────────────────────────────────────────────────────────────────────────

func TestNextLineStatus_CaminoFeliz(t *testing.T) {
	to, err := production.NextLineStatus(entity.LineStatusPending, production.ActionStart)
	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusInProgress, to)

	to, err = production.NextLineStatus(entity.LineStatusInProgress, production.ActionComplete)
	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusCompleted, to)

	to, err = production.NextLineStatus(entity.LineStatusPending, production.ActionDelete)
	require.NoError(t, err)
	assert.Equal(t, production.LineRemoved, to)
}

func TestNextLineStatus_TransicionesIlegales(t *testing.T) {
	cases := []struct {
		from   entity.LineStatus
		action production.LineAction
	}{
		{entity.LineStatusPending, production.ActionComplete},
		{entity.LineStatusPending, production.ActionConsume},
		{entity.LineStatusInProgress, production.ActionStart},
		{entity.LineStatusInProgress, production.ActionDelete},
		{entity.LineStatusInProgress, production.ActionUpdatePlanned},
		{entity.LineStatusCompleted, production.ActionStart},
		{entity.LineStatusCompleted, production.ActionComplete},
		{entity.LineStatusCompleted, production.ActionUpdate},
		{entity.LineStatusCompleted, production.ActionCreateRequest},
		{entity.LineStatusCancelled, production.ActionStart},
		{entity.LineStatus("PAUSED"), production.ActionStart},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.action), func(t *testing.T) {
			_, err := production.NextLineStatus(tc.from, tc.action)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
		})
	}
}

func TestCheckLine_MutacionesPermitidasSoloAntesDeCompletar(t *testing.T) {
	mutations := []production.LineAction{
		production.ActionUpdate,
		production.ActionAddResource,
		production.ActionUpdateResource,
		production.ActionDeleteResource,
		production.ActionCreateRequest,
	}
	for _, a := range mutations {
		assert.NoError(t, production.CheckLine(entity.LineStatusPending, a), a)
		assert.NoError(t, production.CheckLine(entity.LineStatusInProgress, a), a)
		assert.ErrorIs(t, production.CheckLine(entity.LineStatusCompleted, a), domain.ErrInvalidState, a)
		assert.ErrorIs(t, production.CheckLine(entity.LineStatusCancelled, a), domain.ErrInvalidState, a)
	}
}

func TestLineFromStates(t *testing.T) {
	assert.Equal(t, []entity.LineStatus{entity.LineStatusPending}, production.LineFromStates(production.ActionStart))
	assert.Equal(t, []entity.LineStatus{entity.LineStatusInProgress}, production.LineFromStates(production.ActionComplete))
	assert.Equal(t, []entity.LineStatus{entity.LineStatusInProgress}, production.LineFromStates(production.ActionConsume))
	assert.Equal(t,
		[]entity.LineStatus{entity.LineStatusInProgress, entity.LineStatusPending},
		production.LineFromStates(production.ActionCreateRequest))
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func TestNextRequestStatus(t *testing.T) {
	to, err := production.NextRequestStatus(entity.RequestStatusPending, production.ActionFulfill)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusFulfilled, to)

	to, err = production.NextRequestStatus(entity.RequestStatusPending, production.ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusCancelled, to)

	for _, from := range []entity.RequestStatus{entity.RequestStatusFulfilled, entity.RequestStatusCancelled} {
		for _, a := range []production.RequestAction{production.ActionFulfill, production.ActionCancel, production.ActionDeleteRequest} {
			_, err := production.NextRequestStatus(from, a)
			assert.ErrorIs(t, err, domain.ErrInvalidState, "%s/%s", from, a)
		}
	}
}
