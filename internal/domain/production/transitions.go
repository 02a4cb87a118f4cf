// Package production contiene las reglas puras del flujo de producción:
// tablas de transición de estados y cálculos de varianza/eficiencia.
package production

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// LineAction acción que se puede intentar sobre una línea de producción.
type LineAction string

// Acciones sobre ProductionLine.
const (
	ActionStart          LineAction = "start"
	ActionComplete       LineAction = "complete"
	ActionDelete         LineAction = "delete"
	ActionUpdate         LineAction = "update"
	ActionUpdatePlanned  LineAction = "update_planned"
	ActionAddResource    LineAction = "add_resource"
	ActionUpdateResource LineAction = "update_resource"
	ActionDeleteResource LineAction = "delete_resource"
	ActionCreateRequest  LineAction = "create_request"
	// ActionConsume cumplir una solicitud (débito de inventario). Solo con la corrida en curso:
	// así una línea PENDING nunca tiene consumo y puede borrarse sin huérfanos.
	ActionConsume        LineAction = "consume"
)

// LineRemoved estado destino de ActionDelete; nunca se persiste.
const LineRemoved entity.LineStatus = "REMOVED"

// lineTransitions: estado origen × acción → estado destino.
// Las acciones ausentes son ilegales desde ese estado. COMPLETED y CANCELLED no admiten ninguna.
var lineTransitions = map[entity.LineStatus]map[LineAction]entity.LineStatus{
	entity.LineStatusPending: {
		ActionStart:          entity.LineStatusInProgress,
		ActionDelete:         LineRemoved,
		ActionUpdate:         entity.LineStatusPending,
		ActionUpdatePlanned:  entity.LineStatusPending,
		ActionAddResource:    entity.LineStatusPending,
		ActionUpdateResource: entity.LineStatusPending,
		ActionDeleteResource: entity.LineStatusPending,
		ActionCreateRequest:  entity.LineStatusPending,
	},
	entity.LineStatusInProgress: {
		ActionComplete:       entity.LineStatusCompleted,
		ActionUpdate:         entity.LineStatusInProgress,
		ActionAddResource:    entity.LineStatusInProgress,
		ActionUpdateResource: entity.LineStatusInProgress,
		ActionDeleteResource: entity.LineStatusInProgress,
		ActionCreateRequest:  entity.LineStatusInProgress,
		ActionConsume:        entity.LineStatusInProgress,
	},
	entity.LineStatusCompleted: {},
	entity.LineStatusCancelled: {},
}

// NextLineStatus devuelve el estado resultante de aplicar action sobre from.
// Retorna domain.ErrInvalidState si la transición no está en la tabla.
func NextLineStatus(from entity.LineStatus, action LineAction) (entity.LineStatus, error) {
	actions, ok := lineTransitions[from]
	if !ok {
		return "", fmt.Errorf("estado de línea desconocido %q: %w", from, domain.ErrInvalidState)
	}
	to, ok := actions[action]
	if !ok {
		return "", fmt.Errorf("%s no permitido desde %s: %w", action, from, domain.ErrInvalidState)
	}
	return to, nil
}

// CheckLine es NextLineStatus descartando el destino.
func CheckLine(from entity.LineStatus, action LineAction) error {
	_, err := NextLineStatus(from, action)
	return err
}

// LineFromStates estados desde los que action es legal. Lo usan los repositorios
// para construir el WHERE status IN (...) del update condicional.
func LineFromStates(action LineAction) []entity.LineStatus {
	var out []entity.LineStatus
	for from, actions := range lineTransitions {
		if _, ok := actions[action]; ok {
			out = append(out, from)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RequestAction acción sobre una solicitud de recurso.
type RequestAction string

// Acciones sobre ProductionRequest.
const (
	ActionFulfill       RequestAction = "fulfill"
	ActionCancel        RequestAction = "cancel"
	ActionDeleteRequest RequestAction = "delete"
)

// RequestRemoved estado destino de ActionDeleteRequest; nunca se persiste.
const RequestRemoved entity.RequestStatus = "REMOVED"

var requestTransitions = map[entity.RequestStatus]map[RequestAction]entity.RequestStatus{
	entity.RequestStatusPending: {
		ActionFulfill:       entity.RequestStatusFulfilled,
		ActionCancel:        entity.RequestStatusCancelled,
		ActionDeleteRequest: RequestRemoved,
	},
	entity.RequestStatusFulfilled: {},
	entity.RequestStatusCancelled: {},
}

// NextRequestStatus devuelve el estado resultante de aplicar action sobre una solicitud en from.
func NextRequestStatus(from entity.RequestStatus, action RequestAction) (entity.RequestStatus, error) {
	actions, ok := requestTransitions[from]
	if !ok {
		return "", fmt.Errorf("estado de solicitud desconocido %q: %w", from, domain.ErrInvalidState)
	}
	to, ok := actions[action]
	if !ok {
		return "", fmt.Errorf("%s no permitido desde %s: %w", action, from, domain.ErrInvalidState)
	}
	return to, nil
}
