// Package metrics adaptador Prometheus del puerto ports.Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Produccion-api/internal/application/ports"
)

// Prometheus registra contadores de ledger y transiciones en un registry propio.
type Prometheus struct {
	registry           *prometheus.Registry
	handler            http.Handler
	ledgerOperations   *prometheus.CounterVec
	lineTransitions    *prometheus.CounterVec
	requestTransitions *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewPrometheus inicializa el registry y los contadores.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	ledger := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "produccion_ledger_operations_total",
		Help: "Movimientos de inventario por tipo y resultado.",
	}, []string{"kind", "outcome"})
	lines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "produccion_line_transitions_total",
		Help: "Transiciones de líneas de producción por acción y resultado.",
	}, []string{"action", "outcome"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "produccion_request_transitions_total",
		Help: "Transiciones de solicitudes de recursos por acción y resultado.",
	}, []string{"action", "outcome"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "produccion_http_requests_total",
		Help: "Peticiones HTTP por ruta y código.",
	}, []string{"route", "code"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "produccion_http_request_duration_seconds",
		Help:    "Duración de peticiones HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	registry.MustRegister(ledger, lines, requests, httpRequests, httpDuration)
	return &Prometheus{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ledgerOperations:   ledger,
		lineTransitions:    lines,
		requestTransitions: requests,
		httpRequests:       httpRequests,
		httpDuration:       httpDuration,
	}
}

// Handler http.Handler para /metrics.
func (p *Prometheus) Handler() http.Handler {
	if p == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return p.handler
}

// Registerer expone el registry para métricas adicionales.
func (p *Prometheus) Registerer() prometheus.Registerer {
	if p == nil {
		return prometheus.DefaultRegisterer
	}
	return p.registry
}

func (p *Prometheus) LedgerOperation(kind, outcome string) {
	p.ledgerOperations.WithLabelValues(kind, outcome).Inc()
}

func (p *Prometheus) LineTransition(action, outcome string) {
	p.lineTransitions.WithLabelValues(action, outcome).Inc()
}

func (p *Prometheus) RequestTransition(action, outcome string) {
	p.requestTransitions.WithLabelValues(action, outcome).Inc()
}

// ObserveHTTP registra una petición atendida. route es el patrón, no la URL, para acotar cardinalidad.
func (p *Prometheus) ObserveHTTP(route, code string, seconds float64) {
	p.httpRequests.WithLabelValues(route, code).Inc()
	p.httpDuration.WithLabelValues(route).Observe(seconds)
}

var _ ports.Metrics = (*Prometheus)(nil)
