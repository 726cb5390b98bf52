package metricsvc

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/bonus"
	"github.com/teacherpoli/backoffice/core/student"
)

// Metrics counts catalog mutations and directory calls by outcome.
type Metrics struct {
	gatherer     prometheus.Gatherer
	catalogOps   *prometheus.CounterVec
	directoryOps *prometheus.CounterVec
}

var (
	_ bonus.Recorder   = (*Metrics)(nil)
	_ student.Recorder = (*Metrics)(nil)
)

// New registers the counters on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		catalogOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "teacherpoli_catalog_operations_total",
			Help: "Bonus catalog operations by operation and outcome",
		}, []string{"op", "outcome"}),
		directoryOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "teacherpoli_directory_operations_total",
			Help: "Student directory calls by operation and outcome",
		}, []string{"op", "outcome"}),
	}
}

func (m *Metrics) RecordCatalogOp(op string, err error) {
	m.catalogOps.WithLabelValues(op, Outcome(err)).Inc()
}

func (m *Metrics) RecordDirectoryOp(op string, err error) {
	m.directoryOps.WithLabelValues(op, Outcome(err)).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Outcome labels an error by kind.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case core.IsValidation(err):
		return "invalid"
	case core.IsNotFound(err):
		return "not_found"
	case core.IsConflict(err):
		return "conflict"
	case core.IsPersistence(err):
		return "persistence_error"
	case core.IsTransport(err):
		return "transport_error"
	default:
		return "error"
	}
}
