package metricsvc

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/teacherpoli/backoffice/core"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: "ok"},
		{err: core.NewValidationError(nil), want: "invalid"},
		{err: core.NewNotFoundError("bonus", "x"), want: "not_found"},
		{err: core.NewConflictError("dup"), want: "conflict"},
		{err: core.NewPersistenceError(errors.New("disk")), want: "persistence_error"},
		{err: core.NewTransportError("op", errors.New("dial")), want: "transport_error"},
		{err: errors.New("other"), want: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCatalogOp("create", nil)
	m.RecordCatalogOp("create", nil)
	m.RecordCatalogOp("create", core.NewPersistenceError(errors.New("disk")))
	m.RecordDirectoryOp("add", core.NewConflictError("dup"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.catalogOps.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogOps.WithLabelValues("create", "persistence_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.directoryOps.WithLabelValues("add", "conflict")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `teacherpoli_catalog_operations_total{op="create",outcome="ok"} 2`)
}
