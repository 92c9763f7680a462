package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"uims/internal/component/models"
	dErrors "uims/pkg/domain-errors"
)

// Metrics provides observability for the component module.
// Tracks repository operations by outcome and audit records appended.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	AuditRecords      *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uims_component_operations_total",
			Help: "Total number of component repository operations by kind and result",
		}, []string{"operation", "kind", "result"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uims_component_operation_duration_seconds",
			Help:    "Duration of component repository operations including the transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		AuditRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uims_component_audit_records_total",
			Help: "Total number of committed component audit records by action",
		}, []string{"action"}),
	}
}

// ObserveOperation records the outcome and duration of an operation.
// Call with time.Now() at the start of the operation. kind may be empty when
// the operation failed before the variant was known.
func (m *Metrics) ObserveOperation(op string, kind models.Kind, err error, start time.Time) {
	result := "ok"
	if err != nil {
		result = string(dErrors.CodeOf(err))
	}
	m.Operations.WithLabelValues(op, string(kind), result).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// IncrementAuditRecord records a committed audit record.
func (m *Metrics) IncrementAuditRecord(action models.Action) {
	m.AuditRecords.WithLabelValues(string(action)).Inc()
}
