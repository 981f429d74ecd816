// Package metrics provides Prometheus metrics for a payroll run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File read outcomes used as the result label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Manager manages all Prometheus metrics for a payroll run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Ingestion
	filesRead       *prometheus.CounterVec
	rowsRead        prometheus.Counter
	recordsBuilt    prometheus.Counter
	recordsRejected prometheus.Counter

	// Reporting
	reportsGenerated         *prometheus.CounterVec
	reportGenerationDuration prometheus.Histogram
	payoutTotal              prometheus.Gauge
}

// Global metrics manager instance.
var globalManager = NewManager() //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// NewManager creates a new metrics manager on its own registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "payroll",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
	}

	for _, opt := range opts {
		opt(m)
	}

	// Custom registry to avoid default Go metrics.
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesRead = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "files_read_total",
		Help:        "Total number of input files read, by result",
		ConstLabels: m.constLabels,
	}, []string{"result"})

	m.rowsRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_read_total",
		Help:        "Total number of data rows parsed from input files",
		ConstLabels: m.constLabels,
	})

	m.recordsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_built_total",
		Help:        "Total number of validated employee records",
		ConstLabels: m.constLabels,
	})

	m.recordsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_rejected_total",
		Help:        "Total number of rows that failed coercion or validation",
		ConstLabels: m.constLabels,
	})

	m.reportsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_generated_total",
		Help:        "Total number of reports generated, by report type",
		ConstLabels: m.constLabels,
	}, []string{"report"})

	m.reportGenerationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_generation_duration_seconds",
		Help:        "Time spent rendering a report",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.payoutTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "payout_total",
		Help:        "Sum of payouts in the last generated report",
		ConstLabels: m.constLabels,
	})
}

// RecordFileRead increments the files read counter for result (ResultOK or ResultError).
func (m *Manager) RecordFileRead(result string) {
	m.filesRead.WithLabelValues(result).Inc()
}

// AddRowsRead adds n parsed rows.
func (m *Manager) AddRowsRead(n int) {
	m.rowsRead.Add(float64(n))
}

// AddRecordsBuilt adds n validated records.
func (m *Manager) AddRecordsBuilt(n int) {
	m.recordsBuilt.Add(float64(n))
}

// RecordRecordRejected increments the rejected rows counter.
func (m *Manager) RecordRecordRejected() {
	m.recordsRejected.Inc()
}

// RecordReportGenerated counts a rendered report and observes its duration in seconds.
func (m *Manager) RecordReportGenerated(report string, seconds float64) {
	m.reportsGenerated.WithLabelValues(report).Inc()
	m.reportGenerationDuration.Observe(seconds)
}

// SetPayoutTotal sets the payout total gauge.
func (m *Manager) SetPayoutTotal(total float64) {
	m.payoutTotal.Set(total)
}

// Registry returns the Prometheus registry the manager registers into.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metric values in the node-exporter
// textfile format to path. The file is replaced atomically.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailed, path, err)
	}
	return nil
}
