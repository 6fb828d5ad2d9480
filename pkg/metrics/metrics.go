// Package metrics exposes Prometheus counters for tokens file I/O.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for tokens file I/O
type Metrics struct {
	// Write side
	linesWritten  prometheus.Counter
	tokensWritten prometheus.Counter
	bytesWritten  prometheus.Counter
	flushesTotal  *prometheus.CounterVec
	flushDuration prometheus.Histogram
	writeErrors   prometheus.Counter

	// Read side
	linesRead      prometheus.Counter
	tokensRead     prometheus.Counter
	bytesDiscarded prometheus.Counter
	readErrors     prometheus.Counter
}

// NewMetrics creates all metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		linesWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_lines_written_total",
			Help: "Total number of lines written",
		}),
		tokensWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_tokens_written_total",
			Help: "Total number of tokens written",
		}),
		bytesWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_bytes_written_total",
			Help: "Total number of bytes handed to the write buffer",
		}),
		flushesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tokfile_flushes_total",
			Help: "Total number of buffer flushes",
		}, []string{"status"}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokfile_flush_duration_seconds",
			Help:    "Buffer flush duration in seconds, including fsync",
			Buckets: prometheus.DefBuckets,
		}),
		writeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_write_errors_total",
			Help: "Total number of failed line writes",
		}),

		linesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_lines_read_total",
			Help: "Total number of lines decoded",
		}),
		tokensRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_tokens_read_total",
			Help: "Total number of tokens decoded",
		}),
		bytesDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_bytes_discarded_total",
			Help: "Total number of trailing bytes dropped because no sentinel followed them",
		}),
		readErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "tokfile_read_errors_total",
			Help: "Total number of reads stopped by an I/O error",
		}),
	}
}

// RecordLineWritten records one line handed to the write buffer
func (m *Metrics) RecordLineWritten(tokens, bytes int) {
	if m == nil {
		return
	}
	m.linesWritten.Inc()
	m.tokensWritten.Add(float64(tokens))
	m.bytesWritten.Add(float64(bytes))
}

// RecordWriteError records a failed line write
func (m *Metrics) RecordWriteError() {
	if m == nil {
		return
	}
	m.writeErrors.Inc()
}

// RecordFlush records a buffer flush
func (m *Metrics) RecordFlush(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.flushesTotal.WithLabelValues(status).Inc()
	m.flushDuration.Observe(duration.Seconds())
}

// RecordLineRead records one decoded line
func (m *Metrics) RecordLineRead(tokens int) {
	if m == nil {
		return
	}
	m.linesRead.Inc()
	m.tokensRead.Add(float64(tokens))
}

// RecordExhausted records how a reader stopped
func (m *Metrics) RecordExhausted(discarded int, err error) {
	if m == nil {
		return
	}
	m.bytesDiscarded.Add(float64(discarded))
	if err != nil {
		m.readErrors.Inc()
	}
}
