package api

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dgallion1/billdigest/internal/bill"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks batch requests. Each server owns its registry.
type Metrics struct {
	registry *prometheus.Registry

	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	renamed  prometheus.Counter
	sent     prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billdigest_batch_requests_total",
			Help: "Batch requests by operation and outcome",
		}, []string{"op", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "billdigest_batch_duration_seconds",
			Help:    "Time taken to load and classify a batch",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"op"}),
		renamed: factory.NewCounter(prometheus.CounterOpts{
			Name: "billdigest_files_renamed_total",
			Help: "Confirmations moved to their canonical name",
		}),
		sent: factory.NewCounter(prometheus.CounterOpts{
			Name: "billdigest_mails_sent_total",
			Help: "Digest emails delivered",
		}),
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.runs.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	var de *bill.DocumentError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, bill.ErrNoDocumentsFound):
		return "not_found"
	case errors.As(err, &de):
		return "rejected"
	default:
		return "error"
	}
}
