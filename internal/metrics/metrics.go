// Package metrics records gateway traffic in Prometheus collectors and can
// dump them to a node_exporter textfile when the CLI exits.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
)

type Collector struct {
	attempts    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	retries     *prometheus.CounterVec
	invalidated prometheus.Counter
}

var _ gateway.Recorder = (*Collector)(nil)

// NewCollector registers the gateway metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "klinik_api_attempts_total",
			Help: "API attempts by method and HTTP status (0 when no response arrived).",
		}, []string{"method", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "klinik_api_attempt_duration_seconds",
			Help:    "Latency of a single API attempt.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "klinik_api_retries_total",
			Help: "Resubmissions after transient failures, by failure kind.",
		}, []string{"kind"}),
		invalidated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "klinik_session_invalidations_total",
			Help: "Sessions dropped after a 401 response.",
		}),
	}

	reg.MustRegister(c.attempts, c.latency, c.retries, c.invalidated)

	return c
}

func (c *Collector) ObserveAttempt(method string, statusCode int, duration time.Duration) {
	c.attempts.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(method).Observe(duration.Seconds())
}

func (c *Collector) RecordRetry(kind string) {
	c.retries.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordSessionInvalidated() {
	c.invalidated.Inc()
}

// WriteTextfile writes every metric in g to path in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
