package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsAttempts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveAttempt("GET", 503, 120*time.Millisecond)
	c.ObserveAttempt("GET", 503, 80*time.Millisecond)
	c.ObserveAttempt("GET", 200, 40*time.Millisecond)
	c.ObserveAttempt("POST", 0, time.Second)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.attempts.WithLabelValues("GET", "503")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.attempts.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.attempts.WithLabelValues("POST", "0")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))
}

func TestCollectorRecordsRetriesAndInvalidations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRetry("server_error")
	c.RecordRetry("server_error")
	c.RecordRetry("timeout")
	c.RecordSessionInvalidated()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.retries.WithLabelValues("server_error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.retries.WithLabelValues("timeout")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.invalidated))
}

func TestNewCollectorPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveAttempt("GET", 200, 10*time.Millisecond)
	c.RecordSessionInvalidated()

	path := filepath.Join(t.TempDir(), "klinik.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `klinik_api_attempts_total{method="GET",status_code="200"} 1`)
	assert.Contains(t, string(data), "klinik_session_invalidations_total 1")
}

func TestWriteTextfileReportsBadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "klinik.prom"), reg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "write metrics textfile")
}
