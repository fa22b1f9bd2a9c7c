package cmd

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	filestore "github.com/bnema/klinik-cli/internal/adapters/secrets/file"
	"github.com/bnema/klinik-cli/internal/config"
)

func newWiringApp(t *testing.T, apiURL string, closers ...func() error) *app {
	t.Helper()

	dir := t.TempDir()
	return &app{
		cfg: config.Config{
			API:     config.API{URL: apiURL},
			Session: config.Session{Dir: dir},
		},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry: prometheus.NewRegistry(),
		stderr:   &deferredWriter{},
		now:      time.Now,
		closers:  closers,
	}
}

func TestWireServicesClosesBackendsWhenGatewayFails(t *testing.T) {
	t.Parallel()

	closed := 0
	a := newWiringApp(t, "ftp://clinic.invalid", func() error {
		closed++
		return nil
	})

	err := a.wireServices(filestore.NewStore(a.cfg.SecretsDir()))
	require.Error(t, err)
	assert.ErrorContains(t, err, "wire api gateway")
	assert.Equal(t, 1, closed)
	assert.Empty(t, a.closers)

	require.NoError(t, a.shutdown())
	assert.Equal(t, 1, closed, "shutdown must not close a backend twice")
}

func TestWireServicesReportsCloseFailure(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("redis: connection reset")
	a := newWiringApp(t, "ftp://clinic.invalid", func() error { return closeErr })

	err := a.wireServices(filestore.NewStore(a.cfg.SecretsDir()))
	require.Error(t, err)
	assert.ErrorIs(t, err, closeErr)
	assert.ErrorContains(t, err, "wire api gateway")
}

func TestWireServicesKeepsBackendsOpenOnSuccess(t *testing.T) {
	t.Parallel()

	closed := 0
	a := newWiringApp(t, "http://127.0.0.1:8080/api", func() error {
		closed++
		return nil
	})

	require.NoError(t, a.wireServices(filestore.NewStore(a.cfg.SecretsDir())))
	assert.NotNil(t, a.clinic)
	assert.NotNil(t, a.sessions)
	assert.NotNil(t, a.dashboards)
	assert.Zero(t, closed)

	require.NoError(t, a.shutdown())
	assert.Equal(t, 1, closed)
}
