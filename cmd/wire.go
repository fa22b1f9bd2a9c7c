package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/bnema/klinik-cli/internal/adapters/api"
	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/adapters/navigator"
	tomlrepo "github.com/bnema/klinik-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/klinik-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/klinik-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/klinik-cli/internal/adapters/secrets/pass"
	redisstore "github.com/bnema/klinik-cli/internal/adapters/secrets/redis"
	"github.com/bnema/klinik-cli/internal/adapters/session"
	"github.com/bnema/klinik-cli/internal/application"
	"github.com/bnema/klinik-cli/internal/config"
	"github.com/bnema/klinik-cli/internal/logger"
	"github.com/bnema/klinik-cli/internal/metrics"
	"github.com/bnema/klinik-cli/internal/ports"
	"github.com/bnema/klinik-cli/internal/version"
)

const redisDialTimeout = 5 * time.Second

type app struct {
	cfg        config.Config
	logger     *slog.Logger
	clinic     *api.Clinic
	sessions   *application.SessionService
	dashboards *application.DashboardService
	registry   *prometheus.Registry
	stderr     *deferredWriter
	now        func() time.Time
	asJSON     bool
	closers    []func() error
}

// deferredWriter forwards to the command's stderr once cobra has resolved it.
type deferredWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (d *deferredWriter) set(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w = w
}

func (d *deferredWriter) current() io.Writer {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.w == nil {
		return os.Stderr
	}
	return d.w
}

func (d *deferredWriter) Write(p []byte) (int, error) {
	return d.current().Write(p)
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := logger.DefaultLevel(cfg.Production())
	if cfg.LogLevel != "" {
		level, err = logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	stderr := &deferredWriter{}
	log := logger.Setup(stderr, level)

	a := &app{
		cfg:      cfg,
		logger:   log,
		registry: prometheus.NewRegistry(),
		stderr:   stderr,
		now:      time.Now,
	}

	secretStore, err := a.wireSecretStore()
	if err != nil {
		return nil, err
	}
	if err := a.wireServices(secretStore); err != nil {
		return nil, err
	}

	return a, nil
}

// wireServices builds everything that sits on top of the secret store. Backend
// connections opened so far are closed when it fails.
func (a *app) wireServices(secretStore ports.SecretStore) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(err, a.closeBackends())
		}
	}()

	identities, err := tomlrepo.NewIdentityRepository(a.cfg.IdentityPath())
	if err != nil {
		return fmt.Errorf("wire identity repository: %w", err)
	}

	sessionStore := session.NewStore(secretStore, identities)
	invalidator := application.NewSessionInvalidator(sessionStore, navigator.NewTerminal(a.stderr.current))
	collector := metrics.NewCollector(a.registry)

	gatewayCfg := a.cfg.Gateway()
	gatewayCfg.UserAgent = "klinik/" + version.Version

	client, err := gateway.New(gatewayCfg,
		gateway.WithTokenSource(sessionStore),
		gateway.WithSessionInvalidator(invalidator),
		gateway.WithLogger(a.logger),
		gateway.WithRecorder(collector),
	)
	if err != nil {
		return fmt.Errorf("wire api gateway: %w", err)
	}

	a.clinic = api.New(client)
	a.sessions = application.NewSessionService(a.clinic.Auth, sessionStore, invalidator, ports.SystemClock{})
	a.dashboards = application.NewDashboardService(sessionStore, a.clinic.Admin, a.clinic)

	return nil
}

func (a *app) wireSecretStore() (ports.SecretStore, error) {
	switch a.cfg.Session.Backend {
	case config.BackendFile:
		return filestore.NewStore(a.cfg.SecretsDir()), nil
	case config.BackendPass:
		return passstore.NewStore(), nil
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		defer cancel()

		store, closeFn, err := redisstore.Dial(ctx, a.cfg.Session.RedisAddr, a.cfg.Session.RedisDB, redisstore.WithTTL(a.cfg.Session.RedisTTL))
		if err != nil {
			return nil, fmt.Errorf("wire redis secret store: %w", err)
		}
		a.closers = append(a.closers, closeFn)
		return store, nil
	default:
		store, err := chainstore.NewPassFirstWithFileFallback(a.cfg.SecretsDir())
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return store, nil
	}
}

// shutdown exports metrics when configured and releases backend connections.
func (a *app) shutdown() error {
	var errs []error

	if a.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := a.closeBackends(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// closeBackends releases backend connections once and forgets them.
func (a *app) closeBackends() error {
	closers := a.closers
	a.closers = nil

	var errs []error
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
