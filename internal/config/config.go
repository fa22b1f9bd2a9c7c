// Package config resolves klinik settings from ~/.klinik/config.toml and
// KLINIK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	BackendChain = "chain"
	BackendFile  = "file"
	BackendPass  = "pass"
	BackendRedis = "redis"

	configName = "config"
	configType = "toml"
	configDir  = ".klinik"
	envPrefix  = "KLINIK"
)

const (
	keyEnv            = "env"
	keyAPIURL         = "api.url"
	keyAPITimeout     = "api.timeout"
	keyAPIMaxRetries  = "api.max_retries"
	keyAPIRetryDelay  = "api.retry_delay"
	keyAPILanguage    = "api.accept_language"
	keySessionBackend = "session.backend"
	keySessionDir     = "session.dir"
	keyRedisAddr      = "session.redis_addr"
	keyRedisDB        = "session.redis_db"
	keyRedisTTL       = "session.redis_ttl"
	keyLogLevel       = "log.level"
	keyMetricsFile    = "metrics.file"
)

type API struct {
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	AcceptLanguage string
}

type Session struct {
	Backend   string
	Dir       string
	RedisAddr string
	RedisDB   int
	RedisTTL  time.Duration
}

type Config struct {
	Env         string
	API         API
	Session     Session
	LogLevel    string
	MetricsFile string
}

func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Gateway converts the API section into gateway settings. An empty URL falls
// back to the default for the runtime mode.
func (c Config) Gateway() gateway.Config {
	cfg := gateway.DefaultConfig(c.Production())
	if c.API.URL != "" {
		cfg.BaseURL = c.API.URL
	}
	cfg.Timeout = c.API.Timeout
	cfg.MaxRetries = c.API.MaxRetries
	cfg.RetryDelay = c.API.RetryDelay
	if c.API.AcceptLanguage != "" {
		cfg.AcceptLanguage = c.API.AcceptLanguage
	}
	return cfg
}

func (c Config) IdentityPath() string {
	return filepath.Join(c.Session.Dir, "session.toml")
}

func (c Config) SecretsDir() string {
	return filepath.Join(c.Session.Dir, "secrets")
}

// Load reads the optional config file and the environment into a Config.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyEnv, EnvProduction)
	v.SetDefault(keyAPIURL, "")
	v.SetDefault(keyAPITimeout, gateway.DefaultTimeout)
	v.SetDefault(keyAPIMaxRetries, gateway.DefaultMaxRetries)
	v.SetDefault(keyAPIRetryDelay, gateway.DefaultRetryDelay)
	v.SetDefault(keyAPILanguage, gateway.DefaultAcceptLanguage)
	v.SetDefault(keySessionBackend, BackendChain)
	v.SetDefault(keySessionDir, baseDir)
	v.SetDefault(keyRedisAddr, "127.0.0.1:6379")
	v.SetDefault(keyRedisDB, 0)
	v.SetDefault(keyRedisTTL, time.Duration(0))
	v.SetDefault(keyLogLevel, "")
	v.SetDefault(keyMetricsFile, "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Env: strings.ToLower(strings.TrimSpace(v.GetString(keyEnv))),
		API: API{
			URL:            strings.TrimSpace(v.GetString(keyAPIURL)),
			Timeout:        v.GetDuration(keyAPITimeout),
			MaxRetries:     v.GetInt(keyAPIMaxRetries),
			RetryDelay:     v.GetDuration(keyAPIRetryDelay),
			AcceptLanguage: v.GetString(keyAPILanguage),
		},
		Session: Session{
			Backend:   strings.ToLower(strings.TrimSpace(v.GetString(keySessionBackend))),
			Dir:       v.GetString(keySessionDir),
			RedisAddr: v.GetString(keyRedisAddr),
			RedisDB:   v.GetInt(keyRedisDB),
			RedisTTL:  v.GetDuration(keyRedisTTL),
		},
		LogLevel:    v.GetString(keyLogLevel),
		MetricsFile: v.GetString(keyMetricsFile),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Env {
	case EnvProduction, EnvDevelopment:
	default:
		return fmt.Errorf("invalid env %q (want %s or %s)", c.Env, EnvProduction, EnvDevelopment)
	}

	switch c.Session.Backend {
	case BackendChain, BackendFile, BackendPass, BackendRedis:
	default:
		return fmt.Errorf("invalid session backend %q", c.Session.Backend)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api max_retries must not be negative, got %d", c.API.MaxRetries)
	}
	if c.API.RetryDelay < 0 {
		return fmt.Errorf("api retry_delay must not be negative, got %s", c.API.RetryDelay)
	}
	if c.Session.Dir == "" {
		return errors.New("session dir is empty")
	}

	return nil
}
