// Package config loads wmsctl settings from a YAML file, a .env file, WMS_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wms-platform/wms-web/pkg/httpclient"
	"github.com/wms-platform/wms-web/pkg/logging"
	"github.com/wms-platform/wms-web/pkg/resilience"
	"github.com/wms-platform/wms-web/pkg/session"
	"github.com/wms-platform/wms-web/pkg/tenant"
	"github.com/wms-platform/wms-web/pkg/tracing"
)

const (
	// AppName names the config file, the service in logs and traces
	AppName = "wmsctl"

	EnvPrefix      = "WMS"
	DefaultServer  = "http://localhost:8080"
	DefaultEnvFile = ".env"
)

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Notice destinations
const (
	NoticesConsole = "console"
	NoticesLog     = "log"
)

// Config is the complete wmsctl configuration
type Config struct {
	Server    string            `mapstructure:"server" validate:"required,url"`
	BasePath  string            `mapstructure:"base_path" validate:"required,startswith=/"`
	Timeout   time.Duration     `mapstructure:"timeout" validate:"gt=0"`
	TokenFile string            `mapstructure:"token_file" validate:"required"`
	Output    string            `mapstructure:"output" validate:"oneof=table json yaml"`
	Headers   map[string]string `mapstructure:"headers"`

	Log            LogConfig      `mapstructure:"log"`
	Tenant         tenant.Context `mapstructure:"tenant"`
	RateLimit      float64        `mapstructure:"rate_limit" validate:"gte=0"`
	Burst          int            `mapstructure:"burst" validate:"gte=0"`
	CircuitBreaker BreakerConfig  `mapstructure:"circuit_breaker"`

	// Notices selects where notifications go: the terminal or the log
	Notices string `mapstructure:"notices" validate:"oneof=console log"`

	// ValidateContract checks every request against the embedded OpenAPI
	// document before it is sent
	ValidateContract bool `mapstructure:"validate_contract"`

	Tracing tracing.Config `mapstructure:"tracing"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// BreakerConfig turns the transport circuit breaker on
type BreakerConfig struct {
	Enabled                         bool `mapstructure:"enabled"`
	resilience.CircuitBreakerConfig `mapstructure:",squash"`
}

// MetricsConfig controls the watch command's exporter
type MetricsConfig struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gte=1s"`
	// AllowOrigins lets browser dashboards read the monitor endpoints
	AllowOrigins []string `mapstructure:"allow_origins" validate:"dive,url"`
}

// Flag names bound onto config keys when present on the flag set
var flagKeys = map[string]string{
	"server":    "server",
	"output":    "output",
	"log-level": "log.level",
	"tenant":    "tenant.tenant_id",
	"facility":  "tenant.facility_id",
}

// Loader reads configuration from every source
type Loader struct {
	v        *viper.Viper
	validate *validator.Validate
	envFile  string
}

// NewLoader creates a loader with wmsctl defaults
func NewLoader() *Loader {
	return &Loader{
		v:        viper.New(),
		validate: validator.New(),
		envFile:  DefaultEnvFile,
	}
}

// WithEnvFile changes the dotenv file read before the environment
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load reads the config file at path, or searches for .wmsctl.yaml in the
// home and working directories when path is empty. flags may be nil.
func (l *Loader) Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	l.setDefaults()
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("." + AppName)
		l.v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(home)
		}
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := l.v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.TokenFile = expandPath(cfg.TokenFile)

	if err := l.validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ConfigFile reports the file that was read, if any
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", l.envFile, err)
	}
	return nil
}

func (l *Loader) setDefaults() {
	breaker := resilience.DefaultCircuitBreakerConfig(AppName)
	tc := tracing.DefaultConfig(AppName)

	l.v.SetDefault("server", DefaultServer)
	l.v.SetDefault("base_path", httpclient.DefaultBasePath)
	l.v.SetDefault("timeout", httpclient.DefaultTimeout)
	l.v.SetDefault("token_file", session.DefaultPath())
	l.v.SetDefault("output", OutputTable)
	l.v.SetDefault("notices", NoticesConsole)
	l.v.SetDefault("log.level", string(logging.LevelWarn))
	l.v.SetDefault("log.format", string(logging.FormatText))
	l.v.SetDefault("tenant.tenant_id", "")
	l.v.SetDefault("tenant.facility_id", "")
	l.v.SetDefault("tenant.warehouse_id", "")
	l.v.SetDefault("tenant.seller_id", "")
	l.v.SetDefault("rate_limit", 0)
	l.v.SetDefault("burst", 0)
	l.v.SetDefault("circuit_breaker.enabled", false)
	l.v.SetDefault("circuit_breaker.name", breaker.Name)
	l.v.SetDefault("circuit_breaker.max_requests", breaker.MaxRequests)
	l.v.SetDefault("circuit_breaker.interval", breaker.Interval)
	l.v.SetDefault("circuit_breaker.timeout", breaker.Timeout)
	l.v.SetDefault("circuit_breaker.failure_threshold", breaker.FailureThreshold)
	l.v.SetDefault("circuit_breaker.failure_ratio", breaker.FailureRatioThreshold)
	l.v.SetDefault("circuit_breaker.min_requests", breaker.MinRequestsToTrip)
	l.v.SetDefault("validate_contract", false)
	l.v.SetDefault("tracing.service_name", tc.ServiceName)
	l.v.SetDefault("tracing.service_version", tc.ServiceVersion)
	l.v.SetDefault("tracing.environment", tc.Environment)
	l.v.SetDefault("tracing.otlp_endpoint", tc.OTLPEndpoint)
	l.v.SetDefault("tracing.sample_rate", tc.SampleRate)
	l.v.SetDefault("tracing.enabled", tc.Enabled)
	l.v.SetDefault("tracing.insecure", tc.Insecure)
	l.v.SetDefault("metrics.addr", ":9464")
	l.v.SetDefault("metrics.poll_interval", 30*time.Second)
}

// Load is NewLoader().Load(path, flags)
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	return NewLoader().Load(path, flags)
}

// HTTPClient returns the transport settings
func (c *Config) HTTPClient() *httpclient.Config {
	hc := &httpclient.Config{
		BaseURL:   c.Server,
		BasePath:  c.BasePath,
		Timeout:   c.Timeout,
		Headers:   c.Headers,
		RateLimit: c.RateLimit,
		Burst:     c.Burst,
	}
	if !c.Tenant.IsEmpty() {
		tc := c.Tenant
		hc.Tenant = &tc
	}
	if c.CircuitBreaker.Enabled {
		cb := c.CircuitBreaker.CircuitBreakerConfig
		hc.CircuitBreaker = &cb
	}
	return hc
}

// Logging returns the logger settings; records go to stderr
func (c *Config) Logging() *logging.Config {
	lc := logging.DefaultConfig(AppName)
	lc.Level = logging.LogLevel(c.Log.Level)
	lc.Format = logging.Format(c.Log.Format)
	return lc
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
