package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/wms-web/pkg/httpclient"
)

// isolate points HOME at an empty directory so no real config is picked up
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	loader := NewLoader().WithEnvFile("")
	cfg, err := loader.Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, loader.ConfigFile())
	assert.Equal(t, DefaultServer, cfg.Server)
	assert.Equal(t, httpclient.DefaultBasePath, cfg.BasePath)
	assert.Equal(t, httpclient.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, filepath.Join(home, ".wmsctl", "session.json"), cfg.TokenFile)
	assert.Equal(t, OutputTable, cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.CircuitBreaker.Enabled)
	assert.Equal(t, NoticesConsole, cfg.Notices)
	assert.Equal(t, uint32(3), cfg.CircuitBreaker.FailureThreshold)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Metrics.PollInterval)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	home := isolate(t)
	path := writeFile(t, home, "wmsctl.yaml", `
server: https://wms.example.com
timeout: 12s
token_file: ~/tokens/wms.json
output: json
tenant:
  tenant_id: t-1
  facility_id: f-file
circuit_breaker:
  enabled: true
  failure_threshold: 7
tracing:
  enabled: true
  sample_rate: 0.25
`)
	t.Setenv("WMS_LOG_LEVEL", "debug")
	t.Setenv("WMS_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("facility", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--facility", "f-flag"}))

	loader := NewLoader().WithEnvFile("")
	cfg, err := loader.Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, path, loader.ConfigFile())

	assert.Equal(t, "https://wms.example.com", cfg.Server)
	assert.Equal(t, 12*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join(home, "tokens", "wms.json"), cfg.TokenFile)
	assert.Equal(t, "yaml", cfg.Output, "environment overrides the file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "t-1", cfg.Tenant.TenantID)
	assert.Equal(t, "f-flag", cfg.Tenant.FacilityID, "flags override the file")
	assert.True(t, cfg.CircuitBreaker.Enabled)
	assert.Equal(t, uint32(7), cfg.CircuitBreaker.FailureThreshold)
	assert.True(t, cfg.Tracing.Enabled)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRate, 1e-9)
}

func TestLoad_DotEnv(t *testing.T) {
	home := isolate(t)
	envFile := writeFile(t, home, "test.env", "WMS_BASE_PATH=/wms/api\n")
	t.Cleanup(func() { os.Unsetenv("WMS_BASE_PATH") })

	cfg, err := NewLoader().WithEnvFile(envFile).Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/wms/api", cfg.BasePath)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := NewLoader().WithEnvFile("").Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"server not a url", "server: not a url"},
		{"unknown output", "output: xml"},
		{"unknown log level", "log:\n  level: loud"},
		{"negative rate limit", "rate_limit: -1"},
		{"sample rate above one", "tracing:\n  sample_rate: 2"},
		{"base path without slash", "base_path: api"},
		{"unknown notice sink", "notices: slack"},
		{"origin not a url", "metrics:\n  allow_origins: [localhost]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			path := writeFile(t, home, "bad.yaml", tt.yaml)

			_, err := NewLoader().WithEnvFile("").Load(path, nil)
			assert.Error(t, err)
		})
	}
}

func TestConfig_HTTPClient(t *testing.T) {
	cfg := &Config{
		Server:   "https://wms.example.com",
		BasePath: "/api/v1",
		Timeout:  3 * time.Second,
		Burst:    2,
	}

	hc := cfg.HTTPClient()
	assert.Equal(t, "https://wms.example.com", hc.BaseURL)
	assert.Nil(t, hc.Tenant)
	assert.Nil(t, hc.CircuitBreaker)

	cfg.Tenant.TenantID = "t-1"
	cfg.CircuitBreaker.Enabled = true
	cfg.CircuitBreaker.FailureThreshold = 2
	hc = cfg.HTTPClient()
	require.NotNil(t, hc.Tenant)
	assert.Equal(t, "t-1", hc.Tenant.TenantID)
	require.NotNil(t, hc.CircuitBreaker)
	assert.Equal(t, uint32(2), hc.CircuitBreaker.FailureThreshold)
}

func TestConfig_Logging(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "debug", Format: "json"}}

	lc := cfg.Logging()
	assert.Equal(t, "debug", string(lc.Level))
	assert.Equal(t, "json", string(lc.Format))
	assert.Equal(t, AppName, lc.ServiceName)
}
