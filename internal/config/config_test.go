package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Workbook.Source)
	assert.Equal(t, 5*time.Minute, cfg.Workbook.CacheTTL())
	assert.Equal(t, "sheetmap/1.0", cfg.Fetch.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout())
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.InDelta(t, 2.0, cfg.Fetch.RatePerSec, 0.001)
	assert.Equal(t, 5, cfg.Fetch.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.Fetch.BreakerReset())
	assert.Equal(t, "", cfg.Palette.File)
	assert.Equal(t, 5, cfg.Map.ZoomStart)
	assert.False(t, cfg.Map.FitBounds)
	assert.True(t, cfg.Map.Cluster)
	assert.Equal(t, []string{"#1E88E5", "#4CAF50", "#9C27B0", "#FB8C00"}, cfg.Map.DefaultColors)
	require.Len(t, cfg.Map.Basemaps, 1)
	assert.Equal(t, "OpenStreetMap", cfg.Map.Basemaps[0].Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
workbook:
  source: https://example.com/stores.xlsx
  cache_ttl_secs: 60
log:
  level: debug
  format: console
server:
  port: 9090
map:
  zoom_start: 6
  fit_bounds: true
  cluster: false
  basemaps:
    - name: Positron
      url: https://tiles.example.com/{z}/{x}/{y}.png
    - name: Imagery
      url: https://imagery.example.com/{z}/{y}/{x}
      attribution: Imagery
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/stores.xlsx", cfg.Workbook.Source)
	assert.Equal(t, time.Minute, cfg.Workbook.CacheTTL())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Map.ZoomStart)
	assert.True(t, cfg.Map.FitBounds)
	assert.False(t, cfg.Map.Cluster)
	require.Len(t, cfg.Map.Basemaps, 2)
	assert.Equal(t, "Imagery", cfg.Map.Basemaps[1].Name)
	assert.Equal(t, "Imagery", cfg.Map.Basemaps[1].Attribution)
	// Defaults still apply for unset values
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, "sheetmap/1.0", cfg.Fetch.UserAgent)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
workbook:
  source: stores.xlsx
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SHEETMAP_WORKBOOK_SOURCE", "depots.csv")
	t.Setenv("SHEETMAP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "depots.csv", cfg.Workbook.Source)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SHEETMAP_SERVER_PORT", "3000")
	t.Setenv("SHEETMAP_FETCH_MAX_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Fetch.MaxRetries)
}

func TestLoadEnvNegativeRetriesFailsValidation(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SHEETMAP_FETCH_MAX_RETRIES", "-1")

	cfg, err := Load()
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch.max_retries")
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)

	const key = "SHEETMAP_PALETTE_FILE"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=markers.yaml\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "markers.yaml", cfg.Palette.File)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Workbook: WorkbookConfig{CacheTTLSecs: 300},
			Fetch:    FetchConfig{TimeoutSecs: 30, MaxRetries: 3, RatePerSec: 2},
			Map: MapConfig{
				ZoomStart: 5,
				Basemaps:  []BasemapConfig{{Name: "OSM", URL: "https://tile.example.com/{z}/{x}/{y}.png"}},
			},
			Server: ServerConfig{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero ttl", mutate: func(c *Config) { c.Workbook.CacheTTLSecs = 0 }},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "zero retries", mutate: func(c *Config) { c.Fetch.MaxRetries = 0 }},
		{name: "negative retries", mutate: func(c *Config) { c.Fetch.MaxRetries = -1 }, wantErr: "fetch.max_retries"},
		{name: "negative rate", mutate: func(c *Config) { c.Fetch.RatePerSec = -0.5 }, wantErr: "fetch.rate_per_sec"},
		{name: "negative timeout", mutate: func(c *Config) { c.Fetch.TimeoutSecs = -1 }, wantErr: "fetch.timeout_secs"},
		{name: "negative ttl", mutate: func(c *Config) { c.Workbook.CacheTTLSecs = -1 }, wantErr: "workbook.cache_ttl_secs"},
		{name: "negative breaker failures", mutate: func(c *Config) { c.Fetch.BreakerFailures = -1 }, wantErr: "fetch.breaker_failures"},
		{name: "zoom too high", mutate: func(c *Config) { c.Map.ZoomStart = 23 }, wantErr: "map.zoom_start"},
		{name: "negative zoom", mutate: func(c *Config) { c.Map.ZoomStart = -1 }, wantErr: "map.zoom_start"},
		{name: "no basemaps", mutate: func(c *Config) { c.Map.Basemaps = nil }, wantErr: "map.basemaps"},
		{name: "basemap without url", mutate: func(c *Config) { c.Map.Basemaps[0].URL = "" }, wantErr: "map.basemaps[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
