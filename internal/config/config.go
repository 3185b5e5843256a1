package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Workbook WorkbookConfig `yaml:"workbook" mapstructure:"workbook"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Palette  PaletteConfig  `yaml:"palette" mapstructure:"palette"`
	Map      MapConfig      `yaml:"map" mapstructure:"map"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// WorkbookConfig locates the workbook and sets how long it stays cached.
type WorkbookConfig struct {
	Source       string `yaml:"source" mapstructure:"source"`
	CacheTTLSecs int    `yaml:"cache_ttl_secs" mapstructure:"cache_ttl_secs"`
}

// CacheTTL returns the cache TTL as a duration. Zero disables expiry.
func (w WorkbookConfig) CacheTTL() time.Duration {
	return time.Duration(w.CacheTTLSecs) * time.Second
}

// FetchConfig configures downloads of remote workbooks.
type FetchConfig struct {
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`

	// Consecutive failed downloads before remote loads are refused for BreakerResetSecs.
	BreakerFailures  int `yaml:"breaker_failures" mapstructure:"breaker_failures"`
	BreakerResetSecs int `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
}

// Timeout returns the request timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// BreakerReset returns how long remote loads are refused after the breaker opens.
func (f FetchConfig) BreakerReset() time.Duration {
	return time.Duration(f.BreakerResetSecs) * time.Second
}

// PaletteConfig points at an optional palette file. Empty uses the built-in palette.
type PaletteConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// BasemapConfig is one switchable tile layer.
type BasemapConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	URL         string `yaml:"url" mapstructure:"url"`
	Attribution string `yaml:"attribution" mapstructure:"attribution"`
}

// MapConfig is passed through to the map page.
// FitBounds zooms to the points' bounds instead of centring on their centroid.
type MapConfig struct {
	ZoomStart     int             `yaml:"zoom_start" mapstructure:"zoom_start"`
	FitBounds     bool            `yaml:"fit_bounds" mapstructure:"fit_bounds"`
	Cluster       bool            `yaml:"cluster" mapstructure:"cluster"`
	DefaultColors []string        `yaml:"default_colors" mapstructure:"default_colors"`
	Basemaps      []BasemapConfig `yaml:"basemaps" mapstructure:"basemaps"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SHEETMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("workbook.source", "")
	v.SetDefault("workbook.cache_ttl_secs", 300)
	v.SetDefault("fetch.user_agent", "sheetmap/1.0")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.rate_per_sec", 2.0)
	v.SetDefault("fetch.breaker_failures", 5)
	v.SetDefault("fetch.breaker_reset_secs", 30)
	v.SetDefault("palette.file", "")
	v.SetDefault("map.zoom_start", 5)
	v.SetDefault("map.fit_bounds", false)
	v.SetDefault("map.cluster", true)
	v.SetDefault("map.default_colors", []string{"#1E88E5", "#4CAF50", "#9C27B0", "#FB8C00"})
	v.SetDefault("map.basemaps", []map[string]any{
		{
			"name":        "OpenStreetMap",
			"url":         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			"attribution": "&copy; OpenStreetMap contributors",
		},
	})
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return eris.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Workbook.CacheTTLSecs < 0 {
		return eris.Errorf("config: workbook.cache_ttl_secs must not be negative, got %d", c.Workbook.CacheTTLSecs)
	}
	if c.Fetch.TimeoutSecs < 0 {
		return eris.Errorf("config: fetch.timeout_secs must not be negative, got %d", c.Fetch.TimeoutSecs)
	}
	if c.Fetch.MaxRetries < 0 {
		return eris.Errorf("config: fetch.max_retries must not be negative, got %d", c.Fetch.MaxRetries)
	}
	if c.Fetch.RatePerSec < 0 {
		return eris.Errorf("config: fetch.rate_per_sec must not be negative, got %g", c.Fetch.RatePerSec)
	}
	if c.Fetch.BreakerFailures < 0 || c.Fetch.BreakerResetSecs < 0 {
		return eris.New("config: fetch.breaker_failures and fetch.breaker_reset_secs must not be negative")
	}
	if c.Map.ZoomStart < 0 || c.Map.ZoomStart > 22 {
		return eris.Errorf("config: map.zoom_start %d out of range 0-22", c.Map.ZoomStart)
	}
	if len(c.Map.Basemaps) == 0 {
		return eris.New("config: map.basemaps needs at least one entry")
	}
	for i, b := range c.Map.Basemaps {
		if b.Name == "" || b.URL == "" {
			return eris.Errorf("config: map.basemaps[%d] needs name and url", i)
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
