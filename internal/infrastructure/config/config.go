// Package config loads storefront settings from config.toml and COZICO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full storefront configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Profiling ProfilingConfig `mapstructure:"profiling"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout, stderr or a file path
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"`
	MaxBodySize       int64         `mapstructure:"max_body_size"`
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	RateLimitBurst    int           `mapstructure:"rate_limit_burst"`
	CORSAllowOrigins  []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods  []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders  []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies    []string      `mapstructure:"trusted_proxies"`
}

// RedisConfig locates the cart snapshot store. Snapshots stay in memory
// unless Enabled.
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Addr is host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// SessionConfig controls shopper sessions and their cart stores.
type SessionConfig struct {
	HeaderName      string        `mapstructure:"header_name"`
	CookieName      string        `mapstructure:"cookie_name"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
	CookieMaxAge    time.Duration `mapstructure:"cookie_max_age"`
	IdleTTL         time.Duration `mapstructure:"idle_ttl"` // evict a store after this long untouched
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
	SnapshotTTL     time.Duration `mapstructure:"snapshot_ttl"`
}

// CatalogConfig holds the storefront's pricing and listing rules.
type CatalogConfig struct {
	EnforceStock          bool  `mapstructure:"enforce_stock"`
	FreeShippingThreshold int64 `mapstructure:"free_shipping_threshold"` // rupees
	ShippingFee           int64 `mapstructure:"shipping_fee"`            // rupees
	RelatedLimit          int   `mapstructure:"related_limit"`
	TrendingLimit         int   `mapstructure:"trending_limit"`
}

type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	LogsEnabled       bool          `mapstructure:"logs_enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"` // OTLP/gRPC host:port
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	ServiceName       string        `mapstructure:"service_name"` // defaults to app.name
	Insecure          bool          `mapstructure:"insecure"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval"`
}

type ProfilingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServerAddress     string `mapstructure:"server_address"`
	SpanProfiles      bool   `mapstructure:"span_profiles"`
	BasicAuthUser     string `mapstructure:"basic_auth_user"`
	BasicAuthPassword string `mapstructure:"basic_auth_password"`
}

// defaults lists every key. A key viper does not know is invisible to
// AutomaticEnv during Unmarshal, so the empty ones are listed too.
var defaults = map[string]any{
	"app.name": "cozico-storefront",
	"app.env":  "development",
	"app.port": "8080",

	"http.read_timeout":        30 * time.Second,
	"http.write_timeout":       30 * time.Second,
	"http.idle_timeout":        2 * time.Minute,
	"http.shutdown_timeout":    15 * time.Second,
	"http.max_header_bytes":    1 << 20,
	"http.max_body_size":       1 << 20,
	"http.rate_limit_enabled":  true,
	"http.rate_limit_requests": 100,
	"http.rate_limit_window":   time.Minute,
	"http.rate_limit_burst":    20,
	// no origins: cross-origin requests are refused until configured
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "X-Request-ID", "X-Session-ID"},
	"http.trusted_proxies":    []string{},

	"log.level":  "info",
	"log.format": "json",
	"log.output": "stdout",

	"redis.enabled":    false,
	"redis.host":       "localhost",
	"redis.port":       6379,
	"redis.password":   "",
	"redis.db":         0,
	"redis.key_prefix": "cozico:cart:",

	"session.header_name":      "X-Session-ID",
	"session.cookie_name":      "cozico_session",
	"session.cookie_secure":    false,
	"session.cookie_max_age":   30 * 24 * time.Hour,
	"session.idle_ttl":         2 * time.Hour,
	"session.janitor_interval": time.Minute,
	"session.snapshot_ttl":     30 * 24 * time.Hour,

	"catalog.enforce_stock":           true,
	"catalog.free_shipping_threshold": 2999,
	"catalog.shipping_fee":            199,
	"catalog.related_limit":           4,
	"catalog.trending_limit":          4,

	"telemetry.enabled":            false,
	"telemetry.metrics_enabled":    false,
	"telemetry.logs_enabled":       false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.sampling_ratio":     1.0,
	"telemetry.service_name":       "",
	"telemetry.insecure":           false,
	"telemetry.metrics_interval":   time.Minute,

	"profiling.enabled":             false,
	"profiling.server_address":      "http://localhost:4040",
	"profiling.span_profiles":       false,
	"profiling.basic_auth_user":     "",
	"profiling.basic_auth_password": "",
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("COZICO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	return &cfg, nil
}

// Load reads config.toml from ".", "./config" or "/etc/cozico" if present.
// COZICO_<SECTION>_<KEY> environment variables win over the file.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cozico")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Catalog.FreeShippingThreshold >= 0, "catalog.free_shipping_threshold cannot be negative")
	check(c.Catalog.ShippingFee >= 0, "catalog.shipping_fee cannot be negative")
	check(c.Catalog.RelatedLimit >= 0 && c.Catalog.TrendingLimit >= 0, "catalog limits cannot be negative")
	check(c.Session.IdleTTL >= time.Minute, "session.idle_ttl must be at least 1m, got %s", c.Session.IdleTTL)
	check(c.Session.JanitorInterval > 0 && c.Session.JanitorInterval <= c.Session.IdleTTL,
		"session.janitor_interval (%s) must be positive and at most session.idle_ttl (%s)",
		c.Session.JanitorInterval, c.Session.IdleTTL)
	check(!c.HTTP.RateLimitEnabled || c.HTTP.RateLimitRequests > 0, "http.rate_limit_requests must be positive")
	check(c.Telemetry.SamplingRatio >= 0 && c.Telemetry.SamplingRatio <= 1,
		"telemetry.sampling_ratio must be between 0 and 1, got %g", c.Telemetry.SamplingRatio)

	if c.IsProduction() {
		check(!slices.Contains(c.HTTP.CORSAllowOrigins, "*"), "http.cors_allow_origins cannot be '*' in production")
		check(c.Session.CookieSecure, "session.cookie_secure must be true in production")
	}
	return errors.Join(errs...)
}

// IsProduction reports whether app.env is "production".
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
