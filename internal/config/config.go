package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvApiBaseURL = "FITMENTOR_API_BASE_URL"
	EnvLayout     = "FITMENTOR_LAYOUT"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// calculation service
	ApiBaseURL               string `toml:"api_base_url"`
	ApiTimeoutSeconds        int    `toml:"api_timeout_seconds"`
	ExercisesCacheMinutes    int    `toml:"exercises_cache_minutes"`
	ConnectivityCheckSeconds int    `toml:"connectivity_check_seconds"`
	// forms and results
	IncludeGender          bool   `toml:"include_gender"`
	IncludeSessionDuration bool   `toml:"include_session_duration"`
	DefaultSessionDuration int    `toml:"default_session_duration"`
	Layout                 string `toml:"layout"`
	SessionTTLMinutes      int    `toml:"session_ttl_minutes"`
	// redis, used for rate limiting of form submissions
	RedisHost             string   `toml:"redis_host"`
	RedisPort             string   `toml:"redis_port"`
	SubmitRateLimitPerMin int      `toml:"submit_rate_limit_per_min"`
	AllowedOrigins        []string `toml:"allowed_origins"`
	// reverse proxies (IPs or CIDRs) whose X-Real-Ip / X-Forwarded-For headers are honored
	TrustedProxies []string `toml:"trusted_proxies"`
}

func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", EnvProduction:
		return true
	default:
		return false
	}
}

type Toml struct {
	Development *Config
	Production  *Config
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Get returns the config of env, "dev" and "prod" are accepted as aliases.
// The environment name of the returned config is the canonical one, unless
// the file sets it explicitly.
func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	var name string
	switch strings.ToLower(env) {
	case "dev", EnvDevelopment:
		cfg, name = t.Development, EnvDevelopment
	case "prod", EnvProduction:
		cfg, name = t.Production, EnvProduction
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg != nil && cfg.Environment == "" {
		cfg.Environment = name
	}
	return cfg, nil
}

// Load reads the config of env from the TOML file at path, applies the
// environment overrides and fills in defaults for the zero values.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for TOML content already in memory.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s not found", env)
	}

	if baseURL := os.Getenv(EnvApiBaseURL); baseURL != "" {
		cfg.ApiBaseURL = baseURL
	}
	if layout := os.Getenv(EnvLayout); layout != "" {
		cfg.Layout = layout
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = 50
	}
	if c.LogMaxBackups <= 0 {
		c.LogMaxBackups = 10
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.ApiTimeoutSeconds <= 0 {
		c.ApiTimeoutSeconds = 15
	}
	if c.ExercisesCacheMinutes <= 0 {
		c.ExercisesCacheMinutes = 60
	}
	if c.ConnectivityCheckSeconds <= 0 {
		c.ConnectivityCheckSeconds = 30
	}
	if c.DefaultSessionDuration <= 0 {
		c.DefaultSessionDuration = 60
	}
	if c.Layout == "" {
		c.Layout = "rich"
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = 30
	}
	if c.RedisHost != "" && c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.SubmitRateLimitPerMin <= 0 {
		c.SubmitRateLimitPerMin = 30
	}
}
