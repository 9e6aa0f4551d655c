// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Source   SourceConfig   `yaml:"source"`
	LLM      LLMConfig      `yaml:"llm"`
	Auth     AuthConfig     `yaml:"auth"`
	Plans    PlansConfig    `yaml:"plans"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Notify   NotifyConfig   `yaml:"notify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// RedisConfig defines the optional product cache settings.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// Addr returns the host:port address for the Redis client.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SourceConfig defines the upstream product data source.
type SourceConfig struct {
	Mode      string          `yaml:"mode"` // api, scrape, mock
	BaseURL   string          `yaml:"base_url"`
	APIKey    string          `yaml:"api_key"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines upstream call rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// LLMConfig defines LLM backend settings for assessments.
type LLMConfig struct {
	Backend     string          `yaml:"backend"` // gemini, anthropic
	Gemini      GeminiConfig    `yaml:"gemini"`
	Anthropic   AnthropicConfig `yaml:"anthropic"`
	Temperature float64         `yaml:"temperature"`
	MaxTokens   int             `yaml:"max_tokens"`
	Timeout     time.Duration   `yaml:"timeout"`
}

// GeminiConfig defines Gemini API settings.
type GeminiConfig struct {
	Model string `yaml:"model"`
}

// AnthropicConfig defines Anthropic API settings.
type AnthropicConfig struct {
	Model string `yaml:"model"`
}

// AuthConfig defines session token settings.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

// PlansConfig defines per-plan metering.
type PlansConfig struct {
	FreeDailyLimit int `yaml:"free_daily_limit"`
}

// ScheduleConfig defines cron intervals for background jobs.
type ScheduleConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	StaggerOffset   time.Duration `yaml:"stagger_offset"`
}

// NotifyConfig defines price-drop alert delivery settings.
type NotifyConfig struct {
	DiscordWebhookURL string  `yaml:"discord_webhook_url"`
	DropPercent       float64 `yaml:"drop_percent"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyRedisDefaults(&cfg.Redis)
	applySourceDefaults(&cfg.Source)
	applyLLMDefaults(&cfg.LLM)
	applyAuthDefaults(&cfg.Auth)
	applyPlansDefaults(&cfg.Plans)
	applyScheduleDefaults(&cfg.Schedule)
	applyNotifyDefaults(&cfg.Notify)
	applyLoggingDefaults(&cfg.Logging)
}

func applyNotifyDefaults(n *NotifyConfig) {
	if n.DropPercent == 0 {
		n.DropPercent = 10
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyRedisDefaults(r *RedisConfig) {
	if r.Host == "" {
		r.Host = "localhost"
	}
	if r.Port == 0 {
		r.Port = 6379
	}
	if r.TTL == 0 {
		r.TTL = time.Hour
	}
}

func applySourceDefaults(s *SourceConfig) {
	if s.Mode == "" {
		s.Mode = "mock"
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	applyRateLimitDefaults(&s.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 2000
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Backend == "" {
		l.Backend = "gemini"
	}
	if l.Gemini.Model == "" {
		l.Gemini.Model = "gemini-2.5-flash"
	}
	if l.MaxTokens == 0 {
		l.MaxTokens = 2048
	}
	if l.Timeout == 0 {
		l.Timeout = 30 * time.Second
	}
}

func applyAuthDefaults(a *AuthConfig) {
	if a.TokenTTL == 0 {
		a.TokenTTL = 24 * time.Hour
	}
	if a.BcryptCost == 0 {
		a.BcryptCost = 12
	}
}

func applyPlansDefaults(p *PlansConfig) {
	if p.FreeDailyLimit == 0 {
		p.FreeDailyLimit = 25
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshInterval == 0 {
		s.RefreshInterval = 6 * time.Hour
	}
	if s.StaggerOffset == 0 {
		s.StaggerOffset = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if cfg.Auth.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("auth.jwt_secret is required"))
	}

	switch cfg.Source.Mode {
	case "mock":
	case "api":
		if cfg.Source.BaseURL == "" {
			errs = append(errs, fmt.Errorf("source.base_url is required when mode is api"))
		}
	case "scrape":
	default:
		errs = append(errs, fmt.Errorf(
			"source.mode must be one of: api, scrape, mock (got %q)", cfg.Source.Mode))
	}

	switch cfg.LLM.Backend {
	case "gemini":
		// API key comes from env, model has a default.
	case "anthropic":
		if cfg.LLM.Anthropic.Model == "" {
			errs = append(errs, fmt.Errorf(
				"llm.anthropic.model is required when backend is anthropic"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"llm.backend must be one of: gemini, anthropic (got %q)", cfg.LLM.Backend))
	}

	return errors.Join(errs...)
}
