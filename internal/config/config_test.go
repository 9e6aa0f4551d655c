package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viraladmedia/amzpulse/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
database:
  host: localhost
  name: amzpulse
  user: amzpulse
auth:
  jwt_secret: test-secret
`

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.PoolSize)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled)

	assert.Equal(t, "mock", cfg.Source.Mode)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 2.0, cfg.Source.RateLimit.PerSecond)
	assert.Equal(t, int64(2000), cfg.Source.RateLimit.DailyLimit)

	assert.Equal(t, "gemini", cfg.LLM.Backend)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 25, cfg.Plans.FreeDailyLimit)

	assert.Equal(t, 6*time.Hour, cfg.Schedule.RefreshInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
database:
  host: db.internal
  port: 5433
  name: amzpulse
  user: svc
  password: hunter2
  sslmode: require
redis:
  enabled: true
  host: cache.internal
  ttl: 15m
source:
  mode: api
  base_url: https://catalog.example.com
  api_key: src-key
llm:
  backend: anthropic
  anthropic:
    model: claude-3-5-haiku-20241022
auth:
  jwt_secret: super-secret
  token_ttl: 72h
plans:
  free_daily_limit: 10
logging:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t,
		"host=db.internal port=5433 dbname=amzpulse user=svc password=hunter2 sslmode=require",
		cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "api", cfg.Source.Mode)
	assert.Equal(t, "anthropic", cfg.LLM.Backend)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Plans.FreeDailyLimit)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("AMZPULSE_DB_PASSWORD", "from-env")
	t.Setenv("AMZPULSE_JWT_SECRET", "env-secret")

	path := writeConfig(t, `
database:
  host: localhost
  name: amzpulse
  user: amzpulse
  password: ${AMZPULSE_DB_PASSWORD}
auth:
  jwt_secret: ${AMZPULSE_JWT_SECRET}
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name: "missing database host",
			content: `
database:
  name: amzpulse
  user: amzpulse
auth:
  jwt_secret: s
`,
			wantMsg: "database.host is required",
		},
		{
			name: "missing jwt secret",
			content: `
database:
  host: localhost
  name: amzpulse
  user: amzpulse
`,
			wantMsg: "auth.jwt_secret is required",
		},
		{
			name: "api mode without base url",
			content: minimalConfig + `
source:
  mode: api
`,
			wantMsg: "source.base_url is required",
		},
		{
			name: "unknown source mode",
			content: minimalConfig + `
source:
  mode: carrier-pigeon
`,
			wantMsg: "source.mode must be one of",
		},
		{
			name: "anthropic backend without model",
			content: minimalConfig + `
llm:
  backend: anthropic
`,
			wantMsg: "llm.anthropic.model is required",
		},
		{
			name: "unknown llm backend",
			content: minimalConfig + `
llm:
  backend: psychic
`,
			wantMsg: "llm.backend must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := config.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config YAML")
}
