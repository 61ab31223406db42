package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		mutate      func(c *Config)
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-d", "other.db", "-driver", "pgx", "-delay", "500ms", "-hasher", "bcrypt",
				"-redis", "redis:6379", "-quotes", "http://localhost/q", "-log", "zap", "-log-level", "debug"},
			mutate: func(c *Config) {
				c.DatabaseDSN = "other.db"
				c.DatabaseDriver = "pgx"
				c.SplashDelay = 500 * time.Millisecond
				c.PasswordHasher = "bcrypt"
				c.RedisAddr = "redis:6379"
				c.QuotesURL = "http://localhost/q"
				c.LogFormat = "zap"
				c.LogLevel = "debug"
			},
		},
		{
			name:   "unknown flags ignored",
			args:   []string{"-c", "cfg.json", "-x", "1", "-delay=0s"},
			mutate: func(c *Config) { c.SplashDelay = 0 },
		},
		{
			name:        "bad duration",
			args:        []string{"-delay", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ST_DATABASE_DSN", "env.db")
	t.Setenv("ST_OTP_PREFILL", "false")
	t.Setenv("ST_OTP_MAX_ATTEMPTS", "3")
	t.Setenv("ST_SESSION_TTL", "1h")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "env.db", cfg.DatabaseDSN)
	assert.False(t, cfg.OTPPrefill)
	assert.Equal(t, 3, cfg.OTPMaxAttempts)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver, "unset variables keep defaults")

	t.Setenv("ST_OTP_MAX_ATTEMPTS", "many")
	require.Panics(t, func() { parseEnv(defaults()) })
}

func TestParseEnv_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ST_QUOTES_URL=http://dotenv.local/quotes\nST_LOG_LEVEL=debug\n"), 0o600))

	orig := dotEnvFile
	dotEnvFile = path
	t.Cleanup(func() { dotEnvFile = orig })

	// t.Setenv restores both variables once the test ends.
	t.Setenv("ST_QUOTES_URL", "")
	require.NoError(t, os.Unsetenv("ST_QUOTES_URL"))
	t.Setenv("ST_LOG_LEVEL", "warn")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "http://dotenv.local/quotes", cfg.QuotesURL)
	assert.Equal(t, "warn", cfg.LogLevel, "process environment wins over .env")
}

func TestLoadDotEnv_Missing(t *testing.T) {
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
