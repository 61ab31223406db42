package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ariawaludin/smarttourism/internal/cryptox"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/logging"
)

// Config holds runtime settings for the smarttourism CLI.
type Config struct {
	DatabaseDriver string `env:"ST_DATABASE_DRIVER"`
	DatabaseDSN    string `env:"ST_DATABASE_DSN"`

	SplashDelay time.Duration `env:"ST_SPLASH_DELAY"`

	OTPPrefill       bool          `env:"ST_OTP_PREFILL"`
	OTPMaxAttempts   int           `env:"ST_OTP_MAX_ATTEMPTS"`
	OTPAttemptWindow time.Duration `env:"ST_OTP_ATTEMPT_WINDOW"`

	PasswordHasher string `env:"ST_PASSWORD_HASHER"`

	SessionTTL    time.Duration `env:"ST_SESSION_TTL"`
	SessionSecret string        `env:"ST_SESSION_SECRET"`

	RedisAddr     string `env:"ST_REDIS_ADDR"`
	RedisPassword string `env:"ST_REDIS_PASSWORD"`
	RedisDB       int    `env:"ST_REDIS_DB"`

	QuotesURL   string        `env:"ST_QUOTES_URL"`
	HTTPTimeout time.Duration `env:"ST_HTTP_TIMEOUT"`

	PhotosDir      string `env:"ST_PHOTOS_DIR"`
	S3Bucket       string `env:"ST_S3_BUCKET"`
	S3Region       string `env:"ST_S3_REGION"`
	S3BaseEndpoint string `env:"ST_S3_BASE_ENDPOINT"`
	S3AccessKey    string `env:"ST_S3_ACCESS_KEY"`
	S3SecretKey    string `env:"ST_S3_SECRET_KEY"`

	LogFormat string `env:"ST_LOG_FORMAT"`
	LogLevel  string `env:"ST_LOG_LEVEL"`
}

// LoadDefaults populates c with defaults matching the mobile app.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = string(dbx.DialectSQLite)
	c.DatabaseDSN = "smart_tourism.db"
	c.SplashDelay = 2 * time.Second
	c.OTPPrefill = true
	c.OTPMaxAttempts = 5
	c.OTPAttemptWindow = 5 * time.Minute
	c.PasswordHasher = cryptox.SchemeArgon2id
	c.SessionTTL = 30 * 24 * time.Hour
	c.QuotesURL = "https://test001-2425.vercel.app/api/quotes"
	c.HTTPTimeout = 10 * time.Second
	c.PhotosDir = "photos"
	c.S3Region = "us-east-1"
	c.LogFormat = logging.FormatText
	c.LogLevel = "info"
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error

	switch dbx.Dialect(c.DatabaseDriver) {
	case dbx.DialectSQLite, dbx.DialectPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is empty"))
	}
	if !cryptox.IsKnownScheme(c.PasswordHasher) {
		errs = append(errs, fmt.Errorf("unknown password hasher %q", c.PasswordHasher))
	}
	if c.SplashDelay < 0 {
		errs = append(errs, errors.New("splash delay must not be negative"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON, logging.FormatZap:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// S3Enabled reports whether photo uploads have somewhere to go.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and finally os.Args. It panics on unreadable or malformed input.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	args := os.Args[1:]
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
