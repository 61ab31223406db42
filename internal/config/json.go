package config

import (
	"encoding/json"
	"os"

	"github.com/ariawaludin/smarttourism/internal/flagx"
	"github.com/ariawaludin/smarttourism/internal/timex"
)

// JsonConfig is the on-disk shape of the config file.
type JsonConfig struct {
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	SplashDelay      timex.Duration `json:"splash_delay"`
	OTPPrefill       bool           `json:"otp_prefill"`
	OTPMaxAttempts   int            `json:"otp_max_attempts"`
	OTPAttemptWindow timex.Duration `json:"otp_attempt_window"`
	PasswordHasher   string         `json:"password_hasher"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	SessionSecret    string         `json:"session_secret"`
	RedisAddr        string         `json:"redis_addr"`
	RedisPassword    string         `json:"redis_password"`
	RedisDB          int            `json:"redis_db"`
	QuotesURL        string         `json:"quotes_url"`
	HTTPTimeout      timex.Duration `json:"http_timeout"`
	PhotosDir        string         `json:"photos_dir"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	LogFormat        string         `json:"log_format"`
	LogLevel         string         `json:"log_level"`
}

func toJson(c *Config) JsonConfig {
	return JsonConfig{
		DatabaseDriver:   c.DatabaseDriver,
		DatabaseDSN:      c.DatabaseDSN,
		SplashDelay:      timex.Duration{Duration: c.SplashDelay},
		OTPPrefill:       c.OTPPrefill,
		OTPMaxAttempts:   c.OTPMaxAttempts,
		OTPAttemptWindow: timex.Duration{Duration: c.OTPAttemptWindow},
		PasswordHasher:   c.PasswordHasher,
		SessionTTL:       timex.Duration{Duration: c.SessionTTL},
		SessionSecret:    c.SessionSecret,
		RedisAddr:        c.RedisAddr,
		RedisPassword:    c.RedisPassword,
		RedisDB:          c.RedisDB,
		QuotesURL:        c.QuotesURL,
		HTTPTimeout:      timex.Duration{Duration: c.HTTPTimeout},
		PhotosDir:        c.PhotosDir,
		S3Bucket:         c.S3Bucket,
		S3Region:         c.S3Region,
		S3BaseEndpoint:   c.S3BaseEndpoint,
		S3AccessKey:      c.S3AccessKey,
		S3SecretKey:      c.S3SecretKey,
		LogFormat:        c.LogFormat,
		LogLevel:         c.LogLevel,
	}
}

func (jc JsonConfig) apply(c *Config) {
	c.DatabaseDriver = jc.DatabaseDriver
	c.DatabaseDSN = jc.DatabaseDSN
	c.SplashDelay = jc.SplashDelay.Duration
	c.OTPPrefill = jc.OTPPrefill
	c.OTPMaxAttempts = jc.OTPMaxAttempts
	c.OTPAttemptWindow = jc.OTPAttemptWindow.Duration
	c.PasswordHasher = jc.PasswordHasher
	c.SessionTTL = jc.SessionTTL.Duration
	c.SessionSecret = jc.SessionSecret
	c.RedisAddr = jc.RedisAddr
	c.RedisPassword = jc.RedisPassword
	c.RedisDB = jc.RedisDB
	c.QuotesURL = jc.QuotesURL
	c.HTTPTimeout = jc.HTTPTimeout.Duration
	c.PhotosDir = jc.PhotosDir
	c.S3Bucket = jc.S3Bucket
	c.S3Region = jc.S3Region
	c.S3BaseEndpoint = jc.S3BaseEndpoint
	c.S3AccessKey = jc.S3AccessKey
	c.S3SecretKey = jc.S3SecretKey
	c.LogFormat = jc.LogFormat
	c.LogLevel = jc.LogLevel
}

// parseJson overlays cfg with the file named by -c / -config in args.
// Keys missing from the file keep their current values.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := toJson(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}
