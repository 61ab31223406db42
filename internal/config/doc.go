// Package config loads runtime configuration for the smarttourism CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with ST_ (see the env tags on Config).
//  4. Command-line flags.
//
// Supported flags
//
//	-d string        database DSN (file path for sqlite)
//	-driver string   database driver: sqlite or pgx
//	-delay duration  splash screen delay
//	-hasher string   password hasher: argon2id, bcrypt or plain
//	-redis string    redis address for the OTP attempt limiter
//	-quotes string   quotes endpoint URL
//	-log string      log format: text, json or zap
//	-log-level string
//
// # JSON schema
//
// Durations use timex.Duration, so "2s" and 2000000000 are both accepted:
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "smart_tourism.db",
//	  "splash_delay": "2s",
//	  "otp_prefill": true,
//	  "log_format": "json"
//	}
package config
