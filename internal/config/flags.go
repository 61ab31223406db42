package config

import (
	"flag"
	"io"

	"github.com/ariawaludin/smarttourism/internal/flagx"
)

var knownFlags = []string{"-d", "-driver", "-delay", "-hasher", "-redis", "-quotes", "-log", "-log-level"}

// parseFlags overlays cfg with the flags it knows about. Other arguments are
// filtered out first, so -c and friends do not upset the flag set.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("smarttourism", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (sqlite or pgx)")
	fs.DurationVar(&cfg.SplashDelay, "delay", cfg.SplashDelay, "splash screen delay")
	fs.StringVar(&cfg.PasswordHasher, "hasher", cfg.PasswordHasher, "password hasher")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address for OTP attempt limiting")
	fs.StringVar(&cfg.QuotesURL, "quotes", cfg.QuotesURL, "quotes endpoint")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format (text, json, zap)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}
}
