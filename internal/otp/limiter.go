package otp

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/redis/go-redis/v9"
)

// AttemptLimiter caps how often a key may try a code. Implementations fail
// open: an unavailable backend allows the attempt.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) bool
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

type memoryLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	hits      map[string][]time.Time
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryLimiter allows max attempts per key within a sliding window.
func NewMemoryLimiter(window time.Duration, max int) AttemptLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memoryLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) bool {
	key = normalizeKey(key)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

// sweep drops keys whose every attempt is older than cutoff.
func (l *memoryLimiter) sweep(cutoff time.Time) {
	for k, ts := range l.hits {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(l.hits, k)
		}
	}
}

const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisLimiter struct {
	client  redisEvaler
	window  time.Duration
	max     int
	prefix  string
	timeout time.Duration
	logger  logging.Logger
}

// NewRedisLimiter shares the attempt counter between processes through
// redis. A fixed window starts with the first attempt of a key.
func NewRedisLimiter(client *redis.Client, window time.Duration, max int, logger logging.Logger) AttemptLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &redisLimiter{
		client:  client,
		window:  window,
		max:     max,
		prefix:  "st:otp:attempts:",
		timeout: 500 * time.Millisecond,
		logger:  logger.With("module", "otp_limiter"),
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisAllowScript, []string{l.prefix + normalizeKey(key)}, seconds).Int()
	if err != nil {
		l.logger.Warn(ctx, "attempt limiter unavailable, allowing", "error", err)
		return true
	}
	return count <= l.max
}
