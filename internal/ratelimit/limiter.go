// Package ratelimit throttles clients by IP address with token buckets.
// The SSH server uses it per connection and the HTTP API per request.
package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Config configures the per-IP limiter.
type Config struct {
	PerSecond       float64       // Tokens refilled per second per IP
	Burst           int           // Maximum burst size
	CleanupInterval time.Duration // How often idle entries are dropped
}

// DefaultConfig suits interactive SSH play: a reconnect every few seconds.
var DefaultConfig = Config{
	PerSecond:       0.5,
	Burst:           5,
	CleanupInterval: 5 * time.Minute,
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	limiters sync.Map // map[string]*entry
	config   Config
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once

	allowed  atomic.Uint64
	rejected atomic.Uint64
}

// New creates a limiter and starts its cleanup goroutine. Call Stop when done.
func New(cfg Config) *IPRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig.CleanupInterval
	}
	rl := &IPRateLimiter{
		config: cfg,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *IPRateLimiter) get(ip string) *rate.Limiter {
	now := rl.now().UnixNano()
	if v, ok := rl.limiters.Load(ip); ok {
		e := v.(*entry)
		e.lastSeen.Store(now)
		return e.limiter
	}

	e := &entry{limiter: rate.NewLimiter(rate.Limit(rl.config.PerSecond), rl.config.Burst)}
	e.lastSeen.Store(now)
	actual, _ := rl.limiters.LoadOrStore(ip, e)
	return actual.(*entry).limiter
}

// Allow reports whether the client at ip may proceed now.
func (rl *IPRateLimiter) Allow(ip string) bool {
	if rl.get(ip).AllowN(rl.now(), 1) {
		rl.allowed.Add(1)
		return true
	}
	rl.rejected.Add(1)
	return false
}

// Stats returns how many calls were allowed and rejected.
func (rl *IPRateLimiter) Stats() (allowed, rejected uint64) {
	return rl.allowed.Load(), rl.rejected.Load()
}

// Summary returns the counters as logger key/value pairs.
func (rl *IPRateLimiter) Summary() []any {
	allowed, rejected := rl.Stats()
	return []any{"allowed", allowed, "rejected", rejected, "clients", rl.Len()}
}

// Len returns the number of tracked IPs.
func (rl *IPRateLimiter) Len() int {
	n := 0
	rl.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup drops entries idle for more than two cleanup intervals.
func (rl *IPRateLimiter) cleanup() {
	cutoff := rl.now().Add(-2 * rl.config.CleanupInterval).UnixNano()
	rl.limiters.Range(func(key, value any) bool {
		if value.(*entry).lastSeen.Load() < cutoff {
			rl.limiters.Delete(key)
		}
		return true
	})
}
