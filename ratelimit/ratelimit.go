package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/mezonai/orion/exception"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	MaxRequests     int           // Maximum number of requests allowed
	WindowSize      time.Duration // Time window for rate limiting
	CleanupInterval time.Duration // How often to clean up expired entries
}

// DefaultAirdropConfig allows one faucet request per wallet every five minutes.
func DefaultAirdropConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		MaxRequests:     1,
		WindowSize:      5 * time.Minute,
		CleanupInterval: 10 * time.Minute,
	}
}

// RateLimiter implements sliding window rate limiting
type RateLimiter struct {
	config      *RateLimiterConfig
	requests    map[string][]time.Time // key -> request timestamps inside the window
	mu          sync.Mutex
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config *RateLimiterConfig) *RateLimiter {
	if config == nil {
		config = DefaultAirdropConfig()
	}
	if config.MaxRequests < 1 {
		clamped := *config
		clamped.MaxRequests = 1
		config = &clamped
	}

	rl := &RateLimiter{
		config:      config,
		requests:    make(map[string][]time.Time),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		exception.SafeGo("ratelimit-cleanup", rl.cleanupExpiredEntries)
	}
	return rl
}

// Allow records a request for key if it fits in the window.
func (rl *RateLimiter) Allow(key string) bool {
	ok, _ := rl.Reserve(key)
	return ok
}

// Reserve is Allow that also reports how long to wait when denied.
func (rl *RateLimiter) Reserve(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := rl.prune(key, now)
	if len(valid) >= rl.config.MaxRequests {
		return false, valid[0].Add(rl.config.WindowSize).Sub(now)
	}
	rl.requests[key] = append(valid, now)
	return true, 0
}

// Cancel forgets the newest request of key. Used when the guarded
// operation failed before doing anything.
func (rl *RateLimiter) Cancel(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if reqs := rl.requests[key]; len(reqs) > 0 {
		rl.requests[key] = reqs[:len(reqs)-1]
	}
}

// GetStats returns the request count within the window and the oldest one.
func (rl *RateLimiter) GetStats(key string) (int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.prune(key, rl.now())
	if len(valid) == 0 {
		return 0, time.Time{}
	}
	return len(valid), valid[0]
}

// prune drops timestamps older than the window. Caller holds mu.
func (rl *RateLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-rl.config.WindowSize)
	reqs := rl.requests[key]
	i := 0
	for i < len(reqs) && !reqs[i].After(cutoff) {
		i++
	}
	valid := reqs[i:]
	if len(valid) == 0 {
		delete(rl.requests, key)
		return nil
	}
	rl.requests[key] = valid
	return valid
}

func (rl *RateLimiter) cleanupExpiredEntries() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key := range rl.requests {
		rl.prune(key, now)
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

// RateLimitError represents a rate limit error
type RateLimitError struct {
	Key        string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for '%s': retry in %s", e.Key, e.RetryAfter.Round(time.Second))
}
