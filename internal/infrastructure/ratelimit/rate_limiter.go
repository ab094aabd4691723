package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a refillable token bucket guarding one (user, action) pair.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	lastUsed   time.Time
	mutex      sync.Mutex
}

// RateLimiter manages token buckets keyed by user and action.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.RWMutex
}

type actionConfig struct {
	maxTokens  int
	refillRate int
	refillTime time.Duration
}

// Per-action limits. Paced for human-driven messaging.
var actionConfigs = map[string]actionConfig{
	"send_message": {maxTokens: 15, refillRate: 5, refillTime: 10 * time.Second},
	"start_chat":   {maxTokens: 5, refillRate: 1, refillTime: 30 * time.Second},
}

var defaultConfig = actionConfig{maxTokens: 30, refillRate: 10, refillTime: 10 * time.Second}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
	}
}

func newTokenBucket(cfg actionConfig) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		tokens:     cfg.maxTokens,
		maxTokens:  cfg.maxTokens,
		refillRate: cfg.refillRate,
		refillTime: cfg.refillTime,
		lastRefill: now,
		lastUsed:   now,
	}
}

func (tb *TokenBucket) allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	tb.lastUsed = now

	elapsed := now.Sub(tb.lastRefill)
	if elapsed >= tb.refillTime {
		refills := int(elapsed / tb.refillTime)
		tb.tokens += refills * tb.refillRate
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.refillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	wait := tb.refillTime - now.Sub(tb.lastRefill)
	if wait < 0 {
		wait = 0
	}
	return false, wait
}

// Allow checks whether userID may perform action, consuming a token if so.
// The returned duration is how long to wait when denied.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action

	rl.mutex.RLock()
	bucket, ok := rl.buckets[key]
	rl.mutex.RUnlock()

	if !ok {
		cfg, found := actionConfigs[action]
		if !found {
			cfg = defaultConfig
		}

		rl.mutex.Lock()
		if bucket, ok = rl.buckets[key]; !ok {
			bucket = newTokenBucket(cfg)
			rl.buckets[key] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.allow()
}

// StartCleanupRoutine drops buckets idle for over an hour.
func (rl *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour)

			rl.mutex.Lock()
			for key, bucket := range rl.buckets {
				bucket.mutex.Lock()
				idle := bucket.lastUsed.Before(cutoff)
				bucket.mutex.Unlock()
				if idle {
					delete(rl.buckets, key)
				}
			}
			rl.mutex.Unlock()
		}
	}()
}
