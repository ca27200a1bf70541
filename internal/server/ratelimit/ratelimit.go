// Package ratelimit provides per-client token bucket rate limiting for the API.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket: capacity tokens at most, refilled at rate tokens
// per second.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	updated  time.Time // last refill
	lastSeen time.Time // last request, for idle cleanup
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		updated:  now,
		lastSeen: now,
	}
}

// refill credits the tokens earned since the last update. Caller holds mu.
func (b *bucket) refill(now time.Time) {
	if now.After(b.updated) {
		b.tokens = min(b.capacity, b.tokens+now.Sub(b.updated).Seconds()*b.rate)
		b.updated = now
	}
}

// take spends one token if there is one. It reports the remaining tokens,
// when the bucket will be full again, and on refusal how long until the next
// token.
func (b *bucket) take(now time.Time) (ok bool, remaining int, fullAt time.Time, wait time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	b.lastSeen = now
	if b.tokens >= 1 {
		b.tokens--
		ok = true
	} else if b.rate > 0 {
		wait = time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
	}
	return ok, int(b.tokens), b.fullAt(now), wait
}

// status reports the bucket without spending a token.
func (b *bucket) status(now time.Time) (remaining int, fullAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	return int(b.tokens), b.fullAt(now)
}

// fullAt is when the bucket will be full again. Caller holds mu.
func (b *bucket) fullAt(now time.Time) time.Time {
	if b.tokens >= b.capacity || b.rate <= 0 {
		return now
	}
	return now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter keeps one bucket per client and budget.
type Limiter struct {
	config *Config

	mu      sync.RWMutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config enables a 600 requests per
// minute default for every route.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow spends a token for one request from clientID. Requests matching an
// endpoint budget share one bucket per pattern, so /resume/a/pdf and
// /resume/b/pdf draw from the same budget. Everything else shares the
// client's default bucket.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	key, rule := l.ruleFor(clientID, path, method)
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	ok, remaining, fullAt, wait := l.bucketFor(key, rule, now).take(now)
	return ok, Info{
		Allowed:    ok,
		Limit:      rule.Limit,
		Remaining:  remaining,
		ResetTime:  fullAt,
		RetryAfter: wait,
	}
}

// ruleFor picks the budget for a request and the key of its bucket.
func (l *Limiter) ruleFor(clientID, path, method string) (string, EndpointConfig) {
	if rule := MatchEndpoint(path, method, l.config.EndpointConfigs); rule != nil {
		return clientID + " " + rule.Method + " " + rule.Path, *rule
	}
	return clientID + " default", EndpointConfig{
		Limit:  l.config.DefaultLimit,
		Window: l.config.DefaultWindow,
	}
}

func (l *Limiter) bucketFor(key string, rule EndpointConfig, now time.Time) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[key]; ok {
		return b
	}
	b = newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets(time.Hour)
		case <-l.stop:
			return
		}
	}
}

// cleanupBuckets drops buckets with no request in the last maxIdle.
func (l *Limiter) cleanupBuckets(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
	})
}
