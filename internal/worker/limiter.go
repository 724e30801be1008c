package worker

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// defaultSource groups cases that name no source.
const defaultSource = "default"

// Limiter throttles case processing per originating source. A zero rate
// disables limiting.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(casesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(casesPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the source may process another case
func (l *Limiter) Wait(ctx context.Context, source string) error {
	limiter, ok := l.getLimiter(sourceKey(source))
	if !ok {
		return ctx.Err()
	}
	return limiter.Wait(ctx)
}

// Allow checks if a case is allowed without waiting
func (l *Limiter) Allow(source string) bool {
	limiter, ok := l.getLimiter(sourceKey(source))
	if !ok {
		return true
	}
	return limiter.Allow()
}

// getLimiter returns the source's limiter, or false when the source is
// unthrottled.
func (l *Limiter) getLimiter(source string) (*rate.Limiter, bool) {
	l.mu.RLock()
	limiter, exists := l.limiters[source]
	l.mu.RUnlock()

	if exists {
		return limiter, true
	}
	if l.defaultRate <= 0 {
		return nil, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[source]; exists {
		return limiter, true
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[source] = limiter

	return limiter, true
}

// SetSourceRate sets a custom rate limit for one source
func (l *Limiter) SetSourceRate(source string, casesPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[sourceKey(source)] = rate.NewLimiter(rate.Limit(casesPerSecond), burst)
}

func sourceKey(source string) string {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return defaultSource
	}
	return source
}
