package geocoder

import (
	"sync"
	"time"
)

// TokenBucket throttles outbound geocoding calls. The upstream service
// enforces a per-minute quota; exceeding it gets the whole deployment
// blocked, so the limiter errs on the strict side.
type TokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // tokens per second
	last     time.Time
}

// NewTokenBucket creates a bucket refilling at perMinute tokens a minute.
func NewTokenBucket(perMinute, burst int) *TokenBucket {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		tokens:   float64(burst),
		capacity: float64(burst),
		rate:     float64(perMinute) / 60.0,
		last:     time.Now(),
	}
}

// Allow takes one token if available.
func (b *TokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.last = now
	b.tokens += elapsed * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
