package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

const (
	OpSearch  = "search"
	OpBooking = "booking"
	OpPayment = "payment"
	OpAuth    = "auth"
)

// OperationLimiter throttles outgoing calls to the booking API per
// operation. A limiter is created lazily the first time an operation is seen.
type OperationLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewOperationLimiter(config RateLimitConfig) *OperationLimiter {
	return &OperationLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewOperationLimiterWithDefaults() *OperationLimiter {
	return NewOperationLimiter(DefaultConfig())
}

func (p *OperationLimiter) GetLimiter(op string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[op]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[op]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)
	p.limiters[op] = limiter
	return limiter
}

func (p *OperationLimiter) SetLimit(op string, rps float64, burst int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.limiters[op] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until op may proceed. A nil limiter never blocks.
func (p *OperationLimiter) Wait(ctx context.Context, op string) error {
	if p == nil {
		return nil
	}
	return p.GetLimiter(op).Wait(ctx)
}
