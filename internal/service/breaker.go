package service

import (
	"fmt"
	"sync"
	"time"
)

// circuitBreaker opens after max consecutive failures and lets one call
// through again once cooldown has elapsed.
type circuitBreaker struct {
	mu                sync.Mutex
	max               int
	cooldown          time.Duration
	consecutiveErrors int
	openedAt          time.Time
	now               func() time.Time
}

func newCircuitBreaker(max int, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{max: max, cooldown: cooldown, now: time.Now}
}

func (b *circuitBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.consecutiveErrors < b.max {
		return nil
	}
	if b.now().Sub(b.openedAt) >= b.cooldown {
		return nil
	}
	return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", b.consecutiveErrors)
}

func (b *circuitBreaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.consecutiveErrors = 0
		return
	}
	b.consecutiveErrors++
	if b.consecutiveErrors >= b.max {
		b.openedAt = b.now()
	}
}

func (b *circuitBreaker) status() (consecutiveErrors int, isOpen bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutiveErrors, b.consecutiveErrors >= b.max && b.now().Sub(b.openedAt) < b.cooldown
}
