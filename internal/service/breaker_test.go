package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newCircuitBreaker(2, time.Minute)
	b.now = func() time.Time { return now }
	boom := errors.New("boom")

	assert.NoError(t, b.allow())
	b.record(boom)
	assert.NoError(t, b.allow(), "below threshold")

	b.record(boom)
	assert.Error(t, b.allow(), "opens at threshold")
	n, open := b.status()
	assert.Equal(t, 2, n)
	assert.True(t, open)

	now = now.Add(time.Minute)
	assert.NoError(t, b.allow(), "half-open after cooldown")

	b.record(nil)
	n, open = b.status()
	assert.Zero(t, n)
	assert.False(t, open)
}
