package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("10.0.0.1", "login")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1", "login")
	assert.True(t, ok)

	ok, wait := rl.Allow("10.0.0.1", "login")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("10.0.0.2", "login")
	assert.True(t, ok, "other clients keep their own bucket")

	ok, _ = rl.Allow("10.0.0.1", "register")
	assert.True(t, ok, "actions are limited separately")

	now = now.Add(31 * time.Second)
	ok, _ = rl.Allow("10.0.0.1", "login")
	assert.True(t, ok)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(5)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1", "login")
	assert.Len(t, rl.buckets, 1)

	now = now.Add(2 * time.Hour)
	rl.Cleanup()
	assert.Empty(t, rl.buckets)
}
