package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurstThenDeny(t *testing.T) {
	l := newIPRateLimiter(1, 2, time.Minute)

	assert.True(t, l.allow("1.2.3.4"))
	assert.True(t, l.allow("1.2.3.4"))
	assert.False(t, l.allow("1.2.3.4"))
}

func TestRateLimiterPerKeyIsolation(t *testing.T) {
	l := newIPRateLimiter(1, 1, time.Minute)

	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	assert.True(t, l.allow("b"))
}

func TestRateLimiterEmptyKey(t *testing.T) {
	l := newIPRateLimiter(1, 1, time.Minute)

	assert.True(t, l.allow(""))
	assert.False(t, l.allow(""))
}

func TestRateLimiterGC(t *testing.T) {
	l := newIPRateLimiter(1, 1, 10*time.Millisecond)

	assert.True(t, l.allow("old"))

	base := time.Now()
	l.now = func() time.Time { return base.Add(time.Second) }

	// Touching another key runs the sweep; the idle entry is dropped.
	l.allow("fresh")

	l.mu.Lock()
	_, ok := l.visitors["old"]
	l.mu.Unlock()
	assert.False(t, ok)
}

func TestRateLimiterDefaults(t *testing.T) {
	l := newIPRateLimiter(0, 0, 0)

	assert.True(t, l.allow("x"))
	assert.Equal(t, 1, l.burst)
	assert.Equal(t, 5*time.Minute, l.ttl)
}
