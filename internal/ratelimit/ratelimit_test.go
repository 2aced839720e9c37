package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(max, window)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAdmitsExactlyBudget(t *testing.T) {
	l, _ := newTestLimiter(3, 10*time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := l.Admit("10.0.0.1")
		assert.True(t, ok, "attempt %d", i+1)
	}
	ok, retryAfter := l.Admit("10.0.0.1")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, 10*time.Minute)
}

func TestWindowElapseResetsBudget(t *testing.T) {
	l, now := newTestLimiter(2, 10*time.Minute)

	l.Admit("10.0.0.1")
	l.Admit("10.0.0.1")
	ok, _ := l.Admit("10.0.0.1")
	assert.False(t, ok)

	*now = now.Add(10 * time.Minute)
	ok, _ = l.Admit("10.0.0.1")
	assert.True(t, ok)
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 10*time.Minute)

	ok, _ := l.Admit("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Admit("10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.Admit("10.0.0.2")
	assert.True(t, ok)
}

func TestRetryAfterShrinksAsWindowAges(t *testing.T) {
	l, now := newTestLimiter(1, 10*time.Minute)

	l.Admit("10.0.0.1")
	_, first := l.Admit("10.0.0.1")

	*now = now.Add(4 * time.Minute)
	_, later := l.Admit("10.0.0.1")
	assert.Less(t, later, first)
}

func TestSweepDropsExpiredWindows(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	for i := 0; i < sweepThreshold; i++ {
		l.Admit(fmt.Sprintf("key-%d", i))
	}
	assert.GreaterOrEqual(t, len(l.entries), sweepThreshold)

	*now = now.Add(2 * time.Minute)
	l.Admit("fresh-key")
	assert.Less(t, len(l.entries), sweepThreshold)
}
