package contextengine_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
)

func TestLifecycle_TimeoutExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lc := contextengine.NewLifecycle(30*time.Second, clock)

	lc.Open("CTX-aa")
	assert.False(t, lc.IsExpired("CTX-aa"))

	clock.Advance(29 * time.Second)
	assert.False(t, lc.IsExpired("CTX-aa"))

	clock.Advance(time.Second)
	assert.True(t, lc.IsExpired("CTX-aa"), "expired once the full timeout has elapsed")
}

func TestLifecycle_CloseForcesExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lc := contextengine.NewLifecycle(30*time.Second, clock)

	lc.Open("CTX-aa")
	lc.Close("CTX-aa")
	assert.True(t, lc.IsExpired("CTX-aa"))

	status, ok := lc.Status("CTX-aa")
	require.True(t, ok)
	assert.Equal(t, contextengine.StatusClosed, status)

	// Idempotent.
	lc.Close("CTX-aa")
	assert.True(t, lc.IsExpired("CTX-aa"))
}

func TestLifecycle_UnknownContextIsExpired(t *testing.T) {
	lc := contextengine.NewLifecycle(30*time.Second, clockwork.NewFakeClock())
	assert.True(t, lc.IsExpired("CTX-missing"))

	_, ok := lc.Status("CTX-missing")
	assert.False(t, ok)
}

func TestLifecycle_Forget(t *testing.T) {
	lc := contextengine.NewLifecycle(30*time.Second, clockwork.NewFakeClock())
	lc.Open("CTX-aa")
	lc.Forget("CTX-aa")

	_, ok := lc.Status("CTX-aa")
	assert.False(t, ok)
}

func TestLinker(t *testing.T) {
	l := contextengine.NewLinker()

	_, ok := l.Lookup(42)
	assert.False(t, ok)

	l.Link(42, "CTX-aa")
	id, ok := l.Lookup(42)
	require.True(t, ok)
	assert.Equal(t, "CTX-aa", id)

	// PID reuse: last writer wins.
	l.Link(42, "CTX-bb")
	id, _ = l.Lookup(42)
	assert.Equal(t, "CTX-bb", id)
}
