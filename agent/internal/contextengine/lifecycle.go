package contextengine

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Status of a tracked context.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

type lifecycleEntry struct {
	openedAt time.Time
	closedAt time.Time
	status   string
}

// Lifecycle tracks open/closed state and expiry deadlines for contexts.
// A context expires when its timeout elapses or when it is explicitly
// closed, so a shutdown close forces the next watcher pass to drain it.
type Lifecycle struct {
	mu      sync.Mutex
	entries map[string]*lifecycleEntry
	timeout time.Duration
	clock   clockwork.Clock
}

func NewLifecycle(timeout time.Duration, clock clockwork.Clock) *Lifecycle {
	return &Lifecycle{
		entries: make(map[string]*lifecycleEntry),
		timeout: timeout,
		clock:   clock,
	}
}

// Open starts tracking a context with opened_at = now.
func (l *Lifecycle) Open(contextID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[contextID] = &lifecycleEntry{
		openedAt: l.clock.Now(),
		status:   StatusActive,
	}
}

// Close marks the context closed. Idempotent.
func (l *Lifecycle) Close(contextID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[contextID]
	if !ok || e.status == StatusClosed {
		return
	}
	e.status = StatusClosed
	e.closedAt = l.clock.Now()
}

// IsExpired reports whether the context should be drained. Unknown contexts
// count as expired.
func (l *Lifecycle) IsExpired(contextID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[contextID]
	if !ok {
		return true
	}
	if e.status == StatusClosed {
		return true
	}
	return l.clock.Now().Sub(e.openedAt) >= l.timeout
}

// Status returns the lifecycle status of a context.
func (l *Lifecycle) Status(contextID string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[contextID]
	if !ok {
		return "", false
	}
	return e.status, true
}

// Forget drops the entry after the context has been drained.
func (l *Lifecycle) Forget(contextID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, contextID)
}
