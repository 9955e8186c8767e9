// Package contextengine owns execution contexts: anchoring them to process
// starts, attaching related events, expiring them on timeout, and driving
// the clean → classify → enqueue pipeline.
package contextengine

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/cleaner"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// RawWriter receives every attached event as immutable evidence.
type RawWriter interface {
	Write(ev wire.Raw)
}

// Enqueuer receives drained clean contexts for shipping.
type Enqueuer interface {
	Enqueue(cc wire.CleanContext) error
}

// execContext is one in-memory execution context rooted at a process start.
type execContext struct {
	id        string
	createdAt time.Time
	anchor    wire.Raw
	events    []wire.Raw
}

// Manager is the single owner of active contexts. All probe attaches and
// watcher drains serialize on one mutex; critical sections are short.
type Manager struct {
	mu       sync.Mutex
	contexts map[string]*execContext
	latest   string

	lifecycle *Lifecycle
	graph     *Graph
	raw       RawWriter
	queue     Enqueuer

	device wire.DeviceIdentity
	user   wire.UserContext
	clock  clockwork.Clock
	log    *zap.Logger
}

// NewManager constructs a Manager draining into queue, journaling every
// event through raw, and expiring contexts after timeout.
func NewManager(
	device wire.DeviceIdentity,
	user wire.UserContext,
	timeout time.Duration,
	raw RawWriter,
	queue Enqueuer,
	clock clockwork.Clock,
	log *zap.Logger,
) *Manager {
	return &Manager{
		contexts:  make(map[string]*execContext),
		lifecycle: NewLifecycle(timeout, clock),
		graph:     NewGraph(),
		raw:       raw,
		queue:     queue,
		device:    device,
		user:      user,
		clock:     clock,
		log:       log,
	}
}

func newContextID() string {
	var b [4]byte
	rand.Read(b[:])
	return "CTX-" + hex.EncodeToString(b[:])
}

// CreateContext opens a fresh context anchored at the given process_start
// event and returns the new context id. The anchor is attached as the
// context's first event and journaled once here; callers must not re-attach
// it.
func (m *Manager) CreateContext(anchor wire.Raw) string {
	id := newContextID()
	now := m.clock.Now()

	anchor.Timestamp = wire.Epoch(now)
	anchor.ContextID = id

	m.mu.Lock()
	m.contexts[id] = &execContext{
		id:        id,
		createdAt: now,
		anchor:    anchor,
		events:    []wire.Raw{anchor},
	}
	m.latest = id
	m.mu.Unlock()

	m.lifecycle.Open(id)
	m.raw.Write(anchor)
	m.graph.LinkEvent(id, anchor)
	return id
}

// AddEvent stamps the event and attaches it to the context. Events for
// contexts that have already expired are dropped silently; the referenced
// context may have been drained between lookup and attach.
func (m *Manager) AddEvent(contextID string, ev wire.Raw) {
	m.mu.Lock()
	c, ok := m.contexts[contextID]
	if !ok {
		m.mu.Unlock()
		return
	}

	ev.Timestamp = wire.Epoch(m.clock.Now())
	ev.ContextID = contextID
	c.events = append(c.events, ev)
	m.mu.Unlock()

	m.raw.Write(ev)
	m.graph.LinkEvent(contextID, ev)
}

// AttachToLatest attaches an event that carries no process identity to the
// most recently created active context, dropping it when none exists.
func (m *Manager) AttachToLatest(ev wire.Raw) {
	m.mu.Lock()
	latest := m.latest
	m.mu.Unlock()
	if latest == "" {
		return
	}
	m.AddEvent(latest, ev)
}

// CloseContext marks the context closed; the watcher drains it on its next
// pass. Idempotent.
func (m *Manager) CloseContext(contextID string) {
	m.lifecycle.Close(contextID)
}

// CloseAll closes every active context, forcing a full drain. Used at
// shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.contexts))
	for id := range m.contexts {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.lifecycle.Close(id)
	}
}

// ActiveCount returns the number of contexts not yet drained.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.contexts)
}

// RunWatcher drives the expiry watcher until ctx is cancelled.
func (m *Manager) RunWatcher(ctx context.Context, tick time.Duration) {
	ticker := m.clock.NewTicker(tick)
	defer ticker.Stop()

	m.log.Info("context watcher started", zap.Duration("tick", tick))
	for {
		select {
		case <-ctx.Done():
			m.log.Info("context watcher stopping")
			return
		case <-ticker.Chan():
			m.DrainExpired()
		}
	}
}

// DrainExpired removes every expired context from the active table and runs
// it through the clean pipeline into the buffer.
func (m *Manager) DrainExpired() {
	m.mu.Lock()
	var expired []*execContext
	for id, c := range m.contexts {
		if m.lifecycle.IsExpired(id) {
			expired = append(expired, c)
			delete(m.contexts, id)
			if m.latest == id {
				m.latest = ""
			}
		}
	}
	m.mu.Unlock()

	now := m.clock.Now()
	for _, c := range expired {
		events := cleaner.Clean(c.events, c.id, now)

		clean := wire.CleanContext{
			ContextID:   c.id,
			PayloadType: Classify(events),
			Device:      m.device,
			User:        m.user,
			CreatedAt:   wire.Epoch(c.createdAt),
			Events:      events,
		}

		if err := m.queue.Enqueue(clean); err != nil {
			m.log.Error("failed to enqueue clean context",
				zap.String("context_id", c.id),
				zap.Error(err),
			)
		} else {
			m.log.Debug("context drained",
				zap.String("context_id", c.id),
				zap.String("payload_type", clean.PayloadType),
				zap.Int("events", len(events)),
			)
		}

		m.lifecycle.Forget(c.id)
		m.graph.Forget(c.id)
	}
}
