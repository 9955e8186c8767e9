package trust

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RecoveryMode selects which regeneration rate applies to a benign payload.
type RecoveryMode int

const (
	// RecoveryNormal applies when no risk deadline is active.
	RecoveryNormal RecoveryMode = iota
	// RecoveryFast applies while the device is inside a recon context:
	// regeneration is quick because recon alone is weak evidence.
	RecoveryFast
	// RecoverySlow applies while the device is considered compromised.
	RecoverySlow
)

// deviceRisk carries the three monotone deadlines of the attack-chain
// correlation state.
type deviceRisk struct {
	reconUntil       time.Time
	reconOnlyUntil   time.Time
	compromisedUntil time.Time
	lastSeen         time.Time
}

// RiskTracker holds per-device correlation state: recent recon, recon
// without a follow-up attack, and compromise windows. In-memory, guarded by
// a mutex, owned by the ingest service.
type RiskTracker struct {
	mu      sync.Mutex
	devices map[string]*deviceRisk
	cfg     Config
	clock   clockwork.Clock
}

func NewRiskTracker(cfg Config, clock clockwork.Clock) *RiskTracker {
	return &RiskTracker{
		devices: make(map[string]*deviceRisk),
		cfg:     cfg,
		clock:   clock,
	}
}

// Observe applies the correlation transitions for one payload and returns
// whether chain escalation fired plus the recovery mode now in effect.
//
// Chain escalation is evaluated against the recon_only deadline as it stood
// before this payload: an attack inside a window opened by earlier
// recon-only activity is worse than either alone.
func (t *RiskTracker) Observe(deviceID string, sawRecon, sawAttack bool, observed Severity) (chain bool, mode RecoveryMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	d, ok := t.devices[deviceID]
	if !ok {
		d = &deviceRisk{}
		t.devices[deviceID] = d
	}
	d.lastSeen = now

	if sawAttack && !d.reconOnlyUntil.IsZero() && !now.After(d.reconOnlyUntil) {
		chain = true
		extend(&d.compromisedUntil, now.Add(t.cfg.CompromisedRecovery))
	}

	if sawRecon {
		extend(&d.reconUntil, now.Add(t.cfg.ReconContext))
		if !sawAttack {
			extend(&d.reconOnlyUntil, now.Add(t.cfg.ReconContext))
		} else {
			d.reconOnlyUntil = time.Time{}
		}
	}

	if observed >= SeverityHigh {
		extend(&d.compromisedUntil, now.Add(t.cfg.CompromisedRecovery))
	}

	switch {
	case !now.After(d.compromisedUntil):
		mode = RecoverySlow
	case !now.After(d.reconUntil):
		mode = RecoveryFast
	default:
		mode = RecoveryNormal
	}

	t.gc(now)
	return chain, mode
}

func extend(deadline *time.Time, candidate time.Time) {
	if candidate.After(*deadline) {
		*deadline = candidate
	}
}

// gc drops devices stale for 4x the longest deadline. Caller holds the lock.
func (t *RiskTracker) gc(now time.Time) {
	longest := t.cfg.ReconContext
	if t.cfg.CompromisedRecovery > longest {
		longest = t.cfg.CompromisedRecovery
	}
	horizon := 4 * longest
	for id, d := range t.devices {
		if now.Sub(d.lastSeen) > horizon {
			delete(t.devices, id)
		}
	}
}

// Len returns the number of tracked devices.
func (t *RiskTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.devices)
}
