// Package probe contains the periodic host observers. Each probe runs its
// own poll loop, tolerates per-target failure by skipping the target, and
// hands events to the context engine: process starts create contexts, every
// other event is attached by PID lookup or to the latest context.
package probe

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// ProcessProbe watches for new PIDs and anchors a fresh context to each.
type ProcessProbe struct {
	mgr      *contextengine.Manager
	linker   *contextengine.Linker
	interval time.Duration
	clock    clockwork.Clock
	log      *zap.Logger

	known map[int32]struct{}
}

func NewProcessProbe(
	mgr *contextengine.Manager,
	linker *contextengine.Linker,
	interval time.Duration,
	clock clockwork.Clock,
	log *zap.Logger,
) *ProcessProbe {
	return &ProcessProbe{
		mgr:      mgr,
		linker:   linker,
		interval: interval,
		clock:    clock,
		log:      log,
		known:    make(map[int32]struct{}),
	}
}

// Run polls until ctx is cancelled. The first cycle establishes the PID
// baseline without emitting events.
func (p *ProcessProbe) Run(ctx context.Context) {
	if pids, err := process.PidsWithContext(ctx); err == nil {
		for _, pid := range pids {
			p.known[pid] = struct{}{}
		}
	}

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("process probe started", zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *ProcessProbe) poll(ctx context.Context) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		p.log.Warn("process probe: pid enumeration failed", zap.Error(err))
		return
	}

	current := make(map[int32]struct{}, len(pids))
	for _, pid := range pids {
		current[pid] = struct{}{}
		if _, seen := p.known[pid]; seen {
			continue
		}
		p.handleNew(ctx, pid)
	}
	p.known = current
}

// handleNew builds the anchor event for a freshly seen PID. Processes that
// vanish or deny access mid-inspection are skipped.
func (p *ProcessProbe) handleNew(ctx context.Context, pid int32) {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return
	}

	name, err := proc.NameWithContext(ctx)
	if err != nil {
		return
	}
	ppid, _ := proc.PpidWithContext(ctx)
	exe, _ := proc.ExeWithContext(ctx)
	cmdline, _ := proc.CmdlineSliceWithContext(ctx)
	username, _ := proc.UsernameWithContext(ctx)

	anchor := wire.NewRaw(wire.ProcessStart{
		PID:         pid,
		PPID:        ppid,
		ProcessName: name,
		Exe:         exe,
		Cmdline:     strings.Join(cmdline, " "),
		Username:    username,
	})

	contextID := p.mgr.CreateContext(anchor)
	p.linker.Link(pid, contextID)

	p.log.Debug("new process",
		zap.String("process", name),
		zap.Int32("pid", pid),
		zap.String("context_id", contextID),
	)
}
