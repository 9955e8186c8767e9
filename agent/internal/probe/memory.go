package probe

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// highMemoryThresholdMB flags processes whose resident set crosses this size.
const highMemoryThresholdMB = 500.0

// MemoryProbe reports processes with an oversized resident set, attributed
// to their context via the PID linker.
type MemoryProbe struct {
	mgr      *contextengine.Manager
	linker   *contextengine.Linker
	interval time.Duration
	clock    clockwork.Clock
	log      *zap.Logger
}

func NewMemoryProbe(
	mgr *contextengine.Manager,
	linker *contextengine.Linker,
	interval time.Duration,
	clock clockwork.Clock,
	log *zap.Logger,
) *MemoryProbe {
	return &MemoryProbe{mgr: mgr, linker: linker, interval: interval, clock: clock, log: log}
}

func (p *MemoryProbe) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("memory probe started", zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *MemoryProbe) poll(ctx context.Context) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		p.log.Warn("memory probe: process enumeration failed", zap.Error(err))
		return
	}

	for _, proc := range procs {
		mem, err := proc.MemoryInfoWithContext(ctx)
		if err != nil || mem == nil {
			continue
		}

		memMB := float64(mem.RSS) / (1024 * 1024)
		if memMB <= highMemoryThresholdMB {
			continue
		}

		contextID, ok := p.linker.Lookup(proc.Pid)
		if !ok {
			continue
		}

		name, _ := proc.NameWithContext(ctx)
		p.mgr.AddEvent(contextID, wire.NewRaw(wire.HighMemoryUsage{
			PID:         proc.Pid,
			ProcessName: name,
			MemoryMB:    memMB,
		}))
	}
}
