package probe

import (
	"context"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// PersistenceProbe watches autostart locations for new entries.
type PersistenceProbe struct {
	mgr          *contextengine.Manager
	startupPaths []string
	interval     time.Duration
	clock        clockwork.Clock
	log          *zap.Logger

	known map[string]struct{}
}

func NewPersistenceProbe(
	mgr *contextengine.Manager,
	startupPaths []string,
	interval time.Duration,
	clock clockwork.Clock,
	log *zap.Logger,
) *PersistenceProbe {
	return &PersistenceProbe{
		mgr:          mgr,
		startupPaths: startupPaths,
		interval:     interval,
		clock:        clock,
		log:          log,
		known:        make(map[string]struct{}),
	}
}

func (p *PersistenceProbe) Run(ctx context.Context) {
	// baseline pass so preexisting autostart entries are not reported
	p.poll(true)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("persistence probe started", zap.Strings("startup_paths", p.startupPaths))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(false)
		}
	}
}

func (p *PersistenceProbe) poll(baseline bool) {
	for _, dir := range p.startupPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			key := dir + "/" + entry.Name()
			if _, ok := p.known[key]; ok {
				continue
			}
			p.known[key] = struct{}{}
			if baseline {
				continue
			}

			p.mgr.AttachToLatest(wire.NewRaw(wire.PersistenceCreated{
				Location: dir,
				File:     entry.Name(),
			}))
		}
	}
}
