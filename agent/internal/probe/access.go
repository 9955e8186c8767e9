package probe

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// AccessProbe detects permission failures against protected paths.
type AccessProbe struct {
	mgr            *contextengine.Manager
	protectedPaths []string
	interval       time.Duration
	clock          clockwork.Clock
	log            *zap.Logger
}

func NewAccessProbe(
	mgr *contextengine.Manager,
	protectedPaths []string,
	interval time.Duration,
	clock clockwork.Clock,
	log *zap.Logger,
) *AccessProbe {
	return &AccessProbe{
		mgr:            mgr,
		protectedPaths: protectedPaths,
		interval:       interval,
		clock:          clock,
		log:            log,
	}
}

func (p *AccessProbe) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("access probe started", zap.Strings("protected_paths", p.protectedPaths))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll()
		}
	}
}

func (p *AccessProbe) poll() {
	for _, path := range p.protectedPaths {
		if _, err := os.ReadDir(path); errors.Is(err, fs.ErrPermission) {
			p.mgr.AttachToLatest(wire.NewRaw(wire.AccessAttempt{Path: path}))
		}
	}
}
