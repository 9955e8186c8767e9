package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jonboulle/clockwork"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// reverse lookup is best effort and must not stall the poll cycle
const dnsLookupTimeout = 500 * time.Millisecond

// NetworkProbe reports the first sighting of each outbound connection,
// attributed to its owning process via the PID linker.
type NetworkProbe struct {
	mgr      *contextengine.Manager
	linker   *contextengine.Linker
	interval time.Duration
	clock    clockwork.Clock
	log      *zap.Logger

	seen map[string]struct{}
}

func NewNetworkProbe(
	mgr *contextengine.Manager,
	linker *contextengine.Linker,
	interval time.Duration,
	clock clockwork.Clock,
	log *zap.Logger,
) *NetworkProbe {
	return &NetworkProbe{
		mgr:      mgr,
		linker:   linker,
		interval: interval,
		clock:    clock,
		log:      log,
		seen:     make(map[string]struct{}),
	}
}

func (p *NetworkProbe) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("network probe started", zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *NetworkProbe) poll(ctx context.Context) {
	conns, err := gopsnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		p.log.Warn("network probe: connection enumeration failed", zap.Error(err))
		return
	}

	for _, conn := range conns {
		if conn.Pid == 0 || conn.Raddr.IP == "" {
			continue
		}

		key := fmt.Sprintf("%d|%s|%d", conn.Pid, conn.Raddr.IP, conn.Raddr.Port)
		if _, ok := p.seen[key]; ok {
			continue
		}
		p.seen[key] = struct{}{}

		contextID, ok := p.linker.Lookup(conn.Pid)
		if !ok {
			continue
		}

		p.mgr.AddEvent(contextID, wire.NewRaw(wire.NetworkConnect{
			PID:        conn.Pid,
			RemoteIP:   conn.Raddr.IP,
			RemotePort: conn.Raddr.Port,
			Domain:     p.reverseLookup(ctx, conn.Raddr.IP),
			Status:     conn.Status,
		}))
	}
}

func (p *NetworkProbe) reverseLookup(ctx context.Context, ip string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, dnsLookupTimeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(lookupCtx, ip)
	if err != nil || len(names) == 0 {
		return ""
	}
	return names[0]
}
