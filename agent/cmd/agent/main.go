package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/buffer"
	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/config"
	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/identity"
	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/probe"
	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/rawstore"
	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/sender"
)

// watcherTick is how often the expiry watcher scans for expired contexts.
const watcherTick = 1 * time.Second

// shutdownGrace bounds the final drain after contexts are force-closed.
const shutdownGrace = 2 * time.Second

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load(os.Getenv("SENTINEL_CONFIG"))
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	clock := clockwork.NewRealClock()

	device, err := identity.Device()
	if err != nil {
		logger.Fatal("failed to resolve device identity", zap.Error(err))
	}
	user := identity.User()
	logger.Info("agent identity resolved",
		zap.String("device_id", device.DeviceID),
		zap.String("hostname", device.Hostname),
		zap.String("user", user.Username),
	)

	// ── Durable state ──────────────────────────────────────────────────────
	rawStore, err := rawstore.NewStore(filepath.Join(cfg.Paths.DataDir, "raw_store"), clock, logger)
	if err != nil {
		logger.Fatal("failed to open raw store", zap.Error(err))
	}

	queue, err := buffer.NewQueue(filepath.Join(cfg.Paths.DataDir, "buffer"), logger)
	if err != nil {
		logger.Fatal("failed to open buffer queue", zap.Error(err))
	}
	if os.Getenv("SENTINEL_DEV_RESET") == "1" {
		if err := queue.Reset(); err != nil {
			logger.Warn("dev reset failed", zap.Error(err))
		} else {
			logger.Info("dev reset: buffer queues truncated")
		}
	}

	retention := rawstore.NewRetention(filepath.Join(cfg.Paths.DataDir, "raw_store"), clock, logger)
	if err := retention.Start(); err != nil {
		logger.Fatal("failed to start raw retention sweeper", zap.Error(err))
	}
	defer retention.Stop()

	// ── Context engine ─────────────────────────────────────────────────────
	mgr := contextengine.NewManager(device, user, cfg.ContextTimeout(), rawStore, queue, clock, logger)
	linker := contextengine.NewLinker()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go mgr.RunWatcher(runCtx, watcherTick)

	// ── Probes ─────────────────────────────────────────────────────────────
	c := cfg.Collectors
	go probe.NewProcessProbe(mgr, linker, config.Interval(c.ProcessPollInterval), clock, logger).Run(runCtx)
	go probe.NewNetworkProbe(mgr, linker, config.Interval(c.NetworkPollInterval), clock, logger).Run(runCtx)
	go probe.NewFilesystemProbe(mgr, cfg.Paths.WatchPaths, config.Interval(c.FilesystemPollInterval), clock, logger).Run(runCtx)
	go probe.NewMemoryProbe(mgr, linker, config.Interval(c.MemoryPollInterval), clock, logger).Run(runCtx)
	go probe.NewAccessProbe(mgr, cfg.Paths.ProtectedPaths, config.Interval(c.AccessPollInterval), clock, logger).Run(runCtx)
	go probe.NewPersistenceProbe(mgr, cfg.Paths.StartupPaths, config.Interval(c.PersistencePollInterval), clock, logger).Run(runCtx)

	// ── Sender ─────────────────────────────────────────────────────────────
	client := sender.NewAPIClient(cfg.Backend.APIURL, cfg.BackendTimeout())
	go sender.New(queue, client, device, cfg.SendInterval(), cfg.Sender.MaxBatchSize, clock, logger).Run(runCtx)

	logger.Info("sentinel agent running",
		zap.String("backend", cfg.Backend.APIURL),
		zap.Duration("context_timeout", cfg.ContextTimeout()),
	)

	// ── Graceful shutdown ──────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")

	mgr.CloseAll()
	mgr.DrainExpired()
	time.Sleep(shutdownGrace)

	cancel()
	logger.Info("sentinel agent shut down cleanly")
}
