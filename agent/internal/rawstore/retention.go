package rawstore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// retentionAge is how long a journal file may sit unmodified before the
	// sweeper removes it.
	retentionAge = 6 * time.Hour
	// sweepSchedule runs the sweeper every five minutes.
	sweepSchedule = "@every 5m"
)

// Retention deletes stale journal files on a cron schedule.
type Retention struct {
	dir    string
	maxAge time.Duration
	cron   *cron.Cron
	clock  clockwork.Clock
	log    *zap.Logger
}

func NewRetention(dir string, clock clockwork.Clock, log *zap.Logger) *Retention {
	return &Retention{
		dir:    dir,
		maxAge: retentionAge,
		cron:   cron.New(),
		clock:  clock,
		log:    log,
	}
}

// Start registers the sweep job and starts the scheduler.
func (r *Retention) Start() error {
	if _, err := r.cron.AddFunc(sweepSchedule, r.Sweep); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info("raw retention sweeper started",
		zap.String("dir", r.dir),
		zap.Duration("max_age", r.maxAge),
	)
	return nil
}

// Stop halts the scheduler; a sweep in flight runs to completion.
func (r *Retention) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// Sweep removes journal files whose last modification is older than maxAge.
func (r *Retention) Sweep() {
	cutoff := r.clock.Now().Add(-r.maxAge)

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.log.Warn("raw retention: read dir failed", zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(r.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				r.log.Warn("raw retention: remove failed", zap.String("file", path), zap.Error(err))
				continue
			}
			r.log.Info("raw retention: removed stale journal", zap.String("file", path))
		}
	}
}
