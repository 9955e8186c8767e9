package probe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/contextengine"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// FilesystemProbe walks the watch paths and reports files whose modification
// time changed since the previous cycle. The first sighting of a file only
// establishes the baseline and emits nothing.
type FilesystemProbe struct {
	mgr        *contextengine.Manager
	watchPaths []string
	interval   time.Duration
	clock      clockwork.Clock
	log        *zap.Logger

	baseline map[string]time.Time
}

func NewFilesystemProbe(
	mgr *contextengine.Manager,
	watchPaths []string,
	interval time.Duration,
	clock clockwork.Clock,
	log *zap.Logger,
) *FilesystemProbe {
	return &FilesystemProbe{
		mgr:        mgr,
		watchPaths: watchPaths,
		interval:   interval,
		clock:      clock,
		log:        log,
		baseline:   make(map[string]time.Time),
	}
}

func (p *FilesystemProbe) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("filesystem probe started",
		zap.Strings("watch_paths", p.watchPaths),
		zap.Duration("interval", p.interval),
	)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *FilesystemProbe) poll(ctx context.Context) {
	for _, base := range p.watchPaths {
		filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil || d.IsDir() {
				// unreadable subtree: skip, never abort the cycle
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}

			prev, known := p.baseline[path]
			p.baseline[path] = info.ModTime()
			if !known || prev.Equal(info.ModTime()) {
				return nil
			}

			p.mgr.AttachToLatest(wire.NewRaw(wire.FileChange{
				Op:       wire.EventFileModified,
				FilePath: path,
				Hash:     hashFile(path),
			}))
			return nil
		})
	}
}

// hashFile returns the file's sha256, or empty when unreadable.
func hashFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}
