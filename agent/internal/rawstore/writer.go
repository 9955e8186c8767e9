// Package rawstore is the append-only evidence journal: one JSONL sink per
// event family, best effort. A retention sweeper deletes sinks that have
// gone stale.
package rawstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// sinkFor routes event types to journal files. Unknown types are dropped.
var sinkFor = map[string]string{
	wire.EventProcessStart:       "process_raw.jsonl",
	wire.EventNetworkConnect:     "network_raw.jsonl",
	wire.EventFileCreated:        "filesystem_raw.jsonl",
	wire.EventFileModified:       "filesystem_raw.jsonl",
	wire.EventFileDeleted:        "filesystem_raw.jsonl",
	wire.EventUnauthorizedAccess: "access_raw.jsonl",
	wire.EventHighMemoryUsage:    "memory_raw.jsonl",
	wire.EventPersistenceCreated: "persistence_raw.jsonl",
}

// Store appends raw events to per-type journal files. Writers to the same
// sink serialize on a per-file mutex.
type Store struct {
	dir   string
	locks map[string]*sync.Mutex
	clock clockwork.Clock
	log   *zap.Logger
}

// NewStore creates the journal directory and a lock per sink file.
func NewStore(dir string, clock clockwork.Clock, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	locks := make(map[string]*sync.Mutex)
	for _, name := range sinkFor {
		if _, ok := locks[name]; !ok {
			locks[name] = &sync.Mutex{}
		}
	}
	return &Store{dir: dir, locks: locks, clock: clock, log: log}, nil
}

// Write journals the event to its sink. Persistence failures are logged and
// the event dropped; the in-memory context still carries the event.
func (s *Store) Write(ev wire.Raw) {
	name, ok := sinkFor[ev.Type]
	if !ok {
		return
	}

	line, err := s.record(ev)
	if err != nil {
		s.log.Warn("raw store: marshal failed", zap.String("event_type", ev.Type), zap.Error(err))
		return
	}

	lock := s.locks[name]
	lock.Lock()
	defer lock.Unlock()

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.log.Warn("raw store: open failed", zap.String("sink", name), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		s.log.Warn("raw store: write failed", zap.String("sink", name), zap.Error(err))
	}
}

// record flattens the event and stamps the ingestion time.
func (s *Store) record(ev wire.Raw) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["_raw_timestamp"] = wire.Epoch(s.clock.Now())
	return json.Marshal(m)
}
