package rawstore_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/rawstore"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		records = append(records, m)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestStore_RoutesEventsToSinks(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClock()
	store, err := rawstore.NewStore(dir, clock, zap.NewNop())
	require.NoError(t, err)

	proc := wire.NewRaw(wire.ProcessStart{PID: 42, ProcessName: "curl"})
	proc.Timestamp = 100.0
	proc.ContextID = "CTX-aabbccdd"
	store.Write(proc)

	netw := wire.NewRaw(wire.NetworkConnect{PID: 42, RemoteIP: "10.0.0.9"})
	netw.Timestamp = 101.0
	store.Write(netw)

	for _, op := range []string{wire.EventFileCreated, wire.EventFileModified, wire.EventFileDeleted} {
		store.Write(wire.Raw{Type: op, Timestamp: 102.0, Details: wire.FileChange{Op: op, FilePath: "/tmp/x"}})
	}

	procRecords := readLines(t, filepath.Join(dir, "process_raw.jsonl"))
	require.Len(t, procRecords, 1)
	assert.Equal(t, "process_start", procRecords[0]["event_type"])
	assert.Equal(t, "CTX-aabbccdd", procRecords[0]["context_id"])
	assert.InDelta(t, wire.Epoch(clock.Now()), procRecords[0]["_raw_timestamp"], 0.001)

	assert.Len(t, readLines(t, filepath.Join(dir, "network_raw.jsonl")), 1)
	// All three file operations share one sink.
	assert.Len(t, readLines(t, filepath.Join(dir, "filesystem_raw.jsonl")), 3)
}

func TestStore_DropsUnknownEventType(t *testing.T) {
	dir := t.TempDir()
	store, err := rawstore.NewStore(dir, clockwork.NewFakeClock(), zap.NewNop())
	require.NoError(t, err)

	store.Write(wire.Raw{Type: "made_up_event", Timestamp: 1.0})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRetention_SweepRemovesStaleJournals(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewRealClock()

	stale := filepath.Join(dir, "process_raw.jsonl")
	fresh := filepath.Join(dir, "network_raw.jsonl")
	require.NoError(t, os.WriteFile(stale, []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("{}\n"), 0o644))

	old := time.Now().Add(-7 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	rawstore.NewRetention(dir, clock, zap.NewNop()).Sweep()

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale journal should be removed")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "fresh journal should survive")
}
