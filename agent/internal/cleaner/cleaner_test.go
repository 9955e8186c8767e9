package cleaner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/cleaner"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

func networkEvent(ts float64, pid int32) wire.CleanEvent {
	return wire.CleanEvent{
		ContextID: "CTX-test0001",
		Type:      wire.EventNetworkConnect,
		Timestamp: ts,
		PID:       &pid,
	}
}

func TestDeduplicate_SlidingWindow(t *testing.T) {
	// Repeats within two seconds of the last retained occurrence collapse;
	// the window restarts at each retained event.
	events := []wire.CleanEvent{
		networkEvent(0.0, 42),
		networkEvent(0.5, 42),
		networkEvent(1.9, 42),
		networkEvent(2.1, 42),
		networkEvent(4.5, 42),
	}

	got := cleaner.Deduplicate(events)
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0].Timestamp)
	assert.Equal(t, 2.1, got[1].Timestamp)
	assert.Equal(t, 4.5, got[2].Timestamp)
}

func TestDeduplicate_DistinctPIDsKept(t *testing.T) {
	events := []wire.CleanEvent{
		networkEvent(0.0, 42),
		networkEvent(0.1, 43),
		networkEvent(0.2, 44),
	}
	assert.Len(t, cleaner.Deduplicate(events), 3)
}

func TestDeduplicate_PIDLessEventsShareKey(t *testing.T) {
	noPID := func(ts float64) wire.CleanEvent {
		return wire.CleanEvent{Type: wire.EventUnauthorizedAccess, Timestamp: ts}
	}
	events := []wire.CleanEvent{noPID(0.0), noPID(0.5), noPID(3.0)}

	got := cleaner.Deduplicate(events)
	require.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0].Timestamp)
	assert.Equal(t, 3.0, got[1].Timestamp)
}

func TestAggregate_AdjacentRuns(t *testing.T) {
	pid := int32(42)
	events := []wire.CleanEvent{
		{Type: wire.EventProcessStart, Timestamp: 0.0, PID: &pid},
		networkEvent(2.5, 42),
		networkEvent(5.0, 42),
		networkEvent(7.5, 42),
		{Type: wire.EventFileCreated, Timestamp: 8.0},
	}

	got := cleaner.Aggregate(events)
	require.Len(t, got, 3)
	assert.Equal(t, wire.EventProcessStart, got[0].Type)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, wire.EventNetworkConnect, got[1].Type)
	assert.Equal(t, 3, got[1].Count)
	assert.Equal(t, 2.5, got[1].Timestamp, "aggregated record keeps the first occurrence")
	assert.Equal(t, wire.EventFileCreated, got[2].Type)
}

func TestAggregate_NonAdjacentDuplicatesStaySeparate(t *testing.T) {
	events := []wire.CleanEvent{
		networkEvent(0.0, 42),
		{Type: wire.EventFileCreated, Timestamp: 1.0},
		networkEvent(2.0, 42),
	}
	assert.Len(t, cleaner.Aggregate(events), 3)
}

func TestValidate(t *testing.T) {
	assert.True(t, cleaner.Validate(wire.CleanEvent{Type: "process_start", Timestamp: 1.0}))
	assert.False(t, cleaner.Validate(wire.CleanEvent{Timestamp: 1.0}))
	assert.False(t, cleaner.Validate(wire.CleanEvent{Type: "process_start"}))
}

func TestNormalize(t *testing.T) {
	raw := wire.NewRaw(wire.ProcessStart{PID: 42, ProcessName: "curl", Cmdline: "curl http://x"})
	raw.Timestamp = 1000.0

	clean, err := cleaner.Normalize(raw, "CTX-aabbccdd", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "CTX-aabbccdd", clean.ContextID)
	assert.Equal(t, wire.EventProcessStart, clean.Type)
	assert.Equal(t, 1000.0, clean.Timestamp)
	assert.Equal(t, "curl", clean.ProcessName)
	require.NotNil(t, clean.PID)
	assert.Equal(t, int32(42), *clean.PID)
	assert.NotEmpty(t, clean.Details, "original flat record preserved under details")
}

func TestNormalize_StampsMissingTimestamp(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clean, err := cleaner.Normalize(wire.NewRaw(wire.AccessAttempt{Path: "/etc/shadow"}), "CTX-11223344", now)
	require.NoError(t, err)
	assert.Equal(t, wire.Epoch(now), clean.Timestamp)
}

func TestClean_Pipeline(t *testing.T) {
	mk := func(ts float64, d wire.Details) wire.Raw {
		r := wire.NewRaw(d)
		r.Timestamp = ts
		return r
	}

	raws := []wire.Raw{
		mk(0.0, wire.ProcessStart{PID: 42, ProcessName: "curl"}),
		mk(1.0, wire.NetworkConnect{PID: 42, RemoteIP: "10.0.0.9"}),
		mk(1.5, wire.NetworkConnect{PID: 42, RemoteIP: "10.0.0.9"}), // deduped
		mk(4.0, wire.NetworkConnect{PID: 42, RemoteIP: "10.0.0.9"}),
	}

	got := cleaner.Clean(raws, "CTX-55667788", time.Now())
	require.Len(t, got, 2)
	assert.Equal(t, wire.EventProcessStart, got[0].Type)
	assert.Equal(t, wire.EventNetworkConnect, got[1].Type)
	assert.Equal(t, 2, got[1].Count, "survivors of dedup aggregate into one run")
}

func TestClean_Empty(t *testing.T) {
	assert.Empty(t, cleaner.Clean(nil, "CTX-00000000", time.Now()))
}
