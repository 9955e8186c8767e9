// Package cleaner transforms the raw events of an expired context into the
// canonical clean schema: normalize, validate, deduplicate within a sliding
// window, then run-length aggregate adjacent duplicates. Event order is
// preserved end to end.
package cleaner

import (
	"encoding/json"
	"time"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// DedupWindow is the sliding window within which repeated events sharing
// (event_type, pid) collapse to the first occurrence.
const DedupWindow = 2 * time.Second

// Normalize converts a raw event into the clean schema, promoting the common
// fields and keeping the original flat record verbatim under details.
func Normalize(ev wire.Raw, contextID string, now time.Time) (wire.CleanEvent, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return wire.CleanEvent{}, err
	}

	ts := ev.Timestamp
	if ts == 0 {
		ts = wire.Epoch(now)
	}

	clean := wire.CleanEvent{
		ContextID:   contextID,
		Type:        ev.Type,
		Timestamp:   ts,
		ProcessName: ev.ProcessName(),
		Details:     raw,
	}
	if pid, ok := ev.PID(); ok {
		clean.PID = &pid
	}
	return clean, nil
}

// Validate reports whether a normalized event carries the required fields.
func Validate(ev wire.CleanEvent) bool {
	return ev.Type != "" && ev.Timestamp != 0
}

type dedupKey struct {
	eventType string
	pid       int32
	hasPID    bool
}

func keyOf(ev wire.CleanEvent) dedupKey {
	k := dedupKey{eventType: ev.Type}
	if ev.PID != nil {
		k.pid = *ev.PID
		k.hasPID = true
	}
	return k
}

// Deduplicate drops events that repeat an (event_type, pid) pair within
// DedupWindow of the last retained occurrence. Order is preserved.
func Deduplicate(events []wire.CleanEvent) []wire.CleanEvent {
	window := DedupWindow.Seconds()
	seen := make(map[dedupKey]float64)
	deduped := make([]wire.CleanEvent, 0, len(events))

	for _, ev := range events {
		key := keyOf(ev)
		if last, ok := seen[key]; ok && ev.Timestamp-last < window {
			continue
		}
		seen[key] = ev.Timestamp
		deduped = append(deduped, ev)
	}
	return deduped
}

// Aggregate collapses adjacent events sharing (event_type, pid) into a
// single record whose count is the run length.
func Aggregate(events []wire.CleanEvent) []wire.CleanEvent {
	if len(events) == 0 {
		return nil
	}

	aggregated := make([]wire.CleanEvent, 0, len(events))
	current := events[0]
	current.Count = 1

	for _, ev := range events[1:] {
		if keyOf(ev) == keyOf(current) {
			current.Count++
			continue
		}
		aggregated = append(aggregated, current)
		current = ev
		current.Count = 1
	}
	return append(aggregated, current)
}

// Clean runs the full pipeline over a context's raw events.
func Clean(events []wire.Raw, contextID string, now time.Time) []wire.CleanEvent {
	cleaned := make([]wire.CleanEvent, 0, len(events))
	for _, raw := range events {
		normalized, err := Normalize(raw, contextID, now)
		if err != nil {
			continue
		}
		if Validate(normalized) {
			cleaned = append(cleaned, normalized)
		}
	}
	return Aggregate(Deduplicate(cleaned))
}
