package wire

import (
	"encoding/json"
	"time"
)

// Record is the canonical server-side view of one ingested event. It decodes
// both wire schemas: flat probe records and cleaner output with a nested
// "details" object. Detail lookups fall through to the top level so callers
// never need to know which shape arrived.
type Record struct {
	ContextID   string
	Type        string
	Timestamp   float64
	PID         *int32
	ProcessName string
	Count       int

	// Fields is the detail object when present, otherwise the flat record.
	Fields map[string]any
	// Raw preserves the original bytes for the audit trail.
	Raw json.RawMessage
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	r.Raw = append(r.Raw[:0], b...)
	r.ContextID = str(m["context_id"])
	r.Type = str(m["event_type"])
	r.Timestamp = parseTimestamp(m["timestamp"])
	r.Count = 1
	if n, ok := num(m["count"]); ok && n >= 1 {
		r.Count = int(n)
	}

	if d, ok := m["details"].(map[string]any); ok {
		r.Fields = d
	} else {
		r.Fields = m
	}

	if n, ok := num(m["pid"]); ok {
		pid := int32(n)
		r.PID = &pid
	} else if n, ok := num(r.Fields["pid"]); ok {
		pid := int32(n)
		r.PID = &pid
	}

	r.ProcessName = str(m["process_name"])
	if r.ProcessName == "" {
		r.ProcessName = r.String("process_name")
	}
	if r.ProcessName == "" {
		r.ProcessName = r.String("process")
	}
	return nil
}

// String returns the named detail field as a string, empty when absent.
func (r Record) String(key string) string {
	return str(r.Fields[key])
}

// Int returns the named detail field as an integer.
func (r Record) Int(key string) (int64, bool) {
	n, ok := num(r.Fields[key])
	return int64(n), ok
}

// Cmdline returns the command line if present, otherwise the process name.
// This is the text the rule engine matches against.
func (r Record) Cmdline() string {
	if cmd := r.String("cmdline"); cmd != "" {
		return cmd
	}
	return r.ProcessName
}

// Time converts the wire timestamp to wall-clock time, defaulting to now
// for records that arrived without one.
func (r Record) Time(now time.Time) time.Time {
	if r.Timestamp == 0 {
		return now
	}
	sec := int64(r.Timestamp)
	nsec := int64((r.Timestamp - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

func parseTimestamp(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return Epoch(ts)
		}
		if ts, err := time.Parse("2006-01-02T15:04:05.999999", t); err == nil {
			return Epoch(ts.UTC())
		}
	}
	return 0
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
