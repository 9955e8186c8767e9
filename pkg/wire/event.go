// Package wire defines the data types exchanged between the Sentinel agent
// and the ingestion service: device identity, raw probe events, cleaned
// context payloads, and the lenient server-side record decoder.
//
// Two event schemas coexist on the wire. Probes emit flat records
// (pid, remote_ip, ... at the top level) while the cleaner emits normalized
// records that carry the original flat record under "details". The server
// accepts either; Record canonicalizes both.
package wire

import (
	"encoding/json"
	"time"
)

// Event types produced by the agent probes.
const (
	EventProcessStart       = "process_start"
	EventNetworkConnect     = "network_connect"
	EventFileCreated        = "file_created"
	EventFileModified       = "file_modified"
	EventFileDeleted        = "file_deleted"
	EventUnauthorizedAccess = "unauthorized_access_attempt"
	EventHighMemoryUsage    = "high_memory_usage"
	EventPersistenceCreated = "persistence_created"
	EventPrivilegeContext   = "privilege_context"
)

// Details is the typed payload of a raw event. Each probe emits exactly one
// of the concrete detail types below.
type Details interface {
	EventType() string
}

// ProcessStart is the anchor event for a new execution context.
type ProcessStart struct {
	PID         int32  `json:"pid"`
	PPID        int32  `json:"ppid"`
	ProcessName string `json:"process_name"`
	Exe         string `json:"exe,omitempty"`
	Cmdline     string `json:"cmdline,omitempty"`
	Username    string `json:"username,omitempty"`
}

func (ProcessStart) EventType() string { return EventProcessStart }

// NetworkConnect records the first sighting of an outbound connection.
type NetworkConnect struct {
	PID        int32  `json:"pid"`
	RemoteIP   string `json:"remote_ip"`
	RemotePort uint32 `json:"remote_port"`
	Domain     string `json:"domain,omitempty"`
	Status     string `json:"status,omitempty"`
	Flags      string `json:"flags,omitempty"`
}

func (NetworkConnect) EventType() string { return EventNetworkConnect }

// FileChange covers file_created, file_modified and file_deleted; Op selects
// which of the three the record is emitted as.
type FileChange struct {
	Op       string `json:"-"`
	FilePath string `json:"file_path"`
	Hash     string `json:"hash,omitempty"`
}

func (f FileChange) EventType() string { return f.Op }

// AccessAttempt records a permission failure against a protected path.
type AccessAttempt struct {
	Path string `json:"path"`
}

func (AccessAttempt) EventType() string { return EventUnauthorizedAccess }

// HighMemoryUsage flags a process whose resident set crossed the threshold.
type HighMemoryUsage struct {
	PID         int32   `json:"pid"`
	ProcessName string  `json:"process"`
	MemoryMB    float64 `json:"memory_mb"`
}

func (HighMemoryUsage) EventType() string { return EventHighMemoryUsage }

// PersistenceCreated records a new entry in an autostart location.
type PersistenceCreated struct {
	Location string `json:"location"`
	File     string `json:"file"`
}

func (PersistenceCreated) EventType() string { return EventPersistenceCreated }

// PrivilegeContext captures the privilege level of the agent session.
type PrivilegeContext struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func (PrivilegeContext) EventType() string { return EventPrivilegeContext }

// Raw is a probe event before cleaning. Timestamp and ContextID are stamped
// by the context manager at attach time, not by the probe.
type Raw struct {
	Type      string
	Timestamp float64
	ContextID string
	Details   Details
}

// NewRaw wraps typed details in a Raw envelope.
func NewRaw(d Details) Raw {
	return Raw{Type: d.EventType(), Details: d}
}

// PID returns the process identity carried by the event, if any.
func (r Raw) PID() (int32, bool) {
	switch d := r.Details.(type) {
	case ProcessStart:
		return d.PID, true
	case NetworkConnect:
		return d.PID, true
	case HighMemoryUsage:
		return d.PID, true
	}
	return 0, false
}

// ProcessName returns the process name carried by the event, if any.
func (r Raw) ProcessName() string {
	switch d := r.Details.(type) {
	case ProcessStart:
		return d.ProcessName
	case HighMemoryUsage:
		return d.ProcessName
	}
	return ""
}

// MarshalJSON flattens the typed details into the envelope so the journal
// and the clean pipeline see the original flat record shape.
func (r Raw) MarshalJSON() ([]byte, error) {
	flat := map[string]any{}
	if r.Details != nil {
		b, err := json.Marshal(r.Details)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &flat); err != nil {
			return nil, err
		}
	}
	flat["event_type"] = r.Type
	if r.Timestamp != 0 {
		flat["timestamp"] = r.Timestamp
	}
	if r.ContextID != "" {
		flat["context_id"] = r.ContextID
	}
	return json.Marshal(flat)
}

// Epoch converts a wall-clock time to the float seconds representation used
// on the wire.
func Epoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
