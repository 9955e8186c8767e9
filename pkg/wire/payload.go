package wire

import (
	"encoding/json"
	"time"
)

// DeviceIdentity is the immutable identity block sent with every payload.
type DeviceIdentity struct {
	DeviceID     string `json:"device_id"`
	Hostname     string `json:"hostname"`
	OS           string `json:"os"`
	OSVersion    string `json:"os_version"`
	Architecture string `json:"architecture"`
	User         string `json:"user,omitempty"`
}

// UserContext describes the interactive session the agent runs under.
type UserContext struct {
	Username    string `json:"username"`
	UID         string `json:"uid,omitempty"`
	SessionType string `json:"session_type"`
	IsAdmin     bool   `json:"is_admin,omitempty"`
}

// CleanEvent is the normalized event schema produced by the cleaner:
// common fields promoted to the top level, the original flat record kept
// verbatim under Details, and Count set by run-length aggregation.
type CleanEvent struct {
	ContextID   string          `json:"context_id"`
	Type        string          `json:"event_type"`
	Timestamp   float64         `json:"timestamp"`
	PID         *int32          `json:"pid,omitempty"`
	ProcessName string          `json:"process_name,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
	Count       int             `json:"count,omitempty"`
}

// CleanContext is one expired execution context after the clean pipeline.
type CleanContext struct {
	ContextID   string         `json:"context_id"`
	PayloadType string         `json:"payload_type"`
	Device      DeviceIdentity `json:"device"`
	User        UserContext    `json:"user"`
	CreatedAt   float64        `json:"created_at"`
	Events      []CleanEvent   `json:"events"`
}

// Payload is the envelope POSTed to the ingest endpoint. Events holds one
// entry per clean context in the batch; the server also accepts bare event
// records in the same position.
type Payload struct {
	Device    DeviceIdentity    `json:"device"`
	Events    []json.RawMessage `json:"events"`
	Timestamp string            `json:"timestamp"`
}

// NewPayload wraps a batch of clean contexts in the wire envelope.
func NewPayload(device DeviceIdentity, batch []CleanContext, now time.Time) (Payload, error) {
	p := Payload{
		Device:    device,
		Events:    make([]json.RawMessage, 0, len(batch)),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
	for _, cc := range batch {
		b, err := json.Marshal(cc)
		if err != nil {
			return Payload{}, err
		}
		p.Events = append(p.Events, b)
	}
	return p, nil
}
