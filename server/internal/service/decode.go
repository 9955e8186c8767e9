package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// Context is one decoded execution context from an ingest payload. Bare
// event records that arrive without a context wrapper become single-event
// contexts with an empty ContextID.
type Context struct {
	ContextID   string
	PayloadType string
	Raw         json.RawMessage
	Events      []wire.Record
}

// Batch is a fully decoded ingest payload.
type Batch struct {
	Device   wire.DeviceIdentity
	Contexts []Context
}

// envelope is the canonical payload shape. Agents built before the context
// engine POST a bare JSON array of event records instead.
type envelope struct {
	Device wire.DeviceIdentity `json:"device"`
	Events []json.RawMessage   `json:"events"`
}

// contextEntry probes an events entry for the clean-context shape.
type contextEntry struct {
	ContextID   string              `json:"context_id"`
	PayloadType string              `json:"payload_type"`
	Device      wire.DeviceIdentity `json:"device"`
	Events      []wire.Record       `json:"events"`
}

// DecodePayload decodes an ingest body in either wire schema. The device
// identity comes from the envelope, falling back to the first context that
// carries one.
func DecodePayload(body []byte) (Batch, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Batch{}, ErrEmptyPayload
	}

	var (
		batch   Batch
		entries []json.RawMessage
	)
	if body[0] == '[' {
		if err := json.Unmarshal(body, &entries); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	} else {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		batch.Device = env.Device
		entries = env.Events
	}
	if len(entries) == 0 {
		return Batch{}, ErrEmptyPayload
	}

	for _, raw := range entries {
		cc, device, err := decodeEntry(raw)
		if err != nil {
			return Batch{}, err
		}
		if batch.Device.DeviceID == "" {
			batch.Device = device
		}
		batch.Contexts = append(batch.Contexts, cc)
	}

	if batch.Device.DeviceID == "" {
		return Batch{}, fmt.Errorf("%w: missing device_id", ErrInvalidPayload)
	}
	return batch, nil
}

// decodeEntry accepts either a clean context or a bare event record.
func decodeEntry(raw json.RawMessage) (Context, wire.DeviceIdentity, error) {
	var entry contextEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Context{}, wire.DeviceIdentity{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if entry.Events == nil {
		var rec wire.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Context{}, wire.DeviceIdentity{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		if rec.Type == "" {
			return Context{}, wire.DeviceIdentity{}, fmt.Errorf("%w: event without event_type", ErrInvalidPayload)
		}
		return Context{
			ContextID:   rec.ContextID,
			PayloadType: classifyRecords([]wire.Record{rec}),
			Raw:         raw,
			Events:      []wire.Record{rec},
		}, entry.Device, nil
	}

	cc := Context{
		ContextID:   entry.ContextID,
		PayloadType: entry.PayloadType,
		Raw:         raw,
		Events:      entry.Events,
	}
	if cc.PayloadType == "" {
		cc.PayloadType = classifyRecords(cc.Events)
	}
	return cc, entry.Device, nil
}

// classifyRecords mirrors the agent's payload-type rules for contexts that
// arrive unclassified. First match wins.
func classifyRecords(events []wire.Record) string {
	types := make(map[string]bool, len(events))
	hasFile := false
	for _, ev := range events {
		types[ev.Type] = true
		if strings.HasPrefix(ev.Type, "file_") {
			hasFile = true
		}
	}

	switch {
	case types[wire.EventPersistenceCreated]:
		return "persistence_activity"
	case types[wire.EventNetworkConnect] && types[wire.EventProcessStart]:
		return "process_network_activity"
	case hasFile:
		return "filesystem_activity"
	case types[wire.EventProcessStart]:
		return "process_execution"
	case types[wire.EventNetworkConnect]:
		return "network_activity"
	default:
		return "unknown"
	}
}
