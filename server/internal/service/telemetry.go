package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Vamsirusheel01/sentinel-ai/server/internal/repository/db"
)

const (
	// recentEventsLimit caps the status view's event list.
	recentEventsLimit = 30
	defaultListLimit  = 50
	maxListLimit      = 500
)

// DeviceView is the read-model row for the fleet endpoints.
type DeviceView struct {
	DeviceID     string     `json:"device_id"`
	Hostname     string     `json:"hostname,omitempty"`
	OS           string     `json:"os,omitempty"`
	OSVersion    string     `json:"os_version,omitempty"`
	Architecture string     `json:"architecture,omitempty"`
	TrustScore   float64    `json:"trust_score"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
}

// EventView is the read-model row for ingested events.
type EventView struct {
	ID        string          `json:"id"`
	DeviceID  string          `json:"device_id"`
	ContextID string          `json:"context_id,omitempty"`
	EventType string          `json:"event_type"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// PayloadView is the audit row for stored payloads.
type PayloadView struct {
	ID          string          `json:"id"`
	DeviceID    string          `json:"device_id"`
	PayloadType string          `json:"payload_type,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
}

// ProcessActivityView is the read-model row for the process feed.
type ProcessActivityView struct {
	ID          string     `json:"id"`
	DeviceID    string     `json:"device_id"`
	PID         *int32     `json:"pid,omitempty"`
	PPID        *int32     `json:"ppid,omitempty"`
	ProcessName string     `json:"process_name,omitempty"`
	Cmdline     string     `json:"cmdline,omitempty"`
	Username    string     `json:"username,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// StatusView is the fleet summary for the dashboard.
type StatusView struct {
	Devices      []DeviceView `json:"devices"`
	RecentEvents []EventView  `json:"recent_events"`
}

// TelemetryService serves the read-side endpoints.
type TelemetryService struct {
	store Store
}

func NewTelemetryService(store Store) *TelemetryService {
	return &TelemetryService{store: store}
}

// Status returns every device plus the most recent events fleet-wide.
func (s *TelemetryService) Status(ctx context.Context) (StatusView, error) {
	devices, err := s.store.ListDevices(ctx)
	if err != nil {
		return StatusView{}, err
	}
	events, err := s.store.ListRecentEvents(ctx, recentEventsLimit)
	if err != nil {
		return StatusView{}, err
	}

	view := StatusView{
		Devices:      make([]DeviceView, 0, len(devices)),
		RecentEvents: make([]EventView, 0, len(events)),
	}
	for _, d := range devices {
		view.Devices = append(view.Devices, deviceView(d))
	}
	for _, e := range events {
		view.RecentEvents = append(view.RecentEvents, eventView(e))
	}
	return view, nil
}

// Devices returns the fleet ordered by last contact.
func (s *TelemetryService) Devices(ctx context.Context) ([]DeviceView, error) {
	devices, err := s.store.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DeviceView, 0, len(devices))
	for _, d := range devices {
		out = append(out, deviceView(d))
	}
	return out, nil
}

// RecentEvents returns the newest events across the fleet.
func (s *TelemetryService) RecentEvents(ctx context.Context, limit int32) ([]EventView, error) {
	events, err := s.store.ListRecentEvents(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, eventView(e))
	}
	return out, nil
}

// PayloadsForDevice returns the stored payloads for one device, newest first.
func (s *TelemetryService) PayloadsForDevice(ctx context.Context, deviceID string, limit int32) ([]PayloadView, error) {
	payloads, err := s.store.ListPayloadsByDevice(ctx, db.ListPayloadsByDeviceParams{
		DeviceID: deviceID,
		Limit:    clampLimit(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]PayloadView, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, PayloadView{
			ID:          uuidString(p.ID),
			DeviceID:    p.DeviceID,
			PayloadType: p.PayloadType.String,
			Data:        p.Data,
			ReceivedAt:  timePtr(p.ReceivedAt),
		})
	}
	return out, nil
}

// ProcessActivity returns the newest process starts across the fleet.
func (s *TelemetryService) ProcessActivity(ctx context.Context, limit int32) ([]ProcessActivityView, error) {
	rows, err := s.store.ListProcessActivity(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]ProcessActivityView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProcessActivityView{
			ID:          uuidString(r.ID),
			DeviceID:    r.DeviceID,
			PID:         int4Ptr(r.Pid),
			PPID:        int4Ptr(r.Ppid),
			ProcessName: r.ProcessName.String,
			Cmdline:     r.Cmdline.String,
			Username:    r.Username.String,
			Timestamp:   timePtr(r.Timestamp),
		})
	}
	return out, nil
}

func deviceView(d db.Device) DeviceView {
	return DeviceView{
		DeviceID:     d.ID,
		Hostname:     d.Hostname.String,
		OS:           d.Os.String,
		OSVersion:    d.OsVersion.String,
		Architecture: d.Architecture.String,
		TrustScore:   d.TrustScore,
		LastSeen:     timePtr(d.LastSeen),
	}
}

func eventView(e db.Event) EventView {
	return EventView{
		ID:        uuidString(e.ID),
		DeviceID:  e.DeviceID,
		ContextID: e.ContextID.String,
		EventType: e.EventType,
		Timestamp: timePtr(e.Timestamp),
		Details:   e.RawData,
	}
}

func clampLimit(limit int32) int32 {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func uuidString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

func timePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	ts := t.Time
	return &ts
}

func int4Ptr(n pgtype.Int4) *int32 {
	if !n.Valid {
		return nil
	}
	v := n.Int32
	return &v
}
