package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/alert"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/repository/db"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/trust"
)

// IngestService persists telemetry payloads and drives the trust engine.
// Persistence and the score update share one transaction per payload: the
// device row is locked so concurrent payloads from the same device serialize
// their read-modify-write of the trust score.
type IngestService struct {
	store  Store
	engine *trust.Engine
	alerts *alert.Publisher
	clock  clockwork.Clock
	log    *zap.Logger
}

// IngestResult is what the handler needs to build the 201 reply.
type IngestResult struct {
	TrustScore float64
	Feedback   string
	Severity   trust.Severity
}

func NewIngestService(store Store, engine *trust.Engine, alerts *alert.Publisher, clock clockwork.Clock, log *zap.Logger) *IngestService {
	return &IngestService{
		store:  store,
		engine: engine,
		alerts: alerts,
		clock:  clock,
		log:    log,
	}
}

// Ingest decodes one payload, persists it, and applies the trust update.
// Decode failures map to ErrEmptyPayload or ErrInvalidPayload; any database
// failure rolls the whole payload back and maps to ErrStorage.
func (s *IngestService) Ingest(ctx context.Context, body []byte) (IngestResult, error) {
	batch, err := DecodePayload(body)
	if err != nil {
		return IngestResult{}, err
	}

	now := s.clock.Now().UTC()

	var (
		assessment trust.Assessment
		result     IngestResult
	)
	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		device, err := q.UpsertDevice(ctx, db.UpsertDeviceParams{
			ID:           batch.Device.DeviceID,
			Hostname:     pgText(batch.Device.Hostname),
			Os:           pgText(batch.Device.OS),
			OsVersion:    pgText(batch.Device.OSVersion),
			Architecture: pgText(batch.Device.Architecture),
			LastSeen:     pgtype.Timestamptz{Time: now, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("upsert device: %w", err)
		}

		device, err = q.GetDeviceForUpdate(ctx, device.ID)
		if err != nil {
			return fmt.Errorf("lock device: %w", err)
		}

		for _, cc := range batch.Contexts {
			if err := s.persistContext(ctx, q, device.ID, cc, now); err != nil {
				return err
			}
		}

		assessment = s.engine.Evaluate(device.ID, trustEvents(batch))
		next := s.engine.NextScore(device.TrustScore, assessment)

		updated, err := q.UpdateDeviceTrustScore(ctx, db.UpdateDeviceTrustScoreParams{
			ID:         device.ID,
			TrustScore: next,
		})
		if err != nil {
			return fmt.Errorf("update trust score: %w", err)
		}

		result = IngestResult{
			TrustScore: updated.TrustScore,
			Feedback:   trust.Feedback(assessment, updated.TrustScore),
			Severity:   assessment.Severity,
		}
		return nil
	})
	if err != nil {
		s.log.Error("ingest failed",
			zap.String("device_id", batch.Device.DeviceID),
			zap.Error(err),
		)
		return IngestResult{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if assessment.Severity >= trust.SeverityHigh || assessment.ChainEscalated {
		s.alerts.Publish(ctx, alert.Threat{
			DeviceID:       batch.Device.DeviceID,
			Severity:       assessment.Severity.String(),
			Rules:          assessment.Rules,
			TrustScore:     result.TrustScore,
			ChainEscalated: assessment.ChainEscalated,
			Feedback:       result.Feedback,
			OccurredAt:     now,
		})
	}
	return result, nil
}

// persistContext writes the payload audit row, the event rows, and the
// per-type projections for one context.
func (s *IngestService) persistContext(ctx context.Context, q db.Querier, deviceID string, cc Context, now time.Time) error {
	if _, err := q.InsertPayload(ctx, db.InsertPayloadParams{
		ID:          newUUID(),
		DeviceID:    deviceID,
		PayloadType: pgText(cc.PayloadType),
		Data:        cc.Raw,
	}); err != nil {
		return fmt.Errorf("insert payload: %w", err)
	}

	for _, rec := range cc.Events {
		ts := pgtype.Timestamptz{Time: rec.Time(now), Valid: true}
		ev, err := q.InsertEvent(ctx, db.InsertEventParams{
			ID:        newUUID(),
			DeviceID:  deviceID,
			ContextID: pgText(rec.ContextID),
			EventType: rec.Type,
			Timestamp: ts,
			RawData:   rec.Raw,
		})
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		if err := s.project(ctx, q, deviceID, ev.ID, rec, ts); err != nil {
			return err
		}
	}
	return nil
}

// project fans an event out into its typed table. Event types without a
// projection only land in the events table.
func (s *IngestService) project(ctx context.Context, q db.Querier, deviceID string, eventID pgtype.UUID, rec wire.Record, ts pgtype.Timestamptz) error {
	switch rec.Type {
	case wire.EventProcessStart:
		_, err := q.InsertProcessEvent(ctx, db.InsertProcessEventParams{
			ID:          newUUID(),
			DeviceID:    deviceID,
			EventID:     eventID,
			Pid:         pgPID(rec.PID),
			Ppid:        pgInt(rec, "ppid"),
			ProcessName: pgText(rec.ProcessName),
			Cmdline:     pgText(rec.String("cmdline")),
			Username:    pgText(rec.String("username")),
			Timestamp:   ts,
		})
		if err != nil {
			return fmt.Errorf("insert process event: %w", err)
		}

	case wire.EventNetworkConnect:
		_, err := q.InsertNetworkEvent(ctx, db.InsertNetworkEventParams{
			ID:          newUUID(),
			DeviceID:    deviceID,
			EventID:     eventID,
			Pid:         pgPID(rec.PID),
			ProcessName: pgText(rec.ProcessName),
			RemoteIp:    pgText(rec.String("remote_ip")),
			RemotePort:  pgInt(rec, "remote_port"),
			Status:      pgText(rec.String("status")),
			Timestamp:   ts,
		})
		if err != nil {
			return fmt.Errorf("insert network event: %w", err)
		}

	case wire.EventFileCreated, wire.EventFileModified, wire.EventFileDeleted, wire.EventUnauthorizedAccess:
		_, err := q.InsertFileEvent(ctx, db.InsertFileEventParams{
			ID:        newUUID(),
			DeviceID:  deviceID,
			EventID:   eventID,
			FilePath:  pgText(filePath(rec)),
			Operation: fileOperation(rec.Type),
			Hash:      pgText(rec.String("hash")),
			Timestamp: ts,
		})
		if err != nil {
			return fmt.Errorf("insert file event: %w", err)
		}
	}
	return nil
}

// trustEvents flattens a batch into the trust engine's view.
func trustEvents(batch Batch) []trust.Event {
	var out []trust.Event
	for _, cc := range batch.Contexts {
		for _, rec := range cc.Events {
			out = append(out, trust.Event{
				Type:        rec.Type,
				ProcessName: rec.ProcessName,
				Cmdline:     rec.Cmdline(),
				Flags:       rec.String("flags"),
			})
		}
	}
	return out
}

func fileOperation(eventType string) string {
	if eventType == wire.EventUnauthorizedAccess {
		return "access_denied"
	}
	return strings.TrimPrefix(eventType, "file_")
}

func filePath(rec wire.Record) string {
	if p := rec.String("file_path"); p != "" {
		return p
	}
	return rec.String("path")
}

func newUUID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.Must(uuid.NewV7()), Valid: true}
}

func pgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func pgPID(pid *int32) pgtype.Int4 {
	if pid == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *pid, Valid: true}
}

func pgInt(rec wire.Record, key string) pgtype.Int4 {
	n, ok := rec.Int(key)
	if !ok {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(n), Valid: true}
}
