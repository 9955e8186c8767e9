package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"

	"github.com/Vamsirusheel01/sentinel-ai/server/internal/handler"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/repository/db"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/repository/mock"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/service"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/trust"
)

type fakeStore struct {
	*mock.MockQuerier
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(db.Querier) error) error {
	return fn(s.MockQuerier)
}

func setupHandler(t *testing.T) (*handler.TelemetryHandler, *mock.MockQuerier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockQ := mock.NewMockQuerier(ctrl)
	logger := zap.NewNop()
	store := &fakeStore{MockQuerier: mockQ}

	rules := trust.NewRuleset([]trust.Rule{
		trust.MustRule("credential_dumping", trust.SeverityCritical, `\bmimikatz\b`),
	})
	engine := trust.NewEngine(rules, trust.DefaultConfig(), clockwork.NewFakeClock(), logger)

	ingest := service.NewIngestService(store, engine, nil, clockwork.NewFakeClock(), logger)
	reader := service.NewTelemetryService(store)
	return handler.NewTelemetryHandler(ingest, reader, logger), mockQ
}

func postLogs(t *testing.T, h *handler.TelemetryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.IngestLogs(c))
	return rec
}

const validPayload = `{
	"device": {"device_id": "dev-1", "hostname": "host-a"},
	"events": [
		{
			"context_id": "CTX-aabbccdd",
			"payload_type": "process_execution",
			"events": [
				{"context_id": "CTX-aabbccdd", "event_type": "process_start", "timestamp": 1000.0, "pid": 42, "process_name": "vim", "cmdline": "vim notes.txt"}
			]
		}
	]
}`

func TestIngestLogs_EmptyBody(t *testing.T) {
	h, _ := setupHandler(t)
	rec := postLogs(t, h, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty payload")
}

func TestIngestLogs_MalformedBody(t *testing.T) {
	h, _ := setupHandler(t)
	rec := postLogs(t, h, `{"device":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid payload")
}

func TestIngestLogs_StorageDown(t *testing.T) {
	h, mockQ := setupHandler(t)
	mockQ.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).
		Return(db.Device{}, errors.New("connection refused"))

	rec := postLogs(t, h, validPayload)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIngestLogs_Success(t *testing.T) {
	h, mockQ := setupHandler(t)

	device := db.Device{ID: "dev-1", TrustScore: 97.13}
	mockQ.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).Return(device, nil)
	mockQ.EXPECT().GetDeviceForUpdate(gomock.Any(), "dev-1").Return(device, nil)
	mockQ.EXPECT().InsertPayload(gomock.Any(), gomock.Any()).Return(db.Payload{}, nil)
	mockQ.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(db.Event{}, nil)
	mockQ.EXPECT().InsertProcessEvent(gomock.Any(), gomock.Any()).Return(db.ProcessEvent{}, nil)
	mockQ.EXPECT().UpdateDeviceTrustScore(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateDeviceTrustScoreParams) (db.Device, error) {
			return db.Device{ID: arg.ID, TrustScore: arg.TrustScore}, nil
		})

	rec := postLogs(t, h, validPayload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Status     string  `json:"status"`
		TrustScore float64 `json:"trust_score"`
		Feedback   string  `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.InDelta(t, 98.3, resp.TrustScore, 1e-9, "score is rounded to one decimal")
	assert.Equal(t, "Secure", resp.Feedback)
}

func TestGetStatus(t *testing.T) {
	h, mockQ := setupHandler(t)

	mockQ.EXPECT().ListDevices(gomock.Any()).Return([]db.Device{
		{ID: "dev-1", Hostname: pgtype.Text{String: "host-a", Valid: true}, TrustScore: 88.5},
	}, nil)
	mockQ.EXPECT().ListRecentEvents(gomock.Any(), int32(30)).Return([]db.Event{
		{DeviceID: "dev-1", EventType: "process_start"},
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetStatus(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.StatusView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Devices, 1)
	assert.Equal(t, "dev-1", view.Devices[0].DeviceID)
	assert.Equal(t, "host-a", view.Devices[0].Hostname)
	assert.Equal(t, 88.5, view.Devices[0].TrustScore)
	require.Len(t, view.RecentEvents, 1)
	assert.Equal(t, "process_start", view.RecentEvents[0].EventType)
}

func TestGetStatus_StorageDown(t *testing.T) {
	h, mockQ := setupHandler(t)
	mockQ.EXPECT().ListDevices(gomock.Any()).Return(nil, errors.New("connection refused"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetStatus(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListDevices(t *testing.T) {
	h, mockQ := setupHandler(t)
	mockQ.EXPECT().ListDevices(gomock.Any()).Return([]db.Device{
		{ID: "dev-1", TrustScore: 100},
		{ID: "dev-2", TrustScore: 42.5},
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListDevices(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var devices []service.DeviceView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &devices))
	require.Len(t, devices, 2)
	assert.Equal(t, "dev-2", devices[1].DeviceID)
}

func TestListLogs_ByDevice(t *testing.T) {
	h, mockQ := setupHandler(t)
	mockQ.EXPECT().ListPayloadsByDevice(gomock.Any(), db.ListPayloadsByDeviceParams{
		DeviceID: "dev-1",
		Limit:    5,
	}).Return([]db.Payload{
		{DeviceID: "dev-1", PayloadType: pgtype.Text{String: "process_execution", Valid: true}},
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/logs?device_id=dev-1&limit=5", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListLogs(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var payloads []service.PayloadView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payloads))
	require.Len(t, payloads, 1)
	assert.Equal(t, "process_execution", payloads[0].PayloadType)
}

func TestListLogs_FleetWideDefaultLimit(t *testing.T) {
	h, mockQ := setupHandler(t)
	mockQ.EXPECT().ListRecentEvents(gomock.Any(), int32(50)).Return([]db.Event{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListLogs(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProcessActivity(t *testing.T) {
	h, mockQ := setupHandler(t)
	mockQ.EXPECT().ListProcessActivity(gomock.Any(), int32(50)).Return([]db.ProcessEvent{
		{DeviceID: "dev-1", ProcessName: pgtype.Text{String: "curl", Valid: true}, Pid: pgtype.Int4{Int32: 42, Valid: true}},
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/process-activity", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListProcessActivity(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []service.ProcessActivityView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "curl", rows[0].ProcessName)
	require.NotNil(t, rows[0].PID)
	assert.Equal(t, int32(42), *rows[0].PID)
}
