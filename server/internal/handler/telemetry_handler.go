// Package handler contains the Echo HTTP handlers for the telemetry API.
//
// The ingest endpoint is what agents POST to; the remaining routes are
// read-side views for the dashboard.
package handler

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/server/internal/service"
)

// TelemetryHandler handles the /api routes.
type TelemetryHandler struct {
	ingest *service.IngestService
	reader *service.TelemetryService
	logger *zap.Logger
}

// NewTelemetryHandler constructs a TelemetryHandler.
func NewTelemetryHandler(ingest *service.IngestService, reader *service.TelemetryService, l *zap.Logger) *TelemetryHandler {
	return &TelemetryHandler{ingest: ingest, reader: reader, logger: l}
}

// Register mounts the telemetry routes on the provided Echo instance.
func (h *TelemetryHandler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/logs", h.IngestLogs)
	api.GET("/logs", h.ListLogs)
	api.GET("/status", h.GetStatus)
	api.GET("/devices", h.ListDevices)
	api.GET("/process-activity", h.ListProcessActivity)
}

// IngestLogs accepts one agent payload, persists it, and returns the
// device's updated trust score and feedback line.
func (h *TelemetryHandler) IngestLogs(c echo.Context) error {
	ctx, span := otel.Tracer("telemetry-api").Start(c.Request().Context(), "telemetry.IngestLogs")
	defer span.End()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read body"})
	}

	result, err := h.ingest.Ingest(ctx, body)
	switch {
	case errors.Is(err, service.ErrEmptyPayload):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty payload"})
	case errors.Is(err, service.ErrInvalidPayload):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	case err != nil:
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"status":      "success",
		"trust_score": round1(result.TrustScore),
		"feedback":    result.Feedback,
	})
}

// ListLogs returns stored payloads for a device, or the newest events
// fleet-wide when no device_id is given.
func (h *TelemetryHandler) ListLogs(c echo.Context) error {
	ctx, span := otel.Tracer("telemetry-api").Start(c.Request().Context(), "telemetry.ListLogs")
	defer span.End()

	limit := queryLimit(c)
	if deviceID := c.QueryParam("device_id"); deviceID != "" {
		payloads, err := h.reader.PayloadsForDevice(ctx, deviceID, limit)
		if err != nil {
			h.logger.Error("list payloads failed", zap.String("device_id", deviceID), zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
		}
		return c.JSON(http.StatusOK, payloads)
	}

	events, err := h.reader.RecentEvents(ctx, limit)
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, events)
}

// GetStatus returns the fleet summary: every device plus recent events.
func (h *TelemetryHandler) GetStatus(c echo.Context) error {
	ctx, span := otel.Tracer("telemetry-api").Start(c.Request().Context(), "telemetry.GetStatus")
	defer span.End()

	view, err := h.reader.Status(ctx)
	if err != nil {
		h.logger.Error("status query failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, view)
}

// ListDevices returns the device fleet ordered by last contact.
func (h *TelemetryHandler) ListDevices(c echo.Context) error {
	ctx, span := otel.Tracer("telemetry-api").Start(c.Request().Context(), "telemetry.ListDevices")
	defer span.End()

	devices, err := h.reader.Devices(ctx)
	if err != nil {
		h.logger.Error("list devices failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, devices)
}

// ListProcessActivity returns the newest process starts across the fleet.
func (h *TelemetryHandler) ListProcessActivity(c echo.Context) error {
	ctx, span := otel.Tracer("telemetry-api").Start(c.Request().Context(), "telemetry.ListProcessActivity")
	defer span.End()

	rows, err := h.reader.ProcessActivity(ctx, queryLimit(c))
	if err != nil {
		h.logger.Error("process activity query failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, rows)
}

func queryLimit(c echo.Context) int32 {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n <= 0 {
		return 0
	}
	return int32(n)
}

// round1 rounds the trust score to one decimal for the wire.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
