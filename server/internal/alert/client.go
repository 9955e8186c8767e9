// Package alert publishes detection alerts to NATS JetStream so downstream
// responders (SOAR hooks, paging, dashboards) can consume them without
// polling the API.
package alert

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	// StreamSecurityAlerts is the durable stream that captures all alerts.
	StreamSecurityAlerts = "SECURITY_ALERTS"
	// SubjectAlerts is the wildcard subject hierarchy for alert messages.
	SubjectAlerts = "alerts.>"
)

// Client wraps a NATS connection and its JetStream context.
type Client struct {
	Conn *nats.Conn
	JS   nats.JetStreamContext
	Log  *zap.Logger
}

// NewClient connects to NATS and initialises a JetStream context.
func NewClient(url string, logger *zap.Logger) (*Client, error) {
	nc, err := nats.Connect(url, nats.RetryOnFailedConnect(true), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	logger.Info("NATS JetStream connected", zap.String("url", url))
	return &Client{Conn: nc, JS: js, Log: logger}, nil
}

// ProvisionStreams idempotently creates the alert stream.
func (c *Client) ProvisionStreams() error {
	_, err := c.JS.StreamInfo(StreamSecurityAlerts)
	if err == nil {
		c.Log.Info("NATS stream exists", zap.String("stream", StreamSecurityAlerts))
		return nil
	}

	if err != nats.ErrStreamNotFound {
		return fmt.Errorf("failed to check stream info: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamSecurityAlerts,
		Subjects:  []string{SubjectAlerts},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
	}

	if _, err := c.JS.AddStream(cfg); err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	c.Log.Info("NATS stream provisioned", zap.String("stream", StreamSecurityAlerts))
	return nil
}

// Close drains and closes the underlying NATS connection. Drain flushes
// pending publish acknowledgments before closing.
func (c *Client) Close() {
	if c.Conn != nil {
		if err := c.Conn.Drain(); err != nil {
			c.Conn.Close()
		}
	}
}
