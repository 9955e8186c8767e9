package alert

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Threat is the alert message body published per detection.
type Threat struct {
	DeviceID       string    `json:"device_id"`
	Severity       string    `json:"severity"`
	Rules          []string  `json:"rules,omitempty"`
	TrustScore     float64   `json:"trust_score"`
	ChainEscalated bool      `json:"chain_escalated,omitempty"`
	Feedback       string    `json:"feedback"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher emits threats on alerts.<severity>. A nil Publisher is a no-op
// so the ingest path works without a broker. Publish failures are logged,
// never surfaced: alerting must not fail an ingest that already committed.
type Publisher struct {
	client *Client
	log    *zap.Logger
}

func NewPublisher(client *Client, log *zap.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// Publish sends one threat alert. Safe on a nil receiver.
func (p *Publisher) Publish(ctx context.Context, t Threat) {
	if p == nil || p.client == nil {
		return
	}

	data, err := json.Marshal(t)
	if err != nil {
		p.log.Error("marshal alert", zap.Error(err))
		return
	}

	subject := "alerts." + t.Severity
	if _, err := p.client.JS.Publish(subject, data, nats.Context(ctx)); err != nil {
		p.log.Error("publish alert",
			zap.String("subject", subject),
			zap.String("device_id", t.DeviceID),
			zap.Error(err),
		)
		return
	}
	p.log.Info("alert published",
		zap.String("subject", subject),
		zap.String("device_id", t.DeviceID),
	)
}
