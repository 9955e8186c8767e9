package sender

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/agent/internal/buffer"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// Sender periodically pops a batch from the buffer and POSTs it. Failed
// batches move to the retry queue; the retry queue is drained on passes
// where the main queue is empty, so nothing is lost on transient failure.
type Sender struct {
	queue     *buffer.Queue
	client    APIClient
	device    wire.DeviceIdentity
	interval  time.Duration
	batchSize int
	clock     clockwork.Clock
	log       *zap.Logger
}

func New(
	queue *buffer.Queue,
	client APIClient,
	device wire.DeviceIdentity,
	interval time.Duration,
	batchSize int,
	clock clockwork.Clock,
	log *zap.Logger,
) *Sender {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Sender{
		queue:     queue,
		client:    client,
		device:    device,
		interval:  interval,
		batchSize: batchSize,
		clock:     clock,
		log:       log,
	}
}

// Run drives the send loop until ctx is cancelled.
func (s *Sender) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sender started",
		zap.Duration("interval", s.interval),
		zap.Int("max_batch_size", s.batchSize),
	)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sender stopping")
			return
		case <-ticker.Chan():
			s.Pass(ctx)
		}
	}
}

// Pass performs one send cycle: main queue first, retry queue when the main
// queue is empty.
func (s *Sender) Pass(ctx context.Context) {
	batch, err := s.queue.DequeueBatch(s.batchSize)
	if err != nil {
		s.log.Error("sender: dequeue failed", zap.Error(err))
		return
	}

	fromRetry := false
	if len(batch) == 0 {
		if batch, err = s.queue.DequeueRetryBatch(s.batchSize); err != nil {
			s.log.Error("sender: retry dequeue failed", zap.Error(err))
			return
		}
		fromRetry = true
	}
	if len(batch) == 0 {
		return
	}

	payload, err := wire.NewPayload(s.device, batch, s.clock.Now())
	if err != nil {
		s.log.Error("sender: payload build failed", zap.Error(err))
		return
	}

	if err := s.client.SendPayload(ctx, payload); err != nil {
		if moveErr := s.queue.MoveToRetry(batch); moveErr != nil {
			s.log.Error("sender: failed to park batch on retry queue",
				zap.Int("batch", len(batch)),
				zap.Error(moveErr),
			)
			return
		}
		s.log.Warn("sender: send failed, batch moved to retry",
			zap.Int("batch", len(batch)),
			zap.Bool("was_retry", fromRetry),
			zap.Error(err),
		)
		return
	}

	s.log.Info("sender: batch delivered",
		zap.Int("batch", len(batch)),
		zap.Bool("from_retry", fromRetry),
	)
}
