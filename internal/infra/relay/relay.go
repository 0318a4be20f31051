// Package relay drains the notification_jobs outbox into Kafka.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"therapy-booking/internal/infra/repository"
	sqlc "therapy-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
)

// MaxAttempts is how many publish failures a job survives before it is parked as failed.
const MaxAttempts = 5

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type JobStore interface {
	ClaimQueuedJobs(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int) ([]sqlc.NotificationJobs, error)
	UpdateJobStatus(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, status string, lastError *string) error
}

type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

type Relay struct {
	db        TxStarter
	store     JobStore
	writer    MessageWriter
	pollEvery time.Duration
	batchSize int
	now       func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

// NewKafkaWriter returns nil when no brokers are configured, which disables the relay.
// Topics come from each job, so the writer itself has none.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func New(db TxStarter, store JobStore, writer MessageWriter, cfg Config) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Relay{
		db:        db,
		store:     store,
		writer:    writer,
		pollEvery: cfg.PollInterval,
		batchSize: cfg.BatchSize,
		now:       time.Now,
	}
}

// Start runs the poll loop in the background until Stop is called.
func (r *Relay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writer == nil {
		slog.Warn("notification relay disabled (no kafka brokers configured)")
		return
	}
	if r.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go func() {
		defer close(r.done)
		r.Run(ctx)
	}()
}

func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.writer.Close()
}

func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.PublishBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("notification relay batch failed", "error", err.Error())
			}
		}
	}
}

// PublishBatch sends one batch of due jobs and reports how many were delivered.
// A job that fails to publish stays queued until it has failed MaxAttempts times.
func (r *Relay) PublishBatch(ctx context.Context) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	jobs, err := r.store.ClaimQueuedJobs(ctx, tx, r.now(), r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return 0, tx.Commit(ctx)
	}

	sent := 0
	for _, job := range jobs {
		status := repository.JobStatusSent
		var lastErr *string

		if err := r.writer.WriteMessages(ctx, toMessage(job)); err != nil {
			msg := err.Error()
			lastErr = &msg
			status = repository.JobStatusQueued
			if job.Attempts+1 >= MaxAttempts {
				status = repository.JobStatusFailed
			}
			slog.Warn("notification publish failed",
				"job_id", job.ID.String(),
				"topic", job.Topic,
				"attempt", job.Attempts+1,
				"error", msg)
		} else {
			sent++
		}

		if err := r.store.UpdateJobStatus(ctx, tx, job.ID, status, lastErr); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return sent, nil
}

func toMessage(job sqlc.NotificationJobs) kafka.Message {
	return kafka.Message{
		Topic: job.Topic,
		Key:   []byte(job.ID.String()),
		Value: job.Payload,
		Headers: []kafka.Header{
			{Key: "job_id", Value: []byte(job.ID.String())},
			{Key: "kind", Value: []byte(job.Kind)},
		},
	}
}
