// Package ingest runs the feed consumption loop: extract raw events from
// Kafka, parse them into outage records, append to the history window, and
// publish alerts for large outages.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the feed.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw event into an outage record.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutageRecord, error)
}

// Appender receives parsed records, oldest first.
type Appender interface {
	Append(records ...domain.OutageRecord)
	Len() int
}

// Notifier publishes an alert for one outage. Implementations decide the
// transport; the loop only cares whether publication succeeded.
type Notifier interface {
	NotifyNewOutage(ctx context.Context, rec domain.OutageRecord) error
}

// Pipeline orchestrates the extract-parse-store loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	store       Appender
	notifier    Notifier
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool

	batchSize         int
	alertMinCustomers int
}

// New creates a Pipeline with the given stages and observability. Pass a nil
// notifier to disable alert publication.
func New(e BatchExtractor, t Transformer, store Appender, n Notifier, logger *slog.Logger, metrics *observability.Metrics, batchSize, alertMinCustomers int) *Pipeline {
	return &Pipeline{
		extractor:         e,
		transformer:       t,
		store:             store,
		notifier:          n,
		logger:            logger,
		metrics:           metrics,
		batchSize:         batchSize,
		alertMinCustomers: alertMinCustomers,
	}
}

// CheckReadiness returns nil once the loop has stored at least one record,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("ingest has not processed any records yet")
	}
	return nil
}

// Run executes the batch ingest loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("ingest started", "batch_size", p.batchSize, "alert_min_customers", p.alertMinCustomers)
	p.metrics.IngestRunning.Set(1)
	defer p.metrics.IngestRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during Kafka outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("ingest stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-parse-store cycle. Returns false if the loop
// should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.RecordsConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	stored := p.parseAndStore(ctx, rawBatch)

	if stored > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.metrics.HistorySize.Set(float64(p.store.Len()))
		p.ready.Store(true)
	}
	return true
}

// parseAndStore parses each event in the batch, stores the successes,
// publishes alerts for large outages, and commits offsets. Malformed events
// are logged, counted, and committed so they are not redelivered. Returns the
// number of stored records.
func (p *Pipeline) parseAndStore(ctx context.Context, rawBatch []domain.RawEvent) int {
	records := make([]domain.OutageRecord, 0, len(rawBatch))

	for _, raw := range rawBatch {
		rec, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("parse failed, skipping record",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.ParseErrors.Inc()
			p.commitOffset(ctx, raw)
			continue
		}
		records = append(records, rec)
		p.commitOffset(ctx, raw)
	}

	if len(records) == 0 {
		return 0
	}

	p.store.Append(records...)

	for _, rec := range records {
		p.maybeAlert(ctx, rec)
	}
	return len(records)
}

// maybeAlert publishes a new-outage alert when the customer count reaches
// the configured threshold. Publication failures are logged, not retried;
// the record itself is already stored.
func (p *Pipeline) maybeAlert(ctx context.Context, rec domain.OutageRecord) {
	if p.notifier == nil || rec.NumPeople < p.alertMinCustomers {
		return
	}
	if err := p.notifier.NotifyNewOutage(ctx, rec); err != nil {
		p.logger.Warn("alert publish failed", "error", err, "outage_id", rec.ID, "zip", rec.ZipCode)
		return
	}
	p.metrics.AlertsPublished.Inc()
	p.logger.Info("alert published", "outage_id", rec.ID, "zip", rec.ZipCode, "customers", rec.NumPeople)
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the loop should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
