package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/gridsight/outage-analytics/internal/alert"
	"github.com/gridsight/outage-analytics/internal/config"
	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/geo"
)

// Writer publishes alert payloads to the alert topic.
// It implements ingest.Notifier.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured alert topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// NotifyNewOutage publishes a new-outage alert for the record. The recipient
// field is left for the downstream gateway, which fans out to subscribers of
// the affected zip.
func (w *Writer) NotifyNewOutage(ctx context.Context, rec domain.OutageRecord) error {
	data := alert.FromRecord(rec, geo.NeighborhoodName(rec.ZipCode))
	payload := alert.NewPayload("", alert.TypeNewOutage, data)

	msg, err := serializeAlert(payload)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeAlert marshals an alert payload into a Kafka message, keyed by
// zip so one area's alerts stay ordered on a single partition.
func serializeAlert(payload alert.Payload) (kafkago.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert payload: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(payload.ZipCode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_type", Value: []byte(payload.AlertType)},
			{Key: "published_at", Value: []byte(payload.Timestamp)},
		},
	}, nil
}
