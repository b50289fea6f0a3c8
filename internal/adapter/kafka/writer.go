package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/energy-dashboard-service/internal/config"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/couchcryptid/energy-dashboard-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes loaded records to the snapshot topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSnapshotTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// LoadBatch serializes and publishes a batch of records in a single
// WriteMessages call. Every message in the batch carries the same loaded_at
// stamp.
func (w *Writer) LoadBatch(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	loadedAt := domain.Now()
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], loadedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish snapshot batch: %w", err)
	}
	w.metrics.SnapshotPublished.Add(float64(len(msgs)))
	w.logger.Debug("snapshot batch published", "topic", w.writer.Topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// MessageKey identifies a record on the snapshot topic.
func MessageKey(rec domain.Record) string {
	return strings.Join([]string{rec.Continent, rec.Country, strconv.Itoa(rec.Year)}, "|")
}

// serializeToMessage marshals a Record into a Kafka message.
func serializeToMessage(rec domain.Record, loadedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(MessageKey(rec)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "continent", Value: []byte(rec.Continent)},
			{Key: "loaded_at", Value: []byte(loadedAt.Format(time.RFC3339))},
		},
	}, nil
}
