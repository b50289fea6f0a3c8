//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/excel"
	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/kafka"
	"github.com/couchcryptid/energy-dashboard-service/internal/config"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/couchcryptid/energy-dashboard-service/internal/observability"
	"github.com/couchcryptid/energy-dashboard-service/internal/pipeline"
	"github.com/couchcryptid/energy-dashboard-service/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSnapshotTopic = "test-snapshot"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("energy-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func writeDataset(t *testing.T) (string, []domain.Record) {
	t.Helper()
	var recs []domain.Record
	for _, c := range []struct {
		continent, country string
		lat, lon           float64
	}{
		{"Europe", "France", 46.2, 2.2},
		{"Europe", "Germany", 51.2, 10.4},
		{"Asia", "Japan", 36.2, 138.25},
	} {
		for year := 2001; year <= 2004; year++ {
			recs = append(recs, domain.Record{
				Continent: c.continent, Country: c.country, Year: year,
				Geo:        domain.Geo{Lat: c.lat, Lon: c.lon},
				Renewables: float64(year - 1990), Fossil: 100, PctShare: 10,
				Nuclear: 1, Biofuel: 1, Hydro: 1, Solar: 1, Wind: 1, OtherRenewable: math.NaN(),
			})
		}
	}
	path := filepath.Join(t.TempDir(), "dataset.xlsx")
	require.NoError(t, excel.SaveRecords(path, "", recs))
	return path, recs
}

// TestSnapshotEndToEnd loads a workbook through the pipeline with the store as
// primary loader and the Kafka writer as mirror, then reads every snapshot
// message back from the topic.
func TestSnapshotEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSnapshotTopic)

	path, recs := writeDataset(t)
	reader, err := excel.Open(path, "", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaSnapshotTopic: testSnapshotTopic}
	metrics := observability.NewMetricsForTesting()
	writer := kafka.NewWriter(cfg, metrics, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	st := store.New()
	loader := pipeline.NewTee(st, discardLogger(), func(error) { metrics.SnapshotPublishErrors.Inc() }, writer)
	p := pipeline.New(reader, pipeline.NewTransformer(nil, discardLogger()), loader, discardLogger(), metrics, 5)

	require.NoError(t, p.Run(ctx))
	require.NoError(t, st.CheckReadiness(ctx))

	ds, ok := st.Dataset()
	require.True(t, ok)
	assert.Equal(t, len(recs), ds.Len())

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSnapshotTopic,
		GroupID:     fmt.Sprintf("test-snapshot-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	seen := make(map[string]domain.Record)
	for len(seen) < len(recs) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from snapshot topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		_, err = time.Parse(time.RFC3339, headers["loaded_at"])
		assert.NoError(t, err, "loaded_at should be valid RFC3339")

		var rec domain.Record
		require.NoError(t, json.Unmarshal(msg.Value, &rec))
		assert.Equal(t, rec.Continent, headers["continent"])
		assert.Equal(t, kafka.MessageKey(rec), string(msg.Key))
		assert.True(t, math.IsNaN(rec.OtherRenewable))
		seen[string(msg.Key)] = rec
	}

	assert.Contains(t, seen, "Asia|Japan|2003")
	assert.Zero(t, testutil.ToFloat64(metrics.SnapshotPublishErrors))
	assert.InDelta(t, float64(len(recs)), testutil.ToFloat64(metrics.SnapshotPublished), 0)
}

// TestSnapshotBrokerDown verifies that an unreachable broker never keeps the
// dataset from being published.
func TestSnapshotBrokerDown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	path, recs := writeDataset(t)
	reader, err := excel.Open(path, "", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaSnapshotTopic: testSnapshotTopic}
	metrics := observability.NewMetricsForTesting()
	writer := kafka.NewWriter(cfg, metrics, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	var mirrorErrs int
	st := store.New()
	loader := pipeline.NewTee(st, discardLogger(), func(error) { mirrorErrs++ }, writer)
	p := pipeline.New(reader, pipeline.NewTransformer(nil, discardLogger()), loader, discardLogger(), metrics, 50)

	require.NoError(t, p.Run(ctx))
	assert.NoError(t, st.CheckReadiness(ctx))
	assert.Positive(t, mirrorErrs)

	ds, ok := st.Dataset()
	require.True(t, ok)
	assert.Equal(t, len(recs), ds.Len())
}
