package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/couchcryptid/energy-dashboard-service/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// BatchExtractor reads up to batchSize raw rows from the source. It returns
// io.EOF once the source is exhausted.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawRow, error)
}

// Transformer converts a raw row into a record.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawRow) (domain.Record, error)
}

// BatchLoader writes multiple records to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []domain.Record) error
}

// SkipCounter is implemented by extractors that drop rows they cannot
// decode. Those rows count as parse errors.
type SkipCounter interface {
	Skipped() int
}

// Completer is implemented by loaders that need a signal once every row
// has been loaded.
type Completer interface {
	Complete(ctx context.Context) error
}

// Pipeline orchestrates the one-shot extract-transform-load of the dataset.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// Run loads the whole source, then signals completion to the loader. It
// returns nil when the context is cancelled before the load finishes; the
// loader is then never completed.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("dataset load started", "batch_size", p.batchSize)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second
	loaded := 0

	for {
		if ctx.Err() != nil {
			p.logger.Info("dataset load stopping", "reason", ctx.Err())
			return nil
		}

		rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		eof := errors.Is(err, io.EOF)

		// Rows returned alongside an error have already been consumed from
		// the source and are loaded before retrying.
		if len(rawBatch) > 0 {
			p.metrics.RowsRead.Add(float64(len(rawBatch)))
			n, ok := p.transformAndLoad(ctx, rawBatch, &backoff, maxBackoff)
			if !ok {
				return nil
			}
			loaded += n
		}

		if eof {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("extract batch failed", "error", err, "partial_rows", len(rawBatch))
			if !p.backoffOrStop(ctx, &backoff, maxBackoff) {
				return nil
			}
			continue
		}
		backoff = 200 * time.Millisecond
	}

	if c, ok := p.loader.(Completer); ok {
		if err := c.Complete(ctx); err != nil {
			return err
		}
	}

	if sc, ok := p.extractor.(SkipCounter); ok && sc.Skipped() > 0 {
		p.metrics.ParseErrors.Add(float64(sc.Skipped()))
		p.logger.Warn("rows skipped by extractor", "count", sc.Skipped())
	}
	p.metrics.DatasetLoaded.Set(1)
	p.metrics.DatasetRows.Set(float64(loaded))
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("dataset load complete", "records", loaded, "duration", time.Since(start))
	return nil
}

// transformAndLoad transforms each row in the batch and loads the successes,
// retrying the load with backoff. Returns the number of loaded records and
// false if the pipeline should stop.
func (p *Pipeline) transformAndLoad(ctx context.Context, rawBatch []domain.RawRow, backoff *time.Duration, maxBackoff time.Duration) (int, bool) {
	out := make([]domain.Record, 0, len(rawBatch))
	for _, raw := range rawBatch {
		rec, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("transform failed, skipping row",
				"error", err,
				"sheet", raw.Sheet,
				"line", raw.Line,
			)
			p.metrics.ParseErrors.Inc()
			continue
		}
		out = append(out, rec)
	}

	if len(out) == 0 {
		return 0, true
	}

	for {
		err := p.loader.LoadBatch(ctx, out)
		if err == nil {
			break
		}
		p.logger.Error("load batch failed", "error", err, "batch_size", len(out))
		if !p.backoffOrStop(ctx, backoff, maxBackoff) {
			return 0, false
		}
	}

	p.metrics.RowsLoaded.Add(float64(len(out)))
	return len(out), true
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !retry.SleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}
