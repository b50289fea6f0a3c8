package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// Tee loads every batch into primary and then mirrors it to secondary
// loaders. Primary errors are returned; mirror errors are logged and passed
// to onMirrorError so a flaky mirror never blocks the load.
type Tee struct {
	primary       BatchLoader
	mirrors       []BatchLoader
	logger        *slog.Logger
	onMirrorError func(error)
}

// NewTee wires a primary loader with zero or more best-effort mirrors.
func NewTee(primary BatchLoader, logger *slog.Logger, onMirrorError func(error), mirrors ...BatchLoader) *Tee {
	if onMirrorError == nil {
		onMirrorError = func(error) {}
	}
	return &Tee{primary: primary, mirrors: mirrors, logger: logger, onMirrorError: onMirrorError}
}

func (t *Tee) LoadBatch(ctx context.Context, records []domain.Record) error {
	if err := t.primary.LoadBatch(ctx, records); err != nil {
		return err
	}
	for _, m := range t.mirrors {
		if err := m.LoadBatch(ctx, records); err != nil {
			t.logger.Warn("mirror load failed", "error", err, "batch_size", len(records))
			t.onMirrorError(err)
		}
	}
	return nil
}

// Complete forwards completion to the primary loader.
func (t *Tee) Complete(ctx context.Context) error {
	if c, ok := t.primary.(Completer); ok {
		return c.Complete(ctx)
	}
	return nil
}
