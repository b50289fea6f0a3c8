package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// RecordTransformer implements Transformer using the domain parser with
// optional geocoding enrichment.
type RecordTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a RecordTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *RecordTransformer {
	return &RecordTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *RecordTransformer) Transform(ctx context.Context, raw domain.RawRow) (domain.Record, error) {
	rec, err := domain.ParseRawRow(raw)
	if err != nil {
		return domain.Record{}, err
	}
	return domain.EnrichWithGeocoding(ctx, rec, t.geocoder, t.logger), nil
}
