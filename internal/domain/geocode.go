package domain

import (
	"context"
	"log/slog"
)

// Geo sources recorded on enriched records.
const (
	GeoSourceOriginal = "original"
	GeoSourceForward  = "forward"
	GeoSourceFailed   = "failed"
	GeoSourceNotFound = "not_found"
)

// EnrichWithGeocoding fills in missing coordinates by forward-geocoding the
// country name. Records that already have coordinates are left untouched.
// If geocoder is nil the record is returned as-is; lookup failures leave the
// coordinates unknown and mark GeoSource "failed", or "not_found" when the
// geocoder has no match.
func EnrichWithGeocoding(ctx context.Context, rec Record, geocoder Geocoder, logger *slog.Logger) Record {
	if geocoder == nil {
		return rec
	}

	if rec.Geo.Valid() {
		rec.GeoSource = GeoSourceOriginal
		return rec
	}

	result, err := geocoder.ForwardGeocode(ctx, rec.Country)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"country", rec.Country,
			"year", rec.Year,
			"error", err,
		)
		rec.GeoSource = GeoSourceFailed
		return rec
	}
	if !result.Found() {
		logger.Debug("country not found by geocoder", "country", rec.Country, "year", rec.Year)
		rec.GeoSource = GeoSourceNotFound
		return rec
	}

	rec.Geo = Geo{Lat: result.Lat, Lon: result.Lon}
	rec.GeoSource = GeoSourceForward
	return rec
}
