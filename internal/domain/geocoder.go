package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat        float64
	Lon        float64
	PlaceName  string
	Confidence float64 // 0.0–1.0 provider confidence score
}

// Found reports whether the provider returned a usable coordinate.
func (r GeocodingResult) Found() bool {
	return r.Lat != 0 || r.Lon != 0
}

// Geocoder resolves country names to centroid coordinates.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, country string) (GeocodingResult, error)
}
