package mapbox

import (
	"context"
	"strings"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/couchcryptid/energy-dashboard-service/internal/observability"
	"github.com/jellydator/ttlcache/v3"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache keyed by
// country. Each country appears once per year in the dataset, so most lookups
// during a load are hits.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *ttlcache.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder. Entries
// never expire; once maxEntries is reached the least recently used country
// is evicted. A non-positive maxEntries leaves the cache unbounded.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	var opts []ttlcache.Option[string, domain.GeocodingResult]
	if maxEntries > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, domain.GeocodingResult](uint64(maxEntries)))
	}
	return &CachedGeocoder{
		inner:   inner,
		cache:   ttlcache.New(opts...),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) ForwardGeocode(ctx context.Context, country string) (domain.GeocodingResult, error) {
	key := cacheKey(country)
	if item := c.cache.Get(key); item != nil {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return item.Value(), nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ForwardGeocode(ctx, country)
	if err != nil {
		return result, err
	}
	// Only cache non-empty results so transient "not found" responses can be retried.
	if result.Found() {
		c.cache.Set(key, result, ttlcache.NoTTL)
	}
	return result, nil
}

// Len returns the number of cached countries.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}

// Cached reports whether a country is currently held in the cache without
// touching its recency.
func (c *CachedGeocoder) Cached(country string) bool {
	return c.cache.Has(cacheKey(country))
}

func cacheKey(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}
