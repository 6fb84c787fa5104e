package geocode

import (
	"context"
	"fmt"
	"log"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// CachedGeocoder checks a persistent cache before delegating to the wrapped
// provider. Cache write failures are logged, never surfaced: a missed write
// only costs a repeat lookup later.
type CachedGeocoder struct {
	provider ports.Geocoder
	cache    ports.GeocodeCache
}

func NewCachedGeocoder(provider ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{provider: provider, cache: cache}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	norm := strings.Join(strings.Fields(address), " ")
	if norm == "" {
		return domain.Coordinates{}, false, fmt.Errorf("geocode: address must be non-empty")
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			// Treat a broken cache read as a miss.
			log.Printf("geocode cache read failed addr=%q err=%v", norm, err)
		} else if c, ok := hits[norm]; ok {
			return c, true, nil
		}
	}

	coords, found, err := g.provider.Geocode(ctx, norm)
	if err != nil || !found {
		return domain.Coordinates{}, found, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); err != nil {
			log.Printf("geocode cache write failed addr=%q err=%v", norm, err)
		}
	}

	return coords, true, nil
}
