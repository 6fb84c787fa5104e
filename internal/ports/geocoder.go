package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Contract for resolving a free-text address to its single best-match
// coordinates. found is false when the provider has no match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (coords domain.Coordinates, found bool, err error)
}

// Contract for a persistent address -> coordinates cache.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
