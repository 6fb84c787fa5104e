package geocode

import (
	"context"
	"errors"
	"fmt"

	maps "googlemaps.github.io/maps"

	"route-optimizer-service/internal/domain"
)

// GoogleGeocoder resolves addresses through the Google Maps Geocoding API.
// Preferred over ORS when a Maps API key is configured.
type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}

	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if address == "" {
		return domain.Coordinates{}, false, errors.New("geocode: address must be non-empty")
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("google geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, false, nil
	}

	loc := results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng}, true, nil
}
