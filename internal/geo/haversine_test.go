package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"route-optimizer-service/internal/domain"
)

var (
	paris  = domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
	london = domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
)

func TestDistanceSymmetric(t *testing.T) {
	pairs := []struct {
		a, b domain.Coordinates
	}{
		{paris, london},
		{domain.Coordinates{Lat: -33.8688, Lon: 151.2093}, domain.Coordinates{Lat: 35.6762, Lon: 139.6503}},
		{domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 180}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p.a, p.b), Distance(p.b, p.a), 1e-9)
	}
}

func TestDistanceIdenticalIsZero(t *testing.T) {
	assert.Zero(t, Distance(paris, paris))
	assert.Zero(t, Distance(domain.Coordinates{}, domain.Coordinates{}))
}

func TestDistanceParisLondon(t *testing.T) {
	assert.InDelta(t, 344.0, Distance(paris, london), 5.0)
}
