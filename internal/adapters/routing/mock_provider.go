package routing

import (
	"context"
	"fmt"

	"route-optimizer-service/internal/domain"
)

type MockPair struct {
	From, To string
	Km       float64
	Minutes  float64
}

// MockSegmentProvider serves canned segments keyed by stop id pair.
// Calls counts invocations so tests can assert cache behavior.
type MockSegmentProvider struct {
	m     map[string]MockPair
	Calls int
}

func NewMockSegmentProvider(pairs []MockPair) *MockSegmentProvider {
	m := make(map[string]MockPair, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p
	}
	return &MockSegmentProvider{m: m}
}

func (p *MockSegmentProvider) ResolveSegment(
	ctx context.Context,
	from, to domain.Stop,
	vehicle domain.VehicleType,
) (domain.Segment, error) {
	p.Calls++

	pair, ok := p.m[from.ID+"|"+to.ID]
	if !ok {
		return domain.Segment{}, fmt.Errorf("missing pair %q -> %q", from.ID, to.ID)
	}

	return domain.Segment{
		From:         from,
		To:           to,
		DistanceKm:   pair.Km,
		DurationMin:  pair.Minutes,
		Instructions: []string{"Continue to " + to.Address},
		Geometry:     [][]float64{from.Coords.CoordsToList(), to.Coords.CoordsToList()},
	}, nil
}

// FailingSegmentProvider fails every call; used to exercise fallback tiers.
type FailingSegmentProvider struct {
	Err   error
	Calls int
}

func (p *FailingSegmentProvider) ResolveSegment(
	ctx context.Context,
	from, to domain.Stop,
	vehicle domain.VehicleType,
) (domain.Segment, error) {
	p.Calls++
	return domain.Segment{}, p.Err
}
