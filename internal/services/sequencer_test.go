package services

import (
	"context"
	"testing"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

func lockedStop(id string, lat, lon float64, pos int) domain.Stop {
	s := stop(id, lat, lon)
	s.Locked = true
	s.Position = pos
	return s
}

func TestSequenceAllLockedKeepsPositionOrder(t *testing.T) {
	s := NewSequencer(DefaultSequencerConfig(), nil)

	stops := []domain.Stop{
		lockedStop("c", 48.3, 2.3, 2),
		lockedStop("a", 48.1, 2.1, 0),
		lockedStop("b", 48.2, 2.2, 1),
	}

	ordered, algorithm, err := s.Sequence(context.Background(), stops, domain.MethodShortestDistance, false, domain.VehicleCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algorithm != AlgorithmLockedOrder {
		t.Fatalf("algorithm = %q, want %q", algorithm, AlgorithmLockedOrder)
	}
	for i, want := range []string{"a", "b", "c"} {
		if ordered[i].ID != want {
			t.Fatalf("position %d = %q, want %q", i, ordered[i].ID, want)
		}
	}
}

func TestSequenceRejectsMissingCoordinates(t *testing.T) {
	s := NewSequencer(DefaultSequencerConfig(), nil)

	stops := []domain.Stop{stop("a", 48, 2), {ID: "b"}}
	if _, _, err := s.Sequence(context.Background(), stops, domain.MethodShortestDistance, false, domain.VehicleCar); err == nil {
		t.Fatalf("expected error for stop without coordinates")
	}
}

func TestSequenceBoundedSearchBeatsBadOrder(t *testing.T) {
	s := NewSequencer(DefaultSequencerConfig(), nil)

	// Four stops on a line, presented in a zigzag order.
	stops := []domain.Stop{
		stop("a", 48.0, 2.0),
		stop("c", 48.2, 2.0),
		stop("b", 48.1, 2.0),
		stop("d", 48.3, 2.0),
	}

	ordered, algorithm, err := s.Sequence(context.Background(), stops, domain.MethodShortestDistance, false, domain.VehicleCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algorithm != AlgorithmBoundedSearch {
		t.Fatalf("algorithm = %q, want %q", algorithm, AlgorithmBoundedSearch)
	}

	if got := pathDistance(ordered); got > pathDistance(stops) {
		t.Fatalf("optimized path %.3f km longer than input order %.3f km", got, pathDistance(stops))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if ordered[i].ID != want {
			t.Fatalf("position %d = %q, want %q", i, ordered[i].ID, want)
		}
	}
}

// Convex quadrilateral presented crossed: the loop heuristics must find a
// tour at least as short as the sequential (crossing) one.
func TestSequenceLoopQuadrilateral(t *testing.T) {
	s := NewSequencer(DefaultSequencerConfig(), nil)

	stops := []domain.Stop{
		stop("sw", 48.0, 2.0),
		stop("ne", 48.1, 2.1),
		stop("se", 48.0, 2.1),
		stop("nw", 48.1, 2.0),
	}

	ordered, algorithm, err := s.Sequence(context.Background(), stops, domain.MethodShortestDistance, true, domain.VehicleCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algorithm != AlgorithmLoopHeuristic {
		t.Fatalf("algorithm = %q, want %q", algorithm, AlgorithmLoopHeuristic)
	}
	if len(ordered) != 4 {
		t.Fatalf("got %d stops, want 4", len(ordered))
	}

	if got, seq := loopDistance(ordered), loopDistance(stops); got > seq {
		t.Fatalf("loop tour %.3f km worse than sequential %.3f km", got, seq)
	}
}

func TestSequenceNearestNeighborForLargeSets(t *testing.T) {
	s := NewSequencer(DefaultSequencerConfig(), nil)

	stops := make([]domain.Stop, 0, 10)
	for i := 0; i < 10; i++ {
		stops = append(stops, stop(string(rune('a'+i)), 48.0+float64(i%5)*0.1, 2.0+float64(i/5)*0.1))
	}

	ordered, algorithm, err := s.Sequence(context.Background(), stops, domain.MethodFastestTime, false, domain.VehicleCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algorithm != AlgorithmNearestNeighbor {
		t.Fatalf("algorithm = %q, want %q", algorithm, AlgorithmNearestNeighbor)
	}
	if len(ordered) != 10 {
		t.Fatalf("got %d stops, want 10", len(ordered))
	}
	if ordered[0].ID != "a" {
		t.Fatalf("start stop must stay fixed, got %q", ordered[0].ID)
	}
}

func TestSequenceInterleavesLockedStops(t *testing.T) {
	s := NewSequencer(DefaultSequencerConfig(), nil)

	stops := []domain.Stop{
		lockedStop("hub", 48.05, 2.05, 0),
		stop("x", 48.2, 2.0),
		stop("y", 48.1, 2.0),
		stop("z", 48.3, 2.0),
	}

	ordered, _, err := s.Sequence(context.Background(), stops, domain.MethodShortestDistance, false, domain.VehicleCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ordered) != 4 {
		t.Fatalf("got %d stops, want 4", len(ordered))
	}
	if ordered[0].ID != "hub" {
		t.Fatalf("locked stop must stay at position 0, got %q", ordered[0].ID)
	}

	seen := map[string]bool{}
	for _, st := range ordered {
		seen[st.ID] = true
	}
	for _, id := range []string{"hub", "x", "y", "z"} {
		if !seen[id] {
			t.Fatalf("stop %q missing from output", id)
		}
	}
}

func TestSequenceLockedMiddlePosition(t *testing.T) {
	s := NewSequencer(DefaultSequencerConfig(), nil)

	stops := []domain.Stop{
		stop("x", 48.2, 2.0),
		lockedStop("mid", 48.05, 2.05, 2),
		stop("y", 48.1, 2.0),
		stop("z", 48.3, 2.0),
	}

	ordered, _, err := s.Sequence(context.Background(), stops, domain.MethodBalanced, false, domain.VehicleCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ordered[2].ID != "mid" {
		t.Fatalf("locked stop at declared index 2, got order %v", ids(ordered))
	}
}

func ids(stops []domain.Stop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.ID
	}
	return out
}

func pathDistance(stops []domain.Stop) float64 {
	total := 0.0
	for i := 0; i+1 < len(stops); i++ {
		total += geo.Distance(*stops[i].Coords, *stops[i+1].Coords)
	}
	return total
}

func loopDistance(stops []domain.Stop) float64 {
	return pathDistance(stops) + geo.Distance(*stops[len(stops)-1].Coords, *stops[0].Coords)
}
