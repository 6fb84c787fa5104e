package services

import (
	"context"
	"errors"
	"sort"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
)

// SequencerConfig holds the tunable constants of the ordering heuristics.
// The speed tiers and the balanced weights are inherited defaults, not
// physically derived; treat them as tuning knobs.
type SequencerConfig struct {
	// BoundedSearchMax is the largest unlocked-stop count handled by the
	// bounded permutation search; larger sets use nearest-neighbor only.
	BoundedSearchMax int
	// PermutationMax is the largest unlocked-stop count for which full
	// permutations are enumerated on top of the nearest-neighbor baseline.
	PermutationMax int
	// PermutationLimit caps how many permutations are scored.
	PermutationLimit int

	// BaseSpeedKmh anchors the per-step travel time estimate.
	BaseSpeedKmh float64
	// Speed multipliers by leg length: long legs run faster (highways),
	// short legs slower (city streets).
	LongLegMultiplier  float64
	MidLegMultiplier   float64
	ShortLegMultiplier float64
	LongLegAboveKm     float64
	MidLegAboveKm      float64

	// Weights of the balanced method's distance/time blend.
	DistanceWeight float64
	TimeWeight     float64

	// AlternateSecondTries bounds the alternate-second loop strategy.
	AlternateSecondTries int
}

func DefaultSequencerConfig() SequencerConfig {
	return SequencerConfig{
		BoundedSearchMax:     8,
		PermutationMax:       6,
		PermutationLimit:     20,
		BaseSpeedKmh:         50,
		LongLegMultiplier:    1.3,
		MidLegMultiplier:     1.1,
		ShortLegMultiplier:   0.8,
		LongLegAboveKm:       10,
		MidLegAboveKm:        5,
		DistanceWeight:       0.4,
		TimeWeight:           0.6,
		AlternateSecondTries: 3,
	}
}

// Algorithm tags reported in response metadata.
const (
	AlgorithmLockedOrder     = "locked_order"
	AlgorithmBoundedSearch   = "bounded_search"
	AlgorithmNearestNeighbor = "nearest_neighbor"
	AlgorithmLoopHeuristic   = "loop_heuristic"
)

// Sequencer orders stops into a travel sequence that approximately
// minimizes the chosen cost. Locked stops keep their declared positions;
// only unlocked stops are reordered.
type Sequencer struct {
	cfg SequencerConfig

	// resolver scores whole-tour candidates on real travel cost when set;
	// per-step greedy selection always uses the closed-form estimate.
	resolver ports.SegmentProvider
}

func NewSequencer(cfg SequencerConfig, resolver ports.SegmentProvider) *Sequencer {
	return &Sequencer{cfg: cfg, resolver: resolver}
}

// Sequence returns the optimized stop order and the tag of the strategy
// that produced it. Every stop must carry coordinates.
func (s *Sequencer) Sequence(
	ctx context.Context,
	stops []domain.Stop,
	method domain.Method,
	isLoop bool,
	vehicle domain.VehicleType,
) ([]domain.Stop, string, error) {
	for _, st := range stops {
		if !st.HasCoords() {
			return nil, "", errors.New("sequence: all stops must have coordinates")
		}
	}

	locked := make([]domain.Stop, 0)
	unlocked := make([]domain.Stop, 0, len(stops))
	for _, st := range stops {
		if st.Locked {
			locked = append(locked, st)
		} else {
			unlocked = append(unlocked, st)
		}
	}

	if len(unlocked) == 0 {
		all := append([]domain.Stop(nil), stops...)
		sort.SliceStable(all, func(i, j int) bool { return all[i].Position < all[j].Position })
		return all, AlgorithmLockedOrder, nil
	}

	var ordered []domain.Stop
	var algorithm string

	switch {
	case isLoop && len(unlocked) >= 3:
		ordered = s.loopOrder(ctx, unlocked, method, vehicle)
		algorithm = AlgorithmLoopHeuristic
	case len(unlocked) <= s.cfg.BoundedSearchMax:
		ordered = s.boundedSearch(ctx, unlocked, method, vehicle)
		algorithm = AlgorithmBoundedSearch
	default:
		ordered = s.nearestNeighborOrder(unlocked, method)
		algorithm = AlgorithmNearestNeighbor
	}

	return interleaveLocked(ordered, locked), algorithm, nil
}

// estimateMinutes converts a leg distance to a travel time estimate using
// the distance-tiered speed model.
func (s *Sequencer) estimateMinutes(distKm float64) float64 {
	mult := s.cfg.ShortLegMultiplier
	if distKm > s.cfg.LongLegAboveKm {
		mult = s.cfg.LongLegMultiplier
	} else if distKm > s.cfg.MidLegAboveKm {
		mult = s.cfg.MidLegMultiplier
	}
	return distKm / (s.cfg.BaseSpeedKmh * mult) * 60
}

// stepCost scores a single leg with the closed-form geodesic estimate.
func (s *Sequencer) stepCost(from, to domain.Stop, method domain.Method) float64 {
	dist := geo.Distance(*from.Coords, *to.Coords)
	switch method {
	case domain.MethodFastestTime:
		return s.estimateMinutes(dist)
	case domain.MethodBalanced:
		return s.cfg.DistanceWeight*dist + s.cfg.TimeWeight*s.estimateMinutes(dist)
	default:
		return dist
	}
}

// edgeCost scores a leg on real travel cost through the resolver when one
// is configured and the method is not plain distance; any resolver error
// is recovered locally by falling back to the estimate.
func (s *Sequencer) edgeCost(ctx context.Context, from, to domain.Stop, method domain.Method, vehicle domain.VehicleType) float64 {
	if s.resolver == nil || method == domain.MethodShortestDistance {
		return s.stepCost(from, to, method)
	}

	seg, err := s.resolver.ResolveSegment(ctx, from, to, vehicle)
	if err != nil {
		return s.stepCost(from, to, method)
	}

	switch method {
	case domain.MethodFastestTime:
		return seg.DurationMin
	case domain.MethodBalanced:
		return s.cfg.DistanceWeight*seg.DistanceKm + s.cfg.TimeWeight*seg.DurationMin
	default:
		return seg.DistanceKm
	}
}

// pathScore sums edge costs over consecutive stops, without a return edge.
func (s *Sequencer) pathScore(ctx context.Context, order []domain.Stop, method domain.Method, vehicle domain.VehicleType) float64 {
	total := 0.0
	for i := 0; i+1 < len(order); i++ {
		total += s.edgeCost(ctx, order[i], order[i+1], method, vehicle)
	}
	return total
}

// loopScore is pathScore plus the wrap-around edge back to the start.
func (s *Sequencer) loopScore(ctx context.Context, order []domain.Stop, method domain.Method, vehicle domain.VehicleType) float64 {
	if len(order) < 2 {
		return 0
	}
	return s.pathScore(ctx, order, method, vehicle) +
		s.edgeCost(ctx, order[len(order)-1], order[0], method, vehicle)
}

// nearestNeighborOrder greedily appends the unvisited stop with the lowest
// per-step cost against the current last stop. The first stop is fixed.
func (s *Sequencer) nearestNeighborOrder(stops []domain.Stop, method domain.Method) []domain.Stop {
	if len(stops) <= 2 {
		return append([]domain.Stop(nil), stops...)
	}

	order := make([]domain.Stop, 0, len(stops))
	order = append(order, stops[0])
	remaining := append([]domain.Stop(nil), stops[1:]...)

	current := stops[0]
	for len(remaining) > 0 {
		best := -1
		bestCost := 0.0
		for i, cand := range remaining {
			cost := s.stepCost(current, cand, method)
			// Tie-breaker keeps selection deterministic.
			if best == -1 || cost < bestCost || (cost == bestCost && cand.ID < remaining[best].ID) {
				best = i
				bestCost = cost
			}
		}

		current = remaining[best]
		order = append(order, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return order
}

// boundedSearch improves on the nearest-neighbor baseline by scoring a
// capped number of full permutations when the set is small enough. It is a
// time-bounded improvement search, not an exhaustive solver.
func (s *Sequencer) boundedSearch(ctx context.Context, stops []domain.Stop, method domain.Method, vehicle domain.VehicleType) []domain.Stop {
	best := s.nearestNeighborOrder(stops, method)
	bestScore := s.pathScore(ctx, best, method, vehicle)

	if len(stops) > s.cfg.PermutationMax {
		return best
	}

	for _, perm := range permutations(len(stops), s.cfg.PermutationLimit) {
		cand := make([]domain.Stop, len(stops))
		for i, idx := range perm {
			cand[i] = stops[idx]
		}
		if score := s.pathScore(ctx, cand, method, vehicle); score < bestScore {
			best = cand
			bestScore = score
		}
	}

	return best
}

// loopOrder evaluates several whole-tour strategies and keeps the order
// with the lowest complete-loop score. Ties resolve to the first strategy
// evaluated.
func (s *Sequencer) loopOrder(ctx context.Context, stops []domain.Stop, method domain.Method, vehicle domain.VehicleType) []domain.Stop {
	candidates := make([][]domain.Stop, 0, 2+s.cfg.AlternateSecondTries)

	candidates = append(candidates, s.nearestFirstLoop(stops, method))
	candidates = append(candidates, s.farthestFirstLoop(stops, method))

	// Force each of the first few stops into second position: greedy
	// placement sometimes buries an awkward stop where it wrecks the tour.
	tries := s.cfg.AlternateSecondTries
	if tries > len(stops)-1 {
		tries = len(stops) - 1
	}
	for i := 1; i <= tries; i++ {
		forced := make([]domain.Stop, 0, len(stops))
		forced = append(forced, stops[0], stops[i])
		rest := make([]domain.Stop, 0, len(stops)-2)
		for j := 1; j < len(stops); j++ {
			if j != i {
				rest = append(rest, stops[j])
			}
		}
		candidates = append(candidates, s.completeGreedy(forced, rest, method))
	}

	best := candidates[0]
	bestScore := s.loopScore(ctx, best, method, vehicle)
	for _, cand := range candidates[1:] {
		if score := s.loopScore(ctx, cand, method, vehicle); score < bestScore {
			best = cand
			bestScore = score
		}
	}

	return best
}

// nearestFirstLoop is nearest-neighbor from the fixed start, except the
// final placement also scores the return-to-start edge: when two stops
// remain, both completions are evaluated in full.
func (s *Sequencer) nearestFirstLoop(stops []domain.Stop, method domain.Method) []domain.Stop {
	order := []domain.Stop{stops[0]}
	remaining := append([]domain.Stop(nil), stops[1:]...)
	start := stops[0]
	current := start

	for len(remaining) > 0 {
		if len(remaining) == 2 {
			a, b := remaining[0], remaining[1]
			costAB := s.stepCost(current, a, method) + s.stepCost(a, b, method) + s.stepCost(b, start, method)
			costBA := s.stepCost(current, b, method) + s.stepCost(b, a, method) + s.stepCost(a, start, method)
			if costBA < costAB {
				a, b = b, a
			}
			order = append(order, a, b)
			break
		}

		best := -1
		bestCost := 0.0
		for i, cand := range remaining {
			cost := s.stepCost(current, cand, method)
			if best == -1 || cost < bestCost || (cost == bestCost && cand.ID < remaining[best].ID) {
				best = i
				bestCost = cost
			}
		}

		current = remaining[best]
		order = append(order, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return order
}

// farthestFirstLoop resolves the most expensive edge up front: the stop
// farthest from the start is visited second, then the remainder greedily.
func (s *Sequencer) farthestFirstLoop(stops []domain.Stop, method domain.Method) []domain.Stop {
	start := stops[0]

	farthest := 1
	farthestCost := s.stepCost(start, stops[1], method)
	for i := 2; i < len(stops); i++ {
		if cost := s.stepCost(start, stops[i], method); cost > farthestCost {
			farthest = i
			farthestCost = cost
		}
	}

	head := []domain.Stop{start, stops[farthest]}
	rest := make([]domain.Stop, 0, len(stops)-2)
	for i := 1; i < len(stops); i++ {
		if i != farthest {
			rest = append(rest, stops[i])
		}
	}

	return s.completeGreedy(head, rest, method)
}

// completeGreedy extends a fixed head with the remaining stops by
// nearest-neighbor selection.
func (s *Sequencer) completeGreedy(head, remaining []domain.Stop, method domain.Method) []domain.Stop {
	order := append([]domain.Stop(nil), head...)
	rest := append([]domain.Stop(nil), remaining...)
	current := order[len(order)-1]

	for len(rest) > 0 {
		best := -1
		bestCost := 0.0
		for i, cand := range rest {
			cost := s.stepCost(current, cand, method)
			if best == -1 || cost < bestCost || (cost == bestCost && cand.ID < rest[best].ID) {
				best = i
				bestCost = cost
			}
		}

		current = rest[best]
		order = append(order, current)
		rest = append(rest[:best], rest[best+1:]...)
	}

	return order
}

// interleaveLocked re-inserts locked stops at their declared position
// indexes and fills the remaining slots with the optimized order. Position
// collisions and out-of-range indexes shift forward to the next free slot.
func interleaveLocked(ordered, locked []domain.Stop) []domain.Stop {
	if len(locked) == 0 {
		return ordered
	}

	n := len(ordered) + len(locked)
	out := make([]*domain.Stop, n)

	byPos := append([]domain.Stop(nil), locked...)
	sort.SliceStable(byPos, func(i, j int) bool { return byPos[i].Position < byPos[j].Position })

	for i := range byPos {
		pos := byPos[i].Position
		if pos < 0 {
			pos = 0
		}
		if pos >= n {
			pos = n - 1
		}
		for out[pos] != nil {
			pos = (pos + 1) % n
		}
		out[pos] = &byPos[i]
	}

	next := 0
	result := make([]domain.Stop, 0, n)
	for i := 0; i < n; i++ {
		if out[i] != nil {
			result = append(result, *out[i])
			continue
		}
		result = append(result, ordered[next])
		next++
	}

	return result
}
