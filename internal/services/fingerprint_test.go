package services

import (
	"testing"

	"route-optimizer-service/internal/domain"
)

func stop(id string, lat, lon float64) domain.Stop {
	return domain.Stop{ID: id, Address: id, Coords: &domain.Coordinates{Lat: lat, Lon: lon}}
}

func TestFingerprintDeterministic(t *testing.T) {
	stops := []domain.Stop{stop("a", 48.8566, 2.3522), stop("b", 51.5074, -0.1278)}

	fp1 := Fingerprint(stops, domain.VehicleCar, domain.MethodShortestDistance, false)
	fp2 := Fingerprint(stops, domain.VehicleCar, domain.MethodShortestDistance, false)
	if fp1 != fp2 {
		t.Fatalf("identical requests produced different fingerprints: %q vs %q", fp1, fp2)
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	stops := []domain.Stop{stop("a", 48.8566, 2.3522), stop("b", 51.5074, -0.1278)}
	base := Fingerprint(stops, domain.VehicleCar, domain.MethodShortestDistance, false)

	if fp := Fingerprint(stops, domain.VehicleTruck, domain.MethodShortestDistance, false); fp == base {
		t.Fatalf("vehicle change must alter fingerprint")
	}
	if fp := Fingerprint(stops, domain.VehicleCar, domain.MethodBalanced, false); fp == base {
		t.Fatalf("method change must alter fingerprint")
	}
	if fp := Fingerprint(stops, domain.VehicleCar, domain.MethodShortestDistance, true); fp == base {
		t.Fatalf("loop change must alter fingerprint")
	}

	moved := []domain.Stop{stop("a", 48.9, 2.3522), stop("b", 51.5074, -0.1278)}
	if fp := Fingerprint(moved, domain.VehicleCar, domain.MethodShortestDistance, false); fp == base {
		t.Fatalf("coordinate change must alter fingerprint")
	}
}

func TestFingerprintRoundsCoordinates(t *testing.T) {
	a := []domain.Stop{stop("a", 48.85661, 2.35220), stop("b", 51.5074, -0.1278)}
	b := []domain.Stop{stop("a", 48.856612, 2.352201), stop("b", 51.5074, -0.1278)}

	fpA := Fingerprint(a, domain.VehicleCar, domain.MethodShortestDistance, false)
	fpB := Fingerprint(b, domain.VehicleCar, domain.MethodShortestDistance, false)
	if fpA != fpB {
		t.Fatalf("sub-1e-4 jitter must not alter fingerprint: %q vs %q", fpA, fpB)
	}
}
