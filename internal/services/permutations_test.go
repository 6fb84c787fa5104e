package services

import (
	"fmt"
	"testing"
)

func TestPermutationsComplete(t *testing.T) {
	perms := permutations(3, 20)
	if len(perms) != 6 {
		t.Fatalf("got %d permutations of 3, want 6", len(perms))
	}

	seen := make(map[string]struct{})
	for _, p := range perms {
		if len(p) != 3 {
			t.Fatalf("permutation %v has wrong length", p)
		}
		key := fmt.Sprint(p)
		if _, ok := seen[key]; ok {
			t.Fatalf("duplicate permutation %v", p)
		}
		seen[key] = struct{}{}
	}
}

func TestPermutationsCapped(t *testing.T) {
	perms := permutations(5, 20)
	if len(perms) != 20 {
		t.Fatalf("got %d permutations, want cap of 20", len(perms))
	}
}

func TestPermutationsEdgeCases(t *testing.T) {
	if got := permutations(0, 10); got != nil {
		t.Fatalf("n=0 should yield nil, got %v", got)
	}
	if got := permutations(3, 0); got != nil {
		t.Fatalf("limit=0 should yield nil, got %v", got)
	}
	if got := permutations(1, 10); len(got) != 1 || len(got[0]) != 1 {
		t.Fatalf("n=1 should yield a single identity ordering, got %v", got)
	}
}
