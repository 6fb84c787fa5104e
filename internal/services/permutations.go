package services

// permutations generates up to limit orderings of the indexes [0, n) in
// lexicographic order. The construction is iterative (explicit candidate
// stack instead of recursion) so large inputs cannot grow the call stack;
// the limit keeps the bounded search time-bounded rather than exhaustive.
func permutations(n, limit int) [][]int {
	if n <= 0 || limit <= 0 {
		return nil
	}

	out := make([][]int, 0, limit)
	perm := make([]int, 0, n)
	used := make([]bool, n)
	// next[d] is the next candidate index to try at depth d.
	next := make([]int, n+1)
	depth := 0

	for {
		if depth == n {
			out = append(out, append([]int(nil), perm...))
			if len(out) == limit {
				return out
			}
			depth--
			last := perm[len(perm)-1]
			perm = perm[:len(perm)-1]
			used[last] = false
			next[depth] = last + 1
			continue
		}

		i := next[depth]
		for i < n && used[i] {
			i++
		}

		if i == n {
			if depth == 0 {
				return out
			}
			next[depth] = 0
			depth--
			last := perm[len(perm)-1]
			perm = perm[:len(perm)-1]
			used[last] = false
			next[depth] = last + 1
			continue
		}

		used[i] = true
		perm = append(perm, i)
		depth++
		next[depth] = 0
	}
}
