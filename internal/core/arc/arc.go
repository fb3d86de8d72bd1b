// Package arc finds the lighthouses lying between two positions on a ring.
package arc

// Walk steps from source toward target one index at a time (step is +1 or
// -1, modulo n) and returns every id visited, target included.
// source == target yields nil, as does a target outside [0, n) or a step
// other than ±1.
func Walk(source, target, n, step int) []int {
	if n <= 0 || target < 0 || target >= n || (step != 1 && step != -1) {
		return nil
	}

	var ids []int
	for cur := mod(source, n); cur != target; {
		cur = mod(cur+step, n)
		ids = append(ids, cur)
	}
	return ids
}

// ShortestBetween returns the ids strictly between source and target on the
// shorter of the two arcs, in walking order. When both arcs have the same
// length the increasing-direction arc wins.
func ShortestBetween(source, target, n int) []int {
	if n <= 0 || source == target {
		return nil
	}
	source, target = mod(source, n), mod(target, n)
	if source == target {
		return nil
	}

	down := Walk(source, target, n, -1)
	up := Walk(source, target, n, 1)

	// Drop the target itself
	down = down[:len(down)-1]
	up = up[:len(up)-1]

	if len(down) < len(up) {
		return down
	}
	return up
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
