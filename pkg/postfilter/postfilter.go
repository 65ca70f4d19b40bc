// Package postfilter implements the postfilter collaborator: it drops
// components of the accepted-edge forest that are too small to be
// worth keeping, a pass the original source ran after the forest was
// built rather than folding into BoruvkaEngine itself.
package postfilter

import "map_router/pkg/forest"

// ByMinComponentSize returns the subset of edges whose component (by
// node count, counting both endpoints of every edge in that component)
// has at least minSize members. Components are derived purely from
// the edge list via a local union-find; minSize <= 1 returns edges
// unchanged.
func ByMinComponentSize(edges []forest.AcceptedEdge, minSize int) []forest.AcceptedEdge {
	if minSize <= 1 || len(edges) == 0 {
		return edges
	}

	parent := make(map[uint64]uint64)
	var find func(uint64) uint64
	find = func(x uint64) uint64 {
		if _, ok := parent[x]; !ok {
			parent[x] = x
			return x
		}
		root := x
		for parent[root] != root {
			root = parent[root]
		}
		for parent[x] != root {
			next := parent[x]
			parent[x] = root
			x = next
		}
		return root
	}
	union := func(a, b uint64) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, e := range edges {
		union(e.U, e.V)
	}

	members := make(map[uint64]map[uint64]bool)
	for _, e := range edges {
		root := find(e.U)
		set, ok := members[root]
		if !ok {
			set = make(map[uint64]bool)
			members[root] = set
		}
		set[e.U] = true
		set[e.V] = true
	}

	kept := make([]forest.AcceptedEdge, 0, len(edges))
	for _, e := range edges {
		if len(members[find(e.U)]) >= minSize {
			kept = append(kept, e)
		}
	}
	return kept
}
