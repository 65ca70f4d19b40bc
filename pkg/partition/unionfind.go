// Package partition implements a union-find extended per the forest
// builder's needs: each root additionally carries a running budget, a
// member list, and a mergeable priority queue of candidate outgoing
// edges (spec §4.3). It generalises pkg/graph's plain UnionFind
// (path compression, weighted union over a dense uint32 range) to the
// sparse, satellite-bearing structure the core engine needs; the two
// are kept separate because pkg/graph's UnionFind answers a simpler
// question (largest connected component of a raw ingested graph)
// that does not need a budget ledger or a queue.
package partition

import "math"

// satellite holds per-root state, stored in a map keyed by the
// *current* root only. The source aliases child and queue containers
// across both roots after a union; this instead deletes the absorbed
// root's entry, so every caller's lookup goes through Find and there
// is nothing left to alias.
type satellite struct {
	budget  float64
	members []uint64
	queue   *Queue
}

// Partition is a disjoint-set over uint64 node ids with path
// compression, weighted (by subtree size) union, and per-root
// satellite state.
type Partition struct {
	parent map[uint64]uint64
	weight map[uint64]uint32
	sat    map[uint64]*satellite
	// budgetOf supplies a node's standalone budget the first time it is
	// seen; nodes are registered lazily on first Find, per spec §4.3.
	budgetOf func(id uint64) float64
}

// New returns an empty Partition. budgetOf is consulted the first
// time a previously-unknown node id is looked up, to seed its
// singleton component's budget.
func New(budgetOf func(id uint64) float64) *Partition {
	return &Partition{
		parent:   make(map[uint64]uint64),
		weight:   make(map[uint64]uint32),
		sat:      make(map[uint64]*satellite),
		budgetOf: budgetOf,
	}
}

// Find returns the representative of the set containing x, with path
// compression. Lazily registers unknown x as a singleton.
func (p *Partition) Find(x uint64) uint64 {
	if _, ok := p.parent[x]; !ok {
		p.parent[x] = x
		p.weight[x] = 1
		p.sat[x] = &satellite{
			budget:  p.budgetOf(x),
			members: []uint64{x},
			queue:   NewQueue(),
		}
		return x
	}

	// Path compression: point every node on the path directly at the root.
	root := x
	for p.parent[root] != root {
		root = p.parent[root]
	}
	for p.parent[x] != root {
		next := p.parent[x]
		p.parent[x] = root
		x = next
	}
	return root
}

// Union merges the components containing a and b across an edge of
// length d. The heavier (by subtree weight) component becomes the
// survivor; the absorbed root's parent is set to the survivor and its
// satellite entry is deleted. Per invariant B2, the survivor's budget
// becomes budget(a) + budget(b) - d. Returns the survivor's root id.
// Callers must have already verified a and b are in different
// components (Union does not check for this).
func (p *Partition) Union(a, b uint64, d float64) uint64 {
	ra, rb := p.Find(a), p.Find(b)

	survivor, absorbed := ra, rb
	if p.weight[ra] < p.weight[rb] {
		survivor, absorbed = rb, ra
	}

	sSat, aSat := p.sat[survivor], p.sat[absorbed]

	p.parent[absorbed] = survivor
	p.weight[survivor] += p.weight[absorbed]

	sSat.budget = sSat.budget + aSat.budget - d
	sSat.members = append(sSat.members, aSat.members...)
	sSat.queue.Merge(aSat.queue)

	delete(p.sat, absorbed)

	return survivor
}

// Budget returns the current budget of the component containing x.
func (p *Partition) Budget(x uint64) float64 {
	return p.sat[p.Find(x)].budget
}

// SetBudget overrides the budget of the component containing x,
// e.g. to seed a pre-unioned anchor component at +Inf (spec §6).
func (p *Partition) SetBudget(x uint64, budget float64) {
	p.sat[p.Find(x)].budget = budget
}

// Members returns the member list of the component containing x.
// The returned slice is owned by the partition; callers must not
// mutate it.
func (p *Partition) Members(x uint64) []uint64 {
	return p.sat[p.Find(x)].members
}

// Queue returns the candidate-edge queue of the component containing x.
func (p *Partition) Queue(x uint64) *Queue {
	return p.sat[p.Find(x)].queue
}

// Components returns the current set of component roots.
func (p *Partition) Components() []uint64 {
	roots := make([]uint64, 0, len(p.sat))
	for r := range p.sat {
		roots = append(roots, r)
	}
	return roots
}

// Connected reports whether a and b are in the same component.
func (p *Partition) Connected(a, b uint64) bool {
	return p.Find(a) == p.Find(b)
}

// Infinite reports whether v represents an anchor node's unbounded budget.
func Infinite(v float64) bool {
	return math.IsInf(v, 1)
}
