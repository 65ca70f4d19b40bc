package forest

import (
	"fmt"
	"log"
	"math"

	"map_router/pkg/geo"
	"map_router/pkg/geometry"
	"map_router/pkg/partition"
	"map_router/pkg/spatial"
)

// BuildOptions carries the optional collaborator state an anchored run
// needs (spec §6, GridAnchor): a pre-seeded partition with anchor
// components already unioned at infinite budget, the geometry of that
// anchor network so new edges are checked against it too, and the
// anchor groups to validate consistency of, if the caller wants that
// checked.
type BuildOptions struct {
	// Partition, if non-nil, is used instead of a freshly constructed
	// one. Anchor components must already be unioned with budget set
	// to +Inf (partition.Infinite) before Build is called. Its
	// budgetOf closure must resolve every id in nodes, not only the
	// anchor ids already registered — Build registers the rest lazily
	// on first Find, the same as a fresh partition would.
	Partition *partition.Partition

	// AnchorGroups, if non-empty, is validated against Partition before
	// the first round: every id within a group must resolve to the
	// same root (ErrInconsistentAnchor otherwise). Ignored if
	// Partition is nil.
	AnchorGroups [][]uint64

	// InitialEdges seeds the rectangle index so new candidates are
	// checked against this existing geometry too, without appearing in
	// the returned AcceptedEdge sequence.
	InitialEdges []InitialEdge
}

// coordLookup adapts a plain coordinate map to geometry.EdgeLookup.
type coordLookup map[uint64]geo.Point

func (c coordLookup) Coord(id uint64) geometry.Point {
	p := c[id]
	return geometry.Point{X: p.X, Y: p.Y}
}

// engine bundles the per-run state the round loop closes over, so the
// gather/commit helpers below read as plain methods rather than
// six-argument functions.
type engine struct {
	byID   map[uint64]Node
	cart   map[uint64]geo.Point
	coords coordLookup
	knn    *spatial.KNNIndex
	ff     *spatial.ForeignFinder
	rect   *spatial.RectIndex
	part   *partition.Partition
}

// Build runs the modified Borůvka algorithm (spec §4.5) over nodes and
// returns the accepted forest edges in commit order. It returns
// ErrInvalidInput if the input fails validation, and
// ErrInconsistentAnchor if opts.AnchorGroups do not each resolve to a
// single root. Build does not check its own invariants after a round
// and never returns ErrInternalInvariant.
func Build(nodes []Node, opts BuildOptions) ([]AcceptedEdge, error) {
	if err := validate(nodes); err != nil {
		return nil, err
	}
	if len(nodes) < 2 {
		return nil, nil
	}

	e := &engine{
		byID:   make(map[uint64]Node, len(nodes)),
		cart:   make(map[uint64]geo.Point, len(nodes)),
		coords: make(coordLookup, len(nodes)),
		rect:   spatial.NewRectIndex(),
	}
	for _, n := range nodes {
		p := geo.Cartesian(n.Lon, n.Lat)
		e.byID[n.ID] = n
		e.cart[n.ID] = p
		e.coords[n.ID] = p
	}

	e.knn = spatial.Build(e.cart)
	e.ff = spatial.NewForeignFinder(e.knn)

	e.part = opts.Partition
	if e.part == nil {
		e.part = partition.New(func(id uint64) float64 { return e.byID[id].Budget })
	} else if err := validateAnchors(e.part, opts.AnchorGroups); err != nil {
		return nil, err
	}

	for _, ie := range opts.InitialEdges {
		e.rect.Insert(ie.U, ie.V, geo.Cartesian(ie.ULon, ie.ULat), geo.Cartesian(ie.VLon, ie.VLat))
	}

	// Register every node and seed its component's queue with its own
	// foreign nearest neighbour (spec §4.5, initialisation).
	for _, n := range nodes {
		e.part.Find(n.ID)
	}
	for _, n := range nodes {
		e.seedCandidate(n.ID)
	}

	var accepted []AcceptedEdge
	target := len(nodes) - 1

	log.Printf("Starting forest build: %d nodes, target %d edges", len(nodes), target)

	round := 0
	for len(accepted) < target {
		round++
		ep := e.gather()
		if ep.Len() == 0 {
			break // no component has a live candidate left
		}

		before := len(accepted)
		accepted = e.commit(ep, accepted)

		// Adaptive log interval: frequent near the end, sparse early on,
		// same idiom as the teacher's contraction progress logging.
		remaining := len(e.part.Components())
		logInterval := 50
		switch {
		case remaining < 10:
			logInterval = 1
		case remaining < 100:
			logInterval = 5
		case remaining < 1000:
			logInterval = 20
		}
		if round%logInterval == 0 {
			log.Printf("Round %d: %d components remaining, %d edges accepted", round, remaining, len(accepted))
		}

		if len(accepted) == before {
			break // round committed nothing: fixed point reached (spec P5)
		}
	}

	log.Printf("Forest build complete: %d edges accepted over %d rounds", len(accepted), round)

	return accepted, nil
}

// seedCandidate pushes v's foreign nearest neighbour, if any, onto its
// own component's queue. Called once at initialisation and again, from
// within gather, whenever a component's top candidate turns out to
// already be a member (no longer foreign).
func (e *engine) seedCandidate(v uint64) {
	members := e.memberSet(v)
	nbr, ok := e.ff.FNN(v, members)
	if !ok {
		return
	}
	d := geo.SqDist3D(e.cart[v], e.cart[nbr])
	e.part.Queue(v).Push(v, nbr, d)
}

func (e *engine) memberSet(v uint64) map[uint64]bool {
	ms := e.part.Members(v)
	set := make(map[uint64]bool, len(ms))
	for _, m := range ms {
		set[m] = true
	}
	return set
}

func (e *engine) haversine(u, v uint64) float64 {
	a, b := e.byID[u], e.byID[v]
	return geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// gather runs phase P1: for every live component, lazily skip past any
// queued candidate that has become an internal member since it was
// queued (the component it pointed to merged into this one), re-seed a
// fresh candidate for the owning node each time, and propose the first
// genuinely foreign candidate found as that component's entry in Ep.
// Components left with no live candidate at all contribute nothing
// this round.
func (e *engine) gather() *roundQueue {
	ep := &roundQueue{}

	for _, root := range e.part.Components() {
		q := e.part.Queue(root)
		for {
			top, ok := q.Top()
			if !ok {
				break
			}
			if e.part.Connected(top.From, top.To) {
				q.Pop()
				e.seedCandidate(top.From)
				continue
			}
			break
		}

		top, ok := q.Top()
		if !ok {
			continue
		}
		ep.Push(top.From, top.To, e.haversine(top.From, top.To))
	}

	return ep
}

// commit runs phase P2: drain Ep in ascending order of edge length,
// skipping candidates that would close a cycle, unioning and appending
// those both sides can afford and that do not cross already-accepted
// geometry, and pruning the stale top of an insolvent component's own
// queue so the next round proposes a different candidate. Per the
// fix recorded in SPEC_FULL.md §9, the geometry check runs before the
// union rather than after, so a rejected candidate never touches the
// budget ledger or the member list.
func (e *engine) commit(ep *roundQueue, accepted []AcceptedEdge) []AcceptedEdge {
	for ep.Len() > 0 {
		item := ep.Pop()
		u, v, d := item.U, item.V, item.D

		ru, rv := e.part.Find(u), e.part.Find(v)
		if ru == rv {
			continue // would form a cycle
		}

		if e.part.Budget(ru) >= d && e.part.Budget(rv) >= d {
			if e.crosses(u, v) {
				continue // rejected: no union, no ledger change
			}
			e.part.Union(u, v, d)
			e.rect.Insert(u, v, e.cart[u], e.cart[v])
			accepted = append(accepted, AcceptedEdge{U: u, V: v, Length: d})
			continue
		}

		// At least one side cannot afford d: this candidate is dead for
		// good this round. Prune it from u's own component queue so the
		// next round's gather proposes a fresh one.
		if q := e.part.Queue(u); !q.Empty() {
			if top, ok := q.Top(); ok && top.From == u && top.To == v {
				q.Pop()
				e.seedCandidate(u)
			}
		}
	}
	return accepted
}

// crosses reports whether candidate edge (u, v) crosses any
// already-accepted edge, narrowing the search with the rectangle index
// before running the exact segment test (spec §4.4).
func (e *engine) crosses(u, v uint64) bool {
	pu, pv := e.cart[u], e.cart[v]
	crossed := false
	e.rect.Overlap(pu, pv, func(ref spatial.EdgeRef) bool {
		if geometry.Intersects(
			geometry.Segment{P1: e.coords.Coord(u), P2: e.coords.Coord(v)},
			geometry.Segment{P1: e.coords.Coord(ref.U), P2: e.coords.Coord(ref.V)},
		) {
			crossed = true
			return false
		}
		return true
	})
	return crossed
}

// validate checks node-level input invariants before any round runs
// (spec §7): no duplicate ids, coordinates in range, budgets
// non-negative (or +Inf for anchors), never NaN or -Inf.
func validate(nodes []Node) error {
	seen := make(map[uint64]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate node id %d", ErrInvalidInput, n.ID)
		}
		seen[n.ID] = true

		if n.Lon < -180 || n.Lon > 180 || math.IsNaN(n.Lon) {
			return fmt.Errorf("%w: node %d has invalid longitude %v", ErrInvalidInput, n.ID, n.Lon)
		}
		if n.Lat < -90 || n.Lat > 90 || math.IsNaN(n.Lat) {
			return fmt.Errorf("%w: node %d has invalid latitude %v", ErrInvalidInput, n.ID, n.Lat)
		}
		if math.IsNaN(n.Budget) || math.IsInf(n.Budget, -1) || n.Budget < 0 {
			return fmt.Errorf("%w: node %d has invalid budget %v", ErrInvalidInput, n.ID, n.Budget)
		}
	}
	return nil
}

// validateAnchors checks, when requested, that every id within a
// caller-declared anchor group already resolves to the same partition
// root (spec §7, optional validation mode for GridAnchor's output).
func validateAnchors(part *partition.Partition, groups [][]uint64) error {
	for _, g := range groups {
		if len(g) < 2 {
			continue
		}
		root := part.Find(g[0])
		for _, id := range g[1:] {
			if part.Find(id) != root {
				return fmt.Errorf("%w: node %d does not share a component with %d", ErrInconsistentAnchor, id, g[0])
			}
		}
	}
	return nil
}
