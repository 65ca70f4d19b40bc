package geometry

import "testing"

func TestIntersectsCrossing(t *testing.T) {
	// Two diagonals of a unit square cross at the center.
	a := Segment{P1: Point{0, 0}, P2: Point{1, 1}}
	b := Segment{P1: Point{0, 1}, P2: Point{1, 0}}
	if !Intersects(a, b) {
		t.Error("expected diagonals to cross")
	}
}

func TestIntersectsParallelNonCollinear(t *testing.T) {
	a := Segment{P1: Point{0, 0}, P2: Point{1, 0}}
	b := Segment{P1: Point{0, 1}, P2: Point{1, 1}}
	if Intersects(a, b) {
		t.Error("parallel non-collinear segments must not cross")
	}
}

func TestIntersectsSharedEndpointAllowed(t *testing.T) {
	// Two edges sharing node (0,0) but otherwise diverging must not
	// count as crossing — multiple edges may meet at one node.
	a := Segment{P1: Point{0, 0}, P2: Point{1, 1}}
	b := Segment{P1: Point{0, 0}, P2: Point{1, -1}}
	if Intersects(a, b) {
		t.Error("segments sharing only an endpoint must not count as crossing")
	}
}

func TestIntersectsCollinearOverlap(t *testing.T) {
	// A(0,0)-B(2,0) and C(1,0)-D(3,0) overlap on the shared line.
	a := Segment{P1: Point{0, 0}, P2: Point{2, 0}}
	b := Segment{P1: Point{1, 0}, P2: Point{3, 0}}
	if !Intersects(a, b) {
		t.Error("expected collinear overlapping segments to cross")
	}
}

func TestIntersectsCollinearTouchingAtEndpointOnly(t *testing.T) {
	// A(0,0)-B(1,0) and B(1,0)-C(2,0): collinear, touching only at B.
	a := Segment{P1: Point{0, 0}, P2: Point{1, 0}}
	b := Segment{P1: Point{1, 0}, P2: Point{2, 0}}
	if Intersects(a, b) {
		t.Error("collinear segments sharing only an endpoint must not count as crossing")
	}
}

func TestIntersectsCollinearDisjoint(t *testing.T) {
	a := Segment{P1: Point{0, 0}, P2: Point{1, 0}}
	b := Segment{P1: Point{2, 0}, P2: Point{3, 0}}
	if Intersects(a, b) {
		t.Error("disjoint collinear segments must not cross")
	}
}

type mapLookup map[uint64]Point

func (m mapLookup) Coord(id uint64) Point { return m[id] }

func TestCrossesAgainstAcceptedSet(t *testing.T) {
	lookup := mapLookup{
		1: {0, 0}, 2: {1, 1}, // candidate
		3: {0, 1}, 4: {1, 0}, // accepted, crosses candidate
		5: {5, 5}, 6: {6, 6}, // accepted, does not cross
	}
	accepted := []AcceptedEdge{{U: 3, V: 4}, {U: 5, V: 6}}
	if !Crosses(lookup, 1, 2, accepted) {
		t.Error("expected candidate to cross the first accepted edge")
	}
	if Crosses(lookup, 1, 2, accepted[1:]) {
		t.Error("candidate should not cross the unrelated accepted edge")
	}
}
