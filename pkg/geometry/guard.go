// Package geometry implements the planarity check the core engine
// runs before accepting a candidate edge (spec §4.4): segment
// intersection via the cross-product form, with shared endpoints
// explicitly excluded from counting as a crossing.
package geometry

// Point is a 2-D Cartesian point in whatever projection the caller's
// rectangle index uses (pkg/geo.Cartesian's XY plane, consistently).
type Point struct {
	X, Y float64
}

func sub(a, b Point) Point      { return Point{a.X - b.X, a.Y - b.Y} }
func cross(a, b Point) float64  { return a.X*b.Y - a.Y*b.X }
func equal(a, b Point) bool     { return a.X == b.X && a.Y == b.Y }

// Segment is a candidate or already-accepted edge, identified by its
// two endpoints' coordinates.
type Segment struct {
	P1, P2 Point
}

// Intersects reports whether segments a and b cross, per spec §4.4:
//
//   - collinear and overlapping segments count as crossing unless they
//     have an endpoint in common (then they never count, even where
//     they overlap beyond that endpoint);
//   - parallel, non-collinear segments never cross;
//   - otherwise, the standard cross-product parametric test is used,
//     with an intersection at a shared endpoint explicitly excluded.
func Intersects(a, b Segment) bool {
	p1, p2 := a.P1, a.P2
	p3, p4 := b.P1, b.P2

	r := sub(p2, p1)
	s := sub(p4, p3)
	n := cross(sub(p3, p1), r)
	d := cross(r, s)

	if n == 0 && d == 0 {
		if !onLineOverlap(p1, p2, p3, p4) {
			return false
		}
		return !sharesEndpointOnly(p1, p2, p3, p4)
	}

	if d == 0 {
		// Parallel, non-collinear: never crosses.
		return false
	}

	t := cross(sub(p3, p1), s) / d
	u := n / d
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return false
	}

	return !sharesEndpointOnly(p1, p2, p3, p4)
}

// onLineOverlap reports whether two collinear segments p1p2 and p3p4
// overlap, restated unambiguously per spec §9: they overlap iff at
// least one endpoint of one segment lies within the closed bounding
// interval of the other, along whichever axis the segment is not
// degenerate on.
func onLineOverlap(p1, p2, p3, p4 Point) bool {
	return within(p3, p1, p2) || within(p4, p1, p2) || within(p1, p3, p4) || within(p2, p3, p4)
}

// within reports whether point p lies within the closed bounding box
// of segment ab (valid only for points already known to be collinear
// with ab).
func within(p, a, b Point) bool {
	xmin, xmax := a.X, b.X
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	ymin, ymax := a.Y, b.Y
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	return p.X >= xmin && p.X <= xmax && p.Y >= ymin && p.Y <= ymax
}

// sharesEndpointOnly reports whether the two segments have any
// endpoint in common — in which case the engine permits the
// "crossing", since multiple edges may legitimately meet at one node.
// It does not look at whether collinear segments also overlap past
// that endpoint.
func sharesEndpointOnly(p1, p2, p3, p4 Point) bool {
	return equal(p1, p3) || equal(p1, p4) || equal(p2, p3) || equal(p2, p4)
}

// EdgeLookup resolves an accepted edge's endpoint ids to their
// projected Cartesian coordinates, for Crosses to test against.
type EdgeLookup interface {
	Coord(id uint64) Point
}

// Candidate is a pending edge identified by endpoint ids.
type Candidate struct {
	U, V uint64
}

// AcceptedEdge is an already-accepted edge, identified by endpoint ids.
type AcceptedEdge struct {
	U, V uint64
}

// Crosses reports whether the candidate (u, v) crosses any of the
// given accepted edges, using lookup to resolve ids to coordinates.
// The rectangle-index overlap query (pkg/spatial) narrows the
// candidate set before this is ever called; Crosses itself does the
// exact geometric test.
func Crosses(lookup EdgeLookup, u, v uint64, accepted []AcceptedEdge) bool {
	cand := Segment{P1: lookup.Coord(u), P2: lookup.Coord(v)}
	for _, e := range accepted {
		existing := Segment{P1: lookup.Coord(e.U), P2: lookup.Coord(e.V)}
		if Intersects(cand, existing) {
			return true
		}
	}
	return false
}
