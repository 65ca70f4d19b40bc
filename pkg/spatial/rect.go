package spatial

import (
	"github.com/tidwall/rtree"

	"map_router/pkg/geo"
)

// EdgeRef identifies an accepted edge by its endpoint ids, the payload
// stored in the rectangle index.
type EdgeRef struct {
	U, V uint64
}

// RectIndex is the mutable rectangle index over accepted-edge
// bounding boxes (spec §4.2). Backed by github.com/tidwall/rtree,
// declared in the teacher's go.mod but never exercised by the
// teacher's own code — wired in here for the bounding-box overlap
// query GeometryGuard needs before it runs the exact segment test.
type RectIndex struct {
	tr rtree.RTreeG[EdgeRef]
}

// NewRectIndex returns an empty rectangle index.
func NewRectIndex() *RectIndex {
	return &RectIndex{}
}

// Insert adds an accepted edge's bounding box, computed from its two
// Cartesian endpoints.
func (r *RectIndex) Insert(u, v uint64, pu, pv geo.Point) {
	xmin, ymin, xmax, ymax := geo.BBox(pu, pv)
	r.tr.Insert([2]float64{xmin, ymin}, [2]float64{xmax, ymax}, EdgeRef{U: u, V: v})
}

// Overlap calls visit for every accepted edge whose bounding box
// intersects the query box. Ordering is unspecified, per spec §4.2.
// visit returning false stops the scan early.
func (r *RectIndex) Overlap(pu, pv geo.Point, visit func(EdgeRef) bool) {
	xmin, ymin, xmax, ymax := geo.BBox(pu, pv)
	r.tr.Search([2]float64{xmin, ymin}, [2]float64{xmax, ymax}, func(_, _ [2]float64, ref EdgeRef) bool {
		return visit(ref)
	})
}

// Len returns the number of indexed edges.
func (r *RectIndex) Len() int {
	return r.tr.Len()
}
