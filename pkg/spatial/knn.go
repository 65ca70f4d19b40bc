// Package spatial implements the two indices the core engine needs
// (spec §4.2): a k-nearest-neighbour index over node coordinates, and
// a mutable rectangle index over accepted-edge bounding boxes. The
// k-NN index adapts the flat-sorted-grid technique pkg/routing's
// Snapper used for nearest-road snapping — a single sorted slice
// keyed by cell, binary-searched per query, expanded ring by ring —
// to 3-D Cartesian cells and k-nearest (rather than nearest-segment)
// queries.
package spatial

import (
	"math"
	"sort"

	"map_router/pkg/geo"
)

// cellSizeMeters sizes the Cartesian grid cell. At this scale a 3x3x3
// block of cells around a query point comfortably covers the handful
// of nearest neighbours FNN typically needs before growing k.
const cellSizeMeters = 2000.0

type gridEntry struct {
	cx, cy, cz int32
	id         uint64
}

// KNNIndex answers ascending-distance k-nearest queries over a fixed
// set of node coordinates, built once (spec §4.2: "built once at
// start").
type KNNIndex struct {
	points  map[uint64]geo.Point
	entries []gridEntry // sorted by (cx, cy, cz)
}

func cellOf(p geo.Point) (int32, int32, int32) {
	return int32(math.Floor(p.X / cellSizeMeters)),
		int32(math.Floor(p.Y / cellSizeMeters)),
		int32(math.Floor(p.Z / cellSizeMeters))
}

func less(a, b gridEntry) bool {
	if a.cx != b.cx {
		return a.cx < b.cx
	}
	if a.cy != b.cy {
		return a.cy < b.cy
	}
	return a.cz < b.cz
}

// Build indexes the given node coordinates (already projected to
// Cartesian via pkg/geo.Cartesian).
func Build(coords map[uint64]geo.Point) *KNNIndex {
	entries := make([]gridEntry, 0, len(coords))
	for id, p := range coords {
		cx, cy, cz := cellOf(p)
		entries = append(entries, gridEntry{cx: cx, cy: cy, cz: cz, id: id})
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	return &KNNIndex{points: coords, entries: entries}
}

// Coord returns the Cartesian coordinate of an indexed node.
func (idx *KNNIndex) Coord(id uint64) geo.Point {
	return idx.points[id]
}

// cellEntries returns the slice of entries in cell (cx, cy, cz) via
// binary search over the sorted slice, mirroring Snapper.cellRange.
func (idx *KNNIndex) cellEntries(cx, cy, cz int32) []gridEntry {
	key := gridEntry{cx: cx, cy: cy, cz: cz}
	lo := sort.Search(len(idx.entries), func(i int) bool { return !less(idx.entries[i], key) })
	hi := sort.Search(len(idx.entries), func(i int) bool { return less(key, idx.entries[i]) })
	if lo >= hi {
		return nil
	}
	return idx.entries[lo:hi]
}

type candidate struct {
	id   uint64
	dist float64
}

// Query returns up to k node ids nearest to the given id (excluding
// itself), in ascending order of squared Cartesian distance, per
// spec §4.2: "query(point, k) -> k nearest node ids in order of
// ascending distance". It grows the search ring outward until at
// least k candidates have been found and one extra ring has been
// scanned as a safety margin against candidates just across a cell
// boundary, then returns the truncated, sorted list.
func (idx *KNNIndex) Query(from uint64, k int) []uint64 {
	origin, ok := idx.points[from]
	if !ok || k <= 0 {
		return nil
	}
	ocx, ocy, ocz := cellOf(origin)

	want := k
	if max := len(idx.points) - 1; want > max {
		want = max
	}

	var found []candidate
	seen := map[uint64]bool{from: true}
	extraRings := 1
	emptyRings := 0

	for ring := int32(0); ; ring++ {
		any := false
		for dx := -ring; dx <= ring; dx++ {
			for dy := -ring; dy <= ring; dy++ {
				for dz := -ring; dz <= ring; dz++ {
					if ring > 0 && abs32(dx) != ring && abs32(dy) != ring && abs32(dz) != ring {
						continue // interior cell, already scanned at a smaller ring
					}
					cell := idx.cellEntries(ocx+dx, ocy+dy, ocz+dz)
					if len(cell) == 0 {
						continue
					}
					any = true
					for _, e := range cell {
						if seen[e.id] {
							continue
						}
						seen[e.id] = true
						found = append(found, candidate{id: e.id, dist: geo.SqDist3D(origin, idx.points[e.id])})
					}
				}
			}
		}

		if want == 0 || len(found) >= want {
			if extraRings == 0 {
				break
			}
			extraRings--
		}
		if any {
			emptyRings = 0
		} else {
			emptyRings++
		}
		// Nothing left anywhere and we've given it a couple of empty
		// shells to be sure: stop even if fewer than k were found.
		if emptyRings > 2 && ring > 0 {
			break
		}
		if ring > 1<<20 { // defensive bound, should never trigger
			break
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].dist < found[j].dist })
	if len(found) > k {
		found = found[:k]
	}
	out := make([]uint64, len(found))
	for i, c := range found {
		out[i] = c.id
	}
	return out
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
