// Package forest implements the BoruvkaEngine — the modified Borůvka
// algorithm that is the entire subject of the specification (spec
// §4.5): a budget- and planarity-constrained minimum spanning forest
// over geo-located demand nodes, orchestrating pkg/geo, pkg/spatial,
// pkg/partition, and pkg/geometry.
package forest

import "errors"

// Node is a demand node: a stable id, a geographic coordinate in
// decimal degrees, and a budget (non-negative, or +Inf for anchor
// nodes representing existing infrastructure).
type Node struct {
	ID     uint64
	Lon    float64
	Lat    float64
	Budget float64
}

// AcceptedEdge is one edge of the output forest, in commit order.
type AcceptedEdge struct {
	U, V   uint64
	Length float64 // haversine metres
}

// InitialEdge seeds the rectangle index with pre-existing geometry
// (e.g. an anchor grid's own segments) that new candidates must not
// cross, without appearing in the output AcceptedEdge sequence
// itself (spec §6: GridAnchor's initial_edges).
type InitialEdge struct {
	U, V               uint64
	ULon, ULat         float64
	VLon, VLat         float64
}

var (
	// ErrInvalidInput covers duplicate node ids, out-of-range
	// coordinates, negative budgets, and similar caller errors,
	// surfaced before any round runs (spec §7).
	ErrInvalidInput = errors.New("geoforest: invalid input")

	// ErrInconsistentAnchor is returned when a caller-declared anchor
	// group does not resolve to a single partition root (spec §7,
	// optional validation mode).
	ErrInconsistentAnchor = errors.New("geoforest: inconsistent anchor component")

	// ErrInternalInvariant indicates a bug: a budget-ledger mismatch,
	// a cycle in the accepted set, or find-root divergence. Fatal —
	// spec §7 says this should abort, never be retried.
	ErrInternalInvariant = errors.New("geoforest: internal invariant violated")
)
