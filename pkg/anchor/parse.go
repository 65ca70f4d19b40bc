// Package anchor implements the GridAnchor collaborator (spec §6): it
// parses an existing electrical grid from an OSM PBF extract and turns
// it into the initial_partition and initial_edges BoruvkaEngine needs
// to treat that grid as a single infinite-budget component new edges
// may attach to but not cross. Adapted from pkg/osm's two-pass
// way/node scanner, originally built for car-accessible highways.
package anchor

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"map_router/pkg/geo"
)

// RawEdge is one direction of a parsed grid segment. Parse emits
// every segment in both directions, since power lines have no oneway
// concept.
type RawEdge struct {
	FromNodeID osm.NodeID
	ToNodeID   osm.NodeID
	Weight     uint32 // length in millimetres
}

// ParseResult holds the output of parsing a grid extract.
type ParseResult struct {
	Edges   []RawEdge
	NodeLat map[osm.NodeID]float64
	NodeLon map[osm.NodeID]float64
}

// powerWays lists power tag values treated as existing grid segments.
var powerWays = map[string]bool{
	"line":       true,
	"minor_line": true,
	"cable":      true,
}

func isGridWay(tags osm.Tags) bool {
	return powerWays[tags.Find("power")]
}

// BBox defines a geographic bounding box for filtering.
// If non-zero, only edges with both endpoints inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ParseOptions configures the grid parser.
type ParseOptions struct {
	BBox BBox
}

// Parse reads an OSM PBF extract and returns the power-line ways as
// undirected edges. The reader is consumed twice (seeks back to start
// for the second pass), so it must implement io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, opts ...ParseOptions) (*ParseResult, error) {
	var opt ParseOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	useBBox := !opt.BBox.IsZero()

	// Pass 1: scan ways to collect referenced node IDs.
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways [][]osm.NodeID

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || !isGridWay(w.Tags) || len(w.Nodes) < 2 {
			continue
		}
		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}
		ways = append(ways, nodeIDs)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("grid pass 1 complete: %d power ways, %d referenced nodes", len(ways), len(referencedNodes))

	// Pass 2: collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodeLat := make(map[osm.NodeID]float64, len(referencedNodes))
	nodeLon := make(map[osm.NodeID]float64, len(referencedNodes))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		nodeLat[n.ID] = n.Lat
		nodeLon[n.ID] = n.Lon
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	log.Printf("grid pass 2 complete: %d node coordinates collected", len(nodeLat))

	var edges []RawEdge
	var skipped, bboxFiltered int

	for _, nodeIDs := range ways {
		for i := 0; i < len(nodeIDs)-1; i++ {
			fromID, toID := nodeIDs[i], nodeIDs[i+1]
			fromLat, fromOk := nodeLat[fromID]
			fromLon := nodeLon[fromID]
			toLat, toOk := nodeLat[toID]
			toLon := nodeLon[toID]
			if !fromOk || !toOk {
				skipped++
				continue
			}
			if useBBox && (!opt.BBox.Contains(fromLat, fromLon) || !opt.BBox.Contains(toLat, toLon)) {
				bboxFiltered++
				continue
			}
			dist := geo.Haversine(fromLat, fromLon, toLat, toLon)
			weightMM := uint32(math.Round(dist * 1000))
			if weightMM == 0 {
				weightMM = 1
			}
			edges = append(edges, RawEdge{FromNodeID: fromID, ToNodeID: toID, Weight: weightMM})
			edges = append(edges, RawEdge{FromNodeID: toID, ToNodeID: fromID, Weight: weightMM})
		}
	}

	if skipped > 0 {
		log.Printf("warning: skipped %d grid edges due to missing node coordinates", skipped)
	}
	if bboxFiltered > 0 {
		log.Printf("filtered %d grid edges outside bounding box", bboxFiltered)
	}
	log.Printf("built %d directed grid edges", len(edges))

	return &ParseResult{Edges: edges, NodeLat: nodeLat, NodeLon: nodeLon}, nil
}
