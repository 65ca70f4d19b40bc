package anchor

import (
	"sort"

	"github.com/paulmach/osm"

	"map_router/pkg/graph"
)

// BuildGraph turns a parsed grid extract into a CSR graph.Graph,
// adapted from the teacher's OSM-to-CSR builder (pkg/graph, originally
// keyed on car-road RawEdge records with shape geometry).
func BuildGraph(result *ParseResult) *graph.Graph {
	edges := result.Edges
	if len(edges) == 0 {
		return &graph.Graph{}
	}

	nodeSet := make(map[osm.NodeID]uint32)
	var nodeIDs []osm.NodeID

	addNode := func(id osm.NodeID) uint32 {
		if idx, ok := nodeSet[id]; ok {
			return idx
		}
		idx := uint32(len(nodeIDs))
		nodeSet[id] = idx
		nodeIDs = append(nodeIDs, id)
		return idx
	}

	for i := range edges {
		addNode(edges[i].FromNodeID)
		addNode(edges[i].ToNodeID)
	}

	numNodes := uint32(len(nodeIDs))

	type compactEdge struct {
		from, to, weight uint32
	}

	compact := make([]compactEdge, len(edges))
	for i, e := range edges {
		compact[i] = compactEdge{
			from:   nodeSet[e.FromNodeID],
			to:     nodeSet[e.ToNodeID],
			weight: e.Weight,
		}
	}

	sort.Slice(compact, func(i, j int) bool {
		if compact[i].from != compact[j].from {
			return compact[i].from < compact[j].from
		}
		return compact[i].to < compact[j].to
	})

	numEdges := uint32(len(compact))
	firstOut := make([]uint32, numNodes+1)
	head := make([]uint32, numEdges)
	weight := make([]uint32, numEdges)

	for i, e := range compact {
		head[i] = e.to
		weight[i] = e.weight
	}
	for _, e := range compact {
		firstOut[e.from+1]++
	}
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	nodeLat := make([]float64, numNodes)
	nodeLon := make([]float64, numNodes)
	for id, idx := range nodeSet {
		nodeLat[idx] = result.NodeLat[id]
		nodeLon[idx] = result.NodeLon[id]
	}

	return &graph.Graph{
		NumNodes: numNodes,
		NumEdges: numEdges,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
		NodeLat:  nodeLat,
		NodeLon:  nodeLon,
	}
}
