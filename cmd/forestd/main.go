package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"map_router/pkg/anchor"
	"map_router/pkg/api"
	"map_router/pkg/forest"
	"map_router/pkg/graph"
)

// forestService adapts forest.Build to api.ForestBuilder, re-seeding a
// fresh partition from the pre-loaded anchor network (if any) on every
// request, since BoruvkaEngine's partition carries per-run mutable
// state and cannot be shared across concurrent requests — the same
// reason the teacher's Engine pools a fresh QueryState per request
// instead of reusing one.
type forestService struct {
	grid *graph.Graph
}

func (s *forestService) Build(ctx context.Context, nodes []forest.Node, useAnchor bool) ([]forest.AcceptedEdge, error) {
	if !useAnchor || s.grid == nil {
		return forest.Build(nodes, forest.BuildOptions{})
	}

	anchorNodes := anchor.Nodes(s.grid)
	all := append(append([]forest.Node{}, nodes...), anchorNodes...)

	budgets := make(map[uint64]float64, len(all))
	for _, n := range all {
		budgets[n.ID] = n.Budget
	}
	part, initialEdges := anchor.Seed(s.grid, func(id uint64) float64 { return budgets[id] })

	return forest.Build(all, forest.BuildOptions{
		Partition:    part,
		InitialEdges: initialEdges,
	})
}

func main() {
	gridPath := flag.String("grid-cache", "", "Path to a pre-parsed grid binary cache (optional)")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	svc := &forestService{}
	var numAnchorNodes uint32

	if *gridPath != "" {
		log.Printf("Loading grid cache from %s...", *gridPath)
		g, err := graph.ReadBinary(*gridPath)
		if err != nil {
			log.Fatalf("Failed to load grid cache: %v", err)
		}
		log.Printf("Loaded grid: %d nodes, %d edges", g.NumNodes, g.NumEdges)

		log.Println("Extracting largest connected component of grid...")
		componentNodes := graph.LargestComponent(g)
		log.Printf("Largest component: %d nodes (%.1f%%)", len(componentNodes), float64(len(componentNodes))/float64(g.NumNodes)*100)
		g = graph.FilterToComponent(g, componentNodes)
		log.Printf("Filtered grid: %d nodes, %d edges", g.NumNodes, g.NumEdges)

		svc.grid = g
		numAnchorNodes = g.NumNodes
	}

	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumAnchorNodes: numAnchorNodes,
	}

	handlers := api.NewHandlers(svc, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
