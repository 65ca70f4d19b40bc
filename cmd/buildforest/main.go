package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"map_router/pkg/anchor"
	"map_router/pkg/emit"
	"map_router/pkg/forest"
	"map_router/pkg/graph"
	"map_router/pkg/ingest"
	"map_router/pkg/postfilter"
)

func main() {
	nodesPath := flag.String("nodes", "", "Path to CSV demand nodes (id,lon,lat,budget)")
	gridPath := flag.String("grid", "", "Path to .osm.pbf grid extract (optional)")
	gridCache := flag.String("grid-cache", "", "Path to a grid binary cache: read if present, written after parsing --grid")
	minComponent := flag.Int("min-component", 1, "Drop components with fewer than this many nodes")
	output := flag.String("out", "forest.geojson", "Output GeoJSON path")
	flag.Parse()

	if *nodesPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: buildforest --nodes <demand.csv> [--grid <grid.osm.pbf> | --grid-cache <grid.bin>] [--min-component N] [--out forest.geojson]")
		os.Exit(1)
	}

	start := time.Now()

	log.Println("Reading demand nodes...")
	nf, err := os.Open(*nodesPath)
	if err != nil {
		log.Fatalf("Failed to open nodes file: %v", err)
	}
	nodes, err := ingest.CSVIngest{}.Parse(nf)
	nf.Close()
	if err != nil {
		log.Fatalf("Failed to parse nodes: %v", err)
	}
	log.Printf("Parsed %d demand nodes", len(nodes))

	var opts forest.BuildOptions

	var g *graph.Graph
	switch {
	case *gridCache != "" && fileExists(*gridCache):
		log.Printf("Loading grid from cache %s...", *gridCache)
		g, err = graph.ReadBinary(*gridCache)
		if err != nil {
			log.Fatalf("Failed to load grid cache: %v", err)
		}
	case *gridPath != "":
		log.Println("Parsing grid extract...")
		gf, err := os.Open(*gridPath)
		if err != nil {
			log.Fatalf("Failed to open grid file: %v", err)
		}
		result, err := anchor.Parse(context.Background(), gf)
		gf.Close()
		if err != nil {
			log.Fatalf("Failed to parse grid: %v", err)
		}
		log.Printf("Parsed %d grid edges, %d grid nodes", len(result.Edges), len(result.NodeLat))
		g = anchor.BuildGraph(result)
		if *gridCache != "" {
			log.Printf("Writing grid cache to %s...", *gridCache)
			if err := graph.WriteBinary(*gridCache, g); err != nil {
				log.Fatalf("Failed to write grid cache: %v", err)
			}
		}
	}

	if g != nil {
		log.Printf("Grid: %d nodes, %d edges", g.NumNodes, g.NumEdges)

		log.Println("Extracting largest connected component of grid...")
		componentNodes := graph.LargestComponent(g)
		log.Printf("Largest component: %d nodes (%.1f%%)", len(componentNodes), float64(len(componentNodes))/float64(g.NumNodes)*100)
		g = graph.FilterToComponent(g, componentNodes)
		log.Printf("Filtered grid: %d nodes, %d edges", g.NumNodes, g.NumEdges)

		nodes = append(nodes, anchor.Nodes(g)...)

		budgets := make(map[uint64]float64, len(nodes))
		for _, n := range nodes {
			budgets[n.ID] = n.Budget
		}
		part, initialEdges := anchor.Seed(g, func(id uint64) float64 { return budgets[id] })
		opts.Partition = part
		opts.InitialEdges = initialEdges
	}

	log.Println("Running Borůvka forest build...")
	edges, err := forest.Build(nodes, opts)
	if err != nil {
		log.Fatalf("Failed to build forest: %v", err)
	}
	log.Printf("Accepted %d edges", len(edges))

	if *minComponent > 1 {
		before := len(edges)
		edges = postfilter.ByMinComponentSize(edges, *minComponent)
		log.Printf("Postfilter dropped %d edges (min component %d)", before-len(edges), *minComponent)
	}

	log.Printf("Writing GeoJSON to %s...", *output)
	coordTable := make(map[uint64][2]float64, len(nodes))
	for _, n := range nodes {
		coordTable[n.ID] = [2]float64{n.Lon, n.Lat}
	}
	coords := func(id uint64) (lon, lat float64, ok bool) {
		c, ok := coordTable[id]
		return c[0], c[1], ok
	}

	of, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer of.Close()

	if err := (emit.GeoJSONEmit{}).Write(of, edges, coords); err != nil {
		log.Fatalf("Failed to write GeoJSON: %v", err)
	}

	log.Printf("Done in %s. Output: %s", time.Since(start).Round(time.Millisecond), *output)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
