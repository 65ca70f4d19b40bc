// Package emit implements the EmitAdapter collaborator: it serialises
// an accepted-edge forest to GeoJSON, the natural counterpart to
// pkg/anchor's OSM ingestion on the output side.
package emit

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"map_router/pkg/forest"
)

// GeoJSONEmit writes an accepted-edge sequence as a GeoJSON
// FeatureCollection of LineString features, one per edge, each
// carrying the edge's endpoints and length as properties.
type GeoJSONEmit struct{}

// coordsOf looks up a node's (lon, lat) pair given its id.
type coordsOf func(id uint64) (lon, lat float64, ok bool)

// Write serialises edges to w as a single GeoJSON FeatureCollection.
// coords resolves a node id to its coordinates; an edge whose
// endpoint cannot be resolved is skipped rather than failing the
// whole write, since a partial forest is still useful output.
func (GeoJSONEmit) Write(w io.Writer, edges []forest.AcceptedEdge, coords coordsOf) error {
	fc := geojson.NewFeatureCollection()

	for _, e := range edges {
		ulon, ulat, ok := coords(e.U)
		if !ok {
			continue
		}
		vlon, vlat, ok := coords(e.V)
		if !ok {
			continue
		}

		line := orb.LineString{
			{ulon, ulat},
			{vlon, vlat},
		}
		feat := geojson.NewFeature(line)
		feat.Properties["u"] = e.U
		feat.Properties["v"] = e.V
		feat.Properties["length_m"] = e.Length
		fc.Append(feat)
	}

	raw, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("emit: marshal feature collection: %w", err)
	}

	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("emit: write feature collection: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}
