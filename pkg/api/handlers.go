package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"map_router/pkg/forest"
)

// ForestBuilder is the dependency Handlers calls into to turn a node
// set into a forest, generalised from the teacher's point-to-point
// routing.Router interface to the forest-building operation this
// service performs.
type ForestBuilder interface {
	Build(ctx context.Context, nodes []forest.Node, anchor bool) ([]forest.AcceptedEdge, error)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	builder ForestBuilder
	stats   StatsResponse
}

// NewHandlers creates handlers with the given builder.
func NewHandlers(builder ForestBuilder, stats StatsResponse) *Handlers {
	return &Handlers{
		builder: builder,
		stats:   stats,
	}
}

// maxRequestBytes bounds the request body the same way the teacher
// bounded a route request, scaled up since a node set is much larger
// than a pair of coordinates.
const maxRequestBytes = 16 << 20

// HandleForest handles POST /api/v1/forest.
func (h *Handlers) HandleForest(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req ForestRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if len(req.Nodes) == 0 {
		writeError(w, http.StatusBadRequest, "no_nodes", "nodes")
		return
	}

	nodes := make([]forest.Node, len(req.Nodes))
	for i, n := range req.Nodes {
		if err := validateNode(n); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_node", "nodes")
			return
		}
		nodes[i] = forest.Node{ID: n.ID, Lon: n.Lon, Lat: n.Lat, Budget: n.Budget}
	}

	edges, err := h.builder.Build(r.Context(), nodes, req.Anchor)
	if err != nil {
		if errors.Is(err, forest.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", "")
			return
		}
		if errors.Is(err, forest.ErrInconsistentAnchor) {
			writeError(w, http.StatusUnprocessableEntity, "inconsistent_anchor", "")
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	resp := ForestResponse{Edges: make([]EdgeJSON, len(edges))}
	for i, e := range edges {
		resp.Edges[i] = EdgeJSON{U: e.U, V: e.V, LengthM: e.Length}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func validateNode(n NodeJSON) error {
	if math.IsNaN(n.Lat) || math.IsNaN(n.Lon) || math.IsInf(n.Lat, 0) || math.IsInf(n.Lon, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if n.Lat < -90 || n.Lat > 90 || n.Lon < -180 || n.Lon > 180 {
		return errors.New("coordinates out of range")
	}
	if math.IsNaN(n.Budget) || math.IsInf(n.Budget, -1) || n.Budget < 0 {
		return errors.New("budget must be non-negative or +Inf")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
