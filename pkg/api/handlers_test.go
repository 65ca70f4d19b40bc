package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"map_router/pkg/forest"
)

// mockBuilder implements ForestBuilder for testing.
type mockBuilder struct {
	edges []forest.AcceptedEdge
	err   error
}

func (m *mockBuilder) Build(ctx context.Context, nodes []forest.Node, anchor bool) ([]forest.AcceptedEdge, error) {
	return m.edges, m.err
}

func TestHandleForest_Success(t *testing.T) {
	mock := &mockBuilder{
		edges: []forest.AcceptedEdge{
			{U: 1, V: 2, Length: 1113.2},
		},
	}
	h := NewHandlers(mock, StatsResponse{NumNodes: 100})

	body := `{"nodes":[{"id":1,"lon":103.8,"lat":1.3,"budget":500},{"id":2,"lon":103.81,"lat":1.31,"budget":500}]}`
	req := httptest.NewRequest("POST", "/api/v1/forest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleForest(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp ForestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Edges) != 1 {
		t.Fatalf("Edges length = %d, want 1", len(resp.Edges))
	}
	if resp.Edges[0].LengthM != 1113.2 {
		t.Errorf("LengthM = %f, want 1113.2", resp.Edges[0].LengthM)
	}
}

func TestHandleForest_InvalidJSON(t *testing.T) {
	h := NewHandlers(&mockBuilder{}, StatsResponse{})

	req := httptest.NewRequest("POST", "/api/v1/forest", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleForest(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleForest_MissingContentType(t *testing.T) {
	h := NewHandlers(&mockBuilder{}, StatsResponse{})

	body := `{"nodes":[{"id":1,"lon":103.8,"lat":1.3,"budget":500}]}`
	req := httptest.NewRequest("POST", "/api/v1/forest", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.HandleForest(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleForest_NoNodes(t *testing.T) {
	h := NewHandlers(&mockBuilder{}, StatsResponse{})

	req := httptest.NewRequest("POST", "/api/v1/forest", strings.NewReader(`{"nodes":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleForest(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleForest_OutOfBounds(t *testing.T) {
	h := NewHandlers(&mockBuilder{}, StatsResponse{})

	body := `{"nodes":[{"id":1,"lon":103.8,"lat":91.0,"budget":500}]}`
	req := httptest.NewRequest("POST", "/api/v1/forest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleForest(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleForest_NegativeBudget(t *testing.T) {
	h := NewHandlers(&mockBuilder{}, StatsResponse{})

	body := `{"nodes":[{"id":1,"lon":103.8,"lat":1.3,"budget":-5}]}`
	req := httptest.NewRequest("POST", "/api/v1/forest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleForest(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleForest_InvalidInput(t *testing.T) {
	mock := &mockBuilder{err: forest.ErrInvalidInput}
	h := NewHandlers(mock, StatsResponse{})

	body := `{"nodes":[{"id":1,"lon":103.8,"lat":1.3,"budget":500}]}`
	req := httptest.NewRequest("POST", "/api/v1/forest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleForest(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(&mockBuilder{}, StatsResponse{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want 'ok'", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	stats := StatsResponse{NumNodes: 5000, NumAnchorNodes: 120}
	h := NewHandlers(&mockBuilder{}, stats)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()

	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.NumNodes != 5000 {
		t.Errorf("NumNodes = %d, want 5000", resp.NumNodes)
	}
}
