package api

// NodeJSON is a demand node in the JSON request body.
type NodeJSON struct {
	ID     uint64  `json:"id"`
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Budget float64 `json:"budget"`
}

// ForestRequest is the JSON body for POST /api/v1/forest.
type ForestRequest struct {
	Nodes  []NodeJSON `json:"nodes"`
	Anchor bool       `json:"anchor"`
}

// EdgeJSON is one accepted edge in the response.
type EdgeJSON struct {
	U        uint64  `json:"u"`
	V        uint64  `json:"v"`
	LengthM  float64 `json:"length_m"`
}

// ForestResponse is the JSON response for a successful forest build.
type ForestResponse struct {
	Edges []EdgeJSON `json:"edges"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes       uint32 `json:"num_nodes"`
	NumAnchorNodes uint32 `json:"num_anchor_nodes"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
