package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db      dbPinger
	version string
}

func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status    string      `json:"status"`
	Version   string      `json:"version,omitempty"`
	Database  *CompStatus `json:"database,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200 while the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 when the database does not respond to a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports the database status with ping latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Version: h.version}
	status := http.StatusOK

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "down"
		resp.Database = &CompStatus{Status: "down"}
		status = http.StatusServiceUnavailable
	} else {
		resp.Database = &CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	resp.Timestamp = time.Now()
	writeJSON(w, status, resp)
}
