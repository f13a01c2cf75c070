package handler

import (
	"net/http"

	"github.com/litshelf/litshelf/internal/metrics"
)

// MetricsHandler exposes the in-memory counter snapshot.
type MetricsHandler struct {
	source metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(source metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{source: source}
}

// Snapshot handles GET /internal/metrics.
func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Snapshot())
}
