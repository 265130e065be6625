package handlers

import (
	"geo-forensics-service/internal/ports"
	"net/http"
)

type HealthHandler struct {
	Pipeline ports.ReadinessChecker
}

// Health reports liveness, plus whether AI resolution is configured.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok", "resolution": "ready"}
	if h.Pipeline != nil {
		if err := h.Pipeline.Ready(); err != nil {
			res["resolution"] = err.Error()
		}
	}
	writeJSON(w, r, http.StatusOK, res)
}
