package api

import (
	"geo-forensics-service/internal/api/handlers"
	"geo-forensics-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(pipeline *services.ResolutionPipeline) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Pipeline: pipeline}
	investigationHandler := &handlers.InvestigationHandler{Pipeline: pipeline}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/investigations", investigationHandler.Investigate)
	mux.HandleFunc("/trajectory", handlers.Trajectory)

	return requestIDMiddleware(loggingMiddleware(mux))
}
