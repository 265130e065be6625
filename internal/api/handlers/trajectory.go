package handlers

import (
	"encoding/json"
	"fmt"
	"geo-forensics-service/internal/api/dto"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/services"
	"io"
	"net/http"
)

const maxTrajectoryPoints = 10000

// Trajectory sums great-circle legs over an ordered list of points.
func Trajectory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TrajectoryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Points) > maxTrajectoryPoints {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d points are allowed", maxTrajectoryPoints))
		return
	}

	points := make([]domain.Coordinates, 0, len(req.Points))
	for i, p := range req.Points {
		c := domain.Coordinates{Lat: p.Lat, Lon: p.Lon}
		if !c.Valid() {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("point %d is out of range", i))
			return
		}
		points = append(points, c)
	}

	writeJSON(w, r, http.StatusOK, dto.TrajectoryResponse{
		Points:          len(points),
		TotalDistanceKm: services.PathDistance(points),
		LegsKm:          services.Legs(points),
	})
}
