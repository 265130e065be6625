package dto

type PointRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type TrajectoryRequest struct {
	Points []PointRequest `json:"points"`
}

type TrajectoryResponse struct {
	Points          int       `json:"points"`
	TotalDistanceKm float64   `json:"total_distance_km"`
	LegsKm          []float64 `json:"legs_km"`
}
