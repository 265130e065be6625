package dto

type EvidenceItemResponse struct {
	File         string  `json:"file"`
	Provenance   string  `json:"provenance"`
	Label        string  `json:"label"`
	Description  string  `json:"description,omitempty"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	MapsURL      string  `json:"maps_url"`
	RawModelText *string `json:"raw_model_text,omitempty"`
}

type DiagnosticResponse struct {
	File    string `json:"file"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type InvestigationResponse struct {
	BatchID         string                 `json:"batch_id"`
	Track           []EvidenceItemResponse `json:"track"`
	Diagnostics     []DiagnosticResponse   `json:"diagnostics"`
	Resolved        int                    `json:"resolved"`
	Failed          int                    `json:"failed"`
	TotalDistanceKm float64                `json:"total_distance_km"`
	LegsKm          []float64              `json:"legs_km"`
}
