package tool

import (
	"context"
	"errors"
	"fmt"
	"geo-forensics-service/internal/adapters/evidence"
	"geo-forensics-service/internal/api/handlers"
	"geo-forensics-service/internal/services"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MetadataResolveEvidenceFolder describes the resolve_evidence_folder tool.
var MetadataResolveEvidenceFolder = &mcp.Tool{
	Name: "resolve_evidence_folder",
	Description: "Geolocate every image (png, jpg, jpeg, webp) in a local folder, in file-name order. " +
		"Embedded EXIF GPS tags are used when present; otherwise a vision model identifies the landmark. " +
		"Returns the ordered track with provenance for each point, per-file diagnostics for images that " +
		"could not be placed, and the total great-circle distance in kilometres.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"folder"},
		"properties": map[string]interface{}{
			"folder": map[string]interface{}{
				"type":        "string",
				"description": "Absolute or working-directory-relative path of the folder holding the evidence images",
			},
		},
	},
}

// InputResolveEvidenceFolder is the input for the ResolveEvidenceFolder tool.
type InputResolveEvidenceFolder struct {
	Folder string `json:"folder"`
}

// TrackPoint is one resolved image in the output track.
type TrackPoint struct {
	File        string  `json:"file"`
	Provenance  string  `json:"provenance"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	MapsURL     string  `json:"maps_url"`
}

// OutputResolveEvidenceFolder is the output for the ResolveEvidenceFolder tool.
type OutputResolveEvidenceFolder struct {
	BatchID         string                `json:"batch_id"`
	Track           []TrackPoint          `json:"track"`
	Diagnostics     []services.Diagnostic `json:"diagnostics"`
	Resolved        int                   `json:"resolved"`
	Failed          int                   `json:"failed"`
	TotalDistanceKm float64               `json:"total_distance_km"`
}

// Resolver resolves a folder's images through the pipeline.
type Resolver struct {
	Pipeline handlers.BatchResolver
}

// ResolveEvidenceFolder loads the folder's images and runs them through the pipeline.
func (r *Resolver) ResolveEvidenceFolder(ctx context.Context, _ *mcp.CallToolRequest, input InputResolveEvidenceFolder) (*mcp.CallToolResult, OutputResolveEvidenceFolder, error) {
	if input.Folder == "" {
		return nil, OutputResolveEvidenceFolder{}, errors.New("folder is required")
	}

	sources, err := evidence.LoadFolder(ctx, input.Folder)
	if err != nil {
		return nil, OutputResolveEvidenceFolder{}, err
	}
	if len(sources) == 0 {
		return nil, OutputResolveEvidenceFolder{}, fmt.Errorf("no images found in %s", input.Folder)
	}

	result, err := r.Pipeline.Resolve(ctx, sources)
	if err != nil {
		return nil, OutputResolveEvidenceFolder{}, err
	}

	out := OutputResolveEvidenceFolder{
		BatchID:         result.BatchID.String(),
		Track:           make([]TrackPoint, 0, len(result.Track)),
		Diagnostics:     result.Diagnostics,
		Resolved:        result.Resolved,
		Failed:          result.Failed,
		TotalDistanceKm: result.TotalDistance(),
	}
	for _, item := range result.Track {
		if item.Coordinates == nil {
			continue
		}
		out.Track = append(out.Track, TrackPoint{
			File:        item.SourceFile,
			Provenance:  string(item.Provenance),
			Label:       item.Label,
			Description: item.Description,
			Lat:         item.Coordinates.Lat,
			Lon:         item.Coordinates.Lon,
			MapsURL:     item.MapsURL(),
		})
	}

	return nil, out, nil
}
