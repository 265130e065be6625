package tool

import (
	"context"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/services"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MetadataTrajectoryDistance describes the trajectory_distance tool.
var MetadataTrajectoryDistance = &mcp.Tool{
	Name: "trajectory_distance",
	Description: "Compute the great-circle length, in kilometres, of an ordered path of points. " +
		"Legs are measured between consecutive points in the order given; " +
		"fewer than two points yield a distance of 0.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"points"},
		"properties": map[string]interface{}{
			"points": map[string]interface{}{
				"type":        "array",
				"description": "Ordered points with decimal-degree lat and lon",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []string{"lat", "lon"},
					"properties": map[string]interface{}{
						"lat": map[string]interface{}{"type": "number"},
						"lon": map[string]interface{}{"type": "number"},
					},
				},
			},
		},
	},
}

// Point is a decimal-degree coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// InputTrajectoryDistance is the input for the TrajectoryDistance tool.
type InputTrajectoryDistance struct {
	Points []Point `json:"points"`
}

// OutputTrajectoryDistance is the output for the TrajectoryDistance tool.
type OutputTrajectoryDistance struct {
	TotalDistanceKm float64   `json:"total_distance_km"`
	LegsKm          []float64 `json:"legs_km"`
}

// TrajectoryDistance sums the great-circle legs of the given path.
func TrajectoryDistance(_ context.Context, _ *mcp.CallToolRequest, input InputTrajectoryDistance) (*mcp.CallToolResult, OutputTrajectoryDistance, error) {
	points := make([]domain.Coordinates, 0, len(input.Points))
	for i, p := range input.Points {
		c := domain.Coordinates{Lat: p.Lat, Lon: p.Lon}
		if !c.Valid() {
			return nil, OutputTrajectoryDistance{}, fmt.Errorf("point %d is out of range: lat=%f lon=%f", i, p.Lat, p.Lon)
		}
		points = append(points, c)
	}

	return nil, OutputTrajectoryDistance{
		TotalDistanceKm: services.PathDistance(points),
		LegsKm:          services.Legs(points),
	}, nil
}
