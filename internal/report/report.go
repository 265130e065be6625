package report

import (
	"encoding/csv"
	"fmt"
	"geo-forensics-service/internal/services"
	"io"
	"strconv"
)

// Header is the first row of every report.
var Header = []string{"file", "provenance", "label", "lat", "lon", "maps_url"}

const (
	totalDistanceLabel = "total_distance_km"
	failedProvenance   = "FAILED"
)

// WriteCSV writes one row per track item in track order, a blank line, the
// total distance row, and one FAILED row per diagnostic.
func WriteCSV(w io.Writer, result services.ResolveResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for _, item := range result.Track {
		if item.Coordinates == nil {
			continue
		}
		row := []string{
			item.SourceFile,
			string(item.Provenance),
			item.Label,
			formatCoord(item.Coordinates.Lat),
			formatCoord(item.Coordinates.Lon),
			item.MapsURL(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	total := strconv.FormatFloat(result.TotalDistance(), 'f', 3, 64)
	if err := cw.Write([]string{totalDistanceLabel, total}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for _, d := range result.Diagnostics {
		row := []string{d.File, failedProvenance, string(d.Kind), "", "", d.Message}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
