package services

import (
	"geo-forensics-service/internal/domain"
	"math"
)

// Mean earth radius (IUGG) in kilometres.
const EarthRadiusKm = 6371.0088

// GreatCircleKm returns the haversine distance between a and b.
func GreatCircleKm(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Legs returns the distance of every consecutive pair of points.
func Legs(points []domain.Coordinates) []float64 {
	if len(points) < 2 {
		return []float64{}
	}
	legs := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		legs = append(legs, GreatCircleKm(points[i-1], points[i]))
	}
	return legs
}

// PathDistance sums the legs of an ordered list of points.
func PathDistance(points []domain.Coordinates) float64 {
	total := 0.0
	for _, leg := range Legs(points) {
		total += leg
	}
	return total
}

// TotalDistance is the length of the track in kilometres, following items in
// track order. Empty and single-item tracks have length 0.
func TotalDistance(track domain.Track) float64 {
	return PathDistance(track.Points())
}

// TrackLegs returns the per-leg distances of a track.
func TrackLegs(track domain.Track) []float64 {
	return Legs(track.Points())
}
