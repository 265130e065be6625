package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Report whether the coordinates fall inside the valid WGS 84 ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Return a Google Maps navigation link centered on the coordinates.
func (c Coordinates) MapsURL() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%g,%g", c.Lat, c.Lon)
}
