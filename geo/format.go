package geo

import (
	"fmt"
	"math"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// FormatCoordinates formats a position as "48.858400°N, 2.294500°E"
func FormatCoordinates(lat, lon float64) string {
	latDir := "N"
	if lat < 0 {
		latDir = "S"
	}
	lonDir := "E"
	if lon < 0 {
		lonDir = "W"
	}
	return fmt.Sprintf("%.6f°%s, %.6f°%s", math.Abs(lat), latDir, math.Abs(lon), lonDir)
}

// CompassPoint returns the 16-point compass rose label for a bearing.
// Each label covers 22.5°, centred on its heading: [11.25, 33.75) is NNE.
func CompassPoint(bearing float64) string {
	idx := int(math.Floor((bearing+11.25)/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// FormatBearing formats a bearing as a compass label with degrees, e.g. "NE (45.0°)"
func FormatBearing(bearing float64) string {
	return fmt.Sprintf("%s (%.1f°)", CompassPoint(bearing), bearing)
}
