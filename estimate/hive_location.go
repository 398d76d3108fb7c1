package estimate

import (
	"fmt"
	"time"

	"github.com/jyjeanne/hornet-nest-locator/geo"
)

// HiveLocation is a nest position estimate produced by a Calculator.
type HiveLocation struct {
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	DistanceFromObserver float64   `json:"distance_from_observer"` // meters
	BearingFromObserver  float64   `json:"bearing_from_observer"`  // degrees
	ConfidenceRadius     float64   `json:"confidence_radius"`      // meters
	CalculationMethod    string    `json:"calculation_method"`
	Timestamp            time.Time `json:"timestamp"`
}

func (h HiveLocation) String() string {
	return fmt.Sprintf(
		"Hive Location:\n"+
			"  Coordinates: %s\n"+
			"  Distance: %.0fm (%.2fkm)\n"+
			"  Bearing: %.1f°\n"+
			"  Confidence: ±%.0fm\n"+
			"  Method: %s",
		geo.FormatCoordinates(h.Latitude, h.Longitude),
		h.DistanceFromObserver, h.DistanceFromObserver/1000,
		h.BearingFromObserver,
		h.ConfidenceRadius,
		h.CalculationMethod,
	)
}

func singleObservationTag(m Method) string {
	return "single_observation_" + string(m)
}

func triangulationTag(points int, m Method) string {
	return fmt.Sprintf("triangulation_%d_points_%s", points, m)
}
