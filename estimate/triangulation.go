package estimate

import (
	"fmt"

	"github.com/jyjeanne/hornet-nest-locator/geo"
)

// Estimates returns one single-observation estimate per observation, in input
// order, all using the same method.
func (c *Calculator) Estimates(observations []Observation, method Method) ([]HiveLocation, error) {
	out := make([]HiveLocation, 0, len(observations))
	for i, obs := range observations {
		est, err := c.FromSingleObservation(obs, method)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", i+1, err)
		}
		out = append(out, est)
	}
	return out, nil
}

// FromMultipleObservations combines two or more observations into one estimate.
//
// Each observation is projected on its own; the result sits at the unweighted
// mean latitude and longitude of those projections. Its confidence radius is the
// mean individual radius plus the largest distance from the centroid to any
// individual projection. Distance and bearing are measured from the first
// observation to the centroid. The mean is taken on raw longitudes, so estimates
// straddling the antimeridian average to the wrong side of the globe.
func (c *Calculator) FromMultipleObservations(observations []Observation, method Method) (HiveLocation, error) {
	hive, _, err := c.Triangulate(observations, method)
	return hive, err
}

// Triangulate is FromMultipleObservations that also returns the per-observation
// estimates the centroid was built from, in input order.
func (c *Calculator) Triangulate(observations []Observation, method Method) (HiveLocation, []HiveLocation, error) {
	if len(observations) < 2 {
		return HiveLocation{}, nil, fmt.Errorf("%w, got %d", ErrInsufficientObservations, len(observations))
	}
	if err := method.validate(); err != nil {
		return HiveLocation{}, nil, err
	}

	estimates, err := c.Estimates(observations, method)
	if err != nil {
		return HiveLocation{}, nil, err
	}

	n := float64(len(estimates))
	var sumLat, sumLon, sumConfidence float64
	for _, est := range estimates {
		sumLat += est.Latitude
		sumLon += est.Longitude
		sumConfidence += est.ConfidenceRadius
	}
	avgLat := sumLat / n
	avgLon := sumLon / n

	spread := 0.0
	for _, est := range estimates {
		if d := geo.HaversineDistance(avgLat, avgLon, est.Latitude, est.Longitude); d > spread {
			spread = d
		}
	}

	first := observations[0]
	return HiveLocation{
		Latitude:             avgLat,
		Longitude:            avgLon,
		DistanceFromObserver: geo.HaversineDistance(first.Latitude(), first.Longitude(), avgLat, avgLon),
		BearingFromObserver:  geo.BearingBetweenPoints(first.Latitude(), first.Longitude(), avgLat, avgLon),
		ConfidenceRadius:     sumConfidence/n + spread,
		CalculationMethod:    triangulationTag(len(observations), method),
		Timestamp:            c.now(),
	}, estimates, nil
}
