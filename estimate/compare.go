package estimate

import (
	"fmt"
	"math"
)

// Comparison holds the empirical and theoretical estimates for one observation.
type Comparison struct {
	Empirical         HiveLocation `json:"empirical"`
	Theoretical       HiveLocation `json:"theoretical"`
	DifferenceMeters  float64      `json:"difference_meters"`
	DifferencePercent float64      `json:"difference_percent"`
	Recommended       Method       `json:"recommended"`
}

// CompareMethods runs both distance models on an observation that carries a speed.
// The empirical model is always the recommended one; the theoretical result is
// diagnostic.
func (c *Calculator) CompareMethods(obs Observation) (Comparison, error) {
	if !obs.valid {
		return Comparison{}, ErrInvalidObservation
	}
	if _, ok := obs.Speed(); !ok {
		return Comparison{}, fmt.Errorf("%w for method comparison", ErrSpeedRequired)
	}

	empirical, err := c.FromSingleObservation(obs, MethodEmpirical)
	if err != nil {
		return Comparison{}, err
	}
	theoretical, err := c.FromSingleObservation(obs, MethodTheoretical)
	if err != nil {
		return Comparison{}, err
	}

	diff := math.Abs(empirical.DistanceFromObserver - theoretical.DistanceFromObserver)
	percent := 0.0
	if empirical.DistanceFromObserver > 0 {
		percent = diff * 100 / empirical.DistanceFromObserver
	}

	return Comparison{
		Empirical:         empirical,
		Theoretical:       theoretical,
		DifferenceMeters:  diff,
		DifferencePercent: percent,
		Recommended:       MethodEmpirical,
	}, nil
}
