package estimate

import (
	"fmt"
	"math"
	"time"

	"github.com/jyjeanne/hornet-nest-locator/geo"
)

const (
	// DistancePerMinute is the one-way distance in meters per minute of round trip.
	DistancePerMinute = 100.0

	BearingUncertaintyDegrees = 10.0
	TimeUncertaintySeconds    = 5.0

	// MinConfidenceRadiusMeters is the practical search-radius floor; nests tend
	// to sit slightly beyond the projected point.
	MinConfidenceRadiusMeters = 50.0

	// DefaultTheoreticalTimingErrorMeters applies when a theoretical estimate has no speed.
	DefaultTheoreticalTimingErrorMeters = 50.0
)

// Calculator produces HiveLocation estimates from observations.
type Calculator struct {
	now func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock sets the clock used to timestamp estimates.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCalculator creates a Calculator.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromSingleObservation projects the observation along its bearing by the
// distance of the selected model.
//
// The theoretical model fails with ErrSpeedRequired when the observation has
// no speed; any other method value fails with ErrUnknownMethod.
func (c *Calculator) FromSingleObservation(obs Observation, method Method) (HiveLocation, error) {
	if !obs.valid {
		return HiveLocation{}, ErrInvalidObservation
	}

	var distance float64
	switch method {
	case MethodEmpirical:
		distance = obs.EmpiricalDistance()
	case MethodTheoretical:
		d, ok := obs.TheoreticalDistance()
		if !ok {
			return HiveLocation{}, fmt.Errorf("%w for theoretical method", ErrSpeedRequired)
		}
		distance = d
	default:
		return HiveLocation{}, method.validate()
	}

	lat, lon := geo.DestinationPoint(obs.Latitude(), obs.Longitude(), obs.Bearing(), distance)

	return HiveLocation{
		Latitude:             lat,
		Longitude:            lon,
		DistanceFromObserver: distance,
		BearingFromObserver:  obs.Bearing(),
		ConfidenceRadius:     c.confidenceRadius(obs, distance, method),
		CalculationMethod:    singleObservationTag(method),
		Timestamp:            c.now(),
	}, nil
}

// confidenceRadius combines timing and bearing uncertainty in quadrature and
// applies the MinConfidenceRadiusMeters floor.
func (c *Calculator) confidenceRadius(obs Observation, distance float64, method Method) float64 {
	var timeError float64
	if method == MethodEmpirical {
		// ±5 s at 100 m/min
		timeError = (TimeUncertaintySeconds / 60.0) * DistancePerMinute
	} else if speed, ok := obs.Speed(); ok {
		timeError = speed * TimeUncertaintySeconds / 2
	} else {
		timeError = DefaultTheoreticalTimingErrorMeters
	}

	// lateral error of a fixed angular error grows with range
	bearingError := distance * math.Sin(geo.DegreesToRadians(BearingUncertaintyDegrees))

	total := math.Sqrt(timeError*timeError + bearingError*bearingError)
	return math.Max(MinConfidenceRadiusMeters, total)
}
