package estimate

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// bearingEpsilon is the tolerance for treating a bearing as exactly 360°.
const bearingEpsilon = 1e-9

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// observationFields carries the numeric inputs through the validator.
type observationFields struct {
	Latitude      float64  `validate:"finite,gte=-90,lte=90"`
	Longitude     float64  `validate:"finite,gte=-180,lte=180"`
	Bearing       float64  `validate:"finite,gte=0,lte=360"`
	RoundTripTime float64  `validate:"finite,gt=0"`
	Speed         *float64 `validate:"omitempty,finite,gt=0"`
}

// Observation is a single directional sighting of a hornet leaving a bait station.
//
// Observations can only be obtained from NewObservation, so every instance in
// circulation has passed range validation. Units: degrees for position and
// bearing, seconds for the round trip, meters per second for speed.
type Observation struct {
	latitude      float64
	longitude     float64
	bearing       float64
	roundTripTime float64
	speed         float64
	hasSpeed      bool
	timestamp     time.Time
	notes         string
	mark          string
	valid         bool
}

// ObservationOption sets an optional Observation field.
type ObservationOption func(*Observation)

// WithSpeed records the measured flight speed in meters per second.
func WithSpeed(metersPerSecond float64) ObservationOption {
	return func(o *Observation) {
		o.speed = metersPerSecond
		o.hasSpeed = true
	}
}

// WithTimestamp overrides the default creation-time timestamp.
func WithTimestamp(ts time.Time) ObservationOption {
	return func(o *Observation) { o.timestamp = ts }
}

// WithNotes attaches free-text notes (weather, flight pattern, ...).
func WithNotes(notes string) ObservationOption {
	return func(o *Observation) { o.notes = notes }
}

// WithIdentifyingMark records the paint mark used to follow an individual hornet.
func WithIdentifyingMark(mark string) ObservationOption {
	return func(o *Observation) { o.mark = mark }
}

// NewObservation validates the inputs and returns an Observation.
//
// Latitude must be within [-90, 90], longitude within [-180, 180], bearing within
// [0, 360] and the round trip time strictly positive; a speed, if given, must be
// strictly positive. A bearing of 360 is stored as 0. On failure the returned
// error is a *ValidationError wrapping ErrValidation.
func NewObservation(latitude, longitude, bearing, roundTripTime float64, opts ...ObservationOption) (Observation, error) {
	o := Observation{
		latitude:      latitude,
		longitude:     longitude,
		bearing:       bearing,
		roundTripTime: roundTripTime,
	}
	for _, opt := range opts {
		opt(&o)
	}

	fields := observationFields{
		Latitude:      o.latitude,
		Longitude:     o.longitude,
		Bearing:       o.bearing,
		RoundTripTime: o.roundTripTime,
	}
	if o.hasSpeed {
		speed := o.speed
		fields.Speed = &speed
	}
	if err := validate.Struct(fields); err != nil {
		return Observation{}, toValidationError(err, fields)
	}

	if math.Abs(o.bearing-360) < bearingEpsilon {
		o.bearing = 0
	}
	if o.timestamp.IsZero() {
		o.timestamp = time.Now()
	}
	o.valid = true
	return o, nil
}

func toValidationError(err error, f observationFields) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		var e FieldError
		switch fe.StructField() {
		case "Latitude":
			e = FieldError{Field: "latitude", Value: f.Latitude,
				Message: fmt.Sprintf("latitude must be between -90 and 90, got %v", f.Latitude)}
		case "Longitude":
			e = FieldError{Field: "longitude", Value: f.Longitude,
				Message: fmt.Sprintf("longitude must be between -180 and 180, got %v", f.Longitude)}
		case "Bearing":
			e = FieldError{Field: "bearing", Value: f.Bearing,
				Message: fmt.Sprintf("bearing must be between 0 and 360 (inclusive), got %v", f.Bearing)}
		case "RoundTripTime":
			e = FieldError{Field: "round_trip_time", Value: f.RoundTripTime,
				Message: fmt.Sprintf("round trip time must be positive, got %v", f.RoundTripTime)}
		case "Speed":
			e = FieldError{Field: "speed", Value: *f.Speed,
				Message: fmt.Sprintf("speed must be positive, got %v", *f.Speed)}
		default:
			e = FieldError{Field: fe.Field(), Message: fe.Error()}
		}
		out.Errors = append(out.Errors, e)
	}
	return out
}

func (o Observation) Latitude() float64  { return o.latitude }
func (o Observation) Longitude() float64 { return o.longitude }

// Bearing is the departure heading in degrees, within [0, 360).
func (o Observation) Bearing() float64 { return o.bearing }

// RoundTripTime is the outbound plus return flight time in seconds.
func (o Observation) RoundTripTime() float64 { return o.roundTripTime }

// Speed returns the flight speed in m/s and whether one was recorded.
func (o Observation) Speed() (float64, bool) { return o.speed, o.hasSpeed }

func (o Observation) Timestamp() time.Time    { return o.timestamp }
func (o Observation) Notes() string           { return o.notes }
func (o Observation) IdentifyingMark() string { return o.mark }

// EmpiricalDistance is the one-way distance in meters under the
// 100 m per minute of round trip rule.
func (o Observation) EmpiricalDistance() float64 {
	return (o.roundTripTime / 60.0) * DistancePerMinute
}

// TheoreticalDistance is speed × round trip / 2 in meters. The second return
// value is false when no speed was recorded.
func (o Observation) TheoreticalDistance() (float64, bool) {
	if !o.hasSpeed {
		return 0, false
	}
	return (o.speed * o.roundTripTime) / 2.0, true
}

// EstimatedDistance is an alias for EmpiricalDistance.
func (o Observation) EstimatedDistance() float64 {
	return o.EmpiricalDistance()
}
