package survey

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
)

// ErrInvalidSheet is wrapped by structural survey sheet errors.
var ErrInvalidSheet = errors.New("invalid survey sheet")

// RoundTrip is a round-trip time entered as minutes and seconds, the way it is
// read off a stopwatch in the field.
type RoundTrip struct {
	Minutes float64 `yaml:"minutes" validate:"gte=0"`
	Seconds float64 `yaml:"seconds" validate:"gte=0"`
}

// Total returns the round trip in seconds
func (r RoundTrip) Total() float64 {
	return r.Minutes*60 + r.Seconds
}

// Record is one observation as written in a survey sheet
type Record struct {
	Latitude        *float64   `yaml:"latitude" validate:"required"`
	Longitude       *float64   `yaml:"longitude" validate:"required"`
	Bearing         *float64   `yaml:"bearing" validate:"required"`
	RoundTripTime   *float64   `yaml:"round_trip_time" validate:"required_without=RoundTrip"`
	RoundTrip       *RoundTrip `yaml:"round_trip"`
	Speed           *float64   `yaml:"speed"`
	Timestamp       time.Time  `yaml:"timestamp"`
	Notes           string     `yaml:"notes"`
	IdentifyingMark string     `yaml:"identifying_mark"`
}

// Sheet is the raw YAML document
type Sheet struct {
	Method       string   `yaml:"method" validate:"omitempty,oneof=empirical theoretical"`
	Observations []Record `yaml:"observations" validate:"required,min=1,dive"`
}

// Survey is a validated sheet
type Survey struct {
	// Method is empty when the sheet does not choose one.
	Method       estimate.Method
	Observations []estimate.Observation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Observation converts the record into a validated estimate.Observation
func (r Record) Observation() (estimate.Observation, error) {
	if r.RoundTripTime != nil && r.RoundTrip != nil {
		return estimate.Observation{}, fmt.Errorf("%w: set either round_trip_time or round_trip, not both", ErrInvalidSheet)
	}
	rtt := 0.0
	if r.RoundTripTime != nil {
		rtt = *r.RoundTripTime
	} else if r.RoundTrip != nil {
		rtt = r.RoundTrip.Total()
	}

	var opts []estimate.ObservationOption
	if r.Speed != nil {
		opts = append(opts, estimate.WithSpeed(*r.Speed))
	}
	if !r.Timestamp.IsZero() {
		opts = append(opts, estimate.WithTimestamp(r.Timestamp))
	}
	if r.Notes != "" {
		opts = append(opts, estimate.WithNotes(r.Notes))
	}
	if r.IdentifyingMark != "" {
		opts = append(opts, estimate.WithIdentifyingMark(r.IdentifyingMark))
	}

	return estimate.NewObservation(deref(r.Latitude), deref(r.Longitude), deref(r.Bearing), rtt, opts...)
}

// Parse decodes and validates a survey sheet
func Parse(data []byte) (*Survey, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads a survey sheet from path
func Load(path string) (*Survey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a survey sheet from r. Unknown keys are rejected so that typos
// such as "bearnig" do not silently drop a value, and so is a second YAML
// document after "---".
func Decode(r io.Reader) (*Survey, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sheet Sheet
	if err := dec.Decode(&sheet); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSheet)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSheet, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: a sheet holds a single document, merge the observations into one list", ErrInvalidSheet)
	}
	return FromSheet(sheet)
}

// FromSheet validates an already decoded sheet
func FromSheet(sheet Sheet) (*Survey, error) {
	if err := validate.Struct(sheet); err != nil {
		return nil, describe(err)
	}

	s := &Survey{}
	if sheet.Method != "" {
		m, err := estimate.ParseMethod(sheet.Method)
		if err != nil {
			return nil, err
		}
		s.Method = m
	}

	for i, rec := range sheet.Observations {
		obs, err := rec.Observation()
		if err != nil {
			return nil, fmt.Errorf("survey observation %d: %w", i+1, err)
		}
		s.Observations = append(s.Observations, obs)
	}
	return s, nil
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSheet, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := strings.TrimPrefix(fe.Namespace(), "Sheet.")
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s: %s=%s", ns, fe.Tag(), fe.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s: %s", ns, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidSheet, strings.Join(problems, "; "))
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
