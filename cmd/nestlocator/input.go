package main

import (
	"fmt"
	"io"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
	"github.com/jyjeanne/hornet-nest-locator/survey"
)

// shortRoundTripSeconds is the round trip below which a reading is most
// likely a stopwatch mistake.
const shortRoundTripSeconds = 10

// flagObservation is a single observation given on the command line
type flagObservation struct {
	lat, lon, bearing float64
	minutes, seconds  float64
	speed             float64
	hasSpeed          bool
	notes, mark       string
}

func (f flagObservation) observation() (estimate.Observation, error) {
	var opts []estimate.ObservationOption
	if f.hasSpeed {
		opts = append(opts, estimate.WithSpeed(f.speed))
	}
	if f.notes != "" {
		opts = append(opts, estimate.WithNotes(f.notes))
	}
	if f.mark != "" {
		opts = append(opts, estimate.WithIdentifyingMark(f.mark))
	}
	rtt := survey.RoundTrip{Minutes: f.minutes, Seconds: f.seconds}.Total()
	return estimate.NewObservation(f.lat, f.lon, f.bearing, rtt, opts...)
}

// loadSurvey reads a survey sheet from a file path, or from stdin when path is "-".
func loadSurvey(path string, stdin io.Reader) (*survey.Survey, error) {
	var (
		s   *survey.Survey
		err error
	)
	if path == "-" {
		s, err = survey.Decode(stdin)
	} else {
		s, err = survey.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("survey %s: %w", path, err)
	}
	return s, nil
}
