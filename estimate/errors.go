package estimate

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is wrapped by every ValidationError returned from NewObservation.
	ErrValidation = errors.New("invalid observation")

	// ErrInvalidObservation is returned when an Observation was not built by NewObservation.
	ErrInvalidObservation = errors.New("observation was not constructed with NewObservation")

	ErrSpeedRequired            = errors.New("speed required")
	ErrUnknownMethod            = errors.New("unknown method")
	ErrInsufficientObservations = errors.New("need at least 2 observations for triangulation")
)

// FieldError describes one out-of-range observation field
type FieldError struct {
	Field   string
	Value   float64
	Message string
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
