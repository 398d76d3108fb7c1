// Package observability exposes Prometheus metrics for nest estimates.
package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
)

// EstimateCollector bundles the Prometheus metrics recorded by the locator.
type EstimateCollector struct {
	gatherer prometheus.Gatherer

	Estimates        *prometheus.CounterVec
	Rejections       *prometheus.CounterVec
	ConfidenceRadius *prometheus.HistogramVec
	Distance         *prometheus.HistogramVec
}

// NewEstimateCollector registers estimate metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewEstimateCollector(reg prometheus.Registerer) (*EstimateCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	estimates, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nestlocator_estimates_total",
		Help: "Total number of hive location estimates, labeled by kind (single|triangulation) and distance method.",
	}, []string{"kind", "method"}), "nestlocator_estimates_total")
	if err != nil {
		return nil, err
	}

	rejections, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nestlocator_rejected_requests_total",
		Help: "Estimate requests rejected because of caller input, labeled by reason.",
	}, []string{"reason"}), "nestlocator_rejected_requests_total")
	if err != nil {
		return nil, err
	}

	confidence, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nestlocator_confidence_radius_meters",
		Help:    "Reported confidence radius of hive estimates in meters.",
		Buckets: []float64{50, 75, 100, 150, 200, 300, 500, 750, 1000, 2000},
	}, []string{"kind"}), "nestlocator_confidence_radius_meters")
	if err != nil {
		return nil, err
	}

	distance, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nestlocator_estimated_distance_meters",
		Help:    "One-way distance from the observer to the estimated hive in meters.",
		Buckets: []float64{100, 250, 500, 750, 1000, 1500, 2000, 3000, 5000},
	}, []string{"method"}), "nestlocator_estimated_distance_meters")
	if err != nil {
		return nil, err
	}

	return &EstimateCollector{
		gatherer:         gatherer,
		Estimates:        estimates,
		Rejections:       rejections,
		ConfidenceRadius: confidence,
		Distance:         distance,
	}, nil
}

// RecordEstimate counts a produced estimate and observes its distance and radius.
func (c *EstimateCollector) RecordEstimate(kind string, method estimate.Method, hive estimate.HiveLocation) {
	if c == nil {
		return
	}
	c.Estimates.WithLabelValues(kind, method.String()).Inc()
	c.ConfidenceRadius.WithLabelValues(kind).Observe(hive.ConfidenceRadius)
	c.Distance.WithLabelValues(method.String()).Observe(hive.DistanceFromObserver)
}

// RecordRejection counts a request that failed with a caller input error.
func (c *EstimateCollector) RecordRejection(err error) {
	if c == nil || err == nil {
		return
	}
	c.Rejections.WithLabelValues(RejectionReason(err)).Inc()
}

// WriteTextfile writes every gathered metric to path in the Prometheus text
// format, for collection by a node exporter textfile collector.
func (c *EstimateCollector) WriteTextfile(path string) error {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return prometheus.WriteToTextfile(path, gatherer)
}

// RejectionReason maps an estimate error onto a metric label value.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, estimate.ErrValidation):
		return "validation"
	case errors.Is(err, estimate.ErrInvalidObservation):
		return "invalid_observation"
	case errors.Is(err, estimate.ErrSpeedRequired):
		return "speed_required"
	case errors.Is(err, estimate.ErrUnknownMethod):
		return "unknown_method"
	case errors.Is(err, estimate.ErrInsufficientObservations):
		return "insufficient_observations"
	default:
		return "other"
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
