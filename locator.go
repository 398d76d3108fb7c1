package nestlocator

import (
	"context"
	"errors"
	"fmt"

	"github.com/jyjeanne/hornet-nest-locator/config"
	"github.com/jyjeanne/hornet-nest-locator/estimate"
	"github.com/jyjeanne/hornet-nest-locator/formatter"
	"github.com/jyjeanne/hornet-nest-locator/internal/logging"
	"github.com/jyjeanne/hornet-nest-locator/internal/observability"
)

// ErrNoObservations is returned by Locate when called without observations.
var ErrNoObservations = errors.New("no observations")

const (
	kindSingle        = "single"
	kindTriangulation = "triangulation"
)

// Locator produces hive estimates and reports for a configured method
type Locator struct {
	calc    *estimate.Calculator
	method  estimate.Method
	log     logging.Logger
	metrics *observability.EstimateCollector
	reports *formatter.ReportBuilder
}

// Option customizes a Locator
type Option func(*Locator)

// WithLogger sets the logger; the default drops everything.
func WithLogger(l logging.Logger) Option {
	return func(loc *Locator) {
		if l != nil {
			loc.log = l
		}
	}
}

// WithMetrics records estimates and rejections on c.
func WithMetrics(c *observability.EstimateCollector) Option {
	return func(loc *Locator) { loc.metrics = c }
}

// WithCalculator replaces the default calculator, mostly to pin its clock in tests.
func WithCalculator(c *estimate.Calculator) Option {
	return func(loc *Locator) {
		if c != nil {
			loc.calc = c
		}
	}
}

// WithReportBuilder replaces the builder used for reports.
func WithReportBuilder(b *formatter.ReportBuilder) Option {
	return func(loc *Locator) {
		if b != nil {
			loc.reports = b
		}
	}
}

// New creates a Locator from configuration
func New(cfg config.AppConfig, opts ...Option) (*Locator, error) {
	method := estimate.MethodEmpirical
	if cfg.Calculator.Method != "" {
		m, err := estimate.ParseMethod(cfg.Calculator.Method)
		if err != nil {
			return nil, fmt.Errorf("calculator.method: %w", err)
		}
		method = m
	}

	loc := &Locator{
		calc:    estimate.NewCalculator(),
		method:  method,
		log:     logging.Noop(),
		reports: formatter.NewReportBuilder(cfg.Output.Codespace),
	}
	for _, opt := range opts {
		opt(loc)
	}
	return loc, nil
}

// Method returns the configured distance model
func (l *Locator) Method() estimate.Method { return l.method }

// Locate estimates the hive with the configured method.
func (l *Locator) Locate(ctx context.Context, observations []estimate.Observation) (formatter.Report, error) {
	return l.LocateWith(ctx, observations, l.method)
}

// LocateWith estimates the hive with an explicit method. One observation is
// projected directly; two or more are triangulated, with distance and bearing
// measured from the first. Observations carrying a speed also get a method
// comparison.
func (l *Locator) LocateWith(ctx context.Context, observations []estimate.Observation, method estimate.Method) (formatter.Report, error) {
	if err := ctx.Err(); err != nil {
		return formatter.Report{}, err
	}

	report, kind, err := l.locate(observations, method)
	if err != nil {
		l.metrics.RecordRejection(err)
		l.log.Warn(ctx, "estimate rejected",
			logging.Int("observations", len(observations)),
			logging.String("method", method.String()),
			logging.String("reason", observability.RejectionReason(err)),
			logging.Err(err),
		)
		return formatter.Report{}, err
	}

	l.metrics.RecordEstimate(kind, method, report.Hive)
	l.log.Info(ctx, "hive estimated",
		logging.String("report_id", report.ID),
		logging.String("calculation_method", report.Hive.CalculationMethod),
		logging.Float("latitude", report.Hive.Latitude),
		logging.Float("longitude", report.Hive.Longitude),
		logging.Float("distance_m", report.Hive.DistanceFromObserver),
		logging.Float("confidence_m", report.Hive.ConfidenceRadius),
	)
	return report, nil
}

func (l *Locator) locate(observations []estimate.Observation, method estimate.Method) (formatter.Report, string, error) {
	var (
		kind      string
		hive      estimate.HiveLocation
		estimates []estimate.HiveLocation
		err       error
	)
	switch len(observations) {
	case 0:
		return formatter.Report{}, "", ErrNoObservations
	case 1:
		kind = kindSingle
		hive, err = l.calc.FromSingleObservation(observations[0], method)
		if err != nil {
			return formatter.Report{}, "", err
		}
		estimates = []estimate.HiveLocation{hive}
	default:
		kind = kindTriangulation
		hive, estimates, err = l.calc.Triangulate(observations, method)
		if err != nil {
			return formatter.Report{}, "", err
		}
	}

	var comparisons []formatter.MethodComparison
	for i, obs := range observations {
		if _, ok := obs.Speed(); !ok {
			continue
		}
		c, err := l.calc.CompareMethods(obs)
		if err != nil {
			return formatter.Report{}, "", fmt.Errorf("observation %d: %w", i+1, err)
		}
		comparisons = append(comparisons, formatter.MethodComparison{Observation: i + 1, Comparison: c})
	}

	obs := make([]estimate.Observation, len(observations))
	copy(obs, observations)
	return l.reports.NewReport(obs, estimates, hive, comparisons), kind, nil
}

// Render formats a report produced by Locate
func (l *Locator) Render(r formatter.Report, format formatter.Format) ([]byte, error) {
	return l.reports.Build(r, format)
}
