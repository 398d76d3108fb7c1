package nestlocator

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jyjeanne/hornet-nest-locator/config"
	"github.com/jyjeanne/hornet-nest-locator/estimate"
	"github.com/jyjeanne/hornet-nest-locator/formatter"
	"github.com/jyjeanne/hornet-nest-locator/internal/logging"
	"github.com/jyjeanne/hornet-nest-locator/internal/observability"
)

var fixedNow = time.Date(2024, 8, 14, 15, 30, 0, 0, time.UTC)

type fixture struct {
	loc     *Locator
	logs    *bytes.Buffer
	metrics *observability.EstimateCollector
}

func newFixture(t *testing.T, cfg config.AppConfig) fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	metrics, err := observability.NewEstimateCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewEstimateCollector: %v", err)
	}
	loc, err := New(cfg,
		WithLogger(logging.New(logging.Config{Level: "debug", Output: logs})),
		WithMetrics(metrics),
		WithCalculator(estimate.NewCalculator(estimate.WithClock(func() time.Time { return fixedNow }))),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return fixture{loc: loc, logs: logs, metrics: metrics}
}

func mustObservation(t *testing.T, lat, lon, bearing, rtt float64, opts ...estimate.ObservationOption) estimate.Observation {
	t.Helper()
	obs, err := estimate.NewObservation(lat, lon, bearing, rtt, opts...)
	if err != nil {
		t.Fatalf("NewObservation: %v", err)
	}
	return obs
}

func TestNew_Method(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		want    estimate.Method
		wantErr error
	}{
		{"default", "", estimate.MethodEmpirical, nil},
		{"empirical", "empirical", estimate.MethodEmpirical, nil},
		{"theoretical", "Theoretical", estimate.MethodTheoretical, nil},
		{"unknown", "guess", "", estimate.ErrUnknownMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Calculator.Method = tt.method
			loc, err := New(cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if loc.Method() != tt.want {
				t.Errorf("Method() = %q, want %q", loc.Method(), tt.want)
			}
		})
	}
}

func TestLocate_Single(t *testing.T) {
	f := newFixture(t, config.Default())
	obs := mustObservation(t, 48.8584, 2.2945, 45, 390)

	report, err := f.loc.Locate(context.Background(), []estimate.Observation{obs})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	if report.Hive.DistanceFromObserver != 650 || report.Hive.BearingFromObserver != 45 {
		t.Errorf("unexpected hive %+v", report.Hive)
	}
	if report.Hive.CalculationMethod != "single_observation_empirical" {
		t.Errorf("unexpected method tag %q", report.Hive.CalculationMethod)
	}
	if len(report.Estimates) != 1 || report.Estimates[0] != report.Hive {
		t.Errorf("expected the single estimate to equal the hive, got %+v", report.Estimates)
	}
	if len(report.Comparisons) != 0 {
		t.Errorf("expected no comparisons without speed, got %d", len(report.Comparisons))
	}
	if report.ID == "" || report.Source != "VespaFinder" {
		t.Errorf("unexpected report header id=%q source=%q", report.ID, report.Source)
	}

	if got := testutil.ToFloat64(f.metrics.Estimates.WithLabelValues("single", "empirical")); got != 1 {
		t.Errorf("estimates_total = %v, want 1", got)
	}
	if !strings.Contains(f.logs.String(), "hive estimated") {
		t.Errorf("expected info log, got %q", f.logs.String())
	}
}

func TestLocate_Triangulation(t *testing.T) {
	f := newFixture(t, config.Default())
	observations := []estimate.Observation{
		mustObservation(t, 50.8503, 4.3517, 45, 300),
		mustObservation(t, 50.8520, 4.3600, 315, 300),
	}

	report, err := f.loc.Locate(context.Background(), observations)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	if report.Hive.CalculationMethod != "triangulation_2_points_empirical" {
		t.Errorf("unexpected method tag %q", report.Hive.CalculationMethod)
	}
	if len(report.Estimates) != 2 {
		t.Fatalf("expected 2 estimates, got %d", len(report.Estimates))
	}
	wantLat := (report.Estimates[0].Latitude + report.Estimates[1].Latitude) / 2
	if math.Abs(report.Hive.Latitude-wantLat) > 1e-12 {
		t.Errorf("hive latitude %v is not the centroid %v", report.Hive.Latitude, wantLat)
	}
	if got := testutil.ToFloat64(f.metrics.Estimates.WithLabelValues("triangulation", "empirical")); got != 1 {
		t.Errorf("estimates_total = %v, want 1", got)
	}
}

func TestLocate_Comparison(t *testing.T) {
	f := newFixture(t, config.Default())
	observations := []estimate.Observation{
		mustObservation(t, 48.8584, 2.2945, 90, 300),
		mustObservation(t, 48.8600, 2.2900, 90, 300, estimate.WithSpeed(7)),
	}

	report, err := f.loc.Locate(context.Background(), observations)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if len(report.Comparisons) != 1 {
		t.Fatalf("expected 1 comparison, got %d", len(report.Comparisons))
	}
	c := report.Comparisons[0]
	if c.Observation != 2 {
		t.Errorf("comparison should belong to observation 2, got %d", c.Observation)
	}
	if c.DifferenceMeters != 550 || c.DifferencePercent != 110 || c.Recommended != estimate.MethodEmpirical {
		t.Errorf("unexpected comparison %+v", c.Comparison)
	}
}

func TestLocate_Rejections(t *testing.T) {
	f := newFixture(t, config.Default())
	obs := mustObservation(t, 48.8584, 2.2945, 45, 390)

	_, err := f.loc.LocateWith(context.Background(), []estimate.Observation{obs}, estimate.MethodTheoretical)
	if !errors.Is(err, estimate.ErrSpeedRequired) {
		t.Fatalf("expected ErrSpeedRequired, got %v", err)
	}
	_, err = f.loc.Locate(context.Background(), nil)
	if !errors.Is(err, ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations, got %v", err)
	}
	_, err = f.loc.Locate(context.Background(), []estimate.Observation{obs, {}})
	if !errors.Is(err, estimate.ErrInvalidObservation) {
		t.Fatalf("expected ErrInvalidObservation, got %v", err)
	}

	if got := testutil.ToFloat64(f.metrics.Rejections.WithLabelValues("speed_required")); got != 1 {
		t.Errorf("speed_required rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(f.metrics.Rejections.WithLabelValues("other")); got != 1 {
		t.Errorf("other rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(f.metrics.Rejections.WithLabelValues("invalid_observation")); got != 1 {
		t.Errorf("invalid_observation rejections = %v, want 1", got)
	}
	if n := strings.Count(f.logs.String(), "estimate rejected"); n != 3 {
		t.Errorf("expected 3 warn logs, got %d\n%s", n, f.logs.String())
	}
}

func TestLocate_CanceledContext(t *testing.T) {
	f := newFixture(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	obs := mustObservation(t, 48.8584, 2.2945, 45, 390)
	if _, err := f.loc.Locate(ctx, []estimate.Observation{obs}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLocate_DoesNotAliasInput(t *testing.T) {
	f := newFixture(t, config.Default())
	observations := []estimate.Observation{mustObservation(t, 48.8584, 2.2945, 45, 390)}

	report, err := f.loc.Locate(context.Background(), observations)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	observations[0] = mustObservation(t, 0, 0, 0, 60)
	if report.Observations[0].Latitude() != 48.8584 {
		t.Error("report should not share the caller's slice")
	}
}

func TestRender(t *testing.T) {
	f := newFixture(t, config.Default())
	obs := mustObservation(t, 48.8584, 2.2945, 45, 390)
	report, err := f.loc.Locate(context.Background(), []estimate.Observation{obs})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	out, err := f.loc.Render(report, formatter.FormatText)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "Distance: 650 meters") {
		t.Errorf("unexpected text report:\n%s", out)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("calculator:\n  method: theoretical\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Calculator.Method != "theoretical" || cfg.Output.Format != "text" {
		t.Errorf("unexpected config %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("expected error for explicit missing path")
	}
}

func TestLoadConfig_DefaultsWhenAbsent(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLocate_TriangulationReusesProjections(t *testing.T) {
	calls := 0
	calc := estimate.NewCalculator(estimate.WithClock(func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Second)
	}))
	loc, err := New(config.Default(), WithCalculator(calc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	observations := []estimate.Observation{
		mustObservation(t, 50.8503, 4.3517, 45, 300),
		mustObservation(t, 50.8520, 4.3600, 315, 300),
		mustObservation(t, 50.8480, 4.3650, 270, 240),
	}

	report, err := loc.Locate(context.Background(), observations)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if calls != 4 {
		t.Errorf("expected each observation projected once (4 clock reads), got %d", calls)
	}
	var sumLat float64
	for _, est := range report.Estimates {
		sumLat += est.Latitude
	}
	if math.Abs(report.Hive.Latitude-sumLat/3) > 1e-12 {
		t.Errorf("hive latitude %v is not the centroid of the reported estimates", report.Hive.Latitude)
	}
	if !report.Hive.Timestamp.After(report.Estimates[2].Timestamp) {
		t.Errorf("hive timestamp %v should follow its projections", report.Hive.Timestamp)
	}
}
