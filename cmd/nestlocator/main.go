package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	lib "github.com/jyjeanne/hornet-nest-locator"
	"github.com/jyjeanne/hornet-nest-locator/estimate"
	"github.com/jyjeanne/hornet-nest-locator/formatter"
	"github.com/jyjeanne/hornet-nest-locator/internal/logging"
	"github.com/jyjeanne/hornet-nest-locator/internal/observability"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("nestlocator", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "config file (default: config.yml, ./config/config.yml)")
	surveyPath := fs.String("survey", "", "YAML survey sheet with one or more observations (- for stdin)")
	method := fs.String("method", "", "empirical|theoretical (overrides sheet and config)")
	format := fs.String("format", "", "text|json|vespawatch|waarneming|observatoire (overrides config)")
	metricsFile := fs.String("metrics-file", "", "write Prometheus metrics to this .prom file")

	var fo flagObservation
	fs.Float64Var(&fo.lat, "lat", 0, "observer latitude in degrees")
	fs.Float64Var(&fo.lon, "lon", 0, "observer longitude in degrees")
	fs.Float64Var(&fo.bearing, "bearing", 0, "flight bearing in degrees from north")
	fs.Float64Var(&fo.minutes, "minutes", 0, "round trip time, minutes part")
	fs.Float64Var(&fo.seconds, "seconds", 0, "round trip time, seconds part")
	fs.Float64Var(&fo.speed, "speed", 0, "hornet flight speed in m/s (must be positive), enables the method comparison")
	fs.StringVar(&fo.notes, "notes", "", "free-form notes")
	fs.StringVar(&fo.mark, "mark", "", "paint mark on the hornet")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := lib.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *metricsFile != "" {
		cfg.Metrics.Textfile = *metricsFile
	}
	outFormat, err := formatter.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	log := lib.InitLogging(cfg.Logging, stderr)

	observations, sheetMethod, err := collectObservations(fs, fo, *surveyPath, stdin)
	if err != nil {
		return err
	}
	switch {
	case *method != "":
		cfg.Calculator.Method = *method
	case sheetMethod != "":
		cfg.Calculator.Method = sheetMethod.String()
	}
	for i, obs := range observations {
		if obs.RoundTripTime() < shortRoundTripSeconds {
			log.Warn(ctx, "very short round trip, check the stopwatch reading",
				logging.Int("observation", i+1),
				logging.Float("round_trip_seconds", obs.RoundTripTime()))
		}
	}

	opts := []lib.Option{lib.WithLogger(log)}
	var metrics *observability.EstimateCollector
	if cfg.Metrics.Textfile != "" {
		metrics, err = observability.NewEstimateCollector(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		opts = append(opts, lib.WithMetrics(metrics))
	}

	loc, err := lib.New(cfg, opts...)
	if err != nil {
		return err
	}

	report, locErr := loc.Locate(ctx, observations)
	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Error(ctx, "failed to write metrics", logging.String("path", cfg.Metrics.Textfile), logging.Err(err))
		}
	}
	if locErr != nil {
		return locErr
	}

	out, err := loc.Render(report, outFormat)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = io.WriteString(stdout, "\n")
	}
	return err
}

// collectObservations returns the observations from a survey sheet, or the
// single observation described by flags.
func collectObservations(fs *flag.FlagSet, fo flagObservation, surveyPath string, stdin io.Reader) ([]estimate.Observation, estimate.Method, error) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if surveyPath != "" {
		for _, name := range []string{"lat", "lon", "bearing", "minutes", "seconds", "speed", "notes", "mark"} {
			if set[name] {
				return nil, "", fmt.Errorf("-%s cannot be combined with -survey", name)
			}
		}
		s, err := loadSurvey(surveyPath, stdin)
		if err != nil {
			return nil, "", err
		}
		return s.Observations, s.Method, nil
	}

	for _, name := range []string{"lat", "lon", "bearing"} {
		if !set[name] {
			return nil, "", fmt.Errorf("-%s is required without -survey", name)
		}
	}
	if !set["minutes"] && !set["seconds"] {
		return nil, "", errors.New("-minutes or -seconds is required without -survey")
	}
	fo.hasSpeed = set["speed"]
	obs, err := fo.observation()
	if err != nil {
		return nil, "", err
	}
	return []estimate.Observation{obs}, "", nil
}
