// Package nestlocator estimates where an Asian hornet nest is from field
// observations of hornets leaving a bait station.
//
// A Locator wires configuration, the estimate.Calculator, structured logging
// and Prometheus metrics together. Locate turns one observation into a single
// projection and several into a triangulated centroid, and returns a
// formatter.Report ready for rendering:
//
//	cfg, err := nestlocator.LoadConfig("")
//	...
//	loc, err := nestlocator.New(cfg, nestlocator.WithLogger(nestlocator.InitLogging(cfg.Logging, os.Stderr)))
//	...
//	report, err := loc.Locate(ctx, observations)
//	out, err := loc.Render(report, formatter.FormatText)
package nestlocator
