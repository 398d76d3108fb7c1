// Package formatter renders nest estimates for people and for wildlife databases.
//
// This package is organized into:
// - report.go: the Report value, builder and output format selection
// - text.go: plain-text field report
// - json.go: JSON serialization
// - wildlife.go: submission payloads for Vespawatch, Waarneming.nl and the Observatoire Biodiversité Wallonie
// - maps.go: map links and bounding boxes for external map renderers
//
// Nothing here performs network I/O; submissions are returned as data for the
// caller to send or print.
package formatter
