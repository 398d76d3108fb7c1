package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
)

// Format selects an output rendering
type Format string

const (
	FormatText         Format = "text"
	FormatJSON         Format = "json"
	FormatVespawatch   Format = "vespawatch"
	FormatWaarneming   Format = "waarneming"
	FormatObservatoire Format = "observatoire"
)

// ParseFormat converts a user supplied format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatJSON, FormatVespawatch, FormatWaarneming, FormatObservatoire:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q: use text, json, vespawatch, waarneming or observatoire", s)
}

// MethodComparison ties a comparison to the observation it was computed for (1-based).
type MethodComparison struct {
	Observation int `json:"observation"`
	estimate.Comparison
}

// Report is everything known about one locating session
type Report struct {
	ID           string
	GeneratedAt  time.Time
	Source       string
	Observations []estimate.Observation
	// Estimates holds one projection per observation, in order.
	Estimates   []estimate.HiveLocation
	Hive        estimate.HiveLocation
	Comparisons []MethodComparison
}

// ReferenceObservation is the observation distances and bearings of Hive are
// measured from.
func (r Report) ReferenceObservation() (estimate.Observation, bool) {
	if len(r.Observations) == 0 {
		return estimate.Observation{}, false
	}
	return r.Observations[0], true
}

// ReportBuilder creates and renders reports
type ReportBuilder struct {
	source string
	now    func() time.Time
	newID  func() string
}

// NewReportBuilder creates a builder; source labels the producer in wildlife payloads.
func NewReportBuilder(source string) *ReportBuilder {
	if source == "" {
		source = "VespaFinder"
	}
	return &ReportBuilder{
		source: source,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// NewReport assembles a Report with a fresh identifier
func (b *ReportBuilder) NewReport(observations []estimate.Observation, estimates []estimate.HiveLocation, hive estimate.HiveLocation, comparisons []MethodComparison) Report {
	return Report{
		ID:           b.newID(),
		GeneratedAt:  b.now(),
		Source:       b.source,
		Observations: observations,
		Estimates:    estimates,
		Hive:         hive,
		Comparisons:  comparisons,
	}
}

// Build renders r in the requested format
func (b *ReportBuilder) Build(r Report, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return b.BuildText(r), nil
	case FormatJSON:
		return b.BuildJSON(r)
	case FormatVespawatch, FormatWaarneming, FormatObservatoire:
		sub, err := b.Submission(r, format)
		if err != nil {
			return nil, err
		}
		return marshalIndent(sub)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
