package formatter

import (
	"fmt"
	"strings"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
	"github.com/jyjeanne/hornet-nest-locator/geo"
)

const rule = "======================================================================"

// BuildText renders a plain-text field report
func (b *ReportBuilder) BuildText(r Report) []byte {
	var sb strings.Builder
	sb.WriteString("VESPAFINDER - OBSERVATION REPORT\n")
	sb.WriteString("Based on Vespawatchers Professional Methodology\n")
	if r.ID != "" {
		fmt.Fprintf(&sb, "Report ID: %s\n", r.ID)
	}
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&sb, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	sb.WriteString(rule)
	sb.WriteString("\n")

	for i, o := range r.Observations {
		writeObservationText(&sb, i+1, o)
	}
	if len(r.Estimates) > 1 {
		sb.WriteString("\nPER-OBSERVATION ESTIMATES:\n")
		for i, h := range r.Estimates {
			fmt.Fprintf(&sb, "  %d. %s ±%.0f m\n", i+1, geo.FormatCoordinates(h.Latitude, h.Longitude), h.ConfidenceRadius)
		}
	}

	writeHiveText(&sb, r.Hive)
	for _, c := range r.Comparisons {
		writeComparisonText(&sb, c)
	}

	sb.WriteString("\nGoogle Maps Link:\n")
	sb.WriteString(GoogleMapsURL(r.Hive.Latitude, r.Hive.Longitude))
	sb.WriteString("\n\nREPORT TO:\n")
	sb.WriteString("  Flanders: vespawatch.be\n")
	sb.WriteString("  Netherlands: waarneming.nl\n")
	sb.WriteString("  Wallonia: observatoire.biodiversite.wallonie.be\n")
	return []byte(sb.String())
}

func writeObservationText(sb *strings.Builder, n int, o estimate.Observation) {
	fmt.Fprintf(sb, "\nOBSERVATION %d:\n", n)
	fmt.Fprintf(sb, "  Date/Time: %s\n", o.Timestamp().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(sb, "  Observer Location: %s\n", geo.FormatCoordinates(o.Latitude(), o.Longitude()))
	fmt.Fprintf(sb, "  Direction: %s\n", geo.FormatBearing(o.Bearing()))
	fmt.Fprintf(sb, "  Round Trip Time: %.0f seconds (%.2f min)\n", o.RoundTripTime(), o.RoundTripTime()/60)
	if mark := o.IdentifyingMark(); mark != "" {
		fmt.Fprintf(sb, "  Hornet Mark: %s\n", mark)
	}
	if speed, ok := o.Speed(); ok {
		fmt.Fprintf(sb, "  Speed (for comparison): %.1f m/s (%.1f km/h)\n", speed, speed*3.6)
	}
	if notes := o.Notes(); notes != "" {
		fmt.Fprintf(sb, "  Notes: %s\n", notes)
	}
}

func writeHiveText(sb *strings.Builder, h estimate.HiveLocation) {
	fmt.Fprintf(sb, "\nESTIMATED HIVE LOCATION (%s):\n", h.CalculationMethod)
	fmt.Fprintf(sb, "  Coordinates: %s\n", geo.FormatCoordinates(h.Latitude, h.Longitude))
	fmt.Fprintf(sb, "  GPS: %.6f, %.6f\n", h.Latitude, h.Longitude)
	fmt.Fprintf(sb, "  Distance: %.0f meters (%.2f km)\n", h.DistanceFromObserver, h.DistanceFromObserver/1000)
	fmt.Fprintf(sb, "  Bearing from observer: %s\n", geo.FormatBearing(h.BearingFromObserver))
	fmt.Fprintf(sb, "  Confidence: ±%.0f meters\n", h.ConfidenceRadius)
	sb.WriteString("  Note: In practice, nest often slightly further\n")
}

func writeComparisonText(sb *strings.Builder, c MethodComparison) {
	fmt.Fprintf(sb, "\nMETHOD COMPARISON (observation %d):\n", c.Observation)
	fmt.Fprintf(sb, "  Empirical distance: %.0f m\n", c.Empirical.DistanceFromObserver)
	fmt.Fprintf(sb, "  Theoretical distance: %.0f m\n", c.Theoretical.DistanceFromObserver)
	fmt.Fprintf(sb, "  Difference: %.0f meters (%.1f%%)\n", c.DifferenceMeters, c.DifferencePercent)
	fmt.Fprintf(sb, "  Recommended method: %s\n", strings.ToUpper(string(c.Recommended)))
}
