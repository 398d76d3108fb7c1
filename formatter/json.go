package formatter

import (
	"encoding/json"
	"time"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
)

type observationJSON struct {
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Bearing         float64   `json:"bearing"`
	RoundTripTime   float64   `json:"round_trip_time"`
	Speed           *float64  `json:"speed,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	Notes           string    `json:"notes,omitempty"`
	IdentifyingMark string    `json:"identifying_mark,omitempty"`
}

type reportJSON struct {
	ReportID      string                  `json:"report_id"`
	GeneratedAt   time.Time               `json:"generated_at"`
	Source        string                  `json:"source"`
	Observations  []observationJSON       `json:"observations"`
	Estimates     []estimate.HiveLocation `json:"estimates"`
	Hive          estimate.HiveLocation   `json:"hive"`
	Comparisons   []MethodComparison      `json:"comparisons,omitempty"`
	GoogleMapsURL string                  `json:"google_maps_url"`
}

func toObservationJSON(o estimate.Observation) observationJSON {
	out := observationJSON{
		Latitude:        o.Latitude(),
		Longitude:       o.Longitude(),
		Bearing:         o.Bearing(),
		RoundTripTime:   o.RoundTripTime(),
		Timestamp:       o.Timestamp(),
		Notes:           o.Notes(),
		IdentifyingMark: o.IdentifyingMark(),
	}
	if speed, ok := o.Speed(); ok {
		out.Speed = &speed
	}
	return out
}

// BuildJSON serializes a report to indented JSON. Units: degrees, meters, seconds.
func (b *ReportBuilder) BuildJSON(r Report) ([]byte, error) {
	out := reportJSON{
		ReportID:      r.ID,
		GeneratedAt:   r.GeneratedAt,
		Source:        r.Source,
		Observations:  make([]observationJSON, 0, len(r.Observations)),
		Estimates:     r.Estimates,
		Hive:          r.Hive,
		Comparisons:   r.Comparisons,
		GoogleMapsURL: GoogleMapsURL(r.Hive.Latitude, r.Hive.Longitude),
	}
	if out.Estimates == nil {
		out.Estimates = []estimate.HiveLocation{}
	}
	for _, o := range r.Observations {
		out.Observations = append(out.Observations, toObservationJSON(o))
	}
	return marshalIndent(out)
}

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
