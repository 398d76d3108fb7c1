package formatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
)

const (
	speciesVelutina = "Vespa velutina"

	statusManual       = "manual_submission_required"
	statusAPIAvailable = "api_available"
)

// Database describes a wildlife database that accepts Asian hornet reports
type Database struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	HasAPI       bool   `json:"has_api"`
	RequiresAuth bool   `json:"requires_auth"`
	Website      string `json:"website"`
}

var databases = []Database{
	{
		ID:      string(FormatVespawatch),
		Name:    "Vespawatch (Flanders, Belgium)",
		URL:     "https://vespawatch.be",
		Website: "https://vespawatch.be/melding",
	},
	{
		ID:           string(FormatWaarneming),
		Name:         "Waarneming.nl (Netherlands)",
		URL:          "https://waarneming.nl",
		HasAPI:       true,
		RequiresAuth: true,
		Website:      "https://waarneming.nl/soort/invasieve_wesp",
	},
	{
		ID:      string(FormatObservatoire),
		Name:    "Observatoire Biodiversité Wallonie (Wallonia, Belgium)",
		URL:     "https://observatoire.biodiversite.wallonie.be",
		Website: "https://observatoire.biodiversite.wallonie.be/frelon-asiatique",
	},
}

// Databases lists the supported wildlife databases
func Databases() []Database {
	out := make([]Database, len(databases))
	copy(out, databases)
	return out
}

// Contact is where to report a sighting in one region
type Contact struct {
	Region   string `json:"region"`
	Database string `json:"database"`
	Website  string `json:"website"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

var guides = map[string][]Contact{
	"belgium": {
		{
			Region:   "Flanders (Vlaanderen)",
			Database: "Vespawatch",
			Website:  "https://vespawatch.be/melding",
			Phone:    "+32 78 15 15 15",
			Email:    "info@vespawatch.be",
		},
		{
			Region:   "Wallonia (Wallonie)",
			Database: "Observatoire Biodiversité",
			Website:  "https://observatoire.biodiversite.wallonie.be/frelon-asiatique",
			Phone:    "+32 81 33 59 99",
			Email:    "biodiversite@spw.wallonie.be",
		},
	},
	"netherlands": {
		{
			Region:   "Netherlands (Nederland)",
			Database: "Waarneming.nl",
			Website:  "https://waarneming.nl/soort/invasieve_wesp",
		},
	},
	"france": {
		{
			Region:   "France",
			Database: "Frelons Asiatiques",
			Website:  "https://www.frelonsasiatiques.fr",
			Phone:    "18 (for emergency nest removal)",
		},
	},
}

// ReportingGuide returns the reporting contacts for a country.
// Unknown countries fall back to Belgium.
func ReportingGuide(country string) []Contact {
	contacts, ok := guides[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		contacts = guides["belgium"]
	}
	out := make([]Contact, len(contacts))
	copy(out, contacts)
	return out
}

// Submission is a payload prepared for one wildlife database
type Submission struct {
	Database     string         `json:"database"`
	Status       string         `json:"status"`
	Website      string         `json:"website"`
	RequiresAuth bool           `json:"requires_auth,omitempty"`
	Instructions string         `json:"instructions,omitempty"`
	Data         map[string]any `json:"data"`
}

// Submission prepares the payload for the database selected by format.
// Values are taken from the reference observation and the final hive estimate.
func (b *ReportBuilder) Submission(r Report, format Format) (Submission, error) {
	obs, ok := r.ReferenceObservation()
	if !ok {
		return Submission{}, errors.New("report has no observations")
	}

	switch format {
	case FormatVespawatch:
		return Submission{
			Database: string(FormatVespawatch),
			Status:   statusManual,
			Website:  "https://vespawatch.be/melding",
			Instructions: "Vespawatch requires manual submission. Please visit their website " +
				"and enter the following details:",
			Data: b.vespawatchData(obs, r.Hive),
		}, nil
	case FormatWaarneming:
		return Submission{
			Database:     string(FormatWaarneming),
			Status:       statusAPIAvailable,
			Website:      "https://waarneming.nl",
			RequiresAuth: true,
			Instructions: "API key required for automatic submission",
			Data:         b.waarnemingData(obs, r.Hive),
		}, nil
	case FormatObservatoire:
		return Submission{
			Database: string(FormatObservatoire),
			Status:   statusManual,
			Website:  "https://observatoire.biodiversite.wallonie.be/frelon-asiatique",
			Instructions: "Observatoire Biodiversité Wallonie requires manual submission. " +
				"Please visit their website and enter the following details:",
			Data: b.observatoireData(obs, r.Hive),
		}, nil
	}
	return Submission{}, fmt.Errorf("no wildlife database for format %q", format)
}

func (b *ReportBuilder) vespawatchData(obs estimate.Observation, hive estimate.HiveLocation) map[string]any {
	notes := obs.Notes()
	if notes == "" {
		notes = "Submitted via " + b.source
	}
	return map[string]any{
		"species":                 speciesVelutina + " (Asian hornet)",
		"observation_date":        obs.Timestamp().Format("2006-01-02"),
		"observation_time":        obs.Timestamp().Format("15:04"),
		"observer_location":       pair(obs.Latitude(), obs.Longitude()),
		"estimated_hive_location": pair(hive.Latitude, hive.Longitude),
		"distance_from_observer":  fmt.Sprintf("%.0f meters", hive.DistanceFromObserver),
		"bearing":                 num(obs.Bearing()) + "°",
		"round_trip_time":         fmt.Sprintf("%.0f seconds", obs.RoundTripTime()),
		"method":                  methodLabel(hive, "Vespawatchers empirical method (100m/min)", "Theoretical method (speed × time / 2)"),
		"confidence":              fmt.Sprintf("±%.0f meters", hive.ConfidenceRadius),
		"notes":                   notes,
	}
}

func (b *ReportBuilder) waarnemingData(obs estimate.Observation, hive estimate.HiveLocation) map[string]any {
	notes := fmt.Sprintf(
		"Asian hornet observation. Estimated hive location: %s (±%.0fm). Method: %s. Distance: %.0fm, Bearing: %s°",
		pair(hive.Latitude, hive.Longitude), hive.ConfidenceRadius,
		methodLabel(hive, "Vespawatchers empirical (100m/min)", "theoretical (speed × time / 2)"),
		hive.DistanceFromObserver, num(obs.Bearing()),
	)
	if obs.Notes() != "" {
		notes += ". " + obs.Notes()
	}
	return map[string]any{
		"species":   speciesVelutina,
		"latitude":  obs.Latitude(),
		"longitude": obs.Longitude(),
		"date":      obs.Timestamp().Format("2006-01-02"),
		"time":      obs.Timestamp().Format("15:04"),
		"count":     1,
		"notes":     notes,
		"accuracy":  hive.ConfidenceRadius,
		"source":    b.source,
	}
}

func (b *ReportBuilder) observatoireData(obs estimate.Observation, hive estimate.HiveLocation) map[string]any {
	notes := obs.Notes()
	if notes == "" {
		notes = "Soumis via " + b.source
	}
	return map[string]any{
		"species":                "Frelon asiatique (" + speciesVelutina + ")",
		"date_observation":       obs.Timestamp().Format("02/01/2006"),
		"heure_observation":      obs.Timestamp().Format("15:04"),
		"lieu_observation":       pair(obs.Latitude(), obs.Longitude()),
		"emplacement_nid_estime": pair(hive.Latitude, hive.Longitude),
		"distance_observateur":   fmt.Sprintf("%.0f mètres", hive.DistanceFromObserver),
		"cap":                    num(obs.Bearing()) + "°",
		"temps_parcours":         fmt.Sprintf("%.0f secondes", obs.RoundTripTime()),
		"methode":                methodLabel(hive, "Méthode empirique Vespawatchers (100m/min)", "Méthode théorique (vitesse × temps / 2)"),
		"precision":              fmt.Sprintf("±%.0f mètres", hive.ConfidenceRadius),
		"remarques":              notes,
	}
}

func methodLabel(hive estimate.HiveLocation, empirical, theoretical string) string {
	if strings.HasSuffix(hive.CalculationMethod, string(estimate.MethodTheoretical)) {
		return theoretical
	}
	return empirical
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pair(lat, lon float64) string {
	return num(lat) + ", " + num(lon)
}
