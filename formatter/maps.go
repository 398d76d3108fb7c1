package formatter

import (
	"errors"
	"math"
	"strconv"

	"github.com/jyjeanne/hornet-nest-locator/estimate"
)

// BoundsPadding is added on every side of a bounding box, in degrees.
const BoundsPadding = 0.005

// GoogleMapsURL returns a link that drops a pin at the given position
func GoogleMapsURL(lat, lon float64) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(lon, 'f', -1, 64)
}

// Bounds is a padded bounding box over observers and hive estimates, used by
// map renderers to frame the view.
type Bounds struct {
	MinLat    float64 `json:"min_lat"`
	MaxLat    float64 `json:"max_lat"`
	MinLon    float64 `json:"min_lon"`
	MaxLon    float64 `json:"max_lon"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
}

// ComputeBounds frames all observation points and hive locations.
// At least one observation is required.
func ComputeBounds(observations []estimate.Observation, hives []estimate.HiveLocation) (Bounds, error) {
	if len(observations) == 0 {
		return Bounds{}, errors.New("need at least one observation")
	}

	b := Bounds{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLon: math.Inf(1), MaxLon: math.Inf(-1),
	}
	extend := func(lat, lon float64) {
		b.MinLat = math.Min(b.MinLat, lat)
		b.MaxLat = math.Max(b.MaxLat, lat)
		b.MinLon = math.Min(b.MinLon, lon)
		b.MaxLon = math.Max(b.MaxLon, lon)
	}
	for _, o := range observations {
		extend(o.Latitude(), o.Longitude())
	}
	for _, h := range hives {
		extend(h.Latitude, h.Longitude)
	}

	b.MinLat -= BoundsPadding
	b.MaxLat += BoundsPadding
	b.MinLon -= BoundsPadding
	b.MaxLon += BoundsPadding
	b.CenterLat = (b.MinLat + b.MaxLat) / 2
	b.CenterLon = (b.MinLon + b.MaxLon) / 2
	return b, nil
}
