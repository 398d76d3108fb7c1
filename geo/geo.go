package geo

import (
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by every calculation in this package.
const EarthRadiusMeters = 6371000.0

// DegreesToRadians converts degrees to radians
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeLongitude wraps a longitude into (-180, 180].
func NormalizeLongitude(lon float64) float64 {
	if lon > -180 && lon <= 180 {
		return lon
	}
	l := math.Mod(lon+180, 360)
	if l < 0 {
		l += 360
	}
	l -= 180
	if l == -180 {
		return 180
	}
	return l
}

// NormalizeBearing wraps a bearing into [0, 360).
func NormalizeBearing(bearing float64) float64 {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	if b >= 360 {
		b -= 360
	}
	return b
}

// DestinationPoint projects a point distanceMeters along bearingDeg from (lat, lon)
// using the spherical direct formula. The returned longitude is in (-180, 180].
// A zero distance returns the starting point unchanged.
func DestinationPoint(lat, lon, bearingDeg, distanceMeters float64) (float64, float64) {
	if distanceMeters == 0 {
		return lat, lon
	}

	lat1 := DegreesToRadians(lat)
	lon1 := DegreesToRadians(lon)
	brng := DegreesToRadians(bearingDeg)
	delta := distanceMeters / EarthRadiusMeters

	sinLat2 := math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(brng)
	// rounding can push the sine a hair outside [-1, 1] near the poles
	sinLat2 = math.Max(-1, math.Min(1, sinLat2))
	lat2 := math.Asin(sinLat2)

	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*sinLat2,
	)

	return RadiansToDegrees(lat2), NormalizeLongitude(RadiansToDegrees(lon2))
}

// HaversineDistance returns the great-circle distance in meters between two points.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := DegreesToRadians(lat2 - lat1)
	dLon := DegreesToRadians(lon2 - lon1)
	la1 := DegreesToRadians(lat1)
	la2 := DegreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// BearingBetweenPoints returns the initial great-circle bearing from point 1 to
// point 2 in degrees, within [0, 360).
func BearingBetweenPoints(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := DegreesToRadians(lat1)
	la2 := DegreesToRadians(lat2)
	dLon := DegreesToRadians(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLon)

	return NormalizeBearing(RadiansToDegrees(math.Atan2(y, x)))
}
