// Package kinematics advances simulated vessel position, course and speed
// tick by tick, and implements the configured movement patterns that steer
// a vessel's course independent of its reported noise.
package kinematics

import (
	"math"

	"github.com/golang/geo/s2"
)

// nmPerDegreeLatitude is the great-circle distance of one degree of
// latitude, used for the equirectangular projection per the configured
// degree of approximation (spec: simple spherical advancement, no full
// geodesy).
const nmPerDegreeLatitude = 60.0

// Position is a WGS-84 geographic position in decimal degrees.
type Position struct {
	Lat float64
	Lon float64
}

// latLng converts a Position to golang/geo's spherical representation, used
// by DistanceNM (and through it the waypoint pattern's check of how close a
// vessel is to its next waypoint) without hand-rolling great-circle distance.
func (p Position) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

// DistanceNM returns the great-circle distance between two positions in
// nautical miles.
func DistanceNM(a, b Position) float64 {
	const earthRadiusNM = 3440.065
	angle := a.latLng().Distance(b.latLng())
	return float64(angle) * earthRadiusNM
}

// InitialBearingDegrees returns the initial great-circle bearing from a to
// b, in degrees clockwise from true north, in [0, 360).
func InitialBearingDegrees(a, b Position) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	theta := math.Atan2(y, x)
	return normalizeDegrees(degrees(theta))
}

// Advance moves a position distanceNM nautical miles along courseDegrees
// using an equirectangular projection at the position's own latitude: the
// longitude delta is corrected for the cosine contraction at that latitude,
// but no further geodesy (ellipsoid, great-circle curvature over the step)
// is applied, matching the simulator's non-goal of chart-grade accuracy.
func Advance(p Position, distanceNM, courseDegrees float64) Position {
	courseRad := radians(courseDegrees)
	degreesTravelled := distanceNM / nmPerDegreeLatitude
	dLat := degreesTravelled * math.Cos(courseRad)
	latRad := radians(p.Lat)
	cosLat := math.Cos(latRad)
	var dLon float64
	if math.Abs(cosLat) > 1e-9 {
		dLon = degreesTravelled * math.Sin(courseRad) / cosLat
	}
	return Position{Lat: p.Lat + dLat, Lon: normalizeLongitude(p.Lon + dLon)}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// normalizeDegrees folds deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// normalizeLongitude folds deg into [-180, 180).
func normalizeLongitude(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}
