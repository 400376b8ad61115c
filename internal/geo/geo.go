// Package geo holds the great-circle and unit helpers every track metric is built on.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

const (
	// EarthRadiusMeters is the spherical radius used by DistanceMeters.
	EarthRadiusMeters = 6371000

	feetPerMeter  = 3.28084
	metersPerMile = 1609.34
	feetPerMile   = 5280
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are finite and inside their ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// OrbPoint converts to orb's [lon, lat] ordering.
func (c Coordinates) OrbPoint() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// FromOrbPoint is the inverse of OrbPoint.
func FromOrbPoint(p orb.Point) Coordinates {
	return Coordinates{Lat: p.Lat(), Lon: p.Lon()}
}

// DistanceMeters returns the haversine distance between two coordinates.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLatRad := (lat2 - lat1) * math.Pi / 180
	deltaLonRad := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLatRad/2)*math.Sin(deltaLatRad/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLonRad/2)*math.Sin(deltaLonRad/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func MetersToFeet(m float64) float64 {
	return m * feetPerMeter
}

func MetersToMiles(m float64) float64 {
	return m / metersPerMile
}

func FeetToMiles(ft float64) float64 {
	return ft / feetPerMile
}

// RoundMiles formats miles with two decimals, half away from zero.
func RoundMiles(mi float64) string {
	return decimal.NewFromFloat(mi).StringFixed(2)
}
