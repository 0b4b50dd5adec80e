package geo

import "math"

const earthRadiusKM = 6371.0

// KilometersToMiles converts the road network's native kilometer unit to
// the miles used in spoken directions.
const KilometersToMiles = 0.621371192

// Location is a coordinate pair in radians. Build one from degrees with
// NewLocation.
type Location struct {
	Latitude  float64
	Longitude float64
}

func NewLocation(latDegree, lonDegree float64) Location {
	return Location{
		Latitude:  degToRad(latDegree),
		Longitude: degToRad(lonDegree),
	}
}

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func havFormula(one Location, two Location) float64 {
	havLatitude := havFunction(one.Latitude - two.Latitude)
	havLongitude := havFunction(one.Longitude - two.Longitude)

	return havLatitude + math.Cos(one.Latitude)*math.Cos(two.Latitude)*havLongitude
}

func archaversine(havAngle float64) float64 {
	return 2.0 * math.Asin(math.Sqrt(havAngle))
}

// HaversineDistance returns the great-circle distance between two locations
// in kilometers.
func HaversineDistance(one Location, two Location) float64 {
	return earthRadiusKM * archaversine(havFormula(one, two))
}
