package geo

import "github.com/golang/geo/s2"

// ProjectPointToSegment projects the point p onto the road segment (a,b) and
// returns the projected coordinate in degrees. Used to turn a raw query
// coordinate into a point that actually lies on the matched street.
func ProjectPointToSegment(pLat, pLon, aLat, aLon, bLat, bLon float64) (float64, float64) {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(aLat, aLon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(bLat, bLon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pLat, pLon))

	projection := s2.Project(pS2, aS2, bS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees()
}
