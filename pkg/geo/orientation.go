package geo

import "math"

// CalcOrientation returns the bearing of the edge (p1,p2) in radians.
func CalcOrientation(lat1, lon1, lat2, lon2 float64) float64 {
	return degToRad(BearingTo(lat1, lon1, lat2, lon2))
}

// AlignOrientation shifts orientation by a full turn where needed so its
// difference to baseOrientation lands in (-pi, pi]. Without this, a heading
// that crosses the +-180 meridian reads as a near-full turn.
func AlignOrientation(baseOrientation, orientation float64) float64 {
	var resultOrientation float64
	if baseOrientation >= 0 {
		if orientation < -math.Pi+baseOrientation {
			resultOrientation = orientation + 2*math.Pi
		} else {
			resultOrientation = orientation
		}
	} else if orientation > math.Pi+baseOrientation {
		resultOrientation = orientation - 2*math.Pi
	} else {
		resultOrientation = orientation
	}
	return resultOrientation
}

// CalculateOrientationDelta returns the signed change of heading, in radians,
// when traveling from a previous heading prevOrientation into the edge
// (prev, current). Negative means the road bends left, positive right.
func CalculateOrientationDelta(prevLat, prevLon, lat, lon, prevOrientation float64) float64 {
	orientation := CalcOrientation(prevLat, prevLon, lat, lon)
	orientation = AlignOrientation(prevOrientation, orientation)
	return orientation - prevOrientation
}
