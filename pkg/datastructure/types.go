package datastructure

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// WayBucket is the unit stored in the way index: one road segment with the
// intersection nodes it connects and the street name riders hear about it.
// CenterLat/CenterLon is the segment midpoint, used as the H3 bucketing key.
type WayBucket struct {
	CenterLat float64
	CenterLon float64
	NodeIDs   []int64
	Street    string
}
