package guidance

import (
	"math"

	"github.com/brafiq/bearmaps/pkg/geo"
)

// Graph is the road network view the narrator needs: vertex coordinates, hop
// distances in kilometers, and the street name of each traversed segment.
type Graph interface {
	Lat(id int64) float64
	Lon(id int64) float64
	Distance(a, b int64) float64
	StreetName(a, b int64) (string, bool)
}

// RouteDirections turns a routed vertex sequence into spoken maneuvers. The
// first maneuver starts on the first way. Consecutive hops along the same
// way accumulate into one maneuver; a way change closes the current maneuver
// and opens a new one classified by the heading change at the junction.
// Paths shorter than one hop produce nothing.
func RouteDirections(g Graph, path []int64) []Maneuver {
	if len(path) < 2 {
		return nil
	}

	maneuvers := make([]Maneuver, 0, 4)
	current := Maneuver{
		Direction: Start,
		Way:       wayName(g, path[0], path[1]),
		Distance:  g.Distance(path[0], path[1]) * geo.KilometersToMiles,
	}
	prevOrientation := geo.CalcOrientation(
		g.Lat(path[0]), g.Lon(path[0]),
		g.Lat(path[1]), g.Lon(path[1]),
	)

	for i := 1; i+1 < len(path); i++ {
		way := wayName(g, path[i], path[i+1])
		legMiles := g.Distance(path[i], path[i+1]) * geo.KilometersToMiles

		if way == current.Way {
			current.Distance += legMiles
		} else {
			maneuvers = append(maneuvers, current)
			delta := geo.CalculateOrientationDelta(
				g.Lat(path[i]), g.Lon(path[i]),
				g.Lat(path[i+1]), g.Lon(path[i+1]),
				prevOrientation,
			)
			current = Maneuver{
				Direction: classifyTurn(delta),
				Way:       way,
				Distance:  legMiles,
			}
		}

		prevOrientation = geo.CalcOrientation(
			g.Lat(path[i]), g.Lon(path[i]),
			g.Lat(path[i+1]), g.Lon(path[i+1]),
		)
	}

	return append(maneuvers, current)
}

func wayName(g Graph, a, b int64) string {
	name, ok := g.StreetName(a, b)
	if !ok {
		return UnknownRoad
	}
	return name
}

// classifyTurn maps a signed heading change in radians onto the discrete
// turn classes. Under 12 degrees keeps straight, under 40 is slight, under
// 105 is a regular turn, the rest is sharp. Negative deltas turn left.
func classifyTurn(delta float64) TurnDirection {
	deltaDegree := math.Abs(delta) * (180 / math.Pi)
	switch {
	case deltaDegree < 12:
		return Straight
	case deltaDegree < 40:
		if delta < 0 {
			return SlightLeft
		}
		return SlightRight
	case deltaDegree < 105:
		if delta < 0 {
			return Left
		}
		return Right
	default:
		if delta < 0 {
			return SharpLeft
		}
		return SharpRight
	}
}
