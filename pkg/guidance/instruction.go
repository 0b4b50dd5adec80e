package guidance

import (
	"fmt"
	"regexp"
	"strconv"
)

// TurnDirection classifies the maneuver that starts a route leg. The set is
// closed: the serialized names below are a wire contract with the map front
// end and must never change.
type TurnDirection int

const (
	Start TurnDirection = iota
	Straight
	SlightLeft
	SlightRight
	Left
	Right
	SharpLeft
	SharpRight

	numDirections
)

// UnknownRoad stands in for segments that carry no street name.
const UnknownRoad = "unknown road"

var directionNames = [numDirections]string{
	Start:       "Start",
	Straight:    "Go straight",
	SlightLeft:  "Slight left",
	SlightRight: "Slight right",
	Left:        "Turn left",
	Right:       "Turn right",
	SharpLeft:   "Sharp left",
	SharpRight:  "Sharp right",
}

func (d TurnDirection) String() string {
	if d < 0 || d >= numDirections {
		return fmt.Sprintf("TurnDirection(%d)", int(d))
	}
	return directionNames[d]
}

// Maneuver is one step of spoken directions: a turn class, the way it leads
// onto, and how far to continue on that way, in miles.
type Maneuver struct {
	Direction TurnDirection `json:"turn"`
	Way       string        `json:"street_name"`
	Distance  float64       `json:"distance"`
}

// String renders the serialized form the front end displays and parses.
// ParseManeuver must round-trip it exactly.
func (m Maneuver) String() string {
	return fmt.Sprintf("%s on %s and continue for %.3f miles.", m.Direction, m.Way, m.Distance)
}

var maneuverRe = regexp.MustCompile(`^([a-zA-Z\s]+) on ([\w\s]*) and continue for ([0-9\.]+) miles\.$`)

// ParseManeuver parses the String form back into a Maneuver.
func ParseManeuver(s string) (Maneuver, error) {
	matches := maneuverRe.FindStringSubmatch(s)
	if matches == nil {
		return Maneuver{}, fmt.Errorf("guidance: malformed maneuver %q", s)
	}

	direction, ok := directionFromName(matches[1])
	if !ok {
		return Maneuver{}, fmt.Errorf("guidance: unknown direction %q", matches[1])
	}
	distance, err := strconv.ParseFloat(matches[3], 64)
	if err != nil {
		return Maneuver{}, fmt.Errorf("guidance: bad distance %q: %w", matches[3], err)
	}

	return Maneuver{Direction: direction, Way: matches[2], Distance: distance}, nil
}

func directionFromName(name string) (TurnDirection, bool) {
	for d := Start; d < numDirections; d++ {
		if directionNames[d] == name {
			return d, true
		}
	}
	return 0, false
}
