package domain

import "strconv"

// Point is a route vertex. Elevation is meters above sea level and only
// meaningful when the request asked for elevation.
type Point struct {
	Lon       float64
	Lat       float64
	Elevation float64
}

// RouteResult is owned by the route engine and consumed read-only.
type RouteResult struct {
	Routes []Route
}

// Route is one computed alternative.
type Route struct {
	Summary   RouteSummary
	Points    []Point
	WayPoints []int
	Segments  []Segment
	Extras    map[ExtraInfo]ExtraData
}

// RouteSummary aggregates a route or segment. Distances are meters and
// durations seconds.
type RouteSummary struct {
	Distance float64
	Duration float64
	Ascent   float64
	Descent  float64
}

// Segment is the part of a route between two consecutive waypoints.
type Segment struct {
	Distance float64
	Duration float64
	Ascent   float64
	Descent  float64
	Steps    []Step
}

// Step is one maneuver within a segment.
type Step struct {
	Distance    float64
	Duration    float64
	Type        int
	Instruction string
	Name        string
	WayPoints   [2]int
}

// ExtraData holds an auxiliary attribute along the route geometry. Each
// value is [from vertex, to vertex, attribute value].
type ExtraData struct {
	Values  [][3]int
	Summary []ExtraSummary
}

// ExtraSummary is the share of the route with one attribute value.
type ExtraSummary struct {
	Value    float64
	Distance float64
	Amount   float64
}

func marshalFloats(vs ...float64) ([]byte, error) {
	b := make([]byte, 0, 16*len(vs))
	b = append(b, '[')
	for i, v := range vs {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, v, 'f', -1, 64)
	}
	return append(b, ']'), nil
}
