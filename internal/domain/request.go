package domain

import "github.com/golang/geo/s2"

// EarthRadiusMeters is the mean earth radius used for great-circle distances.
const EarthRadiusMeters = 6371008.8

// Coordinate is a (longitude, latitude) pair in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

// LatLng converts the coordinate to an s2 LatLng.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// DistanceTo returns the great-circle distance to o in meters.
func (c Coordinate) DistanceTo(o Coordinate) float64 {
	return c.LatLng().Distance(o.LatLng()).Radians() * EarthRadiusMeters
}

// MarshalJSON renders the coordinate as [lon, lat].
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return marshalFloats(c.Lon, c.Lat)
}

// Bearing is a directional constraint for one waypoint, in degrees.
type Bearing struct {
	Value     float64
	Deviation float64
}

// MarshalJSON renders the bearing as [value, deviation].
func (b Bearing) MarshalJSON() ([]byte, error) {
	return marshalFloats(b.Value, b.Deviation)
}

// RoutingRequest is the validated contract handed to the route engine. It
// is built once per HTTP call by the request assembler and must be treated
// as read-only afterwards.
type RoutingRequest struct {
	ID                 string
	Coordinates        []Coordinate
	Profile            Profile
	Preference         Preference
	Units              Units
	Language           string
	Instructions       bool
	InstructionsFormat InstructionsFormat
	Geometry           bool
	GeometryFormat     GeometryFormat
	Elevation          bool
	ExtraInfo          []ExtraInfo
	Options            RouteOptions
	Bearings           []Bearing
	Radiuses           []float64
	ResponseType       ResponseType
}

// HasExtraInfo reports whether tag was requested.
func (r *RoutingRequest) HasExtraInfo(tag ExtraInfo) bool {
	for _, t := range r.ExtraInfo {
		if t == tag {
			return true
		}
	}
	return false
}

// WaypointDistance sums the great-circle distances between consecutive
// waypoints, in meters.
func (r *RoutingRequest) WaypointDistance() float64 {
	var total float64
	for i := 1; i < len(r.Coordinates); i++ {
		total += r.Coordinates[i-1].DistanceTo(r.Coordinates[i])
	}
	return total
}
