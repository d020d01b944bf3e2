package domain

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

var classAvoidFeatures = map[ProfileClass]enumSet[AvoidFeature]{
	ClassDriving: newEnumSet(
		AvoidHighways, AvoidTollways, AvoidFerries, AvoidTunnels,
		AvoidPavedRoads, AvoidUnpavedRoads, AvoidTracks,
	),
	ClassHeavyGoods: newEnumSet(
		AvoidHighways, AvoidTollways, AvoidFerries, AvoidTunnels,
		AvoidPavedRoads, AvoidUnpavedRoads, AvoidTracks,
	),
	ClassCycling: newEnumSet(
		AvoidFerries, AvoidPavedRoads, AvoidUnpavedRoads, AvoidTracks,
		AvoidFords, AvoidSteps, AvoidHills,
	),
	ClassWalking:    newEnumSet(AvoidFerries, AvoidFords, AvoidSteps, AvoidHills),
	ClassWheelchair: newEnumSet(AvoidFerries, AvoidSteps),
}

// AllowsAvoidFeature reports whether f is on the class allow-list.
func (c ProfileClass) AllowsAvoidFeature(f AvoidFeature) bool {
	_, ok := classAvoidFeatures[c][f]
	return ok
}

// AllowsAvoidBorders reports whether the class can avoid border crossings.
func (c ProfileClass) AllowsAvoidBorders() bool {
	return c == ClassDriving || c == ClassHeavyGoods
}

// AllowsVehicleType reports whether the class accepts a vehicle type.
func (c ProfileClass) AllowsVehicleType() bool {
	return c == ClassHeavyGoods
}

// Restriction parameter names.
const (
	RestrictionLength            = "length"
	RestrictionWidth             = "width"
	RestrictionHeight            = "height"
	RestrictionAxleLoad          = "axleload"
	RestrictionWeight            = "weight"
	RestrictionHazmat            = "hazmat"
	RestrictionSurfaceType       = "surface_type"
	RestrictionTrackType         = "track_type"
	RestrictionSmoothnessType    = "smoothness_type"
	RestrictionMaximumSlopedKerb = "maximum_sloped_kerb"
	RestrictionMaximumIncline    = "maximum_incline"
	RestrictionGradient          = "gradient"
)

var classRestrictions = map[ProfileClass]map[string]struct{}{
	ClassHeavyGoods: {
		RestrictionLength: {}, RestrictionWidth: {}, RestrictionHeight: {},
		RestrictionAxleLoad: {}, RestrictionWeight: {}, RestrictionHazmat: {},
	},
	ClassWheelchair: {
		RestrictionSurfaceType: {}, RestrictionTrackType: {}, RestrictionSmoothnessType: {},
		RestrictionMaximumSlopedKerb: {}, RestrictionMaximumIncline: {},
	},
	ClassCycling: {
		RestrictionGradient: {},
	},
}

// AllowsRestriction reports whether the named restriction is legal for the class.
func (c ProfileClass) AllowsRestriction(name string) bool {
	_, ok := classRestrictions[c][name]
	return ok
}

// Restrictions are profile-specific vehicle or mobility limits. Only the
// fields legal for the active profile class are ever set.
type Restrictions struct {
	Length            *float64 `json:"length,omitempty"              validate:"omitempty,gt=0"`
	Width             *float64 `json:"width,omitempty"               validate:"omitempty,gt=0"`
	Height            *float64 `json:"height,omitempty"              validate:"omitempty,gt=0"`
	AxleLoad          *float64 `json:"axleload,omitempty"            validate:"omitempty,gt=0"`
	Weight            *float64 `json:"weight,omitempty"              validate:"omitempty,gt=0"`
	Hazmat            *bool    `json:"hazmat,omitempty"`
	SurfaceType       string   `json:"surface_type,omitempty"        validate:"omitempty,oneof=paved asphalt concrete cobblestone sett paving_stones compacted fine_gravel gravel unpaved"`
	TrackType         string   `json:"track_type,omitempty"          validate:"omitempty,oneof=grade1 grade2 grade3 grade4 grade5"`
	SmoothnessType    string   `json:"smoothness_type,omitempty"     validate:"omitempty,oneof=excellent good intermediate bad very_bad horrible very_horrible impassable"`
	MaximumSlopedKerb *float64 `json:"maximum_sloped_kerb,omitempty" validate:"omitempty,gte=0,lte=0.31"`
	MaximumIncline    *int     `json:"maximum_incline,omitempty"     validate:"omitempty,gte=0,lte=15"`
	Gradient          *int     `json:"gradient,omitempty"            validate:"omitempty,gte=1,lte=15"`
}

// ProfileParams wraps profile-specific parameters.
type ProfileParams struct {
	Restrictions *Restrictions `json:"restrictions,omitempty"`
}

// AvoidGeometryType is the tag of an avoid-polygons structure.
type AvoidGeometryType string

// Accepted avoid geometry types.
const (
	AvoidGeometryPolygon    AvoidGeometryType = "Polygon"
	AvoidGeometryLineString AvoidGeometryType = "LineString"
)

// AvoidPolygons is an area (or path) the route must not cross. Coordinates
// always carry one level of ring nesting, whatever the type, and hold a
// single ring.
type AvoidPolygons struct {
	Type  AvoidGeometryType
	Rings []orb.Ring
}

// Polygon returns the rings as an orb polygon.
func (a *AvoidPolygons) Polygon() orb.Polygon {
	return orb.Polygon(a.Rings)
}

// Bound returns the bounding box of every ring.
func (a *AvoidPolygons) Bound() orb.Bound {
	return a.Polygon().Bound()
}

// MarshalJSON renders the GeoJSON-like {type, coordinates} structure.
func (a *AvoidPolygons) MarshalJSON() ([]byte, error) {
	coords := make([][][2]float64, len(a.Rings))
	for i, ring := range a.Rings {
		coords[i] = make([][2]float64, len(ring))
		for j, p := range ring {
			coords[i][j] = [2]float64{p.Lon(), p.Lat()}
		}
	}
	return json.Marshal(struct {
		Type        AvoidGeometryType `json:"type"`
		Coordinates [][][2]float64    `json:"coordinates"`
	}{a.Type, coords})
}

// RouteOptions is the normalized options object.
type RouteOptions struct {
	AvoidFeatures []AvoidFeature `json:"avoid_features,omitempty"`
	AvoidBorders  AvoidBorders   `json:"avoid_borders,omitempty"`
	AvoidPolygons *AvoidPolygons `json:"avoid_polygons,omitempty"`
	VehicleType   VehicleType    `json:"vehicle_type,omitempty"`
	MaximumSpeed  *float64       `json:"maximum_speed,omitempty"`
	ProfileParams *ProfileParams `json:"profile_params,omitempty"`
}

// IsEmpty reports whether no option was supplied.
func (o RouteOptions) IsEmpty() bool {
	return len(o.AvoidFeatures) == 0 && o.AvoidBorders == "" && o.AvoidPolygons == nil &&
		o.VehicleType == "" && o.MaximumSpeed == nil && o.ProfileParams == nil
}
