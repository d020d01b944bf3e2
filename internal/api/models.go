package api

import (
	"github.com/phrazzld/directions-api/internal/api/shared"
	"github.com/phrazzld/directions-api/internal/domain"
)

// SummaryResponse totals a route or segment. Ascent and descent are only
// present when elevation was requested.
type SummaryResponse struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Ascent   *float64 `json:"ascent,omitempty"`
	Descent  *float64 `json:"descent,omitempty"`
}

// StepResponse is one maneuver.
type StepResponse struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        int     `json:"type"`
	Instruction string  `json:"instruction"`
	Name        string  `json:"name"`
	WayPoints   [2]int  `json:"way_points"`
}

// SegmentResponse covers the route between two consecutive waypoints.
type SegmentResponse struct {
	Distance float64        `json:"distance"`
	Duration float64        `json:"duration"`
	Ascent   *float64       `json:"ascent,omitempty"`
	Descent  *float64       `json:"descent,omitempty"`
	Steps    []StepResponse `json:"steps"`
}

// ExtraSummaryResponse is the share of the route carrying one value.
type ExtraSummaryResponse struct {
	Value    float64 `json:"value"`
	Distance float64 `json:"distance"`
	Amount   float64 `json:"amount"`
}

// ExtraResponse is one extra_info attribute along the geometry.
type ExtraResponse struct {
	Values  [][3]int               `json:"values"`
	Summary []ExtraSummaryResponse `json:"summary"`
}

// RouteResponse is one route in the plain JSON envelope.
type RouteResponse struct {
	Summary        SummaryResponse                    `json:"summary"`
	Segments       []SegmentResponse                  `json:"segments,omitempty"`
	BBox           []float64                          `json:"bbox,omitempty"`
	Geometry       any                                `json:"geometry,omitempty"`
	GeometryFormat domain.GeometryFormat              `json:"geometry_format,omitempty"`
	WayPoints      []int                              `json:"way_points"`
	Extras         map[domain.ExtraInfo]ExtraResponse `json:"extras,omitempty"`
}

// FeatureProperties holds the non-geometric route data of a Feature.
type FeatureProperties struct {
	Segments       []SegmentResponse                  `json:"segments,omitempty"`
	Summary        SummaryResponse                    `json:"summary"`
	WayPoints      []int                              `json:"way_points"`
	Extras         map[domain.ExtraInfo]ExtraResponse `json:"extras,omitempty"`
	GeometryFormat domain.GeometryFormat              `json:"geometry_format,omitempty"`
}

// Feature is one route in the GeoJSON envelope.
type Feature struct {
	BBox       []float64         `json:"bbox,omitempty"`
	Type       string            `json:"type"`
	Properties FeatureProperties `json:"properties"`
	Geometry   any               `json:"geometry,omitempty"`
}

// QueryEcho reports the effective request parameters after defaults were
// applied. Optional fields only appear when they influenced the result.
type QueryEcho struct {
	ID                 string                    `json:"id,omitempty"`
	Coordinates        []domain.Coordinate       `json:"coordinates"`
	Profile            domain.Profile            `json:"profile"`
	Preference         domain.Preference         `json:"preference"`
	Format             domain.ResponseType       `json:"format"`
	Units              domain.Units              `json:"units"`
	Language           string                    `json:"language"`
	Instructions       bool                      `json:"instructions"`
	InstructionsFormat domain.InstructionsFormat `json:"instructions_format,omitempty"`
	Geometry           bool                      `json:"geometry"`
	GeometryFormat     domain.GeometryFormat     `json:"geometry_format,omitempty"`
	Elevation          bool                      `json:"elevation,omitempty"`
	ExtraInfo          []domain.ExtraInfo        `json:"extra_info,omitempty"`
	Options            *domain.RouteOptions      `json:"options,omitempty"`
	Bearings           []domain.Bearing          `json:"bearings,omitempty"`
	Radiuses           []float64                 `json:"radiuses,omitempty"`
}

// InfoResponse describes how a response was produced.
type InfoResponse struct {
	Attribution string            `json:"attribution"`
	Service     string            `json:"service"`
	Timestamp   int64             `json:"timestamp"`
	Query       QueryEcho         `json:"query"`
	Engine      shared.EngineInfo `json:"engine"`
}

// DirectionsResponse is the plain JSON envelope.
type DirectionsResponse struct {
	BBox   []float64       `json:"bbox,omitempty"`
	Routes []RouteResponse `json:"routes"`
	Info   InfoResponse    `json:"info"`
}

// FeatureCollectionResponse is the GeoJSON envelope.
type FeatureCollectionResponse struct {
	Type     string       `json:"type"`
	BBox     []float64    `json:"bbox,omitempty"`
	Features []Feature    `json:"features"`
	Info     InfoResponse `json:"info"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Engine shared.EngineInfo `json:"engine"`
}
