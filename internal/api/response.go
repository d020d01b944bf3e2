package api

import (
	"fmt"
	"math"
	"time"

	"github.com/phrazzld/directions-api/internal/api/shared"
	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/geometry"
)

// ServiceName is reported in every response's info block.
const ServiceName = "routing"

// FeatureCollectionType and FeatureType are the GeoJSON type tags.
const (
	FeatureCollectionType = "FeatureCollection"
	FeatureType           = "Feature"
)

const metersPerMile = 1609.344

// ResponseConfig holds the static parts of a response.
type ResponseConfig struct {
	Attribution   string
	EngineVersion string
}

// ResponseAssembler renders a computed route in the envelope the client
// negotiated. Fields the client did not ask for are left out entirely.
type ResponseAssembler struct {
	cfg ResponseConfig
	now func() time.Time
}

// NewResponseAssembler creates a ResponseAssembler.
func NewResponseAssembler(cfg ResponseConfig) *ResponseAssembler {
	return &ResponseAssembler{cfg: cfg, now: time.Now}
}

// Engine returns the engine description shared by success and error bodies.
func (a *ResponseAssembler) Engine() shared.EngineInfo {
	return shared.EngineInfo{Version: a.cfg.EngineVersion}
}

// ErrorInfo returns the info block of an error response.
func (a *ResponseAssembler) ErrorInfo() *shared.ErrorInfo {
	return &shared.ErrorInfo{Engine: a.Engine(), Timestamp: a.now().UnixMilli()}
}

// Assemble renders res for req. The result is a *DirectionsResponse or a
// *FeatureCollectionResponse depending on req.ResponseType.
func (a *ResponseAssembler) Assemble(req *domain.RoutingRequest, res *domain.RouteResult) (any, error) {
	info := a.info(req)

	if req.ResponseType == domain.ResponseGeoJSON {
		out := &FeatureCollectionResponse{
			Type:     FeatureCollectionType,
			Features: make([]Feature, 0, len(res.Routes)),
			Info:     info,
		}
		for i := range res.Routes {
			r, err := renderRoute(req, &res.Routes[i])
			if err != nil {
				return nil, err
			}
			out.BBox = geometry.MergeBBox(out.BBox, r.BBox)
			out.Features = append(out.Features, Feature{
				BBox: r.BBox,
				Type: FeatureType,
				Properties: FeatureProperties{
					Segments:       r.Segments,
					Summary:        r.Summary,
					WayPoints:      r.WayPoints,
					Extras:         r.Extras,
					GeometryFormat: r.GeometryFormat,
				},
				Geometry: r.Geometry,
			})
		}
		return out, nil
	}

	out := &DirectionsResponse{
		Routes: make([]RouteResponse, 0, len(res.Routes)),
		Info:   info,
	}
	for i := range res.Routes {
		r, err := renderRoute(req, &res.Routes[i])
		if err != nil {
			return nil, err
		}
		out.BBox = geometry.MergeBBox(out.BBox, r.BBox)
		out.Routes = append(out.Routes, r)
	}
	return out, nil
}

func renderRoute(req *domain.RoutingRequest, route *domain.Route) (RouteResponse, error) {
	out := RouteResponse{
		Summary:   summary(req, route.Summary.Distance, route.Summary.Duration, route.Summary.Ascent, route.Summary.Descent),
		BBox:      geometry.BBox(route.Points, req.Elevation),
		WayPoints: route.WayPoints,
	}

	if req.Instructions {
		out.Segments = make([]SegmentResponse, len(route.Segments))
		for i, seg := range route.Segments {
			out.Segments[i] = segment(req, seg)
		}
	}

	if req.Geometry {
		g, err := geometry.Format(route.Points, req.GeometryFormat, req.Elevation)
		if err != nil {
			return RouteResponse{}, fmt.Errorf("rendering route geometry: %w", err)
		}
		out.Geometry = g
		out.GeometryFormat = req.GeometryFormat

		// extras index into the geometry, so they are meaningless without it
		if len(req.ExtraInfo) > 0 && len(route.Extras) > 0 {
			out.Extras = extras(req, route.Extras)
		}
	}

	return out, nil
}

func summary(req *domain.RoutingRequest, distance, duration, ascent, descent float64) SummaryResponse {
	s := SummaryResponse{
		Distance: convertDistance(distance, req.Units),
		Duration: round(duration, 1),
	}
	if req.Elevation {
		a, d := round(ascent, 1), round(descent, 1)
		s.Ascent, s.Descent = &a, &d
	}
	return s
}

func segment(req *domain.RoutingRequest, seg domain.Segment) SegmentResponse {
	s := summary(req, seg.Distance, seg.Duration, seg.Ascent, seg.Descent)
	out := SegmentResponse{
		Distance: s.Distance,
		Duration: s.Duration,
		Ascent:   s.Ascent,
		Descent:  s.Descent,
		Steps:    make([]StepResponse, len(seg.Steps)),
	}
	for i, st := range seg.Steps {
		out.Steps[i] = StepResponse{
			Distance:    convertDistance(st.Distance, req.Units),
			Duration:    round(st.Duration, 1),
			Type:        st.Type,
			Instruction: st.Instruction,
			Name:        st.Name,
			WayPoints:   st.WayPoints,
		}
	}
	return out
}

// extras keeps only the requested tags the engine produced data for.
func extras(req *domain.RoutingRequest, data map[domain.ExtraInfo]domain.ExtraData) map[domain.ExtraInfo]ExtraResponse {
	out := make(map[domain.ExtraInfo]ExtraResponse, len(req.ExtraInfo))
	for _, tag := range req.ExtraInfo {
		d, ok := data[tag]
		if !ok {
			continue
		}
		summaries := make([]ExtraSummaryResponse, len(d.Summary))
		for i, s := range d.Summary {
			summaries[i] = ExtraSummaryResponse{
				Value:    s.Value,
				Distance: convertDistance(s.Distance, req.Units),
				Amount:   round(s.Amount, 2),
			}
		}
		out[tag] = ExtraResponse{Values: d.Values, Summary: summaries}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (a *ResponseAssembler) info(req *domain.RoutingRequest) InfoResponse {
	q := QueryEcho{
		ID:           req.ID,
		Coordinates:  req.Coordinates,
		Profile:      req.Profile,
		Preference:   req.Preference,
		Format:       req.ResponseType,
		Units:        req.Units,
		Language:     req.Language,
		Instructions: req.Instructions,
		Geometry:     req.Geometry,
		Elevation:    req.Elevation,
		ExtraInfo:    req.ExtraInfo,
		Bearings:     req.Bearings,
		Radiuses:     req.Radiuses,
	}
	if q.Format == "" {
		q.Format = domain.ResponseJSON
	}
	if req.Instructions {
		q.InstructionsFormat = req.InstructionsFormat
	}
	if req.Geometry {
		q.GeometryFormat = req.GeometryFormat
	}
	if !req.Options.IsEmpty() {
		opts := req.Options
		q.Options = &opts
	}

	return InfoResponse{
		Attribution: a.cfg.Attribution,
		Service:     ServiceName,
		Timestamp:   a.now().UnixMilli(),
		Query:       q,
		Engine:      a.Engine(),
	}
}

// convertDistance converts meters into units. Meters keep one decimal,
// kilometers and miles three.
func convertDistance(meters float64, units domain.Units) float64 {
	switch units {
	case domain.UnitsKilometers:
		return round(meters/1000, 3)
	case domain.UnitsMiles:
		return round(meters/metersPerMile, 3)
	default:
		return round(meters, 1)
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
