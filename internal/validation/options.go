package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/parse"
)

const squareMetersPerKm2 = 1e6

type optionHandler struct {
	name  string
	apply func(a *assembly, class domain.ProfileClass, raw json.RawMessage) error
}

// optionHandlers run in this order; the order decides which error wins when
// several options are invalid at once.
var optionHandlers = []optionHandler{
	{"avoid_features", applyAvoidFeatures},
	{"avoid_borders", applyAvoidBorders},
	{"vehicle_type", applyVehicleType},
	{"maximum_speed", applyMaximumSpeed},
	{"avoid_polygons", applyAvoidPolygons},
	{"profile_params", applyProfileParams},
}

// validateOptions normalizes the options object against the profile class
// already resolved on the request.
func validateOptions(a *assembly) error {
	if parse.IsAbsent(a.raw.Options) {
		return nil
	}
	members, err := parse.ObjectJSON(a.raw.Options)
	if err != nil {
		return domain.NewInvalidJSONFormat("options", err)
	}

	for _, name := range slices.Sorted(maps.Keys(members)) {
		if !slices.ContainsFunc(optionHandlers, func(h optionHandler) bool { return h.name == name }) {
			return domain.NewInvalidParameterValue("options", name)
		}
	}

	class := a.req.Profile.Class()
	for _, h := range optionHandlers {
		raw, ok := members[h.name]
		if !ok || parse.IsAbsent(raw) {
			continue
		}
		if err := h.apply(a, class, raw); err != nil {
			return err
		}
	}
	return nil
}

func applyAvoidFeatures(a *assembly, class domain.ProfileClass, raw json.RawMessage) error {
	names, err := parse.StringsJSON(raw)
	if err != nil {
		return domain.NewInvalidParameterFormat("avoid_features", err)
	}
	features := make([]domain.AvoidFeature, 0, len(names))
	for _, name := range names {
		f, ok := domain.ParseAvoidFeature(name)
		if !ok || !class.AllowsAvoidFeature(f) {
			return domain.NewInvalidParameterValue("avoid_features", name)
		}
		if !slices.Contains(features, f) {
			features = append(features, f)
		}
	}
	a.req.Options.AvoidFeatures = features
	return nil
}

func applyAvoidBorders(a *assembly, class domain.ProfileClass, raw json.RawMessage) error {
	v, _, err := enumField(raw, "avoid_borders", domain.ParseAvoidBorders)
	if err != nil {
		return err
	}
	if !class.AllowsAvoidBorders() {
		return domain.NewInvalidParameterValue("avoid_borders", string(v))
	}
	a.req.Options.AvoidBorders = v
	return nil
}

func applyVehicleType(a *assembly, class domain.ProfileClass, raw json.RawMessage) error {
	v, _, err := enumField(raw, "vehicle_type", domain.ParseVehicleType)
	if err != nil {
		return err
	}
	if !class.AllowsVehicleType() {
		return domain.NewInvalidParameterValue("vehicle_type", string(v))
	}
	a.req.Options.VehicleType = v
	return nil
}

// applyMaximumSpeed lets the options value override a top-level one.
func applyMaximumSpeed(a *assembly, _ domain.ProfileClass, raw json.RawMessage) error {
	v, err := maximumSpeed(raw)
	if err != nil {
		return err
	}
	a.req.Options.MaximumSpeed = &v
	return nil
}

func applyAvoidPolygons(a *assembly, _ domain.ProfileClass, raw json.RawMessage) error {
	ap, err := parse.AvoidPolygons(raw)
	if err != nil {
		return domain.NewInvalidJSONFormat("avoid_polygons", err)
	}
	if err := checkRings(ap); err != nil {
		return err
	}
	if err := checkPolygonLimits(ap, a.limits); err != nil {
		return err
	}
	a.req.Options.AvoidPolygons = ap
	return nil
}

// checkRings enforces ring shape: a Polygon ring is closed with at least
// four positions, a LineString needs two. Positions must be on the globe.
func checkRings(ap *domain.AvoidPolygons) error {
	minPositions := 2
	if ap.Type == domain.AvoidGeometryPolygon {
		minPositions = 4
	}
	for i, ring := range ap.Rings {
		if len(ring) < minPositions {
			return domain.NewInvalidParameterValue("avoid_polygons",
				fmt.Sprintf("ring %d has %d positions", i, len(ring)))
		}
		if ap.Type == domain.AvoidGeometryPolygon && !ring.Closed() {
			return domain.NewInvalidParameterValue("avoid_polygons", fmt.Sprintf("ring %d is not closed", i))
		}
		for _, p := range ring {
			if p.Lon() < minLongitude || p.Lon() > maxLongitude || p.Lat() < minLatitude || p.Lat() > maxLatitude {
				return domain.NewInvalidParameterValue("avoid_polygons", formatPair([2]float64(p)))
			}
		}
	}
	return nil
}

func checkPolygonLimits(ap *domain.AvoidPolygons, limits Limits) error {
	if limits.MaximumAvoidPolygonExtent > 0 {
		b := ap.Bound()
		midLat := (b.Min.Lat() + b.Max.Lat()) / 2
		width := geo.Distance(orb.Point{b.Min.Lon(), midLat}, orb.Point{b.Max.Lon(), midLat}) / 1000
		height := geo.Distance(orb.Point{b.Min.Lon(), b.Min.Lat()}, orb.Point{b.Min.Lon(), b.Max.Lat()}) / 1000
		if extent := math.Max(width, height); extent > limits.MaximumAvoidPolygonExtent {
			return domain.NewServerLimitExceeded(fmt.Sprintf(
				"Avoid polygon extent of %s km exceeds the server limit of %s km.",
				humanize.Ftoa(math.Round(extent*10)/10), humanize.Ftoa(limits.MaximumAvoidPolygonExtent)))
		}
	}
	if ap.Type == domain.AvoidGeometryPolygon && limits.MaximumAvoidPolygonArea > 0 {
		area := math.Abs(geo.Area(ap.Polygon())) / squareMetersPerKm2
		if area > limits.MaximumAvoidPolygonArea {
			return domain.NewServerLimitExceeded(fmt.Sprintf(
				"Avoid polygon area of %s km² exceeds the server limit of %s km².",
				humanize.Ftoa(math.Round(area*10)/10), humanize.Ftoa(limits.MaximumAvoidPolygonArea)))
		}
	}
	return nil
}

func applyProfileParams(a *assembly, class domain.ProfileClass, raw json.RawMessage) error {
	members, err := parse.ObjectJSON(raw)
	if err != nil {
		return domain.NewInvalidJSONFormat("profile_params", err)
	}
	for _, name := range slices.Sorted(maps.Keys(members)) {
		if name != "restrictions" {
			return domain.NewInvalidParameterValue("profile_params", name)
		}
	}
	restrictions, ok := members["restrictions"]
	if !ok || parse.IsAbsent(restrictions) {
		return nil
	}
	r, err := buildRestrictions(class, restrictions)
	if err != nil {
		return err
	}
	a.req.Options.ProfileParams = &domain.ProfileParams{Restrictions: r}
	return nil
}

type restrictionSetter func(r *domain.Restrictions, raw json.RawMessage) error

func floatRestriction(dst func(*domain.Restrictions) **float64) restrictionSetter {
	return func(r *domain.Restrictions, raw json.RawMessage) error {
		v, err := parse.NumberJSON(raw)
		if err != nil {
			return err
		}
		*dst(r) = &v
		return nil
	}
}

func intRestriction(name string, dst func(*domain.Restrictions) **int) restrictionSetter {
	return func(r *domain.Restrictions, raw json.RawMessage) error {
		v, err := parse.NumberJSON(raw)
		if err != nil {
			return err
		}
		if v != math.Trunc(v) {
			return domain.NewInvalidParameterValue(name, formatFloat(v))
		}
		n := int(v)
		*dst(r) = &n
		return nil
	}
}

func stringRestriction(dst func(*domain.Restrictions) *string) restrictionSetter {
	return func(r *domain.Restrictions, raw json.RawMessage) error {
		v, err := parse.StringJSON(raw)
		if err != nil {
			return err
		}
		*dst(r) = v
		return nil
	}
}

var restrictionSetters = map[string]restrictionSetter{
	domain.RestrictionLength:   floatRestriction(func(r *domain.Restrictions) **float64 { return &r.Length }),
	domain.RestrictionWidth:    floatRestriction(func(r *domain.Restrictions) **float64 { return &r.Width }),
	domain.RestrictionHeight:   floatRestriction(func(r *domain.Restrictions) **float64 { return &r.Height }),
	domain.RestrictionAxleLoad: floatRestriction(func(r *domain.Restrictions) **float64 { return &r.AxleLoad }),
	domain.RestrictionWeight:   floatRestriction(func(r *domain.Restrictions) **float64 { return &r.Weight }),
	domain.RestrictionHazmat: func(r *domain.Restrictions, raw json.RawMessage) error {
		v, err := parse.BoolJSON(raw)
		if err != nil {
			return err
		}
		r.Hazmat = &v
		return nil
	},
	domain.RestrictionSurfaceType:    stringRestriction(func(r *domain.Restrictions) *string { return &r.SurfaceType }),
	domain.RestrictionTrackType:      stringRestriction(func(r *domain.Restrictions) *string { return &r.TrackType }),
	domain.RestrictionSmoothnessType: stringRestriction(func(r *domain.Restrictions) *string { return &r.SmoothnessType }),
	domain.RestrictionMaximumSlopedKerb: floatRestriction(func(r *domain.Restrictions) **float64 {
		return &r.MaximumSlopedKerb
	}),
	domain.RestrictionMaximumIncline: intRestriction(domain.RestrictionMaximumIncline,
		func(r *domain.Restrictions) **int { return &r.MaximumIncline }),
	domain.RestrictionGradient: intRestriction(domain.RestrictionGradient,
		func(r *domain.Restrictions) **int { return &r.Gradient }),
}

// buildRestrictions applies each restriction member in name order. A name
// the class does not support is rejected rather than ignored.
func buildRestrictions(class domain.ProfileClass, raw json.RawMessage) (*domain.Restrictions, error) {
	members, err := parse.ObjectJSON(raw)
	if err != nil {
		return nil, domain.NewInvalidJSONFormat("restrictions", err)
	}

	r := &domain.Restrictions{}
	for _, name := range slices.Sorted(maps.Keys(members)) {
		set, known := restrictionSetters[name]
		if !known || !class.AllowsRestriction(name) {
			return nil, domain.NewInvalidParameterValue("restrictions", name)
		}
		if err := set(r, members[name]); err != nil {
			var rerr *domain.RoutingError
			if errors.As(err, &rerr) {
				return nil, rerr
			}
			return nil, domain.NewInvalidParameterFormat(name, err)
		}
	}

	if err := restrictionValidator.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, domain.NewInvalidParameterValue(verrs[0].Field(), fmt.Sprint(verrs[0].Value()))
		}
		return nil, domain.NewInvalidParameterValue("restrictions", "")
	}
	return r, nil
}

var restrictionValidator = newRestrictionValidator()

// newRestrictionValidator reports field errors under their JSON names.
func newRestrictionValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
