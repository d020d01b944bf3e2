package validation

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/parse"
)

// Coordinate, bearing and radius domains.
const (
	minLongitude    = -180.0
	maxLongitude    = 180.0
	minLatitude     = -90.0
	maxLatitude     = 90.0
	maxBearing      = 360.0
	maxDeviation    = 180.0
	unlimitedRadius = -1.0
)

// enumField parses an optional string enum. ok is false when the field is
// absent. A non-string token is a format error, an unknown value a value
// error.
func enumField[T any](raw json.RawMessage, name string, parseFn func(string) (T, bool)) (v T, ok bool, err error) {
	if parse.IsAbsent(raw) {
		return v, false, nil
	}
	s, err := parse.StringJSON(raw)
	if err != nil {
		return v, false, domain.NewInvalidParameterFormat(name, err)
	}
	v, known := parseFn(s)
	if !known {
		return v, false, domain.NewInvalidParameterValue(name, s)
	}
	return v, true, nil
}

// boolField parses an optional boolean into dst, leaving the default in
// place when the field is absent.
func boolField(raw json.RawMessage, name string, dst *bool) error {
	if parse.IsAbsent(raw) {
		return nil
	}
	v, err := parse.BoolJSON(raw)
	if err != nil {
		return domain.NewInvalidParameterFormat(name, err)
	}
	*dst = v
	return nil
}

func validateProfile(a *assembly) error {
	name := a.pathProfile
	if name == "" {
		if parse.IsAbsent(a.raw.Profile) {
			return domain.NewMissingParameter("profile")
		}
		s, err := parse.StringJSON(a.raw.Profile)
		if err != nil {
			return domain.NewInvalidParameterFormat("profile", err)
		}
		name = s
	}
	p, err := domain.ProfileFromString(name)
	if err != nil {
		return err
	}
	a.req.Profile = p
	return nil
}

func validateCoordinates(a *assembly) error {
	if parse.IsAbsent(a.raw.Coordinates) {
		return domain.NewMissingParameter("coordinates")
	}
	pairs, err := parse.PairsJSON(a.raw.Coordinates)
	if err != nil {
		return domain.NewInvalidParameterFormat("coordinates", err)
	}
	if len(pairs) < 2 {
		return domain.NewMissingParameter("coordinates")
	}
	if err := checkWaypointCount(len(pairs), a.limits); err != nil {
		return err
	}

	coords := make([]domain.Coordinate, len(pairs))
	for i, p := range pairs {
		lon, lat := p[0], p[1]
		if lon < minLongitude || lon > maxLongitude || lat < minLatitude || lat > maxLatitude {
			return domain.NewInvalidParameterValue("coordinates", formatPair(p))
		}
		coords[i] = domain.Coordinate{Lon: lon, Lat: lat}
	}
	a.req.Coordinates = coords
	return nil
}

func validateID(a *assembly) error {
	if parse.IsAbsent(a.raw.ID) {
		return nil
	}
	s, err := parse.StringJSON(a.raw.ID)
	if err != nil {
		return domain.NewInvalidParameterFormat("id", err)
	}
	a.req.ID = s
	return nil
}

func validatePreference(a *assembly) error {
	v, ok, err := enumField(a.raw.Preference, "preference", domain.ParsePreference)
	if ok {
		a.req.Preference = v
	}
	return err
}

func validateUnits(a *assembly) error {
	v, ok, err := enumField(a.raw.Units, "units", domain.ParseUnits)
	if ok {
		a.req.Units = v
	}
	return err
}

func validateLanguage(a *assembly) error {
	v, ok, err := enumField(a.raw.Language, "language", matchLanguage)
	if ok {
		a.req.Language = v
	}
	return err
}

func validateInstructions(a *assembly) error {
	if err := boolField(a.raw.Instructions, "instructions", &a.req.Instructions); err != nil {
		return err
	}
	v, ok, err := enumField(a.raw.InstructionsFormat, "instructions_format", domain.ParseInstructionsFormat)
	if ok {
		a.req.InstructionsFormat = v
	}
	return err
}

func validateGeometry(a *assembly) error {
	if err := boolField(a.raw.Geometry, "geometry", &a.req.Geometry); err != nil {
		return err
	}
	v, ok, err := enumField(a.raw.GeometryFormat, "geometry_format", domain.ParseGeometryFormat)
	if err != nil {
		return err
	}
	if ok {
		// the feature collection envelope only carries GeoJSON geometry
		if a.req.ResponseType == domain.ResponseGeoJSON && v != domain.GeometryGeoJSON {
			return domain.NewInvalidParameterValue("geometry_format", string(v))
		}
		a.req.GeometryFormat = v
	}
	return boolField(a.raw.Elevation, "elevation", &a.req.Elevation)
}

func validateExtraInfo(a *assembly) error {
	if parse.IsAbsent(a.raw.ExtraInfo) {
		return nil
	}
	names, err := parse.StringsJSON(a.raw.ExtraInfo)
	if err != nil {
		return domain.NewInvalidParameterFormat("extra_info", err)
	}
	seen := make(map[domain.ExtraInfo]struct{}, len(names))
	tags := make([]domain.ExtraInfo, 0, len(names))
	for _, name := range names {
		tag, ok := domain.ParseExtraInfo(name)
		if !ok {
			return domain.NewInvalidParameterValue("extra_info", name)
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	a.req.ExtraInfo = tags
	return nil
}

func validateBearings(a *assembly) error {
	if parse.IsAbsent(a.raw.Bearings) {
		return nil
	}
	pairs, err := parse.PairsJSON(a.raw.Bearings)
	if err != nil {
		return &domain.RoutingError{
			Category: domain.InvalidParameterValue,
			Message:  "Parameter 'bearings' has incorrect value.",
			Err:      err,
		}
	}
	if len(pairs) != len(a.req.Coordinates) {
		return domain.NewInvalidParameterValue("bearings", lengthMismatch(len(pairs), len(a.req.Coordinates)))
	}

	bearings := make([]domain.Bearing, len(pairs))
	for i, p := range pairs {
		if p[0] < 0 || p[0] > maxBearing || p[1] < 0 || p[1] > maxDeviation {
			return domain.NewInvalidParameterValue("bearings", formatPair(p))
		}
		bearings[i] = domain.Bearing{Value: p[0], Deviation: p[1]}
	}
	a.req.Bearings = bearings
	return nil
}

func validateRadiuses(a *assembly) error {
	if parse.IsAbsent(a.raw.Radiuses) {
		return nil
	}
	radiuses, err := parse.ScalarsJSON(a.raw.Radiuses)
	if err != nil {
		return &domain.RoutingError{
			Category: domain.InvalidParameterValue,
			Message:  "Parameter 'radiuses' has incorrect value.",
			Err:      err,
		}
	}
	if len(radiuses) != len(a.req.Coordinates) {
		return domain.NewInvalidParameterValue("radiuses", lengthMismatch(len(radiuses), len(a.req.Coordinates)))
	}
	for _, r := range radiuses {
		if r != unlimitedRadius && r <= 0 {
			return domain.NewInvalidParameterValue("radiuses", formatFloat(r))
		}
	}
	a.req.Radiuses = radiuses
	return nil
}

func validateMaximumSpeed(a *assembly) error {
	if parse.IsAbsent(a.raw.MaximumSpeed) {
		return nil
	}
	v, err := maximumSpeed(a.raw.MaximumSpeed)
	if err != nil {
		return err
	}
	a.req.Options.MaximumSpeed = &v
	return nil
}

// maximumSpeed parses a speed in km/h. Unparseable text is a format error;
// a parsed value that is not positive is a value error.
func maximumSpeed(raw json.RawMessage) (float64, error) {
	v, err := parse.NumberJSON(raw)
	if err != nil {
		return 0, domain.NewInvalidParameterFormat("maximum_speed", err)
	}
	if v <= 0 {
		return 0, domain.NewInvalidParameterValue("maximum_speed", formatFloat(v))
	}
	return v, nil
}

func validateDistance(a *assembly) error {
	return checkDistance(a.req, a.limits)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPair(p [2]float64) string {
	return formatFloat(p[0]) + "," + formatFloat(p[1])
}

func lengthMismatch(got, want int) string {
	return fmt.Sprintf("%d entries for %d coordinates", got, want)
}
