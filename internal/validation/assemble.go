package validation

import "github.com/phrazzld/directions-api/internal/domain"

// assembly is the request-local state threaded through the validation steps.
type assembly struct {
	raw         RawRequest
	pathProfile string
	limits      Limits
	req         *domain.RoutingRequest
}

type step func(a *assembly) error

// steps run in order and the first error ends validation. Profile comes
// first because option legality depends on its class; the distance limit
// comes last because it only applies to an otherwise valid request.
var steps = []step{
	validateProfile,
	validateCoordinates,
	validateID,
	validatePreference,
	validateUnits,
	validateLanguage,
	validateInstructions,
	validateGeometry,
	validateExtraInfo,
	validateBearings,
	validateRadiuses,
	validateMaximumSpeed,
	validateOptions,
	validateDistance,
}

// Assemble validates raw and builds the RoutingRequest handed to the route
// engine. pathProfile is the profile taken from the URL path, if any; it
// takes precedence over a profile member in the request itself. rt is the
// negotiated response envelope.
//
// The returned error is always a *domain.RoutingError.
func Assemble(raw RawRequest, pathProfile string, rt domain.ResponseType, limits Limits) (*domain.RoutingRequest, error) {
	a := &assembly{
		raw:         raw,
		pathProfile: pathProfile,
		limits:      limits,
		req:         newRequest(rt),
	}
	for _, s := range steps {
		if err := s(a); err != nil {
			return nil, domain.AsRoutingError(err)
		}
	}
	return a.req, nil
}

func newRequest(rt domain.ResponseType) *domain.RoutingRequest {
	if rt == "" {
		rt = domain.ResponseJSON
	}
	return &domain.RoutingRequest{
		Preference:         domain.PreferenceRecommended,
		Units:              domain.UnitsMeters,
		Language:           "en",
		Instructions:       true,
		InstructionsFormat: domain.InstructionsText,
		Geometry:           true,
		GeometryFormat:     defaultGeometryFormat(rt),
		ResponseType:       rt,
	}
}

func defaultGeometryFormat(rt domain.ResponseType) domain.GeometryFormat {
	if rt == domain.ResponseGeoJSON {
		return domain.GeometryGeoJSON
	}
	return domain.GeometryEncodedPolyline
}
