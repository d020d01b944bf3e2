// Package validation converts a loosely-typed directions request into a
// domain.RoutingRequest. Validation is first-failure-wins: the first
// violation found is returned as a single *domain.RoutingError and nothing
// after it is inspected.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/phrazzld/directions-api/internal/domain"
)

// RawRequest carries every client field untouched. Body and query input
// both end up here: query values arrive as JSON strings and every field
// parser accepts the string grammar as well as the structured JSON form.
type RawRequest struct {
	ID                 json.RawMessage `json:"id"`
	Profile            json.RawMessage `json:"profile"`
	Coordinates        json.RawMessage `json:"coordinates"`
	Preference         json.RawMessage `json:"preference"`
	Units              json.RawMessage `json:"units"`
	Language           json.RawMessage `json:"language"`
	Instructions       json.RawMessage `json:"instructions"`
	InstructionsFormat json.RawMessage `json:"instructions_format"`
	Geometry           json.RawMessage `json:"geometry"`
	GeometryFormat     json.RawMessage `json:"geometry_format"`
	Elevation          json.RawMessage `json:"elevation"`
	ExtraInfo          json.RawMessage `json:"extra_info"`
	Options            json.RawMessage `json:"options"`
	Bearings           json.RawMessage `json:"bearings"`
	Radiuses           json.RawMessage `json:"radiuses"`
	MaximumSpeed       json.RawMessage `json:"maximum_speed"`
}

func (r *RawRequest) fields() map[string]*json.RawMessage {
	return map[string]*json.RawMessage{
		"id":                  &r.ID,
		"profile":             &r.Profile,
		"coordinates":         &r.Coordinates,
		"preference":          &r.Preference,
		"units":               &r.Units,
		"language":            &r.Language,
		"instructions":        &r.Instructions,
		"instructions_format": &r.InstructionsFormat,
		"geometry":            &r.Geometry,
		"geometry_format":     &r.GeometryFormat,
		"elevation":           &r.Elevation,
		"extra_info":          &r.ExtraInfo,
		"options":             &r.Options,
		"bearings":            &r.Bearings,
		"radiuses":            &r.Radiuses,
		"maximum_speed":       &r.MaximumSpeed,
	}
}

// FromQuery builds a RawRequest from query parameters. Parameters the
// service does not know, such as api keys, are ignored.
func FromQuery(q url.Values) RawRequest {
	var raw RawRequest
	for name, field := range raw.fields() {
		if !q.Has(name) {
			continue
		}
		// marshaling a string cannot fail
		b, _ := json.Marshal(q.Get(name))
		*field = b
	}
	return raw
}

// DecodeBody reads a JSON request body. Syntax errors classify as
// InvalidJsonFormat and unknown members as InvalidParameterValue.
func DecodeBody(body io.Reader) (RawRequest, error) {
	var raw RawRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		if name, ok := unknownField(err); ok {
			return RawRequest{}, domain.NewInvalidParameterValue("request", name)
		}
		return RawRequest{}, domain.NewInvalidJSONFormat("request body", err)
	}
	if dec.More() {
		return RawRequest{}, domain.NewInvalidJSONFormat("request body", errors.New("trailing data"))
	}
	return raw, nil
}

func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}
