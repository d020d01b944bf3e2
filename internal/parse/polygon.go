package parse

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/phrazzld/directions-api/internal/domain"
)

type geometryEnvelope struct {
	Type        *string         `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// AvoidPolygons decodes a {type, coordinates} structure. The type tag is
// checked before any coordinate is trusted; coordinates must be a list
// holding exactly one ring, the ring a list of two-element numeric
// positions. Numeric strings are accepted as positions.
func AvoidPolygons(raw json.RawMessage) (*domain.AvoidPolygons, error) {
	if IsJSONString(raw) {
		s, err := StringJSON(raw)
		if err != nil {
			return nil, err
		}
		raw = json.RawMessage(s)
	}

	var env geometryEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if env.Type == nil {
		return nil, fmt.Errorf("%w: missing type", ErrPolygonType)
	}

	var typ domain.AvoidGeometryType
	switch domain.AvoidGeometryType(*env.Type) {
	case domain.AvoidGeometryPolygon:
		typ = domain.AvoidGeometryPolygon
	case domain.AvoidGeometryLineString:
		typ = domain.AvoidGeometryLineString
	default:
		return nil, fmt.Errorf("%w: %q", ErrPolygonType, *env.Type)
	}

	rings, err := rings(env.Coordinates)
	if err != nil {
		return nil, err
	}
	return &domain.AvoidPolygons{Type: typ, Rings: rings}, nil
}

func rings(raw json.RawMessage) ([]orb.Ring, error) {
	items, err := array(raw)
	if err != nil || len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPolygonNesting, abbreviate(raw))
	}
	if len(items) > 1 {
		return nil, fmt.Errorf("%w: %d rings, holes are not supported", ErrPolygonNesting, len(items))
	}

	out := make([]orb.Ring, 0, len(items))
	for i, item := range items {
		positions, err := array(item)
		if err != nil {
			return nil, fmt.Errorf("%w: ring %d", ErrPolygonNesting, i)
		}
		ring := make(orb.Ring, 0, len(positions))
		for j, pos := range positions {
			elems, err := array(pos)
			if err != nil {
				// a bare number here means the ring level is missing
				return nil, fmt.Errorf("%w: ring %d position %d", ErrPolygonNesting, i, j)
			}
			if len(elems) != 2 {
				return nil, fmt.Errorf("%w: ring %d position %d has %d elements", ErrPolygonPoint, i, j, len(elems))
			}
			lon, err := NumberJSON(elems[0])
			if err != nil {
				return nil, fmt.Errorf("%w: ring %d position %d: %v", ErrPolygonPoint, i, j, err)
			}
			lat, err := NumberJSON(elems[1])
			if err != nil {
				return nil, fmt.Errorf("%w: ring %d position %d: %v", ErrPolygonPoint, i, j, err)
			}
			ring = append(ring, orb.Point{lon, lat})
		}
		out = append(out, ring)
	}
	return out, nil
}

func abbreviate(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 64 {
		return string(raw[:64]) + "..."
	}
	return string(raw)
}
