package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/phrazzld/directions-api/internal/domain"
)

// Output precision of rendered coordinates.
const (
	coordinateDecimals = 6
	elevationDecimals  = 1
)

// LineStringType is the GeoJSON type tag of route geometry.
const LineStringType = "LineString"

// LineString is a GeoJSON LineString geometry.
type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Plain renders points as [lon, lat] or [lon, lat, elevation] tuples.
func Plain(points []domain.Point, elevation bool) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		if elevation {
			out[i] = []float64{
				round(p.Lon, coordinateDecimals),
				round(p.Lat, coordinateDecimals),
				round(p.Elevation, elevationDecimals),
			}
			continue
		}
		out[i] = []float64{round(p.Lon, coordinateDecimals), round(p.Lat, coordinateDecimals)}
	}
	return out
}

// GeoJSON renders points as a LineString geometry.
func GeoJSON(points []domain.Point, elevation bool) *LineString {
	return &LineString{Type: LineStringType, Coordinates: Plain(points, elevation)}
}

// Format renders points in the requested format. The result is a string
// for encoded polylines, a *LineString for GeoJSON and a [][]float64 for
// plain output.
func Format(points []domain.Point, format domain.GeometryFormat, elevation bool) (any, error) {
	switch format {
	case domain.GeometryEncodedPolyline:
		return Encode(points, elevation), nil
	case domain.GeometryGeoJSON:
		return GeoJSON(points, elevation), nil
	case domain.GeometryPlain:
		return Plain(points, elevation), nil
	default:
		return nil, fmt.Errorf("unsupported geometry format %q", format)
	}
}

// BBox returns [minLon, minLat, maxLon, maxLat], or with elevation
// [minLon, minLat, minEle, maxLon, maxLat, maxEle]. It returns nil for an
// empty point list.
func BBox(points []domain.Point, elevation bool) []float64 {
	if len(points) == 0 {
		return nil
	}

	mp := make(orb.MultiPoint, len(points))
	minEle, maxEle := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		mp[i] = orb.Point{p.Lon, p.Lat}
		minEle = math.Min(minEle, p.Elevation)
		maxEle = math.Max(maxEle, p.Elevation)
	}
	b := mp.Bound()

	if elevation {
		return []float64{
			round(b.Min.Lon(), coordinateDecimals), round(b.Min.Lat(), coordinateDecimals), round(minEle, elevationDecimals),
			round(b.Max.Lon(), coordinateDecimals), round(b.Max.Lat(), coordinateDecimals), round(maxEle, elevationDecimals),
		}
	}
	return []float64{
		round(b.Min.Lon(), coordinateDecimals), round(b.Min.Lat(), coordinateDecimals),
		round(b.Max.Lon(), coordinateDecimals), round(b.Max.Lat(), coordinateDecimals),
	}
}

// MergeBBox returns the box covering both a and b. Both must have the same
// dimension; a nil box is ignored.
func MergeBBox(a, b []float64) []float64 {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	half := len(a) / 2
	out := make([]float64, len(a))
	for i := 0; i < half; i++ {
		out[i] = math.Min(a[i], b[i])
		out[half+i] = math.Max(a[half+i], b[half+i])
	}
	return out
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
