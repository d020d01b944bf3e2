package geometry

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePoints = []domain.Point{
	{Lat: 38.5, Lon: -120.2},
	{Lat: 40.7, Lon: -120.95},
	{Lat: 43.252, Lon: -126.453},
}

const referencePolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestEncode_Reference(t *testing.T) {
	t.Parallel()

	assert.Equal(t, referencePolyline, Encode(referencePoints, false))
}

func TestDecode_Reference(t *testing.T) {
	t.Parallel()

	got, err := Decode(referencePolyline, false)
	require.NoError(t, err)
	require.Len(t, got, len(referencePoints))
	for i := range referencePoints {
		assert.InDelta(t, referencePoints[i].Lat, got[i].Lat, 1e-9)
		assert.InDelta(t, referencePoints[i].Lon, got[i].Lon, 1e-9)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		points    []domain.Point
		elevation bool
	}{
		{
			name: "two dimensions",
			points: []domain.Point{
				{Lon: 8.68092, Lat: 49.41097},
				{Lon: 8.68779, Lat: 49.42460},
				{Lon: -0.00001, Lat: -89.99999},
				{Lon: 179.99999, Lat: 0},
			},
		},
		{
			name: "with elevation",
			points: []domain.Point{
				{Lon: 8.68092, Lat: 49.41097, Elevation: 110.5},
				{Lon: 8.68779, Lat: 49.42460, Elevation: 117.25},
				{Lon: 8.69, Lat: 49.43, Elevation: -3.01},
				{Lon: 8.69, Lat: 49.43, Elevation: 0},
			},
			elevation: true,
		},
		{
			name:   "empty",
			points: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.points, tt.elevation)
			decoded, err := Decode(encoded, tt.elevation)
			require.NoError(t, err)
			require.Len(t, decoded, len(tt.points))
			for i, p := range tt.points {
				assert.InDelta(t, p.Lon, decoded[i].Lon, 1e-9)
				assert.InDelta(t, p.Lat, decoded[i].Lat, 1e-9)
				if tt.elevation {
					assert.InDelta(t, p.Elevation, decoded[i].Elevation, 1e-9)
				}
			}
			assert.Equal(t, encoded, Encode(decoded, tt.elevation), "re-encoding must reproduce the string")
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"_p~iF~ps|U_",  // truncated mid value
		"_p~iF",        // latitude without longitude
		"_p~iF\x01ps|", // byte below the alphabet
	} {
		_, err := Decode(s, false)
		assert.ErrorIs(t, err, ErrInvalidPolyline, s)
	}

	// a complete 2D point is an incomplete 3D point
	_, err := Decode("_p~iF~ps|U", true)
	assert.ErrorIs(t, err, ErrInvalidPolyline)
}

func TestPlain(t *testing.T) {
	t.Parallel()

	points := []domain.Point{
		{Lon: 8.6809161234, Lat: 49.410973, Elevation: 110.46},
		{Lon: 8.687782, Lat: 49.424597, Elevation: 117},
	}

	assert.Equal(t, [][]float64{{8.680916, 49.410973}, {8.687782, 49.424597}}, Plain(points, false))
	assert.Equal(t, [][]float64{{8.680916, 49.410973, 110.5}, {8.687782, 49.424597, 117}}, Plain(points, true))
}

func TestGeoJSON(t *testing.T) {
	t.Parallel()

	points := []domain.Point{{Lon: 8.68, Lat: 49.41, Elevation: 100}, {Lon: 8.69, Lat: 49.42, Elevation: 105}}

	b, err := json.Marshal(GeoJSON(points, false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[8.68,49.41],[8.69,49.42]]}`, string(b))

	b, err = json.Marshal(GeoJSON(points, true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[8.68,49.41,100],[8.69,49.42,105]]}`, string(b))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	got, err := Format(referencePoints, domain.GeometryEncodedPolyline, false)
	require.NoError(t, err)
	assert.Equal(t, referencePolyline, got)

	got, err = Format(referencePoints, domain.GeometryGeoJSON, false)
	require.NoError(t, err)
	assert.IsType(t, &LineString{}, got)

	got, err = Format(referencePoints, domain.GeometryPlain, false)
	require.NoError(t, err)
	assert.IsType(t, [][]float64{}, got)

	_, err = Format(referencePoints, domain.GeometryFormat("wkt"), false)
	assert.Error(t, err)
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	points := []domain.Point{
		{Lon: 8.680916, Lat: 49.410973, Elevation: 110.4},
		{Lon: 8.687782, Lat: 49.424597, Elevation: 117.2},
	}
	for _, format := range []domain.GeometryFormat{
		domain.GeometryEncodedPolyline, domain.GeometryGeoJSON, domain.GeometryPlain,
	} {
		for _, elevation := range []bool{false, true} {
			first, err := Format(points, format, elevation)
			require.NoError(t, err)
			second, err := Format(points, format, elevation)
			require.NoError(t, err)

			a, err := json.Marshal(first)
			require.NoError(t, err)
			b, err := json.Marshal(second)
			require.NoError(t, err)
			assert.Equal(t, a, b, "format %s elevation %v", format, elevation)
		}
	}
}

func TestBBox(t *testing.T) {
	t.Parallel()

	points := []domain.Point{
		{Lon: 8.687782, Lat: 49.410973, Elevation: 117},
		{Lon: 8.680916, Lat: 49.424597, Elevation: 110},
	}

	assert.Equal(t, []float64{8.680916, 49.410973, 8.687782, 49.424597}, BBox(points, false))
	assert.Equal(t, []float64{8.680916, 49.410973, 110, 8.687782, 49.424597, 117}, BBox(points, true))
	assert.Nil(t, BBox(nil, false))
}

func TestMergeBBox(t *testing.T) {
	t.Parallel()

	a := []float64{1, 2, 3, 4}
	b := []float64{0, 3, 2, 5}

	assert.Equal(t, []float64{0, 2, 3, 5}, MergeBBox(a, b))
	assert.Equal(t, a, MergeBBox(nil, a))
	assert.Equal(t, a, MergeBBox(a, nil))
}
