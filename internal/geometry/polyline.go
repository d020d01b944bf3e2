// Package geometry renders route vertices in the three wire formats:
// encoded polyline, GeoJSON LineString and plain coordinate arrays. Every
// renderer is a pure function of its input, so formatting the same route
// twice yields identical output.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/phrazzld/directions-api/internal/domain"
)

// Codec scale factors.
const (
	CoordinateScale = 1e5
	ElevationScale  = 1e2
)

const (
	chunkBits   = 5
	chunkMask   = 0x1f
	continueBit = 0x20
	charOffset  = 63
)

// ErrInvalidPolyline is returned for text that is not a complete encoding.
var ErrInvalidPolyline = errors.New("invalid encoded polyline")

// Encode writes points as an encoded polyline. Each point contributes
// latitude, then longitude, then elevation when elevation is true; every
// component is the scaled delta from the previous point, starting at zero.
func Encode(points []domain.Point, elevation bool) string {
	var sb strings.Builder
	sb.Grow(len(points) * 12)

	var prevLat, prevLon, prevEle int64
	for _, p := range points {
		lat := scale(p.Lat, CoordinateScale)
		lon := scale(p.Lon, CoordinateScale)
		writeValue(&sb, lat-prevLat)
		writeValue(&sb, lon-prevLon)
		prevLat, prevLon = lat, lon

		if elevation {
			ele := scale(p.Elevation, ElevationScale)
			writeValue(&sb, ele-prevEle)
			prevEle = ele
		}
	}
	return sb.String()
}

// Decode reverses Encode. The elevation flag must match the one used for
// encoding.
func Decode(s string, elevation bool) ([]domain.Point, error) {
	dims := 2
	if elevation {
		dims = 3
	}

	var (
		points []domain.Point
		acc    [3]int64
		pos    int
	)
	for pos < len(s) {
		for d := 0; d < dims; d++ {
			delta, n, err := readValue(s[pos:])
			if err != nil {
				return nil, fmt.Errorf("%w: point %d: %v", ErrInvalidPolyline, len(points), err)
			}
			acc[d] += delta
			pos += n
		}
		p := domain.Point{
			Lat: float64(acc[0]) / CoordinateScale,
			Lon: float64(acc[1]) / CoordinateScale,
		}
		if elevation {
			p.Elevation = float64(acc[2]) / ElevationScale
		}
		points = append(points, p)
	}
	return points, nil
}

func scale(v, factor float64) int64 {
	return int64(math.Round(v * factor))
}

// writeValue zig-zags v and emits it five bits at a time, least significant
// chunk first.
func writeValue(sb *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	for u >= continueBit {
		sb.WriteByte(byte((u&chunkMask)|continueBit) + charOffset)
		u >>= chunkBits
	}
	sb.WriteByte(byte(u) + charOffset)
}

// readValue decodes one value and reports how many bytes it consumed.
func readValue(s string) (int64, int, error) {
	var (
		u     uint64
		shift uint
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < charOffset || c > charOffset+chunkMask+continueBit {
			return 0, 0, fmt.Errorf("byte %q out of range", c)
		}
		if shift > 63 {
			return 0, 0, errors.New("value overflows 64 bits")
		}
		b := uint64(c - charOffset)
		u |= (b & chunkMask) << shift
		shift += chunkBits
		if b&continueBit == 0 {
			v := int64(u >> 1)
			if u&1 != 0 {
				v = ^v
			}
			return v, i + 1, nil
		}
	}
	return 0, 0, errors.New("truncated value")
}
