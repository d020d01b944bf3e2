package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/phrazzld/directions-api/internal/domain"
)

// Step types reported by the straight-line engine.
const (
	StepArrive = 10
	StepDepart = 11
)

const (
	// vertexSpacing is the target distance between interpolated vertices.
	vertexSpacing = 1000.0
	// maxSegmentVertices caps interpolation on very long legs.
	maxSegmentVertices = 100
	kmhToMps           = 1 / 3.6
)

var defaultSpeeds = map[domain.ProfileClass]float64{
	domain.ClassDriving:    80,
	domain.ClassHeavyGoods: 60,
	domain.ClassCycling:    18,
	domain.ClassWalking:    5,
	domain.ClassWheelchair: 4,
}

// StraightLine routes along great-circle arcs between consecutive
// waypoints. It needs no graph data, so the service is usable without an
// external engine; durations come from an average speed per profile class.
type StraightLine struct {
	speeds   map[domain.ProfileClass]float64
	coverage *orb.Bound
	logger   *slog.Logger
}

// Option configures a StraightLine engine.
type Option func(*StraightLine)

// WithSpeeds overrides the average speeds, in km/h, keyed by profile class
// name. Unknown class names are ignored.
func WithSpeeds(speeds map[string]float64) Option {
	return func(e *StraightLine) {
		for class := range defaultSpeeds {
			if v, ok := speeds[class.String()]; ok && v > 0 {
				e.speeds[class] = v
			}
		}
	}
}

// WithCoverage restricts routable waypoints to bound. Waypoints outside it
// fail with ErrPointNotFound.
func WithCoverage(bound orb.Bound) Option {
	return func(e *StraightLine) {
		e.coverage = &bound
	}
}

// NewStraightLine creates a straight-line engine.
func NewStraightLine(logger *slog.Logger, opts ...Option) *StraightLine {
	if logger == nil {
		panic("logger cannot be nil for StraightLine") // ALLOW-PANIC: constructor enforcing required dependency
	}
	e := &StraightLine{
		speeds: make(map[domain.ProfileClass]float64, len(defaultSpeeds)),
		logger: logger.With(slog.String("component", "straight_line_engine")),
	}
	for class, v := range defaultSpeeds {
		e.speeds[class] = v
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ Engine = (*StraightLine)(nil)

// Route implements Engine.
func (e *StraightLine) Route(ctx context.Context, req *domain.RoutingRequest) (*domain.RouteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Coordinates) < 2 {
		return nil, fmt.Errorf("straight line: %d waypoints", len(req.Coordinates))
	}
	if e.coverage != nil {
		for i, c := range req.Coordinates {
			if !e.coverage.Contains(orb.Point{c.Lon, c.Lat}) {
				return nil, fmt.Errorf("%w: waypoint %d", ErrPointNotFound, i)
			}
		}
	}

	speed := e.speed(req)
	route := domain.Route{
		Points:    []domain.Point{pointOf(req.Coordinates[0])},
		WayPoints: []int{0},
	}

	for i := 1; i < len(req.Coordinates); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		from, to := req.Coordinates[i-1], req.Coordinates[i]
		start := len(route.Points) - 1
		route.Points = append(route.Points, interpolate(from, to)...)
		end := len(route.Points) - 1
		route.WayPoints = append(route.WayPoints, end)

		dist := from.DistanceTo(to)
		seg := domain.Segment{Distance: dist, Duration: dist / speed}
		if req.Instructions {
			seg.Steps = steps(req, from, to, i, start, end, seg)
		}
		route.Segments = append(route.Segments, seg)
		route.Summary.Distance += seg.Distance
		route.Summary.Duration += seg.Duration
	}

	if len(req.ExtraInfo) > 0 {
		route.Extras = extras(req.ExtraInfo, len(route.Points)-1, route.Summary.Distance)
	}

	e.logger.DebugContext(ctx, "straight line route computed",
		slog.String("profile", string(req.Profile)),
		slog.Int("waypoints", len(req.Coordinates)),
		slog.Int("vertices", len(route.Points)),
		slog.Float64("distance_m", route.Summary.Distance))

	return &domain.RouteResult{Routes: []domain.Route{route}}, nil
}

// speed returns the travel speed in m/s, capped by the requested maximum.
func (e *StraightLine) speed(req *domain.RoutingRequest) float64 {
	kmh := e.speeds[req.Profile.Class()]
	if kmh <= 0 {
		kmh = defaultSpeeds[domain.ClassDriving]
	}
	if m := req.Options.MaximumSpeed; m != nil && *m < kmh {
		kmh = *m
	}
	return kmh * kmhToMps
}

func pointOf(c domain.Coordinate) domain.Point {
	return domain.Point{Lon: c.Lon, Lat: c.Lat}
}

// interpolate returns the vertices after from up to and including to.
func interpolate(from, to domain.Coordinate) []domain.Point {
	a := s2.PointFromLatLng(from.LatLng())
	b := s2.PointFromLatLng(to.LatLng())

	n := int(from.DistanceTo(to) / vertexSpacing)
	n = max(1, min(n, maxSegmentVertices))

	out := make([]domain.Point, 0, n)
	for k := 1; k < n; k++ {
		ll := s2.LatLngFromPoint(s2.Interpolate(float64(k)/float64(n), a, b))
		out = append(out, domain.Point{Lon: ll.Lng.Degrees(), Lat: ll.Lat.Degrees()})
	}
	return append(out, pointOf(to))
}

func steps(req *domain.RoutingRequest, from, to domain.Coordinate, leg, start, end int, seg domain.Segment) []domain.Step {
	direction := cardinal(initialBearing(from, to))
	if req.InstructionsFormat == domain.InstructionsHTML {
		direction = "<b>" + direction + "</b>"
	}

	arrive := "Arrive at your destination"
	if leg < len(req.Coordinates)-1 {
		arrive = fmt.Sprintf("Arrive at waypoint %d", leg)
	}

	return []domain.Step{
		{
			Distance:    seg.Distance,
			Duration:    seg.Duration,
			Type:        StepDepart,
			Instruction: "Head " + direction,
			Name:        "-",
			WayPoints:   [2]int{start, end},
		},
		{
			Type:        StepArrive,
			Instruction: arrive,
			Name:        "-",
			WayPoints:   [2]int{end, end},
		},
	}
}

// initialBearing returns the forward azimuth from a to b in degrees [0, 360).
func initialBearing(a, b domain.Coordinate) float64 {
	lat1 := s1.Angle(a.Lat) * s1.Degree
	lat2 := s1.Angle(b.Lat) * s1.Degree
	dLon := s1.Angle(b.Lon-a.Lon) * s1.Degree

	y := math.Sin(dLon.Radians()) * math.Cos(lat2.Radians())
	x := math.Cos(lat1.Radians())*math.Sin(lat2.Radians()) -
		math.Sin(lat1.Radians())*math.Cos(lat2.Radians())*math.Cos(dLon.Radians())
	deg := (s1.Angle(math.Atan2(y, x)) * s1.Radian).Degrees()
	return math.Mod(deg+360, 360)
}

var cardinals = [...]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

func cardinal(bearing float64) string {
	return cardinals[int(math.Round(bearing/45))%len(cardinals)]
}

// extras reports one constant run per requested tag; a straight line has no
// surface or gradient data, so every tag carries value 0.
func extras(tags []domain.ExtraInfo, last int, distance float64) map[domain.ExtraInfo]domain.ExtraData {
	out := make(map[domain.ExtraInfo]domain.ExtraData, len(tags))
	for _, tag := range tags {
		out[tag] = domain.ExtraData{
			Values:  [][3]int{{0, last, 0}},
			Summary: []domain.ExtraSummary{{Value: 0, Distance: distance, Amount: 100}},
		}
	}
	return out
}
