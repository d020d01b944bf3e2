package validation

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/phrazzld/directions-api/internal/config"
	"github.com/phrazzld/directions-api/internal/domain"
)

// Limits are the server-wide resource bounds. They are read from immutable
// configuration and shared by every request without locking.
type Limits struct {
	MaximumWaypoints int
	// MaximumDistance bounds the summed great-circle waypoint distance, in meters.
	MaximumDistance float64
	// ClassMaximumDistance overrides MaximumDistance per profile class.
	ClassMaximumDistance map[domain.ProfileClass]float64
	// MaximumAvoidPolygonArea is in square kilometers.
	MaximumAvoidPolygonArea float64
	// MaximumAvoidPolygonExtent bounds bbox width and height, in kilometers.
	MaximumAvoidPolygonExtent float64
}

// LimitsFromConfig copies the routing bounds out of configuration.
func LimitsFromConfig(cfg config.RoutingConfig) Limits {
	byClass := make(map[domain.ProfileClass]float64)
	for _, class := range []domain.ProfileClass{
		domain.ClassDriving, domain.ClassHeavyGoods, domain.ClassCycling,
		domain.ClassWalking, domain.ClassWheelchair,
	} {
		if d, ok := cfg.ClassMaximumDistance[class.String()]; ok {
			byClass[class] = d
		}
	}
	return Limits{
		MaximumWaypoints:          cfg.MaximumWaypoints,
		MaximumDistance:           cfg.MaximumDistance,
		ClassMaximumDistance:      byClass,
		MaximumAvoidPolygonArea:   cfg.MaximumAvoidPolygonArea,
		MaximumAvoidPolygonExtent: cfg.MaximumAvoidPolygonExtent,
	}
}

// DefaultLimits mirrors the configuration defaults.
func DefaultLimits() Limits {
	return Limits{
		MaximumWaypoints: 50,
		MaximumDistance:  6_000_000,
		ClassMaximumDistance: map[domain.ProfileClass]float64{
			domain.ClassCycling:    300_000,
			domain.ClassWalking:    100_000,
			domain.ClassWheelchair: 100_000,
		},
		MaximumAvoidPolygonArea:   200,
		MaximumAvoidPolygonExtent: 20,
	}
}

func checkWaypointCount(n int, limits Limits) error {
	if limits.MaximumWaypoints > 0 && n > limits.MaximumWaypoints {
		return domain.NewServerLimitExceeded(fmt.Sprintf(
			"Request contains %d waypoints, the server limit is %d.",
			n, limits.MaximumWaypoints))
	}
	return nil
}

// maximumDistance returns the distance bound for a profile class.
func (l Limits) maximumDistance(class domain.ProfileClass) float64 {
	if d, ok := l.ClassMaximumDistance[class]; ok {
		return d
	}
	return l.MaximumDistance
}

func checkDistance(req *domain.RoutingRequest, limits Limits) error {
	max := limits.maximumDistance(req.Profile.Class())
	if max <= 0 {
		return nil
	}
	d := req.WaypointDistance()
	if d > max {
		return domain.NewServerLimitExceeded(fmt.Sprintf(
			"Request distance of %s m exceeds the server limit of %s m for profile '%s'.",
			humanize.Comma(int64(d)), humanize.Comma(int64(max)), req.Profile))
	}
	return nil
}
