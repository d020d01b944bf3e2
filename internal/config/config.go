package config

import "time"

// Config holds all application configuration.
// It is loaded once at start and shared read-only by every request.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Routing RoutingConfig `mapstructure:"routing" validate:"required"`
	Engine  EngineConfig  `mapstructure:"engine" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel       string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	Compress       bool          `mapstructure:"compress"`
}

// RoutingConfig contains the server-wide request bounds and the metadata
// reported in every response.
type RoutingConfig struct {
	MaximumWaypoints int `mapstructure:"maximum_waypoints" validate:"gte=2"`
	// MaximumDistance is in meters.
	MaximumDistance float64 `mapstructure:"maximum_distance" validate:"gt=0"`
	// ClassMaximumDistance is keyed by profile class name.
	ClassMaximumDistance map[string]float64 `mapstructure:"class_maximum_distance" validate:"dive,gt=0"`
	// MaximumAvoidPolygonArea is in square kilometers.
	MaximumAvoidPolygonArea float64 `mapstructure:"maximum_avoid_polygon_area" validate:"gt=0"`
	// MaximumAvoidPolygonExtent is in kilometers.
	MaximumAvoidPolygonExtent float64 `mapstructure:"maximum_avoid_polygon_extent" validate:"gt=0"`
	Attribution               string  `mapstructure:"attribution"`
	EngineVersion             string  `mapstructure:"engine_version"`
}

// EngineConfig contains route engine settings.
type EngineConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
	// AverageSpeeds are km/h per profile class, used by the straight-line engine.
	AverageSpeeds map[string]float64 `mapstructure:"average_speeds" validate:"dive,gt=0"`
	// Coverage optionally bounds routable waypoints as
	// [min_lon, min_lat, max_lon, max_lat].
	Coverage []float64 `mapstructure:"coverage" validate:"omitempty,len=4"`
}
