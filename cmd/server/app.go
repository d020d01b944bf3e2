package main

import (
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/phrazzld/directions-api/internal/api"
	"github.com/phrazzld/directions-api/internal/config"
	"github.com/phrazzld/directions-api/internal/engine"
	"github.com/phrazzld/directions-api/internal/service"
	"github.com/phrazzld/directions-api/internal/validation"
)

// application holds the shared application dependencies. Everything in it
// is built once at start and read concurrently by requests.
type application struct {
	config *config.Config
	logger *slog.Logger

	engine            engine.Engine
	directionsService service.DirectionsService
	directionsHandler *api.DirectionsHandler
}

// newApplication wires the route engine, the directions service and the
// HTTP handlers from cfg.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	engineOpts := []engine.Option{engine.WithSpeeds(cfg.Engine.AverageSpeeds)}
	if c := cfg.Engine.Coverage; len(c) == 4 {
		engineOpts = append(engineOpts, engine.WithCoverage(orb.Bound{
			Min: orb.Point{c[0], c[1]},
			Max: orb.Point{c[2], c[3]},
		}))
		logger.Info("engine coverage restricted", "bbox", c)
	}
	app.engine = engine.NewStraightLine(logger, engineOpts...)

	limits := validation.LimitsFromConfig(cfg.Routing)
	app.directionsService = service.NewDirectionsService(app.engine, limits, cfg.Engine.Timeout, logger)
	logger.Info("directions service initialized",
		"maximum_waypoints", limits.MaximumWaypoints,
		"maximum_distance_m", limits.MaximumDistance,
		"engine_timeout", cfg.Engine.Timeout)

	app.directionsHandler = api.NewDirectionsHandler(
		app.directionsService,
		api.NewResponseAssembler(api.ResponseConfig{
			Attribution:   cfg.Routing.Attribution,
			EngineVersion: cfg.Routing.EngineVersion,
		}),
		api.DefaultMaxBodyBytes,
		logger,
	)

	return app, nil
}
