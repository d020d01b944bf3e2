package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/engine"
	"github.com/phrazzld/directions-api/internal/platform/logger"
	"github.com/phrazzld/directions-api/internal/redact"
	"github.com/phrazzld/directions-api/internal/validation"
)

// Directions is a computed route together with the request that produced
// it. The response assembler needs both to decide which fields to render.
type Directions struct {
	Request *domain.RoutingRequest
	Result  *domain.RouteResult
}

// DirectionsService computes routes for raw client requests.
type DirectionsService interface {
	// Directions validates raw, calls the route engine and returns the
	// route. pathProfile is the profile taken from the URL path, or empty
	// when the request carries it as a field.
	//
	// Every error returned is a *domain.RoutingError.
	Directions(
		ctx context.Context,
		raw validation.RawRequest,
		pathProfile string,
		rt domain.ResponseType,
	) (*Directions, error)
}

type directionsServiceImpl struct {
	engine  engine.Engine
	limits  validation.Limits
	timeout time.Duration
	logger  *slog.Logger
}

// NewDirectionsService creates a DirectionsService. A zero timeout leaves
// the engine call bounded only by the caller's context.
func NewDirectionsService(
	eng engine.Engine,
	limits validation.Limits,
	timeout time.Duration,
	logger *slog.Logger,
) DirectionsService {
	if eng == nil {
		panic("engine cannot be nil for DirectionsService") // ALLOW-PANIC: constructor enforcing required dependency
	}
	if logger == nil {
		panic("logger cannot be nil for DirectionsService") // ALLOW-PANIC: constructor enforcing required dependency
	}
	return &directionsServiceImpl{
		engine:  eng,
		limits:  limits,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "directions_service")),
	}
}

// Directions implements DirectionsService.
func (s *directionsServiceImpl) Directions(
	ctx context.Context,
	raw validation.RawRequest,
	pathProfile string,
	rt domain.ResponseType,
) (*Directions, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	req, err := validation.Assemble(raw, pathProfile, rt, s.limits)
	if err != nil {
		rerr := domain.AsRoutingError(err)
		log.DebugContext(ctx, "directions request rejected",
			slog.Int("code", rerr.Code()),
			slog.String("message", rerr.Message))
		return nil, rerr
	}

	engineCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		engineCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := s.engine.Route(engineCtx, req)
	if err == nil && (res == nil || len(res.Routes) == 0) {
		err = ErrEmptyResult
	}
	if err != nil {
		err = &EngineError{Profile: req.Profile, Err: err}
		rerr := classifyEngineError(err)
		log.ErrorContext(ctx, "route engine call failed",
			slog.String("error", redact.Error(err)),
			slog.String("profile", string(req.Profile)),
			slog.Int("code", rerr.Code()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, rerr
	}

	log.DebugContext(ctx, "route computed",
		slog.String("profile", string(req.Profile)),
		slog.Int("waypoints", len(req.Coordinates)),
		slog.Duration("elapsed", time.Since(start)))

	return &Directions{Request: req, Result: res}, nil
}
