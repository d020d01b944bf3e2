package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/engine"
)

// ErrEmptyResult indicates the route engine returned without error but
// produced no route.
var ErrEmptyResult = errors.New("route engine returned no routes")

// EngineError wraps a failed route engine call with the operation context
// the logs need. It never reaches clients; classifyEngineError turns it
// into a RoutingError.
type EngineError struct {
	Profile domain.Profile
	Err     error
}

// Error implements the error interface for EngineError.
func (e *EngineError) Error() string {
	return fmt.Sprintf("route engine failed for profile %s: %v", e.Profile, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// classifyEngineError maps an engine failure onto the client taxonomy.
// Only an engine-reported limit is distinguishable; timeouts, unmatched
// waypoints and everything else are Unknown.
func classifyEngineError(err error) *domain.RoutingError {
	switch {
	case errors.Is(err, engine.ErrLimitExceeded):
		rerr := domain.NewServerLimitExceeded("Request exceeds the route engine limits.")
		rerr.Err = err
		return rerr
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewUnknown(fmt.Errorf("route engine timed out: %w", err))
	default:
		return domain.NewUnknown(err)
	}
}
