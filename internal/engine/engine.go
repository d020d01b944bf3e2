// Package engine defines the route engine contract and a built-in
// straight-line engine. The engine owns path finding, elevation lookup and
// segment computation; the rest of the service only sees RouteResult.
package engine

import (
	"context"
	"errors"

	"github.com/phrazzld/directions-api/internal/domain"
)

// Engine failures the service can classify. Any other error is reported to
// the client as an unknown routing failure.
var (
	// ErrLimitExceeded means the engine refused the request for exceeding
	// one of its own resource limits.
	ErrLimitExceeded = errors.New("route engine limit exceeded")

	// ErrPointNotFound means a waypoint could not be matched to the graph.
	ErrPointNotFound = errors.New("waypoint not routable")
)

// Engine computes routes for validated requests. Implementations must
// honor ctx cancellation and must not retain req after returning.
type Engine interface {
	Route(ctx context.Context, req *domain.RoutingRequest) (*domain.RouteResult, error)
}
