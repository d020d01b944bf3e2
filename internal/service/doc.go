// Package service contains the directions use case. It sits between the
// HTTP layer and the route engine: requests are validated and assembled
// first, the engine is called only for requests that passed, and every
// failure leaves the service as a single domain.RoutingError.
//
// Validation failures are returned before any engine work starts. Engine
// failures are classified once at this boundary and are never retried.
package service
