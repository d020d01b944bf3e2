// Package domain contains the core routing entities and value objects: the
// profile registry, option enumerations, the immutable RoutingRequest handed
// to the route engine, the RouteResult it returns, and the closed RoutingError
// taxonomy surfaced to clients. It is independent of any transport or engine.
package domain
