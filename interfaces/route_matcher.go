package interfaces

import "reactivemesh/domain"

// RouteMatcher maps an HTTP request path to a route rule of the gateway.
//
// Implemented by service.routeMatcher. Called from service.Gateway for every request (skip decision and target
// selection).
//
//go:generate moq -stub -out mock/route_matcher.go -pkg mock . RouteMatcher
type RouteMatcher interface {
	// Match returns the first rule, in table order, whose prefix is a prefix of path.
	// Returns: (rule, true) on match; (domain.RouteRule{}, false) when no rule matches.
	Match(path string) (domain.RouteRule, bool)
}
