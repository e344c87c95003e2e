package service

import (
	"reactivemesh/domain"
	"reactivemesh/interfaces"
)

// routeMatcher implements interfaces.RouteMatcher. It holds a copy of the route table in configuration order and
// returns the first rule whose prefix matches; overlapping prefixes are resolved by order only, never by length.
type routeMatcher struct {
	routes []domain.RouteRule
}

// NewRouteMatcher validates rules via domain.ValidateRoutes and copies them, keeping their order.
//
// Parameter rules — the gateway route table (from YAML via LoadConfig). May be empty: nothing matches.
//
// Returns: (interfaces.RouteMatcher, nil) on success; (nil, *domain.RouteConfigError) on an invalid rule.
//
// Called from cmd/gateway main at startup.
func NewRouteMatcher(rules []domain.RouteRule) (interfaces.RouteMatcher, error) {
	if err := domain.ValidateRoutes(rules); err != nil {
		return nil, err
	}
	routes := make([]domain.RouteRule, len(rules))
	copy(routes, rules)
	return &routeMatcher{routes: routes}, nil
}

// Match returns the first rule in table order that covers path (domain.RouteRule.Matches).
//
// Called from Gateway.skip and Gateway.NextTarget on every request.
func (r *routeMatcher) Match(path string) (domain.RouteRule, bool) {
	for _, route := range r.routes {
		if route.Matches(path) {
			return route, true
		}
	}
	return domain.RouteRule{}, false
}
