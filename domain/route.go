package domain

import (
	"strconv"
	"strings"
)

// Gateway response header names.
const (
	HeaderService = "Service"
	HeaderGateway = "Gateway"
)

// HeaderRule adds one response header to forwarded responses. Value returns the header value and false when the
// value is unavailable, in which case the header is omitted.
type HeaderRule struct {
	Name  string
	Value func() (string, bool)
}

// StaticHeader returns a HeaderRule that always yields value.
func StaticHeader(name, value string) HeaderRule {
	return HeaderRule{Name: name, Value: func() (string, bool) { return value, true }}
}

// RouteRule maps a request path prefix to a registered service name. Rules are kept in table order and the first
// rule whose Prefix is a prefix of the request path wins; overlapping prefixes have no other priority.
type RouteRule struct {
	Prefix  string
	Service string
	Headers []HeaderRule
}

// Matches reports whether path falls under the rule. A prefix ending in "/" also covers the bare path without it, so
// "/account/" matches "/account" but not "/accounts".
func (r RouteRule) Matches(path string) bool {
	if strings.HasPrefix(path, r.Prefix) {
		return true
	}
	return len(r.Prefix) > 1 && strings.HasSuffix(r.Prefix, "/") && path == r.Prefix[:len(r.Prefix)-1]
}

// ValidateRoutes checks every rule: Prefix non-empty and starting with "/", Service non-empty, header names
// non-empty and header providers non-nil.
//
// Returns nil when the table is valid, or *RouteConfigError for the first invalid rule.
//
// Called from service.NewRouteMatcher and cmd/gateway LoadConfig.
func ValidateRoutes(rules []RouteRule) error {
	for i, r := range rules {
		if r.Prefix == "" {
			return &RouteConfigError{Index: i, Reason: "prefix must be non-empty"}
		}
		if r.Prefix[0] != '/' {
			return &RouteConfigError{Index: i, Reason: "prefix must start with /"}
		}
		if strings.TrimSpace(r.Service) == "" {
			return &RouteConfigError{Index: i, Reason: "service must be non-empty"}
		}
		for _, h := range r.Headers {
			if strings.TrimSpace(h.Name) == "" {
				return &RouteConfigError{Index: i, Reason: "header name must be non-empty"}
			}
			if h.Value == nil {
				return &RouteConfigError{Index: i, Reason: "header " + h.Name + " has no value provider"}
			}
		}
	}
	return nil
}

// RouteConfigError is returned by ValidateRoutes. Index is the 0-based rule index.
type RouteConfigError struct {
	Index  int
	Reason string
}

// Error returns "route[N]: reason".
func (e *RouteConfigError) Error() string {
	return "route[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}
