package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reactivemesh/domain"
	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort        = "SERVICE_PORT_HTTP"
	envConfigPath      = "CONFIG_PATH"
	envRegistryURL     = "REGISTRY_URL"
	envRegistryTimeout = "REGISTRY_TIMEOUT"
	envHostnameTimeout = "HOSTNAME_TIMEOUT"
)

const (
	defaultHTTPPort        = 8080
	defaultRegistryURL     = "http://localhost:8761"
	defaultRegistryTimeout = 5 * time.Second
	defaultHostnameTimeout = time.Second
)

// headerFromHostname is the only dynamic header source: the canonical name of the gateway host.
const headerFromHostname = "hostname"

// Config holds the gateway configuration loaded by LoadConfig from environment variables and the optional YAML route
// table at CONFIG_PATH. Routes keep table order.
type Config struct {
	HTTPPort        int
	RegistryURL     string
	RegistryTimeout time.Duration
	HostnameTimeout time.Duration
	Routes          []RouteSpec
}

// RouteSpec is one validated route entry; header values are bound to providers by RouteRules.
type RouteSpec struct {
	Prefix  string
	Service string
	Headers []HeaderSpec
}

// HeaderSpec is one response header: a static Value, or FromHostname.
type HeaderSpec struct {
	Name         string
	Value        string
	FromHostname bool
}

// yamlConfig is the root struct for YAML unmarshalling.
type yamlConfig struct {
	Routes []yamlRoute `yaml:"routes"`
}

// yamlRoute is one route entry: path prefix, target service name and response headers.
type yamlRoute struct {
	Prefix  string       `yaml:"prefix"`
	Service string       `yaml:"service"`
	Headers []yamlHeader `yaml:"headers"`
}

// yamlHeader is one response header: name plus either value or from (hostname).
type yamlHeader struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	From  string `yaml:"from"`
}

// DefaultRoutes is the route table used when CONFIG_PATH is not set: /account/ and /profile/ with the Service and
// Gateway headers.
func DefaultRoutes() []RouteSpec {
	route := func(prefix, serviceName string) RouteSpec {
		return RouteSpec{
			Prefix:  prefix,
			Service: serviceName,
			Headers: []HeaderSpec{
				{Name: domain.HeaderService, Value: serviceName},
				{Name: domain.HeaderGateway, FromHostname: true},
			},
		}
	}
	return []RouteSpec{
		route("/account/", domain.AccountServiceName),
		route("/profile/", domain.ProfileServiceName),
	}
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
//
// Returns: (*yamlConfig, nil); (nil, error) on os.ReadFile or yaml.Unmarshal error.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// toRouteSpecs converts and checks the YAML routes. A header needs a name and exactly one of value or
// from: hostname.
func toRouteSpecs(raw []yamlRoute) ([]RouteSpec, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("routes must not be empty")
	}
	routes := make([]RouteSpec, 0, len(raw))
	for i, r := range raw {
		spec := RouteSpec{Prefix: strings.TrimSpace(r.Prefix), Service: strings.TrimSpace(r.Service)}
		for _, h := range r.Headers {
			from := strings.TrimSpace(h.From)
			header := HeaderSpec{Name: strings.TrimSpace(h.Name), Value: h.Value}
			switch {
			case from == headerFromHostname && h.Value == "":
				header.FromHostname = true
			case from == "" && h.Value != "":
			case from != "" && from != headerFromHostname:
				return nil, fmt.Errorf("route[%d]: header %s: from must be %s, got %q", i, header.Name, headerFromHostname, from)
			default:
				return nil, fmt.Errorf("route[%d]: header %s: exactly one of value or from is required", i, header.Name)
			}
			spec.Headers = append(spec.Headers, header)
		}
		routes = append(routes, spec)
	}
	return routes, nil
}

// RouteRules binds specs to header providers: static values, and hostname for FromHostname headers.
//
// Called from main and LoadConfig (validation with an unavailable hostname).
func RouteRules(specs []RouteSpec, hostname interfaces.HostnameProvider) []domain.RouteRule {
	rules := make([]domain.RouteRule, 0, len(specs))
	for _, s := range specs {
		rule := domain.RouteRule{Prefix: s.Prefix, Service: s.Service}
		for _, h := range s.Headers {
			if h.FromHostname {
				rule.Headers = append(rule.Headers, domain.HeaderRule{Name: h.Name, Value: hostname.Hostname})
				continue
			}
			rule.Headers = append(rule.Headers, domain.StaticHeader(h.Name, h.Value))
		}
		rules = append(rules, rule)
	}
	return rules
}

// noHostname is the HostnameProvider used to validate the route table before the real provider exists.
type noHostname struct{}

func (noHostname) Hostname() (string, bool) { return "", false }

// LoadConfig builds the gateway config from environment variables and, when CONFIG_PATH is set, the YAML route table
// (relative paths are made absolute). Without CONFIG_PATH DefaultRoutes is used. The table is checked with
// domain.ValidateRoutes.
//
// Returns: (*Config, nil); (nil, error) on an invalid port or duration, YAML load/parse error or invalid route table.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := helpers.EnvPort(envHTTPPort, defaultHTTPPort)
	if err != nil {
		return nil, err
	}
	registryTimeout, err := helpers.EnvDuration(envRegistryTimeout, defaultRegistryTimeout)
	if err != nil {
		return nil, err
	}
	hostnameTimeout, err := helpers.EnvDuration(envHostnameTimeout, defaultHostnameTimeout)
	if err != nil {
		return nil, err
	}

	routes := DefaultRoutes()
	if configPath := helpers.EnvString(envConfigPath, ""); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, absErr := filepath.Abs(configPath)
			if absErr != nil {
				return nil, absErr
			}
			configPath = abs
		}
		raw, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		if routes, err = toRouteSpecs(raw.Routes); err != nil {
			return nil, fmt.Errorf("config %s: %w", configPath, err)
		}
	}
	if err := domain.ValidateRoutes(RouteRules(routes, noHostname{})); err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort:        httpPort,
		RegistryURL:     helpers.EnvString(envRegistryURL, defaultRegistryURL),
		RegistryTimeout: registryTimeout,
		HostnameTimeout: hostnameTimeout,
		Routes:          routes,
	}, nil
}
