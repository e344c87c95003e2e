package adapters

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"reactivemesh/helpers"
	"reactivemesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// CNAMEResolver is the part of *net.Resolver used for canonical name lookup.
type CNAMEResolver interface {
	LookupCNAME(ctx context.Context, host string) (string, error)
}

// LocalHostname resolves the canonical name of the local host once and serves the cached result to every forwarded
// response of the gateway.
type LocalHostname struct {
	hostname func() (string, error)
	resolver CNAMEResolver
	timeout  time.Duration
	logger   log.Logger

	once sync.Once
	name string
	ok   bool
}

var _ interfaces.HostnameProvider = (*LocalHostname)(nil)

// NewLocalHostname creates the hostname provider of the Gateway header.
//
// Parameters: hostname — os.Hostname in production; resolver — *net.Resolver (net.DefaultResolver); timeout — bound
// of the canonical name lookup; logger — required.
//
// Called from cmd/gateway main.
func NewLocalHostname(hostname func() (string, error), resolver CNAMEResolver, timeout time.Duration, logger log.Logger) *LocalHostname {
	return &LocalHostname{
		hostname: helpers.NilPanic(hostname, "adapters.hostname.go: hostname func is required"),
		resolver: helpers.NilPanic(resolver, "adapters.hostname.go: resolver is required"),
		timeout:  timeout,
		logger:   log.With(helpers.NilPanic(logger, "adapters.hostname.go: logger is required"), "component", "hostname"),
	}
}

// NewOSHostname is NewLocalHostname with os.Hostname.
func NewOSHostname(resolver CNAMEResolver, timeout time.Duration, logger log.Logger) *LocalHostname {
	return NewLocalHostname(os.Hostname, resolver, timeout, logger)
}

// Hostname returns the canonical name without trailing dot. When the CNAME lookup fails the short host name is used;
// when the host name itself is unavailable ("", false) is returned and the failure is cached as well.
func (h *LocalHostname) Hostname() (string, bool) {
	h.once.Do(h.resolve)
	return h.name, h.ok
}

func (h *LocalHostname) resolve() {
	short, err := h.hostname()
	if err != nil || strings.TrimSpace(short) == "" {
		level.Warn(h.logger).Log("msg", "local hostname unavailable, Gateway header disabled", "err", err)
		return
	}
	h.name, h.ok = short, true

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	cname, err := h.resolver.LookupCNAME(ctx, short)
	if err != nil {
		level.Debug(h.logger).Log("msg", "canonical name lookup failed, using short host name", "host", short, "err", err)
		return
	}
	if cname = strings.TrimSuffix(cname, "."); cname != "" {
		h.name = cname
	}
}
