package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"reactivemesh/domain"
)

const scenarioGatewayHeaders = "gateway_headers"

func init() {
	Register(scenarioGatewayHeaders, runGatewayHeaders)
}

// runGatewayHeaders calls GET /account/all through the gateway and checks the forwarded response: status 200, the
// Service header names account-service, the Gateway header is present and the body lists the seeded accounts.
func runGatewayHeaders(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(cfg.GatewayURL, "/")+"/account/all", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET /account/all: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /account/all: status %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(domain.HeaderService); got != domain.AccountServiceName {
		return fmt.Errorf("header %s=%q, want %q", domain.HeaderService, got, domain.AccountServiceName)
	}
	if resp.Header.Get(domain.HeaderGateway) == "" {
		return fmt.Errorf("header %s is missing", domain.HeaderGateway)
	}

	var accounts []domain.Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return fmt.Errorf("decode accounts: %w", err)
	}
	if len(accounts) == 0 {
		return fmt.Errorf("no accounts returned")
	}
	for _, a := range accounts {
		if a.ID == "" || a.Name == "" {
			return fmt.Errorf("account %+v has an empty field", a)
		}
	}
	return nil
}
