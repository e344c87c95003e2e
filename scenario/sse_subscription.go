package scenario

import (
	"context"
	"time"
)

const (
	scenarioSSESubscription     = "sse_subscription"
	scenarioProfileSubscription = "profile_subscription"
)

// eventsToRead is the number of greetings each stream scenario waits for.
const eventsToRead = 3

func init() {
	Register(scenarioSSESubscription, runSSESubscription)
	Register(scenarioProfileSubscription, runProfileSubscription)
}

// runSSESubscription subscribes to the account-service stream through the gateway and expects three ordered
// greetings.
func runSSESubscription(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return sseSubscription(ctx, cfg, "/account/sse/", eventsToRead)
}

// runProfileSubscription subscribes to the profile-service stream through the gateway; profile-service bridges the
// account stream over gRPC, so the greetings are the same.
func runProfileSubscription(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return sseSubscription(ctx, cfg, "/profile/sse/", eventsToRead)
}
