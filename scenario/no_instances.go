package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"reactivemesh/adapters"
	"reactivemesh/service"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const scenarioNoInstances = "no_instances"

func init() {
	Register(scenarioNoInstances, runNoInstances)
}

// runNoInstances looks up a service nobody registered: the registry answers with an empty list, not an error.
func runNoInstances(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := adapters.RegistryHTTP(cfg.RegistryURL, &http.Client{}, 5*time.Second, service.NewMetrics(prometheus.NewRegistry()))
	name := "unknown-service-" + uuid.NewString()
	instances, err := client.Lookup(ctx, name)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", name, err)
	}
	if instances == nil {
		return fmt.Errorf("lookup %s: instances is nil, want empty list", name)
	}
	if len(instances) != 0 {
		return fmt.Errorf("lookup %s: %d instances, want 0", name, len(instances))
	}
	return nil
}
