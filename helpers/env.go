package helpers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvString returns the trimmed value of env variable name, or def when it is unset or blank.
//
// Called from cmd/* LoadConfig.
func EnvString(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

// EnvPort parses env variable name as a TCP port, or returns def when it is unset.
//
// Returns: (port, nil); (0, error) when the value is not an integer in 1-65535.
//
// Called from cmd/* LoadConfig.
func EnvPort(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	port, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid port (1-65535)", name)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return port, nil
}

// EnvDuration parses env variable name with time.ParseDuration ("30s", "1500ms"), or returns def when it is unset.
//
// Returns: (d, nil); (0, error) when the value does not parse or is not positive.
//
// Called from cmd/* LoadConfig.
func EnvDuration(name string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, v)
	}
	return d, nil
}
