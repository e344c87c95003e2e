package scenario

import (
	"context"
	"fmt"
	"sort"
)

// Runner executes one scenario against a deployed mesh. It builds whatever clients it needs from cfg.
type Runner func(ctx context.Context, cfg *Config) error

var runners = map[string]Runner{}

// Register makes a scenario selectable by name; scenario files call it from init. A duplicate name is a
// programming error and panics.
func Register(name string, fn Runner) {
	if _, dup := runners[name]; dup {
		panic(fmt.Sprintf("scenario.registry.go: scenario %q registered twice", name))
	}
	runners[name] = fn
}

// Names lists registered scenarios, sorted.
func Names() []string {
	names := make([]string, 0, len(runners))
	for name := range runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named scenario, or returns *UnknownScenarioError.
func Run(ctx context.Context, name string, cfg *Config) error {
	fn, ok := runners[name]
	if !ok {
		return &UnknownScenarioError{Name: name}
	}
	return fn(ctx, cfg)
}
