package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"reactivemesh/helpers"
	"reactivemesh/scenario"
	"reactivemesh/scenario/compose"
)

const (
	defaultGateway  = "http://localhost:8080"
	defaultRegistry = "http://localhost:8761"
	defaultName     = "Josh"
)

func main() {
	list := flag.Bool("list", false, "list available scenarios and exit")
	scenarioName := flag.String("scenario", "", "scenario to run (or pass as positional arg)")
	gateway := flag.String("gateway", "", "gateway base URL (default: GATEWAY_URL env or http://localhost:8080)")
	registry := flag.String("registry", "", "registry base URL (default: REGISTRY_URL env or http://localhost:8761)")
	name := flag.String("name", "", "account name for stream scenarios (default: SCENARIO_NAME env or Josh)")
	composeFile := flag.String("compose-file", "", "path to docker-compose.yml (default: COMPOSE_FILE env; unset runs against an existing deployment)")
	setup := flag.Bool("setup", false, "recreate the docker-compose deployment before running (needs --compose-file)")
	flag.Parse()

	if *gateway == "" {
		*gateway = helpers.EnvString("GATEWAY_URL", defaultGateway)
	}
	if *registry == "" {
		*registry = helpers.EnvString("REGISTRY_URL", defaultRegistry)
	}
	if *name == "" {
		*name = helpers.EnvString("SCENARIO_NAME", defaultName)
	}
	if *composeFile == "" {
		*composeFile = helpers.EnvString("COMPOSE_FILE", "")
	}

	if *list {
		for _, n := range scenario.Names() {
			fmt.Println(n)
		}
		os.Exit(0)
	}

	selected := *scenarioName
	if selected == "" && flag.NArg() > 0 {
		selected = flag.Arg(0)
	}
	if selected == "" {
		fmt.Fprintln(os.Stderr, "usage: scenarios [--list] [--scenario=NAME] [--gateway=URL] [--registry=URL] [--name=NAME] [--compose-file=PATH [--setup]] [scenario_name]")
		fmt.Fprintln(os.Stderr, "  use --list to list scenarios")
		os.Exit(2)
	}

	cfg := &scenario.Config{
		GatewayURL:  *gateway,
		RegistryURL: *registry,
		Name:        *name,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Optional docker-compose control: scenarios that restart services need it
	if *composeFile != "" {
		env, err := compose.New(*composeFile, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if *setup {
			if err := env.Setup(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "error: failed to setup docker-compose environment: %v\n", err)
				os.Exit(1)
			}
		}
		cfg.Services = env
	} else if *setup {
		fmt.Fprintln(os.Stderr, "error: --setup needs --compose-file")
		os.Exit(2)
	}

	err := scenario.Run(ctx, selected, cfg)

	fmt.Println("\n=== Scenario Result ===")
	fmt.Printf("Scenario: %s\n", selected)
	if err != nil {
		fmt.Printf("Status: FAILED\n")
		fmt.Printf("Error: %v\n", err)
		fmt.Println("=====================")
		var unknown *scenario.UnknownScenarioError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "\navailable scenarios: %s\n", strings.Join(scenario.Names(), ", "))
			os.Exit(2)
		}
		os.Exit(1)
	}
	fmt.Printf("Status: PASSED\n")
	fmt.Println("=====================")
}
