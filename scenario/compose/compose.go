// Package compose drives the docker-compose deployment the scenarios run against.
package compose

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultComposeFile is the path to docker-compose.yml relative to the repository root.
	DefaultComposeFile = "docker-compose.yml"
	// ContainerStartupTimeout is the maximum time to wait for containers to start.
	ContainerStartupTimeout = 90 * time.Second
	// PostStartupDelay leaves time for the first heartbeats to reach the registry.
	PostStartupDelay = 3 * time.Second
	// StatusCheckInterval is the interval between status checks.
	StatusCheckInterval = 2 * time.Second
)

// Runner executes one docker-compose command in dir with output copied to out. Replaced in tests.
type Runner func(ctx context.Context, dir string, out io.Writer, args ...string) ([]byte, error)

// Environment is one docker-compose project: the directory holding the compose file and the command runner.
type Environment struct {
	dir string
	run Runner
	out io.Writer
}

// New resolves composePath and checks the file exists. A nil runner uses the docker-compose binary.
//
// Returns: (*Environment, nil); (nil, error) when the path cannot be resolved or the file is missing.
//
// Called from cmd/scenarios main.
func New(composePath string, runner Runner) (*Environment, error) {
	if composePath == "" {
		composePath = DefaultComposeFile
	}
	absPath, err := filepath.Abs(composePath)
	if err != nil {
		return nil, fmt.Errorf("resolve compose file path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("compose file %s: %w", absPath, err)
	}
	if runner == nil {
		runner = execRunner
	}
	return &Environment{dir: filepath.Dir(absPath), run: runner, out: os.Stderr}, nil
}

// execRunner runs docker-compose; stdout is returned, stderr goes to out.
func execRunner(ctx context.Context, dir string, out io.Writer, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "docker-compose", args...)
	cmd.Dir = dir
	cmd.Stderr = out
	return cmd.Output()
}

// Setup recreates the deployment (down, then up -d), waits until every container runs and then PostStartupDelay.
// A failing down is only reported: nothing may be running yet.
func (e *Environment) Setup(ctx context.Context) error {
	fmt.Fprintf(e.out, "=== Setting up docker-compose environment in %s ===\n", e.dir)
	if _, err := e.run(ctx, e.dir, e.out, "down"); err != nil {
		fmt.Fprintf(e.out, "Warning: docker-compose down failed (this is okay if nothing was running): %v\n", err)
	}
	if _, err := e.run(ctx, e.dir, e.out, "up", "-d", "--build"); err != nil {
		return fmt.Errorf("docker-compose up failed: %w", err)
	}
	if err := e.WaitReady(ctx, ContainerStartupTimeout); err != nil {
		return fmt.Errorf("containers failed to start: %w", err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(PostStartupDelay):
	}
	fmt.Fprintf(e.out, "=== Docker-compose environment ready ===\n\n")
	return nil
}

// StopService stops a compose service by name (e.g. "account").
func (e *Environment) StopService(ctx context.Context, service string) error {
	_, err := e.run(ctx, e.dir, e.out, "stop", service)
	return err
}

// StartService starts a compose service by name.
func (e *Environment) StartService(ctx context.Context, service string) error {
	_, err := e.run(ctx, e.dir, e.out, "start", service)
	return err
}

// WaitReady polls docker-compose ps until every container is running.
//
// Returns: nil; error on timeout, on an exited or restarting container, or when ps fails.
func (e *Environment) WaitReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(StatusCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for containers to start (waited %v)", timeout)
		case <-ticker.C:
		}
		output, err := e.run(ctx, e.dir, e.out, "ps", "--format", "json")
		if err != nil {
			return fmt.Errorf("docker-compose ps failed: %w", err)
		}
		status, err := ParseStatus(output)
		if err != nil {
			return err
		}
		if status.Failed != "" {
			return fmt.Errorf("one or more containers failed to start: %s", status.Failed)
		}
		if status.AllUp {
			return nil
		}
	}
}

// Status summarises docker-compose ps output. Failed lists the names of exited or restarting containers.
type Status struct {
	AllUp  bool
	Failed string
}

// containerInfo is a single container's status from docker-compose ps.
type containerInfo struct {
	Name   string `json:"Name"`
	State  string `json:"State"`
	Status string `json:"Status"`
}

// ParseStatus reads docker-compose ps --format json output (one JSON object per line; unparsable lines are
// skipped). No containers at all means not up.
func ParseStatus(output []byte) (Status, error) {
	status := Status{AllUp: true}
	var failed []string
	count := 0

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var c containerInfo
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			continue
		}
		count++
		state := strings.ToLower(c.State)
		statusValue := strings.ToLower(c.Status)
		if state == "running" {
			continue
		}
		status.AllUp = false
		if state == "exited" || state == "dead" || strings.Contains(statusValue, "exit") || strings.Contains(statusValue, "restarting") {
			failed = append(failed, c.Name)
		}
	}
	if err := scanner.Err(); err != nil {
		return Status{}, fmt.Errorf("parse docker-compose ps output: %w", err)
	}
	if count == 0 {
		status.AllUp = false
	}
	status.Failed = strings.Join(failed, ", ")
	return status, nil
}
