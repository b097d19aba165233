// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container starts and removes throwaway database containers with
// docker or podman, for local runs and integration tests.
package container

import (
	"fmt"
	"os/exec"
	"sort"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Spec describes a detached container.
type Spec struct {
	// Name is the container name; an existing container of that name is replaced.
	Name string

	// Image is the image reference (e.g. "mongo:7").
	Image string

	// Ports maps host ports to container ports.
	Ports map[int]int

	// Env holds environment variables passed to the container.
	Env map[string]string
}

// Runtime provides the container operations the tooling needs.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// Start replaces any container named spec.Name and runs spec detached.
	Start(spec Spec) error

	// Remove force-removes the named container. A missing container is not an error.
	Remove(name string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// runtime implements Runtime for a container binary. Docker and Podman
// accept the same run and rm flags; they differ only in binary name.
type runtime struct {
	bin  string
	exec executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) Start(spec Spec) error {
	if err := r.Remove(spec.Name); err != nil {
		return err
	}
	if err := r.exec.RunSilent(r.bin, runArgs(spec)...); err != nil {
		return fmt.Errorf("starting %s container %s (%s): %w", r.bin, spec.Name, spec.Image, err)
	}
	return nil
}

func (r *runtime) Remove(name string) error {
	if r.exec.RunSilent(r.bin, "container", "inspect", name) != nil {
		return nil
	}
	if err := r.exec.RunSilent(r.bin, "rm", "-f", name); err != nil {
		return fmt.Errorf("removing %s container %s: %w", r.bin, name, err)
	}
	return nil
}

// runArgs builds the run command line with ports and env in sorted order so
// it is stable across calls.
func runArgs(spec Spec) []string {
	args := []string{"run", "-d", "--name", spec.Name}

	hostPorts := make([]int, 0, len(spec.Ports))
	for h := range spec.Ports {
		hostPorts = append(hostPorts, h)
	}
	sort.Ints(hostPorts)
	for _, h := range hostPorts {
		args = append(args, "-p", fmt.Sprintf("%d:%d", h, spec.Ports[h]))
	}

	keys := make([]string, 0, len(spec.Env))
	for k := range spec.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", k+"="+spec.Env[k])
	}

	return append(args, spec.Image)
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	for _, bin := range []string{binDocker, binPodman} {
		rt := &runtime{bin: bin, exec: exec}
		if rt.Available() {
			return rt, nil
		}
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
