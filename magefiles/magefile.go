//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for dbinit developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/dbinit/internal/container"
)

const (
	binDir  = "bin"
	binName = "dbinit"
	cmdPkg  = "./cmd/dbinit"
)

// Local MongoDB container used by the Mongo and Integration targets.
const (
	mongoContainer = "dbinit-mongo"
	mongoImage     = "mongo:7"
	mongoPort      = 27017
	mongoURI       = "mongodb://localhost:27017"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Mongo starts a disposable MongoDB container on localhost:27017,
// replacing any previous one.
func Mongo() error {
	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	spec := container.Spec{
		Name:  mongoContainer,
		Image: mongoImage,
		Ports: map[int]int{mongoPort: mongoPort},
	}
	if err := rt.Start(spec); err != nil {
		return err
	}
	fmt.Printf("Started %s (%s) with %s at %s\n", mongoContainer, mongoImage, rt.Name(), mongoURI)
	return nil
}

// MongoStop removes the container started by Mongo.
func MongoStop() error {
	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	return rt.Remove(mongoContainer)
}

// Integration starts MongoDB and runs the integration tests against it.
// The tests wait for the server through the client's ping retry.
func Integration() error {
	mg.Deps(Mongo)
	env := map[string]string{"MONGODB_URI": mongoURI}
	return sh.RunWithV(env, "go", "test", "-tags", "integration", "-count=1", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
