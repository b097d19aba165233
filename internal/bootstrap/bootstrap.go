// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bootstrap brings a database into the ready state for the knowledge
// store: the knowledge collection plus its category and created_at indexes.
//
// A run is linear. Each step runs only after the previous one succeeded:
//
//	select database -> create collection -> create index (category asc)
//	  -> create index (created_at desc) -> done
//
// Any failure aborts the run and no completion message is written. Steps only
// add schema, so a re-run after a failure completes whatever is missing.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/dbinit/internal/mongodb"
	"github.com/pdiddy/dbinit/pkg/types"
)

// CompletionMessage is written to the output writer after a successful run.
const CompletionMessage = "MongoDB initialization complete!"

var (
	// ErrAlreadyExists is returned under PolicyFail when a target exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrIndexConflict is returned when an existing index collides with a
	// declared one but differs in key pattern or options. It is fatal under
	// every policy.
	ErrIndexConflict = errors.New("index conflict")
)

// Catalog is the database view the initializer needs. *mongodb.Catalog
// satisfies it. Create methods return the server error unwrapped.
type Catalog interface {
	Name() string
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, name string) error
	ListIndexes(ctx context.Context, collection string) ([]types.IndexSpec, error)
	CreateIndex(ctx context.Context, collection string, spec types.IndexSpec) (string, error)
}

// Step names a stage of a run.
type Step string

const (
	StepSelectDatabase   Step = "select-database"
	StepCreateCollection Step = "create-collection"
	StepCreateIndex      Step = "create-index"
)

// Outcome is the result of one step.
type Outcome string

const (
	OutcomeSelected Outcome = "selected"
	OutcomeCreated  Outcome = "created"
	OutcomeExists   Outcome = "exists"
	OutcomeFailed   Outcome = "failed"
)

// StepResult records what a step did to its target.
type StepResult struct {
	Step    Step    `json:"step"`
	Target  string  `json:"target"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// Report lists the step results of a run in execution order. A failed run
// ends with an OutcomeFailed entry.
type Report struct {
	Database string       `json:"database"`
	Steps    []StepResult `json:"steps"`
}

// Created returns the number of steps that changed the database.
func (r Report) Created() int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome == OutcomeCreated {
			n++
		}
	}
	return n
}

// Options configures an Initializer. Zero values select the defaults.
type Options struct {
	// Schema is the collection to ensure (default types.DefaultSchema()).
	Schema *types.CollectionSpec

	// OnExisting is the existing-target policy (default tolerate).
	OnExisting types.ExistingPolicy

	// OperationTimeout bounds each database call. Zero means no extra bound.
	OperationTimeout time.Duration

	// Progress receives one line per step. Nil discards.
	Progress io.Writer

	// Out receives the completion message. Nil discards.
	Out io.Writer
}

// Initializer runs the bootstrap against one database.
type Initializer struct {
	catalog  Catalog
	schema   types.CollectionSpec
	policy   types.ExistingPolicy
	timeout  time.Duration
	progress io.Writer
	out      io.Writer
}

// New returns an Initializer over the selected database.
func New(catalog Catalog, opts Options) *Initializer {
	schema := types.DefaultSchema()
	if opts.Schema != nil {
		schema = *opts.Schema
	}
	policy := opts.OnExisting
	if policy == "" {
		policy = types.PolicyTolerate
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Initializer{
		catalog:  catalog,
		schema:   schema,
		policy:   policy,
		timeout:  opts.OperationTimeout,
		progress: progress,
		out:      out,
	}
}

// Run executes the bootstrap steps in order and writes CompletionMessage on
// success. On failure the returned report ends with the failed step.
func (in *Initializer) Run(ctx context.Context) (Report, error) {
	report := Report{Database: in.catalog.Name()}

	in.record(&report, StepResult{Step: StepSelectDatabase, Target: report.Database, Outcome: OutcomeSelected})

	res, err := in.ensureCollection(ctx)
	in.record(&report, res)
	if err != nil {
		return report, err
	}

	for _, spec := range in.schema.Indexes {
		res, err := in.ensureIndex(ctx, spec)
		in.record(&report, res)
		if err != nil {
			return report, err
		}
	}

	fmt.Fprintln(in.out, CompletionMessage)
	return report, nil
}

func (in *Initializer) record(r *Report, res StepResult) {
	r.Steps = append(r.Steps, res)
	line := fmt.Sprintf("%-8s %-17s %s", res.Outcome, res.Step, res.Target)
	if res.Detail != "" {
		line += " (" + res.Detail + ")"
	}
	fmt.Fprintln(in.progress, line)
}

func (in *Initializer) ensureCollection(ctx context.Context) (StepResult, error) {
	name := in.schema.Name
	res := StepResult{Step: StepCreateCollection, Target: name}

	opCtx, cancel := in.opContext(ctx)
	defer cancel()

	exists, err := in.catalog.CollectionExists(opCtx, name)
	if err != nil {
		return failed(res, err), fmt.Errorf("checking collection %s: %w", name, err)
	}
	if !exists {
		err = in.catalog.CreateCollection(opCtx, name)
		switch {
		case err == nil:
			res.Outcome = OutcomeCreated
			return res, nil
		case mongodb.IsNamespaceExists(err):
			// Created concurrently between the check and the create.
		default:
			return failed(res, err), fmt.Errorf("creating collection %s: %w", name, err)
		}
	}

	if in.policy == types.PolicyFail {
		return failed(res, ErrAlreadyExists), fmt.Errorf("collection %s: %w", name, ErrAlreadyExists)
	}
	res.Outcome = OutcomeExists
	return res, nil
}

func (in *Initializer) ensureIndex(ctx context.Context, spec types.IndexSpec) (StepResult, error) {
	coll := in.schema.Name
	name := spec.IndexName()
	res := StepResult{Step: StepCreateIndex, Target: coll + "." + name}

	opCtx, cancel := in.opContext(ctx)
	defer cancel()

	existing, err := in.catalog.ListIndexes(opCtx, coll)
	if err != nil {
		return failed(res, err), fmt.Errorf("listing indexes on %s: %w", coll, err)
	}

	if match, ok := matchIndex(existing, spec); ok {
		if !match.SameKeys(spec) {
			err := fmt.Errorf("index %s on %s has keys %s, want %s: %w",
				name, coll, describeKeys(match.Keys), describeKeys(spec.Keys), ErrIndexConflict)
			return failed(res, err), err
		}
		if !match.SameOptions(spec) {
			err := fmt.Errorf("index %s on %s has options %s, want %s: %w",
				match.Name, coll, match.DescribeOptions(), spec.DescribeOptions(), ErrIndexConflict)
			return failed(res, err), err
		}
		if in.policy == types.PolicyFail {
			return failed(res, ErrAlreadyExists), fmt.Errorf("index %s on %s: %w", match.Name, coll, ErrAlreadyExists)
		}
		res.Outcome = OutcomeExists
		if match.Name != name {
			res.Detail = "as " + match.Name
		}
		return res, nil
	}

	created, err := in.catalog.CreateIndex(opCtx, coll, spec)
	if err != nil {
		if mongodb.IsIndexConflict(err) {
			err = fmt.Errorf("creating index %s on %s: %w: %w", name, coll, ErrIndexConflict, err)
			return failed(res, err), err
		}
		return failed(res, err), fmt.Errorf("creating index %s on %s: %w", name, coll, err)
	}
	res.Outcome = OutcomeCreated
	if created != "" && created != name {
		res.Detail = "as " + created
	}
	return res, nil
}

// matchIndex finds the existing index that spec would collide with: one with
// the same name, or else one with the same key pattern.
func matchIndex(existing []types.IndexSpec, spec types.IndexSpec) (types.IndexSpec, bool) {
	name := spec.IndexName()
	for _, e := range existing {
		if e.Name == name {
			return e, true
		}
	}
	for _, e := range existing {
		if e.SameKeys(spec) {
			return e, true
		}
	}
	return types.IndexSpec{}, false
}

func describeKeys(keys []types.IndexKey) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k.Field, int(k.Order)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func failed(res StepResult, err error) StepResult {
	res.Outcome = OutcomeFailed
	res.Detail = err.Error()
	return res
}

func (in *Initializer) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if in.timeout > 0 {
		return context.WithTimeout(ctx, in.timeout)
	}
	return context.WithCancel(ctx)
}
