// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dbinit/internal/bootstrap"
	"github.com/pdiddy/dbinit/internal/mongodb"
	"github.com/pdiddy/dbinit/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the knowledge collection and its indexes",
	Long: `Init connects to MongoDB, selects the target database, creates the
knowledge collection, then an ascending index on category and a descending
index on created_at. Each step runs only if the previous one succeeded.

With --on-existing=tolerate (the default) targets that already exist with the
same definition count as success, so re-runs are safe. With --on-existing=fail
any existing target aborts the run. An existing index that differs from the
declared one in key pattern or options always aborts.

On success the line "` + bootstrap.CompletionMessage + `" is printed to stdout.
Step progress goes to stderr.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer disconnect(client)

	in := bootstrap.New(client.Database(cfg.DatabaseName), bootstrap.Options{
		OnExisting:       cfg.OnExisting,
		OperationTimeout: cfg.OperationTimeout,
		Progress:         os.Stderr,
		Out:              os.Stdout,
	})
	if _, err := in.Run(ctx); err != nil {
		return fmt.Errorf("initializing %s: %w", cfg.DatabaseName, err)
	}
	return nil
}

// --- shared helpers ---

func connect(ctx context.Context, cfg types.Config) (*mongodb.Client, error) {
	return mongodb.Connect(ctx, cfg.ConnectionConfig, os.Stderr)
}

// operationContext bounds ctx by d. Zero leaves ctx unbounded, matching
// bootstrap.Options.OperationTimeout.
func operationContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func disconnect(c *mongodb.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Disconnect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: disconnect: %v\n", err)
	}
}

func init() {
	initCmd.Flags().String("on-existing", "", "policy for targets that already exist: tolerate or fail (default tolerate)")

	rootCmd.AddCommand(initCmd)
}
