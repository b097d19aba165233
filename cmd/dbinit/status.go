// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dbinit/internal/bootstrap"
	"github.com/pdiddy/dbinit/internal/ui"
	"github.com/pdiddy/dbinit/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the knowledge collection and its indexes exist",
	Long: `Status inspects the target database without changing it. It reports
whether the knowledge collection exists, the state of each declared index
(present, missing, or conflict), and how many documents lack an indexed field.

Exits non-zero when anything declared is missing or conflicting.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	client, err := connect(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer disconnect(client)

	ctx, cancel := operationContext(cmd.Context(), cfg.OperationTimeout)
	defer cancel()

	st, err := bootstrap.Inspect(ctx, client.Database(cfg.DatabaseName), types.DefaultSchema())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := formatStatusOutput(os.Stdout, st, jsonOutput); err != nil {
		return err
	}
	if !st.Ready() {
		return fmt.Errorf("database %s is not initialized: run dbinit init", st.Database)
	}
	return nil
}

func formatStatusOutput(w io.Writer, st bootstrap.Status, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	collState := "missing"
	if st.CollectionExists {
		collState = "present"
	}

	fmt.Fprintf(w, "%s %s\n", ui.Label("Database:  "), st.Database)
	fmt.Fprintf(w, "%s %s (%s)\n\n", ui.Label("Collection:"), st.Collection, ui.State(collState))

	fmt.Fprintf(w, "%-16s  %-20s  %s\n", "Index", "Keys", "State")
	fmt.Fprintln(w, strings.Repeat("-", 48))
	for _, idx := range st.Indexes {
		state := ui.State(string(idx.State))
		if idx.Actual != "" {
			state += " (as " + idx.Actual + ")"
		}
		fmt.Fprintf(w, "%-16s  %-20s  %s\n", idx.Name, idx.Keys, state)
	}

	if len(st.Missing) > 0 {
		fields := make([]string, 0, len(st.Missing))
		for f := range st.Missing {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		fmt.Fprintln(w)
		for _, f := range fields {
			n := st.Missing[f]
			count := fmt.Sprintf("%d", n)
			if n > 0 {
				count = ui.Warn(count)
			}
			fmt.Fprintf(w, "documents without %s: %s\n", f, count)
		}
	}
	return nil
}

func init() {
	statusCmd.Flags().Bool("json", false, "output status as JSON")

	rootCmd.AddCommand(statusCmd)
}
