// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dbinit/pkg/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the collection and index definitions init creates",
	Long: `Schema prints the declared knowledge collection and its indexes as YAML
or JSON. It does not connect to the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return writeSchema(os.Stdout, types.DefaultSchema(), format)
	},
}

func writeSchema(w io.Writer, schema types.CollectionSpec, format string) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(schemaDoc(schema)); err != nil {
			return fmt.Errorf("encoding schema: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(schemaDoc(schema))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// schemaDoc fills in default index names so the output shows what the
// server will report.
func schemaDoc(schema types.CollectionSpec) types.CollectionSpec {
	out := types.CollectionSpec{Name: schema.Name}
	for _, idx := range schema.Indexes {
		idx.Name = idx.IndexName()
		out.Indexes = append(out.Indexes, idx)
	}
	return out
}

func init() {
	schemaCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(schemaCmd)
}
