// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dbinit CLI, which bootstraps the
// chatbot's knowledge database: the knowledge collection and its indexes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pdiddy/dbinit/internal/config"
	"github.com/pdiddy/dbinit/internal/secrets"
	"github.com/pdiddy/dbinit/internal/ui"
	"github.com/pdiddy/dbinit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// settings holds flag, environment, and file configuration.
var settings = config.New()

// loadedSecrets holds credentials loaded from secrets directories at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the dbinit CLI.
var rootCmd = &cobra.Command{
	Use:   "dbinit",
	Short: "Bootstrap the knowledge database for the chatbot",
	Long: `dbinit prepares a MongoDB database for the chatbot's knowledge store.
It selects the database named by MONGO_INITDB_DATABASE (default mental_chatbot),
creates the knowledge collection, and creates an ascending index on category
and a descending index on created_at.

Run it once when the database container is first initialized. Re-running it
against an initialized database is a no-op unless --on-existing=fail is set.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		noColor, _ := cmd.Flags().GetBool("no-color")
		ui.InitColors(noColor)

		s, err := secrets.Load(os.Stderr, secrets.DefaultDirs...)
		if err != nil {
			return err
		}
		if uri, ok, err := secrets.FromFileEnv(config.EnvURI); err != nil {
			return err
		} else if ok && uri != "" {
			s[config.SecretURI] = uri
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		return config.BindFlags(settings, cmd.Flags())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dbinit.yaml or ~/.config/dbinit/config.yaml)")
	rootCmd.PersistentFlags().String("database", "", "target database (default: $"+config.EnvDatabase+" or "+types.DefaultDatabaseName+")")
	rootCmd.PersistentFlags().String("uri", "", "MongoDB connection string (default: $"+config.EnvURI+" or "+types.DefaultURI+")")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	used, err := config.ReadFile(settings, cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// resolveConfig returns the configuration for this invocation.
func resolveConfig() (types.Config, error) {
	return config.Load(settings, loadedSecrets)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
