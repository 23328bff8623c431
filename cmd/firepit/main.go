// Package main provides the firepit CLI entry point.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/firepit-dev/firepit/internal/backend"
	"github.com/firepit-dev/firepit/internal/config"
	"github.com/firepit-dev/firepit/internal/query"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "firepit",
	Short: "Query, export, and import Firebase-hosted data",
	Long: `firepit is a CLI client for Firebase-hosted data.

It queries, exports, and imports documents in Cloud Firestore and the
Realtime Database, translating one filter/order/limit grammar onto both
backends and compensating client-side where a backend falls short. All
commands output JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// configHome returns the directory holding .firepit, honoring
// FIREPIT_HOME for tests and unusual setups.
func configHome() string {
	if home := os.Getenv("FIREPIT_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		exitWithError(ExitConfigError, "resolving home directory: %v", err)
	}
	return home
}

// loadConfig loads persisted configuration plus .env and environment
// overrides.
func loadConfig() *config.Config {
	_ = godotenv.Load()
	cfg, err := config.Load(configHome())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// backendNames are the accepted values of the --backend flag.
const (
	backendFirestore = "firestore"
	backendRealtime  = "rtdb"
)

// openBackend constructs the connection handle for the selected backend.
// The handle is single-use: one command performs at most one query with it.
func openBackend(ctx context.Context, cfg *config.Config, name string) query.Backend {
	switch name {
	case backendFirestore:
		b, err := backend.NewFirestore(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		return b
	case backendRealtime:
		b, err := backend.NewRealtime(ctx, cfg.DatabaseURL, cfg.CredentialsFile)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		return b
	}
	exitWithError(ExitError, "unknown backend %q (want %s or %s)", name, backendFirestore, backendRealtime)
	return nil
}

// openWriter constructs the write-side handle used by import.
func openWriter(ctx context.Context, cfg *config.Config, name string) backend.Writer {
	b := openBackend(ctx, cfg, name)
	w, ok := b.(backend.Writer)
	if !ok {
		exitWithError(ExitError, "backend %q does not support writes", name)
	}
	return w
}
