package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firepit-dev/firepit/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set firepit configuration",
	Long: `Get or set persisted configuration.

Keys:
  project       Firestore project ID
  database-url  Realtime Database URL
  credentials   Service account key file path

Examples:
  firepit config set project my-project
  firepit config set database-url https://my-project-default-rtdb.firebaseio.com
  firepit config get project`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	value, err := cfg.Get(args[0])
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if humanOutput {
		fmt.Println(value)
	} else {
		outputJSON(map[string]string{args[0]: value})
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	home := configHome()
	cfg, err := config.Load(home)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(home); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if humanOutput {
		fmt.Printf("%s = %s\n", args[0], args[1])
	} else {
		outputJSON(StatusResponse{Status: "updated", Path: config.Path(home)})
	}
	return nil
}
