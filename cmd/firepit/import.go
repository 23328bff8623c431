package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firepit-dev/firepit/internal/transfer"
)

var (
	importBackend string
	importRate    float64
	importDryRun  bool
)

func init() {
	importCmd.Flags().StringVar(&importBackend, "backend", backendFirestore, "Backend to import into (firestore or rtdb)")
	importCmd.Flags().Float64Var(&importRate, "rate", 0, "Maximum writes per second (0 = uncapped)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <path> <file>",
	Short: "Import records from an export file",
	Long: `Import records under a collection or tree path. The file may be
a firepit export envelope or a bare JSON object of key to value.

Examples:
  firepit import users users.json
  firepit import users users.json --rate 50
  firepit import settings settings.json --backend rtdb --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path, file := args[0], args[1]

	records, err := transfer.ReadRecords(file)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if importDryRun {
		if humanOutput {
			fmt.Printf("would import %d records into %s:\n", len(records), path)
			for _, rec := range records {
				fmt.Printf("  %s\n", rec.Key)
			}
		} else {
			outputJSON(StatusResponse{Status: "dry-run", Path: path, Records: len(records)})
		}
		return nil
	}

	ctx := cmd.Context()
	w := openWriter(ctx, loadConfig(), importBackend)

	written, err := transfer.Import(ctx, w, path, records, importRate)
	if err != nil {
		exitWithError(ExitBackendErr, "after %d records: %v", written, err)
	}

	if humanOutput {
		fmt.Printf("imported %d records into %s\n", written, path)
	} else {
		outputJSON(StatusResponse{Status: "imported", Path: path, Records: written})
	}
	return nil
}
