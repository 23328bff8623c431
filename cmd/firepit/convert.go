package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firepit-dev/firepit/internal/convert"
)

var (
	convertTo  string
	convertOut string
)

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Target format (json or yaml)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Output file (default stdout)")
	convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a configuration file between JSON and YAML",
	Long: `Convert a backend configuration file (security rules, index
definitions) between JSON and YAML. The source format is inferred from
the file extension.

Examples:
  firepit convert rules.json --to yaml
  firepit convert indexes.yaml --to json --out indexes.json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	file := args[0]

	from, err := convert.ParseFormat(strings.TrimPrefix(filepath.Ext(file), "."))
	if err != nil {
		exitWithError(ExitError, "cannot infer source format of %q: %v", file, err)
	}
	to, err := convert.ParseFormat(convertTo)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", file, err)
	}

	out, err := convert.Convert(data, from, to)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if convertOut == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(convertOut, out, 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", convertOut, err)
	}
	if humanOutput {
		fmt.Printf("wrote %s\n", convertOut)
	} else {
		outputJSON(StatusResponse{Status: "converted", Path: convertOut})
	}
	return nil
}
