package main

import (
	"github.com/spf13/cobra"

	"github.com/firepit-dev/firepit/internal/query"
	"github.com/firepit-dev/firepit/internal/transfer"
)

var (
	queryBackend string
	queryWhere   string
	queryOrderBy string
	queryLimit   string
	queryOut     string
)

func init() {
	queryCmd.Flags().StringVar(&queryBackend, "backend", backendFirestore, "Backend to query (firestore or rtdb)")
	queryCmd.Flags().StringVar(&queryWhere, "where", "", "Filter clause: field,operator,value")
	queryCmd.Flags().StringVar(&queryOrderBy, "order-by", "", "Order clause: field[,asc|desc]")
	queryCmd.Flags().StringVar(&queryLimit, "limit", "", "Maximum results to return")
	queryCmd.Flags().StringVar(&queryOut, "out", "", "Write the result envelope to a file instead of stdout")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <path>",
	Short: "Query a collection or tree path",
	Long: `Query a Firestore collection or a Realtime Database path.

Filters use the clause grammar "field,operator,value". Nested fields are
addressed with slash-separated paths. Where the selected backend cannot
execute a clause natively, firepit compensates client-side and prints a
notice on stderr.

Examples:
  firepit query users --where "age,>=,18"
  firepit query users --where "age,>=,18" --order-by "age,desc" --limit 10
  firepit query settings/flags --backend rtdb
  firepit query users --backend rtdb --where "profile/city,==,Oslo"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]

	descriptor, err := query.ParseDescriptor(queryWhere, queryOrderBy, queryLimit)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	ctx := cmd.Context()
	b := openBackend(ctx, loadConfig(), queryBackend)

	env, notices, err := query.Run(ctx, b, path, descriptor)
	printNotices(notices)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if queryOut != "" {
		if err := transfer.WriteEnvelope(queryOut, env); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			printEnvelopeHuman(env)
		} else {
			outputJSON(StatusResponse{Status: "written", Path: queryOut, Records: env.Summary.TotalResults})
		}
		return nil
	}

	if humanOutput {
		printEnvelopeHuman(env)
	} else {
		outputJSON(env)
	}
	return nil
}
