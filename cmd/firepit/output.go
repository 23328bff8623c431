package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/firepit-dev/firepit/internal/query"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status  string `json:"status"`
	Path    string `json:"path,omitempty"`
	Records int    `json:"records,omitempty"`
}

// exitCodeFor maps core errors to exit codes: validation failures and
// unsupported operators surface before any backend call, backend
// failures after.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, query.ErrMalformedClause),
		errors.Is(err, query.ErrInvalidDirection),
		errors.Is(err, query.ErrInvalidLimit),
		errors.Is(err, query.ErrUnsupportedOperator):
		return ExitQueryError
	}
	var be *query.BackendError
	if errors.As(err, &be) {
		return ExitBackendErr
	}
	return ExitError
}

// printNotices surfaces non-fatal classifier diagnostics on stderr.
func printNotices(notices []string) {
	for _, n := range notices {
		fmt.Fprintf(os.Stderr, "notice: %s\n", n)
	}
}

// printEnvelopeHuman renders a result envelope for terminals.
func printEnvelopeHuman(env *query.Envelope) {
	fmt.Printf("%s %s (%d results)\n", env.Database, env.Path, env.Summary.TotalResults)
	if env.Query.Where != "" {
		fmt.Printf("  where:    %s\n", env.Query.Where)
	}
	if env.Query.OrderBy != "" {
		fmt.Printf("  order by: %s\n", env.Query.OrderBy)
	}
	if env.Query.Limit > 0 {
		fmt.Printf("  limit:    %d\n", env.Query.Limit)
	}
	fmt.Println()
	if env.Results.IsLeaf {
		data, _ := json.Marshal(env.Results.Scalar)
		fmt.Printf("  %s\n", data)
		return
	}
	for _, rec := range env.Results.Records {
		data, _ := json.Marshal(rec.Value)
		fmt.Printf("  %-24s %s\n", rec.Key, data)
	}
}
