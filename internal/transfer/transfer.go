// Package transfer handles export file writing and import file reading,
// the bulk-data half of firepit. Export files carry the same envelope
// shape the query command prints, so exports can be re-imported.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/time/rate"

	"github.com/firepit-dev/firepit/internal/backend"
	"github.com/firepit-dev/firepit/internal/query"
)

// WriteEnvelope serializes a result envelope to a JSON file.
func WriteEnvelope(path string, env *query.Envelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// exportFile is the subset of the envelope import cares about. Bare
// object files (not produced by firepit) decode with an empty Results
// and are retried as a plain map.
type exportFile struct {
	Results map[string]any `json:"results"`
}

// ReadRecords reads an import file: either a firepit export envelope or
// a bare JSON object of key → value. Records are returned in key order
// so repeated imports write in a stable sequence.
func ReadRecords(path string) ([]query.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var entries map[string]any
	var ef exportFile
	if err := json.Unmarshal(data, &ef); err == nil && ef.Results != nil {
		entries = ef.Results
	} else {
		var bare map[string]any
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		entries = bare
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]query.Record, 0, len(keys))
	for _, k := range keys {
		records = append(records, query.Record{Key: k, Value: entries[k]})
	}
	return records, nil
}

// Import writes records under the given path, one Put per record,
// throttled to writesPerSecond (0 means uncapped). The first failed
// write aborts the import; there are no retries.
func Import(ctx context.Context, w backend.Writer, path string, records []query.Record, writesPerSecond float64) (int, error) {
	limit := rate.Inf
	if writesPerSecond > 0 {
		limit = rate.Limit(writesPerSecond)
	}
	limiter := rate.NewLimiter(limit, 1)

	for i, rec := range records {
		if err := limiter.Wait(ctx); err != nil {
			return i, fmt.Errorf("rate limiter: %w", err)
		}
		if err := w.Put(ctx, path, rec.Key, rec.Value); err != nil {
			return i, fmt.Errorf("writing record %q: %w", rec.Key, err)
		}
	}
	return len(records), nil
}
