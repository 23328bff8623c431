package query

import "time"

// Echo is the query section of a result envelope: the clauses as the
// user wrote them. Downstream consumers serialize envelopes verbatim,
// so field names here are part of the output contract.
type Echo struct {
	Where   string `json:"where,omitempty"`
	OrderBy string `json:"orderBy,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Summary carries result counts.
type Summary struct {
	TotalResults int `json:"totalResults"`
}

// Envelope is the uniform result of one query execution. It is built
// once, after post-processing, and never mutated; exactly one consumer
// (console renderer, file writer, or JSON emitter) serializes it.
type Envelope struct {
	Database  string    `json:"database"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Query     Echo      `json:"query"`
	Summary   Summary   `json:"summary"`
	Results   RecordSet `json:"results"`
}

// Assemble builds the result envelope. Apart from the timestamp, the
// same inputs always produce a structurally identical envelope.
func Assemble(database, path string, d Descriptor, results RecordSet) *Envelope {
	env := &Envelope{
		Database:  database,
		Path:      path,
		Timestamp: time.Now().UTC(),
		Summary:   Summary{TotalResults: results.Len()},
		Results:   results,
	}
	if d.Where != nil {
		env.Query.Where = d.Where.String()
	}
	if d.Order != nil {
		env.Query.OrderBy = d.Order.String()
	}
	env.Query.Limit = d.Limit
	return env
}
