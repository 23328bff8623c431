package query

import "context"

// Backend is one query-capable storage service. Implementations issue
// exactly one read per Fetch call and no writes; the handle is a
// single-owner resource for the duration of one query.
type Backend interface {
	// Name identifies the backend in envelopes and error messages.
	Name() string

	// Capabilities declares what the backend can execute natively.
	Capabilities() Capability

	// Fetch executes the native portion of a plan against the given path
	// and returns the raw, possibly unprocessed result.
	Fetch(ctx context.Context, path string, plan *Plan) (RecordSet, error)
}

// Run executes one query end-to-end: classify the descriptor against
// the backend's capabilities, issue the single native call, post-process,
// and assemble the envelope. Returned notices are non-fatal capability
// diagnostics for the caller to print. There are no retries and no
// partial results: if the native call fails, no envelope is produced.
func Run(ctx context.Context, b Backend, path string, d Descriptor) (*Envelope, []string, error) {
	plan, err := Classify(d, b.Capabilities())
	if err != nil {
		return nil, nil, err
	}

	raw, err := b.Fetch(ctx, path, plan)
	if err != nil {
		return nil, plan.Notices, &BackendError{Backend: b.Name(), Err: err}
	}

	processed := PostProcess(raw, plan)
	return Assemble(b.Name(), path, d, processed), plan.Notices, nil
}
