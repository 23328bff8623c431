package backend

import (
	"context"
	"fmt"
	"sort"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/firepit-dev/firepit/internal/query"
)

// Realtime adapts a Realtime Database connection to query.Backend. The
// tree store filters through a single ordering index per query, so it
// can only execute ==, >= and <= natively, cannot combine a filter and a
// sort on different fields, approximates strict bounds inclusively, and
// does not guarantee delivery order.
type Realtime struct {
	client *db.Client
}

// NewRealtime opens a Realtime Database connection for the given
// database URL. An empty credentials path falls back to
// application-default credentials.
func NewRealtime(ctx context.Context, databaseURL, credentialsFile string) (*Realtime, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("realtime database: database URL is required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to realtime database: %w", err)
	}
	return &Realtime{client: client}, nil
}

// Name implements query.Backend.
func (r *Realtime) Name() string { return "database" }

// Capabilities implements query.Backend.
func (r *Realtime) Capabilities() query.Capability {
	return query.Capability{
		Name:                 "database",
		CrossFieldFilterSort: false,
		PreservesOrder:       false,
		ApproximatesRange:    true,
		NativeOperators: map[query.Operator]bool{
			query.OpEqual:     true,
			query.OpLessEq:    true,
			query.OpGreaterEq: true,
		},
	}
}

// Fetch implements query.Backend. A filtered read orders by the filter
// field's child index and applies the matching bound; a plain read
// fetches the whole subtree. Children of a map read are returned in key
// order purely for determinism — the classifier never trusts this
// backend's ordering.
func (r *Realtime) Fetch(ctx context.Context, path string, plan *query.Plan) (query.RecordSet, error) {
	ref := r.client.NewRef(path)

	if w := plan.NativeWhere; w != nil {
		q := ref.OrderByChild(w.Field)
		switch w.Operator {
		case query.OpEqual:
			q = q.EqualTo(w.Value)
		case query.OpGreaterEq:
			q = q.StartAt(w.Value)
		case query.OpLessEq:
			q = q.EndAt(w.Value)
		default:
			return query.RecordSet{}, fmt.Errorf("operator %s is not natively supported", w.Operator)
		}
		if plan.NativeLimit && plan.Limit > 0 {
			q = q.LimitToFirst(plan.Limit)
		}
		return collectNodes(ctx, q)
	}

	if plan.NativeLimit && plan.Limit > 0 {
		// Limits require an ordering index; key order is the neutral one.
		return collectNodes(ctx, ref.OrderByKey().LimitToFirst(plan.Limit))
	}

	var raw any
	if err := ref.Get(ctx, &raw); err != nil {
		return query.RecordSet{}, err
	}
	children, ok := raw.(map[string]any)
	if !ok {
		return query.NewLeaf(raw), nil
	}
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	records := make([]query.Record, 0, len(keys))
	for _, k := range keys {
		records = append(records, query.Record{Key: k, Value: children[k]})
	}
	return query.NewRecordSet(records), nil
}

// Put implements Writer.
func (r *Realtime) Put(ctx context.Context, path, key string, value any) error {
	return r.client.NewRef(path).Child(key).Set(ctx, value)
}

func collectNodes(ctx context.Context, q *db.Query) (query.RecordSet, error) {
	nodes, err := q.GetOrdered(ctx)
	if err != nil {
		return query.RecordSet{}, err
	}
	records := make([]query.Record, 0, len(nodes))
	for _, node := range nodes {
		var v any
		if err := node.Unmarshal(&v); err != nil {
			return query.RecordSet{}, fmt.Errorf("decoding child %q: %w", node.Key(), err)
		}
		records = append(records, query.Record{Key: node.Key(), Value: v})
	}
	return query.NewRecordSet(records), nil
}
