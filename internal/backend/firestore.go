// Package backend provides the query.Backend adapters for the two
// Firebase storage services: Cloud Firestore and the Realtime Database.
// Connections are explicit handles constructed from configuration; there
// are no ambient SDK singletons.
package backend

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/firepit-dev/firepit/internal/query"
)

// Writer is the write side of a backend, used by import. One Put per
// top-level record; throttling belongs to the caller.
type Writer interface {
	Name() string
	Put(ctx context.Context, path, key string, value any) error
}

// Firestore adapts a Cloud Firestore connection to query.Backend.
// Firestore executes every clause operator natively, allows filter and
// sort on different fields, and delivers results in the requested order.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore opens a Firestore connection for the given project. An
// empty credentials path falls back to application-default credentials.
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore: project ID is required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to firestore: %w", err)
	}
	return &Firestore{client: client}, nil
}

// Close releases the underlying connection.
func (f *Firestore) Close() error { return f.client.Close() }

// Name implements query.Backend.
func (f *Firestore) Name() string { return "firestore" }

// Capabilities implements query.Backend.
func (f *Firestore) Capabilities() query.Capability {
	return query.Capability{
		Name:                 "firestore",
		CrossFieldFilterSort: true,
		PreservesOrder:       true,
		ApproximatesRange:    false,
		NativeOperators: map[query.Operator]bool{
			query.OpEqual:            true,
			query.OpNotEqual:         true,
			query.OpLess:             true,
			query.OpLessEq:           true,
			query.OpGreater:          true,
			query.OpGreaterEq:        true,
			query.OpArrayContains:    true,
			query.OpArrayContainsAny: true,
			query.OpIn:               true,
			query.OpNotIn:            true,
		},
	}
}

// Fetch implements query.Backend. Collection paths run a query; document
// paths read the single document (clauses are rejected on those, since
// there is nothing to filter).
func (f *Firestore) Fetch(ctx context.Context, path string, plan *query.Plan) (query.RecordSet, error) {
	if isDocumentPath(path) {
		if plan.NativeWhere != nil || plan.NativeOrder != nil || plan.Limit > 0 {
			return query.RecordSet{}, fmt.Errorf("%q is a document path; queries need a collection path", path)
		}
		snap, err := f.client.Doc(path).Get(ctx)
		if err != nil {
			return query.RecordSet{}, err
		}
		return query.NewRecordSet([]query.Record{{Key: snap.Ref.ID, Value: snap.Data()}}), nil
	}

	col := f.client.Collection(path)
	if col == nil {
		return query.RecordSet{}, fmt.Errorf("invalid collection path %q", path)
	}

	q := col.Query
	if w := plan.NativeWhere; w != nil {
		q = q.WherePath(fieldPath(w.Field), w.Operator.String(), firestoreValue(w.Operator, w.Value))
	}
	if o := plan.NativeOrder; o != nil {
		dir := firestore.Asc
		if o.Direction == query.Desc {
			dir = firestore.Desc
		}
		q = q.OrderByPath(fieldPath(o.Field), dir)
	}
	if plan.NativeLimit && plan.Limit > 0 {
		q = q.Limit(plan.Limit)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return query.RecordSet{}, err
	}
	records := make([]query.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, query.Record{Key: doc.Ref.ID, Value: doc.Data()})
	}
	return query.NewRecordSet(records), nil
}

// Put implements Writer. Firestore documents must be objects.
func (f *Firestore) Put(ctx context.Context, path, key string, value any) error {
	fields, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("record %q: firestore documents must be objects, got %T", key, value)
	}
	_, err := f.client.Collection(path).Doc(key).Set(ctx, fields)
	return err
}

// fieldPath converts a /-segmented clause field into a Firestore field
// path, so segment names containing dots survive the translation.
func fieldPath(field string) firestore.FieldPath {
	return firestore.FieldPath(strings.Split(field, "/"))
}

// firestoreValue adapts a coerced scalar to the shape the operator
// expects. The clause grammar cannot express lists, so membership
// operators receive the scalar wrapped in a one-element list.
func firestoreValue(op query.Operator, v any) any {
	switch op {
	case query.OpIn, query.OpNotIn, query.OpArrayContainsAny:
		return []any{v}
	}
	return v
}

// isDocumentPath reports whether a slash path addresses a document
// (even segment count) rather than a collection (odd).
func isDocumentPath(path string) bool {
	segments := 0
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments++
		}
	}
	return segments%2 == 0
}
