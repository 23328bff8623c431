package query

import "fmt"

// Capability declares what a backend can execute natively. The classifier
// is written against this struct only; adding a backend means filling in
// a new Capability value, not editing branching code.
type Capability struct {
	// Name identifies the backend in diagnostics and envelopes.
	Name string

	// CrossFieldFilterSort is true when a filter and a sort may target
	// different fields in the same native query.
	CrossFieldFilterSort bool

	// PreservesOrder is true when the backend delivers results in the
	// requested order. When false, any requested order is re-applied
	// client-side even if the backend accepted an order hint.
	PreservesOrder bool

	// NativeOperators is the set of operators the backend executes
	// directly.
	NativeOperators map[Operator]bool

	// ApproximatesRange is true when strict < and > can be approximated
	// with an inclusive startAt/endAt-style bound plus client-side
	// exclusivity filtering.
	ApproximatesRange bool
}

// Plan splits a Descriptor between native execution and client-side
// post-processing. Every clause of the descriptor lands in exactly one
// of the native or post slots.
type Plan struct {
	NativeWhere *WhereClause
	NativeOrder *OrderSpec
	NativeLimit bool

	PostFilter *WhereClause
	PostSort   *OrderSpec
	PostLimit  bool

	// Limit is the requested result count, applied by whichever side the
	// NativeLimit/PostLimit flags select. 0 means unlimited.
	Limit int

	// Notices are non-fatal diagnostics about capability fallbacks, for
	// the caller to surface on stderr.
	Notices []string
}

// Classify decides which parts of a descriptor the backend can execute
// natively and which must be post-processed. It is a pure function of
// its inputs and performs no I/O.
func Classify(d Descriptor, caps Capability) (*Plan, error) {
	plan := &Plan{Limit: d.Limit}

	if d.Where != nil {
		op := d.Where.Operator
		switch {
		case caps.NativeOperators[op]:
			plan.NativeWhere = d.Where
		case op.IsRange() && caps.ApproximatesRange:
			// Decompose the strict inequality: push the nearest inclusive
			// bound native, re-apply the strict comparison client-side to
			// drop the boundary value.
			bound := *d.Where
			if op == OpLess {
				bound.Operator = OpLessEq
			} else {
				bound.Operator = OpGreaterEq
			}
			plan.NativeWhere = &bound
			plan.PostFilter = d.Where
		default:
			return nil, fmt.Errorf("%w: %s has no native or client-side equivalent on %s",
				ErrUnsupportedOperator, op, caps.Name)
		}
	}

	if d.Order != nil {
		switch {
		case !caps.PreservesOrder:
			// The backend cannot be trusted to deliver sorted output even
			// when it accepts an order hint.
			plan.PostSort = d.Order
			if d.Where != nil && d.Where.Field != d.Order.Field && !caps.CrossFieldFilterSort {
				plan.Notices = append(plan.Notices, fmt.Sprintf(
					"%s cannot filter on %q and order by %q in one query; ordering client-side",
					caps.Name, d.Where.Field, d.Order.Field))
			}
		case d.Where != nil && d.Where.Field != d.Order.Field && !caps.CrossFieldFilterSort:
			plan.PostSort = d.Order
			plan.Notices = append(plan.Notices, fmt.Sprintf(
				"%s cannot filter on %q and order by %q in one query; ordering client-side",
				caps.Name, d.Where.Field, d.Order.Field))
		default:
			plan.NativeOrder = d.Order
		}
	}

	if d.Limit > 0 {
		// A native limit before client-side filtering or sorting would
		// truncate the wrong rows.
		if plan.PostFilter == nil && plan.PostSort == nil {
			plan.NativeLimit = true
		} else {
			plan.PostLimit = true
		}
	}

	return plan, nil
}
