package query

import (
	"errors"
	"testing"
)

// Capability fixtures mirroring the two real backends.
func docCaps() Capability {
	all := make(map[Operator]bool)
	for op := OpEqual; op <= OpNotIn; op++ {
		all[op] = true
	}
	return Capability{
		Name:                 "doc",
		CrossFieldFilterSort: true,
		PreservesOrder:       true,
		NativeOperators:      all,
	}
}

func treeCaps() Capability {
	return Capability{
		Name:              "tree",
		ApproximatesRange: true,
		NativeOperators: map[Operator]bool{
			OpEqual:     true,
			OpLessEq:    true,
			OpGreaterEq: true,
		},
	}
}

func mustWhere(t *testing.T, raw string) *WhereClause {
	t.Helper()
	w, err := ParseWhere(raw)
	if err != nil {
		t.Fatalf("ParseWhere(%q): %v", raw, err)
	}
	return w
}

func TestClassifyTrivial(t *testing.T) {
	plan, err := Classify(Descriptor{Limit: 7}, treeCaps())
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if !plan.NativeLimit || plan.PostLimit {
		t.Errorf("trivial plan: NativeLimit=%v PostLimit=%v, want native", plan.NativeLimit, plan.PostLimit)
	}
	if plan.NativeWhere != nil || plan.PostFilter != nil || plan.NativeOrder != nil || plan.PostSort != nil {
		t.Errorf("trivial plan has clauses: %+v", plan)
	}
}

func TestClassifySameFieldNative(t *testing.T) {
	d := Descriptor{
		Where: mustWhere(t, "age,>=,18"),
		Order: &OrderSpec{Field: "age", Direction: Desc},
		Limit: 3,
	}
	plan, err := Classify(d, docCaps())
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if plan.NativeWhere == nil || plan.NativeOrder == nil || !plan.NativeLimit {
		t.Errorf("want all clauses native, got %+v", plan)
	}
	if plan.PostFilter != nil || plan.PostSort != nil || plan.PostLimit {
		t.Errorf("unexpected post-processing: %+v", plan)
	}
}

// Cross-field fallback: the filter stays native, the order moves to
// post-processing, and a notice is emitted.
func TestClassifyCrossFieldFallback(t *testing.T) {
	d := Descriptor{
		Where: mustWhere(t, "age,==,30"),
		Order: &OrderSpec{Field: "name"},
	}
	plan, err := Classify(d, treeCaps())
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if plan.NativeWhere == nil || plan.NativeWhere.Field != "age" {
		t.Errorf("NativeWhere = %+v, want age filter", plan.NativeWhere)
	}
	if plan.NativeOrder != nil {
		t.Error("order pushed native despite cross-field restriction")
	}
	if plan.PostSort == nil || plan.PostSort.Field != "name" {
		t.Errorf("PostSort = %+v, want name sort", plan.PostSort)
	}
	if len(plan.Notices) == 0 {
		t.Error("expected a capability notice")
	}
}

// Order never goes native on a backend with unordered delivery, even
// when filter and order target the same field.
func TestClassifyUnorderedDelivery(t *testing.T) {
	d := Descriptor{
		Where: mustWhere(t, "age,>=,18"),
		Order: &OrderSpec{Field: "age", Direction: Desc},
	}
	plan, err := Classify(d, treeCaps())
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if plan.NativeOrder != nil {
		t.Error("order pushed native on an order-dropping backend")
	}
	if plan.PostSort == nil {
		t.Error("PostSort missing")
	}
}

// Strict inequality approximation: inclusive bound native, strict
// exclusivity client-side.
func TestClassifyStrictBoundApproximation(t *testing.T) {
	d := Descriptor{Where: mustWhere(t, "price,<,100")}
	plan, err := Classify(d, treeCaps())
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if plan.NativeWhere == nil || plan.NativeWhere.Operator != OpLessEq {
		t.Fatalf("NativeWhere = %+v, want inclusive <= bound", plan.NativeWhere)
	}
	if plan.NativeWhere.Value != float64(100) {
		t.Errorf("bound value = %v, want 100", plan.NativeWhere.Value)
	}
	if plan.PostFilter == nil || plan.PostFilter.Operator != OpLess {
		t.Fatalf("PostFilter = %+v, want strict < filter", plan.PostFilter)
	}

	// Same for the lower bound.
	d = Descriptor{Where: mustWhere(t, "price,>,100")}
	plan, err = Classify(d, treeCaps())
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if plan.NativeWhere == nil || plan.NativeWhere.Operator != OpGreaterEq {
		t.Errorf("NativeWhere = %+v, want inclusive >= bound", plan.NativeWhere)
	}
}

func TestClassifyUnsupportedOperator(t *testing.T) {
	for _, raw := range []string{
		"tags,array-contains,go",
		"tags,array-contains-any,go",
		"status,in,open",
		"status,not-in,open",
		"status,!=,open",
	} {
		d := Descriptor{Where: mustWhere(t, raw)}
		if _, err := Classify(d, treeCaps()); !errors.Is(err, ErrUnsupportedOperator) {
			t.Errorf("Classify(%q) error = %v, want ErrUnsupportedOperator", raw, err)
		}
	}
}

// Limit goes native only when nothing remains for post-processing.
func TestClassifyLimitPlacement(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		caps       Capability
		wantNative bool
	}{
		{
			"native filter only",
			Descriptor{Where: mustWhere(t, "age,==,30"), Limit: 2},
			treeCaps(),
			true,
		},
		{
			"post sort defers limit",
			Descriptor{Order: &OrderSpec{Field: "age"}, Limit: 2},
			treeCaps(),
			false,
		},
		{
			"post filter defers limit",
			Descriptor{Where: mustWhere(t, "price,<,100"), Limit: 2},
			treeCaps(),
			false,
		},
		{
			"fully native query",
			Descriptor{Where: mustWhere(t, "age,>=,18"), Order: &OrderSpec{Field: "age"}, Limit: 2},
			docCaps(),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Classify(tt.descriptor, tt.caps)
			if err != nil {
				t.Fatalf("Classify error: %v", err)
			}
			if plan.NativeLimit != tt.wantNative || plan.PostLimit == tt.wantNative {
				t.Errorf("NativeLimit=%v PostLimit=%v, want native=%v",
					plan.NativeLimit, plan.PostLimit, tt.wantNative)
			}
		})
	}
}

// Plan completeness: every descriptor clause lands in exactly one slot,
// never both and never neither, across both capability sets.
func TestClassifyPlanCompleteness(t *testing.T) {
	descriptors := []Descriptor{
		{},
		{Where: mustWhere(t, "age,>=,18")},
		{Order: &OrderSpec{Field: "age"}},
		{Limit: 4},
		{Where: mustWhere(t, "age,>=,18"), Order: &OrderSpec{Field: "age"}, Limit: 4},
		{Where: mustWhere(t, "age,==,30"), Order: &OrderSpec{Field: "name"}, Limit: 4},
		{Where: mustWhere(t, "price,<,100"), Order: &OrderSpec{Field: "price"}, Limit: 4},
	}

	for _, caps := range []Capability{docCaps(), treeCaps()} {
		for _, d := range descriptors {
			plan, err := Classify(d, caps)
			if err != nil {
				t.Fatalf("Classify(%+v, %s): %v", d, caps.Name, err)
			}

			whereSlots := 0
			if plan.NativeWhere != nil {
				whereSlots++
			}
			// A decomposed strict bound occupies both slots but still
			// represents the single original clause; count it once.
			if plan.PostFilter != nil && plan.NativeWhere == nil {
				whereSlots++
			}
			if d.Where != nil && whereSlots != 1 {
				t.Errorf("%s %+v: where clause in %d slots", caps.Name, d, whereSlots)
			}
			if d.Where == nil && (plan.NativeWhere != nil || plan.PostFilter != nil) {
				t.Errorf("%s %+v: invented a filter", caps.Name, d)
			}

			orderSlots := 0
			if plan.NativeOrder != nil {
				orderSlots++
			}
			if plan.PostSort != nil {
				orderSlots++
			}
			if d.Order != nil && orderSlots != 1 {
				t.Errorf("%s %+v: order clause in %d slots, want 1", caps.Name, d, orderSlots)
			}
			if d.Order == nil && orderSlots != 0 {
				t.Errorf("%s %+v: invented an order", caps.Name, d)
			}

			limitSlots := 0
			if plan.NativeLimit {
				limitSlots++
			}
			if plan.PostLimit {
				limitSlots++
			}
			if d.Limit > 0 && limitSlots != 1 {
				t.Errorf("%s %+v: limit in %d slots, want 1", caps.Name, d, limitSlots)
			}
			if d.Limit == 0 && plan.PostLimit {
				t.Errorf("%s %+v: invented a post limit", caps.Name, d)
			}
		}
	}
}
