package query

import (
	"errors"
	"testing"
)

func TestParseWhere(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
		op    Operator
		value any
	}{
		{"equality", "name,==,alice", "name", OpEqual, "alice"},
		{"numeric value", "age,>=,18", "age", OpGreaterEq, float64(18)},
		{"boolean value", "active,==,true", "active", OpEqual, true},
		{"null value", "deleted,==,null", "deleted", OpEqual, nil},
		{"nested field", "profile/city,==,Oslo", "profile/city", OpEqual, "Oslo"},
		{"array contains", "tags,array-contains,go", "tags", OpArrayContains, "go"},
		{"strict less", "price,<,100", "price", OpLess, float64(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWhere(tt.raw)
			if err != nil {
				t.Fatalf("ParseWhere(%q) error: %v", tt.raw, err)
			}
			if w.Field != tt.field {
				t.Errorf("Field = %q, want %q", w.Field, tt.field)
			}
			if w.Operator != tt.op {
				t.Errorf("Operator = %s, want %s", w.Operator, tt.op)
			}
			if w.Value != tt.value {
				t.Errorf("Value = %v (%T), want %v (%T)", w.Value, w.Value, tt.value, tt.value)
			}
		})
	}
}

func TestParseWhereErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"two segments", "age,>=", ErrMalformedClause},
		{"one segment", "age", ErrMalformedClause},
		{"empty", "", ErrMalformedClause},
		{"empty field", ",==,1", ErrMalformedClause},
		{"unknown operator", "age,~=,5", ErrMalformedClause},
		{"comma in value", "city,==,Oslo, Norway", ErrMalformedClause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWhere(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseWhere(%q) error = %v, want %v", tt.raw, err, tt.want)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
		dir   Direction
	}{
		{"field only defaults ascending", "age", "age", Asc},
		{"explicit asc", "age,asc", "age", Asc},
		{"explicit desc", "age,desc", "age", Desc},
		{"case insensitive", "age,DESC", "age", Desc},
		{"trailing comma defaults ascending", "age,", "age", Asc},
		{"nested field", "profile/age,desc", "profile/age", Desc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ParseOrder(tt.raw)
			if err != nil {
				t.Fatalf("ParseOrder(%q) error: %v", tt.raw, err)
			}
			if o.Field != tt.field || o.Direction != tt.dir {
				t.Errorf("ParseOrder(%q) = {%q %s}, want {%q %s}",
					tt.raw, o.Field, o.Direction, tt.field, tt.dir)
			}
		})
	}
}

func TestParseOrderErrors(t *testing.T) {
	if _, err := ParseOrder("age,sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("direction error = %v, want ErrInvalidDirection", err)
	}
	if _, err := ParseOrder(""); !errors.Is(err, ErrMalformedClause) {
		t.Errorf("empty order error = %v, want ErrMalformedClause", err)
	}
}

func TestParseLimit(t *testing.T) {
	if n, err := ParseLimit("10"); err != nil || n != 10 {
		t.Errorf("ParseLimit(10) = %d, %v", n, err)
	}

	for _, raw := range []string{"0", "-3", "ten", "3.5", ""} {
		if _, err := ParseLimit(raw); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("ParseLimit(%q) error = %v, want ErrInvalidLimit", raw, err)
		}
	}
}

func TestParseDescriptor(t *testing.T) {
	d, err := ParseDescriptor("age,>=,18", "age,desc", "5")
	if err != nil {
		t.Fatalf("ParseDescriptor error: %v", err)
	}
	if d.Where == nil || d.Order == nil || d.Limit != 5 {
		t.Fatalf("descriptor = %+v, want all three clauses set", d)
	}

	empty, err := ParseDescriptor("", "", "")
	if err != nil {
		t.Fatalf("empty descriptor error: %v", err)
	}
	if empty.Where != nil || empty.Order != nil || empty.Limit != 0 {
		t.Errorf("empty descriptor = %+v, want zero value", empty)
	}
}

func TestClauseEcho(t *testing.T) {
	w, err := ParseWhere("age,>=,18")
	if err != nil {
		t.Fatal(err)
	}
	if got := w.String(); got != "age,>=,18" {
		t.Errorf("WhereClause.String() = %q, want %q", got, "age,>=,18")
	}

	o, err := ParseOrder("age")
	if err != nil {
		t.Fatal(err)
	}
	if got := o.String(); got != "age,asc" {
		t.Errorf("OrderSpec.String() = %q, want %q", got, "age,asc")
	}
}
