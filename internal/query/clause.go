package query

import (
	"fmt"
	"strconv"
	"strings"
)

// WhereClause is a single parsed filter directive. Field may contain
// /-separated segments denoting a nested lookup inside a record.
type WhereClause struct {
	Field    string
	Operator Operator
	Raw      string // value as written on the command line
	Value    any    // coerced form of Raw
}

// String reconstructs the clause in command-line form for echoing.
func (w *WhereClause) String() string {
	return w.Field + "," + w.Operator.String() + "," + w.Raw
}

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// OrderSpec is a single parsed ordering directive.
type OrderSpec struct {
	Field     string
	Direction Direction
}

func (o *OrderSpec) String() string {
	return o.Field + "," + o.Direction.String()
}

// Descriptor is the full parsed query: at most one where clause, one
// order spec, and one limit. A zero Descriptor is a plain read.
type Descriptor struct {
	Where *WhereClause
	Order *OrderSpec
	Limit int // 0 means no limit
}

// ParseWhere parses a "field,operator,value" clause. The grammar has no
// escaping, so fields and values containing literal commas cannot be
// expressed; rather than silently truncating the value we reject any
// clause that does not split into exactly three segments.
func ParseWhere(raw string) (*WhereClause, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want \"field,operator,value\", got %q", ErrMalformedClause, raw)
	}
	field := strings.TrimSpace(parts[0])
	if field == "" {
		return nil, fmt.Errorf("%w: empty field in %q", ErrMalformedClause, raw)
	}
	op, err := ParseOperator(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	value := strings.TrimSpace(parts[2])
	return &WhereClause{
		Field:    field,
		Operator: op,
		Raw:      value,
		Value:    Coerce(value),
	}, nil
}

// ParseOrder parses a "field[,direction]" clause. Direction defaults to
// ascending when omitted; anything other than asc/desc (any case) fails.
func ParseOrder(raw string) (*OrderSpec, error) {
	parts := strings.Split(raw, ",")
	field := strings.TrimSpace(parts[0])
	if field == "" {
		return nil, fmt.Errorf("%w: want \"field[,direction]\", got %q", ErrMalformedClause, raw)
	}
	spec := &OrderSpec{Field: field, Direction: Asc}
	if len(parts) > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "", "asc":
			spec.Direction = Asc
		case "desc":
			spec.Direction = Desc
		default:
			return nil, fmt.Errorf("%w: %q (want asc or desc)", ErrInvalidDirection, parts[1])
		}
	}
	return spec, nil
}

// ParseLimit parses a limit argument. Limits must be positive integers;
// anything else is a validation failure, never a silent default.
func ParseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidLimit, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidLimit, n)
	}
	return n, nil
}

// ParseDescriptor parses the optional --where/--order-by/--limit flag
// values into a Descriptor. Empty strings mean the flag was not given.
func ParseDescriptor(where, order, limit string) (Descriptor, error) {
	var d Descriptor
	if where != "" {
		w, err := ParseWhere(where)
		if err != nil {
			return d, err
		}
		d.Where = w
	}
	if order != "" {
		o, err := ParseOrder(order)
		if err != nil {
			return d, err
		}
		d.Order = o
	}
	if limit != "" {
		n, err := ParseLimit(limit)
		if err != nil {
			return d, err
		}
		d.Limit = n
	}
	return d, nil
}
