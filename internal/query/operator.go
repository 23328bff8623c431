package query

import "fmt"

// Operator is a comparison operator in a where clause. The token strings
// match the document-store backend's native operator names exactly, so
// String() output can be passed straight through to it.
type Operator int

const (
	OpEqual Operator = iota
	OpNotEqual
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpArrayContains
	OpArrayContainsAny
	OpIn
	OpNotIn
)

var operatorTokens = map[Operator]string{
	OpEqual:            "==",
	OpNotEqual:         "!=",
	OpLess:             "<",
	OpLessEq:           "<=",
	OpGreater:          ">",
	OpGreaterEq:        ">=",
	OpArrayContains:    "array-contains",
	OpArrayContainsAny: "array-contains-any",
	OpIn:               "in",
	OpNotIn:            "not-in",
}

// ParseOperator maps an operator token to its Operator value.
func ParseOperator(token string) (Operator, error) {
	for op, t := range operatorTokens {
		if t == token {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrMalformedClause, token)
}

// String returns the operator token as written on the command line.
func (op Operator) String() string {
	if t, ok := operatorTokens[op]; ok {
		return t
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// IsRange reports whether the operator is a strict inequality, the kind
// some backends can only approximate with an inclusive bound.
func (op Operator) IsRange() bool {
	return op == OpLess || op == OpGreater
}
