package query

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// maxNumericLen guards numeric coercion against precision loss on long
// digit strings: float64 holds at most 15 significant decimal digits, so
// anything longer stays a string. TODO: switch to a digit count instead
// of raw length so signs and decimal points don't eat into the budget.
const maxNumericLen = 15

// Coerce converts a raw command-line value string into its typed form.
// The order is fixed: boolean literals, then null, then number, then
// string. Every input maps to exactly one output.
func Coerce(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if len(raw) <= maxNumericLen {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
	}
	return raw
}

// kindRank orders value types the way the tree-store backend orders
// children: null, then booleans, then numbers, then strings, then
// everything structured.
func kindRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64, int64, int, int32:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

// asFloat normalizes the numeric types that reach us from the two SDKs
// and from encoding/json.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

// compareValues imposes a total order over scalar values: type rank
// first, then value within the type. Structured values compare equal to
// each other, which keeps sorts stable without inventing an order for
// maps.
func compareValues(a, b any) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 1:
		av, bv := a.(bool), b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case 2:
		av, _ := asFloat(a)
		bv, _ := asFloat(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case 3:
		return strings.Compare(a.(string), b.(string))
	}
	return 0
}

// sameKind reports whether two values are comparable for filtering:
// ordering operators only match values of the same type rank, mirroring
// the backends' typed index behavior.
func sameKind(a, b any) bool {
	return kindRank(a) == kindRank(b)
}

// equalValues compares for the == and != operators. Numbers compare
// numerically across int/float representations; everything else uses
// deep equality.
func equalValues(a, b any) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
