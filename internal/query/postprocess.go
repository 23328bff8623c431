package query

import (
	"sort"
	"strings"
)

// PostProcess applies the plan's client-side filter, sort, and limit to
// a raw backend result, in that order. Leaf results pass through
// untouched. The input slice is not modified.
func PostProcess(rs RecordSet, plan *Plan) RecordSet {
	if rs.IsLeaf {
		return rs
	}

	records := rs.Records
	if plan.PostFilter != nil {
		filtered := make([]Record, 0, len(records))
		for _, rec := range records {
			if matchRecord(rec, plan.PostFilter) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if plan.PostSort != nil {
		records = sortRecords(records, plan.PostSort)
	}

	if plan.PostLimit && plan.Limit > 0 && len(records) > plan.Limit {
		records = records[:plan.Limit]
	}

	return NewRecordSet(records)
}

// resolvePath walks a /-separated field path through nested maps. A
// missing intermediate segment yields no value rather than an error.
func resolvePath(value any, fieldPath string) (any, bool) {
	current := value
	for _, segment := range strings.Split(fieldPath, "/") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// matchRecord evaluates a post-filter clause against one record. Records
// with no resolvable value are excluded unless the clause explicitly
// tests for absence (== null).
func matchRecord(rec Record, clause *WhereClause) bool {
	v, ok := resolvePath(rec.Value, clause.Field)
	if !ok {
		return clause.Operator == OpEqual && clause.Value == nil
	}

	switch clause.Operator {
	case OpEqual:
		return equalValues(v, clause.Value)
	case OpNotEqual:
		return !equalValues(v, clause.Value)
	case OpLess, OpLessEq, OpGreater, OpGreaterEq:
		if !sameKind(v, clause.Value) {
			return false
		}
		c := compareValues(v, clause.Value)
		switch clause.Operator {
		case OpLess:
			return c < 0
		case OpLessEq:
			return c <= 0
		case OpGreater:
			return c > 0
		default:
			return c >= 0
		}
	}
	// Membership and array operators never reach post-processing: the
	// classifier either pushes them native or rejects them up front.
	return false
}

// sortRecords stably sorts records by the resolved field value. Records
// whose field is unresolvable sort after all resolvable records
// regardless of direction; equal keys preserve input order.
func sortRecords(records []Record, spec *OrderSpec) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, oki := resolvePath(sorted[i].Value, spec.Field)
		vj, okj := resolvePath(sorted[j].Value, spec.Field)
		if oki != okj {
			return oki // resolvable before unresolvable, in either direction
		}
		if !oki {
			return false
		}
		c := compareValues(vi, vj)
		if spec.Direction == Desc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}
