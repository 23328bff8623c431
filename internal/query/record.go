package query

import (
	"bytes"
	"encoding/json"
)

// Record is one top-level entry of a query result: a child key and its
// decoded value.
type Record struct {
	Key   string
	Value any
}

// RecordSet is an ordered query result. It is either a sequence of
// keyed records or, for reads of a leaf value, a single opaque scalar.
// Order is significant: backends that preserve order deliver records
// sorted, and post-processing keeps them that way, so serialization
// must not shuffle them. JSON object key order follows record order.
type RecordSet struct {
	Records []Record
	Scalar  any
	IsLeaf  bool
}

// NewRecordSet wraps keyed records in result order.
func NewRecordSet(records []Record) RecordSet {
	return RecordSet{Records: records}
}

// NewLeaf wraps a primitive result. Filter, sort, and limit are no-ops
// on leaves because they have no addressable child fields.
func NewLeaf(v any) RecordSet {
	return RecordSet{Scalar: v, IsLeaf: true}
}

// Len returns the number of top-level entries: 1 for a non-nil leaf,
// 0 for a nil one.
func (rs RecordSet) Len() int {
	if rs.IsLeaf {
		if rs.Scalar == nil {
			return 0
		}
		return 1
	}
	return len(rs.Records)
}

// MarshalJSON renders a leaf as its raw value and records as a JSON
// object whose keys appear in record order.
func (rs RecordSet) MarshalJSON() ([]byte, error) {
	if rs.IsLeaf {
		return json.Marshal(rs.Scalar)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rec := range rs.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rec.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(rec.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
