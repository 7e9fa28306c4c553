// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arroyoschema implements ArroyoSchema, the (arrow schema, timestamp
// index, key indices) triple that the planner attaches to every edge of the
// logical operator graph. It is the unit the runtime uses for serialization,
// shuffling, and state keying.
package arroyoschema

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dolthub/flowsql/planerror"
)

// TimestampField is the name every ArroyoSchema's event-time column must bear.
const TimestampField = "_timestamp"

// ArroyoSchema is the triple (arrow schema, timestamp-column index, ordered
// key-column indices) described in the data model. It is immutable once
// constructed.
type ArroyoSchema struct {
	Schema         *arrow.Schema
	TimestampIndex int
	KeyIndices     []int
}

// TimestampType is the arrow type every _timestamp column must carry:
// nanosecond-precision timestamps with no timezone.
func TimestampType() arrow.DataType {
	return &arrow.TimestampType{Unit: arrow.Nanosecond}
}

// New constructs an ArroyoSchema directly from its three parts, validating
// invariants: the timestamp_index must name a column called _timestamp, key
// indices must be unique, in range, and never reference the timestamp column.
func New(schema *arrow.Schema, timestampIndex int, keyIndices []int) (*ArroyoSchema, error) {
	s := &ArroyoSchema{Schema: schema, TimestampIndex: timestampIndex, KeyIndices: keyIndices}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromFields builds an ArroyoSchema from a bare field list, auto-appending a
// _timestamp column of TimestampType if the caller didn't already provide one.
// The resulting schema has no key columns; callers that need keys should use
// FromSchemaKeys once the field list (and its timestamp column) is settled.
func FromFields(fields []arrow.Field) (*ArroyoSchema, error) {
	out := make([]arrow.Field, len(fields))
	copy(out, fields)

	hasTimestamp := false
	for _, f := range out {
		if f.Name == TimestampField {
			hasTimestamp = true
			break
		}
	}
	if !hasTimestamp {
		out = append(out, arrow.Field{Name: TimestampField, Type: TimestampType(), Nullable: false})
	}

	return FromSchemaKeys(arrow.NewSchema(out, nil), nil)
}

// FromSchemaKeys builds an ArroyoSchema from an explicit (schema, key-indices)
// pair, locating the timestamp column by name. It is an error for the schema
// to lack a _timestamp column.
func FromSchemaKeys(schema *arrow.Schema, keyIndices []int) (*ArroyoSchema, error) {
	idx, err := indexOf(schema, TimestampField)
	if err != nil {
		return nil, err
	}
	return New(schema, idx, keyIndices)
}

func indexOf(schema *arrow.Schema, name string) (int, error) {
	for i := 0; i < schema.NumFields(); i++ {
		if schema.Field(i).Name == name {
			return i, nil
		}
	}
	return 0, planerror.ErrSchemaShape.New(fmt.Sprintf("no %s field in schema %s", name, schema.String()))
}

func (s *ArroyoSchema) validate() error {
	if s.TimestampIndex < 0 || s.TimestampIndex >= s.Schema.NumFields() {
		return planerror.ErrSchemaShape.New(fmt.Sprintf("timestamp_index %d out of range for schema with %d fields", s.TimestampIndex, s.Schema.NumFields()))
	}
	if name := s.Schema.Field(s.TimestampIndex).Name; name != TimestampField {
		return planerror.ErrSchemaShape.New(fmt.Sprintf("timestamp_index %d names column %q, not %q", s.TimestampIndex, name, TimestampField))
	}

	seen := make(map[int]bool, len(s.KeyIndices))
	for _, k := range s.KeyIndices {
		if k < 0 || k >= s.Schema.NumFields() {
			return planerror.ErrSchemaShape.New(fmt.Sprintf("key index %d out of range for schema with %d fields", k, s.Schema.NumFields()))
		}
		if k == s.TimestampIndex {
			return planerror.ErrSchemaShape.New("key index may not reference the timestamp column")
		}
		if seen[k] {
			return planerror.ErrSchemaShape.New(fmt.Sprintf("duplicate key index %d", k))
		}
		seen[k] = true
	}
	return nil
}

// SchemaWithoutTimestamp returns a new arrow schema with the timestamp column
// removed, preserving the order of the remaining fields.
func (s *ArroyoSchema) SchemaWithoutTimestamp() *arrow.Schema {
	fields := make([]arrow.Field, 0, s.Schema.NumFields()-1)
	for i := 0; i < s.Schema.NumFields(); i++ {
		if i == s.TimestampIndex {
			continue
		}
		fields = append(fields, s.Schema.Field(i))
	}
	return arrow.NewSchema(fields, nil)
}

// KeyFields returns the arrow fields named by KeyIndices, in KeyIndices order.
func (s *ArroyoSchema) KeyFields() []arrow.Field {
	out := make([]arrow.Field, len(s.KeyIndices))
	for i, k := range s.KeyIndices {
		out[i] = s.Schema.Field(k)
	}
	return out
}

// Equal reports whether two ArroyoSchemas are structurally identical,
// including key order (key order is significant: it determines shuffle
// partitioning).
func (s *ArroyoSchema) Equal(other *ArroyoSchema) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.TimestampIndex != other.TimestampIndex {
		return false
	}
	if len(s.KeyIndices) != len(other.KeyIndices) {
		return false
	}
	for i := range s.KeyIndices {
		if s.KeyIndices[i] != other.KeyIndices[i] {
			return false
		}
	}
	return s.Schema.Equal(other.Schema)
}

// sortedKeyIndices returns a defensive, sorted copy of KeyIndices for
// diagnostics; it must never be used to replace the declared key order, which
// is semantically significant.
func (s *ArroyoSchema) sortedKeyIndices() []int {
	out := append([]int(nil), s.KeyIndices...)
	sort.Ints(out)
	return out
}

// String renders a compact, deterministic summary used in log fields and
// error messages. Key indices are shown sorted for readability even though
// the declared order (KeyIndices) is what planning actually uses.
func (s *ArroyoSchema) String() string {
	return fmt.Sprintf("ArroyoSchema{fields=%d, timestamp_index=%d, key_indices=%v}", s.Schema.NumFields(), s.TimestampIndex, s.sortedKeyIndices())
}
