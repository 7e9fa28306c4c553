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

package arroyoschema

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFieldsAppendsTimestamp(t *testing.T) {
	s, err := FromFields([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
		{Name: "b", Type: arrow.BinaryTypes.String},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.TimestampIndex)
	assert.Equal(t, TimestampField, s.Schema.Field(s.TimestampIndex).Name)
	assert.Empty(t, s.KeyIndices)
}

func TestFromFieldsKeepsExistingTimestamp(t *testing.T) {
	s, err := FromFields([]arrow.Field{
		{Name: TimestampField, Type: TimestampType()},
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.TimestampIndex)
	assert.Equal(t, 2, s.Schema.NumFields())
}

func TestFromSchemaKeysMissingTimestamp(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
	}, nil)
	_, err := FromSchemaKeys(schema, nil)
	require.Error(t, err)
}

func TestNewRejectsKeyOnTimestampColumn(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
		{Name: TimestampField, Type: TimestampType()},
	}, nil)
	_, err := New(schema, 1, []int{1})
	require.Error(t, err)
}

func TestNewRejectsDuplicateKeyIndices(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
		{Name: TimestampField, Type: TimestampType()},
	}, nil)
	_, err := New(schema, 1, []int{0, 0})
	require.Error(t, err)
}

func TestKeyOrderPreserved(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
		{Name: "b", Type: arrow.PrimitiveTypes.Int64},
		{Name: TimestampField, Type: TimestampType()},
	}, nil)
	s, err := New(schema, 2, []int{1, 0})
	require.NoError(t, err)

	fields := s.KeyFields()
	require.Len(t, fields, 2)
	assert.Equal(t, "b", fields[0].Name)
	assert.Equal(t, "a", fields[1].Name)
}

func TestSchemaWithoutTimestamp(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
		{Name: TimestampField, Type: TimestampType()},
		{Name: "b", Type: arrow.BinaryTypes.String},
	}, nil)
	s, err := New(schema, 1, nil)
	require.NoError(t, err)

	without := s.SchemaWithoutTimestamp()
	require.Equal(t, 2, without.NumFields())
	assert.Equal(t, "a", without.Field(0).Name)
	assert.Equal(t, "b", without.Field(1).Name)
}

func TestWireRoundTrip(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
		{Name: "b", Type: arrow.BinaryTypes.String},
		{Name: TimestampField, Type: TimestampType()},
	}, nil)
	s, err := New(schema, 2, []int{1, 0})
	require.NoError(t, err)

	data, err := s.MarshalJSON()
	require.NoError(t, err)

	var roundTripped ArroyoSchema
	require.NoError(t, roundTripped.UnmarshalJSON(data))

	assert.True(t, s.Equal(&roundTripped), "expected %s, got %s", s, &roundTripped)
}

func TestWireRoundTripEmptyKeys(t *testing.T) {
	s, err := FromFields([]arrow.Field{{Name: "a", Type: arrow.PrimitiveTypes.Float64}})
	require.NoError(t, err)

	w, err := s.MarshalWire()
	require.NoError(t, err)

	decoded, err := UnmarshalWire(w)
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))
}
