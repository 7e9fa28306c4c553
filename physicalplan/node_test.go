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

package physicalplan

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeOpaqueNode(t *testing.T) {
	n := &Node{Raw: []byte("opaque physical plan bytes")}
	data, err := n.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, decoded.IsAggregate())
	assert.Equal(t, n.Raw, decoded.Raw)
}

func TestEncodeDecodeAggregateNode(t *testing.T) {
	childSchema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
	}, nil)
	n := &Node{
		Aggregate: &AggregateNode{
			Mode:   Final,
			Input:  &Node{Aggregate: &AggregateNode{Mode: Partial, Schema: childSchema}},
			Schema: childSchema,
		},
	}

	data, err := n.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.True(t, decoded.IsAggregate())
	assert.Equal(t, Final, decoded.Aggregate.Mode)
	require.NotNil(t, decoded.Aggregate.Input)
	assert.True(t, decoded.Aggregate.Input.IsAggregate())
	assert.Equal(t, Partial, decoded.Aggregate.Input.Aggregate.Mode)
	assert.Equal(t, 1, decoded.Aggregate.Schema.NumFields())
	assert.Equal(t, "a", decoded.Aggregate.Schema.Field(0).Name)
}
