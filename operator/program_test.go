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

package operator

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/flowsql/arroyoschema"
	"github.com/dolthub/flowsql/dag"
	"github.com/dolthub/flowsql/planedge"
)

func sampleSchema(t *testing.T) *arroyoschema.ArroyoSchema {
	t.Helper()
	schema, err := arroyoschema.FromFields([]arrow.Field{
		{Name: "user_id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "url", Type: arrow.BinaryTypes.String},
	})
	require.NoError(t, err)
	return schema
}

func buildSampleProgram(t *testing.T) *Program {
	t.Helper()
	graph := NewGraph()
	schema := sampleSchema(t)

	src := graph.AddNode(Node{OperatorID: "connector_source_0", Kind: ConnectorSource, Parallelism: 1})
	wm := graph.AddNode(Node{OperatorID: "watermark_1", Kind: Watermark, Parallelism: 1})
	sink := graph.AddNode(Node{OperatorID: "connector_sink_2", Kind: ConnectorSink, Parallelism: 1})

	graph.AddEdge(src, wm, planedge.Metadata{Schema: schema, Kind: planedge.Forward})
	graph.AddEdge(wm, sink, planedge.Metadata{Schema: schema, Kind: planedge.Forward, Projection: []int{0, 1}})

	return NewProgram(graph, []string{"conn-a", "conn-b"})
}

func TestProgramMarshalUnmarshalRoundTrip(t *testing.T) {
	prog := buildSampleProgram(t)

	data, err := prog.Marshal()
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, prog.OperatorIDs(), decoded.OperatorIDs())
	assert.Equal(t, prog.ConnectionIDs, decoded.ConnectionIDs)
	require.Equal(t, len(prog.Graph.Edges()), len(decoded.Graph.Edges()))

	for i, e := range prog.Graph.Edges() {
		de := decoded.Graph.Edge(dag.EdgeID(i))
		assert.Equal(t, e.From, de.From)
		assert.Equal(t, e.To, de.To)
		assert.Equal(t, e.Metadata.Kind, de.Metadata.Kind)
		assert.Equal(t, e.Metadata.Projection, de.Metadata.Projection)
		assert.True(t, e.Metadata.Schema.Equal(de.Metadata.Schema))
	}

	require.Equal(t, len(prog.Schemas), len(decoded.Schemas))
	for id, schema := range prog.Schemas {
		assert.True(t, schema.Equal(decoded.Schemas[id]))
	}
}

func TestValidateOperatorIDsUniqueDetectsDuplicates(t *testing.T) {
	graph := NewGraph()
	graph.AddNode(Node{OperatorID: "dup"})
	graph.AddNode(Node{OperatorID: "dup"})
	prog := NewProgram(graph, nil)

	err := prog.ValidateOperatorIDsUnique()
	assert.Error(t, err)
}

func TestValidateOperatorIDsUniquePassesForDistinctIDs(t *testing.T) {
	prog := buildSampleProgram(t)
	assert.NoError(t, prog.ValidateOperatorIDsUnique())
}
