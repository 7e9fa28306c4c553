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

package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/flowsql/planedge"
)

func TestTopologicalOrderLinear(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	g.AddEdge(a, b, planedge.Metadata{})
	g.AddEdge(b, c, planedge.Metadata{})

	order, err := g.Topological()
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a, b, c}, order)
}

func TestTopologicalOrderDeterministicAcrossTies(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	sink := g.AddNode("sink")
	g.AddEdge(a, sink, planedge.Metadata{})
	g.AddEdge(b, sink, planedge.Metadata{})

	order, err := g.Topological()
	require.NoError(t, err)
	// a and b are both roots; smallest NodeID first keeps ordering stable.
	assert.Equal(t, []NodeID{a, b, sink}, order)
}

func TestTopologicalDetectsCycle(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	g.AddEdge(a, b, planedge.Metadata{})
	g.AddEdge(b, a, planedge.Metadata{})

	_, err := g.Topological()
	require.Error(t, err)
}

func TestEdgesDirected(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	e1 := g.AddEdge(a, c, planedge.Metadata{Kind: planedge.Forward})
	e2 := g.AddEdge(b, c, planedge.Metadata{Kind: planedge.Shuffle})

	incoming := g.EdgesDirected(c, Incoming)
	assert.Equal(t, []EdgeID{e1, e2}, incoming)

	outgoing := g.EdgesDirected(a, Outgoing)
	assert.Equal(t, []EdgeID{e1}, outgoing)
}

func TestEdgeIDTextRoundTrip(t *testing.T) {
	id := EdgeID(42)
	text, err := id.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "edge_42", string(text))

	var decoded EdgeID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, id, decoded)
}
