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
	"fmt"

	"github.com/dolthub/flowsql/arroyoschema"
	"github.com/dolthub/flowsql/dag"
)

// Graph is the planner's output: a directed acyclic graph of operator Nodes
// connected by planedge.Metadata-carrying edges.
type Graph = dag.Graph[Node]

// NewGraph returns an empty output graph.
func NewGraph() *Graph {
	return dag.New[Node]()
}

// Program is the logical program handed to the runtime: the operator graph,
// a map from edge id to the ArroyoSchema flowing across it, and the list of
// connection ids the catalog bound while planning.
type Program struct {
	Graph         *Graph
	Schemas       map[dag.EdgeID]*arroyoschema.ArroyoSchema
	ConnectionIDs []string
}

// NewProgram wraps graph into a Program, deriving Schemas from each edge's
// own metadata (every edge of both the input and output graph already
// carries its ArroyoSchema; Schemas is the flattened index the wire form and
// runtime consume directly).
func NewProgram(graph *Graph, connectionIDs []string) *Program {
	schemas := make(map[dag.EdgeID]*arroyoschema.ArroyoSchema, len(graph.Edges()))
	for i, e := range graph.Edges() {
		schemas[dag.EdgeID(i)] = e.Metadata.Schema
	}
	return &Program{Graph: graph, Schemas: schemas, ConnectionIDs: connectionIDs}
}

// OperatorIDs returns every operator id in the program, in node insertion
// order.
func (p *Program) OperatorIDs() []string {
	nodes := p.Graph.Nodes()
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.OperatorID
	}
	return ids
}

// ValidateOperatorIDsUnique checks property P5: operator ids are pairwise
// distinct within the program.
func (p *Program) ValidateOperatorIDsUnique() error {
	seen := make(map[string]bool, len(p.Graph.Nodes()))
	for _, n := range p.Graph.Nodes() {
		if seen[n.OperatorID] {
			return fmt.Errorf("operator: duplicate operator id %q", n.OperatorID)
		}
		seen[n.OperatorID] = true
	}
	return nil
}
