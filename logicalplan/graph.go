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

package logicalplan

import "github.com/dolthub/flowsql/dag"

// Graph is the rewriter's output contract: an acyclic, single-sink-connected
// graph of Extension nodes whose edges carry planedge.Metadata. The query
// rewriter that produces it is an external collaborator (§4.2); this package
// only defines the shape the planner core consumes.
type Graph = dag.Graph[Extension]

// NewGraph returns an empty rewriter graph, for callers (tests, and any
// in-process rewriter stand-in) building one node at a time.
func NewGraph() *Graph {
	return dag.New[Extension]()
}
