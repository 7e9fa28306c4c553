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

// Package dag implements a minimal node-indexed arena for directed acyclic
// graphs with typed node payloads and planedge.Metadata-carrying edges.
// Nodes and edges are addressed by stable integer ids, not pointers, so a
// topological walk is deterministic and doesn't depend on allocator order.
package dag

import (
	"fmt"

	"github.com/dolthub/flowsql/planedge"
)

// NodeID addresses a node within a Graph. Ids are assigned in insertion
// order starting at zero and are never reused.
type NodeID int

// EdgeID addresses an edge within a Graph, assigned in insertion order.
type EdgeID int

// MarshalText renders an EdgeID as a stable string for use as a map key in
// wire-serialized structures (Go's encoding/json requires string-keyed maps).
func (id EdgeID) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("edge_%d", int(id))), nil
}

// UnmarshalText is the inverse of MarshalText.
func (id *EdgeID) UnmarshalText(text []byte) error {
	var n int
	if _, err := fmt.Sscanf(string(text), "edge_%d", &n); err != nil {
		return fmt.Errorf("invalid edge id %q: %w", text, err)
	}
	*id = EdgeID(n)
	return nil
}

// Direction selects which end of an edge to match against a node in
// EdgesDirected.
type Direction int

const (
	// Outgoing matches edges whose From end is the queried node.
	Outgoing Direction = iota
	// Incoming matches edges whose To end is the queried node.
	Incoming
)

// Edge is a (from, to, metadata) record. It never holds a pointer to node
// payloads, only their ids.
type Edge struct {
	From, To NodeID
	Metadata planedge.Metadata
}

// Graph is an arena of N-typed nodes connected by planedge.Metadata-carrying
// edges. The zero value is not usable; construct with New.
type Graph[N any] struct {
	nodes []N
	edges []Edge
	// adjacency index, updated by AddEdge as each edge is appended so that
	// AddEdge stays O(1) amortized.
	outAdj map[NodeID][]EdgeID
	inAdj  map[NodeID][]EdgeID
}

// New returns an empty graph.
func New[N any]() *Graph[N] {
	return &Graph[N]{
		outAdj: make(map[NodeID][]EdgeID),
		inAdj:  make(map[NodeID][]EdgeID),
	}
}

// AddNode appends a node to the arena and returns its stable id.
func (g *Graph[N]) AddNode(payload N) NodeID {
	g.nodes = append(g.nodes, payload)
	return NodeID(len(g.nodes) - 1)
}

// AddEdge appends an edge to the arena and returns its stable id. Edges are
// always appended in caller order, which is what makes operator-id
// assignment deterministic under a fixed input.
func (g *Graph[N]) AddEdge(from, to NodeID, metadata planedge.Metadata) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{From: from, To: to, Metadata: metadata})
	g.outAdj[from] = append(g.outAdj[from], id)
	g.inAdj[to] = append(g.inAdj[to], id)
	return id
}

// NodeCount returns the number of nodes currently in the arena. Operator-id
// assignment reads this *before* inserting the node it's naming.
func (g *Graph[N]) NodeCount() int {
	return len(g.nodes)
}

// Node returns the payload stored at id.
func (g *Graph[N]) Node(id NodeID) N {
	return g.nodes[id]
}

// Nodes returns all node payloads in insertion order. The returned slice
// aliases the graph's internal storage and must not be mutated by callers
// that intend to keep using the graph.
func (g *Graph[N]) Nodes() []N {
	return g.nodes
}

// Edge returns the edge record stored at id.
func (g *Graph[N]) Edge(id EdgeID) Edge {
	return g.edges[id]
}

// Edges returns all edges in insertion order.
func (g *Graph[N]) Edges() []Edge {
	return g.edges
}

// EdgesDirected returns the ids of edges incident to node in the given
// direction, in insertion order.
func (g *Graph[N]) EdgesDirected(node NodeID, dir Direction) []EdgeID {
	if dir == Outgoing {
		return g.outAdj[node]
	}
	return g.inAdj[node]
}

// Topological returns node ids in topological order using Kahn's algorithm,
// breaking ties by increasing NodeID so that the walk is deterministic for a
// fixed input graph regardless of adjacency-map iteration order. It returns
// an error if the graph contains a cycle, which should never happen for a
// rewriter-produced graph per the single-sink-connected, acyclic contract.
func (g *Graph[N]) Topological() ([]NodeID, error) {
	indegree := make(map[NodeID]int, len(g.nodes))
	for i := range g.nodes {
		indegree[NodeID(i)] = 0
	}
	for _, e := range g.edges {
		indegree[e.To]++
	}

	ready := make([]NodeID, 0, len(g.nodes))
	for i := range g.nodes {
		if indegree[NodeID(i)] == 0 {
			ready = append(ready, NodeID(i))
		}
	}

	order := make([]NodeID, 0, len(g.nodes))
	for len(ready) > 0 {
		// smallest-id-first keeps the walk stable across runs; it is not a
		// priority queue since graphs here are small (query plans, not
		// general-purpose workloads).
		minIdx := 0
		for i, n := range ready {
			if n < ready[minIdx] {
				minIdx = i
			}
		}
		n := ready[minIdx]
		ready = append(ready[:minIdx], ready[minIdx+1:]...)
		order = append(order, n)

		for _, eid := range g.outAdj[n] {
			e := g.edges[eid]
			indegree[e.To]--
			if indegree[e.To] == 0 {
				ready = append(ready, e.To)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("dag: graph contains a cycle")
	}
	return order, nil
}
