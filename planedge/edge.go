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

// Package planedge defines the edge metadata shared by both the rewriter's
// input graph and the planner's output graph, so that both sides of the
// translation can be expressed over the same dag.Graph arena type.
package planedge

import "github.com/dolthub/flowsql/arroyoschema"

// Kind classifies the physical channel an edge represents.
type Kind int

const (
	// Forward denotes a co-partitioned channel: upstream and downstream
	// share partitioning, no network shuffle required.
	Forward Kind = iota
	// Shuffle denotes repartitioning by the upstream-declared key columns.
	Shuffle
	// Broadcast replicates every upstream record to all downstream
	// partitions.
	Broadcast
)

func (k Kind) String() string {
	switch k {
	case Forward:
		return "Forward"
	case Shuffle:
		return "Shuffle"
	case Broadcast:
		return "Broadcast"
	default:
		return "Unknown"
	}
}

// Metadata is attached to every edge of both the input and output graph:
// the projected schema flowing across the edge, the edge's kind, and an
// optional column-projection vector that selects and reorders the
// upstream's output columns before consumption downstream.
type Metadata struct {
	Schema     *arroyoschema.ArroyoSchema
	Kind       Kind
	Projection []int
}
