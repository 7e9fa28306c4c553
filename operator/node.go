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

// Package operator defines the planner's output graph: logical operator
// nodes and their configuration wire forms, the typed edges connecting
// them, and the LogicalProgram that bundles the whole thing for the
// runtime.
package operator

// Kind enumerates the operator kinds the planner emits. Sliding, Session,
// and Instant window aggregates are reserved for a future decomposition
// (see the design notes' open question) and are never emitted today;
// AggregateCalculation nodes with those window kinds fail planning instead.
type Kind int

const (
	ConnectorSource Kind = iota
	Watermark
	ArrowValue
	ArrowKey
	TumblingWindowAggregate
	ConnectorSink

	// reserved, not emitted by this planner core.
	SlidingWindowAggregate
	SessionWindowAggregate
	InstantWindowAggregate
)

func (k Kind) String() string {
	switch k {
	case ConnectorSource:
		return "ConnectorSource"
	case Watermark:
		return "Watermark"
	case ArrowValue:
		return "ArrowValue"
	case ArrowKey:
		return "ArrowKey"
	case TumblingWindowAggregate:
		return "TumblingWindowAggregate"
	case ConnectorSink:
		return "ConnectorSink"
	case SlidingWindowAggregate:
		return "SlidingWindowAggregate"
	case SessionWindowAggregate:
		return "SessionWindowAggregate"
	case InstantWindowAggregate:
		return "InstantWindowAggregate"
	default:
		return "Unknown"
	}
}

// Node is a self-contained, serializable logical operator node: an id, a
// human description, its kind, an opaque serialized configuration
// interpreted per-kind by the runtime, and its requested parallelism.
type Node struct {
	OperatorID  string
	Description string
	Kind        Kind
	Config      []byte
	Parallelism int
}
