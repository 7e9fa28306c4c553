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

// PartialPlaceholderName is the name of the in-memory relation the tumbling-
// window decomposer substitutes for a Final aggregate's detached child: the
// streaming runtime realizes it at execution time by feeding back partial
// results keyed by window-bin.
const PartialPlaceholderName = "partial"

// NewPlaceholderRelation builds the opaque node referencing a named
// in-memory relation. It is never an Aggregate node, so IsAggregate reports
// false for it; callers that need to recognize it use PlaceholderName.
func NewPlaceholderRelation(name string) *Node {
	return &Node{Raw: []byte(name)}
}

// PlaceholderName reports the relation name this node references. It
// returns false for nil, Aggregate, and empty-Raw nodes, and otherwise
// returns the Raw bytes as the name; it does not tell a placeholder relation
// apart from any other non-empty opaque plan.
func (n *Node) PlaceholderName() (string, bool) {
	if n == nil || n.IsAggregate() || len(n.Raw) == 0 {
		return "", false
	}
	return string(n.Raw), true
}
