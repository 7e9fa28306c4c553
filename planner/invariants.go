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

package planner

import (
	"fmt"

	"github.com/dolthub/flowsql/arroyoschema"
	"github.com/dolthub/flowsql/dag"
	"github.com/dolthub/flowsql/operator"
	"github.com/dolthub/flowsql/planerror"
)

// validateInvariants checks I1 and I5 / P1, P2 against a just-assembled
// output graph (each ConnectorSource has exactly one outgoing edge, to a
// Watermark; every edge schema's timestamp_index names _timestamp); ArrowKey
// nodes and their key indices are not checked here. Every mutation the translate* functions
// perform is supposed to establish these by construction, but checking them
// here catches a collaborator (physical sub-planner) or translation bug
// before it reaches the runtime, distinguishing an invariant breach from a
// malformed query per §7's propagation policy.
func validateInvariants(out *operator.Graph) error {
	nodes := out.Nodes()

	for id, n := range nodes {
		if n.Kind != operator.ConnectorSource {
			continue
		}
		outgoing := out.EdgesDirected(dag.NodeID(id), dag.Outgoing)
		if len(outgoing) != 1 {
			return planerror.ErrSchemaShape.New(fmt.Sprintf("connector source %s has %d outgoing edges, want 1", n.OperatorID, len(outgoing)))
		}
		edge := out.Edge(outgoing[0])
		target := nodes[edge.To]
		if target.Kind != operator.Watermark {
			return planerror.ErrSchemaShape.New(fmt.Sprintf("connector source %s's single outgoing edge targets %s, not a watermark", n.OperatorID, target.Kind))
		}
	}

	for _, e := range out.Edges() {
		if err := requireTimestampColumn(e.Metadata.Schema); err != nil {
			return err
		}
	}

	return nil
}

func requireTimestampColumn(schema *arroyoschema.ArroyoSchema) error {
	if schema == nil {
		return planerror.ErrSchemaShape.New("edge carries no schema")
	}
	if schema.TimestampIndex < 0 || schema.TimestampIndex >= schema.Schema.NumFields() {
		return planerror.ErrSchemaShape.New("edge schema's timestamp_index out of range")
	}
	if schema.Schema.Field(schema.TimestampIndex).Name != arroyoschema.TimestampField {
		return planerror.ErrSchemaShape.New("edge schema's timestamp_index does not name _timestamp")
	}
	return nil
}
