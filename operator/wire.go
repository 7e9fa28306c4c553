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
	json "github.com/goccy/go-json"

	"github.com/dolthub/flowsql/arroyoschema"
	"github.com/dolthub/flowsql/dag"
	"github.com/dolthub/flowsql/planedge"
)

// wireNode mirrors the repeated node list described in §6: operator id,
// description, operator-kind enum, parallelism, operator-config bytes.
type wireNode struct {
	OperatorID  string `json:"operator_id"`
	Description string `json:"description"`
	Kind        Kind   `json:"operator_kind"`
	Parallelism int    `json:"parallelism"`
	Config      []byte `json:"operator_config"`
}

// wireEdge mirrors the repeated edge list: source index, target index,
// schema bytes, edge-kind enum, optional projection indices.
type wireEdge struct {
	Source     int               `json:"source"`
	Target     int               `json:"target"`
	Schema     *arroyoschema.Wire `json:"schema"`
	Kind       planedge.Kind     `json:"edge_kind"`
	Projection []int             `json:"projection,omitempty"`
}

// wireProgram is the on-wire LogicalProgram: nodes, edges, and the edge-id
// to ArroyoSchema map, exactly as §6 lists them.
type wireProgram struct {
	Nodes         []wireNode                       `json:"nodes"`
	Edges         []wireEdge                       `json:"edges"`
	Schemas       map[dag.EdgeID]*arroyoschema.Wire `json:"schemas"`
	ConnectionIDs []string                          `json:"connection_ids"`
}

// Marshal encodes the program into its wire form.
func (p *Program) Marshal() ([]byte, error) {
	nodes := p.Graph.Nodes()
	wnodes := make([]wireNode, len(nodes))
	for i, n := range nodes {
		wnodes[i] = wireNode{
			OperatorID:  n.OperatorID,
			Description: n.Description,
			Kind:        n.Kind,
			Parallelism: n.Parallelism,
			Config:      n.Config,
		}
	}

	edges := p.Graph.Edges()
	wedges := make([]wireEdge, len(edges))
	for i, e := range edges {
		var sw *arroyoschema.Wire
		if e.Metadata.Schema != nil {
			w, err := e.Metadata.Schema.MarshalWire()
			if err != nil {
				return nil, err
			}
			sw = w
		}
		wedges[i] = wireEdge{
			Source:     int(e.From),
			Target:     int(e.To),
			Schema:     sw,
			Kind:       e.Metadata.Kind,
			Projection: e.Metadata.Projection,
		}
	}

	schemas := make(map[dag.EdgeID]*arroyoschema.Wire, len(p.Schemas))
	for id, schema := range p.Schemas {
		if schema == nil {
			continue
		}
		w, err := schema.MarshalWire()
		if err != nil {
			return nil, err
		}
		schemas[id] = w
	}

	return json.Marshal(wireProgram{
		Nodes:         wnodes,
		Edges:         wedges,
		Schemas:       schemas,
		ConnectionIDs: p.ConnectionIDs,
	})
}

// Unmarshal decodes a program from its wire form.
func Unmarshal(data []byte) (*Program, error) {
	var wp wireProgram
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, err
	}

	graph := NewGraph()
	for _, wn := range wp.Nodes {
		graph.AddNode(Node{
			OperatorID:  wn.OperatorID,
			Description: wn.Description,
			Kind:        wn.Kind,
			Parallelism: wn.Parallelism,
			Config:      wn.Config,
		})
	}

	for _, we := range wp.Edges {
		var schema *arroyoschema.ArroyoSchema
		if we.Schema != nil {
			s, err := arroyoschema.UnmarshalWire(we.Schema)
			if err != nil {
				return nil, err
			}
			schema = s
		}
		graph.AddEdge(dag.NodeID(we.Source), dag.NodeID(we.Target), planedge.Metadata{
			Schema:     schema,
			Kind:       we.Kind,
			Projection: we.Projection,
		})
	}

	schemas := make(map[dag.EdgeID]*arroyoschema.ArroyoSchema, len(wp.Schemas))
	for id, w := range wp.Schemas {
		s, err := arroyoschema.UnmarshalWire(w)
		if err != nil {
			return nil, err
		}
		schemas[id] = s
	}

	return &Program{Graph: graph, Schemas: schemas, ConnectionIDs: wp.ConnectionIDs}, nil
}
