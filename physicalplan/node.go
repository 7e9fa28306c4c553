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

// Package physicalplan models the physical sub-planner described in §4.3: an
// external collaborator that turns a relational logical plan into an
// executable physical tree, expressible in a serializable, language-neutral
// form ("PhysicalPlanNode"/"PhysicalExprNode" in the spec's vocabulary).
//
// The core treats that tree as opaque except when it must split an
// Aggregate (§4.5): match on the Aggregate variant of the typed tree the
// sub-planner returns, rewrite its input in place, and serialize. Node therefore
// models only the two shapes the decomposer ever inspects — Aggregate, and
// everything else as opaque bytes — rather than a full physical-operator
// algebra, which belongs to the sub-planner, not to this core.
package physicalplan

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/apache/arrow-go/v18/arrow"
)

// AggregateMode distinguishes a per-partition pre-aggregation from the
// stage that combines partial states into the final result.
type AggregateMode int

const (
	// Partial is a per-input-partition pre-aggregation producing
	// intermediate state (e.g. (sum, count) for AVG).
	Partial AggregateMode = iota
	// Final combines partial states into the aggregate's final result.
	Final
)

func (m AggregateMode) String() string {
	if m == Final {
		return "Final"
	}
	return "Partial"
}

// AggregateNode is the physical shape of a relational Aggregate: a mode, a
// single child (replaced by the "partial" placeholder relation once split
// off), and the schema it produces.
type AggregateNode struct {
	Mode   AggregateMode
	Input  *Node
	Schema *arrow.Schema
}

// Node is a physical plan tree node. Exactly one of Aggregate or Raw is set:
// Aggregate when this node is a relational Aggregate (the only shape the
// planner core ever pattern-matches on), Raw otherwise — opaque bytes the
// core forwards into operator configuration without inspecting.
type Node struct {
	Aggregate *AggregateNode
	Raw       []byte
}

// IsAggregate reports whether this node is the Aggregate shape.
func (n *Node) IsAggregate() bool {
	return n != nil && n.Aggregate != nil
}

// wireNode mirrors Node for JSON encoding; arrow.Schema has no native JSON
// codec in arrow-go, so the schema is carried as its field names/types using
// the same minimal encoding arroyoschema.Wire uses for ArroyoSchema's own
// arrow_schema field.
type wireNode struct {
	Mode   *AggregateMode `json:"mode,omitempty"`
	Input  *wireNode      `json:"input,omitempty"`
	Fields []wireField    `json:"fields,omitempty"`
	Raw    []byte         `json:"raw,omitempty"`
}

type wireField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Encode serializes the node tree for embedding in operator configuration
// (ValuePlanOperator.PhysicalPlan, KeyPlanOperator.PhysicalPlan,
// TumblingWindowAggregateOperator's partial/final aggregation plan fields).
func (n *Node) Encode() ([]byte, error) {
	wn, err := toWireNode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wn)
}

// Decode is the inverse of Encode.
func Decode(data []byte) (*Node, error) {
	var wn wireNode
	if err := json.Unmarshal(data, &wn); err != nil {
		return nil, err
	}
	return fromWireNode(&wn)
}

func toWireNode(n *Node) (*wireNode, error) {
	if n == nil {
		return nil, nil
	}
	if n.Aggregate == nil {
		return &wireNode{Raw: n.Raw}, nil
	}

	input, err := toWireNode(n.Aggregate.Input)
	if err != nil {
		return nil, err
	}

	fields := make([]wireField, 0)
	if n.Aggregate.Schema != nil {
		for i := 0; i < n.Aggregate.Schema.NumFields(); i++ {
			f := n.Aggregate.Schema.Field(i)
			tn, err := typeName(f.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, wireField{Name: f.Name, Type: tn, Nullable: f.Nullable})
		}
	}

	mode := n.Aggregate.Mode
	return &wireNode{Mode: &mode, Input: input, Fields: fields}, nil
}

func fromWireNode(wn *wireNode) (*Node, error) {
	if wn == nil {
		return nil, nil
	}
	if wn.Mode == nil {
		return &Node{Raw: wn.Raw}, nil
	}

	input, err := fromWireNode(wn.Input)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(wn.Fields))
	for i, wf := range wn.Fields {
		typ, err := typeFromName(wf.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: wf.Name, Type: typ, Nullable: wf.Nullable}
	}

	return &Node{Aggregate: &AggregateNode{
		Mode:   *wn.Mode,
		Input:  input,
		Schema: arrow.NewSchema(fields, nil),
	}}, nil
}

// typeName/typeFromName duplicate arroyoschema's small type vocabulary
// rather than importing it, since physicalplan models physical-operator
// schemas, a different concern from ArroyoSchema's timestamp/key semantics,
// and the two must not drift by sharing a type registry that only one of
// them owns.
func typeName(t arrow.DataType) (string, error) {
	switch dt := t.(type) {
	case *arrow.Int64Type:
		return "int64", nil
	case *arrow.Float64Type:
		return "float64", nil
	case *arrow.BooleanType:
		return "boolean", nil
	case *arrow.StringType:
		return "utf8", nil
	case *arrow.BinaryType:
		return "binary", nil
	case *arrow.TimestampType:
		if dt.Unit == arrow.Nanosecond {
			return "timestamp[ns]", nil
		}
		return "", fmt.Errorf("unsupported timestamp unit %s", dt.Unit)
	default:
		return "", fmt.Errorf("unsupported arrow type %s", t)
	}
}

func typeFromName(name string) (arrow.DataType, error) {
	switch name {
	case "int64":
		return arrow.PrimitiveTypes.Int64, nil
	case "float64":
		return arrow.PrimitiveTypes.Float64, nil
	case "boolean":
		return arrow.FixedWidthTypes.Boolean, nil
	case "utf8":
		return arrow.BinaryTypes.String, nil
	case "binary":
		return arrow.BinaryTypes.Binary, nil
	case "timestamp[ns]":
		return &arrow.TimestampType{Unit: arrow.Nanosecond}, nil
	default:
		return nil, fmt.Errorf("unknown wire type %q", name)
	}
}
