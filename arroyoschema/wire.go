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

package arroyoschema

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	json "github.com/goccy/go-json"

	"github.com/dolthub/flowsql/planerror"
)

// Wire is the {arrow_schema, timestamp_index, key_indices} envelope described
// in the external interfaces section: arrow_schema is JSON-serialized
// separately from the envelope, exactly as the spec requires, using the small
// closed type vocabulary below (int64, float64, boolean, utf8, binary,
// timestamp-nanosecond) since arrow-go carries no native JSON codec for
// arrow.Schema itself.
type Wire struct {
	ArrowSchema    string   `json:"arrow_schema"`
	TimestampIndex uint32   `json:"timestamp_index"`
	KeyIndices     []uint32 `json:"key_indices"`
}

type wireField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

type wireSchema struct {
	Fields []wireField `json:"fields"`
}

// typeName maps the subset of arrow types this planner ever produces to a
// stable wire name. Anything outside this set is a bug in a caller, not a
// user-facing condition, since the planner itself only ever emits these
// types for connector/projection/aggregate output columns.
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
		return "", planerror.ErrSchemaShape.New(fmt.Sprintf("unsupported timestamp unit %s", dt.Unit))
	default:
		return "", planerror.ErrSchemaShape.New(fmt.Sprintf("unsupported arrow type %s", t))
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
		return TimestampType(), nil
	default:
		return nil, planerror.ErrSchemaShape.New(fmt.Sprintf("unknown wire type %q", name))
	}
}

// MarshalWire encodes the schema into the external wire envelope.
func (s *ArroyoSchema) MarshalWire() (*Wire, error) {
	ws := wireSchema{Fields: make([]wireField, s.Schema.NumFields())}
	for i := 0; i < s.Schema.NumFields(); i++ {
		f := s.Schema.Field(i)
		tn, err := typeName(f.Type)
		if err != nil {
			return nil, err
		}
		ws.Fields[i] = wireField{Name: f.Name, Type: tn, Nullable: f.Nullable}
	}

	raw, err := json.Marshal(ws)
	if err != nil {
		return nil, err
	}

	keyIndices := make([]uint32, len(s.KeyIndices))
	for i, k := range s.KeyIndices {
		keyIndices[i] = uint32(k)
	}

	return &Wire{
		ArrowSchema:    string(raw),
		TimestampIndex: uint32(s.TimestampIndex),
		KeyIndices:     keyIndices,
	}, nil
}

// UnmarshalWire decodes an ArroyoSchema from its wire envelope.
func UnmarshalWire(w *Wire) (*ArroyoSchema, error) {
	var ws wireSchema
	if err := json.Unmarshal([]byte(w.ArrowSchema), &ws); err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(ws.Fields))
	for i, wf := range ws.Fields {
		typ, err := typeFromName(wf.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: wf.Name, Type: typ, Nullable: wf.Nullable}
	}

	keyIndices := make([]int, len(w.KeyIndices))
	for i, k := range w.KeyIndices {
		keyIndices[i] = int(k)
	}

	return New(arrow.NewSchema(fields, nil), int(w.TimestampIndex), keyIndices)
}

// MarshalJSON makes ArroyoSchema itself directly JSON-encodable as its wire
// envelope, so it can be embedded in larger wire structures (LogicalProgram's
// edge-id -> ArroyoSchema map) without callers threading MarshalWire through
// by hand.
func (s *ArroyoSchema) MarshalJSON() ([]byte, error) {
	w, err := s.MarshalWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *ArroyoSchema) UnmarshalJSON(data []byte) error {
	var w Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := UnmarshalWire(&w)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}
