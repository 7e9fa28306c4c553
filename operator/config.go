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
	"github.com/dolthub/flowsql/connector"
)

// PeriodicWatermark is the Watermark operator's configuration: a periodic
// watermark advance with optional idle-source detection. The planner always
// emits the default (1s period, zero max lateness, no idle timeout); a
// tunable watermark would require extending TableScan with a watermark
// specification rather than wiring a global (see the design notes).
type PeriodicWatermark struct {
	PeriodMicros      uint64  `json:"period_micros"`
	MaxLatenessMicros uint64  `json:"max_lateness_micros"`
	IdleTimeMicros    *uint64 `json:"idle_time_micros,omitempty"`
}

// DefaultPeriodicWatermark is the planner-level default watermark
// configuration: 1 second period, zero max lateness, no idle timeout.
func DefaultPeriodicWatermark() PeriodicWatermark {
	return PeriodicWatermark{PeriodMicros: 1_000_000, MaxLatenessMicros: 0, IdleTimeMicros: nil}
}

// ValuePlanOperator is the ArrowValue operator's configuration: a serialized
// physical plan computing value columns over the operator's input.
type ValuePlanOperator struct {
	Name         string `json:"name"`
	PhysicalPlan []byte `json:"physical_plan"`
}

// KeyPlanOperator is the ArrowKey operator's configuration: a serialized
// physical plan computing key columns, plus the indices of those columns in
// its output.
type KeyPlanOperator struct {
	Name         string   `json:"name"`
	PhysicalPlan []byte   `json:"physical_plan"`
	KeyFields    []uint64 `json:"key_fields"`
}

// TumblingWindowAggregateOperator is the TumblingWindowAggregate operator's
// configuration, assembled by the tumbling-window decomposer (§4.5 step 6).
type TumblingWindowAggregateOperator struct {
	WidthMicros            uint64                     `json:"width_micros"`
	BinningFunction        []byte                     `json:"binning_function"`
	WindowFieldName        string                     `json:"window_field_name"`
	WindowIndex            uint64                     `json:"window_index"`
	InputSchema            *arroyoschema.ArroyoSchema `json:"input_schema"`
	PartialSchema          *arroyoschema.ArroyoSchema `json:"partial_schema"`
	PartialAggregationPlan []byte                     `json:"partial_aggregation_plan"`
	FinalAggregationPlan   []byte                     `json:"final_aggregation_plan"`
}

// MarshalConfig is a small helper shared by every operator-config
// constructor so each emits consistent JSON (goccy/go-json, matching the
// wire-encoding decision in §6.1) without repeating the call at every
// translation site.
func MarshalConfig(v any) ([]byte, error) {
	return json.Marshal(v)
}

// ConnectorOpConfig serializes a connector.Op for ConnectorSource/Sink node
// configuration. The planner never interprets the Config bytes inside it.
func ConnectorOpConfig(op connector.Op) ([]byte, error) {
	return MarshalConfig(op)
}
