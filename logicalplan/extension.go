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

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dolthub/flowsql/connector"
)

// Extension is the closed sum of the five plan-extension shapes the rewriter
// emits. It is modeled as a tagged variant (one Go type per shape satisfying
// the marker method) rather than a runtime-dispatched object hierarchy, per
// the design notes: the shapes are fixed and known in advance, so a type
// switch in the planner's translation loop is clearer than a virtual method
// on each variant.
type Extension interface {
	isExtension()
}

// TableScan binds a logical scan to a catalog table name. The scan's
// projected schema and projection list become the schema/projection of the
// Forward edge between the emitted ConnectorSource and Watermark nodes.
type TableScan struct {
	TableName       string
	ProjectedSchema *arrow.Schema
	Projection      []int
}

func (TableScan) isExtension() {}

// ValueCalculation wraps a logical sub-plan with exactly one input,
// producing value columns (a projection, possibly with computed
// expressions).
type ValueCalculation struct {
	Plan RelPlan
}

func (ValueCalculation) isExtension() {}

// KeyCalculation wraps a logical sub-plan together with the explicit vector
// of output column indices that are keys.
type KeyCalculation struct {
	Plan       RelPlan
	KeyIndices []int
}

func (KeyCalculation) isExtension() {}

// AggregateCalculation wraps an aggregate sub-plan, its window
// specification, the key-field indices used to compute the aggregate's
// group-by, and the descriptor of the window-valued output column.
type AggregateCalculation struct {
	Aggregate   RelPlan
	Window      WindowType
	KeyFields   []int
	WindowField arrow.Field
	WindowIndex int
}

func (AggregateCalculation) isExtension() {}

// Sink names a connector-bound sink and carries its already-materialized
// connector operator configuration.
type Sink struct {
	Name        string
	ConnectorOp connector.Op
}

func (Sink) isExtension() {}
