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

// Package logicalplan models the rewriter's output contract (§4.2): a plan
// graph whose nodes are one of five plan-extension shapes, each wrapping a
// relational logical (sub-)plan the physical sub-planner knows how to
// compile. The relational plans themselves are produced by the SQL parser
// and optimizer, which are external collaborators; RelPlan exposes only the
// minimal surface the planner core needs to read (output schema, and the
// immediate input, so the tumbling-window decomposer can verify its
// precondition).
package logicalplan

import "github.com/apache/arrow-go/v18/arrow"

// RelPlan is a relational logical (sub-)plan as produced by the SQL
// optimizer. The core never interprets its structure beyond what this
// interface exposes.
type RelPlan interface {
	// Schema is the output schema this plan node produces.
	Schema() *arrow.Schema
	// Inputs returns this node's immediate children, in order. A leaf plan
	// (such as a table scan) returns nil.
	Inputs() []RelPlan
}

// TableScanPlan is a leaf RelPlan reading rows from a catalog-bound table.
type TableScanPlan struct {
	TableName string
	schema    *arrow.Schema
}

// NewTableScanPlan constructs a TableScanPlan over the given projected
// schema.
func NewTableScanPlan(tableName string, schema *arrow.Schema) *TableScanPlan {
	return &TableScanPlan{TableName: tableName, schema: schema}
}

func (p *TableScanPlan) Schema() *arrow.Schema { return p.schema }
func (p *TableScanPlan) Inputs() []RelPlan     { return nil }

// ProjectionPlan is the RelPlan shape used by both ValueCalculation and
// KeyCalculation: a single-input plan producing a (possibly computed)
// column list over its input.
type ProjectionPlan struct {
	Input  RelPlan
	schema *arrow.Schema
}

// NewProjectionPlan constructs a ProjectionPlan over a single input,
// producing the given output schema.
func NewProjectionPlan(input RelPlan, schema *arrow.Schema) *ProjectionPlan {
	return &ProjectionPlan{Input: input, schema: schema}
}

func (p *ProjectionPlan) Schema() *arrow.Schema { return p.schema }
func (p *ProjectionPlan) Inputs() []RelPlan     { return []RelPlan{p.Input} }

// AggregatePlan is the RelPlan shape for an AggregateCalculation's embedded
// aggregate: group-by plus aggregate expressions over a single input.
type AggregatePlan struct {
	Input  RelPlan
	schema *arrow.Schema
}

// NewAggregatePlan constructs an AggregatePlan over a single input,
// producing the given output schema (group-by columns followed by aggregate
// result columns, by SQL convention).
func NewAggregatePlan(input RelPlan, schema *arrow.Schema) *AggregatePlan {
	return &AggregatePlan{Input: input, schema: schema}
}

func (p *AggregatePlan) Schema() *arrow.Schema { return p.schema }
func (p *AggregatePlan) Inputs() []RelPlan     { return []RelPlan{p.Input} }
