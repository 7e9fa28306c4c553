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

// Package planerror declares the closed taxonomy of errors the query-to-dataflow
// planner can surface. Each kind is constructed with errors.NewKind so that
// call sites can test membership with Is instead of matching on strings.
package planerror

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrUnknownTable is returned when the catalog has no table bound to the
	// referenced name. Caller-visible; indicates a malformed query.
	ErrUnknownTable = errors.NewKind("unknown table %q")

	// ErrNotASource is returned when a table resolved for a scan is not a
	// ConnectorTable. Caller-visible.
	ErrNotASource = errors.NewKind("table %q is not a source")

	// ErrBadAggregateInput is returned when an AggregateCalculation's immediate
	// input is not a TableScan, which the rewriter is supposed to guarantee.
	ErrBadAggregateInput = errors.NewKind("aggregate calculation input must be a table scan, got %s")

	// ErrUnsupportedWindow is returned for any window kind other than Tumbling.
	ErrUnsupportedWindow = errors.NewKind("unsupported window kind: %s")

	// ErrNotAFinalAggregate is an invariant breach: the physical sub-planner
	// returned a root that isn't an Aggregate in Final mode.
	ErrNotAFinalAggregate = errors.NewKind("physical plan for aggregate is not a final aggregate: %s")

	// ErrPhysicalPlanningFailed wraps any error returned by the physical
	// sub-planner collaborator.
	ErrPhysicalPlanningFailed = errors.NewKind("physical planning failed: %s")

	// ErrSchemaShape is an invariant breach: a schema is missing the mandatory
	// _timestamp column or otherwise doesn't match the shape the planner
	// requires.
	ErrSchemaShape = errors.NewKind("schema shape invariant violated: %s")
)

// IsInvariantBreach reports whether err represents a bug in a collaborator
// (physical sub-planner or rewriter) rather than a malformed user query.
// Invariant breaches are logged at error level in addition to being returned,
// since they should never occur on any accepted input.
func IsInvariantBreach(err error) bool {
	return ErrNotAFinalAggregate.Is(err) || ErrSchemaShape.Is(err)
}
