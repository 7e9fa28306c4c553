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

// Package planner implements the query-to-dataflow planner: translation of
// a rewriter-produced plan-extension graph into a logical operator graph
// ready for the streaming runtime.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/flowsql/catalog"
	"github.com/dolthub/flowsql/dag"
	"github.com/dolthub/flowsql/logicalplan"
	"github.com/dolthub/flowsql/operator"
	"github.com/dolthub/flowsql/physicalplan"
	"github.com/dolthub/flowsql/planerror"
)

// Catalog is the dependency the planner requires of its schema provider:
// table lookup plus the connection-id binding described in §4.1.1. A
// *catalog.Catalog satisfies this directly.
type Catalog interface {
	catalog.SchemaProvider
	BindConnection(tableName string) (string, error)
}

// Planner is the query-to-dataflow planner core. Every dependency is
// injected (catalog, physical sub-planner, logger, tracer, metrics); the
// core never constructs its catalog or physical sub-planner, per §5's
// resource discipline.
type Planner struct {
	Catalog  Catalog
	Physical physicalplan.Planner
	Session  physicalplan.SessionConfig
	Logger   *logrus.Entry
	Tracer   opentracing.Tracer
	Metrics  *Metrics
}

// New builds a Planner with the default (both optimizations disabled)
// session configuration. Logger, Tracer, and Metrics may be left nil; the
// planner then logs through a fresh logrus.New() logger (default settings,
// stderr), uses the global tracer, and records no metrics.
func New(cat Catalog, physical physicalplan.Planner) *Planner {
	return &Planner{
		Catalog:  cat,
		Physical: physical,
		Session:  physicalplan.DefaultSessionConfig(),
	}
}

func (p *Planner) logger() *logrus.Entry {
	if p.Logger != nil {
		return p.Logger
	}
	return logrus.NewEntry(logrus.New())
}

func (p *Planner) tracer() opentracing.Tracer {
	if p.Tracer != nil {
		return p.Tracer
	}
	return opentracing.GlobalTracer()
}

// planState carries the per-call mutable state §5 says must be fresh for
// every invocation: the output graph under construction, the node-id
// mapping, and the connection ids bound so far.
type planState struct {
	out           *operator.Graph
	nodeMap       map[dag.NodeID]dag.NodeID
	connectionIDs []string
}

// Plan translates rewriter into a LogicalProgram, per the algorithm in
// §4.4. queryID is attached to every log line emitted during this call; it
// has no bearing on the algorithm itself.
func (p *Planner) Plan(ctx context.Context, rewriter *logicalplan.Graph, queryID string) (*operator.Program, error) {
	start := time.Now()
	p.Metrics.observePlanStarted()
	log := p.logger().WithField("query_id", queryID)

	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, p.tracer(), "planner.Plan")
	defer span.Finish()

	order, err := rewriter.Topological()
	if err != nil {
		return nil, err
	}

	st := &planState{
		out:     operator.NewGraph(),
		nodeMap: make(map[dag.NodeID]dag.NodeID, len(order)),
	}

	for _, nid := range order {
		ext := rewriter.Node(nid)
		target, err := p.translate(ctx, st, ext, log)
		if err != nil {
			if planerror.IsInvariantBreach(err) {
				log.WithError(err).Error("planner: invariant breach")
			}
			return nil, err
		}
		st.nodeMap[nid] = target
	}

	// Rewire edges in the rewriter graph's own adjacency order, which is
	// exactly insertion order of rewriter.Edges() — this is what makes
	// operator-id assignment (done above, during translate) and edge
	// insertion order deterministic together (§5 ordering guarantees).
	for _, e := range rewriter.Edges() {
		from, ok := st.nodeMap[e.From]
		if !ok {
			return nil, fmt.Errorf("planner: edge references untranslated node %d", e.From)
		}
		to, ok := st.nodeMap[e.To]
		if !ok {
			return nil, fmt.Errorf("planner: edge references untranslated node %d", e.To)
		}
		// Edge-kind conversion is a direct correspondence: both graphs share
		// planedge.Metadata, so no remapping is needed beyond copying it.
		st.out.AddEdge(from, to, e.Metadata)
	}

	if err := validateInvariants(st.out); err != nil {
		log.WithError(err).Error("planner: invariant breach")
		return nil, err
	}

	prog := operator.NewProgram(st.out, st.connectionIDs)
	if err := prog.ValidateOperatorIDsUnique(); err != nil {
		return nil, err
	}

	p.Metrics.observePlanDuration(time.Since(start).Seconds())
	log.WithField("operator_count", st.out.NodeCount()).Debug("planner: plan complete")
	return prog, nil
}

// translate dispatches on ext's concrete type and returns the output node
// id that input node N maps to, per §4.4 step 2.
func (p *Planner) translate(ctx context.Context, st *planState, ext logicalplan.Extension, log *logrus.Entry) (dag.NodeID, error) {
	switch e := ext.(type) {
	case logicalplan.TableScan:
		return p.translateTableScan(ctx, st, e, log)
	case logicalplan.ValueCalculation:
		return p.translateValueCalculation(ctx, st, e, log)
	case logicalplan.KeyCalculation:
		return p.translateKeyCalculation(ctx, st, e, log)
	case logicalplan.AggregateCalculation:
		return p.translateAggregateCalculation(ctx, st, e, log)
	case logicalplan.Sink:
		return p.translateSink(ctx, st, e, log)
	default:
		return 0, fmt.Errorf("planner: unknown plan extension %T", ext)
	}
}

func (p *Planner) emit(st *planState, node operator.Node) dag.NodeID {
	p.Metrics.observeEmitted(node.Kind)
	return st.out.AddNode(node)
}
