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
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/flowsql/dag"
	"github.com/dolthub/flowsql/logicalplan"
	"github.com/dolthub/flowsql/operator"
	"github.com/dolthub/flowsql/planerror"
)

// translateValueCalculation implements §4.4 step 2(b): compile the embedded
// logical plan via the physical sub-planner and emit a single ArrowValue
// node wrapping the serialized result.
func (p *Planner) translateValueCalculation(ctx context.Context, st *planState, ext logicalplan.ValueCalculation, log *logrus.Entry) (dag.NodeID, error) {
	log = log.WithField("node_kind", "ValueCalculation")

	physical, err := p.Physical.CreatePhysicalPlan(ctx, ext.Plan)
	if err != nil {
		return 0, planerror.ErrPhysicalPlanningFailed.New(err.Error())
	}
	planBytes, err := physical.Encode()
	if err != nil {
		return 0, err
	}

	config, err := operator.MarshalConfig(operator.ValuePlanOperator{Name: "tmp", PhysicalPlan: planBytes})
	if err != nil {
		return 0, err
	}

	opID := nextID(st, "value")
	id := p.emit(st, operator.Node{
		OperatorID:  opID,
		Description: "value projection",
		Kind:        operator.ArrowValue,
		Config:      config,
		Parallelism: 1,
	})
	log.WithField("operator_id", opID).Debug("planner: translated value calculation")
	return id, nil
}

// translateKeyCalculation implements §4.4 step 2(c): compile the embedded
// logical plan and emit a single ArrowKey node wrapping the serialized
// result together with the declared key-column indices.
func (p *Planner) translateKeyCalculation(ctx context.Context, st *planState, ext logicalplan.KeyCalculation, log *logrus.Entry) (dag.NodeID, error) {
	log = log.WithField("node_kind", "KeyCalculation")

	physical, err := p.Physical.CreatePhysicalPlan(ctx, ext.Plan)
	if err != nil {
		return 0, planerror.ErrPhysicalPlanningFailed.New(err.Error())
	}
	planBytes, err := physical.Encode()
	if err != nil {
		return 0, err
	}

	keyFields := make([]uint64, len(ext.KeyIndices))
	for i, k := range ext.KeyIndices {
		keyFields[i] = uint64(k)
	}

	config, err := operator.MarshalConfig(operator.KeyPlanOperator{Name: "tmp", PhysicalPlan: planBytes, KeyFields: keyFields})
	if err != nil {
		return 0, err
	}

	opID := nextID(st, "key")
	id := p.emit(st, operator.Node{
		OperatorID:  opID,
		Description: "key projection",
		Kind:        operator.ArrowKey,
		Config:      config,
		Parallelism: 1,
	})
	log.WithField("operator_id", opID).Debug("planner: translated key calculation")
	return id, nil
}

// translateSink implements §4.4 step 2(e): build a ConnectorSink node from
// the already-materialized connector operator configuration.
func (p *Planner) translateSink(ctx context.Context, st *planState, ext logicalplan.Sink, log *logrus.Entry) (dag.NodeID, error) {
	log = log.WithField("node_kind", "Sink")

	config, err := operator.ConnectorOpConfig(ext.ConnectorOp)
	if err != nil {
		return 0, err
	}

	opID := nextID(st, "sink")
	id := p.emit(st, operator.Node{
		OperatorID:  opID,
		Description: ext.ConnectorOp.Description,
		Kind:        operator.ConnectorSink,
		Config:      config,
		Parallelism: 1,
	})
	log.WithField("operator_id", opID).Debug("planner: translated sink")
	return id, nil
}
