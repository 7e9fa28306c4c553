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
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/flowsql/arroyoschema"
	"github.com/dolthub/flowsql/dag"
	"github.com/dolthub/flowsql/logicalplan"
	"github.com/dolthub/flowsql/operator"
	"github.com/dolthub/flowsql/physicalplan"
	"github.com/dolthub/flowsql/planerror"
)

// translateAggregateCalculation implements §4.4 step 2(d): dispatch on the
// declared window kind. Only Tumbling is implemented; the rest fail with
// PlanError::UnsupportedWindow rather than silently falling back to
// anything, per §9's open question.
func (p *Planner) translateAggregateCalculation(ctx context.Context, st *planState, ext logicalplan.AggregateCalculation, log *logrus.Entry) (dag.NodeID, error) {
	log = log.WithField("node_kind", "AggregateCalculation")

	if ext.Window.Kind != logicalplan.Tumbling {
		return 0, planerror.ErrUnsupportedWindow.New(ext.Window.Kind.String())
	}
	return p.decomposeTumblingWindow(ctx, st, ext, log)
}

// decomposeTumblingWindow implements §4.5 steps 1-6.
func (p *Planner) decomposeTumblingWindow(ctx context.Context, st *planState, ext logicalplan.AggregateCalculation, log *logrus.Entry) (dag.NodeID, error) {
	inputs := ext.Aggregate.Inputs()
	if len(inputs) != 1 {
		return 0, planerror.ErrBadAggregateInput.New(fmt.Sprintf("%d inputs", len(inputs)))
	}
	scanInput, ok := inputs[0].(*logicalplan.TableScanPlan)
	if !ok {
		return 0, planerror.ErrBadAggregateInput.New(fmt.Sprintf("%T", inputs[0]))
	}
	inputSchemaArrow := scanInput.Schema()

	// I4: the declared window field must actually exist at the declared
	// index in the aggregate's relational output schema.
	aggSchema := ext.Aggregate.Schema()
	if ext.WindowIndex < 0 || ext.WindowIndex >= aggSchema.NumFields() {
		return 0, planerror.ErrSchemaShape.New(fmt.Sprintf("window_index %d out of range for aggregate schema with %d fields", ext.WindowIndex, aggSchema.NumFields()))
	}
	if name := aggSchema.Field(ext.WindowIndex).Name; name != ext.WindowField.Name {
		return 0, planerror.ErrSchemaShape.New(fmt.Sprintf("window_index %d names column %q, not declared window_field %q", ext.WindowIndex, name, ext.WindowField.Name))
	}

	// Step 1: binning expression, resolved against the aggregate's input
	// schema.
	binExpr, err := p.Physical.CreateBinningExpr(ctx, ext.Window.Width, inputSchemaArrow)
	if err != nil {
		return 0, planerror.ErrPhysicalPlanningFailed.New(err.Error())
	}

	// Step 2: physical aggregate; require the root is Final.
	physical, err := p.Physical.CreatePhysicalPlan(ctx, ext.Aggregate)
	if err != nil {
		return 0, planerror.ErrPhysicalPlanningFailed.New(err.Error())
	}
	if !physical.IsAggregate() || physical.Aggregate.Mode != physicalplan.Final {
		return 0, planerror.ErrNotAFinalAggregate.New(fmt.Sprintf("%+v", physical))
	}

	// Step 3: detach the partial aggregate, recording its output schema P.
	partial := physical.Aggregate.Input
	if !partial.IsAggregate() {
		return 0, planerror.ErrNotAFinalAggregate.New("final aggregate has no partial child")
	}
	partialArrowSchema := partial.Aggregate.Schema

	// Step 4: rewire the Final aggregate's child to the "partial" placeholder.
	physical.Aggregate.Input = physicalplan.NewPlaceholderRelation(physicalplan.PartialPlaceholderName)

	// Step 5: schemas.
	inputSchema, err := arroyoschema.New(inputSchemaArrow, inputSchemaArrow.NumFields()-1, ext.KeyFields)
	if err != nil {
		return 0, err
	}

	partialFields := make([]arrow.Field, 0, partialArrowSchema.NumFields()+1)
	for i := 0; i < partialArrowSchema.NumFields(); i++ {
		partialFields = append(partialFields, partialArrowSchema.Field(i))
	}
	partialFields = append(partialFields, arrow.Field{
		Name: arroyoschema.TimestampField, Type: arroyoschema.TimestampType(), Nullable: false,
	})
	partialSchema, err := arroyoschema.FromSchemaKeys(arrow.NewSchema(partialFields, nil), ext.KeyFields)
	if err != nil {
		return 0, err
	}

	// Step 6: assemble the operator configuration.
	partialBytes, err := partial.Encode()
	if err != nil {
		return 0, err
	}
	finalBytes, err := physical.Encode()
	if err != nil {
		return 0, err
	}

	widthMicros := uint64(ext.Window.Width / time.Microsecond)
	config, err := operator.MarshalConfig(operator.TumblingWindowAggregateOperator{
		WidthMicros:            widthMicros,
		BinningFunction:        binExpr.Encode(),
		WindowFieldName:        ext.WindowField.Name,
		WindowIndex:            uint64(ext.WindowIndex),
		InputSchema:            inputSchema,
		PartialSchema:          partialSchema,
		PartialAggregationPlan: partialBytes,
		FinalAggregationPlan:   finalBytes,
	})
	if err != nil {
		return 0, err
	}

	opID := fmt.Sprintf("TumblingWindow<%s>_%d", ext.Window.Width, st.out.NodeCount())
	id := p.emit(st, operator.Node{
		OperatorID:  opID,
		Description: fmt.Sprintf("TumblingWindow<%s>", ext.Window.Width),
		Kind:        operator.TumblingWindowAggregate,
		Config:      config,
		Parallelism: 1,
	})
	log.WithField("operator_id", opID).Debug("planner: translated tumbling-window aggregate")
	return id, nil
}
