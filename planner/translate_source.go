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

	"github.com/sirupsen/logrus"

	"github.com/dolthub/flowsql/catalog"
	"github.com/dolthub/flowsql/dag"
	"github.com/dolthub/flowsql/logicalplan"
	"github.com/dolthub/flowsql/operator"
	"github.com/dolthub/flowsql/planedge"
	"github.com/dolthub/flowsql/planerror"
)

func nextID(st *planState, prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, st.out.NodeCount())
}

// translateTableScan implements §4.4 step 2(a): resolve the catalog table,
// emit a ConnectorSource node followed by a Watermark node on a single
// Forward edge, and bind the table's connection id. Maps to the Watermark
// node, per the spec's "Map N → watermark node."
func (p *Planner) translateTableScan(ctx context.Context, st *planState, ext logicalplan.TableScan, log *logrus.Entry) (dag.NodeID, error) {
	log = log.WithField("node_kind", "TableScan")

	tbl, ok := p.Catalog.GetTable(ext.TableName)
	if !ok {
		return 0, planerror.ErrUnknownTable.New(ext.TableName)
	}
	ct, ok := tbl.(*catalog.ConnectorTable)
	if !ok {
		return 0, planerror.ErrNotASource.New(ext.TableName)
	}

	source, err := ct.AsSQLSource()
	if err != nil {
		return 0, err
	}

	connID, err := p.Catalog.BindConnection(ext.TableName)
	if err != nil {
		return 0, err
	}
	st.connectionIDs = append(st.connectionIDs, connID)

	sourceConfig, err := operator.ConnectorOpConfig(source.Connector)
	if err != nil {
		return 0, err
	}
	sourceOpID := nextID(st, "source")
	sourceID := p.emit(st, operator.Node{
		OperatorID:  sourceOpID,
		Description: source.Description,
		Kind:        operator.ConnectorSource,
		Config:      sourceConfig,
		Parallelism: 1,
	})

	watermarkConfig, err := operator.MarshalConfig(operator.DefaultPeriodicWatermark())
	if err != nil {
		return 0, err
	}
	watermarkOpID := nextID(st, "watermark")
	watermarkID := p.emit(st, operator.Node{
		OperatorID:  watermarkOpID,
		Description: "watermark(" + ext.TableName + ")",
		Kind:        operator.Watermark,
		Config:      watermarkConfig,
		Parallelism: 1,
	})

	schema, err := arroyoSchemaFromArrow(ext.ProjectedSchema, nil)
	if err != nil {
		return 0, err
	}
	st.out.AddEdge(sourceID, watermarkID, planedge.Metadata{
		Schema:     schema,
		Kind:       planedge.Forward,
		Projection: ext.Projection,
	})

	log.WithField("operator_id", watermarkOpID).Debug("planner: translated table scan")
	return watermarkID, nil
}
