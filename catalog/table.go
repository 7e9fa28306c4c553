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

// Package catalog implements the SchemaProvider described in §4.1: table
// name resolution to bound tables, and the concrete, YAML-configured
// implementation described in the domain-stack expansion (§4.1.1) that lets
// the planner be exercised without a live SQL frontend.
package catalog

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dolthub/flowsql/connector"
)

// Table is the closed sum of table shapes a catalog can return. Only the
// ConnectorTable variant is consumed by the planner; other variants (views,
// CTEs) may exist in a full SQL catalog but are out of scope here.
type Table interface {
	isTable()
}

// ConnectorTable is a table bound to an external connector (Kafka, MQTT,
// filesystem, ...).
type ConnectorTable struct {
	Name   string
	Kind   string
	Fields []arrow.Field
	Config map[string]any
}

func (*ConnectorTable) isTable() {}

// SQLSource is what a ConnectorTable exposes to the planner: connector
// operator configuration (kind-agnostic bytes already validated by the
// connector layer), a human description, and the arrow schema of rows the
// connector produces, including _timestamp.
type SQLSource struct {
	Connector   connector.Op
	Description string
	Schema      *arrow.Schema
}
