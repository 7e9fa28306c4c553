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

package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dolthub/flowsql/arroyoschema"
)

// SchemaProvider resolves table names referenced in scans to bound tables.
type SchemaProvider interface {
	// GetTable returns the table bound to name, or ok=false if the catalog
	// has no such binding.
	GetTable(name string) (Table, bool)
}

// Catalog is a SchemaProvider backed by an in-memory table map loaded from a
// YAML document, with connection ids persisted across process restarts
// (§4.1.1).
type Catalog struct {
	tables      map[string]Table
	connections *connectionRegistry
}

// fieldConfig is the YAML shape of one arrow field in a table definition.
type fieldConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}

// tableConfig is the YAML shape of one catalog table entry.
type tableConfig struct {
	Name   string         `yaml:"name"`
	Kind   string         `yaml:"kind"`
	Fields []fieldConfig  `yaml:"fields"`
	Config map[string]any `yaml:"config"`
}

// documentConfig is the top-level YAML catalog document shape.
type documentConfig struct {
	Tables []tableConfig `yaml:"tables"`
}

// Load reads a catalog configuration document from path and opens its
// connection-id registry at registryPath. Connector config values decode as
// plain interface{} (YAML's native scalar types); Load itself converts the
// arrow field type names into actual arrow.DataType values the way the rest
// of this package expects.
func Load(path string, registryPath string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc documentConfig
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	registry, err := openConnectionRegistry(registryPath)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{tables: make(map[string]Table, len(doc.Tables)), connections: registry}
	for _, tc := range doc.Tables {
		fields := make([]arrow.Field, len(tc.Fields))
		for i, fc := range tc.Fields {
			typ, err := fieldType(fc.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = arrow.Field{Name: fc.Name, Type: typ, Nullable: fc.Nullable}
		}
		cat.tables[tc.Name] = &ConnectorTable{
			Name:   tc.Name,
			Kind:   tc.Kind,
			Fields: fields,
			Config: tc.Config,
		}
	}
	return cat, nil
}

// NewInMemory builds a Catalog directly from already-constructed tables,
// with an in-memory (non-persisted) connection registry. Used by tests and
// by callers embedding the planner without a YAML config file.
func NewInMemory(tables map[string]Table) *Catalog {
	return &Catalog{tables: tables, connections: newInMemoryConnectionRegistry()}
}

// GetTable implements SchemaProvider.
func (c *Catalog) GetTable(name string) (Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// BindConnection returns the stable connection id bound to tableName,
// minting a new one on first use and persisting it so that replanning the
// same query after a restart reuses the same id (required for P6,
// determinism, to hold across process restarts and not just within one).
func (c *Catalog) BindConnection(tableName string) (string, error) {
	return c.connections.bind(tableName)
}

// Close releases resources held by the catalog's connection registry.
func (c *Catalog) Close() error {
	return c.connections.close()
}

func fieldType(name string) (arrow.DataType, error) {
	switch name {
	case "int64":
		return arrow.PrimitiveTypes.Int64, nil
	case "float64":
		return arrow.PrimitiveTypes.Float64, nil
	case "boolean":
		return arrow.FixedWidthTypes.Boolean, nil
	case "utf8", "string":
		return arrow.BinaryTypes.String, nil
	case "binary":
		return arrow.BinaryTypes.Binary, nil
	case "timestamp", "timestamp[ns]":
		return arroyoschema.TimestampType(), nil
	default:
		return nil, fmt.Errorf("catalog: unknown field type %q", name)
	}
}
