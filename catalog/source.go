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
	json "github.com/goccy/go-json"

	"github.com/dolthub/flowsql/arroyoschema"
	"github.com/dolthub/flowsql/connector"
)

// AsSQLSource exposes this connector table as a scannable source: the
// connector's opaque configuration bytes, a description, and the arrow
// schema rows will carry (with _timestamp auto-appended if the table
// definition didn't declare one).
func (c *ConnectorTable) AsSQLSource() (*SQLSource, error) {
	schema, err := arroyoschema.FromFields(c.Fields)
	if err != nil {
		return nil, err
	}

	configBytes, err := json.Marshal(c.Config)
	if err != nil {
		return nil, err
	}

	return &SQLSource{
		Connector: connector.Op{
			Kind:        c.Kind,
			Description: c.Name + " (" + c.Kind + ")",
			Config:      configBytes,
		},
		Description: c.Name + " (" + c.Kind + ")",
		Schema:      schema.Schema,
	}, nil
}
