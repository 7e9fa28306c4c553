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
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dolthub/flowsql/arroyoschema"
)

// arroyoSchemaFromArrow wraps an already-projected arrow schema (guaranteed
// by the rewriter's contract, §4.2, to contain _timestamp) as an
// ArroyoSchema with the given key indices.
func arroyoSchemaFromArrow(schema *arrow.Schema, keyIndices []int) (*arroyoschema.ArroyoSchema, error) {
	return arroyoschema.FromSchemaKeys(schema, keyIndices)
}
