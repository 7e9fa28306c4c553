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

// Package connector carries the connector-operator configuration that the
// catalog/connector layer materializes and that the planner treats as
// opaque bytes, whether it is binding a source or a sink. The planner never
// interprets Config; it only forwards it into the operator graph it emits.
package connector

// Op is a connector operator configuration, already validated by the
// connector layer before the planner ever sees it.
type Op struct {
	// Kind names the connector implementation, e.g. "kafka", "mqtt",
	// "filesystem".
	Kind string `json:"kind"`
	// Description is a short human-readable summary used as the emitted
	// operator node's description.
	Description string `json:"description"`
	// Config is opaque, connector-specific configuration bytes.
	Config []byte `json:"config"`
}
