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

package physicalplan

import (
	"context"
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dolthub/flowsql/logicalplan"
)

// ExprNode is a serialized physical expression resolved against a named
// input schema ("PhysicalExprNode" in the spec's external-interfaces
// vocabulary). The core never inspects its contents; it only embeds the raw
// bytes into operator configuration (the tumbling-window binning function).
type ExprNode struct {
	Raw []byte
}

// Encode returns the bytes embedded in operator configuration.
func (e *ExprNode) Encode() []byte {
	if e == nil {
		return nil
	}
	return e.Raw
}

// Planner is the physical sub-planner contract the core core is handed by
// its caller (dependency injection, not ownership — see §5 resource
// discipline). It is modeled as an interface because the actual physical
// planner — a relational-algebra-to-execution-tree compiler — is out of
// scope for this specification (§1); the core only needs the two operations
// below.
type Planner interface {
	// CreatePhysicalPlan compiles a relational logical plan into a physical
	// tree. It may block on catalog/optimizer state, hence the context.
	CreatePhysicalPlan(ctx context.Context, plan logicalplan.RelPlan) (*Node, error)

	// CreateBinningExpr builds and serializes the physical expression
	// equivalent to date_bin(INTERVAL width, _timestamp), resolved against
	// inputSchema. Used only by the tumbling-window decomposer (§4.5 step 1).
	CreateBinningExpr(ctx context.Context, width time.Duration, inputSchema *arrow.Schema) (*ExprNode, error)
}

// SessionConfig carries the two physical-planner session options that
// re-shape the plan in ways incompatible with the window decomposition in
// §4.5: round-robin
// repartitioning would destroy the co-partitioning the key-calculation stage
// establishes, and repartition-aggregations would re-split an aggregate the
// core is about to split itself.
type SessionConfig struct {
	EnableRoundRobinRepartition bool
	RepartitionAggregations     bool
}

// DefaultSessionConfig returns the session configuration planner.New stores
// in Planner.Session: both optimizations disabled. The Planner interface
// takes no session argument, so the core does not pass this configuration
// to the sub-planner.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		EnableRoundRobinRepartition: false,
		RepartitionAggregations:     false,
	}
}
