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
	"time"

	"github.com/spf13/cast"
)

// MaxConnectAttempts returns the max_attempts option from a connector's raw
// config map, defaulting to 20 (the teacher connector's hard-coded retry
// budget) if the option is absent or of an unexpected type. Values in a
// YAML-sourced config map arrive as interface{} (int, string, float64
// depending on how the document was written), so this coerces loosely with
// cast rather than a type switch.
func MaxConnectAttempts(config map[string]any) int {
	v, ok := config["max_attempts"]
	if !ok {
		return 20
	}
	n, err := cast.ToIntE(v)
	if err != nil || n <= 0 {
		return 20
	}
	return n
}

// ConnectBackoff returns the delay before connect attempt number `attempt`
// (1-indexed), exponential with a 5 second cap. The attempt counter here
// must only ever increment: a connector that decremented it instead, as
// flagged in the design notes, would either loop forever below its
// intended retry budget or underflow into a negative shift count.
func ConnectBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	shift := attempt - 1
	if shift > 16 {
		shift = 16 // avoid overflowing the int64 shift for pathological attempt counts
	}
	delay := 50 * time.Millisecond * time.Duration(uint64(1)<<uint(shift))
	if delay > 5*time.Second {
		delay = 5 * time.Second
	}
	return delay
}
