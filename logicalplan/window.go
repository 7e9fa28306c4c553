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

package logicalplan

import (
	"fmt"
	"time"
)

// WindowKind tags which of the four window shapes a WindowType carries.
// Only Tumbling is implemented by the planner core; the rest are accepted on
// input and rejected with PlanError::UnsupportedWindow rather than panicking
// (see the design notes' open question on non-tumbling windows).
type WindowKind int

const (
	Tumbling WindowKind = iota
	Sliding
	Session
	Instant
)

func (k WindowKind) String() string {
	switch k {
	case Tumbling:
		return "Tumbling"
	case Sliding:
		return "Sliding"
	case Session:
		return "Session"
	case Instant:
		return "Instant"
	default:
		return "Unknown"
	}
}

// WindowType is the closed sum of window specifications a SQL aggregate can
// declare.
type WindowType struct {
	Kind WindowKind

	// Width is meaningful for Tumbling (bin width) and Sliding (window width).
	Width time.Duration
	// Slide is meaningful only for Sliding.
	Slide time.Duration
	// Gap is meaningful only for Session.
	Gap time.Duration
}

// NewTumbling constructs a Tumbling window of the given width.
func NewTumbling(width time.Duration) WindowType {
	return WindowType{Kind: Tumbling, Width: width}
}

// NewSliding constructs a Sliding window.
func NewSliding(width, slide time.Duration) WindowType {
	return WindowType{Kind: Sliding, Width: width, Slide: slide}
}

// NewSession constructs a Session window.
func NewSession(gap time.Duration) WindowType {
	return WindowType{Kind: Session, Gap: gap}
}

// NewInstant constructs an Instant window.
func NewInstant() WindowType {
	return WindowType{Kind: Instant}
}

func (w WindowType) String() string {
	switch w.Kind {
	case Tumbling:
		return fmt.Sprintf("Tumbling{width:%s}", w.Width)
	case Sliding:
		return fmt.Sprintf("Sliding{width:%s,slide:%s}", w.Width, w.Slide)
	case Session:
		return fmt.Sprintf("Session{gap:%s}", w.Gap)
	case Instant:
		return "Instant"
	default:
		return "Unknown"
	}
}
