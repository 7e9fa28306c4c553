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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dolthub/flowsql/operator"
)

// Metrics is the planning-service observability surface described in §3.1:
// a plans_total counter, a plan_duration_seconds histogram, and an
// operators_emitted_total counter partitioned by operator kind.
type Metrics struct {
	plansTotal       prometheus.Counter
	planDuration     prometheus.Histogram
	operatorsEmitted *prometheus.CounterVec
}

// NewMetrics registers the planner's metrics against reg and returns the
// handle used to record them. Passing a fresh prometheus.NewRegistry() is
// safe for tests that construct more than one Planner in the same process.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		plansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plans_total",
			Help: "Total number of plan() invocations, regardless of outcome.",
		}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plan_duration_seconds",
			Help:    "Wall-clock duration of successful plan() invocations.",
			Buckets: prometheus.DefBuckets,
		}),
		operatorsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "operators_emitted_total",
			Help: "Count of logical operator nodes emitted, partitioned by operator kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.plansTotal, m.planDuration, m.operatorsEmitted)
	return m
}

func (m *Metrics) observeEmitted(kind operator.Kind) {
	if m == nil {
		return
	}
	m.operatorsEmitted.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observePlanStarted() {
	if m == nil {
		return
	}
	m.plansTotal.Inc()
}

func (m *Metrics) observePlanDuration(seconds float64) {
	if m == nil {
		return
	}
	m.planDuration.Observe(seconds)
}
