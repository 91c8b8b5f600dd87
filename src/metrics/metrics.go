// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// sigcost/src/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds engine-related Prometheus metrics. Both the optimizer and
// the checksum estimator accept an optional *Metrics; a nil value disables
// instrumentation entirely.
type Metrics struct {
	CandidatesEvaluated  prometheus.Counter
	InfeasibleCandidates prometheus.Counter
	SimulationTrials     prometheus.Counter
	SearchDuration       prometheus.Histogram
}

// NewMetrics initializes Prometheus metrics for the cost-model engine.
func NewMetrics() *Metrics {
	return &Metrics{
		CandidatesEvaluated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sigcost_candidates_evaluated_total",
				Help: "Number of forest candidates evaluated by the optimizer",
			},
		),
		InfeasibleCandidates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sigcost_infeasible_candidates_total",
				Help: "Number of candidates rejected by the signature-budget floor",
			},
		),
		SimulationTrials: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sigcost_simulation_trials_total",
				Help: "Number of Monte-Carlo checksum trials simulated",
			},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sigcost_search_duration_seconds",
				Help:    "Wall-clock duration of optimizer searches",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Register registers all metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.CandidatesEvaluated,
		m.InfeasibleCandidates,
		m.SimulationTrials,
		m.SearchDuration,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
