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

// sigcost/src/optimize/optimize.go

// Package optimize searches tree-height compositions for the forest
// minimizing expected signature size across a set of adversarial
// failure-rate scenarios. The search is exhaustive over multisets of a
// finite height alphabet up to a fixed cardinality; both bounds are
// options, so the search stays provably exhaustive within documented
// limits and testable at small scale.
package optimize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/sphinx-core/sigcost/src/forest"
	logger "github.com/sphinx-core/sigcost/src/log"
	"github.com/sphinx-core/sigcost/src/metrics"
	"github.com/sphinx-core/sigcost/src/params"
)

var (
	// ErrNoFeasibleForest indicates every candidate fell below the
	// signature-budget floor; the infeasibility sentinel is never
	// returned as a winner.
	ErrNoFeasibleForest = errors.New("optimize: no candidate meets the signature budget")

	// ErrOptions indicates structurally invalid search options.
	ErrOptions = errors.New("optimize: invalid options")
)

// Options bounds the search and parameterizes the cost function.
type Options struct {
	// Alphabet is the set of admissible tree heights.
	Alphabet []int

	// MinTrees and MaxTrees bound the multiset cardinality (inclusive).
	MinTrees int
	MaxTrees int

	// Scenarios are the failure rates the cost function averages over.
	Scenarios []float64

	// MinSignatures is the feasibility floor on total forest capacity.
	MinSignatures float64

	// Metrics, when non-nil, receives search instrumentation.
	Metrics *metrics.Metrics
}

// DefaultOptions returns the published search bounds: heights 0..7,
// one to five trees, scenarios from best-case to pessimistic, and a
// 128-signature budget.
func DefaultOptions() Options {
	return Options{
		Alphabet:      []int{0, 1, 2, 3, 4, 5, 6, 7},
		MinTrees:      1,
		MaxTrees:      5,
		Scenarios:     []float64{0.001, 0.01, 0.1, 0.2, 0.5},
		MinSignatures: 128,
	}
}

// Result is the outcome of one exhaustive search.
type Result struct {
	// Forest is the minimum-cost composition found.
	Forest []int

	// Cost is its averaged cost.
	Cost float64

	// Evaluated is the number of candidates examined.
	Evaluated int

	// Trace maps each candidate, in enumeration order, to its cost.
	// Enumeration order is the tie-break: a parallel reduction that
	// preserves this order reproduces the sequential winner exactly.
	Trace *orderedmap.OrderedMap[string, float64]
}

// Cost averages the forest's expected signature size over the scenarios.
// A forest below the signature budget costs +Inf regardless of size.
func Cost(cfg params.Config, heights []int, opts Options) (float64, error) {
	if len(opts.Scenarios) == 0 {
		return 0, fmt.Errorf("%w: no scenarios", ErrOptions)
	}
	total := 0.0
	for _, rate := range opts.Scenarios {
		m, err := forest.Evaluate(cfg, heights, rate)
		if err != nil {
			return 0, err
		}
		if m.Capacity < opts.MinSignatures {
			return math.Inf(1), nil
		}
		total += m.AvgSize
	}
	return total / float64(len(opts.Scenarios)), nil
}

// Search exhaustively enumerates combinations-with-replacement of the
// alphabet for every cardinality in [MinTrees, MaxTrees], in
// lexicographic order, and retains the first minimum-cost candidate.
// The enumeration is deterministic, so identical inputs return
// bit-identical results.
func Search(cfg params.Config, opts Options) (*Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	start := time.Now()

	res := &Result{
		Cost:  math.Inf(1),
		Trace: orderedmap.NewOrderedMap[string, float64](),
	}
	buf := make([]int, opts.MaxTrees)
	for size := opts.MinTrees; size <= opts.MaxTrees; size++ {
		if err := enumerate(cfg, opts, buf[:size], 0, 0, res); err != nil {
			return nil, err
		}
	}

	if opts.Metrics != nil {
		opts.Metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}
	if math.IsInf(res.Cost, 1) {
		return nil, ErrNoFeasibleForest
	}
	logger.Debugf("optimize: best forest %s with cost %.2f after %d candidates",
		forestKey(res.Forest), res.Cost, res.Evaluated)
	return res, nil
}

// enumerate fills buf[pos:] with non-decreasing alphabet indices, scoring
// each completed candidate. Strict less-than on the running minimum keeps
// the first-seen winner on ties.
func enumerate(cfg params.Config, opts Options, buf []int, pos, first int, res *Result) error {
	if pos == len(buf) {
		cost, err := Cost(cfg, buf, opts)
		if err != nil {
			return err
		}
		res.Evaluated++
		res.Trace.Set(forestKey(buf), cost)
		if opts.Metrics != nil {
			opts.Metrics.CandidatesEvaluated.Inc()
			if math.IsInf(cost, 1) {
				opts.Metrics.InfeasibleCandidates.Inc()
			}
		}
		if cost < res.Cost {
			res.Cost = cost
			res.Forest = append([]int(nil), buf...)
		}
		return nil
	}
	for i := first; i < len(opts.Alphabet); i++ {
		buf[pos] = opts.Alphabet[i]
		if err := enumerate(cfg, opts, buf, pos+1, i, res); err != nil {
			return err
		}
	}
	return nil
}

// forestKey renders a composition as "0-1-2-3-7".
func forestKey(heights []int) string {
	parts := make([]string, len(heights))
	for i, h := range heights {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, "-")
}

// validateOptions checks the search bounds.
func validateOptions(opts Options) error {
	if len(opts.Alphabet) == 0 {
		return fmt.Errorf("%w: empty height alphabet", ErrOptions)
	}
	if !sort.IntsAreSorted(opts.Alphabet) {
		return fmt.Errorf("%w: alphabet must be sorted ascending", ErrOptions)
	}
	for _, h := range opts.Alphabet {
		if h < 0 {
			return fmt.Errorf("%w: negative height %d in alphabet", ErrOptions, h)
		}
	}
	if opts.MinTrees < 1 || opts.MaxTrees < opts.MinTrees {
		return fmt.Errorf("%w: tree bounds [%d, %d]", ErrOptions, opts.MinTrees, opts.MaxTrees)
	}
	if len(opts.Scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios", ErrOptions)
	}
	for _, rate := range opts.Scenarios {
		if math.IsNaN(rate) || rate < 0 || rate > 1 {
			return fmt.Errorf("%w: scenario %v outside [0, 1]", ErrOptions, rate)
		}
	}
	if opts.MinSignatures < 0 {
		return fmt.Errorf("%w: negative signature budget %v", ErrOptions, opts.MinSignatures)
	}
	return nil
}
