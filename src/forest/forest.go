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

// sigcost/src/forest/forest.go

// Package forest models ordered sequences of Merkle trees used in order,
// each tree certifying the next via an embedded public key. Signing
// attempts that fail retry with the next leaf, so under a failure rate f
// the leaf actually consumed by a signature follows a geometric
// distribution over the forest's concatenated leaf-index space.
package forest

import (
	"errors"
	"fmt"
	"math"

	"github.com/sphinx-core/sigcost/src/params"
)

var (
	// ErrEmptyForest indicates an evaluation over zero trees.
	ErrEmptyForest = errors.New("forest: forest must contain at least one tree")

	// ErrNegativeHeight indicates a tree of negative height.
	ErrNegativeHeight = errors.New("forest: tree height must be non-negative")

	// ErrFailureRate indicates a failure rate outside [0, 1].
	ErrFailureRate = errors.New("forest: failure rate must be in [0, 1]")
)

// Metrics is the evaluated cost of one forest under one failure rate.
type Metrics struct {
	// Capacity is the total signature capacity, sum of 2^height.
	Capacity float64

	// Landing holds the per-tree probability that a signature's leaf
	// index falls inside that tree. Sums to 1 for failure rates in [0, 1).
	Landing []float64

	// MinSize, AvgSize and MaxSize are signature sizes in bytes: the base
	// OTS size plus per-tree authentication cost times the hash size.
	MinSize float64
	AvgSize float64
	MaxSize float64

	// AvgSignTime is the expected signing cost in units of one OTS
	// operation, weighting each tree's leaf count by its landing mass.
	AvgSignTime float64
}

// Evaluate computes the landing distribution and aggregate cost of the
// forest under the given failure rate.
//
// Tree i of height h covers leaf indices [prior, prior+2^h); its landing
// mass is the truncated geometric sum over that range, (1-f)*Σ f^e, which
// telescopes to f^prior - f^(prior+2^h). The truncated ranges partition
// the index space, so no normalization step (and no division) is needed.
// At f = 1 the geometric mass escapes to infinity and the Landing vector
// is all zeros; the partition property holds on [0, 1).
func Evaluate(cfg params.Config, heights []int, failRate float64) (Metrics, error) {
	if err := cfg.Validate(); err != nil {
		return Metrics{}, err
	}
	if len(heights) == 0 {
		return Metrics{}, ErrEmptyForest
	}
	if math.IsNaN(failRate) || failRate < 0 || failRate > 1 {
		return Metrics{}, fmt.Errorf("%w: got %v", ErrFailureRate, failRate)
	}
	for _, h := range heights {
		if h < 0 {
			return Metrics{}, fmt.Errorf("%w: got %d", ErrNegativeHeight, h)
		}
	}

	// Per-tree cost: the tree's own authentication path plus one extra
	// chained certification step per tree position.
	costs := make([]float64, len(heights))
	for i, h := range heights {
		costs[i] = float64(h) + float64(i+1)
	}

	landing := make([]float64, len(heights))
	capacity := 0.0
	index := 0.0
	for i, h := range heights {
		leaves := math.Pow(2, float64(h))
		landing[i] = math.Pow(failRate, index) - math.Pow(failRate, index+leaves)
		index += leaves
		capacity += leaves
	}

	m := Metrics{
		Capacity: capacity,
		Landing:  landing,
		MinSize:  cfg.OTSSize + costs[0]*cfg.N,
		MaxSize:  cfg.OTSSize + costs[len(costs)-1]*cfg.N,
	}
	avgCost := 0.0
	for i, c := range costs {
		avgCost += c * landing[i]
		m.AvgSignTime += math.Pow(2, float64(heights[i])) * landing[i]
	}
	m.AvgSize = cfg.OTSSize + avgCost*cfg.N
	return m, nil
}

// FallbackSize is the expected signature size for a signer without any
// tree: the one-time chain signature when the attempt lands on the chain,
// the certified external signature otherwise.
func FallbackSize(cfg params.Config, failRate float64) (float64, error) {
	if math.IsNaN(failRate) || failRate < 0 || failRate > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrFailureRate, failRate)
	}
	return (1-failRate)*cfg.OTSSize + failRate*cfg.FallbackSigSize, nil
}
