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

// sigcost/src/forest/shallowdeep.go
package forest

import (
	"fmt"
	"math"

	"github.com/sphinx-core/sigcost/src/params"
)

// CurvePoint is one sample of the shallow/deep cost curves, consumed by
// the downstream plotting collaborator.
type CurvePoint struct {
	FailRate float64
	SigTime  float64
	SigSize  float64
}

// EvaluateShallowDeep models the dedicated two-tree split: the deep tree
// is reached only once the shallow tree's 2^s leaves are all consumed by
// failures, so its landing chance is f^(2^s). cachedLayers is the number
// of deep-subtree layers cached on the authenticator and affects only the
// signing-time figure; pass 0 for an uncached deep tree.
func EvaluateShallowDeep(cfg params.Config, shallow, deep int, failRate float64, cachedLayers int) (Metrics, error) {
	if err := cfg.Validate(); err != nil {
		return Metrics{}, err
	}
	if shallow < 0 || deep < 0 {
		return Metrics{}, fmt.Errorf("%w: shallow=%d deep=%d", ErrNegativeHeight, shallow, deep)
	}
	if cachedLayers < 0 || cachedLayers > deep {
		return Metrics{}, fmt.Errorf("forest: cached layers must be in [0, deep], got %d", cachedLayers)
	}
	if math.IsNaN(failRate) || failRate < 0 || failRate > 1 {
		return Metrics{}, fmt.Errorf("%w: got %v", ErrFailureRate, failRate)
	}

	shallowLeaves := math.Pow(2, float64(shallow))
	deepLeaves := math.Pow(2, float64(deep))
	dChance := math.Pow(failRate, shallowLeaves)

	// Expected number of shallow sub-public-keys revealed alongside a
	// signature: all of them when the deep tree is reached, otherwise the
	// conditional expectation of the geometric landing index.
	numShallowPubs := dChance * shallowLeaves
	if dChance < 1 {
		for e := 0.0; e < shallowLeaves; e++ {
			numShallowPubs += e * (1 - failRate) * math.Pow(failRate, e) / (1 - dChance)
		}
	}

	authPathLen := dChance * float64(deep)

	return Metrics{
		Capacity: shallowLeaves + deepLeaves,
		Landing:  []float64{1 - dChance, dChance},
		MinSize:  cfg.OTSSize + 1*cfg.N,
		AvgSize:  cfg.OTSSize + (1+numShallowPubs)*cfg.N + authPathLen*cfg.N,
		MaxSize:  cfg.OTSSize + (1+shallowLeaves)*cfg.N + float64(deep)*cfg.N,
		// One shallow OTS always; the deep tree costs a full subtree walk
		// below the cached layers when reached.
		AvgSignTime: 1 + dChance*math.Pow(2, float64(deep-cachedLayers)),
	}, nil
}

// ShallowDeepCurve samples the shallow/deep signing-time and
// signature-size curves over failure rates [0, 1) in steps increments.
func ShallowDeepCurve(cfg params.Config, shallow, deep, steps, cachedLayers int) ([]CurvePoint, error) {
	if steps < 1 {
		return nil, fmt.Errorf("forest: curve steps must be positive, got %d", steps)
	}
	points := make([]CurvePoint, 0, steps)
	for i := 0; i < steps; i++ {
		failRate := float64(i) / float64(steps)
		m, err := EvaluateShallowDeep(cfg, shallow, deep, failRate, cachedLayers)
		if err != nil {
			return nil, err
		}
		points = append(points, CurvePoint{
			FailRate: failRate,
			SigTime:  m.AvgSignTime,
			SigSize:  m.AvgSize,
		})
	}
	return points, nil
}
