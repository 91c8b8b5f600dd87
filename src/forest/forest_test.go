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

// sigcost/src/forest/forest_test.go
package forest

import (
	"math"
	"testing"

	"github.com/sphinx-core/sigcost/src/params"
	"github.com/stretchr/testify/require"
)

func TestEvaluateReferenceForest(t *testing.T) {
	cfg := params.DefaultConfig()

	m, err := Evaluate(cfg, []int{0, 1, 2, 3, 7}, 0.5)
	require.NoError(t, err)

	require.Equal(t, 143.0, m.Capacity)
	require.Equal(t, cfg.OTSSize+1*cfg.N, m.MinSize)
	require.Equal(t, cfg.OTSSize+(7.0+5)*cfg.N, m.MaxSize)

	// Truncated geometric masses over leaf ranges [0,1), [1,3), [3,7), ...
	require.InDelta(t, 0.5, m.Landing[0], 1e-12)
	require.InDelta(t, 0.375, m.Landing[1], 1e-12)
	require.InDelta(t, 0.1171875, m.Landing[2], 1e-12)
	require.Len(t, m.Landing, 5)
}

func TestLandingMassPartitionsIndexSpace(t *testing.T) {
	cfg := params.DefaultConfig()
	forests := [][]int{{0}, {3}, {0, 0}, {0, 1, 2, 3, 7}, {2, 2, 2}, {7, 7, 7, 7, 7}}
	rates := []float64{0, 0.001, 0.01, 0.1, 0.2, 0.5, 0.9, 0.999}

	for _, heights := range forests {
		for _, rate := range rates {
			m, err := Evaluate(cfg, heights, rate)
			require.NoError(t, err)

			sum := 0.0
			for _, p := range m.Landing {
				require.GreaterOrEqual(t, p, 0.0)
				sum += p
			}
			require.InDelta(t, 1.0, sum, 1e-9, "forest %v rate %v", heights, rate)
			require.LessOrEqual(t, m.MinSize, m.AvgSize)
			require.LessOrEqual(t, m.AvgSize, m.MaxSize)
		}
	}
}

func TestEvaluateZeroFailureRate(t *testing.T) {
	cfg := params.DefaultConfig()

	m, err := Evaluate(cfg, []int{0, 1, 2}, 0)
	require.NoError(t, err)

	// Every signature lands in the first tree.
	require.Equal(t, 1.0, m.Landing[0])
	require.Equal(t, 0.0, m.Landing[1])
	require.Equal(t, 0.0, m.Landing[2])
	require.Equal(t, m.MinSize, m.AvgSize)
	require.Equal(t, 1.0, m.AvgSignTime)
}

func TestEvaluateCertainFailure(t *testing.T) {
	cfg := params.DefaultConfig()

	// At f = 1 the geometric mass never lands; the distribution degenerates
	// to all zeros rather than erroring.
	m, err := Evaluate(cfg, []int{0, 1, 2}, 1)
	require.NoError(t, err)
	for _, p := range m.Landing {
		require.Equal(t, 0.0, p)
	}
}

func TestEvaluateErrors(t *testing.T) {
	cfg := params.DefaultConfig()

	_, err := Evaluate(cfg, nil, 0.5)
	require.ErrorIs(t, err, ErrEmptyForest)

	_, err = Evaluate(cfg, []int{0, -1}, 0.5)
	require.ErrorIs(t, err, ErrNegativeHeight)

	for _, rate := range []float64{-0.1, 1.1, math.NaN()} {
		_, err = Evaluate(cfg, []int{0}, rate)
		require.ErrorIs(t, err, ErrFailureRate)
	}

	bad := cfg
	bad.N = 0
	_, err = Evaluate(bad, []int{0}, 0.5)
	require.ErrorIs(t, err, params.ErrInvalidConfig)
}

func TestFallbackSize(t *testing.T) {
	cfg := params.DefaultConfig()

	size, err := FallbackSize(cfg, 0.5)
	require.NoError(t, err)
	require.InDelta(t, (cfg.OTSSize+cfg.FallbackSigSize)/2, size, 1e-12)

	size, err = FallbackSize(cfg, 0)
	require.NoError(t, err)
	require.Equal(t, cfg.OTSSize, size)

	_, err = FallbackSize(cfg, 1.5)
	require.ErrorIs(t, err, ErrFailureRate)
}

func TestEvaluateShallowDeep(t *testing.T) {
	cfg := params.DefaultConfig()

	t.Run("zero failure rate", func(t *testing.T) {
		m, err := EvaluateShallowDeep(cfg, 2, 7, 0, 0)
		require.NoError(t, err)
		require.Equal(t, 4.0+128, m.Capacity)
		require.Equal(t, []float64{1, 0}, m.Landing)
		// First shallow leaf, no extra sub-public-keys, no deep walk.
		require.InDelta(t, m.MinSize, m.AvgSize, 1e-9)
		require.Equal(t, 1.0, m.AvgSignTime)
	})

	t.Run("certain failure", func(t *testing.T) {
		m, err := EvaluateShallowDeep(cfg, 2, 7, 1, 0)
		require.NoError(t, err)
		require.Equal(t, []float64{0, 1}, m.Landing)
		require.InDelta(t, m.MaxSize, m.AvgSize, 1e-9)
		require.Equal(t, 1.0+128, m.AvgSignTime)
	})

	t.Run("caching deep layers cuts sign time only", func(t *testing.T) {
		uncached, err := EvaluateShallowDeep(cfg, 2, 7, 0.5, 0)
		require.NoError(t, err)
		cached, err := EvaluateShallowDeep(cfg, 2, 7, 0.5, 3)
		require.NoError(t, err)
		require.Less(t, cached.AvgSignTime, uncached.AvgSignTime)
		require.Equal(t, uncached.AvgSize, cached.AvgSize)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := EvaluateShallowDeep(cfg, -1, 7, 0.5, 0)
		require.ErrorIs(t, err, ErrNegativeHeight)
		_, err = EvaluateShallowDeep(cfg, 2, 7, 0.5, 8)
		require.Error(t, err)
		_, err = EvaluateShallowDeep(cfg, 2, 7, math.NaN(), 0)
		require.ErrorIs(t, err, ErrFailureRate)
	})
}

func TestShallowDeepCurve(t *testing.T) {
	cfg := params.DefaultConfig()

	points, err := ShallowDeepCurve(cfg, 2, 7, 100, 0)
	require.NoError(t, err)
	require.Len(t, points, 100)
	require.Equal(t, 0.0, points[0].FailRate)

	// Curves rise monotonically with the failure rate.
	for i := 1; i < len(points); i++ {
		require.GreaterOrEqual(t, points[i].SigTime, points[i-1].SigTime)
		require.GreaterOrEqual(t, points[i].SigSize, points[i-1].SigSize)
	}

	first, err := EvaluateShallowDeep(cfg, 2, 7, 0, 0)
	require.NoError(t, err)
	require.Equal(t, first.AvgSignTime, points[0].SigTime)
	require.Equal(t, first.AvgSize, points[0].SigSize)

	_, err = ShallowDeepCurve(cfg, 2, 7, 0, 0)
	require.Error(t, err)
}
