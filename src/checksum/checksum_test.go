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

// sigcost/src/checksum/checksum_test.go
package checksum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testOptions(trials int) Options {
	opts := DefaultOptions()
	opts.Trials = trials
	opts.Seed = 42
	return opts
}

func TestEstimateIsReproducible(t *testing.T) {
	opts := testOptions(20_000)
	opts.Workers = 2

	first, err := EstimateCollision(DigitSum, opts)
	require.NoError(t, err)
	second, err := EstimateCollision(DigitSum, opts)
	require.NoError(t, err)
	require.Equal(t, first, second)

	opts.Seed = 43
	third, err := EstimateCollision(DigitSum, opts)
	require.NoError(t, err)
	require.NotEqual(t, first.Probabilities, third.Probabilities)
}

func TestProbabilityMassSumsToOne(t *testing.T) {
	for _, v := range []Variant{DigitSum, NumberSum} {
		for _, modulus := range []int{128, 256} {
			// Odd trial count and several workers: the split must not
			// lose or duplicate mass.
			opts := testOptions(10_001)
			opts.Modulus = modulus
			opts.Workers = 4

			est, err := EstimateCollision(v, opts)
			require.NoError(t, err)
			require.InDelta(t, 1.0, est.TotalMass, 1e-9)
			require.False(t, est.Unstable)
			require.Len(t, est.Probabilities, modulus)
			require.Equal(t, est.Probabilities[est.MaxResidue], est.MaxProbability)
		}
	}
}

// The number-sum residues mod 128 are near uniform, so the empirical
// maximum converges to the 1/128 expectation and the worst-case bound
// approaches the 112-bit theoretical ceiling.
func TestNumberSumMod128NearUniform(t *testing.T) {
	opts := testOptions(200_000)

	est, err := EstimateCollision(NumberSum, opts)
	require.NoError(t, err)

	require.InEpsilon(t, 1.0/128, est.MaxProbability, 0.05)
	require.InEpsilon(t, 1.0/128, est.MedianProbability, 0.05)
	require.Equal(t, 112.0, est.TheoreticalSecurityLevel)
	require.Greater(t, est.WorstCaseSecurityLevel, 108.0)
	require.Less(t, est.WorstCaseSecurityLevel, est.TheoreticalSecurityLevel)
}

// The digit-sum residues are visibly non-uniform: the decimal digit sums
// of the 128 draw positions concentrate the wrapped distribution, and the
// maximum stabilizes near twice the uniform expectation. That gap is what
// the worst-case bound is for.
func TestDigitSumMod128Concentration(t *testing.T) {
	opts := testOptions(100_000)

	est, err := EstimateCollision(DigitSum, opts)
	require.NoError(t, err)

	ratio := est.MaxProbability * 128
	require.Greater(t, ratio, 1.8)
	require.Less(t, ratio, 2.3)
	require.Greater(t, est.WorstCaseSecurityLevel, 94.0)
	require.Less(t, est.WorstCaseSecurityLevel, 97.0)
}

// Convergence: the residue tables of two independent seeds drift apart by
// sampling noise only, and that noise shrinks as the trial count grows.
func TestEstimateConverges(t *testing.T) {
	distance := func(trials int) float64 {
		a := testOptions(trials)
		b := testOptions(trials)
		b.Seed = 7

		ea, err := EstimateCollision(DigitSum, a)
		require.NoError(t, err)
		eb, err := EstimateCollision(DigitSum, b)
		require.NoError(t, err)

		max := 0.0
		for r := range ea.Probabilities {
			if d := math.Abs(ea.Probabilities[r] - eb.Probabilities[r]); d > max {
				max = d
			}
		}
		return max
	}

	require.Greater(t, distance(10_000), distance(200_000))
}

// Empty buckets are re-randomized only for the number-sum mod-256 variant.
// With 4 draws over 16 buckets most buckets receive nothing: mod 128 their
// zero residues pile up, mod 256 the mass spreads out.
func TestEmptyBucketRandomizationAsymmetry(t *testing.T) {
	opts := testOptions(20_000)
	opts.MessageBits = 16

	sparse, err := EstimateCollision(NumberSum, opts)
	require.NoError(t, err)
	require.Greater(t, sparse.Probabilities[0], 0.5)
	require.Equal(t, 0, sparse.MaxResidue)

	opts.Modulus = 256
	spread, err := EstimateCollision(NumberSum, opts)
	require.NoError(t, err)
	require.Less(t, spread.Probabilities[0], 0.1)
}

func TestVariantString(t *testing.T) {
	require.Equal(t, "digit-sum", DigitSum.String())
	require.Equal(t, "number-sum", NumberSum.String())
	require.Equal(t, "Variant(9)", Variant(9).String())
}

func TestEstimateOptionValidation(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		mutate  func(*Options)
	}{
		{"unknown variant", Variant(9), func(o *Options) {}},
		{"zero trials", DigitSum, func(o *Options) { o.Trials = 0 }},
		{"zero buckets", DigitSum, func(o *Options) { o.Buckets = 0 }},
		{"zero message bits", DigitSum, func(o *Options) { o.MessageBits = 0 }},
		{"ragged message bits", DigitSum, func(o *Options) { o.MessageBits = 510 }},
		{"unit modulus", DigitSum, func(o *Options) { o.Modulus = 1 }},
		{"negative workers", DigitSum, func(o *Options) { o.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(100)
			tt.mutate(&opts)
			_, err := EstimateCollision(tt.variant, opts)
			require.ErrorIs(t, err, ErrOptions)
		})
	}
}
