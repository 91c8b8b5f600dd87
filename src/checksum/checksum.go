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

// sigcost/src/checksum/checksum.go

// Package checksum estimates, by Monte-Carlo simulation, the worst-case
// collision probability of the digit/number-sum checksum construction used
// inside the chain-based one-time signature schemes. There is no closed
// form; correctness is statistical, so all figures converge with trial
// count rather than being exact.
package checksum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	logger "github.com/sphinx-core/sigcost/src/log"
	"github.com/sphinx-core/sigcost/src/metrics"
	"golang.org/x/crypto/sha3"
)

// Variant selects how each draw contributes to its bucket's residue.
type Variant int

const (
	// DigitSum adds the decimal digits of the draw's 1-based position.
	DigitSum Variant = iota

	// NumberSum adds the draw's 0-based position directly.
	NumberSum
)

// String names the variant for reports.
func (v Variant) String() string {
	switch v {
	case DigitSum:
		return "digit-sum"
	case NumberSum:
		return "number-sum"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// MassTolerance bounds the acceptable deviation of the total probability
// mass from 1 before a run is flagged unreliable.
const MassTolerance = 1e-6

var (
	// ErrOptions indicates structurally invalid simulation options.
	ErrOptions = errors.New("checksum: invalid options")
)

// Options parameterizes one simulation run.
type Options struct {
	// Trials is the number of independent checksum constructions.
	Trials int

	// Buckets is the number of independent chains per trial; draws select
	// a bucket uniformly.
	Buckets int

	// MessageBits sizes the digest being encoded; each trial performs
	// MessageBits/4 draws (one per 4-bit digit).
	MessageBits int

	// Modulus is the residue space; residues reduce modulo it after every
	// contribution to model intermediate overflow handling.
	Modulus int

	// Seed drives all randomness. Identical Options (including Workers)
	// reproduce identical estimates.
	Seed uint64

	// Workers splits the trials across goroutines; 0 means 1. Per-worker
	// seeds are expanded from Seed, so the split stays reproducible.
	Workers int

	// Metrics, when non-nil, receives trial-count instrumentation.
	Metrics *metrics.Metrics
}

// DefaultOptions returns the published simulation shape: 10^7 trials of
// 16 buckets over a 512-bit digest, residues mod 128.
func DefaultOptions() Options {
	return Options{
		Trials:      10_000_000,
		Buckets:     16,
		MessageBits: 512,
		Modulus:     128,
		Seed:        1,
		Workers:     1,
	}
}

// Estimate is the empirical residue distribution of one simulation run.
type Estimate struct {
	Variant Variant
	Modulus int
	Trials  int

	// Probabilities is indexed by residue value; each bucket observation
	// contributes 1/(Trials*Buckets) mass.
	Probabilities []float64

	// MaxProbability is the largest entry, at residue MaxResidue.
	MaxProbability float64
	MaxResidue     int

	// MedianProbability is the median table entry.
	MedianProbability float64

	// TotalMass sums the table; it should equal 1 up to floating point.
	// Unstable is set when it deviates beyond MassTolerance.
	TotalMass float64
	Unstable  bool

	// WorstCaseSecurityLevel is -log2(max^Buckets), the empirical bound
	// assuming independent buckets; TheoreticalSecurityLevel is the
	// uniform-distribution ceiling log2(Modulus^Buckets).
	WorstCaseSecurityLevel   float64
	TheoreticalSecurityLevel float64
}

// EstimateCollision runs the simulation and derives the collision bound.
func EstimateCollision(v Variant, opts Options) (*Estimate, error) {
	if err := validateOptions(v, opts); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers == 0 {
		workers = 1
	}

	counts := simulate(v, opts, workers)

	observations := float64(opts.Trials) * float64(opts.Buckets)
	est := &Estimate{
		Variant:       v,
		Modulus:       opts.Modulus,
		Trials:        opts.Trials,
		Probabilities: make([]float64, opts.Modulus),
	}
	for r, c := range counts {
		p := float64(c) / observations
		est.Probabilities[r] = p
		est.TotalMass += p
		if p > est.MaxProbability {
			est.MaxProbability = p
			est.MaxResidue = r
		}
	}
	est.MedianProbability = median(est.Probabilities)
	est.Unstable = math.Abs(est.TotalMass-1) > MassTolerance
	est.WorstCaseSecurityLevel = -float64(opts.Buckets) * math.Log2(est.MaxProbability)
	est.TheoreticalSecurityLevel = float64(opts.Buckets) * math.Log2(float64(opts.Modulus))

	if opts.Metrics != nil {
		opts.Metrics.SimulationTrials.Add(float64(opts.Trials))
	}
	if est.Unstable {
		logger.Warnf("checksum: %s mod %d total mass %.9f deviates beyond tolerance; rerun with more trials",
			v, opts.Modulus, est.TotalMass)
	}
	logger.Debugf("checksum: %s mod %d max p=%.6g at %d over %d trials",
		v, opts.Modulus, est.MaxProbability, est.MaxResidue, opts.Trials)
	return est, nil
}

// simulate distributes the trials across workers and sums their residue
// counts. Summation is order-insensitive, so the merge cannot disturb the
// estimate; worker seeds come from a SHAKE256 expansion of the master
// seed, so the partition itself is reproducible.
func simulate(v Variant, opts Options, workers int) []uint64 {
	seeds := expandSeeds(opts.Seed, workers)
	share := opts.Trials / workers

	results := make([][]uint64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		trials := share
		if w == workers-1 {
			trials += opts.Trials % workers
		}
		wg.Add(1)
		go func(w, trials int) {
			defer wg.Done()
			results[w] = runTrials(v, opts, trials, seeds[w])
		}(w, trials)
	}
	wg.Wait()

	counts := make([]uint64, opts.Modulus)
	for _, part := range results {
		for r, c := range part {
			counts[r] += c
		}
	}
	return counts
}

// runTrials is one worker's share of the simulation.
func runTrials(v Variant, opts Options, trials int, seed int64) []uint64 {
	rng := rand.New(rand.NewSource(seed))
	draws := opts.MessageBits / 4
	// The zero-draw randomization applies only to the number-sum mod-256
	// variant; the asymmetry against the mod-128 variants is preserved
	// from the construction's original analysis.
	randomizeEmpty := v == NumberSum && opts.Modulus == 256

	// Decimal digit sums of the 1-based draw positions.
	var digitSums []int
	if v == DigitSum {
		digitSums = make([]int, draws)
		for i := range digitSums {
			digitSums[i] = decimalDigitSum(i + 1)
		}
	}

	counts := make([]uint64, opts.Modulus)
	sums := make([]int, opts.Buckets)
	hits := make([]int, opts.Buckets)
	for t := 0; t < trials; t++ {
		for b := range sums {
			sums[b] = 0
			hits[b] = 0
		}
		for i := 0; i < draws; i++ {
			b := rng.Intn(opts.Buckets)
			if v == DigitSum {
				sums[b] += digitSums[i]
			} else {
				sums[b] += i
			}
			sums[b] %= opts.Modulus
			hits[b]++
		}
		for b := 0; b < opts.Buckets; b++ {
			r := sums[b]
			if randomizeEmpty && hits[b] == 0 {
				r = rng.Intn(opts.Modulus)
			}
			counts[r]++
		}
	}
	return counts
}

// expandSeeds derives one RNG seed per worker from the master seed.
func expandSeeds(seed uint64, workers int) []int64 {
	shake := sha3.NewShake256()
	var master [8]byte
	binary.LittleEndian.PutUint64(master[:], seed)
	shake.Write(master[:])

	seeds := make([]int64, workers)
	var buf [8]byte
	for i := range seeds {
		shake.Read(buf[:])
		seeds[i] = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return seeds
}

// decimalDigitSum sums the base-10 digits of n.
func decimalDigitSum(n int) int {
	s := 0
	for n > 0 {
		s += n % 10
		n /= 10
	}
	return s
}

// median returns the median of the table, averaging the two middle values
// for even lengths.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// validateOptions checks the simulation shape.
func validateOptions(v Variant, opts Options) error {
	if v != DigitSum && v != NumberSum {
		return fmt.Errorf("%w: unknown variant %d", ErrOptions, int(v))
	}
	if opts.Trials < 1 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrOptions, opts.Trials)
	}
	if opts.Buckets < 1 {
		return fmt.Errorf("%w: buckets must be positive, got %d", ErrOptions, opts.Buckets)
	}
	if opts.MessageBits < 4 || opts.MessageBits%4 != 0 {
		return fmt.Errorf("%w: message bits must be a positive multiple of 4, got %d", ErrOptions, opts.MessageBits)
	}
	if opts.Modulus < 2 {
		return fmt.Errorf("%w: modulus must be at least 2, got %d", ErrOptions, opts.Modulus)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrOptions, opts.Workers)
	}
	return nil
}
