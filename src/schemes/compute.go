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

// sigcost/src/schemes/compute.go
package schemes

import (
	"fmt"

	"github.com/sphinx-core/sigcost/src/params"
)

// Compute maps a scheme parameter tuple to its cost metrics. Structural
// constraints are checked here so the per-family calculators stay pure
// transcriptions of the published cost relations.
func Compute(cfg params.Config, kind Kind, p Params) (CostMetrics, error) {
	if err := cfg.Validate(); err != nil {
		return CostMetrics{}, err
	}
	if err := validate(kind, p); err != nil {
		return CostMetrics{}, err
	}

	switch kind {
	case KindSingleTree:
		return singleTree(cfg, p.Height, p.CachedLayer), nil
	case KindHybrid:
		return hybrid(cfg), nil
	case KindShallowDeep:
		return shallowDeep(cfg, p.Shallow, p.Deep), nil
	case KindChecksumChain:
		return checksumChain(cfg, p.ChainLength, p.Multiplier), nil
	case KindChecksumTree:
		return checksumTree(cfg, p.ChainLength, p.Height, p.CachedLayer), nil
	case KindNumericBaseline:
		return numericBaseline(cfg), nil
	default:
		return CostMetrics{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// validate checks the parameter subset each family reads.
func validate(kind Kind, p Params) error {
	switch kind {
	case KindSingleTree:
		if p.Height < 0 {
			return fmt.Errorf("%w: height=%d", ErrNegativeHeight, p.Height)
		}
		if p.CachedLayer < 0 || p.CachedLayer > p.Height {
			return fmt.Errorf("%w: cached=%d height=%d", ErrCachedLayerDepth, p.CachedLayer, p.Height)
		}
	case KindShallowDeep:
		if p.Shallow < 0 {
			return fmt.Errorf("%w: shallow=%d", ErrNegativeHeight, p.Shallow)
		}
		if p.Deep < 0 {
			return fmt.Errorf("%w: deep=%d", ErrNegativeHeight, p.Deep)
		}
	case KindChecksumChain:
		if p.ChainLength < 1 {
			return fmt.Errorf("%w: length=%d", ErrChainLength, p.ChainLength)
		}
		if p.Multiplier < 1 {
			return fmt.Errorf("%w: multiplier=%d", ErrMultiplier, p.Multiplier)
		}
	case KindChecksumTree:
		if p.ChainLength < 1 {
			return fmt.Errorf("%w: length=%d", ErrChainLength, p.ChainLength)
		}
		if p.Height < 0 {
			return fmt.Errorf("%w: height=%d", ErrNegativeHeight, p.Height)
		}
		if p.CachedLayer < 0 || p.CachedLayer > p.Height {
			return fmt.Errorf("%w: cached=%d height=%d", ErrCachedLayerDepth, p.CachedLayer, p.Height)
		}
	case KindHybrid, KindNumericBaseline:
		// No tunable parameters.
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	return nil
}
