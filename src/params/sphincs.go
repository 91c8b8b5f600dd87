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

// sigcost/src/params/sphincs.go
package params

import (
	"errors"
	"math"

	"github.com/kasperdi/SPHINCSPLUS-golang/parameters"
)

// SPHINCSReference wraps a standardized SPHINCS+ parameter set so the
// comparison tables can show a stateless baseline row next to the modeled
// stateful schemes.
type SPHINCSReference struct {
	Name   string
	Params *parameters.Parameters
}

// NewSPHINCSReference192f initializes the SHAKE256-192f-robust parameter set.
func NewSPHINCSReference192f() (*SPHINCSReference, error) {
	p := parameters.MakeSphincsPlusSHAKE256192fRobust(false)
	if p == nil {
		return nil, errors.New("params: failed to initialize SPHINCS+ parameters")
	}
	return &SPHINCSReference{Name: "SPHINCS+-SHAKE256-192f", Params: p}, nil
}

// NewSPHINCSReference256f initializes the SHAKE256-256f-robust parameter set.
func NewSPHINCSReference256f() (*SPHINCSReference, error) {
	p := parameters.MakeSphincsPlusSHAKE256256fRobust(false)
	if p == nil {
		return nil, errors.New("params: failed to initialize SPHINCS+ parameters")
	}
	return &SPHINCSReference{Name: "SPHINCS+-SHAKE256-256f", Params: p}, nil
}

// SignatureBytes derives the full signature size from the parameter set:
// randomizer + FORS (K trees of height A plus one secret value each) +
// hypertree authentication paths and WOTS signatures across D layers.
func (r *SPHINCSReference) SignatureBytes() float64 {
	p := r.Params
	return float64((1 + p.K*(p.A+1) + p.H + p.D*p.Len) * p.N)
}

// PublicKeyBytes is the public seed plus the hypertree root.
func (r *SPHINCSReference) PublicKeyBytes() float64 {
	return float64(2 * r.Params.N)
}

// SecretKeyBytes is the secret seed and PRF key plus the embedded public key.
func (r *SPHINCSReference) SecretKeyBytes() float64 {
	return float64(4 * r.Params.N)
}

// Signatures is the number of signatures the set is parameterized for
// before few-time-security degrades, 2^H leaves in the hypertree.
func (r *SPHINCSReference) Signatures() float64 {
	return math.Pow(2, float64(r.Params.H))
}
