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

// sigcost/src/schemes/calculators.go
package schemes

import (
	"fmt"
	"math"

	"github.com/sphinx-core/sigcost/src/params"
)

// Each calculator below is a direct transcription of one published cost
// relation. They intentionally do not share formula code with each other.

// singleTree models a Merkle tree of the given height over WOTS leaves,
// with the top cachedLayer layers kept in authenticator state.
func singleTree(cfg params.Config, height, cachedLayer int) CostMetrics {
	l := cfg.L()
	w := float64(cfg.W)
	n := cfg.N

	sigs := math.Pow(2, float64(height))
	// +1 for public key, +1 for bitmask seed
	sigSize := (l + 1 + 1 + float64(height)) * n
	keygenOps := l * w * sigs
	// Signing amortizes nothing below the cached layer.
	signOps := l * w * math.Pow(2, float64(height-cachedLayer))

	return CostMetrics{
		Name:          fmt.Sprintf("XMSS (h=%d, c=%d)", height, cachedLayer),
		Signatures:    sigs,
		SigSize:       sigSize,
		KeygenOps:     keygenOps,
		KeygenSeconds: keygenOps / cfg.HashRate,
		SignOps:       signOps,
		SignSeconds:   signOps / cfg.HashRate,
		ClientState:   math.Pow(2, float64(cachedLayer))*n + n,
		ServerState:   n,
	}
}

// hybrid models one chain signature certifying an external Falcon key:
// one hash-based signature, then unlimited signatures under the
// certified key.
func hybrid(cfg params.Config) CostMetrics {
	l := cfg.L()
	w := float64(cfg.W)
	n := cfg.N

	// +1 for public key, +1 for bitmask seed
	sigSize := (l + 1 + 1) * n
	keygenOps := l * w
	// Half the chain width is revealed on average.
	signOps := l * (w / 2)

	return CostMetrics{
		Name:          "Hybrid-WOTS-Falcon",
		Signatures:    1,
		Unbounded:     true,
		SigSize:       sigSize,
		SigSizeAlt:    cfg.FalconSigSize,
		KeygenOps:     keygenOps,
		KeygenSeconds: keygenOps / cfg.HashRate,
		SignOps:       signOps,
		SignSeconds:   signOps / cfg.HashRate,
		ClientState:   n + n,
		ServerState:   n + cfg.FalconPKSize,
	}
}

// shallowDeep models a shallow tree assumed fully cached by the verifier,
// backed by a deep tree used only once the shallow one is exhausted.
func shallowDeep(cfg params.Config, shallow, deep int) CostMetrics {
	l := cfg.L()
	w := float64(cfg.W)
	n := cfg.N

	sigs := math.Pow(2, float64(shallow)) + math.Pow(2, float64(deep))
	// +1 for public key, +1 for bitmask seed, +1 for new pk
	sigSizeShallow := (l + 1 + 1 + 1) * n
	sigSizeDeep := (l + 1 + 1 + float64(deep)) * n
	keygenOps := l * w * sigs
	// Assume whole shallow subtree is cached on server
	signOps := l * (w / 2)

	return CostMetrics{
		Name:          fmt.Sprintf("Shallow-Deep (s=%d, d=%d)", shallow, deep),
		Signatures:    sigs,
		SigSize:       sigSizeShallow,
		SigSizeAlt:    sigSizeDeep,
		KeygenOps:     keygenOps,
		KeygenSeconds: keygenOps / cfg.HashRate,
		SignOps:       signOps,
		SignSeconds:   signOps / cfg.HashRate,
		ClientState:   n + n,
		// 1 pk for deep subtree, cache complete shallow subtree
		ServerState: n + n*math.Pow(2, float64(shallow)),
	}
}

// checksumChain models a checksum-multiplicity chain without a tree
// (CTSS). Signing gets cheaper over the key lifetime while verification
// gets more expensive, up to the keygen cost; late in the lifecycle that
// is a DoS and side-channel concern, which the averaged figures hide.
func checksumChain(cfg params.Config, chainLength, multiplier int) CostMetrics {
	l := cfg.L()
	w := float64(cfg.W)
	n := cfg.N
	cl := float64(chainLength)
	cm := float64(multiplier)

	// Signing and unsigning directions both count.
	sigs := cl * cm * 2
	// +1 for public key; multiplicity > 1 reveals one extra full chain-state vector.
	sigSize := (l+1)*n + math.Min(1, cm-1)*l*n
	keygenOps := l * w * cl * cm
	signOps := l * (w * cl / 2)

	// Minimal bit-width to encode a chain position across all L chains.
	chainPosBits := l * math.Ceil(math.Log2(w*cl))

	return CostMetrics{
		Name:          fmt.Sprintf("CTSS (l=%d, m=%d)", chainLength, multiplier),
		Signatures:    sigs,
		SigSize:       sigSize,
		KeygenOps:     keygenOps,
		KeygenSeconds: keygenOps / cfg.HashRate,
		SignOps:       signOps,
		SignSeconds:   signOps / cfg.HashRate,
		ClientState:   chainPosBits,
		ServerState:   chainPosBits + n,
	}
}

// checksumTree models a checksum-multiplicity chain with a Merkle tree on
// top (XCMSS).
func checksumTree(cfg params.Config, chainLength, height, cachedLayer int) CostMetrics {
	l := cfg.L()
	w := float64(cfg.W)
	n := cfg.N
	cl := float64(chainLength)
	leaves := math.Pow(2, float64(height))

	sigs := (cl*2 - 1) * leaves
	// +1 for public key
	sigSize := (l + 1 + float64(height)) * n
	keygenOps := l * w * cl * leaves
	signOps := l * (w * cl / 2) * math.Pow(2, float64(height-cachedLayer))

	// Minimal bit-width to encode a chain position across all L chains.
	chainPosBits := l * math.Ceil(math.Log2(w*cl))
	cacheBytes := math.Pow(2, float64(cachedLayer)) * n

	return CostMetrics{
		Name:          fmt.Sprintf("XCMSS (l=%d, h=%d, c=%d)", chainLength, height, cachedLayer),
		Signatures:    sigs,
		SigSize:       sigSize,
		KeygenOps:     keygenOps,
		KeygenSeconds: keygenOps / cfg.HashRate,
		SignOps:       signOps,
		SignSeconds:   signOps / cfg.HashRate,
		ClientState:   chainPosBits + cacheBytes + n,
		ServerState:   chainPosBits + n,
	}
}

// numericBaseline models the minimal single-use scheme (NOTS): a fixed
// numeric digit encoding of the digest, no tree and no checksum
// multiplicity.
func numericBaseline(cfg params.Config) CostMetrics {
	w := float64(cfg.W)
	n := cfg.N

	// Digit encoding of the 2M-byte digest plus one terminator symbol.
	symbols := 2*cfg.M*8/math.Log2(w) + 1
	// Both public and private chain halves are walked during generation.
	keygenOps := 2 * symbols * w
	signOps := symbols * w

	return CostMetrics{
		Name:          "NOTS",
		Signatures:    1,
		SigSize:       2 * w * n,
		KeygenOps:     keygenOps,
		KeygenSeconds: keygenOps / cfg.HashRate,
		SignOps:       signOps,
		SignSeconds:   signOps / cfg.HashRate,
		ClientState:   n,
		ServerState:   n,
	}
}
