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

// sigcost/src/schemes/types.go
package schemes

import (
	"errors"
	"fmt"
)

// Kind selects one scheme family. The families form a closed set so every
// cost relation stays independently auditable against its published
// definition; there is deliberately no code sharing between the cases.
type Kind int

const (
	// KindSingleTree is a Merkle tree over WOTS leaves (XMSS-style) with
	// an optional verifier-independent cached layer.
	KindSingleTree Kind = iota

	// KindHybrid is a single one-time chain certifying an external
	// asymmetric (Falcon) key.
	KindHybrid

	// KindShallowDeep is a two-tree split: a fully server-cached shallow
	// tree backed by a deep tree for after exhaustion.
	KindShallowDeep

	// KindChecksumChain is a checksum-multiplicity chain without a tree
	// (CTSS).
	KindChecksumChain

	// KindChecksumTree is a checksum-multiplicity chain with a Merkle
	// tree on top (XCMSS).
	KindChecksumTree

	// KindNumericBaseline is the minimal single-use numeric-encoding
	// scheme (NOTS).
	KindNumericBaseline
)

// String returns the published scheme family name.
func (k Kind) String() string {
	switch k {
	case KindSingleTree:
		return "XMSS"
	case KindHybrid:
		return "Hybrid-WOTS-Falcon"
	case KindShallowDeep:
		return "Shallow-Deep"
	case KindChecksumChain:
		return "CTSS"
	case KindChecksumTree:
		return "XCMSS"
	case KindNumericBaseline:
		return "NOTS"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Params is the scheme parameter tuple. Each family reads only the fields
// that apply to it; Compute validates the relevant subset up front.
type Params struct {
	// Height is the Merkle tree height (KindSingleTree, KindChecksumTree).
	Height int

	// CachedLayer is the tree layer cached on the authenticator
	// (KindSingleTree, KindChecksumTree). Must not exceed Height.
	CachedLayer int

	// Shallow and Deep are the two tree heights of KindShallowDeep.
	Shallow int
	Deep    int

	// ChainLength is the checksum chain length (KindChecksumChain,
	// KindChecksumTree). Must be positive.
	ChainLength int

	// Multiplier is the checksum repetition multiplier (KindChecksumChain).
	// Must be positive.
	Multiplier int
}

// Error sentinels surfaced by Compute. Invalid parameters are always
// reported, never silently clamped.
var (
	ErrUnknownKind      = errors.New("schemes: unknown scheme kind")
	ErrNegativeHeight   = errors.New("schemes: tree height must be non-negative")
	ErrCachedLayerDepth = errors.New("schemes: cached layer must not exceed tree height")
	ErrChainLength      = errors.New("schemes: chain length must be positive")
	ErrMultiplier       = errors.New("schemes: multiplier must be positive")
)

// CostMetrics is the output record of every calculator. All wall-clock
// figures are operation counts divided by the configured hash rate and
// carry no error bound.
type CostMetrics struct {
	// Name identifies the scheme and its parameters, e.g. "XMSS (h=7, c=2)".
	Name string

	// Signatures is the total signing capacity. When Unbounded is set the
	// scheme signs once with the chain and then indefinitely with the
	// certified external key; Signatures then holds the chain count (1).
	Signatures float64
	Unbounded  bool

	// SigSize is the signature size in bytes. SigSizeAlt, when non-zero,
	// is the secondary size: the external signature for the hybrid scheme
	// and the deep-branch signature for the shallow/deep split.
	SigSize    float64
	SigSizeAlt float64

	// KeygenOps and SignOps are hash-operation counts; the Seconds fields
	// are the derived wall-clock estimates.
	KeygenOps     float64
	KeygenSeconds float64
	SignOps       float64
	SignSeconds   float64

	// ClientState and ServerState are the persistent bytes the
	// authenticator and the verifier retain between operations.
	ClientState float64
	ServerState float64
}

// SignatureCount renders the capacity column, using the "1/∞" form for
// the hybrid scheme.
func (m CostMetrics) SignatureCount() string {
	if m.Unbounded {
		return fmt.Sprintf("%d/∞", int(m.Signatures))
	}
	return fmt.Sprintf("%d", int(m.Signatures))
}

// SizeString renders the signature size column, joining primary and
// secondary sizes when both are present.
func (m CostMetrics) SizeString() string {
	if m.SigSizeAlt > 0 {
		return fmt.Sprintf("%d/%d B", int(m.SigSize), int(m.SigSizeAlt))
	}
	return fmt.Sprintf("%d B", int(m.SigSize))
}

// KeygenString renders the key-generation column as count plus estimate.
func (m CostMetrics) KeygenString() string {
	return fmt.Sprintf("%d (~%.2f s)", int(m.KeygenOps), m.KeygenSeconds)
}

// SignString renders the signing column as count plus estimate.
func (m CostMetrics) SignString() string {
	return fmt.Sprintf("%d (~%.2f s)", int(m.SignOps), m.SignSeconds)
}
