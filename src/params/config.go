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

// sigcost/src/params/config.go
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Hash rates in operations per second for the devices the model has been
// calibrated against. The rate only scales the cosmetic wall-clock columns,
// never an operation count.
const (
	// HashRateNRF52840Software is SHA-256 in software on an nRF52840-DK.
	HashRateNRF52840Software = 7407

	// HashRateNRF52840CryptoCell is the same board using the CryptoCell 310.
	HashRateNRF52840CryptoCell = 7407 * 46

	// HashRateLaptop is a mid-range laptop CPU (AMD Ryzen 5 4600H).
	HashRateLaptop = 10_989_000
)

var (
	// ErrInvalidConfig indicates a structurally invalid Config value.
	ErrInvalidConfig = errors.New("params: invalid config")
)

// Config carries the global scheme constants shared by every calculator,
// the forest model and the checksum estimator. A Config is an immutable
// value threaded explicitly into each operation; there is no package-level
// state, so parallel analyses with different constants never interfere.
type Config struct {
	// HashRate is the assumed hash throughput in operations per second.
	HashRate float64 `json:"hashRate"`

	// N is the hash output size in bytes. It doubles as the per-node size
	// of Merkle authentication data in the forest model.
	N float64 `json:"hashSize"`

	// M is the message digest size in bytes.
	M float64 `json:"digestSize"`

	// W is the Winternitz chain width (number of positions per chain).
	W int `json:"chainWidth"`

	// X is the digest chain multiplier; the digest contributes M*X chains.
	X int `json:"digestMultiplier"`

	// L2 is the number of checksum chains appended to the digest chains.
	L2 float64 `json:"checksumChains"`

	// FalconPKSize is the external public key size in bytes held by the
	// verifier in the hybrid scheme.
	FalconPKSize float64 `json:"falconPKSize"`

	// FalconSigSize is the external signature size in bytes reported
	// alongside the hybrid chain signature.
	FalconSigSize float64 `json:"falconSigSize"`

	// OTSSize is the base one-time signature size in bytes used by the
	// forest model before authentication-path overhead.
	OTSSize float64 `json:"otsSize"`

	// FallbackSigSize is the external signature size used when a signer
	// without a tree falls back to its certified asymmetric key.
	FallbackSigSize float64 `json:"fallbackSigSize"`
}

// DefaultConfig returns the constants the model was originally published
// with: a 128-bit hash, w=16 chains and the nRF52840 CryptoCell hash rate.
func DefaultConfig() Config {
	return Config{
		HashRate:        HashRateNRF52840CryptoCell,
		N:               128 / 8,
		M:               128 / 8,
		W:               16,
		X:               2,
		L2:              3,
		FalconPKSize:    897,
		FalconSigSize:   690,
		OTSSize:         405, // w=64 WOTS signature; 592 for w=16, 320 for w=256
		FallbackSigSize: 512,
	}
}

// L1 is the number of message-digest-derived chains.
func (c Config) L1() float64 {
	return c.M * float64(c.X)
}

// L is the total chain count, digest chains plus checksum chains.
func (c Config) L() float64 {
	return c.L1() + c.L2
}

// Validate reports whether the constants are structurally usable.
func (c Config) Validate() error {
	switch {
	case c.HashRate <= 0:
		return fmt.Errorf("%w: hash rate must be positive, got %v", ErrInvalidConfig, c.HashRate)
	case c.N <= 0:
		return fmt.Errorf("%w: hash size must be positive, got %v", ErrInvalidConfig, c.N)
	case c.M <= 0:
		return fmt.Errorf("%w: digest size must be positive, got %v", ErrInvalidConfig, c.M)
	case c.W < 2:
		return fmt.Errorf("%w: chain width must be at least 2, got %d", ErrInvalidConfig, c.W)
	case c.X < 1:
		return fmt.Errorf("%w: digest multiplier must be positive, got %d", ErrInvalidConfig, c.X)
	case c.L2 < 0:
		return fmt.Errorf("%w: checksum chain count must be non-negative, got %v", ErrInvalidConfig, c.L2)
	case c.OTSSize <= 0:
		return fmt.Errorf("%w: base OTS size must be positive, got %v", ErrInvalidConfig, c.OTSSize)
	}
	return nil
}

// LoadConfig reads a Config from a JSON file.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("params: failed to open config %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("params: failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig writes a Config to a JSON file with indentation, matching the
// layout produced for other on-disk JSON artifacts.
func SaveConfig(cfg Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("params: failed to create config %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("params: failed to encode config: %w", err)
	}
	return nil
}
