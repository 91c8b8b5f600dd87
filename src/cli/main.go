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

// sigcost/src/cli/main.go

// Command sigcost renders the engine's cost tables on the console. It is
// a pure consumer of the engine's result types; all modeling lives in the
// library packages.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sphinx-core/sigcost/src/checksum"
	"github.com/sphinx-core/sigcost/src/forest"
	logger "github.com/sphinx-core/sigcost/src/log"
	"github.com/sphinx-core/sigcost/src/metrics"
	"github.com/sphinx-core/sigcost/src/optimize"
	"github.com/sphinx-core/sigcost/src/params"
	"github.com/sphinx-core/sigcost/src/schemes"
)

// forests is the fixed list of compositions compared in the forest report.
var forests = [][]int{
	{0, 1, 2, 3, 7},
	{2, 7},
	{0, 0, 0, 0, 0, 0, 0, 0, 7},
	{0, 0, 0, 0, 7},
	{0, 0, 0, 7},
	{0, 0, 7},
	{0, 0, 0, 0, 5, 5, 5, 5},
	{0, 1, 2, 3, 4, 5, 6},
	{0, 1, 2, 7},
	{0, 1, 7},
	{0, 2, 7},
	{0, 3, 7},
	{1, 2, 7},
	{1, 3, 7},
	{2, 3, 7},
	{3, 3, 7},
	{0, 3, 3, 7},
	{0, 7},
	{1, 7},
	{2, 7},
	{3, 7},
}

func main() {
	logger.Init()

	report := flag.String("report", "all", "Report to render: schemes, forest, optimize, checksum or all")
	configPath := flag.String("config", "", "Path to a JSON config overriding the default constants")
	failRate := flag.Float64("failRate", 0.5, "Failure rate for the forest report")
	trials := flag.Int("trials", 10_000_000, "Monte-Carlo trials for the checksum report")
	seed := flag.Uint64("seed", 1, "Monte-Carlo seed")
	workers := flag.Int("workers", runtime.NumCPU(), "Monte-Carlo worker goroutines")
	flag.Parse()

	cfg := params.DefaultConfig()
	if *configPath != "" {
		loaded, err := params.LoadConfig(*configPath)
		if err != nil {
			logger.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics()
	if err := m.Register(reg); err != nil {
		logger.Fatalf("Failed to register metrics: %v", err)
	}

	switch *report {
	case "schemes":
		renderSchemes(cfg)
	case "forest":
		renderForests(cfg, *failRate)
	case "optimize":
		runOptimizer(cfg, m)
	case "checksum":
		runChecksum(*trials, *seed, *workers, m)
	case "all":
		renderSchemes(cfg)
		renderForests(cfg, *failRate)
		runOptimizer(cfg, m)
		runChecksum(*trials, *seed, *workers, m)
	default:
		logger.Fatalf("Unknown report %q", *report)
	}
}

// renderSchemes prints the per-scheme cost comparison over the published
// parameter rows, plus SPHINCS+ reference rows for context.
func renderSchemes(cfg params.Config) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Scheme", "#Sigs", "Sig. size", "Keygen time", "Avg. Sign time", "State (C)", "State (S)"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	type row struct {
		kind schemes.Kind
		p    schemes.Params
	}
	rows := []row{
		{schemes.KindSingleTree, schemes.Params{Height: 0, CachedLayer: 0}},
		{schemes.KindSingleTree, schemes.Params{Height: 7, CachedLayer: 0}},
		{schemes.KindSingleTree, schemes.Params{Height: 7, CachedLayer: 2}},
		{schemes.KindSingleTree, schemes.Params{Height: 7, CachedLayer: 4}},
		{schemes.KindSingleTree, schemes.Params{Height: 7, CachedLayer: 6}},
		{schemes.KindSingleTree, schemes.Params{Height: 7, CachedLayer: 7}},
		{schemes.KindHybrid, schemes.Params{}},
		{schemes.KindShallowDeep, schemes.Params{Shallow: 0, Deep: 7}},
		{schemes.KindShallowDeep, schemes.Params{Shallow: 1, Deep: 7}},
		{schemes.KindShallowDeep, schemes.Params{Shallow: 2, Deep: 7}},
		{schemes.KindShallowDeep, schemes.Params{Shallow: 3, Deep: 7}},
		{schemes.KindShallowDeep, schemes.Params{Shallow: 4, Deep: 7}},
		{schemes.KindShallowDeep, schemes.Params{Shallow: 5, Deep: 7}},
		{schemes.KindChecksumChain, schemes.Params{ChainLength: 128, Multiplier: 1}},
		{schemes.KindChecksumChain, schemes.Params{ChainLength: 64, Multiplier: 2}},
		{schemes.KindChecksumChain, schemes.Params{ChainLength: 32, Multiplier: 4}},
		{schemes.KindChecksumChain, schemes.Params{ChainLength: 16, Multiplier: 8}},
		{schemes.KindChecksumChain, schemes.Params{ChainLength: 8, Multiplier: 16}},
		{schemes.KindChecksumChain, schemes.Params{ChainLength: 4, Multiplier: 32}},
		{schemes.KindChecksumChain, schemes.Params{ChainLength: 2, Multiplier: 64}},
		{schemes.KindChecksumTree, schemes.Params{ChainLength: 64, Height: 1, CachedLayer: 1}},
		{schemes.KindChecksumTree, schemes.Params{ChainLength: 33, Height: 2, CachedLayer: 2}},
		{schemes.KindChecksumTree, schemes.Params{ChainLength: 17, Height: 3, CachedLayer: 3}},
		{schemes.KindChecksumTree, schemes.Params{ChainLength: 9, Height: 4, CachedLayer: 4}},
		{schemes.KindChecksumTree, schemes.Params{ChainLength: 5, Height: 5, CachedLayer: 5}},
		{schemes.KindChecksumTree, schemes.Params{ChainLength: 3, Height: 6, CachedLayer: 0}},
		{schemes.KindChecksumTree, schemes.Params{ChainLength: 3, Height: 6, CachedLayer: 6}},
		{schemes.KindNumericBaseline, schemes.Params{}},
	}
	for _, r := range rows {
		m, err := schemes.Compute(cfg, r.kind, r.p)
		if err != nil {
			logger.Fatalf("Failed to compute %s: %v", r.kind, err)
		}
		table.Append([]string{
			m.Name,
			m.SignatureCount(),
			m.SizeString(),
			m.KeygenString(),
			m.SignString(),
			fmt.Sprintf("%d B", int(m.ClientState)),
			fmt.Sprintf("%d B", int(m.ServerState)),
		})
	}

	for _, mk := range []func() (*params.SPHINCSReference, error){
		params.NewSPHINCSReference192f,
		params.NewSPHINCSReference256f,
	} {
		ref, err := mk()
		if err != nil {
			logger.Fatalf("Failed to initialize SPHINCS+ reference: %v", err)
		}
		table.Append([]string{
			ref.Name,
			fmt.Sprintf("%.0g", ref.Signatures()),
			fmt.Sprintf("%d B", int(ref.SignatureBytes())),
			"-",
			"-",
			fmt.Sprintf("%d B", int(ref.SecretKeyBytes())),
			fmt.Sprintf("%d B", int(ref.PublicKeyBytes())),
		})
	}
	table.Render()
}

// renderForests prints the shallow/deep split rows and the fixed forest
// list under the requested failure rate.
func renderForests(cfg params.Config, failRate float64) {
	if size, err := forest.FallbackSize(cfg, failRate); err == nil {
		logger.Infof("Sig size w/o tree: %.1f B (PK %d B)", size, int(cfg.FalconPKSize))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Parameters", "Num sigs", "Sig size (Min)", "Sig size (Avg)", "Sig size (Max)", "Avg. sig time"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for s := 0; s <= 4; s++ {
		for d := 7; d <= 8; d++ {
			m, err := forest.EvaluateShallowDeep(cfg, s, d, failRate, 0)
			if err != nil {
				logger.Fatalf("Failed to evaluate shallow/deep s=%d d=%d: %v", s, d, err)
			}
			table.Append(forestRow(fmt.Sprintf("s=%d, d=%d", s, d), m))
		}
	}
	for _, heights := range forests {
		m, err := forest.Evaluate(cfg, heights, failRate)
		if err != nil {
			logger.Fatalf("Failed to evaluate forest %v: %v", heights, err)
		}
		table.Append(forestRow(joinHeights(heights), m))
	}
	table.Render()
}

// forestRow formats one forest metrics row.
func forestRow(name string, m forest.Metrics) []string {
	return []string{
		name,
		fmt.Sprintf("%d", int(m.Capacity)),
		fmt.Sprintf("%.1f B", m.MinSize),
		fmt.Sprintf("%.1f B", m.AvgSize),
		fmt.Sprintf("%.1f B", m.MaxSize),
		fmt.Sprintf("%.2f OTS", m.AvgSignTime),
	}
}

// runOptimizer searches the default bounds and logs the winner.
func runOptimizer(cfg params.Config, m *metrics.Metrics) {
	opts := optimize.DefaultOptions()
	opts.Metrics = m
	res, err := optimize.Search(cfg, opts)
	if err != nil {
		logger.Fatalf("Forest search failed: %v", err)
	}
	logger.Infof("%s was the best Merkle forest found, with a cost of %.2f (%d candidates)",
		joinHeights(res.Forest), res.Cost, res.Evaluated)
}

// runChecksum runs the three published estimator variants.
func runChecksum(trials int, seed uint64, workers int, m *metrics.Metrics) {
	type run struct {
		name    string
		variant checksum.Variant
		modulus int
	}
	runs := []run{
		{"Sum digits (mod 128)", checksum.DigitSum, 128},
		{"Sum numbers (m=512, mod 128)", checksum.NumberSum, 128},
		{"Sum numbers (m=512, mod 256)", checksum.NumberSum, 256},
	}
	for _, r := range runs {
		opts := checksum.DefaultOptions()
		opts.Trials = trials
		opts.Modulus = r.modulus
		opts.Seed = seed
		opts.Workers = workers
		opts.Metrics = m

		est, err := checksum.EstimateCollision(r.variant, opts)
		if err != nil {
			logger.Fatalf("Checksum estimate %s failed: %v", r.name, err)
		}
		logger.Infof("-- %s --", r.name)
		logger.Infof("Expected probability: %.8f", 1/float64(r.modulus))
		logger.Infof("Max probability: [%d] %.8f", est.MaxResidue, est.MaxProbability)
		logger.Infof("Median probability: %.8f", est.MedianProbability)
		logger.Infof("Sum of probabilities: %.9f (unstable=%v)", est.TotalMass, est.Unstable)
		logger.Infof("WC Security Level: %.2f", est.WorstCaseSecurityLevel)
		logger.Infof("Max theoretical SL: %d", int(est.TheoreticalSecurityLevel))
	}
}

// joinHeights renders a composition as "0-1-2-3-7".
func joinHeights(heights []int) string {
	parts := make([]string, len(heights))
	for i, h := range heights {
		parts[i] = fmt.Sprintf("%d", h)
	}
	return strings.Join(parts, "-")
}
