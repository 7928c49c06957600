package calc

import (
	"sort"

	"github.com/octo47/cgtcalc/ledger"
	"github.com/octo47/cgtcalc/log"
)

// AssetResult is one asset's settled run: the final state (matches plus
// unmatched leftovers) and the disposal results derived from it.
type AssetResult struct {
	Asset     string
	State     *AssetState
	Disposals []*DisposalResult
}

// Result is the output of a whole-ledger run.
type Result struct {
	AssetResults []*AssetResult
	Summary      *GainsSummary
}

// Calculator runs the full pipeline for every asset in a ledger: build
// state, match, then section 104. Assets are independent; this processes
// them serially in symbol order for deterministic output.
type Calculator struct {
	logger log.Logger
}

func NewCalculator(logger log.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// ProcessAsset runs matching and the section 104 calculator for a single
// asset's entries.
func (c *Calculator) ProcessAsset(entries *ledger.AssetEntries) (*AssetResult, error) {
	state := NewAssetState(entries)

	if err := NewMatchingProcessor(state, c.logger).Process(); err != nil {
		return nil, err
	}
	results, err := NewSection104Calculator(state, c.logger).Process()
	if err != nil {
		return nil, err
	}

	return &AssetResult{Asset: entries.Asset, State: state, Disposals: results}, nil
}

// Process runs every asset in the ledger and aggregates the gains.
// Errors are unrecoverable for the run; no partial result is returned.
func (c *Calculator) Process(l *ledger.Ledger) (*Result, error) {
	byAsset := l.GroupByAsset()
	assets := make([]string, 0, len(byAsset))
	for asset := range byAsset {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	result := &Result{}
	allDisposals := make([]*DisposalResult, 0, 16)
	for _, asset := range assets {
		assetResult, err := c.ProcessAsset(byAsset[asset])
		if err != nil {
			return nil, err
		}
		result.AssetResults = append(result.AssetResults, assetResult)
		allDisposals = append(allDisposals, assetResult.Disposals...)
	}
	result.Summary = SummarizeGains(allDisposals)
	return result, nil
}
