package calc

import (
	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/ledger"
)

// AssetState is the working set for one asset's run: pending lots in
// ascending date order, and the accumulated results. It is built once
// from the parsed ledger, mutated only by the matching processor, then
// read by the section 104 calculator.
type AssetState struct {
	Asset string

	PendingAcquisitions []*Acquisition
	PendingDisposals    []*Disposal
	AssetEvents         []*ledger.AssetEvent

	MatchedAcquisitions []*Acquisition
	ProcessedDisposals  []*Disposal
	DisposalMatches     []*DisposalMatch
}

// NewAssetState builds the state from one asset's ledger entries. The
// entries are expected date-sorted (ledger.GroupByAsset guarantees it).
func NewAssetState(entries *ledger.AssetEntries) *AssetState {
	state := &AssetState{
		Asset:       entries.Asset,
		AssetEvents: entries.Events,
	}
	for _, tx := range entries.Transactions {
		switch tx.Kind {
		case ledger.BUY:
			state.PendingAcquisitions = append(state.PendingAcquisitions, NewAcquisition(tx))
		case ledger.SELL:
			state.PendingDisposals = append(state.PendingDisposals, NewDisposal(tx))
		}
	}
	return state
}

// PendingAcquisitionQuantity sums the unmatched acquisition quantity.
func (s *AssetState) PendingAcquisitionQuantity() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range s.PendingAcquisitions {
		sum = sum.Add(a.Quantity)
	}
	return sum
}

// PendingDisposalQuantity sums the unmatched disposal quantity.
func (s *AssetState) PendingDisposalQuantity() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range s.PendingDisposals {
		sum = sum.Add(d.Quantity)
	}
	return sum
}
