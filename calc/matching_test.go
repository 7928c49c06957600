package calc_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/octo47/cgtcalc/calc"
	"github.com/octo47/cgtcalc/ledger"
	"github.com/octo47/cgtcalc/log"
)

func mkState(txs ...*ledger.Transaction) *calc.AssetState {
	entries := &ledger.AssetEntries{Asset: "TEST", Transactions: txs}
	return calc.NewAssetState(entries)
}

func runMatching(t *testing.T, state *calc.AssetState) {
	t.Helper()
	require.Nil(t, calc.NewMatchingProcessor(state, log.NullLogger{}).Process())
}

func acquisitionQuantity(state *calc.AssetState) decimal.Decimal {
	sum := state.PendingAcquisitionQuantity()
	for _, a := range state.MatchedAcquisitions {
		sum = sum.Add(a.Quantity)
	}
	return sum
}

func disposalQuantity(state *calc.AssetState) decimal.Decimal {
	sum := state.PendingDisposalQuantity()
	for _, d := range state.ProcessedDisposals {
		sum = sum.Add(d.Quantity)
	}
	return sum
}

// requireConserved checks that matching neither created nor destroyed
// quantity, and that match quantities line up on both sides.
func requireConserved(t *testing.T, state *calc.AssetState, acquired, disposed string) {
	t.Helper()
	rq := require.New(t)
	rq.True(acquisitionQuantity(state).Equal(dec(acquired)),
		"acquisitions: got %s, want %s", acquisitionQuantity(state), acquired)
	rq.True(disposalQuantity(state).Equal(dec(disposed)),
		"disposals: got %s, want %s", disposalQuantity(state), disposed)
	for _, m := range state.DisposalMatches {
		rq.True(m.Acquisition.Quantity.Equal(m.Disposal.Quantity),
			"match quantities differ: %s", m)
	}
	rq.Len(state.MatchedAcquisitions, len(state.DisposalMatches))
	rq.Len(state.ProcessedDisposals, len(state.DisposalMatches))
}

func TestSameDayExactMatch(t *testing.T) {
	rq := require.New(t)

	state := mkState(
		mkBuy(mkDate(time.January, 1), "100", "10", "0"),
		mkSell(mkDate(time.January, 1), "100", "12", "0"),
	)
	runMatching(t, state)

	rq.Len(state.DisposalMatches, 1)
	rq.Equal(calc.RuleSameDay, state.DisposalMatches[0].Rule)
	rq.True(state.DisposalMatches[0].Disposal.Quantity.Equal(dec("100")))
	rq.Empty(state.PendingAcquisitions)
	rq.Empty(state.PendingDisposals)
	requireConserved(t, state, "100", "100")
}

func TestSameDayTakesPriorityOverBedAndBreakfast(t *testing.T) {
	rq := require.New(t)

	// The same-date pair is also inside the 30 day window; the tag must
	// still be same-day.
	state := mkState(
		mkBuy(mkDate(time.January, 1), "100", "10", "0"),
		mkSell(mkDate(time.January, 1), "100", "12", "0"),
	)
	runMatching(t, state)

	rq.Len(state.DisposalMatches, 1)
	rq.Equal(calc.RuleSameDay, state.DisposalMatches[0].Rule)
}

func TestBedAndBreakfastWindowBoundary(t *testing.T) {
	rq := require.New(t)

	// Acquisition exactly 30 days after the disposal: eligible.
	state := mkState(
		mkSell(mkDate(time.January, 1), "10", "12", "0"),
		mkBuy(mkDate(time.January, 31), "10", "10", "0"),
	)
	runMatching(t, state)
	rq.Len(state.DisposalMatches, 1)
	rq.Equal(calc.RuleBedAndBreakfast, state.DisposalMatches[0].Rule)
	rq.Empty(state.PendingDisposals)

	// 31 days after: not eligible.
	state = mkState(
		mkSell(mkDate(time.January, 1), "10", "12", "0"),
		mkBuy(mkDate(time.February, 1), "10", "10", "0"),
	)
	runMatching(t, state)
	rq.Empty(state.DisposalMatches)
	rq.Len(state.PendingAcquisitions, 1)
	rq.Len(state.PendingDisposals, 1)
}

func TestAcquisitionBeforeDisposalNotBedAndBreakfast(t *testing.T) {
	rq := require.New(t)

	// The rule only reaches forward: an earlier acquisition stays in the
	// pool.
	state := mkState(
		mkBuy(mkDate(time.January, 1), "100", "10", "0"),
		mkSell(mkDate(time.January, 10), "100", "12", "0"),
	)
	runMatching(t, state)

	rq.Empty(state.DisposalMatches)
	rq.Len(state.PendingAcquisitions, 1)
	rq.Len(state.PendingDisposals, 1)
	requireConserved(t, state, "100", "100")
}

func TestDisposalSplitAcrossRules(t *testing.T) {
	rq := require.New(t)

	// 80 sold on Jan 1: 50 matches same-day, the 30 remainder is picked
	// up by the Jan 20 acquisition under bed and breakfast.
	state := mkState(
		mkBuy(mkDate(time.January, 1), "50", "10", "0"),
		mkSell(mkDate(time.January, 1), "80", "12", "0"),
		mkBuy(mkDate(time.January, 20), "30", "11", "0"),
	)
	runMatching(t, state)

	rq.Len(state.DisposalMatches, 2)
	rq.Equal(calc.RuleSameDay, state.DisposalMatches[0].Rule)
	rq.True(state.DisposalMatches[0].Disposal.Quantity.Equal(dec("50")))
	rq.Equal(calc.RuleBedAndBreakfast, state.DisposalMatches[1].Rule)
	rq.True(state.DisposalMatches[1].Disposal.Quantity.Equal(dec("30")))
	rq.Empty(state.PendingAcquisitions)
	rq.Empty(state.PendingDisposals)
	requireConserved(t, state, "80", "80")

	// The split pro-rated the disposal's proceeds: 80 units at 12.
	rq.True(state.DisposalMatches[0].Disposal.Amount.Equal(dec("600")))
	rq.True(state.DisposalMatches[1].Disposal.Amount.Equal(dec("360")))
}

func TestAcquisitionSplitLeavesRemainderPending(t *testing.T) {
	rq := require.New(t)

	state := mkState(
		mkSell(mkDate(time.January, 1), "40", "12", "0"),
		mkBuy(mkDate(time.January, 5), "100", "10", "0"),
	)
	runMatching(t, state)

	rq.Len(state.DisposalMatches, 1)
	match := state.DisposalMatches[0]
	rq.Equal(calc.RuleBedAndBreakfast, match.Rule)
	rq.True(match.Acquisition.Quantity.Equal(dec("40")))
	rq.True(match.Acquisition.Amount.Equal(dec("400")))

	rq.Len(state.PendingAcquisitions, 1)
	rq.True(state.PendingAcquisitions[0].Quantity.Equal(dec("60")))
	rq.True(state.PendingAcquisitions[0].Amount.Equal(dec("600")))
	rq.Empty(state.PendingDisposals)
	requireConserved(t, state, "100", "40")
}

func TestOneAcquisitionCoversSuccessiveDisposals(t *testing.T) {
	rq := require.New(t)

	state := mkState(
		mkSell(mkDate(time.January, 1), "30", "12", "0"),
		mkSell(mkDate(time.January, 2), "30", "12", "0"),
		mkBuy(mkDate(time.January, 20), "50", "10", "0"),
	)
	runMatching(t, state)

	rq.Len(state.DisposalMatches, 2)
	rq.True(state.DisposalMatches[0].Disposal.Quantity.Equal(dec("30")))
	rq.True(state.DisposalMatches[1].Disposal.Quantity.Equal(dec("20")))
	for _, m := range state.DisposalMatches {
		rq.Equal(calc.RuleBedAndBreakfast, m.Rule)
	}

	rq.Empty(state.PendingAcquisitions)
	rq.Len(state.PendingDisposals, 1)
	rq.True(state.PendingDisposals[0].Quantity.Equal(dec("10")))
	rq.Equal(mkDate(time.January, 2), state.PendingDisposals[0].Date)
	requireConserved(t, state, "50", "60")
}

func TestMatchingMixedScenarioConserves(t *testing.T) {
	rq := require.New(t)

	state := mkState(
		mkBuy(mkDate(time.January, 1), "25", "10", "1"),
		mkSell(mkDate(time.January, 1), "70", "12", "2"),
		mkBuy(mkDate(time.January, 10), "15", "11", "1"),
		mkSell(mkDate(time.February, 15), "5", "13", "0"),
		mkBuy(mkDate(time.March, 10), "40", "9", "1"),
	)
	runMatching(t, state)

	requireConserved(t, state, "80", "75")

	// Matched disposals never reappear in the pending list.
	for _, processed := range state.ProcessedDisposals {
		for _, pending := range state.PendingDisposals {
			rq.False(processed == pending)
		}
	}
}
