package calc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/octo47/cgtcalc/calc"
	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/ledger"
	"github.com/octo47/cgtcalc/log"
)

func mkAssetTx(asset string, tx *ledger.Transaction) *ledger.Transaction {
	tx.Asset = asset
	return tx
}

func TestCalculatorMultiAsset(t *testing.T) {
	rq := require.New(t)

	l := &ledger.Ledger{Transactions: []*ledger.Transaction{
		mkAssetTx("GSK", mkBuy(mkDate(time.January, 1), "100", "10", "0")),
		mkAssetTx("GSK", mkSell(mkDate(time.June, 1), "100", "12", "0")),
		mkAssetTx("VTI", mkBuy(mkDate(time.January, 1), "10", "100", "0")),
		mkAssetTx("VTI", mkSell(mkDate(time.June, 2), "10", "90", "0")),
	}}

	result, err := calc.NewCalculator(log.NullLogger{}).Process(l)
	rq.Nil(err)
	rq.Len(result.AssetResults, 2)

	// Deterministic symbol order.
	rq.Equal("GSK", result.AssetResults[0].Asset)
	rq.Equal("VTI", result.AssetResults[1].Asset)

	rq.True(result.Summary.Total.Equal(dec("100")), "got %s", result.Summary.Total)
	year := calc.TaxYearOf(mkDate(time.June, 1))
	totals := result.Summary.YearTotals[year]
	rq.NotNil(totals)
	rq.Equal(2, totals.Disposals)
	rq.True(totals.Gains.Equal(dec("200")))
	rq.True(totals.Losses.Equal(dec("100")))
	rq.True(totals.Net().Equal(dec("100")))
}

func TestCalculatorSameDayEndToEnd(t *testing.T) {
	rq := require.New(t)

	l := &ledger.Ledger{Transactions: []*ledger.Transaction{
		mkBuy(mkDate(time.January, 1), "100", "10", "0"),
		mkSell(mkDate(time.January, 1), "100", "12", "0"),
	}}

	result, err := calc.NewCalculator(log.NullLogger{}).Process(l)
	rq.Nil(err)
	rq.Len(result.AssetResults, 1)

	state := result.AssetResults[0].State
	rq.Len(state.DisposalMatches, 1)
	rq.Equal(calc.RuleSameDay, state.DisposalMatches[0].Rule)
	rq.Empty(state.PendingAcquisitions)
	rq.Empty(state.PendingDisposals)

	rq.Len(result.AssetResults[0].Disposals, 1)
	rq.True(result.AssetResults[0].Disposals[0].Gain.Equal(dec("200")))
}

func TestCalculatorStopsOnError(t *testing.T) {
	rq := require.New(t)

	l := &ledger.Ledger{Transactions: []*ledger.Transaction{
		mkSell(mkDate(time.June, 1), "100", "12", "0"),
	}}

	result, err := calc.NewCalculator(log.NullLogger{}).Process(l)
	rq.NotNil(err)
	rq.Nil(result)
}

func TestSummarizeGainsSplitsYears(t *testing.T) {
	rq := require.New(t)

	results := []*calc.DisposalResult{
		{Asset: "A", Date: date.New(2020, time.April, 5), Rule: calc.RuleSection104,
			Quantity: dec("1"), Proceeds: dec("10"), Cost: dec("4"), Gain: dec("6")},
		{Asset: "A", Date: date.New(2020, time.April, 6), Rule: calc.RuleSection104,
			Quantity: dec("1"), Proceeds: dec("10"), Cost: dec("14"), Gain: dec("-4")},
	}
	summary := calc.SummarizeGains(results)

	rq.Len(summary.YearTotals, 2)
	years := summary.YearsSorted()
	rq.Equal(calc.TaxYear{EndYear: 2020}, years[0])
	rq.Equal(calc.TaxYear{EndYear: 2021}, years[1])
	rq.True(summary.YearTotals[years[0]].Gains.Equal(dec("6")))
	rq.True(summary.YearTotals[years[1]].Losses.Equal(dec("4")))
	rq.True(summary.Total.Equal(dec("2")))
}
