package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/octo47/cgtcalc/calc"
	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/render"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mkResult() *calc.Result {
	disposals := []*calc.DisposalResult{
		{
			Asset: "GSK", Date: date.New(2020, time.June, 1), Rule: calc.RuleSameDay,
			Quantity: dec("100"), Proceeds: dec("1200"), Cost: dec("1000"), Gain: dec("200"),
		},
		{
			Asset: "GSK", Date: date.New(2020, time.July, 1), Rule: calc.RuleSection104,
			Quantity: dec("50"), Proceeds: dec("500"), Cost: dec("600"), Gain: dec("-100"),
		},
	}
	return &calc.Result{
		AssetResults: []*calc.AssetResult{
			{Asset: "GSK", State: &calc.AssetState{Asset: "GSK"}, Disposals: disposals},
		},
		Summary: calc.SummarizeGains(disposals),
	}
}

func TestSummaryTableModel(t *testing.T) {
	rq := require.New(t)

	table := render.SummaryTableModel(mkResult().Summary, false)
	rq.Equal([]string{"Tax Year", "Disposals", "Gains", "Losses", "Net Gain"}, table.Header)
	rq.Len(table.Rows, 1)
	rq.Equal([]string{"2020/2021", "2", "£200.00", "£100.00", "£100.00"}, table.Rows[0])
	rq.Equal("£100.00", table.Footer[4])
}

func TestDisposalsTableModel(t *testing.T) {
	rq := require.New(t)

	table := render.DisposalsTableModel(mkResult(), false)
	rq.Len(table.Rows, 2)
	rq.Equal([]string{"01/06/2020", "GSK", "SAME DAY", "100", "£1200.00", "£1000.00", "£200.00"},
		table.Rows[0])
	rq.Equal([]string{"01/07/2020", "GSK", "SECTION 104", "50", "£500.00", "£600.00", "-£100.00"},
		table.Rows[1])
	rq.Empty(table.Notes)
}

func TestReportWritesTables(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	render.Report(mkResult(), false, &buf)
	out := buf.String()
	rq.Contains(out, "Capital gains summary")
	rq.Contains(out, "Disposals")
	rq.Contains(out, "GSK")
	rq.Contains(out, "2020/2021")
}
