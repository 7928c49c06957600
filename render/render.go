package render

import (
	"fmt"
	"io"

	tw "github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/calc"
)

type _PrintHelper struct {
	PrintAllDecimals bool
}

func (h _PrintHelper) CurrStr(val decimal.Decimal) string {
	if h.PrintAllDecimals {
		return val.String()
	}
	return val.StringFixed(2)
}

func (h _PrintHelper) PoundStr(val decimal.Decimal) string {
	return "£" + h.CurrStr(val)
}

func (h _PrintHelper) PlusMinusPound(val decimal.Decimal) string {
	if val.IsNegative() {
		return fmt.Sprintf("-£%s", h.CurrStr(val.Neg()))
	}
	return fmt.Sprintf("£%s", h.CurrStr(val))
}

type RenderTable struct {
	Header []string
	Rows   [][]string
	Footer []string
	Notes  []string
}

// SummaryTableModel renders the per-tax-year totals.
func SummaryTableModel(summary *calc.GainsSummary, fullPrecision bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"Tax Year", "Disposals", "Gains", "Losses", "Net Gain"}

	ph := _PrintHelper{PrintAllDecimals: fullPrecision}

	for _, year := range summary.YearsSorted() {
		totals := summary.YearTotals[year]
		table.Rows = append(table.Rows, []string{
			year.String(),
			fmt.Sprintf("%d", totals.Disposals),
			ph.PoundStr(totals.Gains),
			ph.PoundStr(totals.Losses),
			ph.PlusMinusPound(totals.Net()),
		})
	}
	table.Footer = []string{"", "", "", "Total", ph.PlusMinusPound(summary.Total)}
	return table
}

// DisposalsTableModel renders one row per settled disposal, in the order
// the calculator resolved them.
func DisposalsTableModel(result *calc.Result, fullPrecision bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"Date", "Asset", "Rule", "Quantity", "Proceeds", "Cost", "Gain"}

	ph := _PrintHelper{PrintAllDecimals: fullPrecision}

	sawLeftoverAcquisitions := false
	for _, assetResult := range result.AssetResults {
		for _, d := range assetResult.Disposals {
			table.Rows = append(table.Rows, []string{
				d.Date.String(),
				d.Asset,
				d.Rule.String(),
				d.Quantity.String(),
				ph.PoundStr(d.Proceeds),
				ph.PoundStr(d.Cost),
				ph.PlusMinusPound(d.Gain),
			})
		}
		if len(assetResult.State.PendingAcquisitions) > 0 {
			sawLeftoverAcquisitions = true
		}
	}

	if sawLeftoverAcquisitions {
		table.Notes = append(table.Notes,
			" Undisposed acquisitions remain in the section 104 pool and carry no gain.")
	}
	return table
}

func PrintRenderTable(title string, tableModel *RenderTable, writer io.Writer) {
	fmt.Fprintf(writer, "%s\n", title)

	table := tw.NewWriter(writer)
	table.SetHeader(tableModel.Header)
	table.SetBorder(false)
	table.SetRowLine(true)

	for _, row := range tableModel.Rows {
		table.Append(row)
	}
	if len(tableModel.Footer) > 0 {
		table.SetFooter(tableModel.Footer)
	}

	table.Render()

	for _, note := range tableModel.Notes {
		fmt.Fprintln(writer, note)
	}
}

// Report writes the full text report: summary first, then the disposal
// detail.
func Report(result *calc.Result, fullPrecision bool, writer io.Writer) {
	PrintRenderTable("Capital gains summary", SummaryTableModel(result.Summary, fullPrecision), writer)
	fmt.Fprintln(writer, "")
	PrintRenderTable("Disposals", DisposalsTableModel(result, fullPrecision), writer)
}
