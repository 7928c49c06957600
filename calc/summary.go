package calc

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxYearGains totals the disposals realized in one tax year. Gains and
// Losses are both non-negative; Net is Gains minus Losses.
type TaxYearGains struct {
	Year      TaxYear
	Disposals int
	Gains     decimal.Decimal
	Losses    decimal.Decimal
}

func (g *TaxYearGains) Net() decimal.Decimal {
	return g.Gains.Sub(g.Losses)
}

// GainsSummary aggregates the whole run.
type GainsSummary struct {
	YearTotals map[TaxYear]*TaxYearGains
	Total      decimal.Decimal
}

func (s *GainsSummary) YearsSorted() []TaxYear {
	years := make([]TaxYear, 0, len(s.YearTotals))
	for year := range s.YearTotals {
		years = append(years, year)
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].EndYear < years[j].EndYear
	})
	return years
}

func SummarizeGains(results []*DisposalResult) *GainsSummary {
	summary := &GainsSummary{
		YearTotals: make(map[TaxYear]*TaxYearGains),
		Total:      decimal.Zero,
	}
	for _, r := range results {
		year := r.TaxYear()
		totals, ok := summary.YearTotals[year]
		if !ok {
			totals = &TaxYearGains{Year: year, Gains: decimal.Zero, Losses: decimal.Zero}
			summary.YearTotals[year] = totals
		}
		totals.Disposals++
		if r.Gain.IsNegative() {
			totals.Losses = totals.Losses.Add(r.Gain.Neg())
		} else {
			totals.Gains = totals.Gains.Add(r.Gain)
		}
		summary.Total = summary.Total.Add(r.Gain)
	}
	return summary
}
