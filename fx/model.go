package fx

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
)

// RateEvent is one observed exchange rate, effective from Date until the
// next event in the table. Rate converts one unit of the foreign currency
// into the home currency.
type RateEvent struct {
	Date date.Date
	Rate decimal.Decimal
}

func (e RateEvent) Equal(other RateEvent) bool {
	return e.Date.Equal(other.Date) && e.Rate.Equal(other.Rate)
}

func (e RateEvent) String() string {
	return fmt.Sprintf("%s : %s", e.Date.String(), e.Rate)
}

// RateTable holds the dated rate history for a single currency symbol
// (eg. "$"). Events are kept sorted ascending by date.
type RateTable struct {
	Symbol string
	events []RateEvent
}

func NewRateTable(symbol string, events []RateEvent) *RateTable {
	sorted := make([]RateEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return &RateTable{Symbol: symbol, events: sorted}
}

func (t *RateTable) Events() []RateEvent {
	return t.events
}

// Rate returns the rate of the latest event dated on or before d. ok is
// false when d precedes every event in the table. Callers must treat a
// missing rate as "cannot price this transaction", not as rate zero.
func (t *RateTable) Rate(d date.Date) (decimal.Decimal, bool) {
	// First event strictly after d.
	i := sort.Search(len(t.events), func(i int) bool {
		return t.events[i].Date.After(d)
	})
	if i == 0 {
		return decimal.Zero, false
	}
	return t.events[i-1].Rate, true
}

// Convert prices value (denominated in the table's currency) in the home
// currency as of d.
func (t *RateTable) Convert(d date.Date, value decimal.Decimal) (decimal.Decimal, bool) {
	rate, ok := t.Rate(d)
	if !ok {
		return decimal.Zero, false
	}
	return rate.Mul(value), true
}
