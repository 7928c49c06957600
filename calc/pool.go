package calc

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/ledger"
	"github.com/octo47/cgtcalc/log"
)

// DisposalResult is one settled disposal with its allowable cost and the
// rule that determined the cost basis.
type DisposalResult struct {
	Asset    string
	Date     date.Date
	Rule     Rule
	Quantity decimal.Decimal
	Proceeds decimal.Decimal // net of disposal expenses
	Cost     decimal.Decimal // allowable cost incl. acquisition expenses
	Gain     decimal.Decimal
}

func (r *DisposalResult) TaxYear() TaxYear {
	return TaxYearOf(r.Date)
}

// matchResult settles one DisposalMatch: the cost basis is the matched
// acquisition's cost plus its expenses.
func matchResult(asset string, m *DisposalMatch) *DisposalResult {
	proceeds := m.Disposal.Amount.Sub(m.Disposal.Expenses)
	cost := m.Acquisition.Amount.Add(m.Acquisition.Expenses)
	return &DisposalResult{
		Asset:    asset,
		Date:     m.Disposal.Date,
		Rule:     m.Rule,
		Quantity: m.Disposal.Quantity,
		Proceeds: proceeds,
		Cost:     cost,
		Gain:     proceeds.Sub(cost),
	}
}

// poolEntry is one step of the section 104 replay, in date order.
// Exactly one of acquisition, disposal or event is set.
type poolEntry struct {
	date        date.Date
	order       int // tie-break: acquisitions, then events, then disposals
	acquisition *Acquisition
	disposal    *Disposal
	event       *ledger.AssetEvent
}

// Section104Calculator consumes the leftovers of a matching run: the
// still-pending lots plus the pool cost adjustment events, replayed in
// date order against a running pool of quantity and cost.
type Section104Calculator struct {
	state  *AssetState
	logger log.Logger

	poolQuantity decimal.Decimal
	poolCost     decimal.Decimal
}

func NewSection104Calculator(state *AssetState, logger log.Logger) *Section104Calculator {
	return &Section104Calculator{
		state:        state,
		logger:       logger,
		poolQuantity: decimal.Zero,
		poolCost:     decimal.Zero,
	}
}

func (c *Section104Calculator) entries() []poolEntry {
	entries := make([]poolEntry, 0,
		len(c.state.PendingAcquisitions)+len(c.state.PendingDisposals)+len(c.state.AssetEvents))
	for _, a := range c.state.PendingAcquisitions {
		entries = append(entries, poolEntry{date: a.Date, order: 0, acquisition: a})
	}
	for _, event := range c.state.AssetEvents {
		entries = append(entries, poolEntry{date: event.Date, order: 1, event: event})
	}
	for _, d := range c.state.PendingDisposals {
		entries = append(entries, poolEntry{date: d.Date, order: 2, disposal: d})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].date.Equal(entries[j].date) {
			return entries[i].date.Before(entries[j].date)
		}
		return entries[i].order < entries[j].order
	})
	return entries
}

func (c *Section104Calculator) add(a *Acquisition) {
	c.poolQuantity = c.poolQuantity.Add(a.Quantity)
	c.poolCost = c.poolCost.Add(a.Amount).Add(a.Expenses)
	c.logger.Debugf("Pool %s: added %s, quantity=%s cost=%s",
		c.state.Asset, a, c.poolQuantity, c.poolCost)
}

func (c *Section104Calculator) adjust(event *ledger.AssetEvent) error {
	switch event.Kind {
	case ledger.DIVIDEND:
		c.poolCost = c.poolCost.Add(event.Value)
	case ledger.CAPRETURN:
		newCost := c.poolCost.Sub(event.Value)
		if newCost.IsNegative() {
			return fmt.Errorf(
				"capital return on %s of %s for %s exceeds the pool cost (%s)",
				event.Date, event.Value, event.Asset, c.poolCost)
		}
		c.poolCost = newCost
	default:
		return fmt.Errorf("unexpected asset event kind %s on %s", event.Kind, event.Date)
	}
	c.logger.Debugf("Pool %s: %s on %s, quantity=%s cost=%s",
		c.state.Asset, event.Kind, event.Date, c.poolQuantity, c.poolCost)
	return nil
}

func (c *Section104Calculator) dispose(d *Disposal) (*DisposalResult, error) {
	if d.Quantity.GreaterThan(c.poolQuantity) {
		return nil, fmt.Errorf(
			"disposal on %s of %s units of %s is more than the holding (%s)",
			d.Date, d.Quantity, c.state.Asset, c.poolQuantity)
	}
	cost := c.poolCost.Mul(d.Quantity).Div(c.poolQuantity)
	c.poolQuantity = c.poolQuantity.Sub(d.Quantity)
	if c.poolQuantity.IsZero() {
		// Flush rounding residue so an emptied pool carries no cost.
		cost = c.poolCost
		c.poolCost = decimal.Zero
	} else {
		c.poolCost = c.poolCost.Sub(cost)
	}

	proceeds := d.Amount.Sub(d.Expenses)
	result := &DisposalResult{
		Asset:    c.state.Asset,
		Date:     d.Date,
		Rule:     RuleSection104,
		Quantity: d.Quantity,
		Proceeds: proceeds,
		Cost:     cost,
		Gain:     proceeds.Sub(cost),
	}
	c.logger.Debugf("Pool %s: disposed %s, gain=%s, quantity=%s cost=%s",
		c.state.Asset, d, result.Gain, c.poolQuantity, c.poolCost)
	return result, nil
}

// Process settles the disposal matches and replays the leftovers,
// returning every DisposalResult for the asset sorted by disposal date.
func (c *Section104Calculator) Process() ([]*DisposalResult, error) {
	results := make([]*DisposalResult, 0,
		len(c.state.DisposalMatches)+len(c.state.PendingDisposals))

	for _, m := range c.state.DisposalMatches {
		results = append(results, matchResult(c.state.Asset, m))
	}

	for _, entry := range c.entries() {
		switch {
		case entry.acquisition != nil:
			c.add(entry.acquisition)
		case entry.event != nil:
			if err := c.adjust(entry.event); err != nil {
				return nil, err
			}
		case entry.disposal != nil:
			result, err := c.dispose(entry.disposal)
			if err != nil {
				return nil, err
			}
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})
	return results, nil
}
