package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
)

type Kind int

const (
	NO_KIND Kind = iota
	BUY
	SELL
	DIVIDEND
	CAPRETURN
)

func (k Kind) String() string {
	switch k {
	case BUY:
		return "BUY"
	case SELL:
		return "SELL"
	case DIVIDEND:
		return "DIVIDEND"
	case CAPRETURN:
		return "CAPRETURN"
	default:
		return "<invalid kind>"
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return BUY, nil
	case "SELL":
		return SELL, nil
	case "DIVIDEND":
		return DIVIDEND, nil
	case "CAPRETURN":
		return CAPRETURN, nil
	}
	return NO_KIND, fmt.Errorf("invalid transaction kind %q", s)
}

// Transaction is one BUY or SELL row from the ledger. Price and Expenses
// are already converted to the home currency.
type Transaction struct {
	Kind     Kind
	Date     date.Date
	Asset    string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Expenses decimal.Decimal
}

// Value is the headline money amount of the transaction, excluding
// expenses.
func (t *Transaction) Value() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

func (t *Transaction) String() string {
	return fmt.Sprintf("<%s %s %s quantity=%s price=%s expenses=%s>",
		t.Kind, t.Asset, t.Date, t.Quantity, t.Price, t.Expenses)
}

// AssetEvent is a DIVIDEND or CAPRETURN row: a pool cost adjustment
// rather than an acquisition or disposal.
type AssetEvent struct {
	Kind     Kind
	Date     date.Date
	Asset    string
	Quantity decimal.Decimal
	Value    decimal.Decimal
}

func (e *AssetEvent) String() string {
	return fmt.Sprintf("<%s %s %s quantity=%s value=%s>",
		e.Kind, e.Asset, e.Date, e.Quantity, e.Value)
}

// Ledger is the full parsed input, ungrouped.
type Ledger struct {
	Transactions []*Transaction
	Events       []*AssetEvent
}

// AssetEntries is the per-asset slice of the ledger handed to the
// calculator: date-sorted transactions plus date-sorted pool events.
type AssetEntries struct {
	Asset        string
	Transactions []*Transaction
	Events       []*AssetEvent
}

// GroupByAsset partitions the ledger per asset, sorting each group by
// date. Sorting is stable so same-date rows keep their ledger order.
func (l *Ledger) GroupByAsset() map[string]*AssetEntries {
	byAsset := make(map[string]*AssetEntries)
	entries := func(asset string) *AssetEntries {
		e, ok := byAsset[asset]
		if !ok {
			e = &AssetEntries{Asset: asset}
			byAsset[asset] = e
		}
		return e
	}
	for _, tx := range l.Transactions {
		e := entries(tx.Asset)
		e.Transactions = append(e.Transactions, tx)
	}
	for _, event := range l.Events {
		e := entries(event.Asset)
		e.Events = append(e.Events, event)
	}
	for _, e := range byAsset {
		sort.SliceStable(e.Transactions, func(i, j int) bool {
			return e.Transactions[i].Date.Before(e.Transactions[j].Date)
		})
		sort.SliceStable(e.Events, func(i, j int) bool {
			return e.Events[i].Date.Before(e.Events[j].Date)
		})
	}
	return byAsset
}

// Assets lists the asset symbols present in the ledger, sorted.
func (l *Ledger) Assets() []string {
	seen := make(map[string]bool)
	assets := make([]string, 0, 8)
	for _, tx := range l.Transactions {
		if !seen[tx.Asset] {
			seen[tx.Asset] = true
			assets = append(assets, tx.Asset)
		}
	}
	for _, event := range l.Events {
		if !seen[event.Asset] {
			seen[event.Asset] = true
			assets = append(assets, event.Asset)
		}
	}
	sort.Strings(assets)
	return assets
}
