package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/ledger"
)

// ErrInvalidSplitAmount is raised when a lot split is requested outside
// the open interval (0, quantity). It indicates corrupt upstream data or
// ordering, and aborts the run.
var ErrInvalidSplitAmount = errors.New("invalid split amount")

// Acquisition is a pending or matched purchase lot. Amount is the
// home-currency cost of the lot excluding Expenses. Tx is the originating
// ledger row, passed through unchanged on split.
type Acquisition struct {
	Date     date.Date
	Quantity decimal.Decimal
	Amount   decimal.Decimal
	Expenses decimal.Decimal
	Tx       *ledger.Transaction
}

func NewAcquisition(tx *ledger.Transaction) *Acquisition {
	return &Acquisition{
		Date:     tx.Date,
		Quantity: tx.Quantity,
		Amount:   tx.Value(),
		Expenses: tx.Expenses,
		Tx:       tx,
	}
}

// Disposal is a pending or processed sale lot. Amount is the
// home-currency proceeds excluding Expenses.
type Disposal struct {
	Date     date.Date
	Quantity decimal.Decimal
	Amount   decimal.Decimal
	Expenses decimal.Decimal
	Tx       *ledger.Transaction
}

func NewDisposal(tx *ledger.Transaction) *Disposal {
	return &Disposal{
		Date:     tx.Date,
		Quantity: tx.Quantity,
		Amount:   tx.Value(),
		Expenses: tx.Expenses,
		Tx:       tx,
	}
}

// splitLot reduces the lot described by quantity/amount/expenses down to
// q, returning the remainder portions. Amounts are pro-rated by the
// quantity ratio; the remainder is computed by subtraction so the two
// halves always sum exactly to the original.
func splitLot(quantity, amount, expenses, q decimal.Decimal) (
	keepAmount, keepExpenses, remAmount, remExpenses decimal.Decimal, err error) {

	if !q.IsPositive() || q.GreaterThanOrEqual(quantity) {
		err = fmt.Errorf("%w: %s of lot quantity %s", ErrInvalidSplitAmount, q, quantity)
		return
	}
	ratio := q.Div(quantity)
	keepAmount = amount.Mul(ratio)
	keepExpenses = expenses.Mul(ratio)
	remAmount = amount.Sub(keepAmount)
	remExpenses = expenses.Sub(keepExpenses)
	return
}

// Split reduces a down to quantity q and returns a new Acquisition
// holding the remainder. Fails unless 0 < q < a.Quantity.
func (a *Acquisition) Split(q decimal.Decimal) (*Acquisition, error) {
	keepAmount, keepExpenses, remAmount, remExpenses, err :=
		splitLot(a.Quantity, a.Amount, a.Expenses, q)
	if err != nil {
		return nil, err
	}
	remainder := &Acquisition{
		Date:     a.Date,
		Quantity: a.Quantity.Sub(q),
		Amount:   remAmount,
		Expenses: remExpenses,
		Tx:       a.Tx,
	}
	a.Quantity = q
	a.Amount = keepAmount
	a.Expenses = keepExpenses
	return remainder, nil
}

// Split reduces d down to quantity q and returns a new Disposal holding
// the remainder. Fails unless 0 < q < d.Quantity.
func (d *Disposal) Split(q decimal.Decimal) (*Disposal, error) {
	keepAmount, keepExpenses, remAmount, remExpenses, err :=
		splitLot(d.Quantity, d.Amount, d.Expenses, q)
	if err != nil {
		return nil, err
	}
	remainder := &Disposal{
		Date:     d.Date,
		Quantity: d.Quantity.Sub(q),
		Amount:   remAmount,
		Expenses: remExpenses,
		Tx:       d.Tx,
	}
	d.Quantity = q
	d.Amount = keepAmount
	d.Expenses = keepExpenses
	return remainder, nil
}

func (a *Acquisition) String() string {
	return fmt.Sprintf("<ACQUISITION %s quantity=%s amount=%s>", a.Date, a.Quantity, a.Amount)
}

func (d *Disposal) String() string {
	return fmt.Sprintf("<DISPOSAL %s quantity=%s amount=%s>", d.Date, d.Quantity, d.Amount)
}

// Rule identifies which statutory rule settled a disposal. The matching
// engine only ever produces SameDay and BedAndBreakfast; Section104 is
// assigned by the pool calculator to the leftovers.
type Rule int

const (
	RuleSameDay Rule = iota
	RuleBedAndBreakfast
	RuleSection104
)

func (r Rule) String() string {
	switch r {
	case RuleSameDay:
		return "SAME DAY"
	case RuleBedAndBreakfast:
		return "BED & BREAKFAST"
	case RuleSection104:
		return "SECTION 104"
	default:
		return "<invalid rule>"
	}
}

// DisposalMatch pairs one disposal with the acquisition that settled it.
// Both lots carry the same quantity (the engine splits before matching).
// Immutable once created.
type DisposalMatch struct {
	Rule        Rule
	Acquisition *Acquisition
	Disposal    *Disposal
}

func (m *DisposalMatch) String() string {
	return fmt.Sprintf("<MATCH %s %s against %s>", m.Rule, m.Disposal, m.Acquisition)
}
