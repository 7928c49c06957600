package fx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/log"
)

// DefaultHomeSymbol is the symbol of the filer's home currency. Amounts
// tagged with it, or with no symbol at all, pass through unconverted.
const DefaultHomeSymbol = "£"

// Converter resolves tagged monetary strings (eg. "$1,234.56") into
// home-currency amounts using the rate table registered for the symbol.
type Converter struct {
	logger     log.Logger
	homeSymbol string
	tables     map[string]*RateTable
}

func NewConverter(logger log.Logger, homeSymbol string, tables ...*RateTable) *Converter {
	bySymbol := make(map[string]*RateTable, len(tables))
	for _, table := range tables {
		bySymbol[table.Symbol] = table
	}
	return &Converter{logger: logger, homeSymbol: homeSymbol, tables: bySymbol}
}

func isValueRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == ','
}

// splitTagged separates "…$1,234.56…" into its symbol tag and bare value
// string. The symbol is whatever remains after the numeric characters are
// removed; either prefix or suffix placement is accepted.
func splitTagged(s string) (symbol string, value string) {
	var symBuilder, valBuilder strings.Builder
	for _, r := range s {
		if isValueRune(r) {
			valBuilder.WriteRune(r)
		} else {
			symBuilder.WriteRune(r)
		}
	}
	symbol = strings.TrimSpace(symBuilder.String())
	value = strings.ReplaceAll(valBuilder.String(), ",", "")
	return symbol, value
}

// Convert parses the tagged amount string and converts it to the home
// currency using the rate in effect at d. ok is false when a table exists
// for the symbol but holds no event on or before d.
func (c *Converter) Convert(d date.Date, amount string) (converted decimal.Decimal, ok bool, err error) {
	symbol, valueStr := splitTagged(amount)

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: %q", ErrInvalidValue, amount)
	}

	if symbol == "" || symbol == c.homeSymbol {
		return value, true, nil
	}

	table, found := c.tables[symbol]
	if !found {
		return decimal.Zero, false, fmt.Errorf("%w: %q", ErrUnknownCurrency, symbol)
	}
	converted, ok = table.Convert(d, value)
	if ok {
		c.logger.Debugf("Converted %s: %s -> %s using %s table", d, amount, converted, table.Symbol)
	}
	return converted, ok, nil
}

// HasTable reports whether a rate table is registered for symbol.
func (c *Converter) HasTable(symbol string) bool {
	_, ok := c.tables[symbol]
	return ok
}
