package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/fx"
)

// Parser turns ledger text into Transactions and AssetEvents, converting
// any foreign-currency amounts to the home currency as it goes.
//
// Row formats, whitespace separated, one row per line:
//
//	BUY       dd/mm/yyyy ASSET QUANTITY PRICE EXPENSES
//	SELL      dd/mm/yyyy ASSET QUANTITY PRICE EXPENSES
//	DIVIDEND  dd/mm/yyyy ASSET QUANTITY VALUE
//	CAPRETURN dd/mm/yyyy ASSET QUANTITY VALUE
//
// PRICE, EXPENSES and VALUE may carry a currency symbol ("$12.34");
// QUANTITY may not. Blank lines and lines starting with '#' are skipped.
type Parser struct {
	converter *fx.Converter
}

func NewParser(converter *fx.Converter) *Parser {
	return &Parser{converter: converter}
}

func (p *Parser) convert(d date.Date, field string) (decimal.Decimal, error) {
	value, ok, err := p.converter.Convert(d, field)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("no exchange rate for %q on or before %s", field, d)
	}
	return value, nil
}

func (p *Parser) parseRow(fields []string) (*Transaction, *AssetEvent, error) {
	kind, err := ParseKind(fields[0])
	if err != nil {
		return nil, nil, err
	}

	wantFields := 6
	if kind == DIVIDEND || kind == CAPRETURN {
		wantFields = 5
	}
	if len(fields) != wantFields {
		return nil, nil, fmt.Errorf("%s row must have %d fields, got %d",
			kind, wantFields, len(fields))
	}

	d, err := date.ParseLedger(fields[1])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date %q: %v", fields[1], err)
	}
	asset := fields[2]

	quantity, err := decimal.NewFromString(fields[3])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid quantity %q: %v", fields[3], err)
	}
	if !quantity.IsPositive() {
		return nil, nil, fmt.Errorf("quantity must be positive, got %q", fields[3])
	}

	switch kind {
	case BUY, SELL:
		price, err := p.convert(d, fields[4])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid price: %v", err)
		}
		expenses, err := p.convert(d, fields[5])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid expenses: %v", err)
		}
		tx := &Transaction{
			Kind: kind, Date: d, Asset: asset,
			Quantity: quantity, Price: price, Expenses: expenses,
		}
		return tx, nil, nil
	default:
		value, err := p.convert(d, fields[4])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid value: %v", err)
		}
		event := &AssetEvent{
			Kind: kind, Date: d, Asset: asset,
			Quantity: quantity, Value: value,
		}
		return nil, event, nil
	}
}

// Parse reads the whole ledger from r. desc names the source (usually a
// file name) for error messages.
func (p *Parser) Parse(r io.Reader, desc string) (*Ledger, error) {
	ledger := &Ledger{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tx, event, err := p.parseRow(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("Error parsing %s at line %d: %v", desc, lineNo, err)
		}
		if tx != nil {
			ledger.Transactions = append(ledger.Transactions, tx)
		}
		if event != nil {
			ledger.Events = append(ledger.Events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Error reading %s: %v", desc, err)
	}

	return ledger, nil
}
