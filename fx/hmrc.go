package fx

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/log"
)

// HMRC publishes one XML file of exchange rates per calendar month:
//
//	<exchangeRateMonthList Period="01/Oct/2021 to 31/Oct/2021">
//	  <exchangeRate>
//	    <countryCode>US</countryCode>
//	    <currencyCode>USD</currencyCode>
//	    <rateNew>1.3646</rateNew>
//	  </exchangeRate>
//	</exchangeRateMonthList>
//
// The file rate converts pounds into the foreign currency, so the table
// event records its reciprocal. The event's effective date is the start
// of the file's validity period.

const hmrcPeriodFormat = "02/Jan/2006"

// DefaultSymbolMap ties ledger currency symbols to the HMRC currency
// codes they are loaded from.
var DefaultSymbolMap = map[string]string{
	"$": "USD",
	"€": "EUR",
}

type hmrcExchangeRate struct {
	CountryCode  string `xml:"countryCode"`
	CurrencyCode string `xml:"currencyCode"`
	RateNew      string `xml:"rateNew"`
}

type hmrcMonthList struct {
	Period string             `xml:"Period,attr"`
	Rates  []hmrcExchangeRate `xml:"exchangeRate"`
}

// ParseMonthlyPeriod parses the Period attribute ("01/Oct/2021 to
// 31/Oct/2021") into the half-open validity range [from, to).
func ParseMonthlyPeriod(periodStr string) (from date.Date, to date.Date, err error) {
	fields := strings.Fields(strings.TrimSpace(periodStr))
	if len(fields) != 3 {
		return date.Date{}, date.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, periodStr)
	}
	from, err = date.Parse(hmrcPeriodFormat, fields[0])
	if err != nil {
		return date.Date{}, date.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, periodStr)
	}
	to, err = date.Parse(hmrcPeriodFormat, fields[2])
	if err != nil {
		return date.Date{}, date.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, periodStr)
	}
	return from, to.AddDays(1), nil
}

func parseMonthlyFile(data []byte, codes map[string]string) (map[string]RateEvent, error) {
	var monthList hmrcMonthList
	if err := xml.Unmarshal(data, &monthList); err != nil {
		return nil, err
	}

	from, _, err := ParseMonthlyPeriod(monthList.Period)
	if err != nil {
		return nil, err
	}

	events := make(map[string]RateEvent)
	for _, entry := range monthList.Rates {
		for symbol, code := range codes {
			if entry.CurrencyCode != code && entry.CountryCode != code {
				continue
			}
			rate, err := decimal.NewFromString(strings.TrimSpace(entry.RateNew))
			if err != nil || !rate.IsPositive() {
				return nil, fmt.Errorf("%w: %q rate %q", ErrInvalidValue, code, entry.RateNew)
			}
			// File rates are pound -> foreign; we convert the other way.
			events[symbol] = RateEvent{Date: from, Rate: decimal.NewFromInt(1).Div(rate)}
		}
	}
	return events, nil
}

// LoadMonthlyRateDir reads every HMRC monthly file in dir and builds one
// merged RateTable per symbol in codes. Events from separate files are
// merged then sorted by the table constructor.
func LoadMonthlyRateDir(logger log.Logger, dir string, codes map[string]string) ([]*RateTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	eventsBySymbol := make(map[string][]RateEvent, len(codes))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		fileEvents, err := parseMonthlyFile(data, codes)
		if err != nil {
			return nil, fmt.Errorf("parsing rates file %s: %w", path, err)
		}
		for symbol, event := range fileEvents {
			eventsBySymbol[symbol] = append(eventsBySymbol[symbol], event)
		}
	}

	tables := make([]*RateTable, 0, len(eventsBySymbol))
	for symbol, events := range eventsBySymbol {
		logger.Debugf("Loaded %d monthly rates for %s", len(events), symbol)
		tables = append(tables, NewRateTable(symbol, events))
	}
	return tables, nil
}

// LoadMonthlyConverter builds a Converter for the default symbol map from
// an HMRC monthly rates directory.
func LoadMonthlyConverter(logger log.Logger, dir string) (*Converter, error) {
	tables, err := LoadMonthlyRateDir(logger, dir, DefaultSymbolMap)
	if err != nil {
		return nil, err
	}
	return NewConverter(logger, DefaultHomeSymbol, tables...), nil
}
