package fx

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/user"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
)

const csvDateFormat = "02/01/2006"

// RatesCache stores parsed rate events per symbol, so a monthly-archive
// directory does not need re-parsing on every run.
type RatesCache interface {
	WriteRates(symbol string, events []RateEvent) error
	GetRates(symbol string) ([]RateEvent, error)
}

// MemRatesCache is the in-memory RatesCache used by tests.
type MemRatesCache struct {
	RatesBySymbol map[string][]RateEvent
}

func NewMemRatesCache() *MemRatesCache {
	return &MemRatesCache{RatesBySymbol: make(map[string][]RateEvent)}
}

func (c *MemRatesCache) WriteRates(symbol string, events []RateEvent) error {
	c.RatesBySymbol[symbol] = events
	return nil
}

func (c *MemRatesCache) GetRates(symbol string) ([]RateEvent, error) {
	events, ok := c.RatesBySymbol[symbol]
	if !ok {
		return nil, fmt.Errorf("no cached rates for %q", symbol)
	}
	return events, nil
}

// CsvRatesCache stores one two-column CSV file per symbol under Dir
// (by default ~/.cgtcalc).
type CsvRatesCache struct {
	Dir string
}

func HomeDirFile(fname string) (string, error) {
	const dir = ".cgtcalc"
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	dirPath := filepath.Join(usr.HomeDir, dir)
	os.MkdirAll(dirPath, 0700)
	return filepath.Join(dirPath, url.QueryEscape(fname)), err
}

func (c *CsvRatesCache) ratesFilePath(symbol string) (string, error) {
	fname := fmt.Sprintf("rates-%s.csv", symbol)
	if c.Dir != "" {
		return filepath.Join(c.Dir, url.QueryEscape(fname)), nil
	}
	return HomeDirFile(fname)
}

func (c *CsvRatesCache) WriteRates(symbol string, events []RateEvent) (err error) {
	path, err := c.ratesFilePath(symbol)
	if err != nil {
		return
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	csvW := csv.NewWriter(file)
	for _, event := range events {
		err = csvW.Write([]string{event.Date.String(), event.Rate.String()})
		if err != nil {
			return
		}
	}
	csvW.Flush()
	err = csvW.Error()
	return
}

func (c *CsvRatesCache) GetRates(symbol string) ([]RateEvent, error) {
	path, err := c.ratesFilePath(symbol)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return getRatesFromCsv(file)
}

func getRatesFromCsv(r io.Reader) ([]RateEvent, error) {
	csvR := csv.NewReader(r)
	csvR.FieldsPerRecord = 2
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, err
	}

	events := make([]RateEvent, 0, len(records))
	for _, record := range records {
		d, err := date.Parse(csvDateFormat, record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, record[0])
		}
		rate, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, record[1])
		}
		events = append(events, RateEvent{Date: d, Rate: rate})
	}
	return events, nil
}

// CacheTables writes every table's events through the cache.
func CacheTables(cache RatesCache, tables []*RateTable) error {
	for _, table := range tables {
		if err := cache.WriteRates(table.Symbol, table.Events()); err != nil {
			return err
		}
	}
	return nil
}

// TablesFromCache restores tables for the given symbols from the cache.
// Symbols with no cached rates are skipped.
func TablesFromCache(cache RatesCache, symbols []string) []*RateTable {
	tables := make([]*RateTable, 0, len(symbols))
	for _, symbol := range symbols {
		events, err := cache.GetRates(symbol)
		if err != nil {
			continue
		}
		tables = append(tables, NewRateTable(symbol, events))
	}
	return tables
}
