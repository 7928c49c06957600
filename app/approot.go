package app

import (
	"io"

	"github.com/octo47/cgtcalc/calc"
	"github.com/octo47/cgtcalc/config"
	"github.com/octo47/cgtcalc/fx"
	"github.com/octo47/cgtcalc/ledger"
	"github.com/octo47/cgtcalc/log"
	"github.com/octo47/cgtcalc/render"
	"github.com/octo47/cgtcalc/util"
)

type DescribedReader struct {
	Desc   string
	Reader io.Reader
}

func symbolCodes(cfg *config.Config) map[string]string {
	if len(cfg.SymbolCodes) > 0 {
		return cfg.SymbolCodes
	}
	return fx.DefaultSymbolMap
}

// BuildConverter assembles the currency converter. A rates directory
// takes priority and refreshes the cache; otherwise any cached tables
// are used.
func BuildConverter(
	cfg *config.Config, ratesDir string, ratesCache fx.RatesCache,
	logger log.Logger, errPrinter log.ErrorPrinter) (*fx.Converter, error) {

	codes := symbolCodes(cfg)

	var tables []*fx.RateTable
	if ratesDir != "" {
		var err error
		tables, err = fx.LoadMonthlyRateDir(logger, ratesDir, codes)
		if err != nil {
			return nil, err
		}
		if err := fx.CacheTables(ratesCache, tables); err != nil {
			errPrinter.Ln("Failed to update exchange rate cache:", err)
		}
	} else {
		tables = fx.TablesFromCache(ratesCache, util.MapKeys(codes))
	}

	return fx.NewConverter(logger, cfg.HomeSymbol, tables...), nil
}

// RunCgtApp runs the whole pipeline: load rates, parse the ledgers,
// compute matches and pooled gains, render the report to writer.
func RunCgtApp(
	ledgerReaders []DescribedReader,
	cfg *config.Config,
	ratesDir string,
	fullPrecision bool,
	logger log.Logger,
	ratesCache fx.RatesCache,
	writer io.Writer,
	errPrinter log.ErrorPrinter) error {

	converter, err := BuildConverter(cfg, ratesDir, ratesCache, logger, errPrinter)
	if err != nil {
		errPrinter.Ln("Error loading exchange rates:", err)
		return err
	}

	parser := ledger.NewParser(converter)
	full := &ledger.Ledger{}
	for _, ledgerReader := range ledgerReaders {
		parsed, err := parser.Parse(ledgerReader.Reader, ledgerReader.Desc)
		if err != nil {
			errPrinter.Ln("Error:", err)
			return err
		}
		full.Transactions = append(full.Transactions, parsed.Transactions...)
		full.Events = append(full.Events, parsed.Events...)
	}

	result, err := calc.NewCalculator(logger).Process(full)
	if err != nil {
		errPrinter.Ln("Error:", err)
		return err
	}

	render.Report(result, fullPrecision || cfg.FullPrecision, writer)
	return nil
}
