package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/octo47/cgtcalc/app"
	"github.com/octo47/cgtcalc/config"
	"github.com/octo47/cgtcalc/fx"
	"github.com/octo47/cgtcalc/log"
)

var Verbose = false
var RatesDirOpt string
var ConfigPathOpt string
var OutputPathOpt string
var FullPrecisionOpt = false

func runRootCmd(cmd *cobra.Command, args []string) {
	errPrinter := &log.StderrErrorPrinter{}

	cfg, err := config.Load(ConfigPathOpt)
	if err != nil {
		errPrinter.Ln("Error:", err)
		os.Exit(1)
	}

	level := log.LevelWarn
	if Verbose {
		level = log.LevelDebug
	}
	logger := log.NewBasicLogger(level)

	ledgerReaders := make([]app.DescribedReader, 0, len(args))
	for _, fname := range args {
		fp, err := os.Open(fname)
		if err != nil {
			errPrinter.Ln("Error:", err)
			os.Exit(1)
		}
		defer fp.Close()
		ledgerReaders = append(ledgerReaders, app.DescribedReader{Desc: fname, Reader: fp})
	}

	writer := os.Stdout
	if OutputPathOpt != "" && OutputPathOpt != "-" {
		fp, err := os.Create(OutputPathOpt)
		if err != nil {
			errPrinter.Ln("Error:", err)
			os.Exit(1)
		}
		defer fp.Close()
		writer = fp
	}

	ratesDir := RatesDirOpt
	if ratesDir == "" {
		ratesDir = cfg.RatesDir
	}

	ratesCache := &fx.CsvRatesCache{Dir: cfg.CacheDir}
	err = app.RunCgtApp(ledgerReaders, cfg, ratesDir, FullPrecisionOpt,
		logger, ratesCache, writer, errPrinter)
	if err != nil {
		os.Exit(1)
	}
}

func cmdName() string {
	binName := os.Args[0]
	return filepath.Base(binName)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   cmdName() + " [LEDGER_FILE ...]",
	Short: "UK capital gains tax (CGT) calculator",
	Long: `A cli tool which computes UK capital gains tax disposal events from a
plain-text transaction ledger.

Disposals are matched against acquisitions under the same-day rule, then
the 30-day bed-and-breakfast rule, with everything left over priced from
the section 104 pool.

Each ledger line holds one of:
  BUY       dd/mm/yyyy ASSET QUANTITY PRICE EXPENSES
  SELL      dd/mm/yyyy ASSET QUANTITY PRICE EXPENSES
  DIVIDEND  dd/mm/yyyy ASSET QUANTITY VALUE
  CAPRETURN dd/mm/yyyy ASSET QUANTITY VALUE

Money amounts may be tagged with a currency symbol (eg. $12.34); these are
converted to pounds using HMRC monthly exchange rates (--rates).
`,
	Run:     runRootCmd,
	Args:    cobra.MinimumNArgs(1),
	Version: "0.3.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false,
		"Print verbose output")
	RootCmd.PersistentFlags().StringVar(&ConfigPathOpt, "config", "",
		"Path to a YAML config file")
	RootCmd.Flags().StringVar(&RatesDirOpt, "rates", "",
		"Directory of HMRC monthly exchange rate XML files")
	RootCmd.Flags().StringVarP(&OutputPathOpt, "output", "o", "",
		"Output file ('-' or empty for stdout)")
	RootCmd.Flags().BoolVar(&FullPrecisionOpt, "print-full-values", false,
		"Print all digits in output values")
}
