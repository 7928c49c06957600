package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octo47/cgtcalc/config"
)

func TestLoadDefaults(t *testing.T) {
	rq := require.New(t)

	cfg, err := config.Load("")
	rq.Nil(err)
	rq.Equal("£", cfg.HomeSymbol)
	rq.Equal("", cfg.RatesDir)
	rq.False(cfg.FullPrecision)

	// A missing file yields the defaults too.
	cfg, err = config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	rq.Nil(err)
	rq.Equal("£", cfg.HomeSymbol)
}

func TestLoadFile(t *testing.T) {
	rq := require.New(t)

	data := `
rates_dir: /data/hmrc
home_symbol: "€"
full_precision: true
symbol_codes:
  "$": USD
`
	path := filepath.Join(t.TempDir(), "config.yml")
	rq.Nil(os.WriteFile(path, []byte(data), 0600))

	cfg, err := config.Load(path)
	rq.Nil(err)
	rq.Equal("/data/hmrc", cfg.RatesDir)
	rq.Equal("€", cfg.HomeSymbol)
	rq.True(cfg.FullPrecision)
	rq.Equal(map[string]string{"$": "USD"}, cfg.SymbolCodes)
}

func TestLoadBadYaml(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	rq.Nil(os.WriteFile(path, []byte("rates_dir: [unclosed"), 0600))

	_, err := config.Load(path)
	rq.NotNil(err)
}
