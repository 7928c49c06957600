package fx_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/octo47/cgtcalc/date"
	"github.com/octo47/cgtcalc/fx"
	"github.com/octo47/cgtcalc/log"
)

func mkConverter(t *testing.T) *fx.Converter {
	t.Helper()
	return fx.NewConverter(log.NullLogger{}, fx.DefaultHomeSymbol, mkTable(t))
}

func TestConvertHomeAndUntagged(t *testing.T) {
	rq := require.New(t)
	converter := mkConverter(t)
	d := mkDate(20)

	val, ok, err := converter.Convert(d, "12.34")
	rq.Nil(err)
	rq.True(ok)
	rq.True(val.Equal(decimal.RequireFromString("12.34")))

	val, ok, err = converter.Convert(d, "£1,234.56")
	rq.Nil(err)
	rq.True(ok)
	rq.True(val.Equal(decimal.RequireFromString("1234.56")))
}

func TestConvertForeign(t *testing.T) {
	rq := require.New(t)
	converter := mkConverter(t)

	// Rate 1.40 in effect from Jan 15.
	val, ok, err := converter.Convert(mkDate(20), "$100")
	rq.Nil(err)
	rq.True(ok)
	rq.True(val.Equal(decimal.RequireFromString("140")), "got %s", val)

	// Suffix placement works too.
	val, ok, err = converter.Convert(mkDate(1), "100$")
	rq.Nil(err)
	rq.True(ok)
	rq.True(val.Equal(decimal.RequireFromString("130")), "got %s", val)
}

func TestConvertUnknownCurrency(t *testing.T) {
	rq := require.New(t)
	converter := mkConverter(t)

	_, _, err := converter.Convert(mkDate(20), "¥100")
	rq.True(errors.Is(err, fx.ErrUnknownCurrency))
	rq.Contains(err.Error(), "¥")
}

func TestConvertAbsentRate(t *testing.T) {
	rq := require.New(t)
	converter := mkConverter(t)

	_, ok, err := converter.Convert(date.New(2019, time.December, 1), "$100")
	rq.Nil(err)
	rq.False(ok)
}

func TestConvertBadValue(t *testing.T) {
	rq := require.New(t)
	converter := mkConverter(t)

	_, _, err := converter.Convert(mkDate(20), "$")
	rq.True(errors.Is(err, fx.ErrInvalidValue))
}
