package calc

import (
	"fmt"
	"time"

	"github.com/octo47/cgtcalc/date"
)

// TaxYear identifies a UK tax year by the calendar year it ends in: the
// year running 6 April 2019 to 5 April 2020 is TaxYear{2020}, printed
// "2019/2020".
type TaxYear struct {
	EndYear int
}

func TaxYearOf(d date.Date) TaxYear {
	year := d.Year()
	newYearStart := date.New(uint32(year), time.April, 6)
	if d.Before(newYearStart) {
		return TaxYear{EndYear: year}
	}
	return TaxYear{EndYear: year + 1}
}

func (y TaxYear) String() string {
	return fmt.Sprintf("%d/%d", y.EndYear-1, y.EndYear)
}
