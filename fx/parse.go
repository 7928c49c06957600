package fx

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/octo47/cgtcalc/date"
)

// ParseRateTable reads the bare two-column rate table format for one
// symbol. Each line holds "dd/mm/yyyy rate"; blank lines and lines
// starting with '#' are skipped.
func ParseRateTable(symbol string, r io.Reader) (*RateTable, error) {
	events := make([]RateEvent, 0, 16)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectNumberOfFields, line)
		}

		d, err := date.ParseLedger(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, line)
		}
		rate, err := decimal.NewFromString(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, line)
		}
		events = append(events, RateEvent{Date: d, Rate: rate})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewRateTable(symbol, events), nil
}
