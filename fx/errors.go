package fx

import (
	"errors"
)

var (
	// ErrUnknownCurrency indicates a monetary value tagged with a symbol
	// for which no rate table was registered.
	ErrUnknownCurrency = errors.New("unknown currency")

	// Rate table source data errors. Each is wrapped with the offending
	// raw line when raised.
	ErrIncorrectNumberOfFields = errors.New("incorrect number of fields")
	ErrInvalidDate             = errors.New("invalid date")
	ErrInvalidValue            = errors.New("invalid value")
)
