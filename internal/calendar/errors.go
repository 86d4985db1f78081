package calendar

import "errors"

var (
	// ErrUnsupportedCentury is returned for years outside 1900-2199.
	ErrUnsupportedCentury = errors.New("unsupported century")
	// ErrInvalidMonth is returned for a month number outside 1-12.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidDay is returned for a day of month outside the month's length.
	ErrInvalidDay = errors.New("invalid day of month")
	// ErrInvalidDayCode means a weekday code fell outside 0-6. Correct modular
	// arithmetic never produces one.
	ErrInvalidDayCode = errors.New("invalid day code")
)
