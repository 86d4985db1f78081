package calendar

import (
	"fmt"

	"github.com/rewired-gh/besttime/internal/models"
)

// centuryAnchors holds the doomsday of each supported century's first year.
var centuryAnchors = map[int]DayOfWeek{
	1900: Wednesday,
	2000: Tuesday,
	2100: Sunday,
}

// SupportedYears reports the inclusive range of years the calculator accepts.
func SupportedYears() (first, last int) {
	return 1900, 2199
}

// mod is the non-negative remainder of a divided by n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// Doomsday returns the weekday shared by every month's anchor date in year.
func Doomsday(year int) (DayOfWeek, error) {
	yy := mod(year, 100)
	anchor, ok := centuryAnchors[year-yy]
	if !ok {
		first, last := SupportedYears()
		return 0, fmt.Errorf("%w: year %d is outside %d-%d", ErrUnsupportedCentury, year, first, last)
	}

	q := yy / 12
	r := yy % 12
	s := r / 4
	return DayFromCode(mod(q+r+s+anchor.Code(), DaysPerWeek))
}

// Weekday resolves the day of week of date. The time of day is ignored.
func Weekday(date models.CalendarDate) (DayOfWeek, error) {
	doomsday, err := Doomsday(date.Year)
	if err != nil {
		return 0, err
	}

	month, err := MonthFromNumber(date.Month)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", date, err)
	}

	leap := IsLeapYear(date.Year)
	if date.Day < 1 || date.Day > month.Days(leap) {
		return 0, fmt.Errorf("%w: %s has no day %d in %d", ErrInvalidDay, month, date.Day, date.Year)
	}

	offset := date.Day - month.AnchorDate(leap)
	return DayFromCode(mod(doomsday.Code()+offset, DaysPerWeek))
}
