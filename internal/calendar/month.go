package calendar

import "fmt"

// MonthOfYear numbers the months January = 1 through December = 12.
type MonthOfYear int

const (
	January MonthOfYear = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

type monthInfo struct {
	name   string
	anchor int // day of month that falls on the year's doomsday (common year)
	days   int // length in a common year
}

var months = [...]monthInfo{
	January:   {"January", 3, 31},
	February:  {"February", 28, 28},
	March:     {"March", 14, 31},
	April:     {"April", 4, 30},
	May:       {"May", 9, 31},
	June:      {"June", 6, 30},
	July:      {"July", 11, 31},
	August:    {"August", 8, 31},
	September: {"September", 5, 30},
	October:   {"October", 10, 31},
	November:  {"November", 7, 30},
	December:  {"December", 12, 31},
}

// MonthFromNumber maps 1..12 to a MonthOfYear; anything else wraps ErrInvalidMonth.
func MonthFromNumber(n int) (MonthOfYear, error) {
	if n < int(January) || n > int(December) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, n)
	}
	return MonthOfYear(n), nil
}

// AnchorDate returns the day of the month that shares the doomsday's weekday.
// January and February move one day later in leap years.
func (m MonthOfYear) AnchorDate(leap bool) int {
	anchor := months[m].anchor
	if leap && (m == January || m == February) {
		anchor++
	}
	return anchor
}

// Days returns the number of days in the month.
func (m MonthOfYear) Days(leap bool) int {
	if leap && m == February {
		return 29
	}
	return months[m].days
}

func (m MonthOfYear) String() string {
	if m < January || m > December {
		return fmt.Sprintf("MonthOfYear(%d)", int(m))
	}
	return months[m].name
}

// IsLeapYear applies the Gregorian rule: divisible by 4 and not by 100,
// or divisible by 400.
func IsLeapYear(year int) bool {
	return year%400 == 0 || (year%4 == 0 && year%100 != 0)
}
