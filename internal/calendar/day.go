// Package calendar resolves Gregorian dates in the years 1900 through 2199 to
// a day of the week with the Doomsday algorithm.
//
// No calendar library or date table is consulted. Each century has a fixed
// anchor weekday, each year derives its doomsday from that anchor, and each
// month has a day-of-month known to fall on the doomsday. The weekday of any
// other day is a signed offset from that anchor date, taken modulo 7.
package calendar

import "fmt"

// DayOfWeek numbers the days of the week starting at Sunday = 0. The
// numbering is the bucket index used by the weekly binner.
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysPerWeek is the number of DayOfWeek values.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	Sunday:    "Sunday",
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
}

// AllDays lists the days in code order, Sunday first.
func AllDays() [DaysPerWeek]DayOfWeek {
	return [DaysPerWeek]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// DayFromCode maps a numeric code back to its DayOfWeek. Codes outside
// 0..6 wrap ErrInvalidDayCode.
func DayFromCode(code int) (DayOfWeek, error) {
	if code < 0 || code >= DaysPerWeek {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDayCode, code)
	}
	return DayOfWeek(code), nil
}

// Code returns the numeric code of the day.
func (d DayOfWeek) Code() int {
	return int(d)
}

func (d DayOfWeek) String() string {
	if d < 0 || int(d) >= DaysPerWeek {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}
