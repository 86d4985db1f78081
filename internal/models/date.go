// Package models defines the value types that flow through a binning run.
//
// A CalendarDate is produced once by the timestamp parser and is only read
// afterwards: the weekday calculator resolves it to a day of week and the
// weekly binner files it into a bucket. Nothing mutates it after parsing.
//
// Terminology:
//   - Record: a parsed timestamp plus the payload text that followed it on the line.
//   - Time bin: a half-open range of minutes from midnight, [LowerLimit, UpperLimit).
package models

import "fmt"

// MinutesPerDay is the span of one day in minutes; no set of time bins may exceed it.
const MinutesPerDay = 24 * 60

// CalendarDate is a UTC date and time of day as read from a timestamp.
//
// Field ranges are not checked here. The parser only guarantees digit-group
// widths, so a month of 13 is representable and is rejected later by the
// weekday calculator.
type CalendarDate struct {
	Year   int `json:"year" yaml:"year"`
	Month  int `json:"month" yaml:"month"`
	Day    int `json:"day" yaml:"day"`
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
	Second int `json:"second" yaml:"second"`
}

// MinuteOfDay returns the time of day as minutes since midnight.
func (d CalendarDate) MinuteOfDay() int {
	return d.Hour*60 + d.Minute
}

// String renders the date in the YYYY-MM-DDTHH:MM:SSZ layout.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}
