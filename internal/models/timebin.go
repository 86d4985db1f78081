package models

import (
	"errors"
	"fmt"
)

// TimeBin counts events whose time of day falls in [LowerLimit, UpperLimit),
// both expressed in minutes from midnight.
type TimeBin struct {
	LowerLimit int `json:"lower_limit" yaml:"lower_limit"`
	UpperLimit int `json:"upper_limit" yaml:"upper_limit"`
	Count      int `json:"count" yaml:"count"`
}

// Contains reports whether minute lies inside the bin. A minute equal to
// UpperLimit belongs to the next bin, never this one.
func (b TimeBin) Contains(minute int) bool {
	return b.LowerLimit <= minute && minute < b.UpperLimit
}

// Label renders the bin as "HH:MM-HH:MM". An upper limit of midnight prints as 24:00.
func (b TimeBin) Label() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", b.LowerLimit/60, b.LowerLimit%60, b.UpperLimit/60, b.UpperLimit%60)
}

// Validate checks that the bin is a non-empty range within one day
func (b TimeBin) Validate() error {
	if b.LowerLimit < 0 {
		return errors.New("lower limit must not be negative")
	}
	if b.UpperLimit <= b.LowerLimit {
		return errors.New("upper limit must be greater than lower limit")
	}
	if b.UpperLimit > MinutesPerDay {
		return fmt.Errorf("upper limit must not exceed %d minutes", MinutesPerDay)
	}
	if b.Count < 0 {
		return errors.New("count must not be negative")
	}
	return nil
}
