package binning

import (
	"errors"
	"fmt"

	"github.com/rewired-gh/besttime/internal/models"
)

var (
	// ErrRangeViolation is returned when requested time bins run past midnight.
	ErrRangeViolation = errors.New("time bins exceed one day")
	// ErrInvalidBinConfig is returned for a negative start or count, or a non-positive interval.
	ErrInvalidBinConfig = errors.New("invalid time bin configuration")
)

// BinSpec describes Count contiguous bins of IntervalMinutes each, starting
// StartMinute minutes after midnight.
type BinSpec struct {
	StartMinute     int `json:"start_minute" yaml:"start_minute"`
	IntervalMinutes int `json:"interval_minutes" yaml:"interval_minutes"`
	Count           int `json:"count" yaml:"count"`
}

// Validate checks s without building bins.
func (s BinSpec) Validate() error {
	if s.StartMinute < 0 {
		return fmt.Errorf("%w: start minute %d is negative", ErrInvalidBinConfig, s.StartMinute)
	}
	if s.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval %d must be positive", ErrInvalidBinConfig, s.IntervalMinutes)
	}
	if s.Count < 0 {
		return fmt.Errorf("%w: count %d is negative", ErrInvalidBinConfig, s.Count)
	}
	if s.StartMinute > models.MinutesPerDay {
		return fmt.Errorf("%w: start minute %d is past %d", ErrRangeViolation, s.StartMinute, models.MinutesPerDay)
	}
	// Compare by division; Count*IntervalMinutes may overflow int.
	if fit := (models.MinutesPerDay - s.StartMinute) / s.IntervalMinutes; s.Count > fit {
		return fmt.Errorf("%w: %d bins of %d minutes from minute %d, at most %d fit before minute %d",
			ErrRangeViolation, s.Count, s.IntervalMinutes, s.StartMinute, fit, models.MinutesPerDay)
	}
	return nil
}

// Build returns the bins described by s.
func (s BinSpec) Build() ([]models.TimeBin, error) {
	return BuildBins(s.StartMinute, s.IntervalMinutes, s.Count)
}

// BuildBins produces count contiguous, non-overlapping bins of interval
// minutes starting at start. The bins may not extend past minute 1440.
func BuildBins(start, interval, count int) ([]models.TimeBin, error) {
	spec := BinSpec{StartMinute: start, IntervalMinutes: interval, Count: count}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	bins := make([]models.TimeBin, count)
	for i := range bins {
		lower := start + i*interval
		bins[i] = models.TimeBin{LowerLimit: lower, UpperLimit: lower + interval}
		if err := bins[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: bin %d: %v", ErrRangeViolation, i, err)
		}
	}
	return bins, nil
}

// Add counts date in bin when its time of day lies in [LowerLimit, UpperLimit)
// and reports whether it did. A date outside the bin leaves it untouched.
func Add(bin *models.TimeBin, date models.CalendarDate) bool {
	if !bin.Contains(date.MinuteOfDay()) {
		return false
	}
	bin.Count++
	return true
}
