// Package binning files timestamped records into weekday buckets and,
// optionally, into time-of-day bins within each weekday.
//
// A run reads lines of the form "<timestamp>,<payload>". Each line is split at
// the first delimiter, the timestamp is parsed and resolved to a weekday, and
// the record is appended to that weekday's bucket. A line that cannot be split,
// parsed or resolved is reported as a LineError and skipped; it never stops
// the run.
package binning

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/rewired-gh/besttime/internal/calendar"
	"github.com/rewired-gh/besttime/internal/logger"
	"github.com/rewired-gh/besttime/internal/models"
	"github.com/rewired-gh/besttime/internal/timestamp"
)

// DefaultDelimiter separates the timestamp from the payload.
const DefaultDelimiter = ","

// maxLineSize bounds a single input line read by BinReader.
const maxLineSize = 1024 * 1024

// ErrMissingDelimiter is a parse failure for a line without a delimiter.
var ErrMissingDelimiter = fmt.Errorf("%w: missing delimiter", timestamp.ErrParseFailure)

// Config configures a Binner.
type Config struct {
	Delimiter string   // single character; DefaultDelimiter when empty
	Bins      *BinSpec // nil disables time-of-day binning
}

// Binner routes lines into weekday buckets
type Binner struct {
	delimiter string
	bins      []models.TimeBin
}

// New validates cfg and returns a Binner. An invalid bin layout fails here,
// before any line is read.
func New(cfg Config) (*Binner, error) {
	delimiter := cfg.Delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	if len([]rune(delimiter)) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}

	b := &Binner{delimiter: delimiter}
	if cfg.Bins != nil {
		bins, err := cfg.Bins.Build()
		if err != nil {
			return nil, err
		}
		b.bins = bins
	}
	return b, nil
}

// WeeklyBuckets holds the records of a run indexed by DayOfWeek code.
type WeeklyBuckets [calendar.DaysPerWeek][]models.Record

// Add appends r to the bucket for day.
func (w *WeeklyBuckets) Add(day calendar.DayOfWeek, r models.Record) {
	w[day.Code()] = append(w[day.Code()], r)
}

// Day returns the records filed under day.
func (w *WeeklyBuckets) Day(day calendar.DayOfWeek) []models.Record {
	return w[day.Code()]
}

// Counts returns the number of records per weekday, Sunday first.
func (w *WeeklyBuckets) Counts() [calendar.DaysPerWeek]int {
	var counts [calendar.DaysPerWeek]int
	for i, records := range w {
		counts[i] = len(records)
	}
	return counts
}

// LineError is a per-line failure. The line is dropped from the run.
type LineError struct {
	Line int    // 1-based line number
	Text string // the raw line
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// Error kinds reported by LineError.Kind.
const (
	KindParseFailure       = "parse_failure"
	KindUnsupportedCentury = "unsupported_century"
	KindInvalidMonth       = "invalid_month"
	KindInvalidDay         = "invalid_day"
	KindInvalidDayCode     = "invalid_day_code"
	KindUnknown            = "unknown"
)

// Kind classifies the failure.
func (e LineError) Kind() string {
	switch {
	case errors.Is(e.Err, timestamp.ErrParseFailure):
		return KindParseFailure
	case errors.Is(e.Err, calendar.ErrUnsupportedCentury):
		return KindUnsupportedCentury
	case errors.Is(e.Err, calendar.ErrInvalidMonth):
		return KindInvalidMonth
	case errors.Is(e.Err, calendar.ErrInvalidDay):
		return KindInvalidDay
	case errors.Is(e.Err, calendar.ErrInvalidDayCode):
		return KindInvalidDayCode
	default:
		return KindUnknown
	}
}

// Result is the outcome of one run.
type Result struct {
	Buckets WeeklyBuckets
	// Bins holds one copy of the configured time bins per weekday. It is
	// nil when time-of-day binning is disabled.
	Bins   [][]models.TimeBin
	Errors []LineError
	Lines  int
}

// Accepted returns the number of records that reached a bucket.
func (r *Result) Accepted() int {
	total := 0
	for _, n := range r.Buckets.Counts() {
		total += n
	}
	return total
}

// Err combines every line error, or returns nil when all lines were accepted.
func (r *Result) Err() error {
	var err error
	for _, lineErr := range r.Errors {
		err = multierr.Append(err, lineErr)
	}
	return err
}

// ErrorCounts tallies line errors by kind.
func (r *Result) ErrorCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Errors {
		counts[e.Kind()]++
	}
	return counts
}

// Resolve parses a timestamp and computes its weekday.
func Resolve(text string) (models.CalendarDate, calendar.DayOfWeek, error) {
	date, err := timestamp.Parse(text)
	if err != nil {
		return models.CalendarDate{}, 0, err
	}
	day, err := calendar.Weekday(date)
	if err != nil {
		return date, 0, err
	}
	return date, day, nil
}

// Bin consumes lines in order and returns the populated buckets.
func (b *Binner) Bin(lines iter.Seq[string]) *Result {
	res := &Result{}
	if b.bins != nil {
		res.Bins = make([][]models.TimeBin, calendar.DaysPerWeek)
		for i := range res.Bins {
			res.Bins[i] = slices.Clone(b.bins)
		}
	}

	for line := range lines {
		res.Lines++
		if err := b.binLine(res, res.Lines, line); err != nil {
			lineErr := LineError{Line: res.Lines, Text: line, Err: err}
			logger.Warn("Skipping line %d (%s): %v", lineErr.Line, lineErr.Kind(), err)
			res.Errors = append(res.Errors, lineErr)
		}
	}

	logger.Debug("Bin: lines=%d, accepted=%d, rejected=%d, counts=%v",
		res.Lines, res.Accepted(), len(res.Errors), res.Buckets.Counts())
	return res
}

// BinLines is Bin over a slice.
func (b *Binner) BinLines(lines []string) *Result {
	return b.Bin(slices.Values(lines))
}

// BinReader bins every line read from r. Line failures are reported in the
// result; a read error ends the run and is returned with the partial result.
func (b *Binner) BinReader(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	res := b.Bin(func(yield func(string) bool) {
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	})
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("failed to read input: %w", err)
	}
	return res, nil
}

func (b *Binner) binLine(res *Result, n int, line string) error {
	line = strings.TrimSuffix(line, "\r")
	stamp, payload, found := strings.Cut(line, b.delimiter)
	if !found {
		return ErrMissingDelimiter
	}

	date, day, err := Resolve(stamp)
	if err != nil {
		return err
	}

	res.Buckets.Add(day, models.Record{Line: n, Date: date, Payload: payload})
	if res.Bins != nil {
		dayBins := res.Bins[day.Code()]
		for i := range dayBins {
			if Add(&dayBins[i], date) {
				break
			}
		}
	}
	return nil
}
