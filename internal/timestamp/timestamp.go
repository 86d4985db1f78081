// Package timestamp reads and writes the fixed YYYY-MM-DDTHH:MM:SSZ layout.
package timestamp

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/rewired-gh/besttime/internal/models"
)

// ErrParseFailure is returned when text is not a timestamp in the expected layout.
var ErrParseFailure = errors.New("timestamp parse failure")

// Layout describes the accepted format, for messages and help text.
const Layout = "YYYY-MM-DDTHH:MM:SSZ"

var pattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})Z$`)

// Parse converts text to a CalendarDate. Only the digit-group widths are
// checked, so values such as month 13 or hour 25 are passed through.
func Parse(text string) (models.CalendarDate, error) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return models.CalendarDate{}, fmt.Errorf("%w: %q does not match %s", ErrParseFailure, text, Layout)
	}

	var fields [6]int
	for i := range fields {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return models.CalendarDate{}, fmt.Errorf("%w: %q: %v", ErrParseFailure, m[i+1], err)
		}
		fields[i] = n
	}

	return models.CalendarDate{
		Year:   fields[0],
		Month:  fields[1],
		Day:    fields[2],
		Hour:   fields[3],
		Minute: fields[4],
		Second: fields[5],
	}, nil
}

// Format renders d in the layout Parse accepts.
func Format(d models.CalendarDate) string {
	return d.String()
}
