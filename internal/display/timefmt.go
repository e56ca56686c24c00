package display

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata"
)

const (
	// DateTimeLayout renders medium date plus short time in de-DE.
	DateTimeLayout = "02.01.2006, 15:04"
	// InputLayout is what a datetime-local form field submits.
	InputLayout = "2006-01-02T15:04"

	DefaultTimezone = "Europe/Berlin"

	rangeSeparator = " – "
)

// Formatter turns stored instants into local wall-clock strings. The zero value uses UTC.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(loc *time.Location) Formatter {
	return Formatter{loc: loc}
}

func LoadFormatter(tz string) (Formatter, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Formatter{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return Formatter{loc: loc}, nil
}

func (f Formatter) Location() *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

// ParseLocal reads a wall-clock value in the formatter's zone. Seconds and
// RFC 3339 input are accepted too. Empty input yields the zero time.
func (f Formatter) ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{InputLayout, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, f.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(f.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q, expected %s", s, InputLayout)
}

func (f Formatter) Input(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.Location()).Format(InputLayout)
}

func (f Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.Location()).Format(DateTimeLayout)
}

func (f Formatter) Range(start, end time.Time) string {
	return f.DateTime(start) + rangeSeparator + f.DateTime(end)
}
