package astro

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

var ErrInvalidDateTime = errors.New("invalid date/time")

// DateTimeError describes birth date/time text that could not be parsed.
type DateTimeError struct {
	Input string
	Err   error
}

func (e *DateTimeError) Error() string {
	return fmt.Sprintf("Invalid date/time format: %v", e.Err)
}

func (e *DateTimeError) Unwrap() []error {
	return []error{ErrInvalidDateTime, e.Err}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
}

var clockLayouts = []string{
	"",
	" 15:04",
	" 15:04:05",
	" 3:04PM",
	" 3:04 PM",
	" 3PM",
	" 3 PM",
	"T15:04",
	"T15:04:05",
}

// ISOLayout renders a parsed birth timestamp without any zone suffix.
const ISOLayout = "2006-01-02T15:04:05"

// ParseDateTime combines a date and an optional clock time into one naive
// timestamp. A blank clock is treated as absent. Month names are English only
// and matched case-insensitively, whatever the host locale.
func ParseDateTime(date, clock string) (time.Time, error) {
	full := strings.TrimSpace(date)
	if c := strings.TrimSpace(clock); c != "" {
		full = full + " " + c
	}

	if full == "" {
		return time.Time{}, &DateTimeError{Input: full, Err: errors.New("empty date")}
	}
	if !strings.ContainsAny(full, "0123456789") {
		return time.Time{}, &DateTimeError{Input: full, Err: fmt.Errorf("no digits in %q", full)}
	}

	normalized := normalizeMonthCase(full)
	for _, dl := range dateLayouts {
		for _, cl := range clockLayouts {
			if t, err := time.Parse(dl+cl, normalized); err == nil {
				return t, nil
			}
		}
	}

	// Past the layout table the date and the clock are parsed on their own,
	// so a clock the fallback cannot read is an error rather than midnight.
	day := strings.TrimSpace(date)
	if !hasMonthAndDay(day) {
		return time.Time{}, &DateTimeError{Input: full, Err: fmt.Errorf("date %q needs a day, month and year", day)}
	}
	// Strict mode refuses numeric forms where day and month could be swapped.
	t, err := dateparse.ParseStrict(day)
	if err != nil {
		return time.Time{}, &DateTimeError{Input: full, Err: err}
	}

	hour, minute, second := t.Hour(), t.Minute(), t.Second()
	if c := strings.TrimSpace(clock); c != "" {
		ct, err := parseClock(c)
		if err != nil {
			return time.Time{}, &DateTimeError{Input: full, Err: err}
		}
		hour, minute, second = ct.Hour(), ct.Minute(), ct.Second()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, second, 0, time.UTC), nil
}

func parseClock(c string) (time.Time, error) {
	normalized := normalizeMonthCase(c)
	for _, cl := range clockLayouts {
		layout := strings.TrimSpace(strings.TrimPrefix(cl, "T"))
		if layout == "" {
			continue
		}
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", c)
}

// hasMonthAndDay rejects partial dates such as "1998" or "June 1998" that a
// lenient parser would complete with January or the first of the month.
func hasMonthAndDay(s string) bool {
	numbers := 0
	named := false
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		switch {
		case isMonthName(f):
			named = true
		case strings.IndexFunc(f, unicode.IsDigit) >= 0:
			numbers++
		}
	}
	if named {
		return numbers >= 2
	}
	return numbers >= 3
}

// normalizeMonthCase turns "JUN" or "june" into "Jun"/"June" so that the
// case-sensitive layouts in time.Parse accept it.
func normalizeMonthCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		parts := strings.Split(f, "-")
		for j, p := range parts {
			trimmed := strings.TrimSuffix(p, ",")
			if isMonthName(trimmed) {
				parts[j] = titleCase(strings.ToLower(trimmed)) + p[len(trimmed):]
			} else if up := strings.ToUpper(p); strings.HasSuffix(up, "AM") || strings.HasSuffix(up, "PM") {
				parts[j] = up
			}
		}
		fields[i] = strings.Join(parts, "-")
	}
	return strings.Join(fields, " ")
}

func isMonthName(s string) bool {
	if len(s) < 3 {
		return false
	}
	lower := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || lower == name[:3] {
			return true
		}
	}
	return false
}
