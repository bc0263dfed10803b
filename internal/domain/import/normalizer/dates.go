// Package normalizer turns raw statement rows into transaction candidates:
// date normalization, description assembly, amount parsing and merchant
// token extraction.
package normalizer

import (
	"regexp"
	"strings"
	"time"
)

var (
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// fallbackLayouts are tried in order when neither slash nor ISO form matches.
var fallbackLayouts = []string{
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// ParseDate parses a textual date token. ok is false when no interpretation
// yields a valid calendar date; ambiguous is true for slash-delimited dates
// where both numbers are <= 12, which default to US MM/DD/YYYY order.
//
// Priority: MM/DD/YYYY, with a DD/MM/YYYY reading only when the first number
// cannot be a month; then exact YYYY-MM-DD; then the fallback layout list.
func ParseDate(s string) (date time.Time, ambiguous bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}

	if m := slashDatePattern.FindStringSubmatch(s); m != nil {
		first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])

		if first > 12 && second <= 12 {
			// Unambiguously DD/MM/YYYY.
			if d, valid := calendarDate(year, second, first); valid {
				return d, false, true
			}
			return time.Time{}, false, false
		}

		if d, valid := calendarDate(year, first, second); valid {
			return d, first <= 12 && second <= 12, true
		}
		return time.Time{}, false, false
	}

	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		if d, valid := calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); valid {
			return d, false, true
		}
		return time.Time{}, false, false
	}

	for _, layout := range fallbackLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), false, true
		}
	}

	return time.Time{}, false, false
}

// calendarDate builds a date and rejects rollovers like 02/30.
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
