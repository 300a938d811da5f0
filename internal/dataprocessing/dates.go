package dataprocessing

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Month-first numeric layouts come before
// day-first ones, so "03/04/2024" is March 4th while "13/04/2024" still parses.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006.01.02",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06",
	"1/2/06 15:04",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/06",
	"2.1.2006",
	"01-02-06",
	"02-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
}

var nullTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"nat":  {},
	"null": {},
	"none": {},
	"n/a":  {},
	"#n/a": {},
}

// ParseDate parses s with the first layout that accepts it. It never fails:
// blank, null-like and unrecognized values report ok=false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if _, isNull := nullTokens[strings.ToLower(s)]; isNull {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// daysBetween returns to-from in whole days, rounding toward negative infinity
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 && d < 0 {
		days--
	}
	return days
}
