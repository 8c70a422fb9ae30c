package normalize

import (
	"strconv"
	"strings"
	"time"
)

// monthsByName maps free-text month names, including the common
// abbreviations that appear in the export ("Sept" among them), to month
// numbers. Lookups are lowercase.
var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseHumanDate parses the export's literal date shape
// "<day> <month-name> <year>", e.g. "9 Apr 2025" or "30 Sept 2025".
// Commas are stripped, the month name is case-insensitive, and dates that
// do not exist on the calendar are rejected.
func ParseHumanDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	parts := strings.Fields(strings.ReplaceAll(s, ",", ""))
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := monthsByName[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		// Normalization moved the date, so the literal was invalid
		// (e.g. "31 Apr 2025").
		return time.Time{}, false
	}
	return d, true
}

// ParseReportMonth parses a reporting-period label "<month-name> <year>",
// e.g. "December 2025", anchoring it to the first day of that month. The
// anchor is only ever used as a date of last resort.
func ParseReportMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	month, ok := monthsByName[strings.ToLower(parts[0])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// ISODate is the layout for resolved record dates.
const ISODate = "2006-01-02"
