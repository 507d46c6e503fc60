// Package ledger implements the pure aggregation engine: category
// classification, period summaries, projection merging, day bucketing,
// the monthly planning grid, and payment-window grouping. Every function
// here is side-effect free and operates on already-fetched records;
// callers own all storage access.
package ledger

import (
	"fmt"
	"regexp"
	"time"
	"unicode"
)

// monthKeyRegex matches the "YYYY-MM" key format used to join payment
// windows to calendar months. The format doubles as a storage key, so it
// must stay exactly four digits, a hyphen, and a zero-padded month.
var monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// monthNames holds the pt-BR month names used by day and month labels.
var monthNames = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthKey formats a year and month as the canonical "YYYY-MM" key.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// MonthKeyOf returns the month key of the month containing t.
func MonthKeyOf(t time.Time) string {
	return MonthKey(t.Year(), t.Month())
}

// ParseMonthKey parses a "YYYY-MM" key into its year and month.
func ParseMonthKey(key string) (int, time.Month, error) {
	if !monthKeyRegex.MatchString(key) {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	var year, month int
	if _, err := fmt.Sscanf(key, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	return year, time.Month(month), nil
}

// IsMonthKey reports whether key is a well-formed "YYYY-MM" key.
func IsMonthKey(key string) bool {
	return monthKeyRegex.MatchString(key)
}

// MonthInterval returns the half-open interval [start, next) covering the
// month. Using an exclusive end keeps adjacent months from double-counting
// boundary transactions.
func MonthInterval(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthName returns the pt-BR name of the month, lowercase as in running
// text ("16 de março").
func MonthName(month time.Month) string {
	return monthNames[int(month)-1]
}

// MonthTitle returns the month name capitalized for use as a standalone
// heading ("Março").
func MonthTitle(month time.Month) string {
	r := []rune(monthNames[int(month)-1])
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// DayLabel returns the human label for a calendar day: "Hoje" for today,
// "Ontem" for yesterday, otherwise "<day> de <month>". Both the
// transaction and the payable bucketing paths go through this function so
// a day introduced by either source gets an identical label.
func DayLabel(now, day time.Time) string {
	today := dateOnly(now)
	d := dateOnly(day)
	switch {
	case d.Equal(today):
		return "Hoje"
	case d.Equal(today.AddDate(0, 0, -1)):
		return "Ontem"
	default:
		return fmt.Sprintf("%d de %s", d.Day(), MonthName(d.Month()))
	}
}

// DayKey returns the ISO date key ("2006-01-02") used to bucket records by
// calendar day. Time of day carries no grouping significance.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
