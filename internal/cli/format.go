// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// DateLayout is how issue and birth dates are printed.
const DateLayout = "Jan 2, 2006"

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDate formats a date, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// FormatAge describes t relative to now, e.g. "3 days ago".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatMonth formats the month of t, e.g. "Aug 2024".
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// Truncate shortens s to at most n runes, ending in "…" when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
