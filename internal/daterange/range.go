// Package daterange resolves relative range tokens and explicit dates into
// the canonical YYYY-MM-DD pair sent to the backend.
package daterange

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical date format. Its string order equals date order.
const Layout = "2006-01-02"

// FloorDate is where the "max" range starts.
const FloorDate = "2000-01-01"

// warmupDays pads the 1d range so the backend has rows for indicator warm-up.
const warmupDays = 5

// Token is a relative range shorthand.
type Token string

const (
	OneDay    Token = "1d"
	FiveDays  Token = "5d"
	OneMonth  Token = "1m"
	SixMonths Token = "6m"
	OneYear   Token = "1y"
	FiveYears Token = "5y"
	Max       Token = "max"
)

// DefaultToken is used on first load and when the backend has no data for a range.
const DefaultToken = OneYear

// Tokens lists every token in display order.
var Tokens = []Token{OneDay, FiveDays, OneMonth, SixMonths, OneYear, FiveYears, Max}

var ErrUnknownToken = errors.New("unknown range token")

// Range is an inclusive canonical date range.
type Range struct {
	Start string
	End   string
}

// ParseToken validates a token string.
func ParseToken(s string) (Token, error) {
	for _, t := range Tokens {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownToken, s)
}

// Format renders t's calendar date in its own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Compute resolves token against now. When tickerSelected is true the 1d
// range reaches back an extra five days.
func Compute(token Token, now time.Time, tickerSelected bool) (Range, error) {
	end := midnight(now)
	var start time.Time

	switch token {
	case OneDay:
		start = end.AddDate(0, 0, -1)
		if tickerSelected {
			start = start.AddDate(0, 0, -warmupDays)
		}
	case FiveDays:
		start = end.AddDate(0, 0, -5)
	case OneMonth:
		start = addMonths(end, -1)
	case SixMonths:
		start = addMonths(end, -6)
	case OneYear:
		start = addMonths(end, -12)
	case FiveYears:
		start = addMonths(end, -60)
	case Max:
		return Range{Start: FloorDate, End: Format(end)}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}

	return Range{Start: Format(start), End: Format(end)}, nil
}

// Custom validates explicit dates. A reversed pair is swapped.
func Custom(start, end string) (Range, error) {
	s, err := time.Parse(Layout, start)
	if err != nil {
		return Range{}, fmt.Errorf("start date: %w", err)
	}
	e, err := time.Parse(Layout, end)
	if err != nil {
		return Range{}, fmt.Errorf("end date: %w", err)
	}
	if s.After(e) {
		s, e = e, s
	}
	return Range{Start: Format(s), End: Format(e)}, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addMonths moves t by n calendar months, clamping the day to the last day
// of the target month (Mar 31 - 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
