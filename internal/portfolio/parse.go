// Package portfolio holds the user's self-reported holdings and values them
// against live quotes.
package portfolio

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shashrwatshukla/StockXpert/internal/model"
)

// Parse reads "SYM:QTY, SYM:QTY" text. Malformed entries and non-positive
// quantities are dropped silently; a later duplicate symbol wins.
func Parse(raw string) model.Portfolio {
	out := model.Portfolio{}
	for _, entry := range strings.Split(raw, ",") {
		if entry == "" {
			continue
		}
		symbol, qty, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" || strings.TrimSpace(qty) == "" {
			continue
		}
		n, ok := leadingInt(qty)
		if !ok || n <= 0 {
			continue
		}
		out[symbol] = n
	}
	return out
}

// Reconstruct renders p as canonical "SYM:QTY" text in symbol order.
func Reconstruct(p model.Portfolio) string {
	parts := make([]string, 0, len(p))
	for _, sym := range p.Symbols() {
		parts = append(parts, fmt.Sprintf("%s:%d", sym, p[sym]))
	}
	return strings.Join(parts, ", ")
}

// leadingInt parses the integer prefix of s after leading whitespace, so
// "7x" is 7 and "x7" is rejected.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	// Quantities that overflow int are dropped like any malformed entry.
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
