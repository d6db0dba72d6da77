package model

import "sort"

// Portfolio maps an uppercased symbol to a positive share count.
type Portfolio map[string]int

// Symbols returns the held symbols in sorted order.
func (p Portfolio) Symbols() []string {
	out := make([]string, 0, len(p))
	for sym := range p {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (p Portfolio) Clone() Portfolio {
	out := make(Portfolio, len(p))
	for sym, qty := range p {
		out[sym] = qty
	}
	return out
}
