// Package view projects fetched market data into render-ready view-models.
// Nothing here performs I/O.
package view

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/shashrwatshukla/StockXpert/internal/model"
)

// Placeholder is shown for any missing numeric field.
const Placeholder = "--"

// DefaultCurrency is the dashboard's display currency.
const DefaultCurrency = money.INR

// Formatter renders numbers with one currency's symbol and precision.
type Formatter struct {
	code     string
	currency *money.Currency
}

// NewFormatter returns a Formatter for an ISO 4217 code known to go-money.
func NewFormatter(code string) (*Formatter, error) {
	c := money.GetCurrency(code)
	if c == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Formatter{code: c.Code, currency: c}, nil
}

// DefaultFormatter formats rupees.
func DefaultFormatter() *Formatter {
	f, _ := NewFormatter(DefaultCurrency)
	return f
}

func (f *Formatter) Code() string   { return f.code }
func (f *Formatter) Symbol() string { return f.currency.Grapheme }

// Money formats v with grouping and the currency's fraction digits, rounding
// half away from zero.
func (f *Formatter) Money(v float64) string {
	return f.MoneyDecimal(decimal.NewFromFloat(v))
}

func (f *Formatter) MoneyDecimal(d decimal.Decimal) string {
	minor := d.Shift(int32(f.currency.Fraction)).Round(0).IntPart()
	return money.New(minor, f.code).Display()
}

// Price is the plain "<symbol>x.xx" form used for quotes and 52-week levels.
func (f *Formatter) Price(v float64) string {
	return fmt.Sprintf("%s%.*f", f.Symbol(), f.currency.Fraction, v)
}

// Quote is Price for an available quote and "N/A" otherwise.
func (f *Formatter) Quote(q model.Quote) string {
	if !q.Available {
		return model.NotAvailable
	}
	return f.Price(q.Price)
}

// Number abbreviates large monetary figures with T/B/M suffixes and groups
// smaller ones as integers.
func (f *Formatter) Number(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}
	n := *v
	switch {
	case n >= 1e12:
		return fmt.Sprintf("%s%.2fT", f.Symbol(), n/1e12)
	case n >= 1e9:
		return fmt.Sprintf("%s%.2fB", f.Symbol(), n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%s%.2fM", f.Symbol(), n/1e6)
	}
	return humanize.Comma(int64(math.Round(n)))
}

// Ratio formats P/E, EPS and beta. Zero is treated as missing.
func Ratio(v *float64) string {
	if missing(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", *v)
}

// Percent formats a fraction as a percentage. Zero is treated as missing.
func Percent(v *float64) string {
	if missing(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func missing(v *float64) bool {
	return v == nil || *v == 0 || math.IsNaN(*v)
}
