package view

import (
	"net/url"

	"github.com/shashrwatshukla/StockXpert/internal/model"
)

// CompanyInfo is the fundamentals panel with every field already formatted.
type CompanyInfo struct {
	Name     string
	Symbol   string
	Sector   string
	Industry string
	Website  string // host name only
	Link     string
	Summary  string

	MarketCap     string
	PERatio       string
	EPS           string
	DividendYield string
	High52w       string
	Low52w        string
	AvgVolume     string
	Beta          string
}

// BuildCompanyInfo formats the sparse info mapping, substituting placeholders.
func BuildCompanyInfo(info model.CompanyInfo, f *Formatter) CompanyInfo {
	out := CompanyInfo{
		Name:          orDefault(info.ShortName, "Company Information"),
		Symbol:        orDefault(info.Symbol, Placeholder),
		Sector:        orDefault(info.Sector, Placeholder),
		Industry:      orDefault(info.Industry, Placeholder),
		Website:       Placeholder,
		Link:          "#",
		Summary:       orDefault(info.Summary, "No summary available."),
		MarketCap:     f.Number(info.MarketCap),
		PERatio:       Ratio(info.TrailingPE),
		EPS:           Ratio(info.TrailingEPS),
		DividendYield: Percent(info.DividendYield),
		High52w:       level(info.FiftyTwoWeekHigh, f),
		Low52w:        level(info.FiftyTwoWeekLow, f),
		AvgVolume:     f.Number(info.AverageVolume),
		Beta:          Ratio(info.Beta),
	}
	if info.Website != "" {
		out.Link = info.Website
		if u, err := url.Parse(info.Website); err == nil && u.Hostname() != "" {
			out.Website = u.Hostname()
		} else {
			out.Website = info.Website
		}
	}
	return out
}

func level(v *float64, f *Formatter) string {
	if missing(v) {
		return Placeholder
	}
	return f.Price(*v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
