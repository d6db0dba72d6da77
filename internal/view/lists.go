package view

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shashrwatshukla/StockXpert/internal/model"
)

const (
	NoSimilarStocks = "No similar stocks found"
	NoNews          = "No recent news found"
	NoHoldings      = "Add stocks to portfolio"

	// Placeholders shown on a holding row until its quote arrives.
	PriceLoading = "Loading..."
	ValuePending = "..."
)

type SimilarItem struct {
	Symbol string
	Price  string
}

// SimilarList is the similar-stocks panel. Empty is set when Items is empty.
type SimilarList struct {
	Title string
	Items []SimilarItem
	Empty string
}

func BuildSimilar(data model.SimilarStocks, f *Formatter) SimilarList {
	out := SimilarList{Title: "Similar Stocks in " + orDefault(data.Sector, model.NotAvailable) + " Sector"}
	if len(data.Similar) == 0 {
		out.Empty = NoSimilarStocks
		return out
	}
	for _, s := range data.Similar {
		out.Items = append(out.Items, SimilarItem{Symbol: s.Symbol, Price: f.Quote(s.Price)})
	}
	return out
}

type NewsList struct {
	Items []model.NewsItem
	Empty string
}

func BuildNews(items []model.NewsItem) NewsList {
	if len(items) == 0 {
		return NewsList{Empty: NoNews}
	}
	return NewsList{Items: items}
}

// HoldingRow is one line of the portfolio panel.
type HoldingRow struct {
	Symbol   string
	Quantity int
	Shares   string
	Price    string
	Value    string
}

// Holdings is the portfolio panel before valuation.
type Holdings struct {
	Rows  []HoldingRow
	Empty string
}

// BuildHoldings lists p in symbol order with pending price and value cells.
func BuildHoldings(p model.Portfolio) Holdings {
	if len(p) == 0 {
		return Holdings{Empty: NoHoldings}
	}
	rows := make([]HoldingRow, 0, len(p))
	for _, sym := range p.Symbols() {
		rows = append(rows, HoldingRow{
			Symbol:   sym,
			Quantity: p[sym],
			Shares:   strconv.Itoa(p[sym]) + " shares",
			Price:    PriceLoading,
			Value:    ValuePending,
		})
	}
	return Holdings{Rows: rows}
}

// Valuation is a priced portfolio. Rows whose quote was unavailable show
// "N/A" in both cells and are excluded from Total.
type Valuation struct {
	Rows       []HoldingRow
	Total      string
	TotalValue decimal.Decimal
	Priced     int
}
