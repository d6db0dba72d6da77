package model

import (
	"bytes"
	"encoding/json"
)

// HistoryPoint is one trading day as served by the backend. Indicator fields
// are nil while the backend's rolling windows are still warming up.
type HistoryPoint struct {
	Date      string   `json:"Date"`
	Open      *float64 `json:"Open"`
	High      *float64 `json:"High"`
	Low       *float64 `json:"Low"`
	Close     *float64 `json:"Close"`
	Volume    *float64 `json:"Volume"`
	BBUpper   *float64 `json:"BB_Upper"`
	BBLower   *float64 `json:"BB_Lower"`
	ATR       *float64 `json:"ATR"`
	MACD      *float64 `json:"MACD"`
	Signal    *float64 `json:"Signal"`
	Histogram *float64 `json:"Histogram"`
	RSI       *float64 `json:"RSI"`
}

// CompanyInfo holds the fundamentals the dashboard shows. Every field may be missing.
type CompanyInfo struct {
	Symbol           string   `json:"symbol,omitempty"`
	ShortName        string   `json:"shortName,omitempty"`
	Sector           string   `json:"sector,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	Website          string   `json:"website,omitempty"`
	Summary          string   `json:"longBusinessSummary,omitempty"`
	MarketCap        *float64 `json:"marketCap,omitempty"`
	TrailingPE       *float64 `json:"trailingPE,omitempty"`
	TrailingEPS      *float64 `json:"trailingEps,omitempty"`
	DividendYield    *float64 `json:"dividendYield,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow,omitempty"`
	AverageVolume    *float64 `json:"averageVolume,omitempty"`
	Beta             *float64 `json:"beta,omitempty"`
}

// StockData is the primary payload: price history plus company info.
type StockData struct {
	History []HistoryPoint `json:"history"`
	Info    CompanyInfo    `json:"info"`
}

// NotAvailable is the backend's marker for a missing quote.
const NotAvailable = "N/A"

// Quote is a price that may be unavailable. On the wire it is either a
// number or the string "N/A".
type Quote struct {
	Price     float64
	Available bool
}

// PriceQuote returns an available quote.
func PriceQuote(price float64) Quote {
	return Quote{Price: price, Available: true}
}

func (q *Quote) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		*q = Quote{}
		return nil
	}
	var price float64
	if err := json.Unmarshal(data, &price); err != nil {
		return err
	}
	*q = PriceQuote(price)
	return nil
}

func (q Quote) MarshalJSON() ([]byte, error) {
	if !q.Available {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(q.Price)
}

// SimilarStock is one peer of the selected ticker.
type SimilarStock struct {
	Symbol string `json:"symbol"`
	Price  Quote  `json:"price"`
}

// SimilarStocks is the payload of the similar-stocks endpoint.
type SimilarStocks struct {
	Sector  string         `json:"sector"`
	Similar []SimilarStock `json:"similar"`
}

// NewsItem is a single headline.
type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date"`
}
