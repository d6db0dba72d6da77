package backend

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shashrwatshukla/StockXpert/internal/model"
)

// Call records one request made against a MockFetcher.
type Call struct {
	Endpoint string
	Args     []string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	SymbolList []string
	SymbolsErr error

	// StockDataFunc overrides the generated history when set.
	StockDataFunc func(ticker, startDate, endDate string) (*model.StockData, error)
	BasePrice     float64

	Similar    *model.SimilarStocks
	SimilarErr error
	NewsItems  []model.NewsItem
	NewsErr    error
	Prices     map[string]model.Quote
	PricesErr  error

	// Gate, when non-nil, holds the similar-stocks, news and batch-price
	// calls until it is closed.
	Gate chan struct{}

	mu    sync.Mutex
	calls []Call
}

// NewDemoFetcher returns a MockFetcher with a small offline universe.
func NewDemoFetcher() *MockFetcher {
	return &MockFetcher{
		SymbolList: []string{"HDFCBANK", "INFY", "RELIANCE", "TCS"},
		BasePrice:  2500,
		Similar: &model.SimilarStocks{
			Sector: "Energy",
			Similar: []model.SimilarStock{
				{Symbol: "ONGC", Price: model.PriceQuote(268.4)},
				{Symbol: "BPCL", Price: model.Quote{}},
			},
		},
		NewsItems: []model.NewsItem{
			{Title: "Markets open higher", Link: "https://example.com/markets", Date: "2 hours ago"},
		},
		Prices: map[string]model.Quote{
			"HDFCBANK": model.PriceQuote(1650.5),
			"INFY":     model.PriceQuote(1480),
			"RELIANCE": model.PriceQuote(2500.75),
			"TCS":      model.PriceQuote(3850.25),
		},
	}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) record(endpoint string, args ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Endpoint: endpoint, Args: args})
}

// Calls returns the recorded calls to endpoint, oldest first.
func (m *MockFetcher) Calls(endpoint string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.calls {
		if c.Endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockFetcher) wait(ctx context.Context) error {
	if m.Gate == nil {
		return nil
	}
	select {
	case <-m.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockFetcher) Symbols(_ context.Context) ([]string, error) {
	m.record("symbols")
	return m.SymbolList, m.SymbolsErr
}

func (m *MockFetcher) StockData(_ context.Context, ticker, startDate, endDate string) (*model.StockData, error) {
	m.record("stock-data", ticker, startDate, endDate)
	if m.StockDataFunc != nil {
		return m.StockDataFunc(ticker, startDate, endDate)
	}
	return &model.StockData{
		History: GenerateHistory(startDate, endDate, m.BasePrice),
		Info:    model.CompanyInfo{Symbol: ticker + ".NS", ShortName: ticker},
	}, nil
}

func (m *MockFetcher) SimilarStocks(ctx context.Context, ticker string) (*model.SimilarStocks, error) {
	m.record("similar-stocks", ticker)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.SimilarErr != nil {
		return nil, m.SimilarErr
	}
	if m.Similar == nil {
		return &model.SimilarStocks{}, nil
	}
	return m.Similar, nil
}

func (m *MockFetcher) News(ctx context.Context, ticker string) ([]model.NewsItem, error) {
	m.record("news", ticker)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.NewsItems, m.NewsErr
}

func (m *MockFetcher) BatchPrices(ctx context.Context, symbols []string) (map[string]model.Quote, error) {
	m.record("batch-prices", strings.Join(symbols, ","))
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.PricesErr != nil {
		return nil, m.PricesErr
	}
	out := make(map[string]model.Quote, len(symbols))
	for _, s := range symbols {
		if q, ok := m.Prices[s]; ok {
			out[s] = q
		} else {
			out[s] = model.Quote{}
		}
	}
	return out, nil
}

// GenerateHistory builds one weekday row per date in [startDate, endDate]
// around basePrice. Unparseable dates yield nil.
func GenerateHistory(startDate, endDate string, basePrice float64) []model.HistoryPoint {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil
	}
	if basePrice == 0 {
		basePrice = 100
	}
	f := func(v float64) *float64 { return &v }

	var out []model.HistoryPoint
	for d, i := start, 0; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%20-10)*0.002)
		hist := float64(i%7-3) * 0.5
		out = append(out, model.HistoryPoint{
			Date:      d.Format("2006-01-02"),
			Open:      f(p * 0.999),
			High:      f(p * 1.005),
			Low:       f(p * 0.995),
			Close:     f(p),
			Volume:    f(1000000),
			BBUpper:   f(p * 1.02),
			BBLower:   f(p * 0.98),
			ATR:       f(p * 0.01),
			MACD:      f(hist * 2),
			Signal:    f(hist),
			Histogram: f(hist),
			RSI:       f(30 + float64(i%40)),
		})
		i++
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}
