package backend

import (
	"context"

	"github.com/shashrwatshukla/StockXpert/internal/model"
)

// Fetcher is the REST contract the dashboard consumes.
type Fetcher interface {
	Symbols(ctx context.Context) ([]string, error)
	StockData(ctx context.Context, ticker, startDate, endDate string) (*model.StockData, error)
	SimilarStocks(ctx context.Context, ticker string) (*model.SimilarStocks, error)
	News(ctx context.Context, ticker string) ([]model.NewsItem, error)
	BatchPrices(ctx context.Context, symbols []string) (map[string]model.Quote, error)
	Name() string
}
