package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shashrwatshukla/StockXpert/internal/model"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Detail     string // from the {"detail": ...} error payload, may be empty
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client implements Fetcher over HTTP.
type Client struct {
	BaseURL string
	Client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a client with optional proxy support.
func NewClient(baseURL, proxyURL string, timeout time.Duration, log zerolog.Logger) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log.With().Str("client", "stockxpert-api").Logger(),
	}
}

func (c *Client) Name() string { return "stockxpert-api" }

func (c *Client) Symbols(ctx context.Context) ([]string, error) {
	var result struct {
		Symbols []string `json:"symbols"`
	}
	if err := c.getJSON(ctx, "/api/symbols", "", &result); err != nil {
		return nil, fmt.Errorf("fetch symbols: %w", err)
	}
	return result.Symbols, nil
}

func (c *Client) StockData(ctx context.Context, ticker, startDate, endDate string) (*model.StockData, error) {
	path := "/api/stock-data/" + url.PathEscape(ticker)
	query := "start_date=" + url.QueryEscape(startDate) + "&end_date=" + url.QueryEscape(endDate)
	var data model.StockData
	if err := c.getJSON(ctx, path, query, &data); err != nil {
		return nil, fmt.Errorf("fetch stock data: %w", err)
	}
	return &data, nil
}

func (c *Client) SimilarStocks(ctx context.Context, ticker string) (*model.SimilarStocks, error) {
	var data model.SimilarStocks
	if err := c.getJSON(ctx, "/api/similar-stocks/"+url.PathEscape(ticker), "", &data); err != nil {
		return nil, fmt.Errorf("fetch similar stocks: %w", err)
	}
	return &data, nil
}

func (c *Client) News(ctx context.Context, ticker string) ([]model.NewsItem, error) {
	var result struct {
		News []model.NewsItem `json:"news"`
	}
	if err := c.getJSON(ctx, "/api/news/"+url.PathEscape(ticker), "", &result); err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	return result.News, nil
}

func (c *Client) BatchPrices(ctx context.Context, symbols []string) (map[string]model.Quote, error) {
	escaped := make([]string, len(symbols))
	for i, s := range symbols {
		escaped[i] = url.QueryEscape(s)
	}
	var prices map[string]model.Quote
	if err := c.getJSON(ctx, "/api/batch-prices", "symbols="+strings.Join(escaped, ","), &prices); err != nil {
		return nil, fmt.Errorf("fetch batch prices: %w", err)
	}
	return prices, nil
}

// getJSON issues a GET and decodes a 2xx body into out. The query is passed
// pre-encoded so the symbols list keeps its literal commas.
func (c *Client) getJSON(ctx context.Context, path, rawQuery string, out any) error {
	endpoint := c.BaseURL + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("GET")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &StatusError{StatusCode: resp.StatusCode, Detail: parseDetail(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// parseDetail extracts a string "detail" field. Validation errors carry a
// list there, which is not a human readable message.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
