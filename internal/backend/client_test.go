package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "", 5*time.Second, zerolog.Nop())
}

func TestClient_StockDataRequest(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"history":[{"Date":"2024-03-14","Close":101.5,"RSI":null}],"info":{"shortName":"Reliance Industries","trailingPE":24.1}}`))
	})

	data, err := c.StockData(context.Background(), "RELIANCE", "2023-03-15", "2024-03-15")
	require.NoError(t, err)

	assert.Equal(t, "/api/stock-data/RELIANCE", gotPath)
	assert.Equal(t, "start_date=2023-03-15&end_date=2024-03-15", gotQuery)
	require.Len(t, data.History, 1)
	require.NotNil(t, data.History[0].Close)
	assert.Equal(t, 101.5, *data.History[0].Close)
	assert.Nil(t, data.History[0].RSI)
	assert.Equal(t, "Reliance Industries", data.Info.ShortName)
}

func TestClient_NotFoundCarriesDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"No data found for ticker XYZ"}`))
	})

	_, err := c.StockData(context.Background(), "XYZ", "2024-01-01", "2024-02-01")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "No data found for ticker XYZ", se.Detail)
}

func TestClient_ServerErrorWithoutDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`internal error`))
	})

	_, err := c.News(context.Background(), "TCS")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Empty(t, se.Detail)
}

func TestClient_ValidationDetailIgnored(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["query","start_date"],"msg":"field required"}]}`))
	})

	_, err := c.StockData(context.Background(), "TCS", "", "")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Empty(t, se.Detail)
}

func TestClient_BatchPricesQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/batch-prices", r.URL.Path)
		_, _ = w.Write([]byte(`{"TCS":3850.25,"M&M":"N/A"}`))
	})

	prices, err := c.BatchPrices(context.Background(), []string{"TCS", "M&M"})
	require.NoError(t, err)

	assert.Equal(t, "symbols=TCS,M%26M", gotQuery)
	assert.True(t, prices["TCS"].Available)
	assert.Equal(t, 3850.25, prices["TCS"].Price)
	assert.False(t, prices["M&M"].Available)
}

func TestClient_SymbolsSimilarNews(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/symbols", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbols":["INFY","TCS"]}`))
	})
	mux.HandleFunc("/api/similar-stocks/TCS", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sector":"Technology","similar":[{"symbol":"INFY","price":1480}]}`))
	})
	mux.HandleFunc("/api/news/TCS", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"news":[{"title":"Q4 results","link":"https://news.example/q4","date":"2024-03-14"}]}`))
	})
	c := newTestClient(t, mux.ServeHTTP)
	ctx := context.Background()

	symbols, err := c.Symbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"INFY", "TCS"}, symbols)

	similar, err := c.SimilarStocks(ctx, "TCS")
	require.NoError(t, err)
	assert.Equal(t, "Technology", similar.Sector)
	require.Len(t, similar.Similar, 1)
	assert.Equal(t, 1480.0, similar.Similar[0].Price.Price)

	news, err := c.News(ctx, "TCS")
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Q4 results", news[0].Title)
}

func TestClient_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	_, err := c.Symbols(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode /api/symbols")
}

func TestGenerateHistory_SkipsWeekends(t *testing.T) {
	rows := GenerateHistory("2024-03-08", "2024-03-12", 100)
	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
	}
	assert.Equal(t, []string{"2024-03-08", "2024-03-11", "2024-03-12"}, dates)
	assert.Nil(t, GenerateHistory("bad", "2024-03-12", 100))
}
