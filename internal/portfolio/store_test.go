package portfolio

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashrwatshukla/StockXpert/internal/backend"
	"github.com/shashrwatshukla/StockXpert/internal/model"
	"github.com/shashrwatshukla/StockXpert/internal/storage"
	"github.com/shashrwatshukla/StockXpert/internal/view"
)

type panel struct {
	mu         sync.Mutex
	input      string
	holdings   []view.Holdings
	valuations []view.Valuation
}

func (p *panel) SetPortfolioInput(raw string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = raw
}

func (p *panel) RenderHoldings(h view.Holdings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.holdings = append(p.holdings, h)
}

func (p *panel) RenderValuation(v view.Valuation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.valuations = append(p.valuations, v)
}

func (p *panel) lastValuation(t *testing.T) view.Valuation {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.valuations)
	return p.valuations[len(p.valuations)-1]
}

type notices struct {
	texts []string
	kinds []view.MessageKind
}

func (n *notices) Show(text string, kind view.MessageKind) {
	n.texts = append(n.texts, text)
	n.kinds = append(n.kinds, kind)
}

type fixture struct {
	store   *Store
	kv      *storage.Memory
	prices  *backend.MockFetcher
	panel   *panel
	notices *notices
}

func newFixture() *fixture {
	f := &fixture{
		kv: storage.NewMemory(),
		prices: &backend.MockFetcher{Prices: map[string]model.Quote{
			"AAA": model.PriceQuote(100),
			"CCC": model.PriceQuote(10.5),
			"TCS": model.PriceQuote(3850.25),
		}},
		panel:   &panel{},
		notices: &notices{},
	}
	f.store = NewStore(Deps{
		KV:      f.kv,
		Prices:  f.prices,
		Sink:    f.panel,
		Notices: f.notices,
		Log:     zerolog.Nop(),
	})
	return f
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.Portfolio
	}{
		{"mixed valid and invalid", "AAA:5, BAD, BBB:xyz, CCC:3", model.Portfolio{"AAA": 5, "CCC": 3}},
		{"trim and uppercase", "  tcs : 10 ", model.Portfolio{"TCS": 10}},
		{"integer prefix", "A:7x, B:5 ", model.Portfolio{"A": 7, "B": 5}},
		{"non-positive dropped", "A:0, B:-2, C:1", model.Portfolio{"C": 1}},
		{"empty symbol dropped", " :4", model.Portfolio{}},
		{"empty segments", ",,A:1,,", model.Portfolio{"A": 1}},
		{"extra colon", "A:3:9", model.Portfolio{"A": 3}},
		{"duplicate last wins", "A:1, a:2", model.Portfolio{"A": 2}},
		{"overflow rejected", "A:99999999999999999999", model.Portfolio{}},
		{"empty", "", model.Portfolio{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.raw))
		})
	}
}

func TestReconstruct(t *testing.T) {
	assert.Equal(t, "AAA:5, CCC:3", Reconstruct(model.Portfolio{"CCC": 3, "AAA": 5}))
	assert.Equal(t, "", Reconstruct(model.Portfolio{}))
}

func TestStore_SaveOverwritesAndPersists(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.store.Save(ctx, "TCS:1"))
	require.NoError(t, f.store.Save(ctx, "AAA:5, BAD, BBB:xyz, CCC:3"))

	assert.Equal(t, model.Portfolio{"AAA": 5, "CCC": 3}, f.store.Holdings())

	stored, ok, err := f.kv.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"AAA":5,"CCC":3}`, stored)

	assert.Equal(t, []string{SavedNotice, SavedNotice}, f.notices.texts)
	assert.Equal(t, view.Success, f.notices.kinds[0])

	v := f.panel.lastValuation(t)
	assert.Equal(t, "₹531.50", v.Total)
	assert.Equal(t, 2, v.Priced)
}

func TestStore_LoadRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, "ccc:3, aaa:5"))

	g := newFixture()
	g.kv = f.kv
	g.store = NewStore(Deps{KV: f.kv, Prices: g.prices, Sink: g.panel, Log: zerolog.Nop()})
	require.NoError(t, g.store.Load(ctx))

	assert.Equal(t, model.Portfolio{"AAA": 5, "CCC": 3}, g.store.Holdings())
	assert.Equal(t, "AAA:5, CCC:3", g.panel.input)
	assert.Equal(t, "AAA:5, CCC:3", g.store.Reconstruct())
	require.Len(t, g.panel.holdings, 1)
	assert.Len(t, g.panel.holdings[0].Rows, 2)
	assert.Equal(t, "₹531.50", g.panel.lastValuation(t).Total)
}

func TestStore_LoadMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	require.NoError(t, f.store.Load(ctx))
	assert.Empty(t, f.store.Holdings())
	assert.Empty(t, f.panel.input)
	assert.Equal(t, view.NoHoldings, f.panel.holdings[0].Empty)
	assert.Equal(t, "₹0.00", f.panel.lastValuation(t).Total)
	assert.Empty(t, f.prices.Calls("batch-prices"), "empty portfolio needs no quotes")

	g := newFixture()
	require.NoError(t, g.kv.Set(StorageKey, "{not json"))
	require.NoError(t, g.store.Load(ctx))
	assert.Empty(t, g.store.Holdings())
	assert.Equal(t, "₹0.00", g.panel.lastValuation(t).Total)
}

type unreadableKV struct{ storage.KV }

func (unreadableKV) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }

func TestStore_LoadReadFailureStillRenders(t *testing.T) {
	f := newFixture()
	f.store.kv = unreadableKV{storage.NewMemory()}

	err := f.store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")

	assert.Empty(t, f.store.Holdings())
	assert.Empty(t, f.panel.input)
	require.Len(t, f.panel.holdings, 1)
	assert.Equal(t, view.NoHoldings, f.panel.holdings[0].Empty)
	assert.Equal(t, "₹0.00", f.panel.lastValuation(t).Total)
}

func TestStore_UnavailableQuotesExcluded(t *testing.T) {
	f := newFixture()
	f.prices.Prices["ZZZ"] = model.Quote{}
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, "TCS:5, ZZZ:2, MISSING:1"))

	v := f.panel.lastValuation(t)
	assert.Equal(t, "₹19,251.25", v.Total)
	assert.Equal(t, 1, v.Priced)
	require.Len(t, v.Rows, 3)

	byTicker := map[string]view.HoldingRow{}
	for _, r := range v.Rows {
		byTicker[r.Symbol] = r
	}
	assert.Equal(t, "₹3,850.25", byTicker["TCS"].Price)
	assert.Equal(t, "₹19,251.25", byTicker["TCS"].Value)
	assert.Equal(t, "N/A", byTicker["ZZZ"].Price)
	assert.Equal(t, "N/A", byTicker["MISSING"].Value)

	calls := f.prices.Calls("batch-prices")
	require.NotEmpty(t, calls)
	assert.Equal(t, []string{"MISSING,TCS,ZZZ"}, calls[len(calls)-1].Args)
}

func TestStore_RowPriceGrouped(t *testing.T) {
	f := newFixture()
	f.prices.Prices["BIG"] = model.PriceQuote(1234567.891)
	require.NoError(t, f.store.Save(context.Background(), "BIG:1"))

	row := f.panel.lastValuation(t).Rows[0]
	assert.Equal(t, "₹1,234,567.89", row.Price)
	assert.Equal(t, "₹1,234,567.89", row.Value)
}

func TestStore_FailedRefreshKeepsDisplay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, "TCS:1"))
	rendered := len(f.panel.valuations)

	f.prices.PricesErr = errors.New("connection refused")
	_, err := f.store.RefreshValuations(ctx)
	assert.Error(t, err)
	assert.Len(t, f.panel.valuations, rendered, "no re-render on failure")
	assert.Equal(t, "₹3,850.25", f.panel.lastValuation(t).Total)
}

type failingKV struct{ storage.KV }

func (failingKV) Set(string, string) error { return errors.New("disk full") }

func TestStore_PersistFailure(t *testing.T) {
	f := newFixture()
	f.store.kv = failingKV{storage.NewMemory()}

	err := f.store.Save(context.Background(), "TCS:1")
	assert.Error(t, err)
	assert.Equal(t, []view.MessageKind{view.Error}, f.notices.kinds)
	assert.Equal(t, model.Portfolio{"TCS": 1}, f.store.Holdings())
}
