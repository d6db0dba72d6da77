package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shashrwatshukla/StockXpert/internal/model"
	"github.com/shashrwatshukla/StockXpert/internal/recorder"
	"github.com/shashrwatshukla/StockXpert/internal/storage"
	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// StorageKey is where the holdings are persisted.
const StorageKey = "stockxpertPortfolio"

// SavedNotice is shown after a successful save.
const SavedNotice = "Portfolio saved!"

// ErrStale is returned when holdings changed while a valuation was in flight.
var ErrStale = errors.New("valuation superseded")

// PriceFetcher is the batch-quote slice of the backend.
type PriceFetcher interface {
	BatchPrices(ctx context.Context, symbols []string) (map[string]model.Quote, error)
}

// Notifier shows transient user messages.
type Notifier interface {
	Show(text string, kind view.MessageKind)
}

// Deps wires a Store. Recorder and Formatter are optional.
type Deps struct {
	KV        storage.KV
	Prices    PriceFetcher
	Sink      view.PortfolioSink
	Notices   Notifier
	Formatter *view.Formatter
	Recorder  recorder.Recorder
	Log       zerolog.Logger
}

// Store owns the holdings, persists them and keeps the valuation current.
type Store struct {
	kv     storage.KV
	prices PriceFetcher
	sink   view.PortfolioSink
	notice Notifier
	format *view.Formatter
	rec    recorder.Recorder
	log    zerolog.Logger

	mu       sync.Mutex
	holdings model.Portfolio
	gen      uint64
}

// NewStore creates an empty Store. Call Load to restore saved holdings.
func NewStore(d Deps) *Store {
	if d.Formatter == nil {
		d.Formatter = view.DefaultFormatter()
	}
	if d.Recorder == nil {
		d.Recorder = recorder.NewNoopRecorder()
	}
	return &Store{
		kv:       d.KV,
		prices:   d.Prices,
		sink:     d.Sink,
		notice:   d.Notices,
		format:   d.Formatter,
		rec:      d.Recorder,
		log:      d.Log.With().Str("component", "portfolio").Logger(),
		holdings: model.Portfolio{},
	}
}

// Holdings returns a copy of the current holdings.
func (s *Store) Holdings() model.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holdings.Clone()
}

// Reconstruct returns the canonical text of the current holdings.
func (s *Store) Reconstruct() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Reconstruct(s.holdings)
}

// Save replaces the holdings with the entries parsed from raw, persists
// them, re-renders and refreshes valuations.
func (s *Store) Save(ctx context.Context, raw string) error {
	parsed := Parse(raw)

	s.mu.Lock()
	s.holdings = parsed
	s.gen++
	s.sink.RenderHoldings(view.BuildHoldings(parsed))
	s.mu.Unlock()

	s.log.Info().Int("holdings", len(parsed)).Msg("portfolio saved")

	if err := s.persist(parsed); err != nil {
		s.log.Error().Err(err).Msg("failed to persist portfolio")
		s.notify("Error: Failed to save portfolio", view.Error)
		return err
	}

	if _, err := s.RefreshValuations(ctx); err != nil && !errors.Is(err, ErrStale) {
		s.log.Warn().Err(err).Msg("valuation after save failed")
	}
	s.notify(SavedNotice, view.Success)
	return nil
}

// Load restores persisted holdings. Missing, unreadable or corrupt data
// yields an empty portfolio. Holdings are always rendered and valued
// afterwards; a read failure is still returned.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, readErr := s.kv.Get(StorageKey)
	if readErr != nil {
		s.log.Error().Err(readErr).Msg("failed to read stored portfolio, starting empty")
		ok = false
	}

	var err error
	restored := model.Portfolio{}
	if ok {
		if restored, err = decode(raw); err != nil {
			s.log.Warn().Err(err).Msg("stored portfolio is corrupt, starting empty")
			restored = model.Portfolio{}
			ok = false
		}
	}

	s.mu.Lock()
	s.holdings = restored
	s.gen++
	if ok {
		s.sink.SetPortfolioInput(Reconstruct(restored))
	}
	s.sink.RenderHoldings(view.BuildHoldings(restored))
	s.mu.Unlock()

	s.log.Info().Int("holdings", len(restored)).Msg("portfolio loaded")

	if _, err := s.RefreshValuations(ctx); err != nil && !errors.Is(err, ErrStale) {
		s.log.Warn().Err(err).Msg("valuation after load failed")
	}
	if readErr != nil {
		return fmt.Errorf("load portfolio: %w", readErr)
	}
	return nil
}

// RefreshValuations prices every holding with one batch request and renders
// the result. On failure the displayed valuation is left untouched.
func (s *Store) RefreshValuations(ctx context.Context) (view.Valuation, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	holdings := s.holdings.Clone()
	if len(holdings) == 0 {
		v := view.Valuation{Total: s.format.MoneyDecimal(decimal.Zero), TotalValue: decimal.Zero}
		s.sink.RenderValuation(v)
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	symbols := holdings.Symbols()
	quotes, err := s.prices.BatchPrices(ctx, symbols)
	if err != nil {
		return view.Valuation{}, fmt.Errorf("price portfolio: %w", err)
	}

	v := s.value(holdings, quotes)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debug().Uint64("gen", gen).Msg("dropping stale valuation")
		return v, ErrStale
	}
	s.sink.RenderValuation(v)
	s.mu.Unlock()

	if err := s.rec.RecordValuation(&recorder.ValuationEvent{
		Holdings:   len(holdings),
		Priced:     v.Priced,
		TotalValue: v.TotalValue.StringFixed(2),
		Currency:   s.format.Code(),
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to record valuation")
	}
	return v, nil
}

func (s *Store) value(holdings model.Portfolio, quotes map[string]model.Quote) view.Valuation {
	total := decimal.Zero
	v := view.Valuation{}
	for _, sym := range holdings.Symbols() {
		qty := holdings[sym]
		row := view.HoldingRow{
			Symbol:   sym,
			Quantity: qty,
			Shares:   fmt.Sprintf("%d shares", qty),
			Price:    model.NotAvailable,
			Value:    model.NotAvailable,
		}
		if q, ok := quotes[sym]; ok && q.Available {
			value := decimal.NewFromFloat(q.Price).Mul(decimal.NewFromInt(int64(qty)))
			total = total.Add(value)
			row.Price = s.format.Money(q.Price)
			row.Value = s.format.MoneyDecimal(value)
			v.Priced++
		}
		v.Rows = append(v.Rows, row)
	}
	v.TotalValue = total
	v.Total = s.format.MoneyDecimal(total)
	return v
}

func (s *Store) persist(p model.Portfolio) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(StorageKey, string(data))
}

func (s *Store) notify(text string, kind view.MessageKind) {
	if s.notice != nil {
		s.notice.Show(text, kind)
	}
}

// decode reads the persisted JSON object and normalises it.
func decode(raw string) (model.Portfolio, error) {
	var stored map[string]int
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}
	out := make(model.Portfolio, len(stored))
	for sym, qty := range stored {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" || qty <= 0 {
			continue
		}
		out[sym] = qty
	}
	return out, nil
}
