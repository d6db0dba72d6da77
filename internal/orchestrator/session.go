// Package orchestrator sequences the dashboard's fetches for one user
// session and pushes the results to a render sink.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/shashrwatshukla/StockXpert/internal/backend"
	"github.com/shashrwatshukla/StockXpert/internal/daterange"
	"github.com/shashrwatshukla/StockXpert/internal/model"
	"github.com/shashrwatshukla/StockXpert/internal/recorder"
	"github.com/shashrwatshukla/StockXpert/internal/view"
)

var ErrNoTicker = errors.New("no ticker selected")

// DefaultTicker is preselected when the backend lists it.
const DefaultTicker = "RELIANCE"

// Phase is where the current fetch cycle is.
type Phase string

const (
	Idle    Phase = "idle"
	Loading Phase = "loading"
)

// Outcome is how the last applied cycle ended.
type Outcome string

const (
	None     Outcome = ""
	Rendered Outcome = "rendered"
	Errored  Outcome = "errored"
)

// Notifier shows and hides the message box.
type Notifier interface {
	Show(text string, kind view.MessageKind)
	Hide()
}

// Portfolio is the part of the portfolio store a session drives.
type Portfolio interface {
	Load(ctx context.Context) error
	RefreshValuations(ctx context.Context) (view.Valuation, error)
}

// Deps wires a Session. Portfolio, Recorder, Formatter and Now are optional.
type Deps struct {
	Fetcher       backend.Fetcher
	Sink          view.Sink
	Notices       Notifier
	Portfolio     Portfolio
	Formatter     *view.Formatter
	Recorder      recorder.Recorder
	DefaultTicker string
	Now           func() time.Time
	Log           zerolog.Logger
}

// Session is the dashboard state for one user. All sink updates for a cycle
// are applied only while that cycle is the latest one.
type Session struct {
	fetcher       backend.Fetcher
	sink          view.Sink
	notices       Notifier
	portfolio     Portfolio
	format        *view.Formatter
	rec           recorder.Recorder
	defaultTicker string
	now           func() time.Time
	log           zerolog.Logger

	mu        sync.Mutex
	sel       model.Selection
	active    daterange.Token
	symbols   []string
	phase     Phase
	outcome   Outcome
	gen       uint64
	collapsed bool
	secondary *errgroup.Group
}

// New creates an idle Session with the Candlestick style and no ticker.
func New(d Deps) *Session {
	if d.Formatter == nil {
		d.Formatter = view.DefaultFormatter()
	}
	if d.Recorder == nil {
		d.Recorder = recorder.NewNoopRecorder()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.DefaultTicker == "" {
		d.DefaultTicker = DefaultTicker
	}
	return &Session{
		fetcher:       d.Fetcher,
		sink:          d.Sink,
		notices:       d.Notices,
		portfolio:     d.Portfolio,
		format:        d.Formatter,
		rec:           d.Recorder,
		defaultTicker: d.DefaultTicker,
		now:           d.Now,
		log:           d.Log.With().Str("component", "orchestrator").Logger(),
		sel:           model.Selection{ChartStyle: model.Candlestick},
		phase:         Idle,
	}
}

// Selection returns the current selection.
func (s *Session) Selection() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// ActiveRange returns the highlighted range token, empty for explicit dates.
func (s *Session) ActiveRange() daterange.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Phase reports whether a primary fetch is in flight.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Outcome reports how the latest primary fetch ended.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Symbols returns the symbol list loaded by Init.
func (s *Session) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.symbols)
}

// Init loads the symbol list and the saved portfolio, selects the default
// range and runs the first refresh.
func (s *Session) Init(ctx context.Context) error {
	s.LoadSymbols(ctx)

	if s.portfolio != nil {
		if err := s.portfolio.Load(ctx); err != nil {
			s.log.Error().Err(err).Msg("failed to load portfolio")
		}
	}

	err := s.SelectRange(ctx, daterange.DefaultToken)
	if errors.Is(err, ErrNoTicker) {
		s.log.Warn().Msg("no ticker available, skipping initial load")
		return nil
	}
	return err
}

// LoadSymbols fetches the selectable tickers and picks the default one when
// nothing is selected yet. Failure is shown once and not retried.
func (s *Session) LoadSymbols(ctx context.Context) {
	symbols, err := s.fetcher.Symbols(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load symbols")
		if s.notices != nil {
			s.notices.Show("Failed to load symbols", view.Error)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = symbols
	if s.sel.Ticker == "" && len(symbols) > 0 {
		if slices.Contains(symbols, s.defaultTicker) {
			s.sel.Ticker = s.defaultTicker
		} else {
			s.sel.Ticker = symbols[0]
		}
	}
	s.sink.RenderSymbols(symbols, s.sel.Ticker)
	s.log.Info().Int("count", len(symbols)).Str("selected", s.sel.Ticker).Msg("symbols loaded")
}

// SetTicker selects a ticker and refreshes.
func (s *Session) SetTicker(ctx context.Context, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return ErrNoTicker
	}
	s.mu.Lock()
	s.sel.Ticker = ticker
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Prepare sets the ticker and chart style without fetching, so a following
// range trigger runs a single cycle. Empty values keep the current ones.
func (s *Session) Prepare(ticker string, style model.ChartStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticker = strings.ToUpper(strings.TrimSpace(ticker)); ticker != "" {
		s.sel.Ticker = ticker
	}
	if style != "" {
		s.sel.ChartStyle = style
	}
}

// SetChartStyle changes how the price series is drawn and refreshes.
func (s *Session) SetChartStyle(ctx context.Context, style model.ChartStyle) error {
	s.mu.Lock()
	s.sel.ChartStyle = style
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SelectRange applies a relative range, highlights it and refreshes.
func (s *Session) SelectRange(ctx context.Context, token daterange.Token) error {
	s.mu.Lock()
	err := s.applyRangeLocked(token)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// SetCustomDates applies explicit dates, clears the highlight and refreshes.
func (s *Session) SetCustomDates(ctx context.Context, start, end string) error {
	r, err := daterange.Custom(start, end)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sel.StartDate, s.sel.EndDate = r.Start, r.End
	s.active = ""
	s.sink.SetRange("", r.Start, r.End)
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// TogglePortfolio flips the portfolio panel between collapsed and expanded.
func (s *Session) TogglePortfolio() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed = !s.collapsed
	s.sink.SetPortfolioCollapsed(s.collapsed)
	return s.collapsed
}

// WaitSecondary blocks until the latest cycle's secondary fetches finish.
func (s *Session) WaitSecondary() {
	s.mu.Lock()
	g := s.secondary
	s.mu.Unlock()
	if g != nil {
		_ = g.Wait()
	}
}

func (s *Session) applyRangeLocked(token daterange.Token) error {
	r, err := daterange.Compute(token, s.now(), s.sel.Ticker != "")
	if err != nil {
		return err
	}
	s.sel.StartDate, s.sel.EndDate = r.Start, r.End
	s.active = token
	s.sink.SetRange(string(token), r.Start, r.End)
	return nil
}

// applyIfCurrent runs fn under the session lock when gen is still the latest
// cycle and reports whether it ran.
func (s *Session) applyIfCurrent(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	fn()
	return true
}

// ErrorMessage is the user-visible text for a failed primary fetch.
func ErrorMessage(err error) string {
	var se *backend.StatusError
	if errors.As(err, &se) {
		if se.Detail != "" {
			return "Error: " + se.Detail
		}
		return "Error: Failed to fetch data"
	}
	return fmt.Sprintf("Error: %v", err)
}
