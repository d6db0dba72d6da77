package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shashrwatshukla/StockXpert/internal/backend"
	"github.com/shashrwatshukla/StockXpert/internal/daterange"
	"github.com/shashrwatshukla/StockXpert/internal/model"
	"github.com/shashrwatshukla/StockXpert/internal/portfolio"
	"github.com/shashrwatshukla/StockXpert/internal/recorder"
	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// maxAttempts bounds the primary fetch per user action: the first try plus
// one retry on the default range after a 404.
const maxAttempts = 2

// Refresh runs one fetch cycle for the current selection. It returns the
// primary fetch error, if any, after it has been shown to the user.
func (s *Session) Refresh(ctx context.Context) error {
	return s.cycle(ctx, uuid.NewString(), 1)
}

func (s *Session) cycle(ctx context.Context, actionID string, attempt int) error {
	s.mu.Lock()
	if s.sel.Ticker == "" {
		s.mu.Unlock()
		return ErrNoTicker
	}
	if s.sel.StartDate == "" {
		if err := s.applyRangeLocked(daterange.DefaultToken); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.gen++
	gen := s.gen
	sel := s.sel
	s.phase = Loading
	s.sink.ShowLoading(sel.Ticker)
	s.sink.SetPanelsVisible(false)
	s.mu.Unlock()

	if s.notices != nil {
		s.notices.Hide()
	}
	defer s.applyIfCurrent(gen, func() {
		s.phase = Idle
		s.sink.HideLoading()
	})

	log := s.log.With().
		Str("action", actionID).
		Str("ticker", sel.Ticker).
		Str("start", sel.StartDate).
		Str("end", sel.EndDate).
		Int("attempt", attempt).
		Logger()

	start := time.Now()
	data, err := s.fetcher.StockData(ctx, sel.Ticker, sel.StartDate, sel.EndDate)
	evt := &recorder.CycleEvent{
		ID:        actionID,
		Ticker:    sel.Ticker,
		StartDate: sel.StartDate,
		EndDate:   sel.EndDate,
		Attempt:   attempt,
		Elapsed:   time.Since(start),
	}
	var se *backend.StatusError
	if errors.As(err, &se) {
		evt.Status, evt.Detail = se.StatusCode, se.Detail
	}

	switch {
	case err == nil:
		if data == nil {
			data = &model.StockData{}
		}
		evt.Rows = len(data.History)
		applied := s.applyIfCurrent(gen, func() {
			s.outcome = Rendered
			s.sink.SetPanelsVisible(true)
			s.sink.RenderCharts(view.BuildCharts(sel.Ticker, data.History, sel.ChartStyle))
			s.sink.RenderCompanyInfo(view.BuildCompanyInfo(data.Info, s.format))
		})
		if !applied {
			log.Debug().Msg("dropping stale stock data")
			s.record(evt, "stale")
			return nil
		}
		log.Info().Int("rows", len(data.History)).Dur("elapsed", evt.Elapsed).Msg("stock data rendered")
		s.record(evt, string(Rendered))
		s.launchSecondary(ctx, gen, sel.Ticker)
		return nil

	case backend.IsNotFound(err) && attempt < maxAttempts:
		s.record(evt, "not_found")
		retry := s.applyIfCurrent(gen, func() {
			_ = s.applyRangeLocked(daterange.DefaultToken)
		})
		if !retry {
			return nil
		}
		log.Info().Msg("no data for range, retrying with default range")
		return s.cycle(ctx, actionID, attempt+1)

	case errors.Is(err, context.Canceled):
		s.record(evt, "canceled")
		return err

	default:
		msg := ErrorMessage(err)
		applied := s.applyIfCurrent(gen, func() {
			s.outcome = Errored
			s.sink.SetPanelsVisible(false)
			if s.notices != nil {
				s.notices.Show(msg, view.Error)
			}
		})
		if !applied {
			log.Debug().Err(err).Msg("dropping stale fetch error")
			s.record(evt, "stale")
			return nil
		}
		log.Error().Err(err).Msg("stock data fetch failed")
		s.record(evt, string(Errored))
		return err
	}
}

// launchSecondary starts the similar-stocks, news and valuation fetches.
// They outlive ctx's cancellation and their failures are only logged.
func (s *Session) launchSecondary(ctx context.Context, gen uint64, ticker string) {
	bg := context.WithoutCancel(ctx)
	g := new(errgroup.Group)

	s.mu.Lock()
	s.secondary = g
	s.mu.Unlock()

	log := s.log.With().Str("ticker", ticker).Logger()

	g.Go(func() error {
		similar, err := s.fetcher.SimilarStocks(bg, ticker)
		if err != nil {
			log.Warn().Err(err).Msg("could not fetch similar stocks")
			return nil
		}
		if !s.applyIfCurrent(gen, func() { s.sink.RenderSimilar(view.BuildSimilar(*similar, s.format)) }) {
			log.Debug().Msg("dropping stale similar stocks")
		}
		return nil
	})

	g.Go(func() error {
		news, err := s.fetcher.News(bg, ticker)
		if err != nil {
			log.Warn().Err(err).Msg("could not fetch news")
			return nil
		}
		if !s.applyIfCurrent(gen, func() { s.sink.RenderNews(view.BuildNews(news)) }) {
			log.Debug().Msg("dropping stale news")
		}
		return nil
	})

	if s.portfolio != nil {
		g.Go(func() error {
			if _, err := s.portfolio.RefreshValuations(bg); err != nil && !errors.Is(err, portfolio.ErrStale) {
				log.Warn().Err(err).Msg("failed to update portfolio")
			}
			return nil
		})
	}
}

func (s *Session) record(evt *recorder.CycleEvent, outcome string) {
	evt.Outcome = outcome
	if err := s.rec.RecordCycle(evt); err != nil {
		s.log.Warn().Err(err).Msg("failed to record fetch cycle")
	}
}
