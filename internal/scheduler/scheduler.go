package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/shashrwatshukla/StockXpert/internal/orchestrator"
	"github.com/shashrwatshukla/StockXpert/internal/portfolio"
	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// Refresher re-runs the current selection's fetch cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Valuer reprices the portfolio.
type Valuer interface {
	RefreshValuations(ctx context.Context) (view.Valuation, error)
}

// Scheduler manages the periodic jobs of an interactive session.
type Scheduler struct {
	Cron      *cron.Cron
	Session   Refresher
	Portfolio Valuer
	Ctx       context.Context
	log       zerolog.Logger
}

// NewScheduler creates a Scheduler. Expressions carry a seconds field.
func NewScheduler(ctx context.Context, session Refresher, pv Valuer, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Session:   session,
		Portfolio: pv,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the valuation and refresh jobs. An empty expression
// leaves that job out.
func (s *Scheduler) RegisterAll(valuationCron, refreshCron string) error {
	if valuationCron != "" {
		if _, err := s.Cron.AddFunc(valuationCron, s.ValuationTask); err != nil {
			return fmt.Errorf("register valuation task: %w", err)
		}
	}
	if refreshCron != "" {
		if _, err := s.Cron.AddFunc(refreshCron, s.RefreshTask); err != nil {
			return fmt.Errorf("register refresh task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// ValuationTask reprices the portfolio.
func (s *Scheduler) ValuationTask() {
	v, err := s.Portfolio.RefreshValuations(s.Ctx)
	switch {
	case errors.Is(err, portfolio.ErrStale):
		s.log.Debug().Msg("scheduled valuation superseded")
	case err != nil:
		s.log.Warn().Err(err).Msg("scheduled valuation failed")
	default:
		s.log.Debug().Str("total", v.Total).Int("priced", v.Priced).Msg("portfolio revalued")
	}
}

// RefreshTask re-runs the primary fetch for the current selection.
func (s *Scheduler) RefreshTask() {
	err := s.Session.Refresh(s.Ctx)
	switch {
	case errors.Is(err, orchestrator.ErrNoTicker):
		s.log.Debug().Msg("scheduled refresh skipped, no ticker")
	case err != nil:
		s.log.Warn().Err(err).Msg("scheduled refresh failed")
	}
}
