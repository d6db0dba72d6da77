package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/shashrwatshukla/StockXpert/internal/backend"
	"github.com/shashrwatshukla/StockXpert/internal/config"
	"github.com/shashrwatshukla/StockXpert/internal/console"
	"github.com/shashrwatshukla/StockXpert/internal/notifier"
	"github.com/shashrwatshukla/StockXpert/internal/orchestrator"
	"github.com/shashrwatshukla/StockXpert/internal/portfolio"
	"github.com/shashrwatshukla/StockXpert/internal/recorder"
	"github.com/shashrwatshukla/StockXpert/internal/storage"
	"github.com/shashrwatshukla/StockXpert/internal/view"
	"github.com/shashrwatshukla/StockXpert/pkg/logger"
)

// app is one fully wired dashboard.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	fetcher backend.Fetcher
	kv      storage.KV
	rec     recorder.Recorder
	term    *console.Terminal
	board   *notifier.Board
	store   *portfolio.Store
	session *orchestrator.Session
}

func newApp(out io.Writer, live bool, rows int) (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File:   cfg.Log.File,
	})

	a := &app{cfg: cfg, log: log}

	if cfg.Backend.Mock {
		a.fetcher = backend.NewDemoFetcher()
	} else {
		a.fetcher = backend.NewClient(cfg.Backend.BaseURL, cfg.Proxy, cfg.Backend.Timeout, log)
	}
	log.Info().Str("source", a.fetcher.Name()).Msg("data source selected")

	format, err := view.NewFormatter(cfg.Display.Currency)
	if err != nil {
		return nil, err
	}

	md, err := console.NewRenderer(cfg.Display.GlamourStyle, cfg.Display.Width)
	if err != nil {
		return nil, err
	}

	a.kv, err = storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if cfg.Recorder.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Recorder.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			a.rec = recorder.NewNoopRecorder()
		} else {
			a.rec = sr
		}
	} else {
		a.rec = recorder.NewNoopRecorder()
	}

	a.term = console.NewTerminal(out, md, console.Options{Live: live, Rows: rows}, log)
	a.board = notifier.NewBoard(a.term, cfg.Display.NoticeDelay, log)
	a.store = portfolio.NewStore(portfolio.Deps{
		KV:        a.kv,
		Prices:    a.fetcher,
		Sink:      a.term,
		Notices:   a.board,
		Formatter: format,
		Recorder:  a.rec,
		Log:       log,
	})
	a.session = orchestrator.New(orchestrator.Deps{
		Fetcher:       a.fetcher,
		Sink:          a.term,
		Notices:       a.board,
		Portfolio:     a.store,
		Formatter:     format,
		Recorder:      a.rec,
		DefaultTicker: cfg.Display.DefaultTicker,
		Log:           log,
	})
	return a, nil
}

func (a *app) Close() {
	a.session.WaitSecondary()
	a.board.Close()
	if err := a.rec.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close recorder")
	}
	if err := a.kv.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close storage")
	}
}
