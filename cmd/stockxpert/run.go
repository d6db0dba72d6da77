package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/shashrwatshukla/StockXpert/internal/console"
	"github.com/shashrwatshukla/StockXpert/internal/scheduler"
)

type runCmd struct {
	rows int
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "start the interactive dashboard" }
func (*runCmd) Usage() string {
	return `stockxpert run [-rows <n>]

  Loads the symbol list and the saved portfolio, shows the default ticker
  over the last year and then reads commands from stdin. Type "help" at
  the prompt for the command list.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rows, "rows", console.DefaultRows, "Trailing trading days shown per chart table.")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(os.Stdout, true, c.rows)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	a.log.Info().Msg("StockXpert starting...")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			a.log.Info().Msg("shutdown signal received, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := a.session.Init(ctx); err != nil {
		a.log.Warn().Err(err).Msg("initial load failed")
	}

	sched := scheduler.NewScheduler(ctx, a.session, a.store, a.log)
	if err := sched.RegisterAll(a.cfg.Schedule.ValuationCron, a.cfg.Schedule.RefreshCron); err != nil {
		a.log.Error().Err(err).Msg("register cron tasks")
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	cmds := console.NewCommands(a.session, a.store, a.term, a.log)
	if err := console.Run(ctx, os.Stdin, a.term, cmds); err != nil {
		a.log.Error().Err(err).Msg("console stopped")
		return subcommands.ExitFailure
	}

	a.log.Info().Msg("StockXpert stopped")
	return subcommands.ExitSuccess
}
