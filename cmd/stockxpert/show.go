package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shashrwatshukla/StockXpert/internal/console"
	"github.com/shashrwatshukla/StockXpert/internal/daterange"
	"github.com/shashrwatshukla/StockXpert/internal/model"
)

type showCmd struct {
	ticker string
	period string
	from   string
	to     string
	chart  string
	rows   int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the dashboard for one ticker and exit" }
func (*showCmd) Usage() string {
	return `stockxpert show [-t <ticker>] [-r <range> | -from <date> -to <date>] [-c <style>]

  Runs one fetch cycle, waits for the similar stocks, news and portfolio
  valuation, prints every panel and exits. Ranges are 1d, 5d, 1m, 6m, 1y,
  5y and max. Styles are Candlestick, Line and Area.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to show (defaults to the configured default ticker).")
	f.StringVar(&c.period, "r", string(daterange.DefaultToken), "Relative date range.")
	f.StringVar(&c.from, "from", "", "Explicit start date (YYYY-MM-DD). Overrides -r.")
	f.StringVar(&c.to, "to", "", "Explicit end date (YYYY-MM-DD). Overrides -r.")
	f.StringVar(&c.chart, "c", string(model.Candlestick), "Chart style.")
	f.IntVar(&c.rows, "rows", console.DefaultRows, "Trailing trading days shown per chart table.")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	style, err := model.ParseChartStyle(c.chart)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	custom := c.from != "" || c.to != ""
	var token daterange.Token
	if custom {
		if _, err := daterange.Custom(c.from, c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing dates: %v\n", err)
			return subcommands.ExitUsageError
		}
	} else if token, err = daterange.ParseToken(c.period); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	a, err := newApp(os.Stdout, false, c.rows)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	a.session.LoadSymbols(ctx)
	if err := a.store.Load(ctx); err != nil {
		a.log.Error().Err(err).Msg("failed to load portfolio")
	}
	a.session.Prepare(c.ticker, style)

	if custom {
		err = a.session.SetCustomDates(ctx, c.from, c.to)
	} else {
		err = a.session.SelectRange(ctx, token)
	}
	a.session.WaitSecondary()
	a.term.Dashboard()

	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
