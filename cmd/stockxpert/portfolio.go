package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shashrwatshukla/StockXpert/internal/portfolio"
)

type portfolioCmd struct {
	set string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show or replace the saved holdings with live valuations" }
func (*portfolioCmd) Usage() string {
	return `stockxpert portfolio [-set "SYM:QTY, SYM:QTY"]

  Without -set, prints the saved holdings priced at the latest quotes.
  With -set, replaces the holdings first. Malformed entries and
  non-positive quantities are dropped.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "Replace the holdings with this SYM:QTY list.")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(os.Stdout, false, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.store.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	isSet := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "set" {
			isSet = true
		}
	})
	if isSet {
		if err := a.store.Save(ctx, c.set); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to save portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(portfolio.SavedNotice)
	}
	a.term.Portfolio()
	return subcommands.ExitSuccess
}
