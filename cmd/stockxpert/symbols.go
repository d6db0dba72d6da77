package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type symbolsCmd struct{}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the tickers the backend serves" }
func (*symbolsCmd) Usage() string {
	return `stockxpert symbols
`
}

func (*symbolsCmd) SetFlags(*flag.FlagSet) {}

func (*symbolsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(os.Stdout, false, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	symbols, err := a.fetcher.Symbols(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load symbols: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, s := range symbols {
		fmt.Println(s)
	}
	return subcommands.ExitSuccess
}
