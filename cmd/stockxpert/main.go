package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/shashrwatshukla/StockXpert/internal/config"
)

var configPath = flag.String("config", config.Path(), "Path to the YAML config file.")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&runCmd{}, "")
	commander.Register(&showCmd{}, "")
	commander.Register(&portfolioCmd{}, "")
	commander.Register(&symbolsCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
