package main

import (
	"context"
	"flag"
	"os"
	"path"
	_ "time/tzdata"

	"github.com/google/subcommands"

	"wealth/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&migrateCmd{}, "database")
	commander.Register(&paymentCmd{}, "database")
	commander.Register(&exportCmd{}, "database")
	commander.Register(&quoteCmd{}, "market")
	commander.Register(&metalCmd{}, "market")
	commander.Register(&backfillCmd{}, "sheets")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
