// Command tealscan scans a parsed mutual fund statement from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&scanCmd{}, "")
	commander.Register(&versionCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
