package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/bobmcallan/tealscan/internal/common"
)

type versionCmd struct{}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "print version information" }
func (*versionCmd) Usage() string {
	return `tealscan version
`
}

func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	common.LoadVersionFromFile()
	fmt.Println("tealscan " + common.GetFullVersion())
	return subcommands.ExitSuccess
}
