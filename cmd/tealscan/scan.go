package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/tealscan/internal/app"
	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/models"
	"github.com/bobmcallan/tealscan/internal/services/portfolio"
	"github.com/bobmcallan/tealscan/internal/services/report"
	"github.com/bobmcallan/tealscan/internal/statement"
)

// scanCmd holds the flags for the 'scan' subcommand.
type scanCmd struct {
	file       string
	configPath string
	today      string
	chartPath  string
	asJSON     bool
	raw        bool
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

func (*scanCmd) Name() string     { return "scan" }
func (*scanCmd) Synopsis() string { return "scan a parsed statement for returns and hidden fees" }
func (*scanCmd) Usage() string {
	return `tealscan scan -f <statement.json> [-json] [-chart <out.png>] [-today <YYYY-MM-DD>] [-config <file>]

  Evaluates every scheme of a parsed account statement: XIRR, category,
  regular or direct plan, and the yearly commission paid on regular plans.
  Use -f - to read the statement from standard input.
`
}

func (c *scanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Parsed statement JSON file, or - for stdin.")
	f.StringVar(&c.configPath, "config", "", "Config file. Defaults to TEALSCAN_CONFIG, then tealscan.toml.")
	f.StringVar(&c.today, "today", "", "Valuation date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.chartPath, "chart", "", "Write an allocation pie chart PNG to this path.")
	f.BoolVar(&c.asJSON, "json", false, "Print the scan result as JSON.")
	f.BoolVar(&c.raw, "raw", false, "Print the report as plain markdown.")
	f.BoolVar(&c.verbose, "v", false, "Log at the configured level instead of warnings only.")
}

func (c *scanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stdout, stderr := c.stdout, c.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	if c.file == "" && f.NArg() > 0 {
		c.file = f.Arg(0)
	}
	if c.file == "" {
		fmt.Fprintln(stderr, "Error: a statement file is required (-f)")
		return subcommands.ExitUsageError
	}

	var asOf models.Date
	if c.today != "" {
		d, err := models.ParseDate(c.today)
		if err != nil {
			fmt.Fprintf(stderr, "Error parsing -today: %v\n", err)
			return subcommands.ExitUsageError
		}
		asOf = d
	}

	config, err := app.LoadConfig(c.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	level := "warn"
	if c.verbose {
		level = config.Logging.Level
	}
	a := app.NewAppWithConfig(config, common.NewLoggerWithOutput(level, stderr))

	stmt, err := c.readStatement()
	if err != nil {
		fmt.Fprintf(stderr, "Error reading statement: %v\n", err)
		return subcommands.ExitFailure
	}

	var result *models.ScanResult
	if asOf.IsZero() {
		result = a.ScanService.Scan(ctx, stmt)
	} else {
		result = a.ScanService.ScanAsOf(ctx, stmt, asOf)
	}

	if c.chartPath != "" {
		png, err := portfolio.RenderAllocationChart(result.Allocation)
		if err != nil {
			fmt.Fprintf(stderr, "Error rendering chart: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.chartPath, png, 0o644); err != nil {
			fmt.Fprintf(stderr, "Error writing chart: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if c.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	md := report.FormatScanReport(result, config.Scan.Currency)
	if c.raw {
		fmt.Fprint(stdout, md)
	} else {
		printMarkdown(stdout, md)
	}
	return subcommands.ExitSuccess
}

func (c *scanCmd) readStatement() (*models.Statement, error) {
	if c.file == "-" {
		return statement.Decode(os.Stdin)
	}
	return statement.DecodeFile(c.file)
}
