package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/amortera/amortera/renderer"
	"github.com/google/subcommands"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	loanFlags
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "run one simulation and plot it as a png" }
func (*chartCmd) Usage() string {
	return `amr chart [-o <file>] [-principal <amount>] [-offset <day>]

  Replays the mortgage against history and writes a png plotting the loan
  balance against the fund value.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.loanFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "amortera.png", "File to write the chart to")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := BuildTable(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building the historic table: %v\n", err)
		return subcommands.ExitFailure
	}

	m, err := c.run(table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running the simulation: %v\n", err)
		return subcommands.ExitFailure
	}

	img, err := renderer.ChartPNG(m.Ledger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering the chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, img, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s\n", c.output)
	return subcommands.ExitSuccess
}
