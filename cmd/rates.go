package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/amortera/amortera/renderer"
	"github.com/google/subcommands"
)

// ratesCmd holds the flags for the 'rates' subcommand.
type ratesCmd struct {
	every int
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display the normalized daily table" }
func (*ratesCmd) Usage() string {
	return `amr rates [-every <days>]

  Downloads all four data sources, assembles the normalized daily table
  and displays a sample of its rows.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.every, "every", 365, "Sampling interval in days")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := BuildTable(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building the historic table: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RatesMarkdown(table, c.every))
	return subcommands.ExitSuccess
}
