package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/amortera/amortera"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
	"golang.org/x/sync/errgroup"
)

// sweepCmd holds the flags for the 'sweep' subcommand.
type sweepCmd struct {
	loanFlags
	step int
}

func (*sweepCmd) Name() string { return "sweep" }
func (*sweepCmd) Synopsis() string {
	return "run the same simulation from every possible starting day"
}
func (*sweepCmd) Usage() string {
	return `amr sweep -days <span> [-step <days>]

  Replays the same mortgage from every starting day the table allows,
  one run per offset, and tabulates how the outcome depends on when the
  loan was taken. Runs execute in parallel.
`
}

func (c *sweepCmd) SetFlags(f *flag.FlagSet) {
	c.loanFlags.SetFlags(f)
	f.IntVar(&c.step, "step", 30, "Stride between consecutive starting days")
}

// sweepResult is one row of the sweep table.
type sweepResult struct {
	start      amortera.Date
	breakEven  float64
	finalDelta float64
	interest   float64
}

func (c *sweepCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days <= 0 {
		fmt.Fprintln(os.Stderr, "Error: sweep needs an explicit -days span")
		return subcommands.ExitUsageError
	}
	if c.step < 1 {
		c.step = 1
	}

	table, err := BuildTable(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building the historic table: %v\n", err)
		return subcommands.ExitFailure
	}

	max := amortera.MaxStartOffset(table, c.days)
	if max < 0 {
		fmt.Fprintf(os.Stderr, "Error: the table only holds %d days, cannot fit a %d day run\n", table.Len(), c.days)
		return subcommands.ExitFailure
	}

	results := make([]*sweepResult, max/c.step+1)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range results {
		g.Go(func() error {
			run := c.loanFlags // copy, each run gets its own offset
			run.offset = i * c.step
			m, err := run.run(table)
			if err != nil {
				return fmt.Errorf("run at offset %d: %w", run.offset, err)
			}
			s, err := amortera.NewSummary(m.Ledger())
			if err != nil {
				return err
			}
			results[i] = &sweepResult{
				start:      s.Start,
				breakEven:  s.BreakEvenYears,
				finalDelta: s.FinalDelta,
				interest:   s.TotalInterest,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error sweeping: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderSweep(c.days, results))
	return subcommands.ExitSuccess
}

func renderSweep(days int, results []*sweepResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Sweep of %d day runs over %d starting days", days, len(results)))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Start", "Break Even", "Loan - Fund at End", "Total Interest"},
		Rows:   [][]string{},
	}
	for _, r := range results {
		table.Rows = append(table.Rows, []string{
			r.start.String(),
			fmt.Sprintf("%.1f years", r.breakEven),
			fmt.Sprintf("%.0f", r.finalDelta),
			fmt.Sprintf("%.0f", r.interest),
		})
	}
	doc.Table(table)

	return doc.String()
}
