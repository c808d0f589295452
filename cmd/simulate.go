package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/amortera/amortera"
	"github.com/amortera/amortera/renderer"
	"github.com/google/subcommands"
)

// loanFlags holds the mortgage parameters shared by the simulation commands.
type loanFlags struct {
	asset     float64
	income    float64
	principal float64
	years     int
	fraction  float64
	fee       float64
	birth     string
	offset    int
	days      int
}

func (l *loanFlags) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&l.asset, "asset", 10_000_000, "Value of the mortgaged home")
	f.Float64Var(&l.income, "income", 1_000_000, "Yearly household gross income")
	f.Float64Var(&l.principal, "principal", 5_000_000, "Amount borrowed")
	f.IntVar(&l.years, "years", 25, "Payoff horizon of the fixed monthly payment")
	f.Float64Var(&l.fraction, "fraction", 0.5, "Share of the monthly payment routed to the fund, in [0, 1]")
	f.Float64Var(&l.fee, "fee", 0.004, "Yearly fund fee, fraction")
	f.StringVar(&l.birth, "birth", "1985-01-01", "Fund owner's birth date, for the insurance premium")
	f.IntVar(&l.offset, "offset", 0, "Day in the historic table where the run starts")
	f.IntVar(&l.days, "days", 0, "Days to simulate, 0 for the rest of the table")
}

func (l *loanFlags) config() (amortera.Config, error) {
	birth, err := amortera.ParseDate(l.birth)
	if err != nil {
		return amortera.Config{}, fmt.Errorf("bad -birth: %w", err)
	}
	return amortera.Config{
		AssetValue:       l.asset,
		GrossIncome:      l.income,
		Principal:        l.principal,
		PayoffYears:      l.years,
		FractionInvested: l.fraction,
		FundFee:          l.fee,
		BirthDate:        birth,
		DaysOffset:       l.offset,
	}, nil
}

// run builds a mortgage against the table and advances it to the end of the
// requested span.
func (l *loanFlags) run(table *amortera.HistoricTable) (*amortera.Mortgage, error) {
	cfg, err := l.config()
	if err != nil {
		return nil, err
	}
	m, err := amortera.NewMortgage(table, cfg)
	if err != nil {
		return nil, err
	}
	days := l.days
	if days <= 0 || days > m.RemainingDays() {
		days = m.RemainingDays()
	}
	if err := m.Advance(days); err != nil {
		return nil, err
	}
	return m, nil
}

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	loanFlags
	every int
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run one simulation and display its summary" }
func (*simulateCmd) Usage() string {
	return `amr simulate [-principal <amount>] [-fraction <share>] [-offset <day>]

  Replays the mortgage against history from the given starting day and
  reports when the fund catches up with the loan.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	c.loanFlags.SetFlags(f)
	f.IntVar(&c.every, "every", 0, "Also print the ledger, sampled every N days")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	s, err := amortera.NewSummary(m.Ledger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing the run: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(s))

	if c.every > 0 {
		printMarkdown(renderer.LedgerMarkdown(m.Ledger(), c.every))
	}
	return subcommands.ExitSuccess
}
