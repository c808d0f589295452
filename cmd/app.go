// Package cmd implements the CLI application to run mortgage simulations.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/amortera/amortera"
	"github.com/amortera/amortera/nasdaq"
	"github.com/amortera/amortera/riksbank"
	"github.com/amortera/amortera/riksgalden"
	"github.com/amortera/amortera/scb"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

// Commands lists the subcommands a main package should register.
var Commands = []subcommands.Command{
	&ratesCmd{},
	&simulateCmd{},
	&sweepCmd{},
	&chartCmd{},
	&topicCmd{},
}

// As a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables for the data acquisition flags shared by every
// subcommand.

var from = flag.String("from", "1991-01-02", "First day of historic data to download")
var to = flag.String("to", amortera.Today().String(), "Last day of historic data to download")
var legacyIndexFile = flag.String("legacy-index", "", "Path to the pre-API OMXS30 csv file, prepended to the downloaded index history")
var markup = flag.Float64("markup", 0.0145, "Bank markup on the policy rate, yearly fraction")

// BuildTable downloads all four data sources concurrently and assembles the
// normalized daily table.
func BuildTable(ctx context.Context) (*amortera.HistoricTable, error) {
	dlFrom, err := amortera.ParseDate(*from)
	if err != nil {
		return nil, fmt.Errorf("bad -from: %w", err)
	}
	dlTo, err := amortera.ParseDate(*to)
	if err != nil {
		return nil, fmt.Errorf("bad -to: %w", err)
	}
	r := amortera.Range{From: dlFrom, To: dlTo}

	in := amortera.TableInputs{InterestMarkup: *markup}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Index, err = nasdaq.OMXS30(r)
		return err
	})
	g.Go(func() (err error) {
		in.BorrowingRates, err = riksgalden.BorrowingRates(r)
		return err
	})
	g.Go(func() (err error) {
		in.PolicyRates, err = riksbank.PolicyRates(r)
		return err
	})
	g.Go(func() (err error) {
		in.CPI, err = scb.ConsumerPriceIndex(r)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if *legacyIndexFile != "" {
		f, err := os.Open(*legacyIndexFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open legacy index file: %w", err)
		}
		defer f.Close()
		in.LegacyIndex, err = nasdaq.ParseLegacyCSV(f)
		if err != nil {
			return nil, err
		}
	}

	return amortera.NewHistoricTable(in)
}

// printMarkdown renders a markdown report on the terminal, falling back to
// the raw text when rendering fails.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
