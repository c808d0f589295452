package renderer

import (
	"bytes"
	"fmt"

	"github.com/amortera/amortera"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders the ledger as a table, one row per sampled entry.
// every controls the sampling interval in days; the first and last entries
// are always included.
func LedgerMarkdown(l *amortera.Ledger, every int) string {
	if every < 1 {
		every = 1
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Ledger from %s to %s", l.At(0).Date, l.Last().Date))

	cum := l.CumulativeInterest()
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Loan", "Fund", "Loan - Fund", "Interest Paid"},
		Rows:   [][]string{},
	}
	last := l.Len() - 1
	for i, e := range l.Entries() {
		if i%every != 0 && i != last {
			continue
		}
		table.Rows = append(table.Rows, []string{
			e.Date.String(),
			sek(e.Principal),
			sek(e.FundValue),
			sek(e.PrincipalFundDelta),
			sek(cum[i]),
		})
	}
	doc.Table(table)

	return doc.String()
}

// RatesMarkdown renders sampled rows of the normalized daily table.
func RatesMarkdown(t *amortera.HistoricTable, every int) string {
	if every < 1 {
		every = 1
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	r := t.Range()
	doc.H1(fmt.Sprintf("Daily Rates from %s to %s", r.From, r.To))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Index", "Loan Rate", "Standard Rate", "CPI"},
		Rows:   [][]string{},
	}
	for i := 0; i < t.Len(); i += every {
		row := t.At(i)
		table.Rows = append(table.Rows, []string{
			row.Date.String(),
			fmt.Sprintf("%.6f", row.IndexChange),
			fmt.Sprintf("%.6f", row.PolicyRate),
			fmt.Sprintf("%.4f", row.StandardRate),
			fmt.Sprintf("%.6f", row.CPIChange),
		})
	}
	doc.Table(table)

	return doc.String()
}
