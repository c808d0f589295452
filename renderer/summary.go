package renderer

import (
	"bytes"
	"fmt"

	"github.com/amortera/amortera"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the aggregate statistics of a finished run.
func SummaryMarkdown(s *amortera.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Simulation from %s to %s", s.Start, s.End))

	doc.H2("Break Even")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"", ""},
		Rows: [][]string{
			{"Fund catches the loan after", years(s.BreakEvenYears)},
			{"Interest paid by then", sek(s.InterestAtBreakEven)},
		},
	})

	doc.H2("Full Run")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"", ""},
		Rows: [][]string{
			{"Simulated span", years(s.TotalYears)},
			{"Loan minus fund at the end", sek(s.FinalDelta)},
			{"Total interest paid", sek(s.TotalInterest)},
		},
	})

	return doc.String()
}
