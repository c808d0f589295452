package renderer

import (
	"fmt"

	"github.com/amortera/amortera"
	charts "github.com/vicanso/go-charts/v2"
)

// ChartPNG plots the loan and fund balances of a ledger and returns the
// rendered PNG.
func ChartPNG(l *amortera.Ledger) ([]byte, error) {
	if l.Len() < 2 {
		return nil, fmt.Errorf("not enough ledger entries to chart")
	}

	principal := make([]float64, 0, l.Len())
	fund := make([]float64, 0, l.Len())
	labels := make([]string, 0, l.Len())
	for _, e := range l.Entries() {
		principal = append(principal, e.Principal)
		fund = append(fund, e.FundValue)
		labels = append(labels, e.Date.String())
	}

	names := []string{"Loan", "Fund"}
	painter, err := charts.LineRender([][]float64{principal, fund},
		charts.TitleTextOptionFunc(fmt.Sprintf("Loan vs Fund, %s to %s", l.At(0).Date, l.Last().Date)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
