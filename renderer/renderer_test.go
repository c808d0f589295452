package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/amortera/amortera"
	"github.com/yuin/goldmark"
)

func testLedger(t *testing.T) *amortera.Ledger {
	t.Helper()
	start := amortera.NewDate(2024, time.January, 1)
	l := amortera.NewLedger(amortera.Entry{
		Date: start, Principal: 5e6, FundValue: 0, PrincipalFundDelta: 5e6,
	})
	for i := 1; i <= 60; i++ {
		on := start.Add(i)
		e := amortera.Entry{
			Date:      on,
			Principal: 5e6 - float64(i)*500,
			FundValue: float64(i) * 600,
		}
		if on == on.EndOf(amortera.Monthly) {
			e.CurrentMonthInterest = 12500
			e.LoanPayment = 17000
			e.FundInvestment = 8000
		}
		e.PrincipalFundDelta = e.Principal - e.FundValue
		l.Append(e)
	}
	return l
}

// renderHTML asserts the report is well formed markdown by running it
// through goldmark.
func renderHTML(t *testing.T, report string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(report), &buf); err != nil {
		t.Fatalf("report is not valid markdown: %v", err)
	}
	return buf.String()
}

func TestSummaryMarkdown(t *testing.T) {
	l := testLedger(t)
	s, err := amortera.NewSummary(l)
	if err != nil {
		t.Fatal(err)
	}
	report := SummaryMarkdown(s)

	html := renderHTML(t, report)
	if !strings.Contains(html, "<table>") {
		t.Error("summary should render as tables")
	}
	if !strings.Contains(report, "2024-01-01") || !strings.Contains(report, "2024-03-01") {
		t.Errorf("summary should name the simulated span, got:\n%s", report)
	}
	if !strings.Contains(report, "kr") {
		t.Errorf("amounts should be rendered as krona, got:\n%s", report)
	}
}

func TestLedgerMarkdown(t *testing.T) {
	l := testLedger(t)
	report := LedgerMarkdown(l, 30)

	html := renderHTML(t, report)
	if !strings.Contains(html, "<table>") {
		t.Error("ledger should render as a table")
	}
	// sampled every 30 days over 61 entries: indices 0, 30, 60.
	rows := strings.Count(report, "\n|") - 2 // minus header and separator
	if rows != 3 {
		t.Errorf("sampled %d rows, want 3:\n%s", rows, report)
	}
	if !strings.Contains(report, l.Last().Date.String()) {
		t.Error("last entry must always be included")
	}
}

func TestChartPNG(t *testing.T) {
	l := testLedger(t)
	img, err := ChartPNG(l)
	if err != nil {
		t.Fatalf("ChartPNG() error = %v", err)
	}
	if len(img) < 8 || !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Errorf("chart is not a PNG (%d bytes)", len(img))
	}

	if _, err := ChartPNG(amortera.NewLedger(amortera.Entry{})); err == nil {
		t.Error("a single-entry ledger cannot be charted")
	}
}
