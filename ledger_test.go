package amortera

import (
	"math"
	"testing"
	"time"
)

func TestCumulativeInterest(t *testing.T) {
	l := NewLedger(Entry{Date: NewDate(2024, time.January, 15), Principal: 100})
	add := func(day Date, interest float64) {
		l.Append(Entry{Date: day, CurrentMonthInterest: interest})
	}
	for on := NewDate(2024, time.January, 16); !on.After(NewDate(2024, time.March, 10)); on = on.Add(1) {
		switch on {
		case NewDate(2024, time.January, 31):
			add(on, 10)
		case NewDate(2024, time.February, 29):
			add(on, 20)
		default:
			add(on, 5) // daily accrual numbers never enter the running sum
		}
	}

	cum := l.CumulativeInterest()
	tests := []struct {
		day  Date
		want float64
	}{
		{NewDate(2024, time.January, 15), 0},
		{NewDate(2024, time.January, 30), 0},
		{NewDate(2024, time.January, 31), 10},
		{NewDate(2024, time.February, 10), 10}, // forward filled between month ends
		{NewDate(2024, time.February, 29), 30},
		{NewDate(2024, time.March, 10), 30},
	}
	for _, tt := range tests {
		i := tt.day.Sub(NewDate(2024, time.January, 15))
		if got := cum[i]; got != tt.want {
			t.Errorf("cumulative interest on %s = %g, want %g", tt.day, got, tt.want)
		}
	}

	// Appending invalidates the memoized column.
	add(NewDate(2024, time.March, 31), 40)
	cum = l.CumulativeInterest()
	if got := cum[len(cum)-1]; got != 70 {
		t.Errorf("cumulative interest after new month end = %g, want 70", got)
	}
}

func TestNewSummary(t *testing.T) {
	start := NewDate(2024, time.January, 1)
	l := NewLedger(Entry{Date: start, Principal: 100, PrincipalFundDelta: 100})
	deltas := []float64{80, 50, -3, 2, -40, -90}
	for i, d := range deltas {
		e := Entry{Date: start.Add(i + 1), PrincipalFundDelta: d}
		if e.Date == e.Date.EndOf(Monthly) {
			e.CurrentMonthInterest = 7
		}
		l.Append(e)
	}

	s, err := NewSummary(l)
	if err != nil {
		t.Fatalf("NewSummary() error = %v", err)
	}
	if s.BreakEvenDay != 4 {
		t.Errorf("BreakEvenDay = %d, want 4 (|2| is the smallest delta)", s.BreakEvenDay)
	}
	if want := 4.0 / 365; math.Abs(s.BreakEvenYears-want) > 1e-12 {
		t.Errorf("BreakEvenYears = %g, want %g", s.BreakEvenYears, want)
	}
	if s.FinalDelta != -90 {
		t.Errorf("FinalDelta = %g, want -90", s.FinalDelta)
	}
	if want := 6.0 / 365; math.Abs(s.TotalYears-want) > 1e-12 {
		t.Errorf("TotalYears = %g, want %g", s.TotalYears, want)
	}
	if s.Start != start || s.End != start.Add(6) {
		t.Errorf("summary span %s..%s, want %s..%s", s.Start, s.End, start, start.Add(6))
	}

	if _, err := NewSummary(&Ledger{}); err == nil {
		t.Error("summarizing an empty ledger should fail")
	}
}
