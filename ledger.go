package amortera

import (
	"fmt"
	"iter"
	"math"
)

// Entry is one simulated day of the mortgage ledger, recorded after the day's
// transition has been applied.
type Entry struct {
	Date                 Date
	Principal            float64 // outstanding loan balance
	FundValue            float64 // invested alternative balance
	CurrentMonthInterest float64 // interest accrued since the first day of the month
	LoanPayment          float64 // posted this day (0 except on month ends)
	FundInvestment       float64 // posted this day (0 except on month ends)
	PrincipalFundDelta   float64 // Principal - FundValue
}

// Ledger is the append-only record of a simulation run. It is created with a
// single seed entry and grows by exactly one entry per simulated day; entries
// are never mutated retroactively. The only derived data is the cumulative
// interest column, computed on demand and memoized.
type Ledger struct {
	entries     []Entry
	cumInterest []float64 // derived; nil until computed, reset on append
}

// NewLedger creates a ledger holding the given seed entry.
func NewLedger(seed Entry) *Ledger {
	return &Ledger{entries: []Entry{seed}}
}

// Len returns the number of entries, seed included.
func (l *Ledger) Len() int { return len(l.entries) }

// At returns the i-th entry.
func (l *Ledger) At(i int) Entry { return l.entries[i] }

// Last returns the most recent entry.
func (l *Ledger) Last() Entry { return l.entries[len(l.entries)-1] }

// Append adds one simulated day to the ledger.
func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, e)
	l.cumInterest = nil
}

// Entries returns an iterator over all entries in chronological order.
func (l *Ledger) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// principalOn returns the principal recorded on the given day, searching from
// the most recent entry (the month anchor is always near the end).
func (l *Ledger) principalOn(day Date) (float64, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Date == day {
			return l.entries[i].Principal, true
		}
		if l.entries[i].Date.Before(day) {
			break
		}
	}
	return 0, false
}

// CumulativeInterest returns, per entry, the total interest paid up to and
// including that day: the monthly interest recorded on each month-end entry,
// running-summed, forward-filled between month ends.
func (l *Ledger) CumulativeInterest() []float64 {
	if l.cumInterest != nil {
		return l.cumInterest
	}
	cum := make([]float64, len(l.entries))
	var running float64
	for i, e := range l.entries {
		if e.Date == e.Date.EndOf(Monthly) {
			running += e.CurrentMonthInterest
		}
		cum[i] = running
	}
	l.cumInterest = cum
	return cum
}

// Summary holds the aggregate statistics of a finished simulation run.
type Summary struct {
	Start               Date    // first simulated day (seed entry)
	End                 Date    // last simulated day
	BreakEvenDay        int     // ledger index minimizing |principal - fund value|
	BreakEvenYears      float64 // BreakEvenDay / 365
	InterestAtBreakEven float64 // cumulative interest paid by the break-even day
	TotalYears          float64 // total simulated span in years
	FinalDelta          float64 // principal - fund value on the last day
	TotalInterest       float64 // cumulative interest paid over the whole run
}

// NewSummary computes the break-even statistics of a ledger.
func NewSummary(l *Ledger) (*Summary, error) {
	if l == nil || l.Len() == 0 {
		return nil, fmt.Errorf("cannot summarize an empty ledger")
	}
	cum := l.CumulativeInterest()

	best := 0
	for i, e := range l.entries {
		if math.Abs(e.PrincipalFundDelta) < math.Abs(l.entries[best].PrincipalFundDelta) {
			best = i
		}
	}
	last := len(l.entries) - 1
	return &Summary{
		Start:               l.entries[0].Date,
		End:                 l.entries[last].Date,
		BreakEvenDay:        best,
		BreakEvenYears:      float64(best) / 365,
		InterestAtBreakEven: cum[best],
		TotalYears:          float64(last) / 365,
		FinalDelta:          l.entries[last].PrincipalFundDelta,
		TotalInterest:       cum[last],
	}, nil
}
