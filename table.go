package amortera

import (
	"fmt"
	"math"
	"time"
)

// minimumStandardRate is the statutory floor of the notional-yield standard
// rate (1.25%), in force since 2016.
const minimumStandardRate = 0.0125

// Row is one calendar day of the historic table. All four derived columns are
// populated; rows that could not be fully populated are dropped at build time.
type Row struct {
	Date         Date
	IndexChange  float64 // day-over-day equity index multiplier (next close / close)
	PolicyRate   float64 // daily compounding multiplier, borrower markup included
	StandardRate float64 // annual notional-yield tax rate in force that day
	CPIChange    float64 // day-over-day consumer price index multiplier
}

// HistoricTable is the daily-resolution macro-data table joining the equity
// index, policy rate, standard rate and CPI series. It is immutable once
// built; concurrent simulations may share one table without locking.
type HistoricTable struct {
	rows []Row
}

// TableInputs carries the raw input series for NewHistoricTable, already in
// the canonical shapes of series.go.
type TableInputs struct {
	Index          []IndexQuote      // current-source equity index
	LegacyIndex    []IndexQuote      // pre-cutover equity index, may be empty
	BorrowingRates []RateObservation // government borrowing rate, fraction
	PolicyRates    []RateObservation // central-bank policy rate, fraction
	CPI            []CPIObservation  // consumer price index levels

	// InterestMarkup is the fixed markup the borrower pays on top of the
	// policy rate, as a fraction (e.g. 0.01).
	InterestMarkup float64
}

// NewHistoricTable builds the daily table from the raw series.
//
// It is a pure, deterministic transform: it fails on empty series, duplicated
// dates and non-positive index or CPI levels, and performs no other recovery.
// The single documented substitution is an index multiplier of 1.0 on days
// whose source volume is zero or non-finite.
func NewHistoricTable(in TableInputs) (*HistoricTable, error) {
	index, lastIndexDay, err := indexMultipliers(in.LegacyIndex, in.Index)
	if err != nil {
		return nil, fmt.Errorf("index series: %w", err)
	}

	borrowing, err := rateHistory(in.BorrowingRates)
	if err != nil {
		return nil, fmt.Errorf("government borrowing rate series: %w", err)
	}
	standard, err := standardRates(borrowing)
	if err != nil {
		return nil, fmt.Errorf("standard rate schedule: %w", err)
	}

	policyAnnual, err := rateHistory(in.PolicyRates)
	if err != nil {
		return nil, fmt.Errorf("policy rate series: %w", err)
	}
	policy, err := policyMultipliers(policyAnnual, in.InterestMarkup)
	if err != nil {
		return nil, fmt.Errorf("policy rate series: %w", err)
	}

	cpiLevels, err := cpiHistory(in.CPI)
	if err != nil {
		return nil, fmt.Errorf("consumer price index series: %w", err)
	}
	cpi, err := cpiMultipliers(cpiLevels)
	if err != nil {
		return nil, fmt.Errorf("consumer price index series: %w", err)
	}

	return join(index, policy, standard, cpi, lastIndexDay)
}

// Len returns the number of days in the table.
func (t *HistoricTable) Len() int { return len(t.rows) }

// At returns the i-th day of the table. Indexing past the end of the
// available data panics: the caller must bound offset+length within Len.
func (t *HistoricTable) At(i int) Row { return t.rows[i] }

// Range returns the first and last day covered by the table.
func (t *HistoricTable) Range() Range {
	if len(t.rows) == 0 {
		return Range{}
	}
	return Range{From: t.rows[0].Date, To: t.rows[len(t.rows)-1].Date}
}

// RateOfChange returns the multiplicative per-day growth factor r such that
// start*r**days == end. It fails on a non-positive day count or start value
// (the zero-division domain errors of two observations sharing a date or a
// zero asset level).
func RateOfChange(start, end float64, days int) (float64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("rate of change needs a positive day count, got %d", days)
	}
	if start <= 0 {
		return 0, fmt.Errorf("rate of change needs a positive start value, got %g", start)
	}
	return math.Pow(end/start, 1/float64(days)), nil
}

// indexMultipliers merges the legacy and current index series and converts
// closing levels into day-over-day multipliers.
//
// The legacy series is used through its last date, the current series
// strictly after it. The merged series is expanded to daily granularity, and
// multiplier[d] = close[d+1]/close[d]; the final day has no next close and is
// dropped. Days whose source volume is zero or non-finite get 1.0.
// The second return value is the latest index-data date, which bounds the
// joined table.
func indexMultipliers(legacy, current []IndexQuote) (*History, Date, error) {
	current, err := sortQuotes(current)
	if err != nil {
		return nil, Date{}, err
	}

	closes := &History{}
	noTrade := make(map[Date]bool)
	record := func(q IndexQuote) error {
		if q.Close <= 0 {
			return fmt.Errorf("non-positive close %g on %s", q.Close, q.Date)
		}
		closes.Append(q.Date, q.Close)
		if !q.NoVolume && (q.Volume == 0 || math.IsNaN(q.Volume) || math.IsInf(q.Volume, 0)) {
			noTrade[q.Date] = true
		}
		return nil
	}

	var cutover Date
	if len(legacy) > 0 {
		legacy, err := sortQuotes(legacy)
		if err != nil {
			return nil, Date{}, err
		}
		cutover = legacy[len(legacy)-1].Date
		for _, q := range legacy {
			if err := record(q); err != nil {
				return nil, Date{}, err
			}
		}
	}
	for _, q := range current {
		// Strictly after the legacy cutover, to avoid double counting.
		if !q.Date.After(cutover) {
			continue
		}
		if err := record(q); err != nil {
			return nil, Date{}, err
		}
	}

	daily, err := closes.Expand()
	if err != nil {
		return nil, Date{}, err
	}
	last, _ := daily.Latest()

	mult := &History{}
	for on, close := range daily.Values() {
		if on == last {
			break // no next close for the final day
		}
		next, _ := daily.Get(on.Add(1))
		m := next / close
		if noTrade[on] {
			m = 1.0
		}
		mult.Append(on, m)
	}
	return mult, last, nil
}

// standardRates derives the daily standard-rate schedule from government
// borrowing rate observations. The rate for year Y is
// max(minimumStandardRate, rate on previous Nov 30 + 0.01) from January 1,
// halved from July 1. A terminal row on December 31 of the final year lets
// the daily expansion cover that whole year.
func standardRates(borrowing *History) (*History, error) {
	first, _ := borrowing.First()
	last, _ := borrowing.Latest()

	schedule := &History{}
	var lastHalved float64
	var lastYear int
	for y := first.Year(); y <= last.Year(); y++ {
		r, ok := borrowing.ValueAsOf(NewDate(y, time.November, 30))
		if !ok {
			continue // no observation on or before this year's reference day
		}
		rate := math.Max(minimumStandardRate, r+0.01)
		schedule.Append(NewDate(y+1, time.January, 1), rate)
		schedule.Append(NewDate(y+1, time.July, 1), rate/2)
		lastHalved, lastYear = rate/2, y+1
	}
	if schedule.Len() == 0 {
		return nil, fmt.Errorf("no borrowing rate observation before any November 30")
	}
	schedule.Append(NewDate(lastYear, time.December, 31), lastHalved)
	return schedule.Expand()
}

// policyMultipliers expands the annual policy rate to daily granularity and
// converts it into a daily compounding multiplier, markup included. The
// exponent uses the calendar-year length of each day so that compounding over
// a full year reproduces the annual rate exactly, leap years included.
func policyMultipliers(policy *History, markup float64) (*History, error) {
	daily, err := policy.Expand()
	if err != nil {
		return nil, err
	}
	mult := &History{}
	for on, annual := range daily.Values() {
		mult.Append(on, math.Pow(1+annual+markup, 1/float64(on.YearDays())))
	}
	return mult, nil
}

// cpiMultipliers converts CPI level readings into a daily multiplier series:
// between two consecutive readings the geometric-mean rate of change is
// spread over the days separating them.
func cpiMultipliers(levels *History) (*History, error) {
	mult := &History{}
	var prev Date
	var prevLevel float64
	var rate float64
	firstSeen := false
	for on, level := range levels.Values() {
		if firstSeen {
			days := on.Sub(prev)
			var err error
			rate, err = RateOfChange(prevLevel, level, days)
			if err != nil {
				return nil, fmt.Errorf("between %s and %s: %w", prev, on, err)
			}
			mult.Append(prev, rate)
		}
		prev, prevLevel, firstSeen = on, level, true
	}
	if mult.Len() == 0 {
		return nil, fmt.Errorf("need at least two consumer price index readings, got %d", levels.Len())
	}
	// Carry the last interval's rate through the final reading day.
	mult.Append(prev, rate)
	return mult.Expand()
}

// join left-merges the four daily series onto a full daily spine spanning the
// union of their ranges, forward-filling, then drops any day still missing a
// value and any day at or after the latest index-data date (the index
// multiplier for "today" needs tomorrow's close).
func join(index, policy, standard, cpi *History, lastIndexDay Date) (*HistoricTable, error) {
	firstOf := func(h *History) Date { d, _ := h.First(); return d }
	from := firstOf(index)
	for _, h := range []*History{policy, standard, cpi} {
		if d := firstOf(h); d.Before(from) {
			from = d
		}
	}

	rows := make([]Row, 0, lastIndexDay.Sub(from))
	for on := from; on.Before(lastIndexDay); on = on.Add(1) {
		ic, ok1 := index.ValueAsOf(on)
		pr, ok2 := policy.ValueAsOf(on)
		sr, ok3 := standard.ValueAsOf(on)
		cc, ok4 := cpi.ValueAsOf(on)
		if !(ok1 && ok2 && ok3 && ok4) {
			continue // boundary day with a column still missing
		}
		rows = append(rows, Row{Date: on, IndexChange: ic, PolicyRate: pr, StandardRate: sr, CPIChange: cc})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("series do not overlap, no fully populated day")
	}
	return &HistoricTable{rows: rows}, nil
}
