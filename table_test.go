package amortera

import (
	"math"
	"testing"
	"time"
)

// testInputs returns a synthetic but contract-complete set of input series
// spanning 2020 and 2021: a flat index, a constant 4% policy rate, a constant
// 2% borrowing rate and a CPI growing 0.2% per month.
func testInputs() TableInputs {
	var quotes []IndexQuote
	for on := NewDate(2019, time.December, 31); !on.After(NewDate(2021, time.December, 31)); on = on.Add(1) {
		quotes = append(quotes, IndexQuote{Date: on, Close: 2000, High: 2010, Low: 1990, Average: 2000, Volume: 1e6, Turnover: 2e9})
	}
	var cpi []CPIObservation
	level := 100.0
	for on := NewDate(2019, time.December, 1); !on.After(NewDate(2022, time.January, 1)); on = on.AddMonth(1) {
		cpi = append(cpi, CPIObservation{Date: on, Index: level})
		level *= 1.002
	}
	return TableInputs{
		Index: quotes,
		BorrowingRates: []RateObservation{
			{Date: NewDate(2019, time.January, 2), Rate: 0.02},
			{Date: NewDate(2020, time.June, 1), Rate: 0.02},
		},
		PolicyRates: []RateObservation{
			{Date: NewDate(2019, time.December, 1), Rate: 0.04},
			{Date: NewDate(2020, time.January, 1), Rate: 0.04},
			{Date: NewDate(2021, time.January, 1), Rate: 0.04},
		},
		CPI:            cpi,
		InterestMarkup: 0.01,
	}
}

func TestNewHistoricTable(t *testing.T) {
	table, err := NewHistoricTable(testInputs())
	if err != nil {
		t.Fatalf("NewHistoricTable() error = %v", err)
	}

	// The table starts when the last column becomes available (the standard
	// rate schedule starts on January 1) and ends strictly before the latest
	// index day, whose own multiplier needs the next close.
	r := table.Range()
	if want := NewDate(2020, time.January, 1); r.From != want {
		t.Errorf("table starts %s, want %s", r.From, want)
	}
	if want := NewDate(2021, time.December, 30); r.To != want {
		t.Errorf("table ends %s, want %s", r.To, want)
	}
	if want := r.Days(); table.Len() != want {
		t.Errorf("table has %d rows, want %d (one per day, no gaps)", table.Len(), want)
	}

	for i := 0; i < table.Len(); i++ {
		row := table.At(i)
		if i > 0 && row.Date != table.At(i-1).Date.Add(1) {
			t.Fatalf("gap in table: %s follows %s", row.Date, table.At(i-1).Date)
		}
		if row.IndexChange <= 0 || row.PolicyRate <= 0 || row.StandardRate <= 0 || row.CPIChange <= 0 {
			t.Fatalf("row %s not fully populated: %+v", row.Date, row)
		}
	}

	// Flat closes give a 1.0 multiplier everywhere.
	if got := table.At(10).IndexChange; got != 1.0 {
		t.Errorf("flat index multiplier = %g, want 1.0", got)
	}
}

func TestNewHistoricTableRejectsBadInput(t *testing.T) {
	good := testInputs()

	bad := good
	bad.Index = nil
	if _, err := NewHistoricTable(bad); err == nil {
		t.Error("empty index series should be rejected")
	}

	bad = good
	bad.CPI = good.CPI[:1]
	if _, err := NewHistoricTable(bad); err == nil {
		t.Error("a single CPI reading should be rejected")
	}

	bad = good
	bad.BorrowingRates = []RateObservation{{Date: NewDate(2019, time.January, 2), Rate: 0.02}, {Date: NewDate(2019, time.January, 2), Rate: 0.03}}
	if _, err := NewHistoricTable(bad); err == nil {
		t.Error("duplicated borrowing rate dates should be rejected")
	}

	bad = good
	bad.Index = []IndexQuote{{Date: NewDate(2020, time.January, 1), Close: 0, Volume: 1}, {Date: NewDate(2020, time.January, 2), Close: 100, Volume: 1}}
	if _, err := NewHistoricTable(bad); err == nil {
		t.Error("a zero close should be rejected")
	}
}

func TestRateOfChange(t *testing.T) {
	tests := []struct {
		start, end float64
		days       int
	}{
		{100, 110, 10},
		{100, 90, 30},
		{250, 250, 365},
		{1, 2, 1},
	}
	for _, tt := range tests {
		rate, err := RateOfChange(tt.start, tt.end, tt.days)
		if err != nil {
			t.Fatalf("RateOfChange(%g, %g, %d) error = %v", tt.start, tt.end, tt.days, err)
		}
		got := tt.start * math.Pow(rate, float64(tt.days))
		if math.Abs(got-tt.end) > 1e-9*tt.end {
			t.Errorf("start*rate**days = %g, want %g", got, tt.end)
		}
	}

	if _, err := RateOfChange(100, 110, 0); err == nil {
		t.Error("zero day count should be rejected")
	}
	if _, err := RateOfChange(0, 110, 10); err == nil {
		t.Error("zero start value should be rejected")
	}
}

func TestPolicyMultipliersCompoundExactly(t *testing.T) {
	policy := &History{}
	policy.Append(NewDate(2023, time.January, 1), 0.03)
	policy.Append(NewDate(2024, time.January, 1), 0.03)
	policy.Append(NewDate(2024, time.December, 31), 0.03)

	daily, err := policyMultipliers(policy, 0)
	if err != nil {
		t.Fatalf("policyMultipliers() error = %v", err)
	}

	for _, year := range []int{2023, 2024} {
		compounded := 1.0
		days := 0
		for on := NewDate(year, time.January, 1); on.Year() == year; on = on.Add(1) {
			v, ok := daily.Get(on)
			if !ok {
				t.Fatalf("no multiplier on %s", on)
			}
			compounded *= v
			days++
		}
		wantDays := 365
		if year == 2024 {
			wantDays = 366
		}
		if days != wantDays {
			t.Fatalf("year %d compounded over %d days, want %d", year, days, wantDays)
		}
		if math.Abs(compounded-1.03) > 1e-12 {
			t.Errorf("year %d daily compounding = %.15f, want 1.03", year, compounded)
		}
	}
}

func TestStandardRateSchedule(t *testing.T) {
	borrowing := &History{}
	borrowing.Append(NewDate(2019, time.November, 15), 0.005)
	borrowing.Append(NewDate(2020, time.November, 1), 0.001)

	daily, err := standardRates(borrowing)
	if err != nil {
		t.Fatalf("standardRates() error = %v", err)
	}

	tests := []struct {
		on   Date
		want float64
	}{
		// 2020: borrowing rate on 2019-11-30 was 0.005, +0.01 beats the floor.
		{NewDate(2020, time.January, 1), 0.015},
		{NewDate(2020, time.June, 30), 0.015},
		{NewDate(2020, time.July, 1), 0.0075},
		{NewDate(2020, time.December, 31), 0.0075},
		// 2021: 0.001+0.01 loses to the 0.0125 statutory floor.
		{NewDate(2021, time.January, 1), 0.0125},
		{NewDate(2021, time.June, 30), 0.0125},
		{NewDate(2021, time.July, 1), 0.00625},
		// The synthesized terminal row covers the final year fully.
		{NewDate(2021, time.December, 31), 0.00625},
	}
	for _, tt := range tests {
		t.Run(tt.on.String(), func(t *testing.T) {
			got, ok := daily.Get(tt.on)
			if !ok {
				t.Fatalf("no standard rate on %s", tt.on)
			}
			if math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("standard rate on %s = %g, want %g", tt.on, got, tt.want)
			}
		})
	}

	// A single December observation reaches no November 30 reference day.
	late := &History{}
	late.Append(NewDate(2020, time.December, 15), 0.02)
	if _, err := standardRates(late); err == nil {
		t.Error("a schedule without any usable November 30 observation should fail")
	}
}

func TestCPIMultipliers(t *testing.T) {
	levels := &History{}
	levels.Append(NewDate(2024, time.January, 1), 100)
	levels.Append(NewDate(2024, time.January, 11), 110)

	daily, err := cpiMultipliers(levels)
	if err != nil {
		t.Fatalf("cpiMultipliers() error = %v", err)
	}

	if daily.Len() != 11 {
		t.Errorf("daily multipliers = %d days, want 11", daily.Len())
	}
	want := math.Pow(1.1, 1.0/10)
	for on, got := range daily.Values() {
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("multiplier on %s = %.15f, want %.15f", on, got, want)
		}
	}

	// Ten days at the geometric rate reproduce the second reading.
	level := 100.0
	for i := 0; i < 10; i++ {
		v, _ := daily.Get(NewDate(2024, time.January, 1).Add(i))
		level *= v
	}
	if math.Abs(level-110) > 1e-9 {
		t.Errorf("compounded level = %g, want 110", level)
	}
}

func TestIndexMultipliers(t *testing.T) {
	// Friday, then Monday: the weekend is forward-filled from Friday's close.
	current := []IndexQuote{
		{Date: NewDate(2024, time.June, 7), Close: 100, Volume: 1e6},   // Friday
		{Date: NewDate(2024, time.June, 10), Close: 110, Volume: 1e6},  // Monday
		{Date: NewDate(2024, time.June, 11), Close: 121, Volume: 0},    // no trading volume
		{Date: NewDate(2024, time.June, 12), Close: 133.1, Volume: 1e6},
	}

	mult, last, err := indexMultipliers(nil, current)
	if err != nil {
		t.Fatalf("indexMultipliers() error = %v", err)
	}
	if want := NewDate(2024, time.June, 12); last != want {
		t.Errorf("latest index day = %s, want %s", last, want)
	}

	tests := []struct {
		on   Date
		want float64
	}{
		{NewDate(2024, time.June, 7), 1.0},  // Saturday's filled close over Friday's
		{NewDate(2024, time.June, 8), 1.0},  // Sunday over Saturday
		{NewDate(2024, time.June, 9), 1.1},  // Monday close over the filled weekend value
		{NewDate(2024, time.June, 10), 1.1}, // Tuesday over Monday
		{NewDate(2024, time.June, 11), 1.0}, // zero volume: substituted no-change (raw would be 1.1)
	}
	for _, tt := range tests {
		got, ok := mult.Get(tt.on)
		if !ok {
			t.Fatalf("no multiplier on %s", tt.on)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("multiplier on %s = %g, want %g", tt.on, got, tt.want)
		}
	}

	// The final day has no next close and is dropped.
	if _, ok := mult.Get(NewDate(2024, time.June, 12)); ok {
		t.Error("the latest index day should have no multiplier")
	}
}

func TestIndexMergeCutover(t *testing.T) {
	legacy := []IndexQuote{
		{Date: NewDate(2024, time.June, 3), Close: 100, NoVolume: true},
		{Date: NewDate(2024, time.June, 4), Close: 200, NoVolume: true},
	}
	current := []IndexQuote{
		{Date: NewDate(2024, time.June, 4), Close: 999, Volume: 1e6}, // overlaps legacy, must be ignored
		{Date: NewDate(2024, time.June, 5), Close: 400, Volume: 1e6},
		{Date: NewDate(2024, time.June, 6), Close: 400, Volume: 1e6},
	}

	mult, _, err := indexMultipliers(legacy, current)
	if err != nil {
		t.Fatalf("indexMultipliers() error = %v", err)
	}

	if got, _ := mult.Get(NewDate(2024, time.June, 3)); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("legacy multiplier = %g, want 2.0", got)
	}
	// June 4 uses the legacy close (200), not the overlapping current 999.
	if got, _ := mult.Get(NewDate(2024, time.June, 4)); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("cutover multiplier = %g, want 2.0 (legacy 200 to current 400)", got)
	}
}
