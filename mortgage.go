package amortera

import (
	"fmt"
	"math"
	"time"
)

// capitalGainsTaxRate is the Swedish capital-gains tax applied to the
// notional yield (30% of schablonintäkt).
const capitalGainsTaxRate = 0.30

// cutoff maps a ratio threshold to the minimum yearly amortization rate
// mandated above it by Finansinspektionen.
type cutoff struct {
	threshold float64
	rate      float64
}

// A loan-to-value ratio over 70% requires 2% yearly amortization, over 50%
// requires 1%. A debt over 4.5 times gross income adds another 1%.
var (
	loanToValueCutoffs = []cutoff{{0.7, 0.02}, {0.5, 0.01}}
	debtRatioCutoffs   = []cutoff{{4.5, 0.01}}
)

// exceeding returns the highest rate whose threshold the value strictly exceeds.
func exceeding(cutoffs []cutoff, value float64) float64 {
	var rate float64
	for _, c := range cutoffs {
		if value > c.threshold && c.rate > rate {
			rate = c.rate
		}
	}
	return rate
}

// riskCosts is the monthly mortgage life insurance premium in SEK per million
// SEK of outstanding debt, keyed by age rounded to the nearest 5 years.
var riskCosts = map[int]float64{
	20: 9, 25: 10, 30: 12, 35: 15, 40: 20,
	45: 30, 50: 45, 55: 70, 60: 110, 65: 170,
	70: 260, 75: 400, 80: 600, 85: 900, 90: 1300,
}

// riskCostPerMillion returns the monthly insurance premium for the given age,
// clamped to the [20, 90] range of the table.
func riskCostPerMillion(age int) float64 {
	rounded := int(math.Round(float64(age)/5)) * 5
	rounded = min(max(rounded, 20), 90)
	return riskCosts[rounded]
}

// Age returns the whole years between birth and the given day, decremented if
// the day's month/day falls strictly before the birthday within the year.
func Age(birth, on Date) int {
	years := on.Year() - birth.Year()
	if int(on.Month())*100+on.Day() < int(birth.Month())*100+birth.Day() {
		years--
	}
	return years
}

// Config holds the loan parameters of a simulation run.
type Config struct {
	AssetValue       float64 // value of the mortgaged asset
	GrossIncome      float64 // household income before tax, yearly
	Principal        float64 // amount borrowed
	PayoffYears      int     // amortization horizon of the fixed monthly payment
	FractionInvested float64 // share of the monthly payment routed to the fund, in [0, 1]
	FundFee          float64 // yearly fund fee, fraction (e.g. 0.004)
	BirthDate        Date    // fund owner's birth date, for the insurance premium
	DaysOffset       int     // index into the historic table where the run starts
}

// Mortgage advances a Swedish mortgage one calendar day at a time against the
// historic table, comparing paying the loan down with investing part of the
// same cash flow in an index fund. Each instance owns its loan state and
// ledger; the shared table is read-only, so independent runs are safe to
// execute concurrently.
type Mortgage struct {
	cfg   Config
	table *HistoricTable

	principal  float64
	fundValue  float64
	fundTaxDue float64

	ledger *Ledger
}

// NewMortgage validates the configuration and seeds the ledger at the run's
// starting day.
func NewMortgage(table *HistoricTable, cfg Config) (*Mortgage, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("historic table is empty")
	}
	if cfg.Principal <= 0 {
		return nil, fmt.Errorf("principal must be positive, got %g", cfg.Principal)
	}
	if cfg.AssetValue <= 0 {
		return nil, fmt.Errorf("asset value must be positive, got %g", cfg.AssetValue)
	}
	if cfg.GrossIncome <= 0 {
		return nil, fmt.Errorf("gross income must be positive, got %g", cfg.GrossIncome)
	}
	if cfg.PayoffYears <= 0 {
		return nil, fmt.Errorf("payoff time must be positive, got %d years", cfg.PayoffYears)
	}
	if cfg.FractionInvested < 0 || cfg.FractionInvested > 1 {
		return nil, fmt.Errorf("fraction invested must be within [0, 1], got %g", cfg.FractionInvested)
	}
	if cfg.BirthDate.IsZero() {
		return nil, fmt.Errorf("birth date is not set")
	}
	if cfg.DaysOffset < 0 || cfg.DaysOffset >= table.Len() {
		return nil, fmt.Errorf("days offset %d outside table of %d days", cfg.DaysOffset, table.Len())
	}

	m := &Mortgage{
		cfg:       cfg,
		table:     table,
		principal: cfg.Principal,
	}
	seed := table.At(cfg.DaysOffset)
	m.ledger = NewLedger(Entry{
		Date:               seed.Date,
		Principal:          m.principal,
		PrincipalFundDelta: m.principal,
	})
	return m, nil
}

// Ledger returns the run's ledger.
func (m *Mortgage) Ledger() *Ledger { return m.ledger }

// Principal returns the outstanding loan balance.
func (m *Mortgage) Principal() float64 { return m.principal }

// FundValue returns the invested alternative's balance.
func (m *Mortgage) FundValue() float64 { return m.fundValue }

// LoanToValueRatio is the outstanding principal over the mortgaged asset value.
func (m *Mortgage) LoanToValueRatio() float64 { return m.principal / m.cfg.AssetValue }

// DebtRatio is the outstanding principal over the yearly gross income.
func (m *Mortgage) DebtRatio() float64 { return m.principal / m.cfg.GrossIncome }

// MonthlyPayment is the fixed total monthly payment: the original principal
// spread evenly over the payoff horizon.
func (m *Mortgage) MonthlyPayment() float64 {
	return m.cfg.Principal / (float64(m.cfg.PayoffYears) * 12)
}

// MinimumMonthlyPayment is the regulatory amortization floor: the stricter of
// the loan-to-value and debt-ratio rules, as a yearly percentage of the
// original principal, divided by 12. Both ratios are recomputed against the
// current principal on every call.
func (m *Mortgage) MinimumMonthlyPayment() float64 {
	yearly := math.Max(
		exceeding(loanToValueCutoffs, m.LoanToValueRatio()),
		exceeding(debtRatioCutoffs, m.DebtRatio()),
	)
	return m.cfg.Principal * yearly / 12
}

// RemainingDays returns how many more days the run can advance before
// exhausting the historic table.
func (m *Mortgage) RemainingDays() int {
	return m.table.Len() - m.ledger.Len() - m.cfg.DaysOffset
}

// MaxStartOffset returns the largest days offset that still leaves room for a
// run of the given length in the table, or a negative value if none does.
func MaxStartOffset(table *HistoricTable, days int) int {
	return table.Len() - 1 - days
}

// AdvanceOneDay applies one day's transition to the loan state and appends
// the resulting entry to the ledger.
//
// Interest accrues daily but payments post only on month-end days; the
// month's accrued interest is absorbed by the loan share of the payment.
// Rates observed on day N are applied on day N+1.
func (m *Mortgage) AdvanceOneDay() error {
	idx := m.ledger.Len() + m.cfg.DaysOffset
	if idx >= m.table.Len() {
		return fmt.Errorf("day %d is beyond the %d days of historic data", idx, m.table.Len())
	}
	today := m.table.At(idx)
	yesterday := m.table.At(idx - 1)

	// Compound the loan and the fund on yesterday's observed rates.
	m.principal *= yesterday.PolicyRate
	m.fundValue -= m.fundValue * m.cfg.FundFee / 365
	m.fundValue *= yesterday.IndexChange

	// Interest accrued since the first day of the current month. Zero while
	// the month anchor does not exist yet (first partial month, and every
	// first-of-month day whose own entry is only appended below).
	var interest float64
	if anchor, ok := m.ledger.principalOn(today.Date.StartOf(Monthly)); ok {
		interest = m.principal - anchor
	}

	// Payments post on month ends only. The loan share is floored by the
	// regulatory minimum and absorbs the month's interest; the fund receives
	// the remainder of the fixed total.
	var loanPayment, fundInvestment float64
	if today.Date == today.Date.EndOf(Monthly) {
		total := m.MonthlyPayment()
		loanShare := math.Max(total*(1-m.cfg.FractionInvested), m.MinimumMonthlyPayment())
		fundInvestment = total - loanShare
		loanPayment = loanShare + interest

		m.principal -= loanPayment
		m.fundValue += fundInvestment
	}

	// Monthly insurance premium, charged against the fund on the first of
	// each month, sized by the outstanding debt.
	if today.Date.Day() == 1 {
		age := Age(m.cfg.BirthDate, today.Date)
		m.fundValue -= riskCostPerMillion(age) * m.principal / 1e6
	}

	// Notional-yield tax: new investments are taxed as they post, the whole
	// fund balance once a year on January 1. Accruals settle on the
	// quarter-shifted month ends.
	m.fundTaxDue += fundInvestment * today.StandardRate * capitalGainsTaxRate
	if today.Date.Month() == time.January && today.Date.Day() == 1 {
		m.fundTaxDue += m.fundValue * today.StandardRate * capitalGainsTaxRate
	}
	if isTaxSettlementDay(today.Date) {
		m.fundValue -= m.fundTaxDue
		m.fundTaxDue = 0
	}

	m.ledger.Append(Entry{
		Date:                 today.Date,
		Principal:            m.principal,
		FundValue:            m.fundValue,
		CurrentMonthInterest: interest,
		LoanPayment:          loanPayment,
		FundInvestment:       fundInvestment,
		PrincipalFundDelta:   m.principal - m.fundValue,
	})
	return nil
}

// Advance runs n day transitions.
func (m *Mortgage) Advance(n int) error {
	for i := 0; i < n; i++ {
		if err := m.AdvanceOneDay(); err != nil {
			return err
		}
	}
	return nil
}

// isTaxSettlementDay reports whether accrued notional-yield tax settles on
// this day: the last day of January, April, July and October.
func isTaxSettlementDay(d Date) bool {
	if d != d.EndOf(Monthly) {
		return false
	}
	switch d.Month() {
	case time.January, time.April, time.July, time.October:
		return true
	}
	return false
}
