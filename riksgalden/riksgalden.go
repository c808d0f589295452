// Package riksgalden downloads the historical Swedish government borrowing
// rate (statslåneränta) from the Swedish National Debt Office.
package riksgalden

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/amortera/amortera"
	"github.com/shopspring/decimal"
)

// URL of the full historical statslåneränta series, semicolon separated,
// decimal commas.
const URL = "https://www.riksgalden.se/globalassets/dokument_sve/statslaneranta/slr-historisk-statslaneranta-csv.csv"

const (
	dateColumn = "Datum"
	rateColumn = "Räntesats %"
)

// BorrowingRates downloads the historical borrowing rate series and returns
// the observations within the requested range, as fractions.
func BorrowingRates(r amortera.Range) ([]amortera.RateObservation, error) {
	log.Println("Downloading from Riksgälden:", URL)
	resp, err := http.Get(URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download from Riksgälden: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download from Riksgälden: received status %s", resp.Status)
	}

	all, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, err
	}
	obs := make([]amortera.RateObservation, 0, len(all))
	for _, o := range all {
		if r.Contains(o.Date) {
			obs = append(obs, o)
		}
	}
	return obs, nil
}

// ParseCSV reads the Riksgälden CSV format: a semicolon separated table with
// a "Datum" column and a percentage column using decimal commas. Percentages
// are converted to fractions.
func ParseCSV(r io.Reader) ([]amortera.RateObservation, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // trailing columns vary across revisions

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("not enough records in csv to parse series")
	}

	dateCol, rateCol := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case dateColumn:
			dateCol = i
		case rateColumn:
			rateCol = i
		}
	}
	if dateCol < 0 || rateCol < 0 {
		return nil, fmt.Errorf("csv header %v misses %q or %q", records[0], dateColumn, rateColumn)
	}

	hundred := decimal.NewFromInt(100)
	obs := make([]amortera.RateObservation, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= max(dateCol, rateCol) || strings.TrimSpace(rec[rateCol]) == "" {
			continue
		}
		on, err := amortera.ParseDate(strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, err
		}
		val, err := decimal.NewFromString(strings.ReplaceAll(rec[rateCol], ",", "."))
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate %q for date %s: %w", rec[rateCol], on, err)
		}
		obs = append(obs, amortera.RateObservation{Date: on, Rate: val.Div(hundred).InexactFloat64()})
	}
	return obs, nil
}
