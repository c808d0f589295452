package nasdaq

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amortera/amortera"
)

// ParseLegacyCSV reads the old OMXS30 data file kept from before the API era,
// a comma separated table with columns date, high, low, close, average and no
// volume information.
func ParseLegacyCSV(r io.Reader) ([]amortera.IndexQuote, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("not enough records in legacy csv")
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"date", "high", "low", "close", "average"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("legacy csv header %v misses %q", records[0], required)
		}
	}

	field := func(rec []string, name string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(rec[cols[name]]), 64)
	}

	quotes := make([]amortera.IndexQuote, 0, len(records)-1)
	for _, rec := range records[1:] {
		on, err := amortera.ParseDate(strings.TrimSpace(rec[cols["date"]]))
		if err != nil {
			return nil, err
		}
		q := amortera.IndexQuote{Date: on, NoVolume: true}
		if q.High, err = field(rec, "high"); err != nil {
			return nil, fmt.Errorf("bad high on %s: %w", on, err)
		}
		if q.Low, err = field(rec, "low"); err != nil {
			return nil, fmt.Errorf("bad low on %s: %w", on, err)
		}
		if q.Close, err = field(rec, "close"); err != nil {
			return nil, fmt.Errorf("bad close on %s: %w", on, err)
		}
		if q.Average, err = field(rec, "average"); err != nil {
			return nil, fmt.Errorf("bad average on %s: %w", on, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
