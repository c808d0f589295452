// Package nasdaq downloads OMXS30 index history from the Nasdaq Nordic data
// API and reads the legacy index file kept from the pre-API era.
package nasdaq

import (
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/amortera/amortera"
)

// omxs30Instrument is the Nasdaq Nordic instrument id of the OMXS30 index.
const omxs30Instrument = "SE0000337842"

// OMXS30 downloads the daily index quotes within the requested range.
func OMXS30(r amortera.Range) ([]amortera.IndexQuote, error) {
	addr := fmt.Sprintf("https://api.nasdaq.com/api/nordic/instruments/%s/chart?assetClass=INDEXES&fromDate=%s&toDate=%s",
		omxs30Instrument, r.From, r.To)
	log.Println("Downloading from Nasdaq:", addr)

	var jobj any
	if err := jwget(new(http.Client), addr, &jobj); err != nil {
		return nil, fmt.Errorf("failed to fetch OMXS30: %w", err)
	}
	return parseChart(jobj)
}

// parseChart extracts the quote rows from the chart payload. The interesting
// part is buried in $.data.chartData; each row is an object of loosely typed
// values, so every field goes through asFloat.
func parseChart(jobj any) ([]amortera.IndexQuote, error) {
	const path = "$.data.chartData"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing OMXS30 payload: %q %w", path, err)
	}
	jrows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing OMXS30 payload: %q is not a list", path)
	}

	quotes := make([]amortera.IndexQuote, 0, len(jrows))
	for _, jrow := range jrows {
		row, ok := jrow.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("error parsing OMXS30 payload: row %v is not an object", jrow)
		}
		dateStr, ok := row["dateTime"].(string)
		if !ok {
			return nil, fmt.Errorf("error parsing OMXS30 payload: row misses dateTime")
		}
		on, err := amortera.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		q := amortera.IndexQuote{
			Date:     on,
			Close:    asFloat(row["close"]),
			High:     asFloat(row["high"]),
			Low:      asFloat(row["low"]),
			Average:  asFloat(row["average"]),
			Volume:   asFloat(row["totalVolume"]),
			Turnover: asFloat(row["turnover"]),
		}
		if math.IsNaN(q.Close) {
			return nil, fmt.Errorf("error parsing OMXS30 payload: no close on %s", on)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// asFloat converts a loosely typed json value to float64, NaN when absent or
// of an unexpected type. The normalizer treats a NaN volume as a non-trading
// day rather than failing the whole series.
func asFloat(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		return math.NaN()
	}
	return f
}
