// Package scb downloads the Swedish consumer price index from Statistics
// Sweden's PXWeb API.
package scb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amortera/amortera"
	"github.com/shopspring/decimal"
)

// URL of the monthly CPI table (fixed index numbers, 1980=100).
const URL = "https://api.scb.se/OV0104/v1/doris/en/ssd/START/PR/PR0101/PR0101A/KPItotM"

// query is the PXWeb request body selecting all months of the index series
// in the compact json response format.
var query = map[string]any{
	"query": []map[string]any{
		{
			"code":      "ContentsCode",
			"selection": map[string]any{"filter": "item", "values": []string{"000004VU"}},
		},
	},
	"response": map[string]string{"format": "json"},
}

// ConsumerPriceIndex downloads the monthly CPI levels within the requested range.
func ConsumerPriceIndex(r amortera.Range) ([]amortera.CPIObservation, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	log.Println("Downloading from SCB:", URL)
	resp, err := http.Post(URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to download from SCB: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download from SCB: received status %s", resp.Status)
	}

	all, err := ParseResponse(resp.Body)
	if err != nil {
		return nil, err
	}
	obs := make([]amortera.CPIObservation, 0, len(all))
	for _, o := range all {
		if r.Contains(o.Date) {
			obs = append(obs, o)
		}
	}
	return obs, nil
}

// ParseResponse reads the PXWeb json response format:
//
//	{"data": [{"key": ["2020M01"], "values": ["332.82"]}, ...]}
//
// Month keys are dated on the first of the month.
func ParseResponse(r io.Reader) ([]amortera.CPIObservation, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// PXWeb responses start with a BOM.
	content = bytes.TrimPrefix(content, []byte("\xEF\xBB\xBF"))

	var payload struct {
		Data []struct {
			Key    []string `json:"key"`
			Values []string `json:"values"`
		} `json:"data"`
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse SCB response: %w", err)
	}

	obs := make([]amortera.CPIObservation, 0, len(payload.Data))
	for _, d := range payload.Data {
		if len(d.Key) == 0 || len(d.Values) == 0 {
			continue
		}
		on, err := parseMonth(d.Key[len(d.Key)-1])
		if err != nil {
			return nil, err
		}
		val, err := decimal.NewFromString(d.Values[0])
		if err != nil {
			if d.Values[0] == ".." { // PXWeb's missing value marker
				continue
			}
			return nil, fmt.Errorf("failed to parse value %q for %s: %w", d.Values[0], on, err)
		}
		obs = append(obs, amortera.CPIObservation{Date: on, Index: val.InexactFloat64()})
	}
	return obs, nil
}

// parseMonth parses a PXWeb month key like "2020M01" into the first day of
// that month.
func parseMonth(s string) (amortera.Date, error) {
	parts := strings.Split(s, "M")
	if len(parts) != 2 {
		return amortera.Date{}, fmt.Errorf("unrecognized scb month format: %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return amortera.Date{}, fmt.Errorf("invalid year in month %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return amortera.Date{}, fmt.Errorf("invalid month in %q", s)
	}
	return amortera.NewDate(year, time.Month(month), 1), nil
}
