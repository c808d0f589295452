package amortera

import (
	"fmt"
	"slices"
)

// This file defines the canonical record shapes the normalizer accepts from
// the external data collaborators (download packages, bundled files). Each
// upstream source has its own adapter in its own package (riksgalden,
// riksbank, scb, nasdaq); by the time a series reaches this package it must
// already be in one of the shapes below, in upstream units as documented.

// IndexQuote is one trading day of the OMXS30 equity index.
//
// Only Close participates in the simulation; Volume is consulted to detect
// non-trading rows (a zero or non-finite volume marks the day's change
// multiplier as unknown and it is substituted with 1.0). The legacy index
// file carries no volume; its quotes leave Volume at zero and set NoVolume.
type IndexQuote struct {
	Date     Date
	Close    float64
	High     float64
	Low      float64
	Average  float64
	Volume   float64 // total traded volume
	Turnover float64
	NoVolume bool // source has no volume column (legacy file)
}

// RateObservation is one dated observation of an annual rate, stored as a
// fraction (a 1.25% upstream value arrives here as 0.0125).
type RateObservation struct {
	Date Date
	Rate float64
}

// CPIObservation is one dated reading of the consumer price index level.
type CPIObservation struct {
	Date  Date
	Index float64
}

// rateHistory converts rate observations into a History, validating the
// input contract (non-empty, unique dates).
func rateHistory(obs []RateObservation) (*History, error) {
	days := make([]Date, len(obs))
	values := make([]float64, len(obs))
	for i, o := range obs {
		days[i], values[i] = o.Date, o.Rate
	}
	return NewHistory(days, values)
}

// cpiHistory converts CPI observations into a History, validating the input contract.
func cpiHistory(obs []CPIObservation) (*History, error) {
	days := make([]Date, len(obs))
	values := make([]float64, len(obs))
	for i, o := range obs {
		days[i], values[i] = o.Date, o.Index
	}
	return NewHistory(days, values)
}

// sortQuotes returns the quotes in chronological order, failing on duplicated days.
func sortQuotes(quotes []IndexQuote) ([]IndexQuote, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("empty index series")
	}
	out := slices.Clone(quotes)
	slices.SortFunc(out, func(a, b IndexQuote) int { return a.Date.Compare(b.Date) })
	for i := 1; i < len(out); i++ {
		if out[i].Date == out[i-1].Date {
			return nil, fmt.Errorf("duplicate date %s in index series", out[i].Date)
		}
	}
	return out, nil
}
