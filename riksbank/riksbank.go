// Package riksbank downloads policy rate observations from the Riksbank SWEA
// API.
package riksbank

import (
	"fmt"

	"github.com/amortera/amortera"
)

// policy rate series id in the SWEA API (the effective repo/policy rate).
const policyRateSeries = "SECBREPOEFF"

// PolicyRates downloads the policy rate observations within the requested
// range, converted from percent to fractions.
func PolicyRates(r amortera.Range) ([]amortera.RateObservation, error) {
	addr := fmt.Sprintf("https://api.riksbank.se/swea/v1/Observations/%s/%s/%s", policyRateSeries, r.From, r.To)

	// The API payload is a flat list of dated values, in percent:
	// [{"date": "2024-01-02", "value": 4.0}, ...]
	type observation struct {
		Date  amortera.Date `json:"date"`
		Value float64       `json:"value"`
	}
	content := make([]observation, 0)
	// The series updates at most daily, so cache responses for a day.
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("failed to fetch policy rates: %w", err)
	}

	obs := make([]amortera.RateObservation, 0, len(content))
	for _, o := range content {
		obs = append(obs, amortera.RateObservation{Date: o.Date, Rate: o.Value / 100})
	}
	return obs, nil
}
