package nasdaq

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/amortera/amortera"
)

const sampleChart = `{
  "data": {
    "instrument": "SE0000337842",
    "chartData": [
      {"dateTime": "2024-01-02", "close": 2396.18, "high": 2410.0, "low": 2388.5, "average": 2399.1, "totalVolume": 48211345, "turnover": 9.3e9},
      {"dateTime": "2024-01-03", "close": 2370.55, "high": 2400.2, "low": 2365.0, "average": 2380.0, "totalVolume": 0, "turnover": 0}
    ]
  }
}`

func TestParseChart(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(sampleChart), &jobj); err != nil {
		t.Fatal(err)
	}
	quotes, err := parseChart(jobj)
	if err != nil {
		t.Fatalf("parseChart() error = %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("parsed %d quotes, want 2", len(quotes))
	}
	q := quotes[0]
	if want := amortera.NewDate(2024, time.January, 2); q.Date != want {
		t.Errorf("date = %s, want %s", q.Date, want)
	}
	if math.Abs(q.Close-2396.18) > 1e-9 {
		t.Errorf("close = %g, want 2396.18", q.Close)
	}
	if q.NoVolume {
		t.Error("API quotes carry volume information")
	}
	if quotes[1].Volume != 0 {
		t.Errorf("volume = %g, want 0 (non-trading day left as is)", quotes[1].Volume)
	}
}

func TestParseChartMissingClose(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(`{"data":{"chartData":[{"dateTime":"2024-01-02"}]}}`), &jobj); err != nil {
		t.Fatal(err)
	}
	if _, err := parseChart(jobj); err == nil {
		t.Error("a row without close should be rejected")
	}
}

const sampleLegacy = `date,high,low,close,average
1991-01-02,499.52,491.06,497.82,495.3
1991-01-03,503.11,496.55,502.44,499.8
`

func TestParseLegacyCSV(t *testing.T) {
	quotes, err := ParseLegacyCSV(strings.NewReader(sampleLegacy))
	if err != nil {
		t.Fatalf("ParseLegacyCSV() error = %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("parsed %d quotes, want 2", len(quotes))
	}
	q := quotes[0]
	if want := amortera.NewDate(1991, time.January, 2); q.Date != want {
		t.Errorf("date = %s, want %s", q.Date, want)
	}
	if math.Abs(q.Close-497.82) > 1e-9 {
		t.Errorf("close = %g, want 497.82", q.Close)
	}
	if !q.NoVolume {
		t.Error("legacy quotes have no volume column and must say so")
	}

	if _, err := ParseLegacyCSV(strings.NewReader("date,close\n1991-01-02,497.82\n")); err == nil {
		t.Error("missing columns should be rejected")
	}
}
