package renderer

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

// sek renders an amount as Swedish krona, rounded to whole öre.
func sek(v float64) string {
	return money.New(int64(math.Round(v*100)), money.SEK).Display()
}

// years renders a duration expressed in fractional years.
func years(v float64) string {
	return fmt.Sprintf("%.1f years", v)
}
