package utils

import (
	"math"

	"github.com/dustin/go-humanize"
)

// MAX_PRICE is the largest amount the API accepts. FormatPrice is exact
// to the cent below it.
const MAX_PRICE = 1e15

// FormatPrice renders a price with thousands separators and two decimals,
// e.g. 85378.48 → "85,378.48".
func FormatPrice(price float64) string {
	return humanize.FormatFloat("#,###.##", price)
}

// ValidPrice reports whether price is a finite amount in [0, MAX_PRICE].
func ValidPrice(price float64) bool {
	return price >= 0 && price <= MAX_PRICE && !math.IsNaN(price)
}
