package output

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a price in %g style with six significant digits.
func FormatPrice(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// FormatTime renders a valuation time or maturity without trailing zeros.
func FormatTime(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// FormatBasisPoints formats a decimal amount of basis points with 2 decimals.
func FormatBasisPoints(bp decimal.Decimal) string { return bp.StringFixed(2) + " bp" }

// FormatPercentage formats a rate (0.05) as a percentage with 4 decimals.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).StringFixed(4) + "%"
}

// FormatElapsed rounds a duration for display.
func FormatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}
