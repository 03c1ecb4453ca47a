package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// PriceDecimals is the display precision of a bond price per unit face value.
const PriceDecimals = 8

// Price is a bond price per unit face value, kept as a decimal so reports
// round consistently.
type Price struct {
	decimal.Decimal
}

// NewPrice creates a Price from a float64
func NewPrice(value float64) Price {
	return Price{decimal.NewFromFloat(value)}
}

// Round rounds to PriceDecimals places
func (p Price) Round() Price {
	return Price{p.Decimal.Round(PriceDecimals)}
}

// BasisPoints is (p - other) expressed in basis points of face value.
func (p Price) BasisPoints(other Price) decimal.Decimal {
	return p.Decimal.Sub(other.Decimal).Mul(decimal.NewFromInt(10000))
}

// ContinuousYield is the continuously compounded yield -ln(p)/maturity. It
// returns false for a non-positive price or maturity.
func (p Price) ContinuousYield(maturity float64) (decimal.Decimal, bool) {
	v := p.Decimal.InexactFloat64()
	if v <= 0 || maturity <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(-math.Log(v) / maturity), true
}

// IsValid reports whether the price lies in (0, 1], the range of a discount
// factor under non-negative rates.
func (p Price) IsValid() bool {
	return p.Decimal.IsPositive() && p.Decimal.LessThanOrEqual(decimal.NewFromInt(1))
}

// String returns the price with PriceDecimals places
func (p Price) String() string {
	return p.Decimal.StringFixed(PriceDecimals)
}
