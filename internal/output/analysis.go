package output

import (
	"math"

	"github.com/rpgo/zcbond/internal/domain"
	zcdec "github.com/rpgo/zcbond/pkg/decimal"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"
)

// AgreementThreshold is the number of Monte Carlo standard errors within which
// the two prices are considered consistent.
const AgreementThreshold = 3.0

// Agreement summarizes how well the simulated price matches the analytic one.
type Agreement struct {
	Numerical      zcdec.Price
	Analytic       zcdec.Price
	DifferenceBP   decimal.Decimal
	StandardErrors float64
	PValue         float64 // two-sided, under a normal sampling error
	Consistent     bool
	NumericalYield decimal.Decimal
	AnalyticYield  decimal.Decimal
	HasYields      bool
}

// AnalyzeComparison derives the reported agreement figures. Without a standard
// error (one path, or zero volatility) the prices must match to 1e-9.
func AnalyzeComparison(results *domain.PricingComparison) Agreement {
	num := zcdec.NewPrice(results.Numerical.Price)
	ana := zcdec.NewPrice(results.Analytic.Price)

	ag := Agreement{
		Numerical:      num,
		Analytic:       ana,
		DifferenceBP:   num.BasisPoints(ana),
		StandardErrors: results.StandardErrors(),
	}
	if results.Numerical.StandardError > 0 {
		ag.PValue = 2 * distuv.UnitNormal.Survival(math.Abs(ag.StandardErrors))
		ag.Consistent = math.Abs(ag.StandardErrors) <= AgreementThreshold
	} else {
		ag.Consistent = math.Abs(results.Difference()) <= 1e-9
	}

	// Yields are quoted over the remaining life T - t of the analytic price.
	remaining := results.Analytic.Maturity - results.Analytic.ValuationTime
	ny, okN := num.ContinuousYield(results.Analytic.Maturity)
	ay, okA := ana.ContinuousYield(remaining)
	if okN && okA {
		ag.NumericalYield, ag.AnalyticYield, ag.HasYields = ny, ay, true
	}
	return ag
}
