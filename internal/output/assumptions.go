package output

import (
	"fmt"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateAssumptions lists the model and numerical settings behind a run.
func GenerateAssumptions(results *domain.PricingComparison) []string {
	cfg := results.Config
	ana := results.Analytic
	workers := "sequential single stream"
	if results.Numerical.Workers > 1 {
		workers = fmt.Sprintf("%d workers, one sub-stream per path", results.Numerical.Workers)
	}
	return []string{
		"Short rate: dr = (phi(t) - a(t) r) dt + sigma(t) dW (Hull-White one factor)",
		fmt.Sprintf("Initial short rate r0: %s", FormatPercentage(decimal.NewFromFloat(cfg.InitialRate))),
		fmt.Sprintf("Euler grid: %d steps of %g years (maturity %s years)", cfg.Steps, cfg.TimeStep, FormatTime(cfg.Maturity())),
		fmt.Sprintf("Monte Carlo: %d paths, seed %d, %s", results.Numerical.Paths, results.Numerical.Seed, workers),
		fmt.Sprintf("Analytic spot rate r(%s): %s", FormatTime(ana.ValuationTime), ana.SpotRateMode),
	}
}

var decimalHundred = decimal.NewFromInt(100)
