package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/zcbond/internal/domain"
)

// ConsoleVerboseFormatter renders a detailed console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(results *domain.PricingComparison) ([]byte, error) {
	var buf bytes.Buffer
	ag := AnalyzeComparison(results)
	num := results.Numerical
	ana := results.Analytic

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "HULL-WHITE ZERO-COUPON BOND PRICING")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "MONTE CARLO (Euler, discount factor average)")
	fmt.Fprintln(&buf, "============================================")
	fmt.Fprintf(&buf, "B(0,T):          %s\n", ag.Numerical.Round())
	fmt.Fprintf(&buf, "Standard error:  %.3e\n", num.StandardError)
	fmt.Fprintf(&buf, "Paths x steps:   %d x %d\n", num.Paths, num.Steps)
	fmt.Fprintf(&buf, "Elapsed:         %s\n", FormatElapsed(num.Elapsed))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "ANALYTIC (H1 / H2 decomposition)")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "B(%s,T):          %s\n", FormatTime(ana.ValuationTime), ag.Analytic.Round())
	fmt.Fprintf(&buf, "H1:              %.10f\n", ana.H1)
	fmt.Fprintf(&buf, "H2:              %.10f\n", ana.H2)
	fmt.Fprintf(&buf, "Spot rate r(t):  %.6f (%s)\n", ana.SpotRate, ana.SpotRateMode)
	fmt.Fprintf(&buf, "Elapsed:         %s\n", FormatElapsed(ana.Elapsed))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "COMPARISON")
	fmt.Fprintln(&buf, "==========")
	fmt.Fprintf(&buf, "Numerical - Analytic: %s", FormatBasisPoints(ag.DifferenceBP))
	if num.StandardError > 0 {
		fmt.Fprintf(&buf, " (%.2f standard errors, p = %.3f)", ag.StandardErrors, ag.PValue)
	}
	fmt.Fprintln(&buf)
	if ag.HasYields {
		fmt.Fprintf(&buf, "Implied yield:        %s numerical, %s analytic\n",
			FormatPercentage(ag.NumericalYield), FormatPercentage(ag.AnalyticYield))
	}
	if ag.Consistent {
		fmt.Fprintln(&buf, "Status:               consistent")
	} else {
		fmt.Fprintf(&buf, "Status:               DIVERGENT (more than %.0f standard errors apart)\n", AgreementThreshold)
	}
	if !ag.Numerical.IsValid() || !ag.Analytic.IsValid() {
		fmt.Fprintln(&buf, "Note:                 a price outside (0, 1] implies negative average rates")
	}
	return buf.Bytes(), nil
}
