package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/zcbond/internal/domain"
)

// ConsoleFormatter prints one line per price.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.PricingComparison) ([]byte, error) {
	var buf bytes.Buffer
	t := FormatTime(results.Analytic.ValuationTime)
	fmt.Fprintf(&buf, "Zero-Coupen Bond Price (Numerical): B(t=0,T) =  %s\n", FormatPrice(results.Numerical.Price))
	fmt.Fprintf(&buf, "Zero-Coupen Bond Price (Analytic) : B(t=%s,T) =  %s\n", t, FormatPrice(results.Analytic.Price))
	return buf.Bytes(), nil
}
