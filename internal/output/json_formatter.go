package output

import (
	"encoding/json"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter serializes the pricing comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	*domain.PricingComparison
	DifferenceBP   decimal.Decimal `json:"difference_bp"`
	StandardErrors float64         `json:"difference_standard_errors"`
	PValue         float64         `json:"p_value"`
	Consistent     bool            `json:"consistent"`
}

func (j JSONFormatter) Format(results *domain.PricingComparison) ([]byte, error) {
	ag := AnalyzeComparison(results)
	return json.MarshalIndent(jsonReport{
		PricingComparison: results,
		DifferenceBP:      ag.DifferenceBP,
		StandardErrors:    ag.StandardErrors,
		PValue:            ag.PValue,
		Consistent:        ag.Consistent,
	}, "", "  ")
}
