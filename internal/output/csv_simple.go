package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/zcbond/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per pricing method).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.PricingComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Method", "ValuationTime", "Maturity", "Price", "StandardError", "SpotRate", "Paths", "Steps", "Seed"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	num := results.Numerical
	ana := results.Analytic
	rows := [][]string{
		{
			"numerical",
			"0",
			floatToString(ana.Maturity),
			floatToString(num.Price),
			floatToString(num.StandardError),
			floatToString(results.Config.InitialRate),
			strconv.Itoa(num.Paths),
			strconv.Itoa(num.Steps),
			strconv.FormatUint(num.Seed, 10),
		},
		{
			"analytic",
			floatToString(ana.ValuationTime),
			floatToString(ana.Maturity),
			floatToString(ana.Price),
			"",
			floatToString(ana.SpotRate),
			"",
			"",
			"",
		},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func floatToString(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
