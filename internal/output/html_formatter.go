package output

import (
	"bytes"
	"html/template"

	"github.com/rpgo/zcbond/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with both prices.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

const htmlTemplateSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Zero-Coupon Bond Pricing</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
.divergent { color: #b00; }
</style>
</head>
<body>
<h1>Hull-White Zero-Coupon Bond</h1>
<h2>Assumptions</h2>
<ul>
{{- range .Assumptions}}
<li>{{.}}</li>
{{- end}}
</ul>
<h2>Prices</h2>
<table>
<tr><th>Method</th><th>B(t,T)</th><th>Standard error</th><th>Spot rate</th></tr>
<tr><td>Numerical</td><td>{{price .Numerical.Price}}</td><td>{{printf "%.3e" .Numerical.StandardError}}</td><td>{{printf "%.6f" .Config.InitialRate}}</td></tr>
<tr><td>Analytic (t={{time .Analytic.ValuationTime}})</td><td>{{price .Analytic.Price}}</td><td></td><td>{{printf "%.6f" .Analytic.SpotRate}}</td></tr>
</table>
<p{{if not .Agreement.Consistent}} class="divergent"{{end}}>Difference: {{bp .Agreement.DifferenceBP}}
{{- if .Numerical.StandardError}} ({{printf "%.2f" .Agreement.StandardErrors}} standard errors){{end}}</p>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"price": FormatPrice,
	"time":  FormatTime,
	"bp":    FormatBasisPoints,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.PricingComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.PricingComparison
		Agreement   Agreement
		Assumptions []string
	}{results, AnalyzeComparison(results), GenerateAssumptions(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
