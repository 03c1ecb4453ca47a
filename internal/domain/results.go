package domain

import "time"

// MonteCarloResult is the simulated bond price B(0,T).
type MonteCarloResult struct {
	Price         float64       `json:"price"`
	StandardError float64       `json:"standard_error"`
	Paths         int           `json:"paths"`
	Steps         int           `json:"steps"`
	Workers       int           `json:"workers"`
	Seed          uint64        `json:"seed"`
	Elapsed       time.Duration `json:"elapsed_ns"`
}

// AnalyticResult is B(t,T) = H1(t) * exp(-r(t) * H2(t)) with its components.
type AnalyticResult struct {
	Price         float64       `json:"price"`
	H1            float64       `json:"h1"`
	H2            float64       `json:"h2"`
	SpotRate      float64       `json:"spot_rate"`
	SpotRateMode  SpotRateMode  `json:"spot_rate_mode"`
	ValuationTime float64       `json:"valuation_time"`
	Maturity      float64       `json:"maturity"`
	Elapsed       time.Duration `json:"elapsed_ns"`
}

// PricingComparison holds both independently computed prices.
type PricingComparison struct {
	Config    SimulationConfig `json:"config"`
	Numerical MonteCarloResult `json:"numerical"`
	Analytic  AnalyticResult   `json:"analytic"`
}

// Difference is numerical minus analytic.
func (pc *PricingComparison) Difference() float64 {
	return pc.Numerical.Price - pc.Analytic.Price
}

// StandardErrors is the difference measured in Monte Carlo standard errors;
// zero when the estimate has no spread.
func (pc *PricingComparison) StandardErrors() float64 {
	if pc.Numerical.StandardError == 0 {
		return 0
	}
	return pc.Difference() / pc.Numerical.StandardError
}
