package domain

import "gonum.org/v1/gonum/floats"

// PathPoint is one observation of a simulated short-rate path.
type PathPoint struct {
	Time float64 `json:"time"`
	Rate float64 `json:"rate"`
}

// PathSample is one realization of the short rate, ordered by time and
// starting at (0, R0).
type PathSample []PathPoint

// RowSink receives (time, rate) rows in order.
type RowSink interface {
	WriteRow(time, rate float64) error
}

// Export writes every point of the path to sink.
func (ps PathSample) Export(sink RowSink) error {
	for _, p := range ps {
		if err := sink.WriteRow(p.Time, p.Rate); err != nil {
			return err
		}
	}
	return nil
}

// Rates returns the rate column.
func (ps PathSample) Rates() []float64 {
	rates := make([]float64, len(ps))
	for i, p := range ps {
		rates[i] = p.Rate
	}
	return rates
}

// IntegratedRate is the Riemann sum used by the Monte Carlo estimator: the
// post-step rates times dt, so the starting point is excluded.
func (ps PathSample) IntegratedRate(dt float64) float64 {
	if len(ps) < 2 {
		return 0
	}
	return floats.Sum(ps.Rates()[1:]) * dt
}
