// Package forecast projects profit across a range of timestamps using a
// pluggable per-timestamp forecaster.
package forecast

// Func adapts an ordinary function to a ProfitForecaster.
type Func func(timestamp int32) float64

// ProfitAt calls f(timestamp).
func (f Func) ProfitAt(timestamp int32) float64 {
	return f(timestamp)
}

// Linear forecasts profit as a straight line: Slope*timestamp + Intercept.
type Linear struct {
	Slope     float64
	Intercept float64
}

// ProfitAt returns the line's value at timestamp.
func (l Linear) ProfitAt(timestamp int32) float64 {
	return l.Slope*float64(timestamp) + l.Intercept
}

// ProfitForecaster predicts the profit at a single timestamp.
type ProfitForecaster interface {
	ProfitAt(timestamp int32) float64
}

// ProfitOverTime asks forecaster for the profit at every timestamp in the
// half-open range [start, end), in ascending order. The result has one entry
// per timestamp and is empty when end <= start.
func ProfitOverTime(forecaster ProfitForecaster, start, end int32) []float64 {
	if end <= start {
		return []float64{}
	}

	profits := make([]float64, 0, int64(end)-int64(start))

	for timestamp := start; timestamp < end; timestamp++ {
		profits = append(profits, forecaster.ProfitAt(timestamp))
	}

	return profits
}
