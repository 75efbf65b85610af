package trend

// LinearRegression fits y = slope*x + intercept by ordinary least squares and
// returns the coefficient of determination. R2 is 0 when the dependent
// variable is constant (SS_tot = 0). Degenerate x (all equal) yields a flat
// fit through the mean instead of an error.
func LinearRegression(x, y []float64) (slope, intercept, r2 float64) {
	n := float64(len(x))
	if n == 0 || len(x) != len(y) {
		return 0, 0, 0
	}

	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0, sumY / n, 0
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	ssRes := 0.0
	ssTot := 0.0
	for i := range x {
		fitted := intercept + slope*x[i]
		ssRes += (y[i] - fitted) * (y[i] - fitted)
		ssTot += (y[i] - meanY) * (y[i] - meanY)
	}

	if ssTot == 0 {
		return slope, intercept, 0
	}

	return slope, intercept, 1 - ssRes/ssTot
}

// NormalizeTimestamps converts epoch-millisecond timestamps to float offsets
// from the minimum, preventing precision loss when squaring large epochs.
func NormalizeTimestamps(timestamps []int64) []float64 {
	if len(timestamps) == 0 {
		return nil
	}

	min := timestamps[0]
	for _, ts := range timestamps[1:] {
		if ts < min {
			min = ts
		}
	}

	x := make([]float64, len(timestamps))
	for i, ts := range timestamps {
		x[i] = float64(ts - min)
	}
	return x
}

// IndexPositions returns 0..n-1 as floats, the regression axis used when the
// caller projects by sample position rather than wall time.
func IndexPositions(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}
