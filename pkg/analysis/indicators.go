package analysis

import "math"

// All indicator series are aligned with their input (oldest first); positions
// without a full window are NaN.

func SMA(xs []float64, window int) []float64 {
	out := nanSeries(len(xs))
	for i := window - 1; i < len(xs); i++ {
		var sum float64
		for _, x := range xs[i-window+1 : i+1] {
			sum += x
		}
		out[i] = sum / float64(window)
	}
	return out
}

// StdDev is the rolling sample standard deviation.
func StdDev(xs []float64, window int) []float64 {
	out := nanSeries(len(xs))
	if window < 2 {
		return out
	}
	means := SMA(xs, window)
	for i := window - 1; i < len(xs); i++ {
		var sq float64
		for _, x := range xs[i-window+1 : i+1] {
			d := x - means[i]
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(window-1))
	}
	return out
}

// RSI uses simple rolling means of gains and losses. The first close has no
// delta and contributes a zero gain and loss.
func RSI(closes []float64, period int) []float64 {
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else if delta < 0 {
			losses[i] = -delta
		}
	}

	avgGain := SMA(gains, period)
	avgLoss := SMA(losses, period)

	out := make([]float64, len(closes))
	for i := range out {
		// IEEE semantics: no losses gives +Inf -> 100, no movement gives NaN
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// Bollinger returns the upper, middle and lower bands at k standard deviations.
func Bollinger(closes []float64, window int, k float64) (upper, mid, lower []float64) {
	mid = SMA(closes, window)
	std := StdDev(closes, window)
	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))
	for i := range closes {
		upper[i] = mid[i] + k*std[i]
		lower[i] = mid[i] - k*std[i]
	}
	return upper, mid, lower
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func isMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
