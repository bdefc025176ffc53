package analyzer

import (
	"math"
	"sort"

	"github.com/Houeta/price-cage/internal/models"
)

// Volatility class bounds. A value equal to a bound belongs to the higher class.
const (
	lowVolatilityBound    = 0.05
	mediumVolatilityBound = 0.15
	stableSlope           = 0.01
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stdDev is the sample standard deviation; fewer than two values give 0.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

// linearFit fits ys against 0..n-1 and returns the slope and the Pearson correlation.
// A constant series has no defined correlation and yields 0.
func linearFit(ys []float64) (slope, correlation float64) {
	n := float64(len(ys))
	if n < 2 {
		return 0, 0
	}

	meanX := (n - 1) / 2
	meanY := mean(ys)

	var sxy, sxx, syy float64
	for i, y := range ys {
		dx := float64(i) - meanX
		dy := y - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	slope = sxy / sxx
	if syy == 0 {
		return slope, 0
	}
	return slope, sxy / math.Sqrt(sxx*syy)
}

// pctChanges returns the relative change between consecutive prices, skipping pairs whose
// previous price is zero.
func pctChanges(prices []float64) []float64 {
	changes := make([]float64, 0, len(prices))
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		changes = append(changes, (prices[i]-prices[i-1])/prices[i-1])
	}
	return changes
}

// ClassifyVolatility maps a pct-change standard deviation onto low, medium or high.
func ClassifyVolatility(volatility float64) string {
	switch {
	case volatility < lowVolatilityBound:
		return models.VolatilityLow
	case volatility < mediumVolatilityBound:
		return models.VolatilityMedium
	default:
		return models.VolatilityHigh
	}
}

// ClassifyTrend maps a regression slope onto a trend direction.
func ClassifyTrend(slope float64) models.Trend {
	switch {
	case math.Abs(slope) < stableSlope:
		return models.TrendStable
	case slope > 0:
		return models.TrendRising
	default:
		return models.TrendFalling
	}
}
