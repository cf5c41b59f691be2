package aggregate

import (
	"math"
	"strings"
)

// ClassifyPattern renders a style's cross-session behavior as a short
// human-readable label: profitability shape, volatility tier, result
// consistency, and risk-adjusted quality, joined with " | ".
func ClassifyPattern(a StyleAggregate) string {
	var patterns []string

	if a.TotalProfit > 0 {
		if a.WinRate >= 50 {
			patterns = append(patterns, "Consistent winner")
		} else {
			patterns = append(patterns, "Occasional big winner")
		}
	} else {
		if a.BustRate >= 50 {
			patterns = append(patterns, "High bust risk")
		} else {
			patterns = append(patterns, "Gradual loser")
		}
	}

	switch {
	case a.AvgVolatility > 500:
		patterns = append(patterns, "high volatility")
	case a.AvgVolatility < 100:
		patterns = append(patterns, "low volatility")
	default:
		patterns = append(patterns, "moderate volatility")
	}

	if a.ProfitStd > 10000 {
		patterns = append(patterns, "highly variable results")
	} else if a.ProfitStd < 3000 {
		patterns = append(patterns, "consistent results")
	}

	if a.AvgSharpe > 0.05 {
		patterns = append(patterns, "good risk-adjusted returns")
	} else if a.AvgSharpe < -0.05 {
		patterns = append(patterns, "poor risk-adjusted returns")
	}

	return strings.Join(patterns, " | ")
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// bb100 normalizes profit to big blinds won per 100 hands.
func bb100(profit, bigBlind, hands int) float64 {
	if bigBlind == 0 || hands == 0 {
		return 0
	}
	return (float64(profit) / float64(bigBlind)) / (float64(hands) / 100)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func popStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
