// Package stats is the statistical planner: sample-size requirements,
// confidence intervals, and two-sample comparisons used to decide
// whether observed win-rate differences are signal or variance.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fixed z-values for the supported confidence and power levels.
var (
	zConfidence = map[float64]float64{0.95: 1.96, 0.99: 2.58}
	zPower      = map[float64]float64{0.80: 0.84, 0.90: 1.28}
)

// RequiredSampleSize returns the hands per group needed to detect a
// mean difference of effectSize with the given confidence and power,
// using the two-sample comparison formula
// n = 2 * ((z_conf + z_power) * stdDev / effectSize)^2, rounded up.
// Only 95%/99% confidence and 80%/90% power are supported.
func RequiredSampleSize(effectSize, stdDev, confidence, power float64) (int, error) {
	if effectSize <= 0 {
		return 0, fmt.Errorf("effect size must be positive, got %v", effectSize)
	}
	if stdDev <= 0 {
		return 0, fmt.Errorf("standard deviation must be positive, got %v", stdDev)
	}
	zc, ok := zConfidence[confidence]
	if !ok {
		return 0, fmt.Errorf("unsupported confidence level %v (want 0.95 or 0.99)", confidence)
	}
	zp, ok := zPower[power]
	if !ok {
		return 0, fmt.Errorf("unsupported power %v (want 0.80 or 0.90)", power)
	}

	n := 2 * math.Pow((zc+zp)*stdDev/effectSize, 2)
	return int(math.Ceil(n)), nil
}

// ConfidenceInterval returns the 95% interval for the sample mean:
// mean ± 1.96 × stdDev/√n. A sample of one (or fewer) collapses to a
// point interval at the mean.
func ConfidenceInterval(samples []float64) (lower, upper float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	mean := stat.Mean(samples, nil)
	if len(samples) == 1 {
		return mean, mean
	}

	sd := math.Sqrt(stat.Variance(samples, nil))
	margin := 1.96 * sd / math.Sqrt(float64(len(samples)))
	return mean - margin, mean + margin
}

// Summary holds descriptive statistics for one sample group.
type Summary struct {
	Mean       float64
	StdDev     float64
	CI95Low    float64
	CI95High   float64
	SampleSize int
}

// Summarize computes a Summary, optionally weighted.
func Summarize(values, weights []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	mean := stat.Mean(values, weights)
	sd := 0.0
	if len(values) > 1 {
		sd = math.Sqrt(stat.Variance(values, weights))
	}

	n := len(values)
	low, high := mean, mean
	if n > 1 && sd > 0 {
		se := sd / math.Sqrt(float64(n))
		tDist := distuv.StudentsT{Nu: float64(n - 1), Mu: 0, Sigma: 1}
		margin := tDist.Quantile(0.975) * se
		low, high = mean-margin, mean+margin
	}

	return Summary{
		Mean:       mean,
		StdDev:     sd,
		CI95Low:    low,
		CI95High:   high,
		SampleSize: n,
	}
}

// Comparison is the result of a two-sample mean comparison.
type Comparison struct {
	Difference float64 // group1 mean - group2 mean
	StdError   float64
	TStatistic float64
	PValue     float64 // two-tailed, Welch's t-test
	EffectSize float64 // Cohen's d
	CI95Low    float64
	CI95High   float64
}

// Compare runs Welch's t-test between two summarized groups.
func Compare(g1, g2 Summary) Comparison {
	difference := g1.Mean - g2.Mean

	pooled := pooledStdDev(g1.StdDev, g1.SampleSize, g2.StdDev, g2.SampleSize)
	effectSize := 0.0
	if pooled > 0 {
		effectSize = difference / pooled
	}

	se1 := g1.StdDev / math.Sqrt(float64(max(g1.SampleSize, 1)))
	se2 := g2.StdDev / math.Sqrt(float64(max(g2.SampleSize, 1)))
	se := math.Sqrt(se1*se1 + se2*se2)

	tStat := 0.0
	if se > 0 {
		tStat = difference / se
	}

	df := welchDF(g1.StdDev, g1.SampleSize, g2.StdDev, g2.SampleSize)
	pValue := pValueFromT(tStat, df)

	ciLow, ciHigh := difference, difference
	if se > 0 && df > 0 {
		tDist := distuv.StudentsT{Nu: float64(df), Mu: 0, Sigma: 1}
		margin := tDist.Quantile(0.975) * se
		ciLow, ciHigh = difference-margin, difference+margin
	}

	return Comparison{
		Difference: difference,
		StdError:   se,
		TStatistic: tStat,
		PValue:     pValue,
		EffectSize: effectSize,
		CI95Low:    ciLow,
		CI95High:   ciHigh,
	}
}

// pooledStdDev combines two group standard deviations for Cohen's d.
func pooledStdDev(sd1 float64, n1 int, sd2 float64, n2 int) float64 {
	if n1+n2 <= 2 {
		return 0
	}
	pooledVar := (float64(n1-1)*sd1*sd1 + float64(n2-1)*sd2*sd2) / float64(n1+n2-2)
	return math.Sqrt(pooledVar)
}

// welchDF is the Welch-Satterthwaite degrees-of-freedom approximation.
func welchDF(sd1 float64, n1 int, sd2 float64, n2 int) int {
	if n1 <= 1 || n2 <= 1 {
		return 2
	}

	v1 := sd1 * sd1 / float64(n1)
	v2 := sd2 * sd2 / float64(n2)

	numerator := (v1 + v2) * (v1 + v2)
	denominator := (v1*v1)/float64(n1-1) + (v2*v2)/float64(n2-1)
	if denominator == 0 {
		return n1 + n2 - 2
	}
	return int(math.Floor(numerator / denominator))
}

// pValueFromT is the two-tailed p-value for a t statistic.
func pValueFromT(tStat float64, df int) float64 {
	if df <= 0 {
		return 1
	}

	tDist := distuv.StudentsT{Nu: float64(df), Mu: 0, Sigma: 1}
	p := 2 * (1 - tDist.CDF(math.Abs(tStat)))
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// InterpretEffectSize names a Cohen's d magnitude.
func InterpretEffectSize(d float64) string {
	absd := math.Abs(d)
	switch {
	case absd < 0.2:
		return "negligible"
	case absd < 0.5:
		return "small"
	case absd < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// InterpretPValue names a p-value's significance at threshold alpha.
func InterpretPValue(p float64, alpha float64) string {
	switch {
	case p < 0.001:
		return "highly significant"
	case p < 0.01:
		return "very significant"
	case p < alpha:
		return "significant"
	case p < 0.10:
		return "marginally significant"
	default:
		return "not significant"
	}
}
