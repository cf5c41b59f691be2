package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/randutil"
)

func TestRequiredSampleSizeClosedForm(t *testing.T) {
	// 2 * ((1.96 + 0.84) * 100 / 5)^2 = 6272
	n, err := RequiredSampleSize(5, 100, 0.95, 0.80)
	require.NoError(t, err)
	assert.Equal(t, 6272, n)
}

func TestRequiredSampleSizeLevels(t *testing.T) {
	base, err := RequiredSampleSize(5, 100, 0.95, 0.80)
	require.NoError(t, err)

	higherConf, err := RequiredSampleSize(5, 100, 0.99, 0.80)
	require.NoError(t, err)
	assert.Greater(t, higherConf, base)

	higherPower, err := RequiredSampleSize(5, 100, 0.95, 0.90)
	require.NoError(t, err)
	assert.Greater(t, higherPower, base)

	biggerEffect, err := RequiredSampleSize(10, 100, 0.95, 0.80)
	require.NoError(t, err)
	assert.Less(t, biggerEffect, base)
}

func TestRequiredSampleSizeRejectsBadInputs(t *testing.T) {
	_, err := RequiredSampleSize(0, 100, 0.95, 0.80)
	assert.Error(t, err)

	_, err = RequiredSampleSize(5, 0, 0.95, 0.80)
	assert.Error(t, err)

	_, err = RequiredSampleSize(5, 100, 0.90, 0.80)
	assert.Error(t, err, "unsupported confidence level")

	_, err = RequiredSampleSize(5, 100, 0.95, 0.85)
	assert.Error(t, err, "unsupported power")
}

func TestConfidenceIntervalContainsMean(t *testing.T) {
	rng := randutil.New(13)
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.IntN(200)
		samples := make([]float64, n)
		mean := 0.0
		for i := range samples {
			samples[i] = rng.NormFloat64()*50 + 10
			mean += samples[i]
		}
		mean /= float64(n)

		lower, upper := ConfidenceInterval(samples)
		assert.LessOrEqual(t, lower, mean)
		assert.GreaterOrEqual(t, upper, mean)
	}
}

func TestConfidenceIntervalSingleSampleIsPoint(t *testing.T) {
	lower, upper := ConfidenceInterval([]float64{42.5})
	assert.Equal(t, 42.5, lower)
	assert.Equal(t, 42.5, upper)
}

func TestConfidenceIntervalNarrowsWithSampleSize(t *testing.T) {
	rng := randutil.New(21)
	small := make([]float64, 20)
	large := make([]float64, 2000)
	for i := range large {
		v := rng.NormFloat64() * 30
		if i < len(small) {
			small[i] = v
		}
		large[i] = v
	}

	sLow, sHigh := ConfidenceInterval(small)
	lLow, lHigh := ConfidenceInterval(large)
	assert.Less(t, lHigh-lLow, sHigh-sLow)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{10, 20, 30}, nil)
	assert.InDelta(t, 20, s.Mean, 1e-9)
	assert.InDelta(t, 10, s.StdDev, 1e-9) // sample stddev
	assert.Equal(t, 3, s.SampleSize)
	assert.LessOrEqual(t, s.CI95Low, s.Mean)
	assert.GreaterOrEqual(t, s.CI95High, s.Mean)

	empty := Summarize(nil, nil)
	assert.Equal(t, Summary{}, empty)
}

func TestCompareDetectsClearDifference(t *testing.T) {
	g1 := Summary{Mean: 50, StdDev: 10, SampleSize: 500}
	g2 := Summary{Mean: 10, StdDev: 10, SampleSize: 500}

	c := Compare(g1, g2)
	assert.InDelta(t, 40, c.Difference, 1e-9)
	assert.Less(t, c.PValue, 0.001)
	assert.Greater(t, c.EffectSize, 0.8, "should be a large effect")
	assert.Greater(t, c.CI95Low, 0.0, "interval should exclude zero")
}

func TestCompareIdenticalGroups(t *testing.T) {
	g := Summary{Mean: 25, StdDev: 8, SampleSize: 200}

	c := Compare(g, g)
	assert.Equal(t, 0.0, c.Difference)
	assert.Equal(t, 0.0, c.TStatistic)
	assert.InDelta(t, 1.0, c.PValue, 1e-9)
	assert.Equal(t, 0.0, c.EffectSize)
	assert.LessOrEqual(t, c.CI95Low, 0.0)
	assert.GreaterOrEqual(t, c.CI95High, 0.0)
}

func TestInterpretEffectSize(t *testing.T) {
	assert.Equal(t, "negligible", InterpretEffectSize(0.1))
	assert.Equal(t, "small", InterpretEffectSize(-0.3))
	assert.Equal(t, "medium", InterpretEffectSize(0.6))
	assert.Equal(t, "large", InterpretEffectSize(1.2))
}

func TestInterpretPValue(t *testing.T) {
	assert.Equal(t, "highly significant", InterpretPValue(0.0005, 0.05))
	assert.Equal(t, "very significant", InterpretPValue(0.005, 0.05))
	assert.Equal(t, "significant", InterpretPValue(0.03, 0.05))
	assert.Equal(t, "marginally significant", InterpretPValue(0.07, 0.05))
	assert.Equal(t, "not significant", InterpretPValue(0.5, 0.05))
}
