package main

import (
	"fmt"
	"strings"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/stats"
)

// PlanCmd answers "how many hands do I need" and, given saved sessions,
// whether two styles are distinguishable yet.
type PlanCmd struct {
	Effect     float64 `kong:"default='5',help='Smallest per-hand profit difference worth detecting'"`
	StdDev     float64 `kong:"default='100',help='Expected per-hand profit standard deviation'"`
	Confidence float64 `kong:"default='0.95',help='Confidence level (0.95 or 0.99)'"`
	Power      float64 `kong:"default='0.80',help='Statistical power (0.80 or 0.90)'"`
	Dir        string  `kong:"help='Directory of session JSON files to compare styles from'"`
	Compare    string  `kong:"help=\"Two styles to compare, e.g. 'tag,fish' (requires --dir)\""`
}

func (c *PlanCmd) Run() error {
	n, err := stats.RequiredSampleSize(c.Effect, c.StdDev, c.Confidence, c.Power)
	if err != nil {
		return err
	}
	fmt.Printf("Required sample size: %d hands per style\n", n)
	fmt.Printf("  effect size %.2f, std dev %.2f, confidence %.0f%%, power %.0f%%\n\n",
		c.Effect, c.StdDev, c.Confidence*100, c.Power*100)

	if c.Compare == "" {
		return nil
	}
	if c.Dir == "" {
		return fmt.Errorf("--compare requires --dir")
	}
	parts := strings.Split(c.Compare, ",")
	if len(parts) != 2 {
		return fmt.Errorf("--compare wants exactly two styles, got %q", c.Compare)
	}
	styleA, styleB := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	sessions, err := capture.LoadSessions(c.Dir)
	if err != nil {
		return err
	}
	samplesA, weightsA := styleSamples(sessions, styleA)
	samplesB, weightsB := styleSamples(sessions, styleB)
	if len(samplesA) < 2 || len(samplesB) < 2 {
		return fmt.Errorf("need at least 2 sessions per style, have %d for %s and %d for %s",
			len(samplesA), styleA, len(samplesB), styleB)
	}

	sumA := stats.Summarize(samplesA, weightsA)
	sumB := stats.Summarize(samplesB, weightsB)
	cmp := stats.Compare(sumA, sumB)

	fmt.Printf("%s: mean %+.2f/hand over %d sessions (95%% CI %+.2f to %+.2f)\n",
		styleA, sumA.Mean, len(samplesA), sumA.CI95Low, sumA.CI95High)
	fmt.Printf("%s: mean %+.2f/hand over %d sessions (95%% CI %+.2f to %+.2f)\n\n",
		styleB, sumB.Mean, len(samplesB), sumB.CI95Low, sumB.CI95High)

	fmt.Printf("Difference: %+.2f (95%% CI %+.2f to %+.2f)\n", cmp.Difference, cmp.CI95Low, cmp.CI95High)
	fmt.Printf("t = %.3f, p = %.4f: %s\n", cmp.TStatistic, cmp.PValue, stats.InterpretPValue(cmp.PValue, 0.05))
	fmt.Printf("Cohen's d = %.3f: %s effect\n", cmp.EffectSize, stats.InterpretEffectSize(cmp.EffectSize))
	return nil
}

// styleSamples returns each session's per-hand mean profit for the style,
// weighted by the number of hands behind it.
func styleSamples(sessions []capture.Session, style string) (values, weights []float64) {
	for _, sess := range sessions {
		sum := aggregate.SummarizeSession(sess)
		for _, ss := range sum.Styles {
			if ss.Style == style && ss.Hands > 0 {
				values = append(values, ss.AvgProfit)
				weights = append(weights, float64(ss.Hands))
			}
		}
	}
	return values, weights
}
