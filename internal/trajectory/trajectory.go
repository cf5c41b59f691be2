// Package trajectory tracks one agent's stack over a session and
// derives risk metrics from it: drawdown, volatility, a Sharpe-like
// ratio and streaks. The series is append-only while the session runs;
// metrics are computed lazily, exactly once, after the series is
// complete, and any further append invalidates them as a unit.
package trajectory

import (
	"gonum.org/v1/gonum/stat"
)

// Metrics are the derived figures for one complete trajectory.
type Metrics struct {
	FinalStack  int     `json:"finalStack"`
	TotalProfit int     `json:"totalProfit"`
	PeakStack   int     `json:"peakStack"`
	MinStack    int     `json:"minStack"`

	// MaxDrawdown is the largest drop from a running peak to a later
	// stack; MaxDrawdownPct is that drop relative to the peak it fell
	// from.
	MaxDrawdown    int     `json:"maxDrawdown"`
	MaxDrawdownPct float64 `json:"maxDrawdownPct"`

	// Volatility is the population standard deviation of per-hand
	// results; SharpeRatio is mean result over volatility, zero when
	// volatility is zero.
	Volatility  float64 `json:"volatility"`
	SharpeRatio float64 `json:"sharpeRatio"`

	LongestWinStreak  int `json:"longestWinStreak"`
	LongestLoseStreak int `json:"longestLoseStreak"`
	HandsWon          int `json:"handsWon"`
	HandsLost         int `json:"handsLost"`
}

// Trajectory is one agent's stack series across a session.
type Trajectory struct {
	AgentID      int    `json:"agentId"`
	Style        string `json:"style"`
	InitialStack int    `json:"initialStack"`

	// StackHistory holds the stack after each hand; HandResults the
	// per-hand P/L; ProfitHistory the cumulative profit curve.
	StackHistory  []int `json:"stackHistory"`
	HandResults   []int `json:"handResults"`
	ProfitHistory []int `json:"profitHistory"`

	metrics *Metrics
}

// New creates an empty trajectory.
func New(agentID int, styleID string, initialStack int) *Trajectory {
	return &Trajectory{
		AgentID:      agentID,
		Style:        styleID,
		InitialStack: initialStack,
	}
}

// Record appends one hand's outcome and invalidates derived metrics.
func (tr *Trajectory) Record(stackAfter int) {
	profit := stackAfter - tr.InitialStack
	result := stackAfter - tr.InitialStack
	if n := len(tr.StackHistory); n > 0 {
		result = profit - tr.ProfitHistory[n-1]
	}

	tr.StackHistory = append(tr.StackHistory, stackAfter)
	tr.HandResults = append(tr.HandResults, result)
	tr.ProfitHistory = append(tr.ProfitHistory, profit)
	tr.metrics = nil
}

// Hands returns the number of recorded hands.
func (tr *Trajectory) Hands() int {
	return len(tr.StackHistory)
}

// Metrics computes (once) and returns the derived metrics. An empty
// trajectory yields zero metrics with the stacks pinned to the
// initial stack.
func (tr *Trajectory) Metrics() Metrics {
	if tr.metrics != nil {
		return *tr.metrics
	}

	m := Metrics{
		FinalStack: tr.InitialStack,
		PeakStack:  tr.InitialStack,
		MinStack:   tr.InitialStack,
	}
	if len(tr.StackHistory) == 0 {
		tr.metrics = &m
		return m
	}

	m.FinalStack = tr.StackHistory[len(tr.StackHistory)-1]
	m.TotalProfit = m.FinalStack - tr.InitialStack
	for _, s := range tr.StackHistory {
		if s > m.PeakStack {
			m.PeakStack = s
		}
		if s < m.MinStack {
			m.MinStack = s
		}
	}

	// Max drawdown against the running peak, starting from the
	// initial stack.
	peak := tr.InitialStack
	peakAtMaxDD := tr.InitialStack
	for _, s := range tr.StackHistory {
		if s > peak {
			peak = s
		}
		if dd := peak - s; dd > m.MaxDrawdown {
			m.MaxDrawdown = dd
			peakAtMaxDD = peak
		}
	}
	if peakAtMaxDD > 0 {
		m.MaxDrawdownPct = float64(m.MaxDrawdown) / float64(peakAtMaxDD) * 100
	}

	m.Volatility = populationStdDev(tr.HandResults)
	if m.Volatility > 0 {
		mean := float64(m.TotalProfit) / float64(len(tr.HandResults))
		m.SharpeRatio = mean / m.Volatility
	}

	m.LongestWinStreak, m.LongestLoseStreak, m.HandsWon, m.HandsLost = streaks(tr.HandResults)

	tr.metrics = &m
	return m
}

// Classify names the shape of a complete trajectory for reports.
// Losers split on volatility; winners on how much of the peak was
// given back and on risk-adjusted return.
func (m Metrics) Classify() string {
	if m.TotalProfit <= 0 {
		if m.Volatility > 500 {
			return "Volatile decline"
		}
		return "Steady decline"
	}

	ddRatio := 0.0
	if m.PeakStack > 0 {
		ddRatio = float64(m.MaxDrawdown) / float64(m.PeakStack)
	}
	switch {
	case ddRatio < 0.2 && m.Volatility < 300:
		return "Steady accumulation"
	case ddRatio > 0.5:
		return "Volatile winner (big swings)"
	case m.SharpeRatio > 0.1:
		return "Efficient winner (good Sharpe)"
	default:
		return "Moderate volatility"
	}
}

// populationStdDev over the full series; zero for fewer than two
// samples.
func populationStdDev(xs []int) float64 {
	if len(xs) < 2 {
		return 0
	}
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return stat.PopStdDev(fs, nil)
}

// streaks finds the longest runs of strictly positive and strictly
// negative results. Zero results neither extend nor break a run.
func streaks(results []int) (win, lose, won, lost int) {
	current := 0
	winning := 0 // +1 winning run, -1 losing run, 0 none yet

	for _, r := range results {
		switch {
		case r > 0:
			won++
			if winning == 1 {
				current++
			} else {
				current = 1
				winning = 1
			}
			if current > win {
				win = current
			}
		case r < 0:
			lost++
			if winning == -1 {
				current++
			} else {
				current = 1
				winning = -1
			}
			if current > lose {
				lose = current
			}
		}
	}
	return win, lose, won, lost
}
