// Package aggregate rolls hand records up into per-style summaries,
// first within a session and then across many sessions. Everything
// here is derived purely from capture data so saved sessions can be
// re-analyzed without replaying them.
package aggregate

import (
	"sort"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/trajectory"
)

// StyleSummary is one style's performance within a single session.
type StyleSummary struct {
	Style string `json:"style"`

	Hands       int     `json:"hands"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"winRate"` // percent
	TotalProfit int     `json:"totalProfit"`
	AvgProfit   float64 `json:"avgProfit"`
	BB100       float64 `json:"bb100"`

	Busts    int     `json:"busts"`
	BustRate float64 `json:"bustRate"` // percent
	VPIPRate float64 `json:"vpipRate"` // percent
	WTSD     float64 `json:"wtsd"`     // went to showdown, percent
	WSD      float64 `json:"wsd"`      // won at showdown, percent of showdowns

	FoldsByStreet map[string]int `json:"foldsByStreet"`
	Actions       map[string]int `json:"actions"`

	OracleFollowed int `json:"oracleFollowed"`
	OracleIgnored  int `json:"oracleIgnored"`
	OracleErrors   int `json:"oracleErrors"`

	// Trend names the shape of the style's bankroll trajectory. When a
	// style holds several seats the lowest-numbered seat speaks for it.
	Trend string `json:"trend"`
}

// SessionSummary is the per-style rollup of one session.
//
// HeadToHead sums, for every ordered pair of distinct styles present
// in the same hand, the first style's stack delta. This attribution is
// an approximation: in multi-way pots the delta against each opponent
// double-counts contributions rather than isolating pairwise flows.
type SessionSummary struct {
	SessionID    string `json:"sessionId"`
	Hands        int    `json:"hands"`
	AbortedHands int    `json:"abortedHands"`
	BigBlind     int    `json:"bigBlind"`

	Styles     []StyleSummary            `json:"styles"` // by profit, best first
	HeadToHead map[string]map[string]int `json:"headToHead"`
}

// SummarizeSession folds a session's hand records into per-style
// summaries. Aborted hands never appear in the hand log, so every
// denominator here counts completed hands only.
func SummarizeSession(sess capture.Session) SessionSummary {
	acc := make(map[string]*StyleSummary)
	showdowns := make(map[string]int)
	showdownWins := make(map[string]int)
	vpip := make(map[string]int)
	h2h := make(map[string]map[string]int)

	for _, h := range sess.Hands {
		delta := make(map[string]int)
		for _, p := range h.Players {
			s := acc[p.Style]
			if s == nil {
				s = &StyleSummary{
					Style:         p.Style,
					FoldsByStreet: make(map[string]int),
					Actions:       make(map[string]int),
				}
				acc[p.Style] = s
			}

			s.Hands++
			s.TotalProfit += p.Profit
			delta[p.Style] += p.Profit
			if p.Won {
				s.Wins++
			}
			// Busting is the crossing event, not every hand spent
			// at or below zero afterwards.
			if p.StackBefore > 0 && p.StackAfter <= 0 {
				s.Busts++
			}
			if p.VPIP {
				vpip[p.Style]++
			}
			if p.Showdown {
				showdowns[p.Style]++
				if p.Won {
					showdownWins[p.Style]++
				}
			}
			if p.FoldStreet != "" {
				s.FoldsByStreet[p.FoldStreet]++
			}
			for _, a := range p.Actions {
				s.Actions[a.Action]++
				if a.OracleConsulted && !a.OracleError {
					if a.Action == a.Advised {
						s.OracleFollowed++
					} else {
						s.OracleIgnored++
					}
				}
				if a.OracleError {
					s.OracleErrors++
				}
			}
		}

		for a, d := range delta {
			for b := range delta {
				if a == b {
					continue
				}
				if h2h[a] == nil {
					h2h[a] = make(map[string]int)
				}
				h2h[a][b] += d
			}
		}
	}

	trend := make(map[string]string)
	trendAgent := make(map[string]int)
	for agentID, tr := range Trajectories(sess) {
		if prev, ok := trendAgent[tr.Style]; ok && prev < agentID {
			continue
		}
		trendAgent[tr.Style] = agentID
		trend[tr.Style] = tr.Metrics().Classify()
	}

	styles := make([]StyleSummary, 0, len(acc))
	for id, s := range acc {
		if s.Hands > 0 {
			s.WinRate = pct(s.Wins, s.Hands)
			s.AvgProfit = float64(s.TotalProfit) / float64(s.Hands)
			s.BustRate = pct(s.Busts, s.Hands)
			s.VPIPRate = pct(vpip[id], s.Hands)
			s.WTSD = pct(showdowns[id], s.Hands)
			s.BB100 = bb100(s.TotalProfit, sess.Config.BigBlind, s.Hands)
		}
		if showdowns[id] > 0 {
			s.WSD = pct(showdownWins[id], showdowns[id])
		}
		s.Trend = trend[id]
		styles = append(styles, *s)
	}
	sort.Slice(styles, func(i, j int) bool {
		if styles[i].TotalProfit != styles[j].TotalProfit {
			return styles[i].TotalProfit > styles[j].TotalProfit
		}
		return styles[i].Style < styles[j].Style
	})

	return SessionSummary{
		SessionID:    sess.SessionID,
		Hands:        len(sess.Hands),
		AbortedHands: sess.AbortedHands,
		BigBlind:     sess.Config.BigBlind,
		Styles:       styles,
		HeadToHead:   h2h,
	}
}

// Trajectories rebuilds each agent's stack trajectory from a saved
// session, keyed by agent ID.
func Trajectories(sess capture.Session) map[int]*trajectory.Trajectory {
	out := make(map[int]*trajectory.Trajectory)
	for _, h := range sess.Hands {
		for _, p := range h.Players {
			tr, ok := out[p.AgentID]
			if !ok {
				tr = trajectory.New(p.AgentID, p.Style, sess.Config.StartingStack)
				out[p.AgentID] = tr
			}
			tr.Record(p.StackAfter)
		}
	}
	return out
}

// StyleAggregate is one style's performance across many sessions.
type StyleAggregate struct {
	Style string `json:"style"`

	Sessions    int     `json:"sessions"`
	TotalHands  int     `json:"totalHands"`
	TotalProfit int     `json:"totalProfit"`
	AvgProfit   float64 `json:"avgProfitPerSession"`
	ProfitStd   float64 `json:"profitStd"`
	BB100       float64 `json:"bb100"`

	SessionWins   int     `json:"sessionWins"` // sessions with the top profit
	SessionLosses int     `json:"sessionLosses"`
	WinRate       float64 `json:"winRate"`  // percent of sessions won
	BustRate      float64 `json:"bustRate"` // percent of sessions with a bust

	AvgVolatility  float64 `json:"avgVolatility"`
	AvgSharpe      float64 `json:"avgSharpe"`
	AvgMaxDrawdown float64 `json:"avgMaxDrawdown"`

	BestSession  int `json:"bestSession"`
	WorstSession int `json:"worstSession"`

	AvgWinStreak  float64 `json:"avgWinStreak"`
	AvgLoseStreak float64 `json:"avgLoseStreak"`

	Pattern string `json:"pattern"`
}

// Aggregate combines many sessions into per-style aggregates, best
// total profit first.
func Aggregate(sessions []capture.Session) []StyleAggregate {
	type acc struct {
		StyleAggregate
		profits      []float64
		vols         []float64
		sharpes      []float64
		drawdowns    []float64
		winStreaks   []float64
		loseStreaks  []float64
		bustSessions int
		bigBlind     int
	}
	byStyle := make(map[string]*acc)

	for _, sess := range sessions {
		summary := SummarizeSession(sess)
		trajs := Trajectories(sess)

		// Session winner is the style with the top profit.
		winner := ""
		if len(summary.Styles) > 0 {
			winner = summary.Styles[0].Style
		}

		// Trajectory metrics averaged over the style's agents.
		type tmetrics struct {
			vol, sharpe, dd, winStreak, loseStreak float64
			agents                                 int
			busted                                 bool
		}
		perStyle := make(map[string]*tmetrics)
		for _, tr := range trajs {
			m := tr.Metrics()
			styleID := tr.Style
			tm := perStyle[styleID]
			if tm == nil {
				tm = &tmetrics{}
				perStyle[styleID] = tm
			}
			tm.agents++
			tm.vol += m.Volatility
			tm.sharpe += m.SharpeRatio
			tm.dd += float64(m.MaxDrawdown)
			tm.winStreak += float64(m.LongestWinStreak)
			tm.loseStreak += float64(m.LongestLoseStreak)
			if m.MinStack <= 0 {
				tm.busted = true
			}
		}

		for _, s := range summary.Styles {
			a := byStyle[s.Style]
			if a == nil {
				a = &acc{StyleAggregate: StyleAggregate{Style: s.Style}}
				byStyle[s.Style] = a
			}
			a.Sessions++
			a.TotalHands += s.Hands
			a.TotalProfit += s.TotalProfit
			a.profits = append(a.profits, float64(s.TotalProfit))
			a.bigBlind = sess.Config.BigBlind

			if s.Style == winner {
				a.SessionWins++
			}
			if s.TotalProfit < 0 {
				a.SessionLosses++
			}

			if tm := perStyle[s.Style]; tm != nil && tm.agents > 0 {
				n := float64(tm.agents)
				a.vols = append(a.vols, tm.vol/n)
				a.sharpes = append(a.sharpes, tm.sharpe/n)
				a.drawdowns = append(a.drawdowns, tm.dd/n)
				a.winStreaks = append(a.winStreaks, tm.winStreak/n)
				a.loseStreaks = append(a.loseStreaks, tm.loseStreak/n)
				if tm.busted {
					a.bustSessions++
				}
			}
		}
	}

	out := make([]StyleAggregate, 0, len(byStyle))
	for _, a := range byStyle {
		n := a.Sessions
		if n == 0 {
			continue
		}
		a.AvgProfit = mean(a.profits)
		a.ProfitStd = popStdDev(a.profits)
		a.WinRate = pct(a.SessionWins, n)
		a.BustRate = pct(a.bustSessions, n)
		a.AvgVolatility = mean(a.vols)
		a.AvgSharpe = mean(a.sharpes)
		a.AvgMaxDrawdown = mean(a.drawdowns)
		a.AvgWinStreak = mean(a.winStreaks)
		a.AvgLoseStreak = mean(a.loseStreaks)
		if len(a.profits) > 0 {
			a.BestSession = int(maxOf(a.profits))
			a.WorstSession = int(minOf(a.profits))
		}
		a.BB100 = bb100(a.TotalProfit, a.bigBlind, a.TotalHands)
		a.Pattern = ClassifyPattern(a.StyleAggregate)
		out = append(out, a.StyleAggregate)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalProfit != out[j].TotalProfit {
			return out[i].TotalProfit > out[j].TotalProfit
		}
		return out[i].Style < out[j].Style
	})
	return out
}
