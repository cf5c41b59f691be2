// Package report renders session summaries and cross-session
// aggregates for humans: styled console tables and a standalone HTML
// report.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	profitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// RenderSession renders one session's per-style results as a console
// table.
func RenderSession(sum aggregate.SessionSummary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Session %s", sum.SessionID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d hands completed, %d aborted, big blind %d",
		sum.Hands, sum.AbortedHands, sum.BigBlind)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %7s %6s %8s %9s %8s %7s %7s %7s",
		"Style", "Hands", "Wins", "Profit", "BB/100", "VPIP%", "WTSD%", "WSD%", "Busts")))
	b.WriteString("\n")

	for _, s := range sum.Styles {
		line := fmt.Sprintf("%-8s %7d %6d %+8d %+9.2f %8.1f %7.1f %7.1f %7d",
			s.Style, s.Hands, s.Wins, s.TotalProfit, s.BB100,
			s.VPIPRate, s.WTSD, s.WSD, s.Busts)
		b.WriteString(styleForProfit(s.TotalProfit).Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Trajectory patterns"))
	b.WriteString("\n")
	for _, s := range sum.Styles {
		if s.Trend != "" {
			b.WriteString(fmt.Sprintf("%-8s %s\n", s.Style, s.Trend))
		}
	}

	if len(sum.HeadToHead) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Head-to-head (approximate attribution)"))
		b.WriteString("\n")
		for _, s := range sum.Styles {
			opps := sum.HeadToHead[s.Style]
			if len(opps) == 0 {
				continue
			}
			var parts []string
			for _, o := range sum.Styles {
				if d, ok := opps[o.Style]; ok {
					parts = append(parts, fmt.Sprintf("vs %s %+d", o.Style, d))
				}
			}
			b.WriteString(fmt.Sprintf("%-8s %s\n", s.Style, strings.Join(parts, "  ")))
		}
	}

	return b.String()
}

// RenderAggregate renders the cross-session rollup, one style per row
// plus the pattern analysis block.
func RenderAggregate(aggs []aggregate.StyleAggregate) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Cross-session analysis (%d styles)", len(aggs))))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %9s %10s %11s %8s %8s %9s",
		"Style", "Sessions", "Hands", "Profit", "BB/100", "Win%", "Bust%")))
	b.WriteString("\n")
	for _, a := range aggs {
		line := fmt.Sprintf("%-8s %9d %10d %+11d %+8.2f %8.1f %9.1f",
			a.Style, a.Sessions, a.TotalHands, a.TotalProfit, a.BB100, a.WinRate, a.BustRate)
		b.WriteString(styleForProfit(a.TotalProfit).Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %10s %10s %10s %11s %10s %10s",
		"Style", "AvgVol", "AvgSharpe", "AvgMaxDD", "ProfitStd", "Best", "Worst")))
	b.WriteString("\n")
	for _, a := range aggs {
		b.WriteString(fmt.Sprintf("%-8s %10.1f %10.3f %10.0f %11.0f %+10d %+10d\n",
			a.Style, a.AvgVolatility, a.AvgSharpe, a.AvgMaxDrawdown,
			a.ProfitStd, a.BestSession, a.WorstSession))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Pattern analysis"))
	b.WriteString("\n")
	for _, a := range aggs {
		b.WriteString(fmt.Sprintf("%-8s %s\n", a.Style, a.Pattern))
	}

	return b.String()
}

func styleForProfit(profit int) lipgloss.Style {
	if profit >= 0 {
		return profitStyle
	}
	return lossStyle
}
