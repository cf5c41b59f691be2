package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
)

func sampleSummary() aggregate.SessionSummary {
	return aggregate.SessionSummary{
		SessionID:    "01TESTSESSION0000000000001",
		Hands:        100,
		AbortedHands: 2,
		BigBlind:     2,
		Styles: []aggregate.StyleSummary{
			{Style: "tag", Hands: 100, Wins: 40, WinRate: 40, TotalProfit: 250, BB100: 125,
				VPIPRate: 28.5, WTSD: 22, WSD: 55, Actions: map[string]int{"raise": 30},
				Trend: "Steady accumulation"},
			{Style: "fish", Hands: 100, Wins: 35, WinRate: 35, TotalProfit: -250, BB100: -125,
				VPIPRate: 51, WTSD: 30, WSD: 40, Busts: 1,
				Trend: "Volatile decline"},
		},
		HeadToHead: map[string]map[string]int{
			"tag":  {"fish": 250},
			"fish": {"tag": -250},
		},
	}
}

func sampleAggregate() []aggregate.StyleAggregate {
	return []aggregate.StyleAggregate{
		{Style: "tag", Sessions: 4, TotalHands: 400, TotalProfit: 900, AvgProfit: 225,
			BB100: 112.5, WinRate: 75, AvgVolatility: 120.5, AvgSharpe: 0.145,
			BestSession: 500, WorstSession: -80,
			Pattern: "Consistent winner | moderate volatility | consistent results | good risk-adjusted returns"},
		{Style: "fish", Sessions: 4, TotalHands: 400, TotalProfit: -900, AvgProfit: -225,
			BB100: -112.5, WinRate: 25, BustRate: 50, AvgVolatility: 640, AvgSharpe: -0.2,
			BestSession: 120, WorstSession: -600,
			Pattern: "High bust risk | high volatility | poor risk-adjusted returns"},
	}
}

func TestRenderSession(t *testing.T) {
	out := RenderSession(sampleSummary())

	assert.Contains(t, out, "01TESTSESSION0000000000001")
	assert.Contains(t, out, "100 hands completed, 2 aborted")
	assert.Contains(t, out, "tag")
	assert.Contains(t, out, "fish")
	assert.Contains(t, out, "+250")
	assert.Contains(t, out, "-250")
	assert.Contains(t, out, "vs fish +250")
	assert.Contains(t, out, "approximate attribution")
	assert.Contains(t, out, "Steady accumulation")
	assert.Contains(t, out, "Volatile decline")
}

func TestRenderAggregate(t *testing.T) {
	out := RenderAggregate(sampleAggregate())

	assert.Contains(t, out, "Cross-session analysis (2 styles)")
	assert.Contains(t, out, "Pattern analysis")
	assert.Contains(t, out, "Consistent winner")
	assert.Contains(t, out, "High bust risk")
	assert.Contains(t, out, "+900")
	assert.Contains(t, out, "0.145")
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	data := Data{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Sessions:    []aggregate.SessionSummary{sampleSummary()},
		Aggregate:   sampleAggregate(),
	}

	require.NoError(t, WriteHTML(path, data))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(raw)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Style Simulation Report")
	assert.Contains(t, html, "2025-06-01")
	assert.Contains(t, html, "Cross-Session Overview")
	assert.Contains(t, html, "Pattern Analysis")
	assert.Contains(t, html, "Session 01TESTSESSION0000000000001")
	assert.Contains(t, html, `class="pos"`)
	assert.Contains(t, html, `class="neg"`)
	assert.Contains(t, html, "approximation")
}

func TestWriteHTMLCustomTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteHTML(path, Data{Title: "Sweep 42", GeneratedAt: time.Now()}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<title>Sweep 42</title>")
}
