package main

import (
	"fmt"
	"time"

	"github.com/danieldrasin/poker-scenario-analyzer/cmd/scenario-analyzer/shared"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/report"
)

// ReportCmd renders saved sessions into a standalone HTML report.
type ReportCmd struct {
	Dir   string `kong:"default='results',help='Directory of session JSON files'"`
	Out   string `kong:"default='report.html',help='Output HTML path'"`
	Title string `kong:"help='Report title'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *ReportCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	sessions, err := capture.LoadSessions(c.Dir)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions found in %s", c.Dir)
	}

	summaries := make([]aggregate.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, aggregate.SummarizeSession(sess))
	}
	data := report.Data{
		Title:       c.Title,
		GeneratedAt: time.Now(),
		Sessions:    summaries,
		Aggregate:   aggregate.Aggregate(sessions),
	}
	if err := report.WriteHTML(c.Out, data); err != nil {
		return err
	}
	logger.Info().Str("path", c.Out).Int("sessions", len(sessions)).Msg("Report written")
	fmt.Printf("Report written to %s (%d sessions)\n", c.Out, len(sessions))
	return nil
}
