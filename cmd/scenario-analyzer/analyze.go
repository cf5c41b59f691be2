package main

import (
	"fmt"

	"github.com/danieldrasin/poker-scenario-analyzer/cmd/scenario-analyzer/shared"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/fileutil"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/report"
)

// AnalyzeCmd summarizes saved sessions and rolls them up per style.
type AnalyzeCmd struct {
	Dir      string `kong:"default='results',help='Directory of session JSON files'"`
	Session  string `kong:"help='Limit to one session ID'"`
	JSON     string `kong:"help='Write the cross-session aggregate to this JSON path'"`
	Sessions bool   `kong:"help='Print every per-session summary, not just the rollup'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *AnalyzeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	sessions, err := capture.LoadSessions(c.Dir)
	if err != nil {
		return err
	}
	if c.Session != "" {
		filtered := sessions[:0]
		for _, s := range sessions {
			if s.SessionID == c.Session {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions found in %s", c.Dir)
	}
	logger.Info().Int("sessions", len(sessions)).Msg("Sessions loaded")

	if c.Sessions || len(sessions) == 1 {
		for _, sess := range sessions {
			fmt.Println(report.RenderSession(aggregate.SummarizeSession(sess)))
		}
	}

	aggs := aggregate.Aggregate(sessions)
	fmt.Println(report.RenderAggregate(aggs))

	if c.JSON != "" {
		if err := fileutil.WriteJSONAtomic(c.JSON, aggs, 0o644); err != nil {
			return err
		}
		logger.Info().Str("path", c.JSON).Msg("Aggregate written")
	}
	return nil
}
