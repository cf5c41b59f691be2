package main

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danieldrasin/poker-scenario-analyzer/cmd/scenario-analyzer/shared"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/engine"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/report"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/simulator"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/style"
)

// SweepCmd runs a grid of sessions across game variants and table
// sizes, then aggregates the results.
type SweepCmd struct {
	Variants   []int    `kong:"default='4',help='Game variants to sweep (hole cards per player)'"`
	Players    []int    `kong:"default='2,3,6',help='Table sizes to sweep'"`
	Sessions   int      `kong:"default='4',help='Sessions per grid cell'"`
	Hands      int      `kong:"default='5000',help='Hands per session'"`
	SmallBlind int      `kong:"default='1',help='Small blind amount'"`
	BigBlind   int      `kong:"default='2',help='Big blind amount'"`
	Stack      int      `kong:"default='200',help='Starting stack in chips'"`
	Styles     []string `kong:"default='tag,lag,reg,nit,rock,fish',help='Style per seat, cycled when fewer than seats'"`
	StyleFile  string   `kong:"help='HCL style definitions (built-ins when omitted or invalid)'"`
	Seed       *int64   `kong:"help='Base RNG seed; each session derives its own (optional)'"`
	OracleURL  string   `kong:"name='oracle-url',help='Advisory service endpoint (empty = heuristics only)'"`
	Out        string   `kong:"default='results',help='Directory for session JSON'"`
	HTML       string   `kong:"help='Also write an HTML report to this path'"`
	Parallel   int      `kong:"default='4',help='Sessions to run concurrently'"`
	Debug      bool     `kong:"help='Enable debug logging'"`
}

func (c *SweepCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	progress := shared.SetupProgressLogger(c.Debug)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	baseSeed := resolveSeed(c.Seed)

	profiles := style.Builtin()
	positions := style.DefaultPositions()
	if c.StyleFile != "" {
		profiles, positions = style.Load(c.StyleFile)
	}

	type cell struct {
		variant, players int
		seed             int64
	}
	var cells []cell
	next := 0
	for _, v := range c.Variants {
		for _, p := range c.Players {
			for s := 0; s < c.Sessions; s++ {
				cells = append(cells, cell{variant: v, players: p, seed: baseSeed + int64(next)})
				next++
			}
		}
	}
	logger.Info().
		Int("cells", len(cells)).
		Int64("baseSeed", baseSeed).
		Msg("Starting sweep")

	sessions := make([]capture.Session, len(cells))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Parallel)
	for i, cl := range cells {
		g.Go(func() error {
			sim, err := simulator.New(simulator.Config{
				Table: engine.Config{
					NumPlayers:    cl.players,
					Variant:       cl.variant,
					SmallBlind:    c.SmallBlind,
					BigBlind:      c.BigBlind,
					StartingStack: c.Stack,
				},
				Styles:    seatStyles(c.Styles, cl.players),
				Hands:     c.Hands,
				Seed:      cl.seed,
				OracleURL: c.OracleURL,
				Profiles:  profiles,
				Positions: positions,
				Logger:    progress,
				EventLog:  logger,
			})
			if err != nil {
				return fmt.Errorf("variant %d, %d players: %w", cl.variant, cl.players, err)
			}

			res, err := sim.Run(gctx)
			if err != nil {
				return err
			}
			if _, err := capture.SaveSession(c.Out, res.Session); err != nil {
				return err
			}
			sessions[i] = res.Session
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	aggs := aggregate.Aggregate(sessions)
	fmt.Println(report.RenderAggregate(aggs))

	if c.HTML != "" {
		summaries := make([]aggregate.SessionSummary, len(sessions))
		for i, sess := range sessions {
			summaries[i] = aggregate.SummarizeSession(sess)
		}
		data := report.Data{
			GeneratedAt: time.Now(),
			Sessions:    summaries,
			Aggregate:   aggs,
		}
		if err := report.WriteHTML(c.HTML, data); err != nil {
			return err
		}
		logger.Info().Str("path", c.HTML).Msg("HTML report written")
	}
	return nil
}
