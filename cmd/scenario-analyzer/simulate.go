package main

import (
	"fmt"
	"time"

	"github.com/danieldrasin/poker-scenario-analyzer/cmd/scenario-analyzer/shared"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/engine"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/report"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/simulator"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/style"
)

// SimulateCmd runs a single session and saves its hand log.
type SimulateCmd struct {
	Hands      int      `kong:"default='10000',help='Hands to play'"`
	Players    int      `kong:"default='6',help='Seats at the table'"`
	Variant    int      `kong:"default='4',help='Hole cards per player (4, 5 or 6)'"`
	SmallBlind int      `kong:"default='1',help='Small blind amount'"`
	BigBlind   int      `kong:"default='2',help='Big blind amount'"`
	Stack      int      `kong:"default='200',help='Starting stack in chips'"`
	Styles     []string `kong:"default='tag,lag,reg,nit,rock,fish',help='Style per seat, cycled when fewer than seats'"`
	StyleFile  string   `kong:"help='HCL style definitions (built-ins when omitted or invalid)'"`
	Seed       *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	OracleURL  string   `kong:"name='oracle-url',help='Advisory service endpoint (empty = heuristics only)'"`
	Out        string   `kong:"default='results',help='Directory for session JSON'"`
	Debug      bool     `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	progress := shared.SetupProgressLogger(c.Debug)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	seed := resolveSeed(c.Seed)
	logger.Info().Int64("seed", seed).Msg("Starting session")

	profiles := style.Builtin()
	positions := style.DefaultPositions()
	if c.StyleFile != "" {
		profiles, positions = style.Load(c.StyleFile)
	}

	sim, err := simulator.New(simulator.Config{
		Table: engine.Config{
			NumPlayers:    c.Players,
			Variant:       c.Variant,
			SmallBlind:    c.SmallBlind,
			BigBlind:      c.BigBlind,
			StartingStack: c.Stack,
		},
		Styles:    seatStyles(c.Styles, c.Players),
		Hands:     c.Hands,
		Seed:      seed,
		OracleURL: c.OracleURL,
		Profiles:  profiles,
		Positions: positions,
		Logger:    progress,
		EventLog:  logger,
	})
	if err != nil {
		return err
	}

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	path, err := capture.SaveSession(c.Out, res.Session)
	if err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("Session saved")

	fmt.Println(report.RenderSession(aggregate.SummarizeSession(res.Session)))
	return nil
}

// seatStyles repeats the requested styles around the table until every
// seat has one.
func seatStyles(styles []string, seats int) []string {
	if len(styles) == 0 {
		return nil
	}
	out := make([]string, seats)
	for i := range out {
		out[i] = styles[i%len(styles)]
	}
	return out
}

func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}
