// Package simulator runs style-vs-style table sessions: it deals hands
// through the pot-limit engine, routes every betting opportunity to the
// seated agents, and captures the outcomes for later analysis.
package simulator

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/agent"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/cards"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/engine"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/oracle"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/policy"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/randutil"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/sessionid"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/style"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/trajectory"
)

const progressEvery = 1000

// Config holds everything needed to run one session.
type Config struct {
	Table  engine.Config
	Styles []string // style ID per seat
	Hands  int
	Seed   int64

	// OracleURL enables advisory consultation postflop; empty means
	// pure heuristic play.
	OracleURL string

	Profiles  map[string]*style.Profile // nil means the built-in set
	Positions style.PositionTable       // nil means the default table
	Advisor   policy.Advisor            // overrides OracleURL when set
	Clock     quartz.Clock              // nil means the real clock
	Logger    *log.Logger               // progress output
	EventLog  zerolog.Logger            // decision and capture plumbing
}

// Result is one finished session.
type Result struct {
	Session      capture.Session
	Trajectories []*trajectory.Trajectory
	Stats        []agent.Stats // indexed by agent ID
}

// table is the dealer surface the loop drives; satisfied by
// *engine.Dealer.
type table interface {
	SetRNG(rng *rand.Rand)
	Reset() (engine.Observation, error)
	Step(bet int) (engine.Observation, []int, bool, error)
	Button() int
	Hole(i int) []cards.Card
	PotContributed() int
}

// Simulator runs one session of hands between styled agents.
type Simulator struct {
	cfg    Config
	table  table
	agents []*agent.Agent
	rec    *capture.Recorder
	log    *log.Logger
}

// New validates the configuration and seats the agents.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Table.Validate(); err != nil {
		return nil, err
	}
	if cfg.Hands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", cfg.Hands)
	}
	if len(cfg.Styles) != cfg.Table.NumPlayers {
		return nil, fmt.Errorf("need %d styles for %d seats, got %d",
			cfg.Table.NumPlayers, cfg.Table.NumPlayers, len(cfg.Styles))
	}

	profiles := cfg.Profiles
	if profiles == nil {
		profiles = style.Builtin()
	}
	positions := cfg.Positions
	if positions == nil {
		positions = style.DefaultPositions()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	advisor := cfg.Advisor
	if advisor == nil && cfg.OracleURL != "" {
		advisor = oracle.NewClient(cfg.OracleURL, cfg.EventLog)
	}

	dealer, err := engine.NewDealer(cfg.Table, randutil.New(cfg.Seed))
	if err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, cfg.Table.NumPlayers)
	styles := make(map[int]string, len(cfg.Styles))
	for i, id := range cfg.Styles {
		profile, ok := profiles[id]
		if !ok {
			return nil, fmt.Errorf("unknown style %q for seat %d", id, i)
		}
		pol := policy.New(profile, positions, cfg.Table.Variant,
			randutil.New(cfg.Seed+int64(i)+1), advisor, cfg.EventLog)
		agents[i] = agent.New(i, i, pol, cfg.Table.StartingStack, cfg.EventLog)
		styles[i] = id
	}

	rec := capture.NewRecorder(sessionid.New(), capture.SessionConfig{
		Variant:       cfg.Table.Variant,
		NumPlayers:    cfg.Table.NumPlayers,
		SmallBlind:    cfg.Table.SmallBlind,
		BigBlind:      cfg.Table.BigBlind,
		StartingStack: cfg.Table.StartingStack,
		TargetHands:   cfg.Hands,
		Seed:          cfg.Seed,
		Styles:        styles,
		OracleURL:     cfg.OracleURL,
	}, clock, cfg.EventLog)

	return &Simulator{
		cfg:    cfg,
		table:  dealer,
		agents: agents,
		rec:    rec,
		log:    logger,
	}, nil
}

// SessionID returns the identifier hands will be sealed under.
func (s *Simulator) SessionID() string {
	return s.rec.SessionID()
}

// Agents returns the seated agents.
func (s *Simulator) Agents() []*agent.Agent {
	return s.agents
}

// Run plays the configured number of hands. A dealer failure aborts
// the affected hand and the session continues; only context
// cancellation stops the run early.
func (s *Simulator) Run(ctx context.Context) (Result, error) {
	for hand := 0; hand < s.cfg.Hands; hand++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("session interrupted at hand %d: %w", hand, err)
		}

		s.playHand(ctx, hand)

		if (hand+1)%progressEvery == 0 {
			s.log.Info("session progress",
				"session", s.rec.SessionID(),
				"hands", hand+1,
				"target", s.cfg.Hands,
				"aborted", s.rec.Aborted())
		}
	}

	trajs := make([]*trajectory.Trajectory, len(s.agents))
	stats := make([]agent.Stats, len(s.agents))
	for i, ag := range s.agents {
		trajs[i] = ag.Trajectory()
		stats[i] = ag.Stats()
	}

	s.log.Info("session complete",
		"session", s.rec.SessionID(),
		"hands", len(s.rec.Hands()),
		"aborted", s.rec.Aborted())

	return Result{
		Session:      s.rec.Session(),
		Trajectories: trajs,
		Stats:        stats,
	}, nil
}

// playHand deals and plays out one hand. Each hand draws its own RNG
// stream so any hand can be replayed in isolation from the seed.
func (s *Simulator) playHand(ctx context.Context, hand int) {
	s.table.SetRNG(randutil.ForHand(s.cfg.Seed, hand))

	obs, err := s.table.Reset()
	if err != nil {
		s.rec.Abort(fmt.Errorf("hand %d: %w", hand, err))
		return
	}

	button := s.table.Button()
	n := s.cfg.Table.NumPlayers
	for i, ag := range s.agents {
		pos := style.PositionForSeat(i, button, n)
		ag.BeginHand(s.table.Hole(i), pos)
	}

	for {
		ag := s.agents[obs.Actor]
		dec := ag.Act(ctx, obs)

		bet := dec.Amount
		if dec.Kind == policy.Fold {
			bet = engine.Fold
		}

		next, rewards, done, err := s.table.Step(bet)
		if err != nil {
			s.rec.Abort(fmt.Errorf("hand %d: %w", hand, err))
			for _, a := range s.agents {
				a.AbortHand()
			}
			return
		}
		if done {
			s.seal(next, rewards)
			return
		}
		obs = next
	}
}

// seal closes out a completed hand across all agents and records it.
func (s *Simulator) seal(final engine.Observation, rewards []int) {
	unfolded := 0
	for _, ag := range s.agents {
		if !ag.Folded() {
			unfolded++
		}
	}
	showdown := unfolded >= 2

	players := make([]capture.PlayerHandResult, len(s.agents))
	var winners []int
	for i, ag := range s.agents {
		won := rewards[i] > 0
		if won {
			winners = append(winners, ag.ID)
		}
		sawShowdown := showdown && !ag.Folded()
		players[i] = ag.FinishHand(rewards[i], won, sawShowdown)
	}

	s.rec.Seal(capture.HandRecord{
		Variant: s.cfg.Table.Variant,
		Button:  final.Button,
		Board:   cards.WireStrings(final.Board),
		Pot:     s.table.PotContributed(),
		Players: players,
		Winners: winners,
	})
}
