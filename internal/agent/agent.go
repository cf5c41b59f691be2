// Package agent ties one simulated player together: a stable integer
// identity, a style-driven policy, the player's stack trajectory, and
// the per-hand bookkeeping that feeds session capture.
package agent

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/capture"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/cards"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/engine"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/policy"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/trajectory"
)

// Stats is an agent's running totals across recorded hands.
type Stats struct {
	Hands       int
	Wins        int
	TotalProfit int
	VPIPHands   int

	Folds   int
	Checks  int
	Calls   int
	Raises  int

	OracleCalls  int
	OracleErrors int
}

// Agent is one player across a whole session. IDs are stable for the
// session's lifetime and independent of seat rotation.
//
// The engine refills each seat's chips every hand; the agent keeps the
// session-level bankroll (starting stack plus cumulative rewards) that
// the trajectory and hand records are built from.
type Agent struct {
	ID   int
	Seat int

	policy *policy.Policy
	traj   *trajectory.Trajectory
	log    zerolog.Logger

	bank  int
	stats Stats

	// per-hand scratch, valid between BeginHand and FinishHand/AbortHand
	hole       []string
	position   string
	actions    []capture.BettingAction
	vpip       bool
	foldStreet string
}

// New creates an agent playing the given policy from the given seat.
func New(id, seat int, pol *policy.Policy, startingStack int, log zerolog.Logger) *Agent {
	styleID := pol.Profile().ID
	return &Agent{
		ID:     id,
		Seat:   seat,
		policy: pol,
		traj:   trajectory.New(id, styleID, startingStack),
		bank:   startingStack,
		log:    log.With().Int("agent", id).Str("style", styleID).Logger(),
	}
}

// Bankroll returns the agent's current session bankroll.
func (a *Agent) Bankroll() int {
	return a.bank
}

// StyleID returns the agent's style identifier.
func (a *Agent) StyleID() string {
	return a.policy.Profile().ID
}

// Trajectory returns the agent's stack trajectory.
func (a *Agent) Trajectory() *trajectory.Trajectory {
	return a.traj
}

// Folded reports whether the agent has folded the hand in progress.
func (a *Agent) Folded() bool {
	return a.foldStreet != ""
}

// Stats returns the running totals so far.
func (a *Agent) Stats() Stats {
	return a.stats
}

// BeginHand resets the per-hand scratch for a newly dealt hand.
func (a *Agent) BeginHand(hole []cards.Card, position string) {
	a.hole = cards.WireStrings(hole)
	a.position = position
	a.actions = nil
	a.vpip = false
	a.foldStreet = ""
}

// Act resolves one betting opportunity for this agent and records it.
func (a *Agent) Act(ctx context.Context, obs engine.Observation) policy.Decision {
	street := policy.StreetFromIndex(obs.StreetIndex)
	sit := policy.Situation{
		Street:        street,
		Hole:          obs.Hole,
		Board:         obs.Board,
		Pot:           obs.Pot,
		ToCall:        obs.Call,
		Stack:         obs.Stacks[obs.Actor],
		MinRaise:      obs.MinRaise,
		MaxRaise:      obs.MaxRaise,
		Position:      a.position,
		PlayersInHand: obs.InHand,
	}

	dec := a.policy.Decide(ctx, sit)
	a.record(street, sit, dec)
	return dec
}

func (a *Agent) record(street policy.Street, sit policy.Situation, dec policy.Decision) {
	act := capture.BettingAction{
		Street:    string(street),
		Action:    string(dec.Kind),
		Amount:    dec.Amount,
		PotBefore: sit.Pot,
	}
	if dec.Advice != nil {
		act.Advised = dec.Advice.Action
		act.AdvisedConfidence = dec.Advice.Confidence
		act.OracleConsulted = true
	}
	if dec.OracleErr {
		act.OracleConsulted = true
		act.OracleError = true
	}
	a.actions = append(a.actions, act)

	if dec.VPIP {
		a.vpip = true
	}
	if dec.Kind == policy.Fold {
		a.foldStreet = string(street)
	}
}

// tally folds the hand's actions into the running totals. Counters
// move only here so aborted hands leave no trace.
func (a *Agent) tally() {
	for _, act := range a.actions {
		switch policy.Kind(act.Action) {
		case policy.Fold:
			a.stats.Folds++
		case policy.Check:
			a.stats.Checks++
		case policy.Call:
			a.stats.Calls++
		case policy.Raise:
			a.stats.Raises++
		}
		if act.OracleConsulted {
			a.stats.OracleCalls++
		}
		if act.OracleError {
			a.stats.OracleErrors++
		}
	}
}

// FinishHand applies the hand's reward to the bankroll, records the
// trajectory point, and returns the player's slice of the hand record.
func (a *Agent) FinishHand(reward int, won, showdown bool) capture.PlayerHandResult {
	stackBefore := a.bank
	stackAfter := a.bank + reward
	a.bank = stackAfter
	profit := reward

	a.traj.Record(stackAfter)
	a.tally()
	a.stats.Hands++
	a.stats.TotalProfit += profit
	if won {
		a.stats.Wins++
	}
	if a.vpip {
		a.stats.VPIPHands++
	}

	a.log.Debug().
		Int("profit", profit).
		Bool("won", won).
		Bool("vpip", a.vpip).
		Msg("hand finished")

	res := capture.PlayerHandResult{
		AgentID:     a.ID,
		Style:       a.StyleID(),
		Seat:        a.Seat,
		Position:    a.position,
		HoleCards:   a.hole,
		StackBefore: stackBefore,
		StackAfter:  stackAfter,
		Profit:      profit,
		Actions:     a.actions,
		VPIP:        a.vpip,
		Showdown:    showdown,
		FoldStreet:  a.foldStreet,
		Won:         won,
	}
	a.actions = nil
	return res
}

// AbortHand discards the per-hand scratch without recording anything.
// Aborted hands never reach the agent's trajectory or totals.
func (a *Agent) AbortHand() {
	a.actions = nil
	a.vpip = false
	a.foldStreet = ""
}
