// Package policy implements the style-calibrated decision engine. A
// Policy owns one style profile and one RNG stream and turns betting
// situations into actions: score-vs-threshold decisions preflop,
// oracle-advised or heuristic decisions postflop, followed by the
// profile's override transform and a legality clamp, in that order.
package policy

import (
	"context"

	rand "math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/cards"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/oracle"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/scorer"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/style"
)

// Street identifies a betting round.
type Street string

const (
	Preflop Street = "preflop"
	Flop    Street = "flop"
	Turn    Street = "turn"
	River   Street = "river"
)

// StreetFromIndex maps the engine's street index to a name.
func StreetFromIndex(i int) Street {
	switch i {
	case 1:
		return Flop
	case 2:
		return Turn
	case 3:
		return River
	default:
		return Preflop
	}
}

// Kind is the category of a chosen action.
type Kind string

const (
	Fold  Kind = "fold"
	Check Kind = "check"
	Call  Kind = "call"
	Raise Kind = "raise"
)

// Situation is one betting opportunity as seen by the acting player.
// All amounts are chips the actor would add; MinRaise > MaxRaise means
// no legal raise exists.
type Situation struct {
	Street        Street
	Hole          []cards.Card
	Board         []cards.Card
	Pot           int
	ToCall        int
	Stack         int
	MinRaise      int
	MaxRaise      int
	Position      string
	PlayersInHand int
}

// Decision is the outcome of one betting opportunity.
//
// Amount follows the engine's bet convention: 0 for fold and check,
// the call amount for calls, the total bet for raises.
type Decision struct {
	Kind   Kind
	Amount int

	// VPIP is set when the player voluntarily put money in preflop.
	VPIP bool

	// Oracle consultation bookkeeping. Advice is nil when the oracle
	// was not consulted or failed; OracleErr marks a degraded action.
	Advice    *oracle.Advice
	OracleErr bool
}

// proposal is the pre-clamp action flowing through the override stage.
type proposal struct {
	kind       Kind
	amount     int // desired total bet for raises
	confidence float64
}

// Advisor is the oracle surface the policy depends on; satisfied by
// *oracle.Client and by test fakes.
type Advisor interface {
	Advise(ctx context.Context, q oracle.Query) (*oracle.Advice, error)
}

// Policy makes decisions for one player with one style.
type Policy struct {
	profile   *style.Profile
	positions style.PositionTable
	variant   int
	rng       *rand.Rand
	advisor   Advisor
	log       zerolog.Logger
}

// New creates a policy. A nil advisor means pure heuristic play
// postflop (the original's fast mode).
func New(profile *style.Profile, positions style.PositionTable, variant int, rng *rand.Rand, advisor Advisor, log zerolog.Logger) *Policy {
	return &Policy{
		profile:   profile,
		positions: positions,
		variant:   variant,
		rng:       rng,
		advisor:   advisor,
		log:       log.With().Str("style", profile.ID).Logger(),
	}
}

// Profile returns the policy's style profile.
func (p *Policy) Profile() *style.Profile {
	return p.profile
}

// Decide resolves one betting opportunity.
func (p *Policy) Decide(ctx context.Context, sit Situation) Decision {
	if sit.Street == Preflop {
		return p.preflop(sit)
	}
	return p.postflop(ctx, sit)
}

// preflop plays score-versus-threshold with a position adjustment,
// a stochastic raise/call split and a priced marginal calling band.
func (p *Policy) preflop(sit Situation) Decision {
	score := scorer.Score(sit.Hole)
	adjusted := score + p.positions.Adjust(sit.Position)
	threshold := p.profile.Threshold(p.variant)

	if adjusted >= threshold {
		if p.rng.Float64() < p.profile.PFRRatio && raiseLegal(sit) {
			amount := clampRaise(int(float64(sit.Pot)*p.profile.RaiseSizing), sit)
			return Decision{Kind: Raise, Amount: amount, VPIP: true}
		}
		return Decision{Kind: Call, Amount: sit.ToCall, VPIP: sit.ToCall > 0}
	}

	// Free play from the big blind.
	if sit.ToCall == 0 {
		return Decision{Kind: Check}
	}

	// Marginal band: slightly-below-threshold hands call when priced
	// cheaply enough relative to stack.
	if p.profile.MarginalBand > 0 && adjusted >= threshold-p.profile.MarginalBand {
		if float64(sit.ToCall) <= float64(sit.Stack)*p.profile.MaxCallFraction {
			return Decision{Kind: Call, Amount: sit.ToCall, VPIP: true}
		}
	}

	return Decision{Kind: Fold}
}

// postflop consults the oracle when configured, falls back to the
// heuristic on any failure, then applies the style override and the
// legality clamp in fixed order.
func (p *Policy) postflop(ctx context.Context, sit Situation) Decision {
	var (
		prop      proposal
		advice    *oracle.Advice
		oracleErr bool
	)

	if p.advisor != nil && len(sit.Board) >= 3 {
		adv, err := p.advisor.Advise(ctx, p.buildQuery(sit))
		if err != nil {
			p.log.Debug().Err(err).Msg("Advice unavailable, using heuristic")
			oracleErr = true
			prop = p.heuristic(sit)
		} else {
			advice = adv
			prop = p.fromAdvice(adv, sit)
		}
	} else {
		prop = p.heuristic(sit)
	}

	prop = p.applyOverride(prop, sit)
	d := clampLegal(prop, sit)
	d.Advice = advice
	d.OracleErr = oracleErr
	return d
}

// buildQuery assembles the oracle wire payload for a situation.
func (p *Policy) buildQuery(sit Situation) oracle.Query {
	return oracle.Query{
		GameVariant:    variantName(p.variant),
		Street:         string(sit.Street),
		HoleCards:      oracle.PadHoleCards(cards.WireStrings(sit.Hole), p.variant),
		Board:          cards.WireStrings(sit.Board),
		Position:       sit.Position,
		PlayersInHand:  sit.PlayersInHand,
		PotSize:        sit.Pot,
		ToCall:         sit.ToCall,
		StackSize:      sit.Stack,
		VillainActions: []string{},
		Style:          p.profile.ID,
	}
}

func variantName(variant int) string {
	switch variant {
	case 5:
		return "omaha5"
	case 6:
		return "omaha6"
	default:
		return "omaha4"
	}
}

// fromAdvice converts oracle advice into a proposal. The advised
// sizing is a desired raise amount; the clamp stage makes it legal.
func (p *Policy) fromAdvice(adv *oracle.Advice, sit Situation) proposal {
	prop := proposal{confidence: adv.Confidence}
	switch adv.Action {
	case "raise", "bet":
		prop.kind = Raise
		if adv.HasSizing {
			prop.amount = adv.OptimalSizing
		} else {
			prop.amount = sit.MinRaise
		}
	case "call":
		prop.kind = Call
	case "check":
		prop.kind = Check
	default:
		prop.kind = Fold
	}
	return prop
}

// heuristic is the local fallback policy: continuation-bet when first
// to act, fold-or-raise-or-call against a bet, all driven by the
// profile's postflop rates. Heuristic proposals carry full confidence
// so confidence-gated overrides never collapse them.
func (p *Policy) heuristic(sit Situation) proposal {
	if sit.ToCall == 0 {
		if p.rng.Float64() < p.profile.CBet && raiseLegal(sit) {
			size := 0.5 + p.profile.RaiseSizing*0.25
			return proposal{kind: Raise, amount: int(float64(sit.Pot) * size), confidence: 1}
		}
		return proposal{kind: Check, confidence: 1}
	}

	if p.rng.Float64() < p.profile.FoldToCBet {
		return proposal{kind: Fold, confidence: 1}
	}
	if p.rng.Float64() < p.profile.PostflopAgg && raiseLegal(sit) {
		return proposal{kind: Raise, amount: int(float64(sit.Pot) * 0.75), confidence: 1}
	}
	return proposal{kind: Call, confidence: 1}
}

// applyOverride runs the profile's postflop transform. All archetype
// personality lives in the profile data; there is no style-ID
// branching here.
func (p *Policy) applyOverride(prop proposal, sit Situation) proposal {
	switch p.profile.Override {
	case style.OverridePassiveDowngrade:
		if prop.kind == Raise {
			prop.kind = Call
			prop.amount = 0
		}

	case style.OverrideAggressiveUpgrade:
		if (prop.kind == Call || prop.kind == Check) &&
			prop.confidence >= p.profile.ConfidenceFloor &&
			raiseLegal(sit) &&
			p.rng.Float64() < p.profile.Aggression*0.3 {
			prop.kind = Raise
			prop.amount = sit.MinRaise
		}

	case style.OverrideValueUpgrade:
		if prop.kind == Raise && prop.confidence >= p.profile.ConfidenceFloor {
			if prop.amount < sit.MinRaise {
				prop.amount = sit.MinRaise
			}
		}

	case style.OverrideConfidenceGate:
		if prop.confidence < p.profile.ConfidenceFloor {
			if sit.ToCall == 0 {
				prop.kind = Check
			} else {
				prop.kind = Fold
			}
			prop.amount = 0
		}
	}
	return prop
}

// clampLegal enforces action legality, degrading raise to call to fold.
func clampLegal(prop proposal, sit Situation) Decision {
	switch prop.kind {
	case Raise:
		if !raiseLegal(sit) {
			return clampLegal(proposal{kind: Call, confidence: prop.confidence}, sit)
		}
		return Decision{Kind: Raise, Amount: clampRaise(prop.amount, sit)}
	case Call:
		if sit.ToCall == 0 {
			return Decision{Kind: Check}
		}
		if sit.ToCall > sit.Stack && sit.Stack <= 0 {
			return Decision{Kind: Fold}
		}
		return Decision{Kind: Call, Amount: sit.ToCall}
	case Check:
		if sit.ToCall > 0 {
			return clampLegal(proposal{kind: Call, confidence: prop.confidence}, sit)
		}
		return Decision{Kind: Check}
	default:
		return Decision{Kind: Fold}
	}
}

func raiseLegal(sit Situation) bool {
	return sit.MinRaise <= sit.MaxRaise && sit.MaxRaise > 0
}

func clampRaise(desired int, sit Situation) int {
	if desired < sit.MinRaise {
		return sit.MinRaise
	}
	if desired > sit.MaxRaise {
		return sit.MaxRaise
	}
	return desired
}
