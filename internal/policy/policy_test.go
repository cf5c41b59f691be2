package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/cards"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/oracle"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/randutil"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/style"
)

// fakeAdvisor returns a fixed advice or error for every query.
type fakeAdvisor struct {
	advice *oracle.Advice
	err    error
	calls  int
}

func (f *fakeAdvisor) Advise(_ context.Context, _ oracle.Query) (*oracle.Advice, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.advice, nil
}

func holeCards(t *testing.T, strs ...string) []cards.Card {
	t.Helper()
	cs, err := cards.ParseAll(strs...)
	require.NoError(t, err)
	return cs
}

func testProfile(mutate func(*style.Profile)) *style.Profile {
	p := style.Builtin()["tag"]
	if mutate != nil {
		mutate(p)
	}
	return p
}

func newPolicy(t *testing.T, p *style.Profile, advisor Advisor, seed int64) *Policy {
	t.Helper()
	return New(p, style.DefaultPositions(), 4, randutil.New(seed), advisor, zerolog.Nop())
}

func preflopSit(hole []cards.Card, pos string, toCall int) Situation {
	return Situation{
		Street:        Preflop,
		Hole:          hole,
		Pot:           3,
		ToCall:        toCall,
		Stack:         1000,
		MinRaise:      4,
		MaxRaise:      1000,
		Position:      pos,
		PlayersInHand: 6,
	}
}

func flopSit(toCall int) Situation {
	return Situation{
		Street:        Flop,
		Hole:          []cards.Card{},
		Board:         make([]cards.Card, 3),
		Pot:           100,
		ToCall:        toCall,
		Stack:         900,
		MinRaise:      40,
		MaxRaise:      900,
		Position:      "BTN",
		PlayersInHand: 6,
	}
}

func TestPreflopPremiumHandPlays(t *testing.T) {
	pol := newPolicy(t, testProfile(nil), nil, 1)
	premium := holeCards(t, "As", "Ks", "Ah", "Kh")

	for i := 0; i < 50; i++ {
		d := pol.Decide(context.Background(), preflopSit(premium, "BTN", 2))
		require.True(t, d.VPIP)
		switch d.Kind {
		case Raise:
			assert.GreaterOrEqual(t, d.Amount, 4)
			assert.LessOrEqual(t, d.Amount, 1000)
		case Call:
			assert.Equal(t, 2, d.Amount)
		default:
			t.Fatalf("premium hand neither raised nor called: %v", d.Kind)
		}
	}
}

func TestPreflopTrashFoldsFacingBet(t *testing.T) {
	pol := newPolicy(t, testProfile(nil), nil, 1)
	trash := holeCards(t, "2c", "7d", "9h", "4s")

	d := pol.Decide(context.Background(), preflopSit(trash, "UTG", 2))
	assert.Equal(t, Fold, d.Kind)
	assert.Equal(t, 0, d.Amount)
	assert.False(t, d.VPIP)
}

func TestPreflopTrashChecksWhenFree(t *testing.T) {
	pol := newPolicy(t, testProfile(nil), nil, 1)
	trash := holeCards(t, "2c", "7d", "9h", "4s")

	d := pol.Decide(context.Background(), preflopSit(trash, "BB", 0))
	assert.Equal(t, Check, d.Kind)
	assert.Equal(t, 0, d.Amount)
	assert.False(t, d.VPIP)
}

func TestPreflopMarginalBandCallsOnlyWhenPriced(t *testing.T) {
	// Trash scores ~23.2; a threshold of 25 with band 3 puts it in the
	// marginal band from the BB (no position adjustment).
	p := testProfile(func(p *style.Profile) {
		p.Thresholds = map[int]float64{4: 25}
		p.MarginalBand = 3
		p.MaxCallFraction = 0.03
	})
	trash := holeCards(t, "2c", "7d", "9h", "4s")

	cheap := pol(t, p).Decide(context.Background(), preflopSit(trash, "BB", 20))
	assert.Equal(t, Call, cheap.Kind)
	assert.Equal(t, 20, cheap.Amount)
	assert.True(t, cheap.VPIP)

	// Same hand, same band, but the price exceeds 3% of stack.
	expensive := pol(t, p).Decide(context.Background(), preflopSit(trash, "BB", 100))
	assert.Equal(t, Fold, expensive.Kind)
}

func pol(t *testing.T, p *style.Profile) *Policy {
	return newPolicy(t, p, nil, 1)
}

func TestPreflopVPIPOrdersByLooseness(t *testing.T) {
	// Deal the same hands to every archetype: looser styles must enter
	// the pot at least as often, hand for hand.
	profiles := style.Builtin()
	order := []string{"nit", "reg", "tag", "lag", "fish"}

	policies := map[string]*Policy{}
	for _, id := range order {
		policies[id] = newPolicy(t, profiles[id], nil, 7)
	}

	counts := map[string]int{}
	labels := style.PositionLabels(6)
	deals := randutil.New(99)
	const hands = 10000

	for i := 0; i < hands; i++ {
		deck := cards.NewDeck(deals)
		hole := deck.Deal(4)
		pos := labels[i%len(labels)]
		for _, id := range order {
			d := policies[id].Decide(context.Background(), preflopSit(hole, pos, 2))
			if d.VPIP {
				counts[id]++
			}
		}
	}

	for i := 1; i < len(order); i++ {
		assert.GreaterOrEqual(t, counts[order[i]], counts[order[i-1]],
			"%s should play at least as often as %s", order[i], order[i-1])
	}

	// TAG lands in a plausible band around its calibration target.
	vpip := float64(counts["tag"]) / hands
	assert.Greater(t, vpip, 0.10)
	assert.Less(t, vpip, 0.50)
}

func TestHeuristicCBetWhenCheckedTo(t *testing.T) {
	p := testProfile(func(p *style.Profile) {
		p.CBet = 1
		p.RaiseSizing = 1
		p.Override = style.OverrideNone
	})
	polH := newPolicy(t, p, nil, 1)

	d := polH.Decide(context.Background(), flopSit(0))
	require.Equal(t, Raise, d.Kind)
	// pot * (0.5 + 1*0.25) = 75, above min raise 40 and below max.
	assert.Equal(t, 75, d.Amount)
}

func TestHeuristicNeverBetsWithZeroCBet(t *testing.T) {
	p := testProfile(func(p *style.Profile) {
		p.CBet = 0
		p.Override = style.OverrideNone
	})
	polH := newPolicy(t, p, nil, 1)

	for i := 0; i < 20; i++ {
		d := polH.Decide(context.Background(), flopSit(0))
		assert.Equal(t, Check, d.Kind)
	}
}

func TestHeuristicFacingBet(t *testing.T) {
	t.Run("always folds at fold_cbet 1", func(t *testing.T) {
		p := testProfile(func(p *style.Profile) {
			p.FoldToCBet = 1
			p.Override = style.OverrideNone
		})
		d := newPolicy(t, p, nil, 1).Decide(context.Background(), flopSit(40))
		assert.Equal(t, Fold, d.Kind)
		assert.Equal(t, 0, d.Amount)
	})

	t.Run("calls when passive", func(t *testing.T) {
		p := testProfile(func(p *style.Profile) {
			p.FoldToCBet = 0
			p.PostflopAgg = 0
			p.Override = style.OverrideNone
		})
		d := newPolicy(t, p, nil, 1).Decide(context.Background(), flopSit(40))
		assert.Equal(t, Call, d.Kind)
		assert.Equal(t, 40, d.Amount)
	})

	t.Run("raises three quarters pot when aggressive", func(t *testing.T) {
		p := testProfile(func(p *style.Profile) {
			p.FoldToCBet = 0
			p.PostflopAgg = 1
			p.Override = style.OverrideNone
		})
		d := newPolicy(t, p, nil, 1).Decide(context.Background(), flopSit(40))
		require.Equal(t, Raise, d.Kind)
		assert.Equal(t, 75, d.Amount)
	})
}

func TestOracleAdviceIsFollowed(t *testing.T) {
	adv := &fakeAdvisor{advice: &oracle.Advice{
		Action: "raise", Confidence: 0.8, OptimalSizing: 120, HasSizing: true,
	}}
	p := testProfile(func(p *style.Profile) { p.Override = style.OverrideNone })
	polO := newPolicy(t, p, adv, 1)

	d := polO.Decide(context.Background(), flopSit(40))
	require.Equal(t, Raise, d.Kind)
	assert.Equal(t, 120, d.Amount)
	require.NotNil(t, d.Advice)
	assert.False(t, d.OracleErr)
	assert.Equal(t, 1, adv.calls)
}

func TestOracleSizingIsClampedToLegalRange(t *testing.T) {
	adv := &fakeAdvisor{advice: &oracle.Advice{
		Action: "raise", Confidence: 0.8, OptimalSizing: 5000, HasSizing: true,
	}}
	p := testProfile(func(p *style.Profile) { p.Override = style.OverrideNone })

	d := newPolicy(t, p, adv, 1).Decide(context.Background(), flopSit(40))
	require.Equal(t, Raise, d.Kind)
	assert.Equal(t, 900, d.Amount)
}

func TestOracleFailureFallsBackToHeuristic(t *testing.T) {
	// With the same seed, an always-failing oracle must produce the
	// exact decision sequence of a policy with no oracle at all.
	failing := &fakeAdvisor{err: &oracle.Error{Op: "post", Err: errors.New("timeout")}}
	p := testProfile(func(p *style.Profile) { p.Override = style.OverrideNone })

	withOracle := newPolicy(t, p, failing, 42)
	withoutOracle := newPolicy(t, p, nil, 42)

	for i := 0; i < 100; i++ {
		toCall := 0
		if i%2 == 0 {
			toCall = 40
		}
		a := withOracle.Decide(context.Background(), flopSit(toCall))
		b := withoutOracle.Decide(context.Background(), flopSit(toCall))

		assert.Equal(t, b.Kind, a.Kind, "hand %d", i)
		assert.Equal(t, b.Amount, a.Amount, "hand %d", i)
		assert.True(t, a.OracleErr)
		assert.Nil(t, a.Advice)
	}
	assert.Equal(t, 100, failing.calls)
}

func TestOracleSkippedBeforeFlop(t *testing.T) {
	adv := &fakeAdvisor{advice: &oracle.Advice{Action: "raise", Confidence: 0.9}}
	polO := newPolicy(t, testProfile(nil), adv, 1)

	premium := holeCards(t, "As", "Ks", "Ah", "Kh")
	polO.Decide(context.Background(), preflopSit(premium, "BTN", 2))
	assert.Zero(t, adv.calls)
}

func TestPassiveDowngradeTurnsRaisesIntoCalls(t *testing.T) {
	adv := &fakeAdvisor{advice: &oracle.Advice{
		Action: "raise", Confidence: 0.9, OptimalSizing: 120, HasSizing: true,
	}}
	p := testProfile(func(p *style.Profile) { p.Override = style.OverridePassiveDowngrade })

	d := newPolicy(t, p, adv, 1).Decide(context.Background(), flopSit(40))
	assert.Equal(t, Call, d.Kind)
	assert.Equal(t, 40, d.Amount)

	// With nothing to call the downgraded raise becomes a check.
	free := newPolicy(t, p, adv, 1).Decide(context.Background(), flopSit(0))
	assert.Equal(t, Check, free.Kind)
	assert.Equal(t, 0, free.Amount)
}

func TestAggressiveUpgradeRespectsConfidenceFloor(t *testing.T) {
	p := testProfile(func(p *style.Profile) {
		p.Override = style.OverrideAggressiveUpgrade
		p.ConfidenceFloor = 0.5
		p.Aggression = 1 // upgrade probability 0.3
	})

	t.Run("upgrades some confident calls", func(t *testing.T) {
		adv := &fakeAdvisor{advice: &oracle.Advice{Action: "call", Confidence: 0.8}}
		polA := newPolicy(t, p, adv, 3)

		raises := 0
		for i := 0; i < 300; i++ {
			if d := polA.Decide(context.Background(), flopSit(40)); d.Kind == Raise {
				raises++
				assert.GreaterOrEqual(t, d.Amount, 40)
			}
		}
		assert.Greater(t, raises, 0)
		assert.Less(t, raises, 300)
	})

	t.Run("never upgrades below the floor", func(t *testing.T) {
		adv := &fakeAdvisor{advice: &oracle.Advice{Action: "call", Confidence: 0.2}}
		polA := newPolicy(t, p, adv, 3)

		for i := 0; i < 300; i++ {
			d := polA.Decide(context.Background(), flopSit(40))
			assert.Equal(t, Call, d.Kind)
		}
	})
}

func TestValueUpgradeLiftsTinySizings(t *testing.T) {
	adv := &fakeAdvisor{advice: &oracle.Advice{
		Action: "raise", Confidence: 0.9, OptimalSizing: 1, HasSizing: true,
	}}
	p := testProfile(func(p *style.Profile) {
		p.Override = style.OverrideValueUpgrade
		p.ConfidenceFloor = 0.75
	})

	d := newPolicy(t, p, adv, 1).Decide(context.Background(), flopSit(40))
	require.Equal(t, Raise, d.Kind)
	assert.Equal(t, 40, d.Amount)
}

func TestConfidenceGateCollapsesWeakAdvice(t *testing.T) {
	p := testProfile(func(p *style.Profile) {
		p.Override = style.OverrideConfidenceGate
		p.ConfidenceFloor = 0.55
	})
	weak := &fakeAdvisor{advice: &oracle.Advice{Action: "call", Confidence: 0.3}}

	facing := newPolicy(t, p, weak, 1).Decide(context.Background(), flopSit(40))
	assert.Equal(t, Fold, facing.Kind)
	assert.Equal(t, 0, facing.Amount)

	free := newPolicy(t, p, weak, 1).Decide(context.Background(), flopSit(0))
	assert.Equal(t, Check, free.Kind)

	strong := &fakeAdvisor{advice: &oracle.Advice{Action: "call", Confidence: 0.9}}
	kept := newPolicy(t, p, strong, 1).Decide(context.Background(), flopSit(40))
	assert.Equal(t, Call, kept.Kind)
}

func TestRaiseDegradesToCallWhenNoLegalRaise(t *testing.T) {
	adv := &fakeAdvisor{advice: &oracle.Advice{
		Action: "raise", Confidence: 0.9, OptimalSizing: 200, HasSizing: true,
	}}
	p := testProfile(func(p *style.Profile) { p.Override = style.OverrideNone })

	sit := flopSit(40)
	sit.MinRaise = 100
	sit.MaxRaise = 0 // all raises illegal

	d := newPolicy(t, p, adv, 1).Decide(context.Background(), sit)
	assert.Equal(t, Call, d.Kind)
	assert.Equal(t, 40, d.Amount)
}

func TestActionInvariantsUnderFuzz(t *testing.T) {
	rng := randutil.New(2024)
	profiles := style.Builtin()
	ctx := context.Background()

	for _, p := range profiles {
		polF := newPolicy(t, p, nil, 11)
		for i := 0; i < 1000; i++ {
			deck := cards.NewDeck(rng)
			sit := Situation{
				Street:        []Street{Preflop, Flop, Turn, River}[rng.IntN(4)],
				Hole:          deck.Deal(4),
				Pot:           2 + rng.IntN(500),
				ToCall:        rng.IntN(100),
				Stack:         1 + rng.IntN(1000),
				Position:      "MP",
				PlayersInHand: 6,
			}
			if sit.Street != Preflop {
				sit.Board = deck.Deal(3)
			}
			sit.MinRaise = 2 + rng.IntN(50)
			sit.MaxRaise = rng.IntN(1200)

			d := polF.Decide(ctx, sit)
			switch d.Kind {
			case Fold, Check:
				assert.Equal(t, 0, d.Amount)
			case Call:
				assert.Equal(t, sit.ToCall, d.Amount)
			case Raise:
				assert.GreaterOrEqual(t, d.Amount, sit.MinRaise)
				assert.LessOrEqual(t, d.Amount, sit.MaxRaise)
			}
		}
	}
}
