// Package engine is the card-game collaborator: an Omaha dealer for
// 4/5/6-card variants. It owns dealing, blind posting, betting-round
// mechanics, pot-limit sizing, side pots and showdown resolution, and
// exposes them through a small observation/step surface. The decision
// core never reaches past this surface.
package engine

import (
	"errors"
	"fmt"

	rand "math/rand/v2"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/cards"
)

// Fold is the bet value that folds; any negative value works.
const Fold = -1

// ErrHandOver is returned by Step once a hand has finished.
var ErrHandOver = errors.New("hand is over")

// Config sizes a table.
type Config struct {
	NumPlayers    int
	Variant       int // hole cards per player: 4, 5 or 6
	SmallBlind    int
	BigBlind      int
	StartingStack int
}

// maxPlayers caps table size so the deck never runs out:
// 52 >= players*variant + 5 board + margin.
var maxPlayers = map[int]int{4: 11, 5: 9, 6: 7}

// Validate checks a table configuration.
func (c Config) Validate() error {
	limit, ok := maxPlayers[c.Variant]
	if !ok {
		return fmt.Errorf("unsupported variant: %d hole cards", c.Variant)
	}
	if c.NumPlayers < 2 || c.NumPlayers > limit {
		return fmt.Errorf("player count %d out of range [2,%d] for %d-card omaha",
			c.NumPlayers, limit, c.Variant)
	}
	if c.SmallBlind <= 0 || c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("invalid blinds %d/%d", c.SmallBlind, c.BigBlind)
	}
	if c.StartingStack < c.BigBlind*2 {
		return fmt.Errorf("starting stack %d too small for blinds", c.StartingStack)
	}
	return nil
}

// Observation is the acting player's view of one decision point.
// Call, MinRaise and MaxRaise are chips the actor would add with the
// action; MinRaise > MaxRaise means no legal raise exists.
type Observation struct {
	Actor       int
	StreetIndex int // 0 preflop, 1 flop, 2 turn, 3 river
	Hole        []cards.Card
	Board       []cards.Card
	Pot         int
	Call        int
	MinRaise    int
	MaxRaise    int
	Stacks      []int
	Button      int
	InHand      int // players not yet folded
}

type seat struct {
	stack  int
	bet    int // chips committed this street
	total  int // chips committed this hand
	folded bool
	allIn  bool
}

// Dealer runs one table. Reset starts a hand (rotating the button),
// Step applies the acting player's bet. Stacks refill every hand; the
// per-hand rewards carry the profit signal.
type Dealer struct {
	cfg Config
	rng *rand.Rand

	deck   *cards.Deck
	holes  [][]cards.Card
	board  []cards.Card
	seats  []seat
	street int
	button int
	hands  int

	actor      int
	currentBet int
	minIncr    int
	acted      []bool

	running bool
}

// NewDealer creates a dealer for the given table.
func NewDealer(cfg Config, rng *rand.Rand) (*Dealer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dealer{
		cfg:    cfg,
		rng:    rng,
		button: cfg.NumPlayers - 1, // first Reset rotates to seat 0
	}, nil
}

// SetRNG swaps the random source, letting callers derive a per-hand
// stream before each Reset.
func (d *Dealer) SetRNG(rng *rand.Rand) {
	d.rng = rng
}

// Button returns the current dealer-button seat.
func (d *Dealer) Button() int {
	return d.button
}

// Reset starts a new hand: refills stacks, rotates the button, posts
// blinds and deals. The returned observation is the first decision
// point (or the hand may already be over for degenerate configs, which
// Validate prevents).
func (d *Dealer) Reset() (Observation, error) {
	n := d.cfg.NumPlayers

	d.seats = make([]seat, n)
	for i := range d.seats {
		d.seats[i] = seat{stack: d.cfg.StartingStack}
	}
	d.button = (d.button + 1) % n
	d.hands++

	d.deck = cards.NewDeck(d.rng)
	d.holes = make([][]cards.Card, n)
	for i := 0; i < n; i++ {
		hole := d.deck.Deal(d.cfg.Variant)
		if hole == nil {
			return Observation{}, fmt.Errorf("deck exhausted dealing %d players", n)
		}
		d.holes[i] = hole
	}
	d.board = nil
	d.street = 0
	d.running = true

	sb, bb := d.blindSeats()
	d.post(sb, d.cfg.SmallBlind)
	d.post(bb, d.cfg.BigBlind)
	d.currentBet = d.cfg.BigBlind
	d.minIncr = d.cfg.BigBlind

	d.acted = make([]bool, n)
	d.actor = d.nextActor((bb + 1) % n)
	return d.observe(), nil
}

// blindSeats returns the small and big blind seats; heads-up the
// button posts the small blind.
func (d *Dealer) blindSeats() (int, int) {
	n := d.cfg.NumPlayers
	if n == 2 {
		return d.button, (d.button + 1) % n
	}
	return (d.button + 1) % n, (d.button + 2) % n
}

func (d *Dealer) post(i, amount int) {
	s := &d.seats[i]
	if amount >= s.stack {
		amount = s.stack
		s.allIn = true
	}
	s.stack -= amount
	s.bet += amount
	s.total += amount
}

// Step applies the acting player's bet: negative folds, zero checks
// (or folds if facing a bet would be unmatched — a zero bet facing a
// bet is treated as a fold), a positive amount calls or raises.
// Rewards are per-seat profit for the hand, non-nil only when done.
func (d *Dealer) Step(bet int) (Observation, []int, bool, error) {
	if !d.running {
		return Observation{}, nil, true, ErrHandOver
	}

	s := &d.seats[d.actor]
	call := d.callAmount(d.actor)

	switch {
	case bet < 0:
		s.folded = true

	case bet == 0:
		if call > 0 {
			s.folded = true
		}

	case bet <= call:
		// Calls pay the full price; a short bet is only legal all-in.
		if bet < call && bet < s.stack {
			return Observation{}, nil, false, fmt.Errorf("seat %d: short call %d of %d", d.actor, bet, call)
		}
		d.post(d.actor, min(bet, s.stack))

	default:
		if err := d.applyRaise(bet); err != nil {
			return Observation{}, nil, false, err
		}
	}

	d.acted[d.actor] = true
	if s.stack == 0 {
		s.allIn = true
	}

	if d.countActive() == 1 {
		return d.finishFolded()
	}

	if d.roundComplete() {
		if done, obs, rewards, err := d.advanceStreet(); done || err != nil {
			return obs, rewards, done, err
		}
	} else {
		d.actor = d.nextActor((d.actor + 1) % d.cfg.NumPlayers)
	}

	return d.observe(), nil, false, nil
}

// applyRaise validates and applies a raise of `bet` chips on top of
// the actor's current street commitment.
func (d *Dealer) applyRaise(bet int) error {
	s := &d.seats[d.actor]

	if bet > s.stack {
		return fmt.Errorf("seat %d: bet %d exceeds stack %d", d.actor, bet, s.stack)
	}
	if maxBet := d.maxRaise(d.actor); bet > maxBet {
		return fmt.Errorf("seat %d: bet %d exceeds pot limit %d", d.actor, bet, maxBet)
	}

	incr := (s.bet + bet) - d.currentBet
	if incr < d.minIncr && bet < s.stack {
		return fmt.Errorf("seat %d: raise increment %d below minimum %d", d.actor, incr, d.minIncr)
	}

	d.post(d.actor, bet)
	if incr > d.minIncr {
		d.minIncr = incr
	}
	if s.bet > d.currentBet {
		d.currentBet = s.bet
		// A full raise reopens the action.
		for i := range d.acted {
			d.acted[i] = i == d.actor
		}
	}
	return nil
}

// callAmount is the chips seat i must add to match the current bet,
// capped at its stack.
func (d *Dealer) callAmount(i int) int {
	owed := d.currentBet - d.seats[i].bet
	if owed < 0 {
		owed = 0
	}
	return min(owed, d.seats[i].stack)
}

// minRaiseChips is the minimum chips seat i must add for a legal raise.
func (d *Dealer) minRaiseChips(i int) int {
	return (d.currentBet - d.seats[i].bet) + d.minIncr
}

// maxRaise is the pot-limit cap in chips added: call the bet, then
// raise the size of the resulting pot; never more than the stack.
func (d *Dealer) maxRaise(i int) int {
	call := d.currentBet - d.seats[i].bet
	if call < 0 {
		call = 0
	}
	potAfterCall := d.potTotal() + call
	return min(call+potAfterCall, d.seats[i].stack)
}

func (d *Dealer) potTotal() int {
	total := 0
	for i := range d.seats {
		total += d.seats[i].total
	}
	return total
}

func (d *Dealer) countActive() int {
	n := 0
	for i := range d.seats {
		if !d.seats[i].folded {
			n++
		}
	}
	return n
}

// nextActor finds the next seat that can still act, starting at from.
func (d *Dealer) nextActor(from int) int {
	n := d.cfg.NumPlayers
	for k := 0; k < n; k++ {
		i := (from + k) % n
		if !d.seats[i].folded && !d.seats[i].allIn {
			return i
		}
	}
	return from
}

// roundComplete reports whether every live player has acted and
// matched the current bet.
func (d *Dealer) roundComplete() bool {
	for i := range d.seats {
		s := &d.seats[i]
		if s.folded || s.allIn {
			continue
		}
		if !d.acted[i] || s.bet < d.currentBet {
			return false
		}
	}
	return true
}

// canAct counts players who could still make a decision.
func (d *Dealer) canAct() int {
	n := 0
	for i := range d.seats {
		if !d.seats[i].folded && !d.seats[i].allIn {
			n++
		}
	}
	return n
}

// advanceStreet deals the next street or runs the hand to showdown.
// When everyone left is all-in, the remaining board runs out with no
// further decisions.
func (d *Dealer) advanceStreet() (bool, Observation, []int, error) {
	for {
		if d.street == 3 {
			obs, rewards, done, err := d.finishShowdown()
			return done, obs, rewards, err
		}

		d.street++
		for i := range d.seats {
			d.seats[i].bet = 0
		}
		d.currentBet = 0
		d.minIncr = d.cfg.BigBlind
		for i := range d.acted {
			d.acted[i] = false
		}

		dealt := 3
		if d.street > 1 {
			dealt = 1
		}
		street := d.deck.Deal(dealt)
		if street == nil {
			return true, Observation{}, nil, errors.New("deck exhausted dealing board")
		}
		d.board = append(d.board, street...)

		if d.canAct() >= 2 {
			d.actor = d.nextActor((d.button + 1) % d.cfg.NumPlayers)
			return false, Observation{}, nil, nil
		}
		// Everyone committed: run out the rest of the board.
	}
}

// finishFolded ends the hand when one player remains: they take the
// whole pot uncontested.
func (d *Dealer) finishFolded() (Observation, []int, bool, error) {
	winner := -1
	for i := range d.seats {
		if !d.seats[i].folded {
			winner = i
			break
		}
	}
	d.seats[winner].stack += d.potTotal()
	return d.finish()
}

// finishShowdown resolves the pot (and side pots) by Omaha hand rank.
func (d *Dealer) finishShowdown() (Observation, []int, bool, error) {
	ranks := make([]cards.HandRank, d.cfg.NumPlayers)
	for i := range d.seats {
		if !d.seats[i].folded {
			ranks[i] = cards.BestOmaha(d.holes[i], d.board)
		}
	}

	// Carve contribution levels into pots; folded chips stay in the
	// pot but folded hands are never eligible.
	contrib := make([]int, d.cfg.NumPlayers)
	for i := range d.seats {
		contrib[i] = d.seats[i].total
	}

	for {
		level := 0
		for _, c := range contrib {
			if c > 0 && (level == 0 || c < level) {
				level = c
			}
		}
		if level == 0 {
			break
		}

		pot := 0
		var eligible []int
		for i := range contrib {
			if contrib[i] == 0 {
				continue
			}
			take := min(level, contrib[i])
			pot += take
			contrib[i] -= take
			if !d.seats[i].folded {
				eligible = append(eligible, i)
			}
		}
		if pot == 0 {
			break
		}

		d.award(pot, eligible, ranks)
	}

	return d.finish()
}

// award splits one pot among the best eligible hands, odd chips to the
// earliest seat after the button.
func (d *Dealer) award(pot int, eligible []int, ranks []cards.HandRank) {
	if len(eligible) == 0 {
		return
	}

	best := cards.HandRank(0)
	for _, i := range eligible {
		if ranks[i] > best {
			best = ranks[i]
		}
	}
	var winners []int
	for _, i := range eligible {
		if ranks[i] == best {
			winners = append(winners, i)
		}
	}

	share := pot / len(winners)
	odd := pot % len(winners)
	for _, i := range winners {
		d.seats[i].stack += share
	}
	if odd > 0 {
		d.seats[d.oddChipSeat(winners)].stack += odd
	}
}

// oddChipSeat picks the winner closest after the button.
func (d *Dealer) oddChipSeat(winners []int) int {
	n := d.cfg.NumPlayers
	bestSeat := winners[0]
	bestDist := n + 1
	for _, w := range winners {
		dist := (w - d.button - 1 + n) % n
		if dist < bestDist {
			bestDist = dist
			bestSeat = w
		}
	}
	return bestSeat
}

// finish computes per-seat rewards and closes the hand.
func (d *Dealer) finish() (Observation, []int, bool, error) {
	rewards := make([]int, d.cfg.NumPlayers)
	for i := range d.seats {
		rewards[i] = d.seats[i].stack - d.cfg.StartingStack
	}
	d.running = false
	return Observation{
		StreetIndex: d.street,
		Board:       append([]cards.Card(nil), d.board...),
		Stacks:      d.stacks(),
		Button:      d.button,
		Actor:       -1,
	}, rewards, true, nil
}

// Hole returns a copy of the given seat's hole cards for the current
// or just-finished hand.
func (d *Dealer) Hole(i int) []cards.Card {
	if i < 0 || i >= len(d.holes) {
		return nil
	}
	return append([]cards.Card(nil), d.holes[i]...)
}

// PotContributed returns the total chips put in by all seats during
// the current or just-finished hand.
func (d *Dealer) PotContributed() int {
	total := 0
	for i := range d.seats {
		total += d.seats[i].total
	}
	return total
}

func (d *Dealer) stacks() []int {
	out := make([]int, d.cfg.NumPlayers)
	for i := range d.seats {
		out[i] = d.seats[i].stack
	}
	return out
}

// observe builds the acting player's view.
func (d *Dealer) observe() Observation {
	minR := d.minRaiseChips(d.actor)
	maxR := d.maxRaise(d.actor)
	if minR > maxR {
		// Short stack: any remaining raise is all-in.
		minR = maxR
	}
	if maxR <= d.callAmount(d.actor) {
		// No raise possible beyond calling all-in.
		minR, maxR = 1, 0
	}
	return Observation{
		Actor:       d.actor,
		StreetIndex: d.street,
		Hole:        append([]cards.Card(nil), d.holes[d.actor]...),
		Board:       append([]cards.Card(nil), d.board...),
		Pot:         d.potTotal(),
		Call:        d.callAmount(d.actor),
		MinRaise:    minR,
		MaxRaise:    maxR,
		Stacks:      d.stacks(),
		Button:      d.button,
		InHand:      d.countActive(),
	}
}
