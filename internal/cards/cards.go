package cards

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs], one bit per card.
type Card uint64

// Hand is also a uint64 but can contain multiple cards, one bit each.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const rankMask = 0x1FFF // 13 bits per suit

// NewCard creates a card from rank and suit.
func NewCard(rank, suit uint8) Card {
	offset := suit*13 + rank
	return Card(1) << offset
}

// bitPosition returns which bit this card occupies (0-51), 255 if invalid.
func (c Card) bitPosition() uint8 {
	if c == 0 || bits.OnesCount64(uint64(c)) != 1 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12), 255 if invalid.
func (c Card) Rank() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos % 13
}

// Suit returns the suit of the card (0-3), 255 if invalid.
func (c Card) Suit() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos / 13
}

// RankValue returns the conventional numeric rank, 2-14 with Ace high.
func (c Card) RankValue() int {
	r := c.Rank()
	if r == 255 {
		return 0
	}
	return int(r) + 2
}

// String returns the compact representation, e.g. "As", "Th".
func (c Card) String() string {
	const ranks = "23456789TJQKA"
	const suits = "cdhs"

	rank := c.Rank()
	suit := c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(ranks[rank]) + string(suits[suit])
}

// WireString returns the advisory-service representation, which spells
// ten as "10" rather than "T", e.g. "10c", "Ah".
func (c Card) WireString() string {
	s := c.String()
	if s == "??" {
		return s
	}
	if s[0] == 'T' {
		return "10" + s[1:]
	}
	return s
}

// Parse parses a card string in either compact ("Tc") or wire ("10c") form.
func Parse(s string) (Card, error) {
	if len(s) == 3 && strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	var rank uint8
	switch s[0] {
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit uint8
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(rank, suit), nil
}

// ParseAll parses a list of card strings into a slice of cards.
func ParseAll(strs ...string) ([]Card, error) {
	out := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// WireStrings converts a slice of cards to wire form.
func WireStrings(cs []Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.WireString()
	}
	return out
}

// NewHand creates a hand from multiple cards.
func NewHand(cs ...Card) Hand {
	var h Hand
	for _, c := range cs {
		h |= Hand(c)
	}
	return h
}

// Add adds a card to the hand.
func (h *Hand) Add(c Card) {
	*h |= Hand(c)
}

// Has reports whether the hand contains a specific card.
func (h Hand) Has(c Card) bool {
	return h&Hand(c) != 0
}

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	return bits.OnesCount64(uint64(h))
}

// SuitMask returns the cards of a specific suit as a 13-bit mask.
func (h Hand) SuitMask(suit uint8) uint16 {
	return uint16((h >> (suit * 13)) & rankMask)
}

// RankMask returns a bitmask of which ranks are present. The ace is
// mirrored into bit 13 so straight detection can treat it as high or low.
func (h Hand) RankMask() uint16 {
	mask := uint16(0)
	for suit := uint8(0); suit < 4; suit++ {
		mask |= h.SuitMask(suit)
	}
	if mask&(1<<Ace) != 0 {
		mask |= 1 << 13
	}
	return mask
}

// Cards returns the individual cards in the hand, lowest bit first.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.Count())
	rest := uint64(h)
	for rest != 0 {
		low := rest & -rest
		out = append(out, Card(low))
		rest ^= low
	}
	return out
}
