package cards

import (
	"math/bits"
)

// HandRank represents the strength of a five-card poker hand.
// The high 4 bits are the hand type, the remaining bits break ties.
type HandRank uint32

const (
	HighCard HandRank = iota << 28
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Type returns the category of the hand (pair, flush, etc.).
func (hr HandRank) Type() HandRank {
	return hr & 0xF0000000
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	switch hr.Type() {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Evaluate5 ranks a five-card hand. Higher values are stronger.
func Evaluate5(hand Hand) HandRank {
	if hand.Count() != 5 {
		return 0
	}

	flushSuit := checkFlush(hand)
	if flushSuit >= 0 {
		flushCards := flushOnly(hand, uint8(flushSuit))
		if high := checkStraight(flushCards); high > 0 {
			return StraightFlush | HandRank(high)
		}
		return Flush | HandRank(topRanks(hand, 5))
	}

	counts := countRanks(hand)

	if quad := findNOfAKind(counts, 4); quad >= 0 {
		kicker := findKickers(counts, []uint8{uint8(quad)}, 1)
		return FourOfAKind | (HandRank(quad) << 14) | HandRank(kicker)
	}

	trips := findNOfAKind(counts, 3)
	if trips >= 0 {
		if pair := findNOfAKindExcept(counts, 2, uint8(trips)); pair >= 0 {
			return FullHouse | (HandRank(trips) << 4) | HandRank(pair)
		}
	}

	if high := checkStraight(hand); high > 0 {
		return Straight | HandRank(high)
	}

	if trips >= 0 {
		kickers := findKickers(counts, []uint8{uint8(trips)}, 2)
		return ThreeOfAKind | (HandRank(trips) << 14) | HandRank(kickers)
	}

	pair1 := findNOfAKind(counts, 2)
	if pair1 >= 0 {
		if pair2 := findNOfAKindExcept(counts, 2, uint8(pair1)); pair2 >= 0 {
			kicker := findKickers(counts, []uint8{uint8(pair1), uint8(pair2)}, 1)
			return TwoPair | (HandRank(pair1) << 18) | (HandRank(pair2) << 14) | HandRank(kicker)
		}
		kickers := findKickers(counts, []uint8{uint8(pair1)}, 3)
		return Pair | (HandRank(pair1) << 14) | HandRank(kickers)
	}

	return HighCard | HandRank(topRanks(hand, 5))
}

// BestOmaha ranks the best hand using exactly two hole cards and exactly
// three board cards, per the Omaha showdown rule.
func BestOmaha(hole, board []Card) HandRank {
	best := HandRank(0)
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			for a := 0; a < len(board); a++ {
				for b := a + 1; b < len(board); b++ {
					for c := b + 1; c < len(board); c++ {
						h := NewHand(hole[i], hole[j], board[a], board[b], board[c])
						if r := Evaluate5(h); r > best {
							best = r
						}
					}
				}
			}
		}
	}
	return best
}

// countRanks counts how many of each rank the hand holds.
func countRanks(hand Hand) [13]uint8 {
	var counts [13]uint8
	for suit := uint8(0); suit < 4; suit++ {
		mask := hand.SuitMask(suit)
		for rank := uint8(0); rank < 13; rank++ {
			if mask&(1<<rank) != 0 {
				counts[rank]++
			}
		}
	}
	return counts
}

// findNOfAKind finds the highest rank with exactly n cards, -1 if none.
func findNOfAKind(counts [13]uint8, n uint8) int {
	for rank := 12; rank >= 0; rank-- {
		if counts[rank] == n {
			return rank
		}
	}
	return -1
}

func findNOfAKindExcept(counts [13]uint8, n uint8, except uint8) int {
	for rank := 12; rank >= 0; rank-- {
		if uint8(rank) != except && counts[rank] == n {
			return rank
		}
	}
	return -1
}

// findKickers returns a rank bitmask of the top n kickers outside used ranks.
func findKickers(counts [13]uint8, used []uint8, n int) uint16 {
	var usedMask uint16
	for _, r := range used {
		usedMask |= 1 << r
	}

	kickers := uint16(0)
	found := 0
	for rank := 12; rank >= 0 && found < n; rank-- {
		if usedMask&(1<<rank) == 0 && counts[rank] > 0 {
			kickers |= 1 << rank
			found++
		}
	}
	return kickers
}

// checkFlush returns the suit with 5+ cards, or -1.
func checkFlush(hand Hand) int {
	for suit := uint8(0); suit < 4; suit++ {
		if bits.OnesCount16(hand.SuitMask(suit)) >= 5 {
			return int(suit)
		}
	}
	return -1
}

func flushOnly(hand Hand, suit uint8) Hand {
	return Hand(uint64(hand.SuitMask(suit))) << (suit * 13)
}

// checkStraight returns the high-card rank of a straight, 0 if none.
// The wheel (A-2-3-4-5) reports 3, the rank of the five.
func checkStraight(hand Hand) uint8 {
	rankMask := hand.RankMask()

	for high := uint8(12); high >= 4; high-- {
		window := uint16(0x1F) << (high - 4)
		if rankMask&window == window {
			return high
		}
	}
	// Wheel: ace plus 2-3-4-5 reports the five as high card.
	if rankMask&0x100F == 0x100F {
		return 3
	}
	return 0
}

// topRanks returns a bitmask of the top n ranks present in the hand.
func topRanks(hand Hand, n int) uint16 {
	var mask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask |= hand.SuitMask(suit)
	}

	result := uint16(0)
	found := 0
	for rank := 12; rank >= 0 && found < n; rank-- {
		if mask&(1<<rank) != 0 {
			result |= 1 << rank
			found++
		}
	}
	return result
}
