// Package scorer rates Omaha starting hands on a 0-100 scale.
//
// The score is additive over five components: high-card value,
// pairs, suitedness, connectivity and nut potential. It is a preflop
// heuristic, not an equity calculation; thresholds elsewhere are
// calibrated against this exact formula, so changes here require
// recalibrating every style threshold.
package scorer

import (
	"sort"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/cards"
)

// neutralScore is returned for empty or unusable input so callers
// never have to special-case a missing hand.
const neutralScore = 25

// Score rates a set of hole cards in [0, 100].
func Score(hole []cards.Card) float64 {
	if len(hole) == 0 {
		return neutralScore
	}

	ranks := make([]int, 0, len(hole))
	suits := make([]uint8, 0, len(hole))
	for _, c := range hole {
		rv := c.RankValue()
		if rv == 0 {
			return neutralScore
		}
		ranks = append(ranks, rv)
		suits = append(suits, c.Suit())
	}

	score := 0.0
	n := float64(len(ranks))

	// High card value (0-25)
	sum := 0
	for _, r := range ranks {
		sum += r
	}
	avgRank := float64(sum) / n
	score += (avgRank / 14) * 25

	// Pairs (0-20)
	rankCounts := map[int]int{}
	for _, r := range ranks {
		rankCounts[r]++
	}
	topPair := 0
	for r, c := range rankCounts {
		if c >= 2 && r > topPair {
			topPair = r
		}
	}
	if topPair > 0 {
		score += 10 + (float64(topPair)/14)*10
	}

	// Suitedness (0-15)
	suitCounts := map[uint8]int{}
	for _, s := range suits {
		suitCounts[s]++
	}
	suitedGroups := 0
	maxSuited := 0
	for _, c := range suitCounts {
		if c >= 2 {
			suitedGroups++
		}
		if c > maxSuited {
			maxSuited = c
		}
	}
	switch {
	case suitedGroups >= 2:
		score += 15
	case maxSuited >= 3:
		score += 12
	case maxSuited >= 2:
		score += 8
	}

	// Connectivity (0-20)
	uniq := make([]int, 0, len(ranks))
	for r := range rankCounts {
		uniq = append(uniq, r)
	}
	sort.Ints(uniq)
	if len(uniq) >= 2 {
		gapSum := 0
		for i := 1; i < len(uniq); i++ {
			gapSum += uniq[i] - uniq[i-1]
		}
		avgGap := float64(gapSum) / float64(len(uniq)-1)
		if conn := 20 - (avgGap-1)*5; conn > 0 {
			score += conn
		}
	}

	// Nut potential (0-20)
	suitedAce := false
	hasAce := false
	for i, r := range ranks {
		if r != 14 {
			continue
		}
		hasAce = true
		for j := range ranks {
			if j != i && suits[i] == suits[j] {
				suitedAce = true
			}
		}
	}
	if suitedAce {
		score += 15
	} else if hasAce {
		score += 8
	}
	broadway := 0
	for _, r := range ranks {
		if r >= 10 {
			broadway++
		}
	}
	if broadway >= 3 {
		score += 5
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
