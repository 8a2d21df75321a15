// Package eval wraps github.com/chehsunliu/poker as a holdem.Evaluator.
package eval

import (
	"fmt"

	"github.com/chehsunliu/poker"

	"holdem-engine/card"
	"holdem-engine/holdem"
)

// ChehsunliuEvaluator is the default Evaluator, grounded in
// vctt94-pokerbisonrelay's pkg/poker wrapper around the same library.
type ChehsunliuEvaluator struct{}

// New returns the default seven-card evaluator.
func New() ChehsunliuEvaluator { return ChehsunliuEvaluator{} }

func (ChehsunliuEvaluator) EvalBestOf7(cards card.CardList) (holdem.HandResult, error) {
	if len(cards) != 7 {
		return holdem.HandResult{}, fmt.Errorf("eval: expected 7 cards, got %d", len(cards))
	}

	hand := make([]poker.Card, 0, 7)
	for _, c := range cards {
		pc, err := toChehsunliu(c)
		if err != nil {
			return holdem.HandResult{}, err
		}
		hand = append(hand, pc)
	}

	rank := poker.Evaluate(hand)
	class := classFromRankClass(poker.RankClass(rank))
	if rank == 1 {
		class = holdem.HandRoyalFlush
	}

	return holdem.HandResult{
		Class: class,
		Rank:  rank,
		Best:  bestFive(cards, rank),
	}, nil
}

// bestFive recovers which five of the seven cards produced rank by
// brute-forcing the 21 combinations; used for display only, never for
// comparison (Rank alone settles winners).
func bestFive(cards card.CardList, rank int32) card.CardList {
	idx := [5]int{}
	for a := 0; a < 3; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 5; c++ {
				for d := c + 1; d < 6; d++ {
					for e := d + 1; e < 7; e++ {
						idx[0], idx[1], idx[2], idx[3], idx[4] = a, b, c, d, e
						combo := make([]poker.Card, 5)
						for i, ci := range idx {
							pc, err := toChehsunliu(cards[ci])
							if err != nil {
								continue
							}
							combo[i] = pc
						}
						if poker.Evaluate(combo) == rank {
							return card.CardList{
								cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]],
							}
						}
					}
				}
			}
		}
	}
	return nil
}

func classFromRankClass(rankClass int32) holdem.HandClass {
	switch rankClass {
	case 1:
		return holdem.HandStraightFlush
	case 2:
		return holdem.HandFourOfKind
	case 3:
		return holdem.HandFullHouse
	case 4:
		return holdem.HandFlush
	case 5:
		return holdem.HandStraight
	case 6:
		return holdem.HandThreeOfKind
	case 7:
		return holdem.HandTwoPair
	case 8:
		return holdem.HandOnePair
	default:
		return holdem.HandHighCard
	}
}

func toChehsunliu(c card.Card) (poker.Card, error) {
	var rankChar byte
	switch c.Rank() {
	case 1:
		rankChar = 'A'
	case 2:
		rankChar = '2'
	case 3:
		rankChar = '3'
	case 4:
		rankChar = '4'
	case 5:
		rankChar = '5'
	case 6:
		rankChar = '6'
	case 7:
		rankChar = '7'
	case 8:
		rankChar = '8'
	case 9:
		rankChar = '9'
	case 10:
		rankChar = 'T'
	case 11:
		rankChar = 'J'
	case 12:
		rankChar = 'Q'
	case 13:
		rankChar = 'K'
	default:
		var zero poker.Card
		return zero, fmt.Errorf("eval: invalid rank in card %s", c)
	}

	var suitChar byte
	switch c.Suit() {
	case card.Spade:
		suitChar = 's'
	case card.Heart:
		suitChar = 'h'
	case card.Club:
		suitChar = 'c'
	case card.Diamond:
		suitChar = 'd'
	default:
		var zero poker.Card
		return zero, fmt.Errorf("eval: invalid suit in card %s", c)
	}

	return poker.NewCard(string([]byte{rankChar, suitChar})), nil
}
