package eval

import (
	"testing"

	"holdem-engine/card"
)

func TestEvalBestOf7_RoyalFlushBeatsLowerStraightFlush(t *testing.T) {
	e := New()

	royal, err := e.EvalBestOf7(card.CardList{
		card.CardSpadeA, card.CardSpadeK, card.CardSpadeQ, card.CardSpadeJ, card.CardSpadeT,
		card.CardHeart2, card.CardClub3,
	})
	if err != nil {
		t.Fatalf("EvalBestOf7 err: %v", err)
	}

	sf, err := e.EvalBestOf7(card.CardList{
		card.CardHeartK, card.CardHeartQ, card.CardHeartJ, card.CardHeartT, card.CardHeart9,
		card.CardSpade2, card.CardClub3,
	})
	if err != nil {
		t.Fatalf("EvalBestOf7 err: %v", err)
	}

	if royal.Rank >= sf.Rank {
		t.Fatalf("expected royal flush (rank %d) to beat straight flush (rank %d)", royal.Rank, sf.Rank)
	}
}

func TestEvalBestOf7_PicksBestFive(t *testing.T) {
	e := New()

	res, err := e.EvalBestOf7(card.CardList{
		card.CardSpadeA, card.CardHeartA, // pair of aces
		card.CardClubK, card.CardDiamondK, // pair of kings
		card.CardSpade2, card.CardHeart3, card.CardClub4,
	})
	if err != nil {
		t.Fatalf("EvalBestOf7 err: %v", err)
	}
	if len(res.Best) != 5 {
		t.Fatalf("expected 5 best cards, got %d", len(res.Best))
	}
}

func TestEvalBestOf7_RejectsWrongCardCount(t *testing.T) {
	e := New()
	if _, err := e.EvalBestOf7(card.CardList{card.CardSpadeA}); err == nil {
		t.Fatalf("expected error for short hand")
	}
}
