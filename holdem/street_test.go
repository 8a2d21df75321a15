package holdem

import (
	"testing"

	"holdem-engine/eval"
)

// This covers a critical street-advancement rule: with a 3-handed start,
// even after a fold drops activeCount to 2, the flop's first action
// still follows the full-table rule — clockwise from the small blind,
// not the heads-up rule of starting from the big blind (matching the
// teacher's len(chairIDNodes)==2 check, which counts original seats,
// not seats still live in the hand).
func TestStreetProgression_FlopFirstActionAfterBBFolds(t *testing.T) {
	g, err := NewGame(Config{
		MaxPlayers: 3,
		MinPlayers: 3,
		SmallBlind: 50,
		BigBlind:   100,
		Ante:       0,
		Seed:       1,
	}, eval.New())
	if err != nil {
		t.Fatalf("NewGame err: %v", err)
	}

	if err := g.SitDown(0, 10001, "p0", 1000, false); err != nil {
		t.Fatal(err)
	}
	if err := g.SitDown(1, 10002, "p1", 1000, false); err != nil {
		t.Fatal(err)
	}
	if err := g.SitDown(2, 10003, "p2", 1000, false); err != nil {
		t.Fatal(err)
	}

	if err := g.BeginHand(); err != nil {
		t.Fatalf("BeginHand err: %v", err)
	}
	snap := g.Snapshot()
	if snap.Phase != PhasePreflop {
		t.Fatalf("expected preflop, got %v", snap.Phase)
	}

	// Preflop: Dealer calls, SB calls, BB folds.
	for i := 0; i < 3; i++ {
		snap = g.Snapshot()
		switch snap.ActionChair {
		case snap.DealerChair:
			if _, err := g.Act(snap.ActionChair, Action{Kind: ActionCall}); err != nil {
				t.Fatalf("dealer call err: %v", err)
			}
		case snap.SmallBlindChair:
			if _, err := g.Act(snap.ActionChair, Action{Kind: ActionCall}); err != nil {
				t.Fatalf("sb call err: %v", err)
			}
		case snap.BigBlindChair:
			if _, err := g.Act(snap.ActionChair, Action{Kind: ActionFold}); err != nil {
				t.Fatalf("bb fold err: %v", err)
			}
		default:
			t.Fatalf("unexpected action chair: %d", snap.ActionChair)
		}
	}

	// Flop: first to act should be the small blind (still live).
	snap = g.Snapshot()
	if snap.Phase != PhaseFlop {
		t.Fatalf("expected flop, got %v", snap.Phase)
	}
	if len(snap.CommunityCards) != 3 {
		t.Fatalf("expected 3 community cards on flop, got %d", len(snap.CommunityCards))
	}
	if snap.ActionChair != snap.SmallBlindChair {
		t.Fatalf("expected flop action chair=SB(%d), got %d (dealer=%d bb=%d)",
			snap.SmallBlindChair, snap.ActionChair, snap.DealerChair, snap.BigBlindChair)
	}
}
