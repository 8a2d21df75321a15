package replay

import (
	"testing"

	"holdem-engine/eval"
	"holdem-engine/holdem"
)

func newBareGame(t *testing.T) *holdem.Game {
	t.Helper()
	g, err := holdem.NewGame(holdem.Config{
		MaxPlayers: 2,
		MinPlayers: 2,
		SmallBlind: 50,
		BigBlind:   100,
	}, eval.New())
	if err != nil {
		t.Fatalf("NewGame err: %v", err)
	}
	return g
}

func snapForRaiseTest(curBet, minRaiseDelta, playerBet, playerStack int64) holdem.Snapshot {
	return holdem.Snapshot{
		ActionChair:       0,
		CurBet:            curBet,
		MinRaiseDelta:     minRaiseDelta,
		LegalActionsOfNow: []holdem.ActionKind{holdem.ActionCall, holdem.ActionRaise, holdem.ActionFold},
		Players: []holdem.PlayerSnapshot{
			{Chair: 0, Bet: playerBet, Stack: playerStack},
		},
	}
}

func TestAdapter_RaisePrefersTotalInterpretationWhenBothAdmissible(t *testing.T) {
	g := newBareGame(t)
	entries := []LogEntry{{ActorUID: 1, Phase: holdem.PhaseFlop, Kind: "RAISE", Amount: 300}}
	a := NewAdapter(g, entries)

	snap := snapForRaiseTest(100, 100, 100, 1000)
	act, ok := a.GetDecision(1, snap)
	if !ok || act == nil {
		t.Fatalf("expected a decision")
	}
	if act.Kind != holdem.ActionRaise || act.To != 300 {
		t.Fatalf("expected Raise to 300 (total interpretation), got %+v", act)
	}
}

func TestAdapter_RaiseFallsBackToDeltaWhenTotalNotAdmissible(t *testing.T) {
	g := newBareGame(t)
	// current_bet=100, logged amount=50: read as a total, T2=50 is not
	// above current_bet, so only the delta reading is admissible.
	entries := []LogEntry{{ActorUID: 1, Phase: holdem.PhaseFlop, Kind: "RAISE", Amount: 50}}
	a := NewAdapter(g, entries)

	// T2=50 (not > curBet=100, inadmissible); T1=100+50=150 (admissible,
	// and a full raise since its delta 50 >= minRaiseDelta 50).
	snap := snapForRaiseTest(100, 50, 100, 1000)
	act, ok := a.GetDecision(1, snap)
	if !ok || act == nil {
		t.Fatalf("expected a decision")
	}
	if act.Kind != holdem.ActionRaise || act.To != 150 {
		t.Fatalf("expected Raise to 150 (delta interpretation), got %+v", act)
	}
}

func TestAdapter_RaiseAcceptsShortAllInWhenNeitherIsFullRaise(t *testing.T) {
	g := newBareGame(t)
	entries := []LogEntry{{ActorUID: 1, Phase: holdem.PhaseFlop, Kind: "RAISE", Amount: 120}}
	a := NewAdapter(g, entries)

	// Player only has 120 total available (bet 100 + stack 20); neither
	// T1=220 nor T2=120 clears a 200-delta full raise, but T2=120 matches
	// the player's exact all-in ceiling.
	snap := snapForRaiseTest(100, 200, 100, 20)
	act, ok := a.GetDecision(1, snap)
	if !ok || act == nil {
		t.Fatalf("expected a decision")
	}
	if act.Kind != holdem.ActionAllIn || act.To != 120 {
		t.Fatalf("expected AllIn to 120, got %+v", act)
	}
}

func TestAdapter_ExhaustedCursorInjectsCheckOrFold(t *testing.T) {
	g := newBareGame(t)
	a := NewAdapter(g, nil)

	snap := holdem.Snapshot{
		ActionChair:       0,
		LegalActionsOfNow: []holdem.ActionKind{holdem.ActionCheck, holdem.ActionFold},
		Players:           []holdem.PlayerSnapshot{{Chair: 0}},
	}
	act, ok := a.GetDecision(1, snap)
	if !ok || act == nil || act.Kind != holdem.ActionCheck {
		t.Fatalf("expected implied Check, got %+v ok=%v", act, ok)
	}
}

func TestAdapter_NoiseEntriesAreSkipped(t *testing.T) {
	g := newBareGame(t)
	entries := []LogEntry{
		{ActorUID: 1, Phase: holdem.PhaseFlop, Kind: "SHOW"},
		{ActorUID: 1, Phase: holdem.PhaseFlop, Kind: "CHECK"},
	}
	a := NewAdapter(g, entries)

	snap := snapForRaiseTest(0, 100, 0, 1000)
	snap.LegalActionsOfNow = []holdem.ActionKind{holdem.ActionCheck, holdem.ActionBet, holdem.ActionFold}
	act, ok := a.GetDecision(1, snap)
	if !ok || act == nil || act.Kind != holdem.ActionCheck {
		t.Fatalf("expected the noise entry to be skipped and Check returned, got %+v", act)
	}
}
