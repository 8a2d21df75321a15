package provider

import (
	"testing"
	"time"

	"github.com/coder/quartz"

	"holdem-engine/holdem"
)

func TestCallingStationProvider_PrefersCheckThenCall(t *testing.T) {
	p := NewCallingStationProvider()

	snap := holdem.Snapshot{LegalActionsOfNow: []holdem.ActionKind{holdem.ActionFold, holdem.ActionCheck, holdem.ActionBet}}
	act, ok := p.GetDecision(1, snap)
	if !ok || act.Kind != holdem.ActionCheck {
		t.Fatalf("expected Check, got %+v ok=%v", act, ok)
	}

	snap = holdem.Snapshot{LegalActionsOfNow: []holdem.ActionKind{holdem.ActionFold, holdem.ActionCall, holdem.ActionRaise}}
	act, ok = p.GetDecision(1, snap)
	if !ok || act.Kind != holdem.ActionCall {
		t.Fatalf("expected Call, got %+v ok=%v", act, ok)
	}

	snap = holdem.Snapshot{LegalActionsOfNow: []holdem.ActionKind{holdem.ActionFold}}
	act, ok = p.GetDecision(1, snap)
	if !ok || act.Kind != holdem.ActionFold {
		t.Fatalf("expected Fold, got %+v ok=%v", act, ok)
	}
}

func TestRandomProvider_AlwaysReturnsALegalKind(t *testing.T) {
	p := NewRandomProvider(7)
	legal := []holdem.ActionKind{holdem.ActionCheck, holdem.ActionBet}
	snap := holdem.Snapshot{
		CurBet:            0,
		MinRaiseDelta:     100,
		LegalActionsOfNow: legal,
		Players:           []holdem.PlayerSnapshot{{PlayerID: 1, Stack: 900, Bet: 0}},
	}

	for i := 0; i < 20; i++ {
		act, ok := p.GetDecision(1, snap)
		if !ok {
			t.Fatalf("expected a decision")
		}
		found := false
		for _, k := range legal {
			if k == act.Kind {
				found = true
			}
		}
		if !found {
			t.Fatalf("RandomProvider chose illegal kind %v", act.Kind)
		}
	}
}

type stubProvider struct {
	decision *holdem.Action
	ready    bool
}

func (s *stubProvider) HasDecisionFor(uint64) bool { return true }
func (s *stubProvider) ResetForNewHand()           {}
func (s *stubProvider) GetDecision(uint64, holdem.Snapshot) (*holdem.Action, bool) {
	return s.decision, s.ready
}

func TestDeadlineProvider_PassesThroughInnerDecision(t *testing.T) {
	mock := quartz.NewMock(t)
	inner := &stubProvider{decision: &holdem.Action{Kind: holdem.ActionFold}, ready: true}
	dp := NewDeadlineProvider(inner, mock, time.Second)

	act, ok := dp.GetDecision(1, holdem.Snapshot{})
	if !ok || act.Kind != holdem.ActionFold {
		t.Fatalf("expected inner decision to pass through, got %+v ok=%v", act, ok)
	}
}

func TestDeadlineProvider_InjectsFoldAfterTimeout(t *testing.T) {
	mock := quartz.NewMock(t)
	inner := &stubProvider{ready: false}
	dp := NewDeadlineProvider(inner, mock, time.Second)

	snap := holdem.Snapshot{LegalActionsOfNow: []holdem.ActionKind{holdem.ActionFold}}

	if _, ok := dp.GetDecision(1, snap); ok {
		t.Fatalf("expected no decision before the deadline")
	}
	mock.Advance(2 * time.Second)

	act, ok := dp.GetDecision(1, snap)
	if !ok || act.Kind != holdem.ActionFold {
		t.Fatalf("expected injected Fold after timeout, got %+v ok=%v", act, ok)
	}
}
