// Package provider collects sample holdem.Provider implementations: bots
// and timeout plumbing an embedder can wire directly or use as a
// reference for building their own (spec §4.7/§6.3).
package provider

import (
	"math/rand"
	"time"

	"holdem-engine/holdem"
)

// RandomProvider picks uniformly among the legal actions for whichever
// seat it's asked about, sizing Bet/Raise to the minimum legal amount.
// Grounded in lox-pokerforbots's sdk/bots/random/handler.go, whose
// OnActionRequest does `req.ValidActions[rng.IntN(len(req.ValidActions))]`
// against a string-tagged protocol; here the same pattern runs directly
// against holdem.ActionKind and the engine's own Snapshot/Action types.
type RandomProvider struct {
	rng *rand.Rand
}

func NewRandomProvider(seed int64) *RandomProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomProvider) HasDecisionFor(playerID uint64) bool { return true }
func (p *RandomProvider) ResetForNewHand()                    {}

func (p *RandomProvider) GetDecision(playerID uint64, snap holdem.Snapshot) (*holdem.Action, bool) {
	legal := snap.LegalActionsOfNow
	if len(legal) == 0 {
		return nil, false
	}
	kind := legal[p.rng.Intn(len(legal))]

	switch kind {
	case holdem.ActionBet:
		return &holdem.Action{Kind: kind, To: snap.CurBet + bigBlindSizeOf(snap)}, true
	case holdem.ActionRaise:
		return &holdem.Action{Kind: kind, To: snap.CurBet + snap.MinRaiseDelta}, true
	case holdem.ActionAllIn:
		return &holdem.Action{Kind: kind, To: playerPayable(snap, playerID)}, true
	default:
		return &holdem.Action{Kind: kind}, true
	}
}

func bigBlindSizeOf(snap holdem.Snapshot) int64 {
	if snap.MinRaiseDelta > 0 {
		return snap.MinRaiseDelta
	}
	return 1
}

func playerPayable(snap holdem.Snapshot, playerID uint64) int64 {
	for _, ps := range snap.Players {
		if ps.PlayerID == playerID {
			return ps.Stack + ps.Bet
		}
	}
	return 0
}
