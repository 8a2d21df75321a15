package provider

import "holdem-engine/holdem"

// CallingStationProvider always checks or calls, folding only when neither
// is legal. Grounded in lox-pokerforbots's
// sdk/bots/callingstation/handler.go, which does the identical
// check-then-call-then-fold cascade against its string-tagged
// req.ValidActions.
type CallingStationProvider struct{}

func NewCallingStationProvider() CallingStationProvider { return CallingStationProvider{} }

func (CallingStationProvider) HasDecisionFor(playerID uint64) bool { return true }
func (CallingStationProvider) ResetForNewHand()                    {}

func (CallingStationProvider) GetDecision(playerID uint64, snap holdem.Snapshot) (*holdem.Action, bool) {
	for _, k := range snap.LegalActionsOfNow {
		if k == holdem.ActionCheck {
			return &holdem.Action{Kind: holdem.ActionCheck}, true
		}
	}
	for _, k := range snap.LegalActionsOfNow {
		if k == holdem.ActionCall {
			return &holdem.Action{Kind: holdem.ActionCall}, true
		}
	}
	for _, k := range snap.LegalActionsOfNow {
		if k == holdem.ActionFold {
			return &holdem.Action{Kind: holdem.ActionFold}, true
		}
	}
	return nil, false
}
