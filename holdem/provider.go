package holdem

import "fmt"

// Provider answers "what does this player do now?" (spec §4.7/§6.3). The
// engine treats it as the only polymorphic collaborator in the hand
// lifecycle: Step asks it for a decision, applies it through the same
// Act path a direct caller would use, and never otherwise inspects how
// the decision was produced.
type Provider interface {
	// GetDecision returns the action playerID wants to take given snap,
	// and whether a decision was actually produced. A false second
	// return (no panic, no error) means "couldn't decide in time" and is
	// the UI-timeout / fold-on-timeout path spec §5 describes.
	GetDecision(playerID uint64, snap Snapshot) (*Action, bool)

	// HasDecisionFor reports whether this provider is even responsible
	// for playerID; Step uses this to distinguish "no provider wired for
	// this seat, caller must act directly" from "provider is wired but
	// hasn't decided yet".
	HasDecisionFor(playerID uint64) bool

	ResetForNewHand()
}

// StepStatus reports what Step accomplished on one call.
type StepStatus int

const (
	// StepAwaitingDecision means the seat on turn has no provider
	// wired (HasDecisionFor returned false); the caller must call Act
	// directly, e.g. from a human UI.
	StepAwaitingDecision StepStatus = iota
	// StepInProgress means a decision was applied and the hand continues.
	StepInProgress
	// StepComplete means the hand ended as a result of this Step.
	StepComplete
)

// ImpliedAction computes spec §4.8's fallback for when a decision isn't
// ready: Check if it's legal, else Fold. Exported so a Provider
// implementation outside this package (a replay or UI adapter) applies
// the identical rule instead of reinventing it.
func ImpliedAction(snap Snapshot) (*Action, bool) {
	for _, k := range snap.LegalActionsOfNow {
		if k == ActionCheck {
			return &Action{Kind: ActionCheck}, true
		}
	}
	for _, k := range snap.LegalActionsOfNow {
		if k == ActionFold {
			return &Action{Kind: ActionFold}, true
		}
	}
	return nil, false
}

const stepMaxAttempts = 3

// Step drives the hand forward by one decision using provider. A
// provider that isn't ready (GetDecision's ok == false) is not a fault:
// Step applies the implied Check-else-Fold immediately, with no retry
// (spec §4.8). A provider that returns an actual but illegal action is
// the fault case spec §4.7 describes: Step records the rejection as an
// EventIllegalAction and asks the provider again, bounded at
// stepMaxAttempts attempts, before giving up on the seat with
// ErrDecisionProviderFault.
func (g *Game) Step(provider Provider) (StepStatus, error) {
	g.mu.Lock()
	if g.ended {
		g.mu.Unlock()
		return StepComplete, ErrHandEnded
	}
	if g.curNode == nil || g.curNode.Player == nil {
		g.mu.Unlock()
		return StepComplete, ErrInvalidState("no current player")
	}
	chair := g.curNode.ChairID
	playerID := g.curNode.Player.PlayerID
	g.mu.Unlock()

	if !provider.HasDecisionFor(playerID) {
		return StepAwaitingDecision, nil
	}

	var lastErr error
	for attempt := 0; attempt < stepMaxAttempts; attempt++ {
		snap := g.Snapshot()
		action, ok := provider.GetDecision(playerID, snap)
		if !ok || action == nil {
			implied, ok := ImpliedAction(snap)
			if !ok {
				return StepComplete, ErrDecisionProviderFault
			}
			action = implied
		}

		settlement, err := g.Act(chair, *action)
		if err == nil {
			if settlement != nil {
				return StepComplete, nil
			}
			return StepInProgress, nil
		}

		lastErr = err
		g.mu.Lock()
		g.emit(Event{Kind: EventIllegalAction, Chair: chair, Action: *action, Note: err.Error()})
		g.mu.Unlock()
	}

	return StepComplete, fmt.Errorf("%w: %v", ErrDecisionProviderFault, lastErr)
}
