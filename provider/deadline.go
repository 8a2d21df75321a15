package provider

import (
	"time"

	"github.com/coder/quartz"

	"holdem-engine/holdem"
)

// DeadlineProvider wraps another Provider with a wall-clock deadline per
// seat-turn. While the inner provider hasn't produced a decision and the
// timeout hasn't elapsed, it returns "not ready" (false); holdem.Game.Step
// treats that as final and applies the implied Check/Fold at once, so
// the wait only happens for a caller that polls GetDecision itself and
// passes the result to Game.Act. Once timeout has elapsed since the
// seat's turn began, it injects the implied Check/Fold itself and lets the engine
// apply it (spec §5: "a UI adapter may return a Fold after a timer
// expires and let the engine apply it"). Grounded in lox-pokerforbots's
// use of github.com/coder/quartz.Clock (its internal/testing harness
// drives timeouts through a quartz.Mock instead of real sleeps) — the
// same clock abstraction is used here so tests can advance time
// deterministically instead of sleeping.
type DeadlineProvider struct {
	inner     holdem.Provider
	clock     quartz.Clock
	timeout   time.Duration
	startedAt map[uint64]time.Time
}

func NewDeadlineProvider(inner holdem.Provider, clock quartz.Clock, timeout time.Duration) *DeadlineProvider {
	return &DeadlineProvider{
		inner:     inner,
		clock:     clock,
		timeout:   timeout,
		startedAt: make(map[uint64]time.Time),
	}
}

func (d *DeadlineProvider) HasDecisionFor(playerID uint64) bool {
	return d.inner.HasDecisionFor(playerID)
}

func (d *DeadlineProvider) ResetForNewHand() {
	d.startedAt = make(map[uint64]time.Time)
	d.inner.ResetForNewHand()
}

func (d *DeadlineProvider) GetDecision(playerID uint64, snap holdem.Snapshot) (*holdem.Action, bool) {
	now := d.clock.Now()
	start, seen := d.startedAt[playerID]
	if !seen {
		start = now
		d.startedAt[playerID] = start
	}

	if act, ok := d.inner.GetDecision(playerID, snap); ok {
		delete(d.startedAt, playerID)
		return act, true
	}

	if now.Sub(start) < d.timeout {
		return nil, false
	}

	delete(d.startedAt, playerID)
	for _, k := range snap.LegalActionsOfNow {
		if k == holdem.ActionCheck {
			return &holdem.Action{Kind: holdem.ActionCheck}, true
		}
	}
	for _, k := range snap.LegalActionsOfNow {
		if k == holdem.ActionFold {
			return &holdem.Action{Kind: holdem.ActionFold}, true
		}
	}
	return nil, false
}
