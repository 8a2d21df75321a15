package replay

import (
	"strconv"

	"holdem-engine/holdem"
)

// LogEntry is one record from a recorded hand log, grouped by street
// (spec §4.8): an actor, the betting-round phase it belongs to, a raw
// kind string (recognized action kinds plus the noise kinds SHOW, MUCK,
// COLLECT, SUMMARY), and a log amount whose interpretation depends on
// kind and is disambiguated at cursor time, never at parse time.
type LogEntry struct {
	ActorUID uint64
	Phase    holdem.Phase
	Kind     string
	Amount   int64
}

func entriesFromActions(seatByChair map[uint16]normalizedSeat, actions []normalizedAction) []LogEntry {
	out := make([]LogEntry, 0, len(actions))
	for _, a := range actions {
		out = append(out, LogEntry{
			ActorUID: seatByChair[a.chair].userID,
			Phase:    a.phase,
			Kind:     a.kindRaw,
			Amount:   a.amountTo,
		})
	}
	return out
}

// Adapter is a holdem.Provider that replays a fixed hand log instead of
// asking a live bot or human for a decision (spec §4.8). It maintains a
// cursor into the flattened, street-ordered action list and resolves
// bet/raise amount ambiguity and implicit check/fold injection exactly
// as the spec's step() contract mandates. The teacher never built this —
// its generate.go fed a HandSpec straight through one StartHand/Act
// sequence with no decision-provider indirection — this is new code,
// grounded in the teacher's normalizeSpec parsing and driven by the
// spec's adapter contract.
type Adapter struct {
	game    *holdem.Game
	entries []LogEntry
	cursor  int
}

// NewAdapter builds a replay adapter over entries, driving decisions
// through g (used only to append ReplayAmbiguous notes to its event log;
// the adapter never mutates g directly — Step/Act remain the only path).
func NewAdapter(g *holdem.Game, entries []LogEntry) *Adapter {
	return &Adapter{game: g, entries: append([]LogEntry{}, entries...)}
}

func (a *Adapter) ResetForNewHand() {
	a.cursor = 0
}

// HasDecisionFor always returns true: a replay adapter is the sole
// authority for every seat in the hand it is replaying.
func (a *Adapter) HasDecisionFor(playerID uint64) bool {
	return true
}

func (a *Adapter) GetDecision(playerID uint64, snap holdem.Snapshot) (*holdem.Action, bool) {
	for {
		if a.cursor >= len(a.entries) {
			return holdem.ImpliedAction(snap)
		}

		entry := a.entries[a.cursor]

		// A log entry pinned to an earlier street than the game has
		// already reached (e.g. a flop row still unconsumed once the
		// engine has moved on to the turn) can never be faithfully
		// applied; skip it the same way noise is skipped.
		if entry.Phase < snap.Phase {
			a.cursor++
			continue
		}

		if entry.ActorUID != playerID {
			if act, ok := holdem.ImpliedAction(snap); ok {
				return act, true
			}
			// No implied fallback and the log's next entry belongs to
			// someone else: nothing sound to hand back for this seat.
			return nil, false
		}

		if isNoiseKind(entry.Kind) {
			a.cursor++
			continue
		}

		a.cursor++
		return a.translate(entry, snap)
	}
}

func currentPlayer(snap holdem.Snapshot) (holdem.PlayerSnapshot, bool) {
	for _, ps := range snap.Players {
		if ps.Chair == snap.ActionChair {
			return ps, true
		}
	}
	return holdem.PlayerSnapshot{}, false
}

func (a *Adapter) translate(entry LogEntry, snap holdem.Snapshot) (*holdem.Action, bool) {
	kind, err := parseActionName(entry.Kind)
	if err != nil {
		a.game.Annotate("replay: " + err.Error())
		if act, ok := holdem.ImpliedAction(snap); ok {
			return act, true
		}
		return nil, false
	}

	player, ok := currentPlayer(snap)
	if !ok {
		return nil, false
	}
	payableTo := player.Stack + player.Bet

	switch kind {
	case holdem.ActionFold:
		return &holdem.Action{Kind: holdem.ActionFold}, true
	case holdem.ActionCheck:
		return &holdem.Action{Kind: holdem.ActionCheck}, true
	case holdem.ActionCall:
		return &holdem.Action{Kind: holdem.ActionCall}, true
	case holdem.ActionBet:
		if snap.CurBet == 0 {
			if entry.Amount == 0 {
				return &holdem.Action{Kind: holdem.ActionCheck}, true
			}
			return &holdem.Action{Kind: holdem.ActionBet, To: entry.Amount}, true
		}
		// Mislabelled raise: reconcile delta vs. total conventions the
		// same way a genuine Raise entry would be (spec §4.8 step 4).
		return a.resolveRaise(entry, snap, payableTo)
	case holdem.ActionRaise:
		return a.resolveRaise(entry, snap, payableTo)
	case holdem.ActionAllIn:
		to := payableTo
		if snap.CurBet > 0 {
			return &holdem.Action{Kind: holdem.ActionRaise, To: to}, true
		}
		return &holdem.Action{Kind: holdem.ActionBet, To: to}, true
	default:
		return nil, false
	}
}

// resolveRaise disambiguates a logged Bet(a) (mislabelled) or Raise(a)
// entry between the delta convention (T1 = current_bet + a) and the
// total convention (T2 = a), per spec §4.8 step 4: prefer whichever
// admissible candidate satisfies the minimum full-raise rule, breaking
// ties toward the total interpretation; fall back to a short all-in if
// payable at exactly the player's full stack; otherwise annotate the
// hand as ambiguous and fall back to a Call.
func (a *Adapter) resolveRaise(entry LogEntry, snap holdem.Snapshot, payableTo int64) (*holdem.Action, bool) {
	t1 := snap.CurBet + entry.Amount
	t2 := entry.Amount

	admissible := func(t int64) bool {
		return t > snap.CurBet && t <= payableTo
	}
	isFullRaise := func(t int64) bool {
		return t-snap.CurBet >= snap.MinRaiseDelta
	}

	var candidates []int64
	if admissible(t2) {
		candidates = append(candidates, t2)
	}
	if admissible(t1) && t1 != t2 {
		candidates = append(candidates, t1)
	}

	for _, t := range candidates {
		if isFullRaise(t) {
			return &holdem.Action{Kind: holdem.ActionRaise, To: t}, true
		}
	}
	for _, t := range candidates {
		if t == payableTo {
			return &holdem.Action{Kind: holdem.ActionAllIn, To: payableTo}, true
		}
	}

	// No candidate clears the minimum full-raise and none is an exact
	// short all-in: the log entry cannot be faithfully honored as a
	// raise. The nearest legal interpretation is a call of the existing
	// wager; the adapter's job ends at handing the engine something
	// legal, per spec §4.8's closing sentence.
	a.game.Annotate("replay: raise amount " + strconv.FormatInt(entry.Amount, 10) +
		" resolves to neither a full raise nor a short all-in; falling back to " + actionName(holdem.ActionCall))
	return &holdem.Action{Kind: holdem.ActionCall}, true
}
