package replay

import (
	"holdem-engine/eval"
	"holdem-engine/holdem"
)

// NewReplayGame parses spec, constructs a Game seeded so its deal matches
// the log's hole cards and board exactly (spec §4.9), seats every spec'd
// player, and returns the game alongside an Adapter ready to drive it
// through Game.Step. The caller still owns the loop: call BeginHand, then
// Step repeatedly until it reports holdem.StepComplete.
func NewReplayGame(spec HandSpec) (*holdem.Game, *Adapter, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, nil, err
	}

	dealer := ns.dealerChair
	game, err := holdem.NewGame(holdem.Config{
		MaxPlayers:        int(ns.table.MaxPlayers),
		MinPlayers:        2,
		SmallBlind:        ns.table.SB,
		BigBlind:          ns.table.BB,
		Ante:              ns.table.Ante,
		Seed:              seedFromSpec(spec.RNG),
		ForcedDealerChair: &dealer,
		DeckOverride:      ns.deck,
	}, eval.New())
	if err != nil {
		return nil, nil, &ReplayError{StepIndex: -1, Reason: "engine_init_failed", Message: err.Error()}
	}

	for _, seat := range ns.seats {
		if err := game.SitDown(seat.chair, seat.userID, seat.name, seat.stack, false); err != nil {
			return nil, nil, &ReplayError{StepIndex: -1, Reason: "seat_init_failed", Message: err.Error()}
		}
	}

	adapter := NewAdapter(game, entriesFromActions(ns.seatByChair, ns.actions))
	return game, adapter, nil
}

// RunReplay drives a full hand to completion against spec and returns the
// final snapshot and settlement, satisfying the replay-faithfulness
// property L1: running this against a log produced by a completed hand
// reproduces the same final stacks, board, and winners.
func RunReplay(spec HandSpec) (holdem.Snapshot, *holdem.SettlementResult, error) {
	game, adapter, err := NewReplayGame(spec)
	if err != nil {
		return holdem.Snapshot{}, nil, err
	}
	if err := game.BeginHand(); err != nil {
		return holdem.Snapshot{}, nil, &ReplayError{StepIndex: -1, Reason: "begin_hand_failed", Message: err.Error()}
	}

	step := 0
	for {
		before := game.Snapshot()
		status, err := game.Step(adapter)
		if err != nil {
			return game.Snapshot(), nil, &ReplayError{
				StepIndex: int32(step),
				Reason:    "step_failed",
				Message:   err.Error(),
				Expected:  expectedStateForChair(game, before.ActionChair, before.Phase),
			}
		}
		if status == holdem.StepComplete {
			break
		}
		step++
	}
	return game.Snapshot(), game.Result(), nil
}

func expectedStateForChair(g *holdem.Game, chair uint16, phase holdem.Phase) *ExpectedState {
	actions, minRaiseTo, err := g.LegalActions(chair)
	if err != nil {
		return &ExpectedState{ActionChair: chair, Phase: phaseName(phase)}
	}
	snap := g.Snapshot()
	callAmount := int64(0)
	for _, ps := range snap.Players {
		if ps.Chair == chair {
			callAmount = snap.CurBet - ps.Bet
			if callAmount < 0 {
				callAmount = 0
			}
			break
		}
	}
	return &ExpectedState{
		ActionChair:  chair,
		LegalActions: actions,
		MinRaiseTo:   minRaiseTo,
		CallAmount:   callAmount,
		Phase:        phaseName(phase),
	}
}
