package holdem

import "holdem-engine/card"

type PlayerSnapshot struct {
	PlayerID   uint64
	Name       string
	Chair      uint16
	Position   string
	Robot      bool
	Stack      int64
	Bet        int64
	Invested   int64
	Folded     bool
	AllIn      bool
	LastAction ActionKind
	HandCards  []card.Card
}

type PotSnapshot struct {
	Amount          int64
	EligiblePlayers []uint16
}

// Snapshot is a read-only, fully-copied view of the hand in progress
// (spec §6.2) — an observer can hold onto one without affecting or
// being affected by subsequent Act/Step calls.
type Snapshot struct {
	Round uint16
	Phase Phase
	Ended bool

	DealerChair     uint16
	SmallBlindChair uint16
	BigBlindChair   uint16
	ActionChair     uint16

	CurBet            int64
	MinRaiseDelta     int64
	NeedActionFrom    []uint16
	LastAggressor     uint16
	ReopenAvailable   bool
	LegalActionsOfNow []ActionKind

	CommunityCards []card.Card
	Pots           []PotSnapshot
	Players        []PlayerSnapshot
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Round:           g.round,
		Phase:           g.phase,
		Ended:           g.ended,
		DealerChair:     InvalidChair,
		SmallBlindChair: InvalidChair,
		BigBlindChair:   InvalidChair,
		ActionChair:     InvalidChair,
		CurBet:          g.curBet,
		MinRaiseDelta:   g.lastFullRaiseSize,
		LastAggressor:   g.lastAggressor,
		ReopenAvailable: g.reopenAvailable,
		CommunityCards:  append([]card.Card{}, g.communityCards...),
	}
	if g.dealerNode != nil {
		s.DealerChair = g.dealerNode.ChairID
	}
	if g.smallBlindNode != nil {
		s.SmallBlindChair = g.smallBlindNode.ChairID
	}
	if g.bigBlindNode != nil {
		s.BigBlindChair = g.bigBlindNode.ChairID
	}
	if g.curNode != nil {
		s.ActionChair = g.curNode.ChairID
		s.LegalActionsOfNow = g.calcNextValidActions(g.curNode.Player)
	}

	for chair := range g.needActionFrom {
		s.NeedActionFrom = append(s.NeedActionFrom, chair)
	}

	for _, chair := range g.chairOrder() {
		p := g.playersByChair[chair]
		s.Players = append(s.Players, PlayerSnapshot{
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			Chair:      p.Chair,
			Position:   p.position,
			Robot:      p.Robot,
			Stack:      p.stack,
			Bet:        p.bet,
			Invested:   p.totalInvested,
			Folded:     p.folded,
			AllIn:      p.allIn,
			LastAction: p.lastAction,
			HandCards:  append([]card.Card{}, p.handCards...),
		})
	}

	for _, pot := range buildPots(g.playersByChair, g.chairOrder()) {
		ps := PotSnapshot{Amount: pot.amount}
		for chair := range pot.eligible {
			ps.EligiblePlayers = append(ps.EligiblePlayers, chair)
		}
		s.Pots = append(s.Pots, ps)
	}

	return s
}
