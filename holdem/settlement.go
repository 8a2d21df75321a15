package holdem

import (
	"sort"

	"holdem-engine/card"
)

type ShowdownPlayerResult struct {
	Chair         uint16
	HandClass     HandClass
	HandRank      int32
	HandCards     []card.Card // 2 hole cards
	BestFiveCards []card.Card
	AllCards      []card.Card // hole + board, 7 cards
	IsWinner      bool
	WinAmount     int64
}

type PotResult struct {
	Amount     int64
	Winners    []uint16
	WinAmounts []int64
}

type SettlementResult struct {
	PlayerResults []ShowdownPlayerResult
	PotResults    []PotResult
}

// SettleShowdown must be called once communityCards has been filled to
// five cards (or the hand ended via fold-out, in which case the board
// may be incomplete and is irrelevant).
func (g *Game) SettleShowdown() (*SettlementResult, error) {
	if g.noShowDown {
		return g.settleNoShowdown()
	}
	return g.settleByEval()
}

// clockwiseFromSB returns chairs in seating order starting at the small
// blind, the ordering the low-seat remainder rule (spec §4.5) assigns
// odd chips against.
func (g *Game) clockwiseFromSB() []uint16 {
	start := g.smallBlindNode
	if start == nil {
		start = g.dealerNode
	}
	if start == nil {
		return nil
	}
	var order []uint16
	start.WalkAll(func(n *PlayerNode) {
		order = append(order, n.ChairID)
	})
	return order
}

func (g *Game) settleByEval() (*SettlementResult, error) {
	results := make(map[uint16]*ShowdownPlayerResult, len(g.playersByChair))
	for chair, p := range g.playersByChair {
		// Only seats actually dealt into this hand can show down.
		if p == nil || p.folded || len(p.HandCards()) != 2 {
			continue
		}
		all := make(card.CardList, 0, 7)
		all = append(all, p.HandCards()...)
		all = append(all, g.communityCards...)
		if len(all) != 7 {
			return nil, ErrInvalidState("need 7 cards to evaluate")
		}
		hr, err := g.eval.EvalBestOf7(all)
		if err != nil {
			return nil, err
		}
		results[chair] = &ShowdownPlayerResult{
			Chair:         chair,
			HandClass:     hr.Class,
			HandRank:      hr.Rank,
			HandCards:     append([]card.Card{}, p.HandCards()...),
			BestFiveCards: append([]card.Card{}, hr.Best...),
			AllCards:      append([]card.Card{}, all...),
		}
	}

	order := g.clockwiseFromSB()
	pots := buildPots(g.playersByChair, g.chairOrder())
	seatRank := make(map[uint16]int, len(order))
	for i, chair := range order {
		seatRank[chair] = i
	}

	out := &SettlementResult{
		PotResults: make([]PotResult, 0, len(pots)),
	}

	for _, p := range pots {
		chairs := make([]uint16, 0, len(p.eligible))
		for chair := range p.eligible {
			chairs = append(chairs, chair)
		}
		sort.Slice(chairs, func(i, j int) bool { return chairs[i] < chairs[j] })

		if len(chairs) == 0 || p.amount <= 0 {
			out.PotResults = append(out.PotResults, PotResult{Amount: p.amount})
			continue
		}

		// Lower Rank wins (chehsunliu convention: 1 is best).
		winners := []uint16{chairs[0]}
		for _, ch := range chairs[1:] {
			cur := results[ch]
			if cur == nil {
				continue
			}
			best := results[winners[0]]
			switch {
			case best == nil || cur.HandRank < best.HandRank:
				winners = []uint16{ch}
			case cur.HandRank == best.HandRank:
				winners = append(winners, ch)
			}
		}

		// Low-seat-from-SB remainder rule: order tied winners clockwise
		// from the SB, give the base share to everyone, then hand odd
		// chips out one at a time starting from the winner nearest
		// clockwise from the SB.
		sort.Slice(winners, func(i, j int) bool { return seatRank[winners[i]] < seatRank[winners[j]] })

		share := p.amount / int64(len(winners))
		remainder := p.amount % int64(len(winners))

		pr := PotResult{Amount: p.amount, Winners: append([]uint16{}, winners...)}
		for i, w := range winners {
			amt := share
			if int64(i) < remainder {
				amt++
			}
			pr.WinAmounts = append(pr.WinAmounts, amt)
			if pl := g.playersByChair[w]; pl != nil {
				pl.addStack(amt)
			}
			if r := results[w]; r != nil {
				r.IsWinner = true
				r.WinAmount += amt
			}
		}
		out.PotResults = append(out.PotResults, pr)
	}

	for _, r := range results {
		out.PlayerResults = append(out.PlayerResults, *r)
	}
	sort.Slice(out.PlayerResults, func(i, j int) bool { return out.PlayerResults[i].Chair < out.PlayerResults[j].Chair })

	for _, p := range g.playersByChair {
		if p != nil {
			p.resetBet()
		}
	}
	return out, nil
}

func (g *Game) settleNoShowdown() (*SettlementResult, error) {
	var winner *Player
	for _, p := range g.playersByChair {
		if p != nil && !p.folded {
			winner = p
			break
		}
	}
	if winner == nil {
		return nil, ErrInvalidState("no winner in no-showdown state")
	}

	var total int64
	for _, p := range g.playersByChair {
		if p != nil {
			total += p.totalInvested
		}
	}

	winner.addStack(total)
	for _, p := range g.playersByChair {
		if p != nil {
			p.resetBet()
		}
	}

	return &SettlementResult{
		PlayerResults: []ShowdownPlayerResult{{
			Chair:     winner.ChairID(),
			IsWinner:  true,
			WinAmount: total,
		}},
		PotResults: []PotResult{{
			Amount:     total,
			Winners:    []uint16{winner.ChairID()},
			WinAmounts: []int64{total},
		}},
	}, nil
}
