package holdem

import "sort"

// pot is one layer of the layered-ceiling side-pot structure (spec §4.5):
// every seat that contributed at least up to this layer's ceiling put
// amount/len(contributors) into it; eligible holds only the
// contributors who didn't fold, i.e. who can actually win it.
type pot struct {
	amount   int64
	eligible map[uint16]struct{}
}

// buildPots constructs every pot layer from each seat's cumulative
// totalInvested, in the fixed chair order given by order. Unlike the
// teacher's per-street incremental builder, this runs exactly once, at
// showdown or hand end, directly off the whole-hand contribution table —
// so a seat that folded after committing to an earlier street still
// contributes its chips to any layer its investment reaches, just
// without eligibility to win it. A layer that only one seat reached
// (an uncalled bet) still appears here with a single eligible seat,
// which is exactly the "refund the uncalled portion" case.
func buildPots(players map[uint16]*Player, order []uint16) []pot {
	type contribution struct {
		chair    uint16
		invested int64
		folded   bool
	}
	contributions := make([]contribution, 0, len(order))
	for _, chair := range order {
		p := players[chair]
		if p == nil || p.totalInvested <= 0 {
			continue
		}
		contributions = append(contributions, contribution{chair: chair, invested: p.totalInvested, folded: p.folded})
	}
	sort.Slice(contributions, func(i, j int) bool { return contributions[i].invested < contributions[j].invested })

	var pots []pot
	var prevLevel int64
	for i, c := range contributions {
		if c.invested <= prevLevel {
			continue
		}
		level := c.invested
		perHead := level - prevLevel
		layer := pot{eligible: make(map[uint16]struct{})}
		for j := i; j < len(contributions); j++ {
			layer.amount += perHead
			if !contributions[j].folded {
				layer.eligible[contributions[j].chair] = struct{}{}
			}
		}
		if layer.amount > 0 {
			pots = append(pots, layer)
		}
		prevLevel = level
	}
	return pots
}
