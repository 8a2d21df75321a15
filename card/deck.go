package card

import (
	"fmt"
	"math/rand"
)

// FullDeck returns the 52-card universe in a fixed, canonical order
// (spades A..K, hearts A..K, clubs A..K, diamonds A..K).
func FullDeck() []Card {
	out := make([]Card, 0, 52)
	for _, suitBase := range []Card{0x00, 0x10, 0x20, 0x30} {
		for rank := Card(1); rank <= 13; rank++ {
			out = append(out, suitBase+rank)
		}
	}
	return out
}

// NewShuffledDeck returns a full 52-card deck in random order. A nil rng
// falls back to the package-level math/rand source (non-deterministic).
func NewShuffledDeck(rng *rand.Rand) CardList {
	var deck CardList
	deck.Init(FullDeck())
	if rng != nil {
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	} else {
		deck.Shuffle()
	}
	return deck
}

// NewPrefixedDeck places prefix at the front, in order, and fills the
// remainder with the complement of prefix shuffled by seed (seed == 0
// leaves the remainder in canonical order, which is fine for tests that
// don't care about the post-prefix tail).
func NewPrefixedDeck(prefix []Card, seed int64) (CardList, error) {
	universe := FullDeck()
	used := make(map[Card]struct{}, len(prefix))
	for i, c := range prefix {
		if _, dup := used[c]; dup {
			return nil, fmt.Errorf("prefixed deck: duplicate card at index %d: %s", i, c)
		}
		used[c] = struct{}{}
	}
	remainder := make([]Card, 0, len(universe)-len(prefix))
	for _, c := range universe {
		if _, ok := used[c]; ok {
			continue
		}
		remainder = append(remainder, c)
	}
	if seed != 0 {
		r := rand.New(rand.NewSource(seed))
		r.Shuffle(len(remainder), func(i, j int) { remainder[i], remainder[j] = remainder[j], remainder[i] })
	}

	var out CardList
	out.Add(prefix...)
	out.Add(remainder...)
	return out, nil
}
