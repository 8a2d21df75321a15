package card

import "math/rand"

// CardList is an ordered pile of cards: a deck, a discard stack, or a
// player's hole cards. Add appends at the tail; PopCards deals from the
// front and PopCard takes from the tail.
type CardList []Card

func (ds *CardList) Init(cards []Card) {
	*ds = make([]Card, len(cards))
	copy(*ds, cards)
}

func (ds CardList) Count() int {
	return len(ds)
}

func (ds CardList) CardsBytes() []byte {
	return Cards2bytes(ds)
}

func (ds CardList) Shuffle() {
	rand.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

func (ds *CardList) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

// PopCard removes and returns the last card, or CardInvalid if empty.
func (ds *CardList) PopCard() Card {
	n := ds.Count()
	if n == 0 {
		return CardInvalid
	}
	top := (*ds)[n-1]
	*ds = (*ds)[:n-1]
	return top
}

// PopCards removes and returns the first size cards, false if there
// aren't enough left.
func (ds *CardList) PopCards(size int) ([]Card, bool) {
	if size > ds.Count() {
		return nil, false
	}
	cards := make([]Card, size)
	copy(cards, (*ds)[:size])
	*ds = (*ds)[size:]
	return cards, true
}
