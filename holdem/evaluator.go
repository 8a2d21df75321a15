package holdem

import "holdem-engine/card"

// HandResult is the outcome of ranking a seat's best five-card hand.
// Rank follows the evaluator's own convention (for the chehsunliu/poker
// backend this module ships with, lower is better: 1 is the royal
// flush, 7462 is 7-high). Callers compare Rank directly; Class is for
// display only.
type HandResult struct {
	Class HandClass
	Rank  int32
	Best  card.CardList
}

// Evaluator ranks the best five-card hand out of seven cards (two hole
// cards plus the five-card board). The spec treats this as an external,
// pure, re-entrant collaborator (§1, §4.5) — the engine never reaches
// into its internals, only compares the Rank it returns.
type Evaluator interface {
	EvalBestOf7(cards card.CardList) (HandResult, error)
}
