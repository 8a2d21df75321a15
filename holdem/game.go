package holdem

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"holdem-engine/card"
)

// Game is a single table's engine state. One Game drives one hand at a
// time; BeginHand resets the per-hand fields and deals a new one.
//
// mu exists to document the "exactly one writer" invariant (I7) at the
// type level and to let an observer goroutine call Snapshot safely while
// Step runs on another — a realistic embedding per spec §5's discussion
// of a UI adapter — even though this package itself is single-threaded.
type Game struct {
	cfg  Config
	eval Evaluator
	rng  *rand.Rand

	mu sync.Mutex

	playersByChair map[uint16]*Player
	chairIDNodes   map[uint16]*PlayerNode

	round          uint16
	phase          Phase
	communityCards card.CardList
	stockCards     card.CardList

	dealerNode     *PlayerNode
	smallBlindNode *PlayerNode
	bigBlindNode   *PlayerNode
	curNode        *PlayerNode

	activeCount int
	allinCount  int

	// Explicit round state (spec §3/§4.4).
	needActionFrom    map[uint16]struct{}
	lastFullRaiseSize int64
	lastAggressor     uint16
	reopenAvailable   bool

	curBet           int64
	lastPlayerAction ActionKind

	noShowDown bool
	ended      bool

	events         []Event
	lastSettlement *SettlementResult
}

// NewGame constructs an engine instance. evaluator is the external
// seven-card hand ranker (spec §1/§4.5) — the engine never builds its
// own, it only ever calls into this collaborator.
func NewGame(cfg Config, evaluator Evaluator) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator must not be nil")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:            cfg,
		eval:           evaluator,
		rng:            rand.New(rand.NewSource(seed)),
		playersByChair: make(map[uint16]*Player, cfg.MaxPlayers),
		chairIDNodes:   make(map[uint16]*PlayerNode, cfg.MaxPlayers),
		phase:          PhaseAnte,
		lastAggressor:  InvalidChair,
	}
	return g, nil
}

// SitDown seats a player with an initial stack.
func (g *Game) SitDown(chair uint16, playerID uint64, name string, stack int64, robot bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if chair >= uint16(g.cfg.MaxPlayers) {
		return fmt.Errorf("invalid chair %d", chair)
	}
	if stack < 0 {
		return fmt.Errorf("stack must be >= 0")
	}
	if g.playersByChair[chair] != nil {
		return fmt.Errorf("chair %d already occupied", chair)
	}
	g.playersByChair[chair] = &Player{
		PlayerID: playerID,
		Name:     name,
		Chair:    chair,
		Robot:    robot,
		stack:    stack,
	}
	return nil
}

// StandUp removes a player from a chair between hands.
func (g *Game) StandUp(chair uint16) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if chair >= uint16(g.cfg.MaxPlayers) {
		return fmt.Errorf("invalid chair %d", chair)
	}
	if g.playersByChair[chair] == nil {
		return fmt.Errorf("chair %d is empty", chair)
	}
	// Keep gameplay state deterministic: no seat mutation during an active hand.
	if g.round > 0 && !g.ended {
		return ErrHandInProgress
	}

	delete(g.playersByChair, chair)
	delete(g.chairIDNodes, chair)

	if g.dealerNode != nil && g.dealerNode.ChairID == chair {
		g.dealerNode = nil
	}
	if g.smallBlindNode != nil && g.smallBlindNode.ChairID == chair {
		g.smallBlindNode = nil
	}
	if g.bigBlindNode != nil && g.bigBlindNode.ChairID == chair {
		g.bigBlindNode = nil
	}
	if g.curNode != nil && g.curNode.ChairID == chair {
		g.curNode = nil
	}

	return nil
}

func (g *Game) Player(chair uint16) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playersByChair[chair]
}

// chairOrder returns occupied chairs in ascending order, a stable
// iteration order used anywhere seat order (not ring order) matters.
func (g *Game) chairOrder() []uint16 {
	out := make([]uint16, 0, len(g.playersByChair))
	for chair := range g.playersByChair {
		out = append(out, chair)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BeginHand starts a new hand (spec §4.6's BeginHand operation).
func (g *Game) BeginHand() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ended = false
	g.lastSettlement = nil
	g.noShowDown = false
	g.communityCards = nil
	g.events = nil

	active := make([]*Player, 0, g.cfg.MaxPlayers)
	for _, chair := range g.chairOrder() {
		p := g.playersByChair[chair]
		if p.stack <= 0 {
			// A busted seat sits the hand out: drop any hole cards left
			// over from an earlier hand so it can never show down.
			p.handCards = nil
			continue
		}
		p.ResetForNewHand()
		active = append(active, p)
	}
	if len(active) < g.cfg.MinPlayers {
		return fmt.Errorf("not enough players: %d < %d", len(active), g.cfg.MinPlayers)
	}

	g.round++

	g.activeCount = len(active)
	g.allinCount = 0
	g.curBet = 0
	g.lastFullRaiseSize = 0
	g.lastAggressor = InvalidChair
	g.reopenAvailable = true
	g.lastPlayerAction = ActionNone

	// Rebuild the seating ring in chair order.
	g.chairIDNodes = make(map[uint16]*PlayerNode, len(active))
	var first, last *PlayerNode
	for _, chair := range g.chairOrder() {
		p := g.playersByChair[chair]
		if p.stack <= 0 {
			continue
		}
		node := &PlayerNode{ChairID: chair, Player: p}
		g.chairIDNodes[chair] = node
		if first == nil {
			first = node
		}
		if last != nil {
			last.Next = node
		}
		last = node
	}
	if first != nil && last != nil {
		last.Next = first
	}

	if g.cfg.ForcedDealerChair != nil {
		if _, ok := g.chairIDNodes[*g.cfg.ForcedDealerChair]; !ok {
			return fmt.Errorf("forced dealer chair %d is not an active seat", *g.cfg.ForcedDealerChair)
		}
	}

	g.shuffle()
	g.selectDealer()
	g.assignPositions()
	g.selectBlindsByDealer(g.dealerNode)
	g.dealHoleCards()

	g.phase = PhaseAnte
	if g.autoBetAntes() {
		if err := g.advanceToShowdownLocked(); err != nil {
			return err
		}
		_, err := g.endHandLocked()
		return err
	}

	if g.autoBetBlinds() {
		if err := g.advanceToShowdownLocked(); err != nil {
			return err
		}
		_, err := g.endHandLocked()
		return err
	}

	// Skip seats that are already all-in from blinds/antes.
	g.curNode = g.curNode.WalkOnce(func(cur *PlayerNode) bool {
		return cur.Player.stack > 0 && !cur.Player.folded
	})

	g.phase = PhasePreflop
	g.onPhaseStartLocked()
	return nil
}

// assignPositions labels seats BTN/SB/BB/UTG.../CO for display; purely
// informational, the validator never reads Player.position.
func (g *Game) assignPositions() {
	if g.dealerNode == nil {
		return
	}
	n := len(g.chairIDNodes)
	labels := positionLabels(n)
	cur := g.dealerNode
	for i := 0; i < n; i++ {
		if i < len(labels) {
			cur.Player.position = labels[i]
		}
		cur = cur.Next
	}
}

func positionLabels(n int) []string {
	switch {
	case n <= 1:
		return []string{"BTN"}
	case n == 2:
		return []string{"BTN/SB", "BB"}
	case n == 3:
		return []string{"BTN", "SB", "BB"}
	default:
		labels := []string{"BTN", "SB", "BB", "UTG"}
		for len(labels) < n {
			if len(labels) == n-1 {
				labels = append(labels, "CO")
			} else {
				labels = append(labels, "MP")
			}
		}
		return labels
	}
}

// LegalActions is a pure projection of current state for chair.
func (g *Game) LegalActions(chair uint16) ([]ActionKind, int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ended {
		return nil, 0, ErrHandEnded
	}
	p := g.playersByChair[chair]
	if p == nil {
		return nil, 0, fmt.Errorf("player not found")
	}
	acts := g.calcNextValidActions(p)
	minTotalRaiseTo := g.curBet + g.lastFullRaiseSize
	if g.lastPlayerAction == ActionNone || g.lastPlayerAction == ActionCheck {
		minTotalRaiseTo = g.cfg.BigBlind
	}
	return acts, minTotalRaiseTo, nil
}

// Act applies a decision for the seat currently on turn. action.To is
// the to-amount (the seat's target total commitment for the street) for
// Bet/Raise, and is ignored for Fold/Check/Call/AllIn (AllIn always
// commits the seat's whole remaining stack) — legality is
// checked as a pure function of the proposed total, with no silent
// amount coercion (spec §4.3).
func (g *Game) Act(chair uint16, action Action) (handEnd *SettlementResult, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ended {
		return nil, ErrHandEnded
	}
	if g.curNode == nil || g.curNode.Player == nil {
		return nil, ErrInvalidState("no current player")
	}
	if chair != g.curNode.ChairID {
		return nil, fmt.Errorf("%w: expected chair %d", ErrOutOfTurn, g.curNode.ChairID)
	}

	player := g.curNode.Player
	kind := action.Kind
	to := action.To

	legal := g.calcNextValidActions(player)
	valid := false
	for _, a := range legal {
		if a == kind {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: %s not legal for chair %d", ErrIllegalAction, kind, chair)
	}

	switch kind {
	case ActionCheck:
		// no amount involved
	case ActionFold:
		// no amount involved
	case ActionCall:
		to = g.curBet
		if available := player.stack + player.bet; available < to {
			to = available
		}
	case ActionBet:
		if to-player.bet < g.cfg.BigBlind && to < player.stack+player.bet {
			return nil, fmt.Errorf("%w: bet %d below minimum %d", ErrIllegalAction, to, g.cfg.BigBlind)
		}
	case ActionRaise:
		if to-g.curBet < g.lastFullRaiseSize && to < player.stack+player.bet {
			return nil, fmt.Errorf("%w: raise to %d below minimum", ErrIllegalAction, to)
		}
	case ActionAllIn:
		to = player.stack + player.bet
	}

	if to > player.stack+player.bet {
		return nil, fmt.Errorf("%w: amount %d exceeds available %d", ErrIllegalAction, to, player.stack+player.bet)
	}

	wasAllIn := to == player.stack+player.bet && to > player.bet
	if wasAllIn {
		kind = ActionAllIn
	}

	if to > g.curBet {
		delta := to - g.curBet
		if delta >= g.lastFullRaiseSize || g.lastFullRaiseSize == 0 {
			g.lastFullRaiseSize = delta
			g.reopenAvailable = true
		} else {
			// Short all-in raise: action doesn't reopen for the rest of
			// the street (spec's centralized reopen handling, §4.3/§9).
			g.reopenAvailable = false
		}
		g.lastAggressor = chair
		g.curBet = to
		g.resetNeedActionFromLocked(chair)
	} else {
		delete(g.needActionFrom, chair)
	}

	player.setLastAction(kind)
	if kind != ActionFold {
		g.lastPlayerAction = kind
	}
	switch kind {
	case ActionBet, ActionRaise, ActionAllIn:
		player.placeBet(to - player.bet)
		if player.allIn {
			g.allinCount++
		}
	case ActionCall:
		player.placeBet(to - player.bet)
		if player.allIn {
			g.allinCount++
		}
	case ActionCheck:
		// no-op
	case ActionFold:
		player.setFolded(true)
		delete(g.needActionFrom, chair)
		g.activeCount--
	}

	g.emit(Event{Kind: EventActionApplied, Chair: chair, Action: Action{Kind: kind, To: to}})

	if kind == ActionFold && g.activeCount <= 1 {
		g.noShowDown = true
		return g.endHandLocked()
	}

	nextNode, bettingEnd := g.calcNextActionPosAndBettingEndLocked()
	g.curNode = nextNode

	if bettingEnd {
		g.collectBetsLocked()
		g.emit(Event{Kind: EventBetsCommitted})

		if g.checkDirectShowdownLocked() || g.phase == PhaseRiver {
			if err := g.advanceToShowdownLocked(); err != nil {
				return nil, err
			}
			return g.endHandLocked()
		}

		g.phase++
		g.dealCommunityCardsLocked()
		g.emit(Event{Kind: EventStreetAdvanced})
		g.onPhaseStartLocked()
		return nil, nil
	}

	if g.curNode == nil || g.curNode.Player == nil {
		return nil, ErrInvalidState("next player not found")
	}
	return nil, nil
}

// onPhaseStartLocked seeds need_action_from and betting state for the
// street that just began (spec §4.4).
func (g *Game) onPhaseStartLocked() {
	g.needActionFrom = make(map[uint16]struct{})
	for chair, node := range g.chairIDNodes {
		p := node.Player
		if p.folded || p.stack <= 0 {
			continue
		}
		g.needActionFrom[chair] = struct{}{}
	}
	g.lastAggressor = InvalidChair
	g.reopenAvailable = true
	for _, p := range g.playersByChair {
		if p != nil {
			p.setLastAction(ActionNone)
		}
	}

	switch g.phase {
	case PhasePreflop:
		// Blinds are a bet already on the table; the BB retains its
		// option to act even though its current bet equals curBet
		// (spec §8 Scenario F) — need_action_from was seeded above with
		// every non-folded, non-busted seat, BB included.
		g.lastPlayerAction = ActionBet
	default:
		g.lastPlayerAction = ActionNone
		g.lastFullRaiseSize = g.cfg.BigBlind
	}
}

func (g *Game) resetNeedActionFromLocked(raiser uint16) {
	g.needActionFrom = make(map[uint16]struct{})
	for chair, node := range g.chairIDNodes {
		p := node.Player
		if chair == raiser || p.folded || p.stack <= 0 {
			continue
		}
		g.needActionFrom[chair] = struct{}{}
	}
}

func (g *Game) shuffle() {
	cards := make([]card.Card, len(HoldemCards))
	copy(cards, HoldemCards)
	if len(g.cfg.DeckOverride) == len(HoldemCards) {
		copy(cards, g.cfg.DeckOverride)
	} else {
		g.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	}
	g.stockCards.Init(cards)
}

func (g *Game) selectDealer() {
	nodes := make([]*PlayerNode, 0, len(g.chairIDNodes))
	for _, n := range g.chairIDNodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ChairID < nodes[j].ChairID })
	if len(nodes) == 0 {
		g.dealerNode = nil
		return
	}

	if g.cfg.ForcedDealerChair != nil {
		if n, ok := g.chairIDNodes[*g.cfg.ForcedDealerChair]; ok {
			g.dealerNode = n
			return
		}
	}

	if g.round == 1 || g.dealerNode == nil {
		g.dealerNode = nodes[g.rng.Intn(len(nodes))]
		return
	}

	prevChair := g.dealerNode.ChairID
	if prevNode, ok := g.chairIDNodes[prevChair]; ok && prevNode.Next != nil {
		g.dealerNode = prevNode.Next
		return
	}

	g.dealerNode = nodes[g.rng.Intn(len(nodes))]
}

func (g *Game) selectBlindsByDealer(dealer *PlayerNode) {
	if dealer == nil {
		return
	}
	if g.activeCount == 2 {
		g.dealerNode = dealer
		g.smallBlindNode = dealer
		g.bigBlindNode = dealer.Next
		g.curNode = dealer
	} else {
		g.dealerNode = dealer
		g.smallBlindNode = dealer.Next
		g.bigBlindNode = g.smallBlindNode.Next
		g.curNode = g.bigBlindNode.Next
	}
}

func (g *Game) dealHoleCards() {
	if g.smallBlindNode == nil {
		return
	}
	for i := 0; i < 2; i++ {
		g.smallBlindNode.WalkAll(func(cur *PlayerNode) {
			cards, ok := g.stockCards.PopCards(1)
			if !ok {
				panic(ErrDeckUnderflow)
			}
			cur.Player.AddHandCard(cards...)
		})
	}
}

func (g *Game) dealCommunityCardsLocked() {
	shouldDeal := 0
	switch g.phase {
	case PhaseFlop:
		shouldDeal = 3
	case PhaseTurn, PhaseRiver:
		shouldDeal = 1
	case PhaseShowdown:
		shouldDeal = 5 - len(g.communityCards)
	}
	if shouldDeal <= 0 {
		return
	}
	if cards, ok := g.stockCards.PopCards(shouldDeal); ok {
		g.communityCards = append(g.communityCards, cards...)
	}
}

func (g *Game) autoBetAntes() bool {
	if g.cfg.Ante == 0 {
		return false
	}
	notAllIn := 0
	for _, p := range g.playersByChair {
		if p == nil || p.stack <= 0 {
			continue
		}
		p.placeBet(g.cfg.Ante)
		if p.stack > 0 {
			notAllIn++
		}
	}
	g.allinCount = g.activeCount - notAllIn
	g.collectBetsLocked()
	return notAllIn <= 1
}

func (g *Game) autoBetBlinds() bool {
	if g.smallBlindNode != nil && g.smallBlindNode.Player.stack > 0 && g.cfg.SmallBlind > 0 {
		g.smallBlindNode.Player.placeBet(g.cfg.SmallBlind)
		if g.smallBlindNode.Player.stack <= 0 {
			g.allinCount++
		}
	}
	if g.bigBlindNode != nil && g.bigBlindNode.Player.stack > 0 {
		g.bigBlindNode.Player.placeBet(g.cfg.BigBlind)
		if g.bigBlindNode.Player.stack <= 0 {
			g.allinCount++
		}
	}

	if g.activeCount == g.allinCount {
		return true
	}

	g.lastPlayerAction = ActionBet
	g.lastFullRaiseSize = g.cfg.BigBlind
	g.curBet = g.cfg.BigBlind
	if g.bigBlindNode != nil {
		g.lastAggressor = g.bigBlindNode.ChairID
	}
	return false
}

func (g *Game) collectBetsLocked() {
	for _, p := range g.playersByChair {
		if p != nil {
			p.resetBet()
		}
	}
	g.curBet = 0
}

// calcNextValidActions is a pure function of current state: no mutation.
func (g *Game) calcNextValidActions(nextPlayer *Player) []ActionKind {
	nextValid := []ActionKind{ActionAllIn, ActionFold}

	switch g.lastPlayerAction {
	case ActionCheck, ActionNone:
		nextValid = append(nextValid, ActionCheck)
		if nextPlayer.stack > g.cfg.BigBlind {
			nextValid = append(nextValid, ActionBet)
		}

	case ActionBet, ActionRaise, ActionAllIn, ActionCall:
		available := nextPlayer.stack + nextPlayer.bet
		canCall := false

		if nextPlayer.bet == g.curBet {
			nextValid = append(nextValid, ActionCheck)
		} else if available > g.curBet {
			nextValid = append(nextValid, ActionCall)
			canCall = true
		}

		canRaise := available > g.curBet+g.lastFullRaiseSize
		isReopen := g.reopenAvailable && g.lastAggressor != nextPlayer.ChairID()
		if canRaise && isReopen && g.activeCount-g.allinCount > 1 {
			nextValid = append(nextValid, ActionRaise)
		}

		if (canCall && g.activeCount-g.allinCount <= 1) || (canRaise && !isReopen) {
			if len(nextValid) > 0 {
				nextValid = nextValid[1:]
			}
		}
	}
	return nextValid
}

func (g *Game) calcNextActionPosAndBettingEndLocked() (*PlayerNode, bool) {
	if len(g.needActionFrom) == 0 {
		if g.phase == PhaseRiver {
			return nil, true
		}
		var first *PlayerNode
		if len(g.chairIDNodes) == 2 {
			first = g.bigBlindNode
		} else {
			first = g.smallBlindNode
		}
		if first == nil {
			return nil, true
		}
		node := first.WalkOnce(func(n *PlayerNode) bool {
			return n.Player != nil && !n.Player.folded && n.Player.stack > 0
		})
		return node, true
	}

	nextNode := g.curNode.Next.WalkOnce(func(n *PlayerNode) bool {
		return n.Player != nil && !n.Player.folded && n.Player.stack > 0
	})
	if nextNode != nil {
		if nextNode.Player.bet >= g.curBet && len(g.needActionFrom) == 1 && g.activeCount-g.allinCount == 1 {
			return nextNode, true
		}
		return nextNode, false
	}
	return nil, true
}

func (g *Game) checkDirectShowdownLocked() bool {
	return g.allinCount >= g.activeCount-1
}

func (g *Game) advanceToShowdownLocked() error {
	g.phase = PhaseShowdown
	g.dealCommunityCardsLocked()
	return nil
}

func (g *Game) endHandLocked() (*SettlementResult, error) {
	g.phase = PhaseRoundEnd
	settle, err := g.SettleShowdown()
	if err != nil {
		return nil, err
	}
	g.lastSettlement = settle
	g.ended = true
	g.emit(Event{Kind: EventShowdownResolved, Settlement: settle})
	g.emit(Event{Kind: EventHandEnded, Settlement: settle})
	return settle, nil
}
