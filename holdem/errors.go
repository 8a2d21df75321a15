package holdem

import "errors"

var (
	ErrHandEnded      = errors.New("hand already ended")
	ErrOutOfTurn      = errors.New("action out of turn")
	ErrHandInProgress = errors.New("hand already in progress")

	// ErrIllegalAction wraps any action rejected by the validator: wrong
	// kind for the current state, a to-amount that isn't a legal size, or
	// a seat that isn't the one on turn. Use errors.Is against this
	// sentinel; the wrapped error carries the specific reason.
	ErrIllegalAction = errors.New("illegal action")

	// ErrDecisionProviderFault is returned by Step after a Provider's
	// returned action is rejected as illegal stepMaxAttempts times in a
	// row for the seat on turn (each rejection is logged first as an
	// EventIllegalAction). A Provider that simply isn't ready yet (no
	// decision, not an illegal one) never reaches this path — Step
	// applies the implied Check-else-Fold for that case immediately.
	ErrDecisionProviderFault = errors.New("decision provider fault")

	// ErrDeckUnderflow means the stock pile ran out of cards mid-deal,
	// which can only happen with a malformed DeckOverride.
	ErrDeckUnderflow = errors.New("deck underflow")

	// ErrInvariantViolation guards state the engine itself should never
	// be able to reach; seeing it means a bug in the engine, not bad input.
	ErrInvariantViolation = errors.New("engine invariant violated")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }
