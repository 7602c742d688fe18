package truco

import "errors"

// All validation errors are recoverable: an action that fails validation never
// mutates state and is reported only to the acting caller.
var (
	// ErrNotYourTurn is returned for an action from a player whose turn has not
	// arrived, or while a pending call blocks play.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrInvalidCallSequence is returned when a call level is not reachable from
	// the ladder's current state.
	ErrInvalidCallSequence = errors.New("invalid call sequence")

	// ErrUnauthorizedCaller is returned when the actor is not entitled to speak
	// for their team on this ladder, or tries to re-raise their own pending call.
	ErrUnauthorizedCaller = errors.New("unauthorized caller")

	// ErrNoActiveCall is returned for a response with no pending call.
	ErrNoActiveCall = errors.New("no active call to respond to")

	// ErrCardNotInHand is returned when a play references a card the player no
	// longer holds.
	ErrCardNotInHand = errors.New("card not in hand")

	// ErrInvalidDeclaration is returned when a declared envido value does not
	// match the declaring team's cards.
	ErrInvalidDeclaration = errors.New("declared envido points do not match the hand")

	// ErrInsufficientCards indicates deck exhaustion during a deal. This is a
	// deck-construction bug and is fatal for the affected hand.
	ErrInsufficientCards = errors.New("insufficient cards in deck")

	// ErrGameIsEnded is returned for any action after the match has resolved.
	ErrGameIsEnded = errors.New("game is ended")
)
