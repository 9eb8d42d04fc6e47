package jass

import "errors"

// InvalidStateError reports an operation that the game state machine
// cannot accept right now, e.g. playing into a finished match.
type InvalidStateError string

func (e InvalidStateError) Error() string {
	return "invalid game state: " + string(e)
}

var (
	// ErrMatchEnded is returned by PlayRound once the end condition of
	// the match has been reached.
	ErrMatchEnded = InvalidStateError("match already ended")

	// ErrIllegalCard reports a card answer that is not in the legal set
	// for the pending trick. Player adapters validate before answering,
	// so seeing this from the engine means a broken adapter or bot.
	ErrIllegalCard = errors.New("card is not a legal play")

	// ErrGuessOutOfRange reports a score guess outside [0, 157].
	ErrGuessOutOfRange = errors.New("score guess out of range")

	// ErrNotInHand reports removal of a card the hand does not hold.
	ErrNotInHand = errors.New("card not in hand")
)
