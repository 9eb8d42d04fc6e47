package jass

import (
	"context"
	"fmt"

	"jass-lite/card"
)

// TrumpChoice is one option in a trump selection round: a concrete
// order, or Schieb to pass the decision to the partner.
type TrumpChoice struct {
	Trump  Trump
	Schieb bool
}

func (tc TrumpChoice) String() string {
	if tc.Schieb {
		return "schieb"
	}
	return tc.Trump.String()
}

// Player answers the four decisions the engine asks for. The engine
// blocks on these calls, so implementations decide how long a decision
// may take and what happens on timeout. A returned error aborts the
// match.
type Player interface {
	Name() string

	// ChooseCard picks one card out of legal. Answers outside legal
	// abort the match, adapters must validate before returning.
	ChooseCard(ctx context.Context, legal card.CardList) (card.Card, error)

	// ChooseTrump picks one of the offered options for the given hand.
	ChooseTrump(ctx context.Context, hand card.CardList, options []TrumpChoice) (TrumpChoice, error)

	// GuessScore predicts the round score of the given hand, min..max
	// inclusive.
	GuessScore(ctx context.Context, hand card.CardList, min, max int) (int, error)

	// DecideWyys accepts or declines revealing the offered meld.
	DecideWyys(ctx context.Context, offer Wyys) (bool, error)
}

// StateSink receives game state pushes. Seat players that implement it
// are wired up automatically, spectators attach via AddSpectator.
type StateSink interface {
	PushState(state GameState)
}

// HandObserver is notified of the own fresh hand after each deal. Seat
// players that implement it are wired up automatically; remote player
// adapters use it to mirror the hand to their client.
type HandObserver interface {
	ObserveHand(seat int, hand card.CardList)
}

// Seat is the per-chair game state: the player behind it, its hand and
// its scores.
type Seat struct {
	Index      int
	Player     Player
	Hand       *Hand
	Guess      int
	RoundScore int
	Total      int
	TricksWon  int
	Wyyses     []Wyys
}

func (s *Seat) resetForRound(hand []card.Card) {
	s.Hand = NewHand(hand)
	s.Guess = 0
	s.RoundScore = 0
	s.TricksWon = 0
	s.Wyyses = nil
}

func (s *Seat) String() string {
	return fmt.Sprintf("seat %d (%s)", s.Index, s.Player.Name())
}
