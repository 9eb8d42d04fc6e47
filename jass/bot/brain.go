package bot

import (
	"jass-lite/card"
	"jass-lite/jass"
)

// GameView is a read-only projection of the table visible to the bot
// when it is asked for a card.
type GameView struct {
	Trump jass.Trump
	Plays []jass.PlayView
	Legal card.CardList
	Hand  card.CardList
}

// Decider is the core interface all bot brains implement. Answers must
// be valid: a card out of Legal, a guess out of range or an option not
// offered aborts the match.
type Decider interface {
	ChooseCard(view GameView) card.Card
	ChooseTrump(hand card.CardList, options []jass.TrumpChoice) jass.TrumpChoice
	GuessScore(hand card.CardList, trump jass.Trump, min, max int) int
	DecideWyys(offer jass.Wyys) bool
	// Name returns a human-readable identifier for debugging.
	Name() string
}
