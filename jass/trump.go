package jass

import "jass-lite/card"

// Trump is the trick order of a round. The four suit trumps promote one
// suit above the others and reorder it; Obenabe and Unneufe have no
// trump suit and rank all suits top-down resp. bottom-up. TrumpNone is
// the neutral order used before trump selection.
type Trump byte

const (
	TrumpNone Trump = iota
	TrumpSchelle
	TrumpRoesle
	TrumpSchilte
	TrumpEichel
	Obenabe
	Unneufe
)

var trumpNames = [...]string{"none", "Schelle", "Roesle", "Schilte", "Eichel", "Obenabe", "Unneufe"}

func (t Trump) String() string {
	if int(t) >= len(trumpNames) {
		return "unknown"
	}
	return trumpNames[t]
}

// TrumpByName is the inverse of String, for clients reading announced
// orders back out of the state.
func TrumpByName(name string) (Trump, bool) {
	for i, n := range trumpNames {
		if n == name {
			return Trump(i), true
		}
	}
	return TrumpNone, false
}

// SuitTrumps lists the four suit trump variants in suit order.
var SuitTrumps = [...]Trump{TrumpSchelle, TrumpRoesle, TrumpSchilte, TrumpEichel}

// TrumpOfSuit returns the suit trump variant for s.
func TrumpOfSuit(s card.Suit) Trump {
	return SuitTrumps[s]
}

// TrumpSuit returns the promoted suit, or false for the suitless orders.
func (t Trump) TrumpSuit() (card.Suit, bool) {
	switch t {
	case TrumpSchelle:
		return card.Schelle, true
	case TrumpRoesle:
		return card.Roesle, true
	case TrumpSchilte:
		return card.Schilte, true
	case TrumpEichel:
		return card.Eichel, true
	}
	return 0, false
}

// Multiplier is the round score factor of the order. Schelle and Roesle
// count single, Schilte and Eichel double, the suitless orders triple.
func (t Trump) Multiplier() int {
	switch t {
	case TrumpSchilte, TrumpEichel:
		return 2
	case Obenabe, Unneufe:
		return 3
	}
	return 1
}

// Score returns the card point value of c under this order. Summing a
// full deck always yields 152.
func (t Trump) Score(c card.Card) int {
	r := c.Rank()
	if s, ok := t.TrumpSuit(); ok && c.Suit() == s {
		switch r {
		case card.RankUnder:
			return 20
		case card.RankNeune:
			return 14
		}
	}
	switch t {
	case Obenabe:
		if r == card.RankAchter {
			return 8
		}
	case Unneufe:
		switch r {
		case card.RankSechser:
			return 11
		case card.RankAchter:
			return 8
		case card.RankAss:
			return 0
		}
	}
	switch r {
	case card.RankAss:
		return 11
	case card.RankKoenig:
		return 4
	case card.RankOber:
		return 3
	case card.RankUnder:
		return 2
	case card.RankBanner:
		return 10
	}
	return 0
}

// trumpRankStrength orders the trump suit itself: Under on top, then
// the Nine, then the plain descent.
var trumpRankStrength = map[card.Rank]int{
	card.RankUnder:   9,
	card.RankNeune:   8,
	card.RankAss:     7,
	card.RankKoenig:  6,
	card.RankOber:    5,
	card.RankBanner:  4,
	card.RankAchter:  3,
	card.RankSiebner: 2,
	card.RankSechser: 1,
}

// strength assigns a total order such that any trump card beats any
// plain card. Callers only compare cards that are effective for the
// same trick, so plain cards of different suits never meet here.
func (t Trump) strength(c card.Card) int {
	if s, ok := t.TrumpSuit(); ok && c.Suit() == s {
		return 100 + trumpRankStrength[c.Rank()]
	}
	if t == Unneufe {
		return 20 - int(c.Rank())
	}
	return int(c.Rank())
}

// Compare reports the relative strength of a and b under this order:
// positive if a beats b, negative if b beats a.
func (t Trump) Compare(a, b card.Card) int {
	return t.strength(a) - t.strength(b)
}

// Effective reports whether a card of suit s may win a trick led in
// suit lead: it follows the lead, or it is trump.
func (t Trump) Effective(s, lead card.Suit) bool {
	if s == lead {
		return true
	}
	ts, ok := t.TrumpSuit()
	return ok && s == ts
}

// CanBeHeldBack reports whether c may be kept even when its suit is
// led. Only the trump Under enjoys that right.
func (t Trump) CanBeHeldBack(c card.Card) bool {
	s, ok := t.TrumpSuit()
	return ok && c.Suit() == s && c.Rank() == card.RankUnder
}

// IsTrumpCard reports whether c belongs to the promoted suit.
func (t Trump) IsTrumpCard(c card.Card) bool {
	s, ok := t.TrumpSuit()
	return ok && c.Suit() == s
}
