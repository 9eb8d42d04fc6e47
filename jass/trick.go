package jass

import "jass-lite/card"

// Play is one card laid into a trick, tagged with the seat that played it.
type Play struct {
	Seat int
	Card card.Card
}

// Trick collects up to four plays under a fixed trump order. Plays are
// appended in turn order, so Plays[0] is the lead.
type Trick struct {
	Trump Trump
	Plays []Play
}

func NewTrick(t Trump) *Trick {
	return &Trick{Trump: t, Plays: make([]Play, 0, NumSeats)}
}

func (t *Trick) Size() int {
	return len(t.Plays)
}

func (t *Trick) Full() bool {
	return len(t.Plays) == NumSeats
}

// LeadSuit returns the suit of the opening card, false on an empty trick.
func (t *Trick) LeadSuit() (card.Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit(), true
}

func (t *Trick) Add(seat int, c card.Card) {
	t.Plays = append(t.Plays, Play{Seat: seat, Card: c})
}

// Score sums the card points of the trick under its trump order.
func (t *Trick) Score() int {
	sum := 0
	for _, p := range t.Plays {
		sum += t.Trump.Score(p.Card)
	}
	return sum
}

// Winner returns the play currently holding the trick. The first play
// wins until a later effective card beats it.
func (t *Trick) Winner() Play {
	best := t.Plays[0]
	lead := t.Plays[0].Card.Suit()
	for _, p := range t.Plays[1:] {
		if !t.Trump.Effective(p.Card.Suit(), lead) {
			continue
		}
		if t.Trump.Compare(p.Card, best.Card) > 0 {
			best = p
		}
	}
	return best
}

// isUnderTrump reports whether playing c would lay a trump below a
// trump already winning the trick, without following the lead.
func (t *Trick) isUnderTrump(c card.Card) bool {
	if !t.Trump.IsTrumpCard(c) {
		return false
	}
	lead, ok := t.LeadSuit()
	if !ok || c.Suit() == lead {
		return false
	}
	for _, p := range t.Plays {
		if t.Trump.IsTrumpCard(p.Card) && t.Trump.Compare(p.Card, c) > 0 {
			return true
		}
	}
	return false
}

// LegalPlays filters hand down to the cards seat may answer with.
// An empty trick allows everything. Otherwise the player must follow
// the lead or trump in, with two escapes: the trump Under may always be
// held back, and a hand without any card for the lead is free. Under-
// trumping is filtered out unless allowed by config, but never to the
// point of an empty result.
func (t *Trick) LegalPlays(hand card.CardList, allowUnderTrump bool) card.CardList {
	if len(t.Plays) == 0 || len(hand) == 0 {
		return append(card.CardList{}, hand...)
	}
	lead, _ := t.LeadSuit()

	playable := make(card.CardList, 0, len(hand))
	for _, c := range hand {
		if t.Trump.Effective(c.Suit(), lead) {
			playable = append(playable, c)
		}
	}

	mustFollow := false
	for _, c := range playable {
		if c.Suit() == lead && !t.Trump.CanBeHeldBack(c) {
			mustFollow = true
			break
		}
	}
	if !mustFollow {
		playable = append(card.CardList{}, hand...)
	}

	if !allowUnderTrump || mustFollow {
		filtered := make(card.CardList, 0, len(playable))
		for _, c := range playable {
			if c.Suit() == lead || !t.isUnderTrump(c) {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	return playable
}
