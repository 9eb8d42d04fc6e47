package jass

import (
	"sort"

	"jass-lite/card"
)

// Hand is the sorted private card set of one seat.
type Hand struct {
	cards card.CardList
}

func NewHand(cards []card.Card) *Hand {
	h := &Hand{cards: append(card.CardList{}, cards...)}
	sort.Slice(h.cards, func(i, j int) bool {
		return card.Compare(h.cards[i], h.cards[j]) < 0
	})
	return h
}

func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns the hand in display order. Callers must not mutate it.
func (h *Hand) Cards() card.CardList {
	return h.cards
}

func (h *Hand) Contains(c card.Card) bool {
	return h.cards.Contains(c)
}

// Remove takes c out of the hand, ErrNotInHand if absent.
func (h *Hand) Remove(c card.Card) error {
	for i, hc := range h.cards {
		if hc == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return ErrNotInHand
}

// LegalPlays wraps Trick.LegalPlays for this hand.
func (h *Hand) LegalPlays(t *Trick, allowUnderTrump bool) card.CardList {
	return t.LegalPlays(h.cards, allowUnderTrump)
}
