package jass

import (
	"fmt"
	"sort"

	"jass-lite/card"
)

// WyysKind tags a meld variant.
type WyysKind byte

const (
	WyysRun WyysKind = iota
	WyysFourOfAKind
)

func (k WyysKind) String() string {
	if k == WyysFourOfAKind {
		return "four of a kind"
	}
	return "run"
}

// Wyys is a scoring meld held in a hand: a suited run of three or more
// neighbouring ranks, or all four cards of one rank.
type Wyys struct {
	Kind  WyysKind
	Cards card.CardList
}

func (w Wyys) String() string {
	return fmt.Sprintf("%s (%d): %v", w.Kind, w.Score(), w.Cards)
}

// Score is the bonus value of the meld. Runs score 20/50/100 for three,
// four and five cards and +50 per card beyond. Four of a kind scores
// 100, Nines 150, Unders 200.
func (w Wyys) Score() int {
	if w.Kind == WyysFourOfAKind {
		switch w.Cards[0].Rank() {
		case card.RankNeune:
			return 150
		case card.RankUnder:
			return 200
		}
		return 100
	}
	n := len(w.Cards)
	if n == 3 {
		return 20
	}
	return n*50 - 150
}

// HighestCard returns the strongest card of the meld under t.
func (w Wyys) HighestCard(t Trump) card.Card {
	best := w.Cards[0]
	for _, c := range w.Cards[1:] {
		if t.Compare(c, best) > 0 {
			best = c
		}
	}
	return best
}

// IsTrump reports whether the meld contains a card of the trump suit.
func (w Wyys) IsTrump(t Trump) bool {
	for _, c := range w.Cards {
		if t.IsTrumpCard(c) {
			return true
		}
	}
	return false
}

// DetectWyys lists all melds in cards: every four of a kind and every
// maximal suited run of length three or more.
func DetectWyys(cards card.CardList) []Wyys {
	sorted := append(card.CardList{}, cards...)
	sort.Slice(sorted, func(i, j int) bool {
		return card.Compare(sorted[i], sorted[j]) < 0
	})

	var out []Wyys

	byRank := make(map[card.Rank]card.CardList)
	for _, c := range sorted {
		byRank[c.Rank()] = append(byRank[c.Rank()], c)
	}
	for _, r := range card.Ranks {
		if set := byRank[r]; len(set) == NumSeats {
			out = append(out, Wyys{Kind: WyysFourOfAKind, Cards: set})
		}
	}

	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && card.IsNeighbour(sorted[j], sorted[j+1]) {
			j++
		}
		if j-i+1 >= 3 {
			run := append(card.CardList{}, sorted[i:j+1]...)
			out = append(out, Wyys{Kind: WyysRun, Cards: run})
		}
		i = j + 1
	}
	return out
}

// CompareWyys ranks two melds under the trump order t: by score, then
// four of a kind over run, then by the rank of the strongest card,
// then trump melds over plain ones. Positive means a outranks b.
func CompareWyys(t Trump, a, b Wyys) int {
	if d := a.Score() - b.Score(); d != 0 {
		return d
	}
	if a.Kind != b.Kind {
		if a.Kind == WyysFourOfAKind {
			return 1
		}
		return -1
	}
	if d := int(a.HighestCard(t).Rank()) - int(b.HighestCard(t).Rank()); d != 0 {
		return d
	}
	switch {
	case a.IsTrump(t) && !b.IsTrump(t):
		return 1
	case b.IsTrump(t) && !a.IsTrump(t):
		return -1
	}
	return 0
}

// BestWyys picks the top-ranked meld in cards, false if there is none.
func BestWyys(t Trump, cards card.CardList) (Wyys, bool) {
	all := DetectWyys(cards)
	if len(all) == 0 {
		return Wyys{}, false
	}
	best := all[0]
	for _, w := range all[1:] {
		if CompareWyys(t, w, best) > 0 {
			best = w
		}
	}
	return best, true
}
