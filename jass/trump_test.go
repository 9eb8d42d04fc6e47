package jass

import (
	"testing"

	"jass-lite/card"
)

// allOrders covers every playable trick order.
var allOrders = []Trump{
	TrumpSchelle, TrumpRoesle, TrumpSchilte, TrumpEichel, Obenabe, Unneufe,
}

func TestScore_DeckTotalsAlways152(t *testing.T) {
	for _, tr := range allOrders {
		sum := 0
		for _, c := range card.Deck() {
			sum += tr.Score(c)
		}
		if sum != 152 {
			t.Fatalf("%v: deck totals %d, want 152", tr, sum)
		}
	}
}

func TestScore_TrumpPromotions(t *testing.T) {
	tr := TrumpEichel
	if got := tr.Score(card.CardEichelUnder); got != 20 {
		t.Fatalf("trump Under = %d, want 20", got)
	}
	if got := tr.Score(card.CardEichel9); got != 14 {
		t.Fatalf("trump Neune = %d, want 14", got)
	}
	if got := tr.Score(card.CardSchelleUnder); got != 2 {
		t.Fatalf("plain Under = %d, want 2", got)
	}
	if got := tr.Score(card.CardSchelle9); got != 0 {
		t.Fatalf("plain Neune = %d, want 0", got)
	}
}

func TestScore_SuitlessOrders(t *testing.T) {
	if got := Obenabe.Score(card.CardRoesle8); got != 8 {
		t.Fatalf("Obenabe Achter = %d, want 8", got)
	}
	if got := Unneufe.Score(card.CardRoesle6); got != 11 {
		t.Fatalf("Unneufe Sechser = %d, want 11", got)
	}
	if got := Unneufe.Score(card.CardRoesleAss); got != 0 {
		t.Fatalf("Unneufe Ass = %d, want 0", got)
	}
	if got := Unneufe.Score(card.CardRoesle8); got != 8 {
		t.Fatalf("Unneufe Achter = %d, want 8", got)
	}
}

func TestCompare_TrumpSuitOrder(t *testing.T) {
	tr := TrumpSchilte
	descending := []card.Card{
		card.CardSchilteUnder, card.CardSchilte9, card.CardSchilteAss,
		card.CardSchilteKoenig, card.CardSchilteOber, card.CardSchilteBanner,
		card.CardSchilte8, card.CardSchilte7, card.CardSchilte6,
	}
	for i := 0; i < len(descending)-1; i++ {
		if tr.Compare(descending[i], descending[i+1]) <= 0 {
			t.Fatalf("%v should beat %v under %v", descending[i], descending[i+1], tr)
		}
	}
}

func TestCompare_TrumpBeatsPlainAss(t *testing.T) {
	tr := TrumpSchelle
	if tr.Compare(card.CardSchelle6, card.CardEichelAss) <= 0 {
		t.Fatalf("lowest trump should beat plain Ass")
	}
}

func TestCompare_UnneufeInverts(t *testing.T) {
	if Unneufe.Compare(card.CardRoesle6, card.CardRoesleAss) <= 0 {
		t.Fatalf("Unneufe: Sechser should beat Ass")
	}
	if Obenabe.Compare(card.CardRoesleAss, card.CardRoesle6) <= 0 {
		t.Fatalf("Obenabe: Ass should beat Sechser")
	}
}

func TestMultiplier(t *testing.T) {
	cases := map[Trump]int{
		TrumpSchelle: 1, TrumpRoesle: 1,
		TrumpSchilte: 2, TrumpEichel: 2,
		Obenabe: 3, Unneufe: 3,
	}
	for tr, want := range cases {
		if got := tr.Multiplier(); got != want {
			t.Fatalf("%v multiplier = %d, want %d", tr, got, want)
		}
	}
}

func TestCanBeHeldBack_OnlyTrumpUnder(t *testing.T) {
	tr := TrumpRoesle
	if !tr.CanBeHeldBack(card.CardRoesleUnder) {
		t.Fatalf("trump Under may be held back")
	}
	if tr.CanBeHeldBack(card.CardRoesle9) {
		t.Fatalf("trump Neune may not be held back")
	}
	if tr.CanBeHeldBack(card.CardSchelleUnder) {
		t.Fatalf("plain Under may not be held back")
	}
	if Obenabe.CanBeHeldBack(card.CardRoesleUnder) {
		t.Fatalf("no card may be held back without a trump suit")
	}
}

func TestTrumpByName_RoundTrips(t *testing.T) {
	for _, tr := range allOrders {
		got, ok := TrumpByName(tr.String())
		if !ok || got != tr {
			t.Fatalf("TrumpByName(%q) = %v, %v", tr.String(), got, ok)
		}
	}
	if _, ok := TrumpByName("Herz"); ok {
		t.Fatalf("unknown name resolved")
	}
}
