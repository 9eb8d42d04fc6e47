package jass

import (
	"testing"

	"jass-lite/card"
)

func legalSet(t *testing.T, tr *Trick, hand card.CardList, allowUnderTrump bool) map[card.Card]bool {
	t.Helper()
	out := make(map[card.Card]bool)
	legal := tr.LegalPlays(hand, allowUnderTrump)
	if len(legal) == 0 {
		t.Fatalf("legal plays must never be empty for a non-empty hand")
	}
	for _, c := range legal {
		out[c] = true
	}
	return out
}

func TestLegalPlays_EmptyTrickAllowsEverything(t *testing.T) {
	hand := card.CardList{card.CardSchelle6, card.CardEichelAss, card.CardRoesleUnder}
	legal := NewTrick(TrumpRoesle).LegalPlays(hand, false)
	if len(legal) != len(hand) {
		t.Fatalf("expected %d legal plays, got %d", len(hand), len(legal))
	}
}

func TestLegalPlays_MustFollowLead(t *testing.T) {
	tr := NewTrick(TrumpEichel)
	tr.Add(0, card.CardSchelleKoenig)
	hand := card.CardList{card.CardSchelle6, card.CardSchelleAss, card.CardRoesleBanner}
	legal := legalSet(t, tr, hand, false)
	if !legal[card.CardSchelle6] || !legal[card.CardSchelleAss] {
		t.Fatalf("lead suit cards must be playable")
	}
	if legal[card.CardRoesleBanner] {
		t.Fatalf("off-suit discard not allowed while holding the lead suit")
	}
}

func TestLegalPlays_TrumpIsAlwaysEffective(t *testing.T) {
	tr := NewTrick(TrumpEichel)
	tr.Add(0, card.CardSchelleKoenig)
	hand := card.CardList{card.CardSchelle6, card.CardEichel8, card.CardRoesleBanner}
	legal := legalSet(t, tr, hand, false)
	if !legal[card.CardEichel8] {
		t.Fatalf("trumping in must stay legal while holding the lead suit")
	}
}

func TestLegalPlays_TrumpUnderMayBeHeldBack(t *testing.T) {
	tr := NewTrick(TrumpSchilte)
	tr.Add(0, card.CardSchilte8)
	// Only trump card is the Under: the whole hand is free.
	hand := card.CardList{card.CardSchilteUnder, card.CardRoesle7, card.CardEichel9}
	legal := legalSet(t, tr, hand, false)
	for _, c := range hand {
		if !legal[c] {
			t.Fatalf("%v must be playable when only the trump Under could follow", c)
		}
	}
}

func TestLegalPlays_NoLeadSuitFreesHand(t *testing.T) {
	tr := NewTrick(TrumpEichel)
	tr.Add(0, card.CardSchelleKoenig)
	hand := card.CardList{card.CardRoesle7, card.CardSchilteAss}
	legal := legalSet(t, tr, hand, false)
	if len(legal) != 2 {
		t.Fatalf("hand without lead suit is free, got %d legal plays", len(legal))
	}
}

func TestLegalPlays_UnderTrumpFiltered(t *testing.T) {
	tr := NewTrick(TrumpEichel)
	tr.Add(0, card.CardSchelleKoenig)
	tr.Add(1, card.CardEichelBanner)
	// No Schelle in hand; Eichel 7 would lay a trump below the Banner.
	hand := card.CardList{card.CardEichel7, card.CardRoesleAss}
	legal := legalSet(t, tr, hand, false)
	if legal[card.CardEichel7] {
		t.Fatalf("under-trumping must be filtered while alternatives exist")
	}
	if !legal[card.CardRoesleAss] {
		t.Fatalf("discard must remain legal")
	}
}

func TestLegalPlays_UnderTrumpAllowedByConfig(t *testing.T) {
	tr := NewTrick(TrumpEichel)
	tr.Add(0, card.CardSchelleKoenig)
	tr.Add(1, card.CardEichelBanner)
	hand := card.CardList{card.CardEichel7, card.CardRoesleAss}
	legal := legalSet(t, tr, hand, true)
	if !legal[card.CardEichel7] {
		t.Fatalf("under-trumping must be legal when the config allows it")
	}
}

func TestLegalPlays_OnlyUnderTrumpsLeft(t *testing.T) {
	tr := NewTrick(TrumpEichel)
	tr.Add(0, card.CardSchelleKoenig)
	tr.Add(1, card.CardEichelBanner)
	hand := card.CardList{card.CardEichel7, card.CardEichel8}
	legal := legalSet(t, tr, hand, false)
	if len(legal) != 2 {
		t.Fatalf("a hand of nothing but under-trumps stays playable, got %d", len(legal))
	}
}

func TestWinner_HighestLeadSuitWins(t *testing.T) {
	tr := NewTrick(Obenabe)
	tr.Add(0, card.CardSchelleKoenig)
	tr.Add(1, card.CardSchelle6)
	tr.Add(2, card.CardSchelleAss)
	tr.Add(3, card.CardRoesleAss) // off-suit, never effective
	if w := tr.Winner(); w.Seat != 2 {
		t.Fatalf("expected seat 2 to win, got %d with %v", w.Seat, w.Card)
	}
}

func TestWinner_TrumpBeatsLead(t *testing.T) {
	tr := NewTrick(TrumpRoesle)
	tr.Add(1, card.CardSchelleAss)
	tr.Add(2, card.CardRoesle6)
	tr.Add(3, card.CardSchelleKoenig)
	tr.Add(0, card.CardSchelleBanner)
	if w := tr.Winner(); w.Seat != 2 {
		t.Fatalf("lowest trump still beats the lead Ass, winner was seat %d", w.Seat)
	}
}

func TestWinner_TrumpUnderBeatsTrumpNeune(t *testing.T) {
	tr := NewTrick(TrumpSchilte)
	tr.Add(0, card.CardSchilte9)
	tr.Add(1, card.CardSchilteUnder)
	tr.Add(2, card.CardSchilteAss)
	tr.Add(3, card.CardSchilteKoenig)
	if w := tr.Winner(); w.Seat != 1 {
		t.Fatalf("trump Under outranks everything, winner was seat %d", w.Seat)
	}
}

func TestWinner_UnneufeLowWins(t *testing.T) {
	tr := NewTrick(Unneufe)
	tr.Add(0, card.CardEichel8)
	tr.Add(1, card.CardEichel6)
	tr.Add(2, card.CardEichelAss)
	tr.Add(3, card.CardEichelBanner)
	if w := tr.Winner(); w.Seat != 1 {
		t.Fatalf("Unneufe: the Sechser wins, winner was seat %d", w.Seat)
	}
}

func TestTrickScore_SumsUnderOrder(t *testing.T) {
	tr := NewTrick(TrumpEichel)
	tr.Add(0, card.CardEichelUnder)  // 20
	tr.Add(1, card.CardEichel9)      // 14
	tr.Add(2, card.CardSchelleAss)   // 11
	tr.Add(3, card.CardRoesleBanner) // 10
	if got := tr.Score(); got != 55 {
		t.Fatalf("trick score = %d, want 55", got)
	}
}
