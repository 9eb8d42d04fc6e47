package jass

import (
	"testing"

	"jass-lite/card"
)

func TestDetectWyys_FindsRunsAndFours(t *testing.T) {
	hand := card.CardList{
		card.CardSchelle6, card.CardSchelle7, card.CardSchelle8,
		card.CardRoesleUnder, card.CardSchilteUnder, card.CardEichelUnder, card.CardSchelleUnder,
		card.CardEichelKoenig, card.CardEichelAss,
	}
	found := DetectWyys(hand)
	var run, four bool
	for _, w := range found {
		switch w.Kind {
		case WyysRun:
			if len(w.Cards) == 3 {
				run = true
			}
		case WyysFourOfAKind:
			if w.Cards[0].Rank() == card.RankUnder {
				four = true
			}
		}
	}
	if !run {
		t.Fatalf("run of three not detected in %v", found)
	}
	if !four {
		t.Fatalf("four Unders not detected in %v", found)
	}
}

func TestDetectWyys_NoMeldlessNoise(t *testing.T) {
	hand := card.CardList{
		card.CardSchelle6, card.CardSchelle8, card.CardRoesle7,
		card.CardSchilte9, card.CardEichelKoenig,
	}
	if found := DetectWyys(hand); len(found) != 0 {
		t.Fatalf("expected no melds, got %v", found)
	}
}

func TestWyysScore(t *testing.T) {
	run3 := Wyys{Kind: WyysRun, Cards: card.CardList{card.CardSchelle6, card.CardSchelle7, card.CardSchelle8}}
	if run3.Score() != 20 {
		t.Fatalf("run of three = %d, want 20", run3.Score())
	}
	run4 := Wyys{Kind: WyysRun, Cards: card.CardList{
		card.CardSchelle6, card.CardSchelle7, card.CardSchelle8, card.CardSchelle9,
	}}
	if run4.Score() != 50 {
		t.Fatalf("run of four = %d, want 50", run4.Score())
	}
	run5 := Wyys{Kind: WyysRun, Cards: card.CardList{
		card.CardSchelle6, card.CardSchelle7, card.CardSchelle8, card.CardSchelle9, card.CardSchelleBanner,
	}}
	if run5.Score() != 100 {
		t.Fatalf("run of five = %d, want 100", run5.Score())
	}

	fourKings := Wyys{Kind: WyysFourOfAKind, Cards: card.CardList{
		card.CardSchelleKoenig, card.CardRoesleKoenig, card.CardSchilteKoenig, card.CardEichelKoenig,
	}}
	if fourKings.Score() != 100 {
		t.Fatalf("four Koenige = %d, want 100", fourKings.Score())
	}
	fourNines := Wyys{Kind: WyysFourOfAKind, Cards: card.CardList{
		card.CardSchelle9, card.CardRoesle9, card.CardSchilte9, card.CardEichel9,
	}}
	if fourNines.Score() != 150 {
		t.Fatalf("four Neunen = %d, want 150", fourNines.Score())
	}
	fourUnders := Wyys{Kind: WyysFourOfAKind, Cards: card.CardList{
		card.CardSchelleUnder, card.CardRoesleUnder, card.CardSchilteUnder, card.CardEichelUnder,
	}}
	if fourUnders.Score() != 200 {
		t.Fatalf("four Under = %d, want 200", fourUnders.Score())
	}
}

func TestCompareWyys_FourOfAKindBreaksScoreTie(t *testing.T) {
	run5 := Wyys{Kind: WyysRun, Cards: card.CardList{
		card.CardSchelle6, card.CardSchelle7, card.CardSchelle8, card.CardSchelle9, card.CardSchelleBanner,
	}}
	fourKings := Wyys{Kind: WyysFourOfAKind, Cards: card.CardList{
		card.CardSchelleKoenig, card.CardRoesleKoenig, card.CardSchilteKoenig, card.CardEichelKoenig,
	}}
	if run5.Score() != fourKings.Score() {
		t.Fatalf("test premise broken: scores differ")
	}
	if CompareWyys(TrumpNone, fourKings, run5) <= 0 {
		t.Fatalf("four of a kind must outrank a run of equal score")
	}
	if CompareWyys(TrumpNone, run5, fourKings) >= 0 {
		t.Fatalf("comparison must be antisymmetric")
	}
}

func TestCompareWyys_HigherScoreWins(t *testing.T) {
	run3 := Wyys{Kind: WyysRun, Cards: card.CardList{card.CardSchelle6, card.CardSchelle7, card.CardSchelle8}}
	run4 := Wyys{Kind: WyysRun, Cards: card.CardList{
		card.CardEichel6, card.CardEichel7, card.CardEichel8, card.CardEichel9,
	}}
	if CompareWyys(TrumpNone, run4, run3) <= 0 {
		t.Fatalf("run of four outranks run of three")
	}
}

func TestCompareWyys_TrumpBreaksFullTie(t *testing.T) {
	trumpRun := Wyys{Kind: WyysRun, Cards: card.CardList{
		card.CardRoesle6, card.CardRoesle7, card.CardRoesle8,
	}}
	plainRun := Wyys{Kind: WyysRun, Cards: card.CardList{
		card.CardSchilte6, card.CardSchilte7, card.CardSchilte8,
	}}
	if CompareWyys(TrumpRoesle, trumpRun, plainRun) <= 0 {
		t.Fatalf("trump meld must win a full tie")
	}
}

func TestBestWyys_PicksTopMeld(t *testing.T) {
	hand := card.CardList{
		card.CardSchelle6, card.CardSchelle7, card.CardSchelle8,
		card.CardRoesle9, card.CardSchilte9, card.CardEichel9, card.CardSchelle9,
	}
	best, ok := BestWyys(TrumpNone, hand)
	if !ok {
		t.Fatalf("expected a meld")
	}
	if best.Kind != WyysFourOfAKind || best.Score() != 150 {
		t.Fatalf("expected four Neunen as best, got %v", best)
	}
	if _, ok := BestWyys(TrumpNone, card.CardList{card.CardSchelle6}); ok {
		t.Fatalf("single card cannot meld")
	}
}
