package bot

import (
	"math/rand"
	"testing"

	"jass-lite/card"
	"jass-lite/jass"
)

func testBrain(t *testing.T, id string) *RuleBrain {
	t.Helper()
	r := NewRegistry()
	p := r.Get(id)
	if p == nil {
		t.Fatalf("persona %q not registered", id)
	}
	return NewRuleBrain(p, 1234)
}

func TestRuleBrain_ChooseCardStaysLegal(t *testing.T) {
	for _, p := range defaultPersonas {
		brain := NewRuleBrain(p, 42)
		rng := rand.New(rand.NewSource(99))
		for round := 0; round < 50; round++ {
			deck := card.Deck()
			deck.Shuffle(rng)
			hand, _ := deck.PopCards(9)
			trump := jass.SuitTrumps[rng.Intn(len(jass.SuitTrumps))]
			trick := jass.NewTrick(trump)
			for seat := 0; seat < rng.Intn(jass.NumSeats); seat++ {
				played, _ := deck.PopCards(1)
				trick.Add(seat, played[0])
			}
			legal := trick.LegalPlays(hand, false)
			view := GameView{Trump: trump, Plays: viewPlays(trick), Legal: legal, Hand: hand}
			c := brain.ChooseCard(view)
			if !legal.Contains(c) {
				t.Fatalf("%s played %v outside legal %v", p.Name, c, legal)
			}
		}
	}
}

func viewPlays(t *jass.Trick) []jass.PlayView {
	out := make([]jass.PlayView, 0, len(t.Plays))
	for _, p := range t.Plays {
		out = append(out, jass.PlayView{Seat: p.Seat, Card: p.Card})
	}
	return out
}

func TestRuleBrain_ChooseTrumpReturnsOfferedOption(t *testing.T) {
	brain := testBrain(t, "cortana")
	options := []jass.TrumpChoice{
		{Trump: jass.TrumpSchelle},
		{Trump: jass.Obenabe},
		{Schieb: true},
	}
	hand := card.CardList{
		card.CardSchelleUnder, card.CardSchelle9, card.CardSchelleAss,
		card.CardRoesle6, card.CardRoesle7, card.CardSchilte8,
		card.CardEichelKoenig, card.CardEichelOber, card.CardEichelBanner,
	}
	for i := 0; i < 20; i++ {
		choice := brain.ChooseTrump(hand, options)
		found := false
		for _, o := range options {
			if o == choice {
				found = true
			}
		}
		if !found {
			t.Fatalf("choice %v was never offered", choice)
		}
	}
}

func TestRuleBrain_ChooseTrumpNeverShovesWithoutOffer(t *testing.T) {
	brain := testBrain(t, "boomer")
	options := []jass.TrumpChoice{{Trump: jass.TrumpSchelle}, {Trump: jass.Unneufe}}
	weak := card.CardList{
		card.CardSchelle6, card.CardRoesle7, card.CardSchilte8,
		card.CardEichel6, card.CardSchelle7, card.CardRoesle8,
	}
	for i := 0; i < 20; i++ {
		if choice := brain.ChooseTrump(weak, options); choice.Schieb {
			t.Fatalf("shoved although schieb was not offered")
		}
	}
}

func TestRuleBrain_GuessStaysInRange(t *testing.T) {
	brain := testBrain(t, "siri")
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		deck := card.Deck()
		deck.Shuffle(rng)
		hand, _ := deck.PopCards(9)
		g := brain.GuessScore(hand, jass.TrumpEichel, 0, jass.MaxRoundScore)
		if g < 0 || g > jass.MaxRoundScore {
			t.Fatalf("guess %d out of range", g)
		}
	}
}

func TestRegistry_NextPersonaCycles(t *testing.T) {
	r := NewRegistry()
	first := r.NextPersona()
	seen := map[string]bool{first.ID: true}
	for i := 1; i < r.Count(); i++ {
		seen[r.NextPersona().ID] = true
	}
	if len(seen) != r.Count() {
		t.Fatalf("expected %d distinct personas, got %d", r.Count(), len(seen))
	}
	if again := r.NextPersona(); again.ID != first.ID {
		t.Fatalf("cycle should restart at %s, got %s", first.ID, again.ID)
	}
}

func TestRegistry_LoadFromJSONOverrides(t *testing.T) {
	r := NewRegistry()
	err := r.LoadFromJSON([]byte(`[
		{"id":"alexa","name":"Alexa Prime","brain":{"aggression":0.9}},
		{"id":"custom","name":"Custom Bot","brain":{"aggression":0.1}}
	]`))
	if err != nil {
		t.Fatalf("LoadFromJSON: %v", err)
	}
	if got := r.Get("alexa").Name; got != "Alexa Prime" {
		t.Fatalf("override not applied, name %q", got)
	}
	if r.Get("custom") == nil {
		t.Fatalf("new persona not added")
	}
	if r.Count() != len(defaultPersonas)+1 {
		t.Fatalf("count = %d", r.Count())
	}
}
