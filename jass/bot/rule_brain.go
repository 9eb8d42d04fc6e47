package bot

import (
	"math/rand"

	"jass-lite/card"
	"jass-lite/jass"
)

// RuleBrain makes decisions based on a PersonalityProfile with tunable
// parameters.
type RuleBrain struct {
	Persona *Persona
	rng     *rand.Rand
}

// NewRuleBrain creates a RuleBrain from a persona definition.
func NewRuleBrain(persona *Persona, seed int64) *RuleBrain {
	return &RuleBrain{
		Persona: persona,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string { return b.Persona.Name }

// ChooseCard implements Decider. Leading, it plays strong or cheap
// depending on aggression; following, it takes the trick with the
// cheapest winning card when it is worth it, feeds points to a winning
// partner, and discards cheap otherwise.
func (b *RuleBrain) ChooseCard(view GameView) card.Card {
	p := b.Persona.Brain
	legal := view.Legal

	if b.rng.Float64() < p.Randomness*0.3 {
		return legal[b.rng.Intn(len(legal))]
	}

	if len(view.Plays) == 0 {
		if b.rng.Float64() < p.Aggression {
			return b.strongest(view.Trump, legal)
		}
		return b.cheapest(view.Trump, legal)
	}

	trick := jass.NewTrick(view.Trump)
	for _, pl := range view.Plays {
		trick.Add(pl.Seat, pl.Card)
	}
	winner := trick.Winner()
	me := (view.Plays[len(view.Plays)-1].Seat + 1) % jass.NumSeats

	if winner.Seat == jass.Teammate(me) && len(view.Plays) >= 2 {
		// Partner holds the trick: schmieren, load it with points.
		return b.fattest(view.Trump, legal)
	}

	lead, _ := trick.LeadSuit()
	var taking card.CardList
	for _, c := range legal {
		if view.Trump.Effective(c.Suit(), lead) && view.Trump.Compare(c, winner.Card) > 0 {
			taking = append(taking, c)
		}
	}
	worthIt := trick.Score() >= 10 || b.rng.Float64() < p.Aggression
	if len(taking) > 0 && worthIt {
		return b.cheapest(view.Trump, taking)
	}
	return b.cheapest(view.Trump, legal)
}

// ChooseTrump rates every offered order against the hand and shoves
// only when the best rating is weak.
func (b *RuleBrain) ChooseTrump(hand card.CardList, options []jass.TrumpChoice) jass.TrumpChoice {
	p := b.Persona.Brain
	best := jass.TrumpChoice{}
	bestVal := -1
	canSchieb := false
	for _, opt := range options {
		if opt.Schieb {
			canSchieb = true
			continue
		}
		val := rateTrump(opt.Trump, hand)
		if val > bestVal {
			best, bestVal = opt, val
		}
	}
	if canSchieb && bestVal < 45 && b.rng.Float64() < 0.5+p.Caution*0.5 {
		return jass.TrumpChoice{Schieb: true}
	}
	return best
}

// GuessScore starts from the fair share of the deck and shifts it by
// how many points the hand itself carries, plus persona noise.
func (b *RuleBrain) GuessScore(hand card.CardList, trump jass.Trump, min, max int) int {
	own := 0
	for _, c := range hand {
		own += trump.Score(c)
	}
	fairShare := (jass.MaxRoundScore + 1) / jass.NumSeats
	guess := fairShare + (own - fairShare)
	guess += int((b.rng.Float64() - 0.5) * b.Persona.Brain.Randomness * 30)
	if guess < min {
		guess = min
	}
	if guess > max {
		guess = max
	}
	return guess
}

// DecideWyys reveals almost always; very cautious personas sometimes
// keep a small run hidden.
func (b *RuleBrain) DecideWyys(offer jass.Wyys) bool {
	p := b.Persona.Brain
	if offer.Score() <= 20 && b.rng.Float64() < p.Caution*0.3 {
		return false
	}
	return true
}

func (b *RuleBrain) cheapest(t jass.Trump, cards card.CardList) card.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if t.Score(c) < t.Score(best) ||
			(t.Score(c) == t.Score(best) && t.Compare(c, best) < 0) {
			best = c
		}
	}
	return best
}

func (b *RuleBrain) strongest(t jass.Trump, cards card.CardList) card.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if t.Compare(c, best) > 0 {
			best = c
		}
	}
	return best
}

func (b *RuleBrain) fattest(t jass.Trump, cards card.CardList) card.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if t.Score(c) > t.Score(best) ||
			(t.Score(c) == t.Score(best) && t.Compare(c, best) < 0) {
			best = c
		}
	}
	return best
}

// rateTrump scores a hand under an order: its card points plus a bonus
// per card of the trump suit.
func rateTrump(t jass.Trump, hand card.CardList) int {
	val := 0
	for _, c := range hand {
		val += t.Score(c)
		if t.IsTrumpCard(c) {
			val += 5
		}
	}
	return val
}
