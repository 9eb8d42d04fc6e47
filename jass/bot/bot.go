package bot

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"jass-lite/card"
	"jass-lite/jass"
)

// Bot plays a seat without a human behind it. It wraps a Decider with a
// short think delay so rounds against bots stay watchable, and follows
// the table through the state pushes like any client would.
type Bot struct {
	persona *Persona
	brain   Decider
	rng     *rand.Rand

	mu    sync.Mutex
	trump jass.Trump
	plays []jass.PlayView
}

// New creates a bot for persona with a RuleBrain behind it.
func New(persona *Persona, seed int64) *Bot {
	return &Bot{
		persona: persona,
		brain:   NewRuleBrain(persona, seed),
		rng:     rand.New(rand.NewSource(seed + 1)),
	}
}

func (b *Bot) Name() string { return b.persona.Name }

// Persona exposes the character behind the bot, for lobby listings.
func (b *Bot) Persona() *Persona { return b.persona }

// PushState implements jass.StateSink. The bot only keeps what its
// brain looks at: the trump order and the open trick.
func (b *Bot) PushState(state jass.GameState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if state.Trick == nil {
		b.plays = nil
		return
	}
	if t, ok := jass.TrumpByName(state.Trick.Trump); ok {
		b.trump = t
	}
	b.plays = append(b.plays[:0], state.Trick.Plays...)
}

func (b *Bot) ChooseCard(ctx context.Context, legal card.CardList) (card.Card, error) {
	if err := b.think(ctx); err != nil {
		return card.CardInvalid, err
	}
	b.mu.Lock()
	view := GameView{
		Trump: b.trump,
		Plays: append([]jass.PlayView{}, b.plays...),
		Legal: legal,
		Hand:  legal,
	}
	b.mu.Unlock()
	return b.brain.ChooseCard(view), nil
}

func (b *Bot) ChooseTrump(ctx context.Context, hand card.CardList, options []jass.TrumpChoice) (jass.TrumpChoice, error) {
	if err := b.think(ctx); err != nil {
		return jass.TrumpChoice{}, err
	}
	return b.brain.ChooseTrump(hand, options), nil
}

func (b *Bot) GuessScore(ctx context.Context, hand card.CardList, min, max int) (int, error) {
	if err := b.think(ctx); err != nil {
		return 0, err
	}
	b.mu.Lock()
	trump := b.trump
	b.mu.Unlock()
	return b.brain.GuessScore(hand, trump, min, max), nil
}

func (b *Bot) DecideWyys(ctx context.Context, offer jass.Wyys) (bool, error) {
	if err := b.think(ctx); err != nil {
		return false, err
	}
	return b.brain.DecideWyys(offer), nil
}

// think sleeps 300–900ms, abortable through ctx.
func (b *Bot) think(ctx context.Context) error {
	d := 300*time.Millisecond + time.Duration(b.rng.Intn(600))*time.Millisecond
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var (
	_ jass.Player    = (*Bot)(nil)
	_ jass.StateSink = (*Bot)(nil)
)
