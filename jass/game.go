package jass

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"jass-lite/card"
)

// Game carries the machinery shared by both match modes: seats, deck
// handling, the trick loop and state fan-out. The mode types embed it
// and add trump selection and scoring on top.
//
// A Game is driven by a single goroutine calling PlayRound on the mode
// type. AddSpectator may be called from other goroutines at any time;
// everything else is owned by the driving goroutine.
type Game struct {
	cfg   Config
	rng   *rand.Rand
	seats [NumSeats]*Seat

	sinkMu sync.Mutex
	sinks  []StateSink

	state   GameState
	round   int
	starter int
	ended   bool
}

func newGame(mode string, cfg Config, players [NumSeats]Player) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		state: GameState{Mode: mode},
	}
	for i, p := range players {
		if p == nil {
			return nil, fmt.Errorf("seat %d has no player", i)
		}
		g.seats[i] = &Seat{Index: i, Player: p}
		g.state.Names[i] = p.Name()
		if sink, ok := p.(StateSink); ok {
			g.sinks = append(g.sinks, sink)
		}
	}
	return g, nil
}

// AddSpectator attaches a read-only state sink. Safe while the match
// is running; the sink sees every push from the next card on.
func (g *Game) AddSpectator(s StateSink) {
	g.sinkMu.Lock()
	g.sinks = append(g.sinks, s)
	g.sinkMu.Unlock()
}

func (g *Game) Ended() bool {
	return g.ended
}

func (g *Game) Round() int {
	return g.round
}

// Seats exposes the seat states for scoreboards and persistence.
func (g *Game) Seats() [NumSeats]*Seat {
	return g.seats
}

// deal shuffles a fresh deck and hands out nine cards per seat.
func (g *Game) deal() {
	deck := card.Deck()
	deck.Shuffle(g.rng)
	for _, s := range g.seats {
		hand, _ := deck.PopCards(TricksPerRound)
		s.resetForRound(hand)
		if obs, ok := s.Player.(HandObserver); ok {
			obs.ObserveHand(s.Index, s.Hand.Cards())
		}
	}
}

// holderOf returns the seat holding c. Must be called right after deal,
// before any card left a hand.
func (g *Game) holderOf(c card.Card) int {
	for _, s := range g.seats {
		if s.Hand.Contains(c) {
			return s.Index
		}
	}
	return InvalidSeat
}

func (g *Game) broadcast(kind string, data any) {
	g.state.Messages = append(g.state.Messages, Message{Kind: kind, Data: data})
	if len(g.state.Messages) > maxMessages {
		g.state.Messages = g.state.Messages[len(g.state.Messages)-maxMessages:]
	}
	g.pushState()
}

// pushState refreshes the derived fields and fans the state out.
func (g *Game) pushState() {
	g.state.Round = g.round
	for i, s := range g.seats {
		if s.Hand != nil {
			g.state.HandSizes[i] = s.Hand.Len()
		} else {
			g.state.HandSizes[i] = 0
		}
		g.state.Totals[i] = s.Total
	}
	snap := g.state.clone()
	g.sinkMu.Lock()
	sinks := append([]StateSink{}, g.sinks...)
	g.sinkMu.Unlock()
	for _, sink := range sinks {
		sink.PushState(snap)
	}
}

func (g *Game) setTrick(t *Trick) {
	g.state.Trick = viewOfTrick(t)
}

func (g *Game) setTurn(seat int, phase string) {
	g.state.Turn = &TurnIndicator{Seat: seat, Phase: phase}
}

// playTricks runs all nine tricks of a round under trump, the first
// led by starter, each following one by the previous winner. It pushes
// the table state after every single card. Returns the seat that took
// the last trick.
func (g *Game) playTricks(ctx context.Context, trump Trump, starter int) (int, error) {
	lead := starter
	for i := 0; i < TricksPerRound; i++ {
		trick := NewTrick(trump)
		g.setTrick(trick)
		for j := 0; j < NumSeats; j++ {
			seat := g.seats[(lead+j)%NumSeats]
			g.setTurn(seat.Index, "deciding")
			g.pushState()

			legal := seat.Hand.LegalPlays(trick, g.cfg.AllowUnderTrump)
			c, err := seat.Player.ChooseCard(ctx, legal)
			if err != nil {
				return InvalidSeat, fmt.Errorf("%v choosing card: %w", seat, err)
			}
			if !legal.Contains(c) {
				return InvalidSeat, fmt.Errorf("%v answered %v: %w", seat, c, ErrIllegalCard)
			}
			_ = seat.Hand.Remove(c)
			trick.Add(seat.Index, c)
			g.setTrick(trick)
			g.setTurn(seat.Index, "played")
			g.pushState()
		}

		win := trick.Winner()
		winner := g.seats[win.Seat]
		winner.RoundScore += trick.Score()
		winner.TricksWon++
		g.broadcast("trick-winner", map[string]any{
			"seat":  win.Seat,
			"card":  win.Card,
			"score": trick.Score(),
		})
		lead = win.Seat

		if err := g.pause(ctx); err != nil {
			return InvalidSeat, err
		}
	}
	g.state.Trick = nil
	g.state.Turn = nil
	return lead, nil
}

func (g *Game) pause(ctx context.Context) error {
	if g.cfg.TrickPause <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.cfg.TrickPause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
