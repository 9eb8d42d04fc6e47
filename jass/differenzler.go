package jass

import (
	"context"
	"fmt"
	"sync"
)

// Differenzler is the solo mode: a trump suit is drawn at random, every seat
// predicts its own round score before the first trick and collects the
// absolute deviation afterwards. Lowest total after the fixed round
// count wins.
type Differenzler struct {
	*Game
}

func NewDifferenzler(cfg Config, players [NumSeats]Player) (*Differenzler, error) {
	g, err := newGame("differenzler", cfg, players)
	if err != nil {
		return nil, err
	}
	return &Differenzler{Game: g}, nil
}

// PlayRound deals, draws trump, collects all four guesses, plays the
// tricks and adds each seat's deviation to its total.
func (d *Differenzler) PlayRound(ctx context.Context) error {
	if d.ended {
		return ErrMatchEnded
	}
	d.round++
	d.deal()

	trump := SuitTrumps[d.rng.Intn(len(SuitTrumps))]
	starter := d.rng.Intn(NumSeats)
	d.broadcast("round-start", map[string]any{"round": d.round, "starter": starter})
	d.broadcast("trump", map[string]any{"trump": trump.String()})

	if err := d.collectGuesses(ctx); err != nil {
		return err
	}

	lastWinner, err := d.playTricks(ctx, trump, starter)
	if err != nil {
		return err
	}
	d.seats[lastWinner].RoundScore += LastTrickBonus

	deviations := d.settleRound()
	var totals [NumSeats]int
	for i, seat := range d.seats {
		totals[i] = seat.Total
	}
	d.broadcast("round-result", map[string]any{
		"round":      d.round,
		"deviations": deviations,
		"totals":     totals,
	})
	if d.round >= d.cfg.Rounds {
		d.ended = true
		d.broadcast("match-end", map[string]any{"totals": totals})
	}
	return nil
}

// collectGuesses asks all seats in parallel, the guesses are
// independent and hidden from each other until the round ends.
func (d *Differenzler) collectGuesses(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make([]error, NumSeats)
	for i, seat := range d.seats {
		wg.Add(1)
		go func(i int, seat *Seat) {
			defer wg.Done()
			guess, err := seat.Player.GuessScore(ctx, seat.Hand.Cards(), 0, MaxRoundScore)
			if err != nil {
				errs[i] = fmt.Errorf("%v guessing score: %w", seat, err)
				return
			}
			if guess < 0 || guess > MaxRoundScore {
				errs[i] = fmt.Errorf("%v guessed %d: %w", seat, guess, ErrGuessOutOfRange)
				return
			}
			seat.Guess = guess
		}(i, seat)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	d.broadcast("guesses-locked", nil)
	return nil
}

func (d *Differenzler) settleRound() [NumSeats]int {
	var deviations [NumSeats]int
	for i, seat := range d.seats {
		dev := seat.RoundScore - seat.Guess
		if dev < 0 {
			dev = -dev
		}
		deviations[i] = dev
		seat.Total += dev
	}
	return deviations
}
