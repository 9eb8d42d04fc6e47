package jass

import (
	"context"
	"fmt"

	"jass-lite/card"
)

// Schieber is the partnered mode: seats 0&2 against 1&3, the round
// starter picks trump or shoves the decision to the partner, team card
// points are multiplied by the trump factor and a team wins at the
// target score.
type Schieber struct {
	*Game
	teamTotals [2]int
}

func NewSchieber(cfg Config, players [NumSeats]Player) (*Schieber, error) {
	g, err := newGame("schieber", cfg, players)
	if err != nil {
		return nil, err
	}
	return &Schieber{Game: g}, nil
}

// TeamTotals returns the running match scores of team 0 (seats 0&2)
// and team 1 (seats 1&3).
func (s *Schieber) TeamTotals() [2]int {
	return s.teamTotals
}

// PlayRound deals, selects trump, runs the meld phase and the nine
// tricks, then folds the round into the team totals. ErrMatchEnded
// once a team has reached the target.
func (s *Schieber) PlayRound(ctx context.Context) error {
	if s.ended {
		return ErrMatchEnded
	}
	s.round++
	s.deal()

	starter := s.starter
	if s.round == 1 {
		// The holder of the Rösle Siebner opens the match.
		starter = s.holderOf(card.CardRoesle7)
	}
	s.broadcast("round-start", map[string]any{"round": s.round, "starter": starter})

	trump, chooser, err := s.selectTrump(ctx, starter)
	if err != nil {
		return err
	}
	s.broadcast("trump", map[string]any{"trump": trump.String(), "seat": chooser})

	wyysTeam, wyysBonus, err := s.wyysPhase(ctx, trump, starter)
	if err != nil {
		return err
	}

	lastWinner, err := s.playTricks(ctx, trump, starter)
	if err != nil {
		return err
	}
	s.seats[lastWinner].RoundScore += LastTrickBonus

	s.settleRound(trump, wyysTeam, wyysBonus)
	s.starter = (starter + 1) % NumSeats
	return nil
}

// selectTrump asks the starter, offering the shove; on shove the
// partner decides and may not shove back.
func (s *Schieber) selectTrump(ctx context.Context, starter int) (Trump, int, error) {
	options := make([]TrumpChoice, 0, 7)
	for _, t := range SuitTrumps {
		options = append(options, TrumpChoice{Trump: t})
	}
	options = append(options,
		TrumpChoice{Trump: Obenabe},
		TrumpChoice{Trump: Unneufe},
		TrumpChoice{Schieb: true},
	)

	chooser := starter
	choice, err := s.seats[chooser].Player.ChooseTrump(ctx, s.seats[chooser].Hand.Cards(), options)
	if err != nil {
		return TrumpNone, InvalidSeat, fmt.Errorf("%v choosing trump: %w", s.seats[chooser], err)
	}
	if choice.Schieb {
		chooser = Teammate(starter)
		s.broadcast("schieb", map[string]any{"from": starter, "to": chooser})
		choice, err = s.seats[chooser].Player.ChooseTrump(ctx, s.seats[chooser].Hand.Cards(), options[:len(options)-1])
		if err != nil {
			return TrumpNone, InvalidSeat, fmt.Errorf("%v choosing trump: %w", s.seats[chooser], err)
		}
	}
	return choice.Trump, chooser, nil
}

// wyysPhase walks the seats in turn order and offers each its best
// meld, but only when it outranks everything revealed so far. The team
// of the last accepted (and therefore best) meld collects its value.
func (s *Schieber) wyysPhase(ctx context.Context, trump Trump, starter int) (int, int, error) {
	bestSeat := InvalidSeat
	var best Wyys
	for j := 0; j < NumSeats; j++ {
		seat := s.seats[(starter+j)%NumSeats]
		w, ok := BestWyys(trump, seat.Hand.Cards())
		if !ok {
			continue
		}
		if bestSeat != InvalidSeat && CompareWyys(trump, w, best) <= 0 {
			continue
		}
		accept, err := seat.Player.DecideWyys(ctx, w)
		if err != nil {
			return InvalidSeat, 0, fmt.Errorf("%v deciding wyys: %w", seat, err)
		}
		if !accept {
			continue
		}
		seat.Wyyses = append(seat.Wyyses, w)
		best, bestSeat = w, seat.Index
		s.broadcast("wyys", map[string]any{"seat": seat.Index, "wyys": w.String(), "score": w.Score()})
	}
	if bestSeat == InvalidSeat {
		return InvalidSeat, 0, nil
	}
	return TeamOf(bestSeat), best.Score(), nil
}

// settleRound folds card points, meld and match bonus into the team
// totals and announces the result.
func (s *Schieber) settleRound(trump Trump, wyysTeam, wyysBonus int) {
	var raw [2]int
	var tricks [2]int
	for _, seat := range s.seats {
		raw[TeamOf(seat.Index)] += seat.RoundScore
		tricks[TeamOf(seat.Index)] += seat.TricksWon
	}
	if wyysTeam != InvalidSeat {
		raw[wyysTeam] += wyysBonus
	}
	for team := range raw {
		if tricks[team] == TricksPerRound {
			raw[team] += MatchBonus
		}
		s.teamTotals[team] += raw[team] * trump.Multiplier()
	}
	for _, seat := range s.seats {
		seat.Total = s.teamTotals[TeamOf(seat.Index)]
	}
	s.broadcast("round-result", map[string]any{
		"round":      s.round,
		"trump":      trump.String(),
		"multiplier": trump.Multiplier(),
		"raw":        raw,
		"totals":     s.teamTotals,
	})
	for _, total := range s.teamTotals {
		if total >= s.cfg.TargetScore {
			s.ended = true
			s.broadcast("match-end", map[string]any{"totals": s.teamTotals})
			return
		}
	}
}
