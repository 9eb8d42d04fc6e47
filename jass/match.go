package jass

import "context"

// Match is what the server layer drives: either mode behind one face.
type Match interface {
	PlayRound(ctx context.Context) error
	Ended() bool
	Round() int
	Seats() [NumSeats]*Seat
	AddSpectator(StateSink)
}

var (
	_ Match = (*Schieber)(nil)
	_ Match = (*Differenzler)(nil)
)

// Run plays rounds until the match ends or a round fails.
func Run(ctx context.Context, m Match) error {
	for !m.Ended() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.PlayRound(ctx); err != nil {
			return err
		}
	}
	return nil
}
