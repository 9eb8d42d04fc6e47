package jass

// NumSeats is fixed: Jass is a four-seat game and the engine deals the
// whole 36-card deck evenly.
const NumSeats = 4

const InvalidSeat = -1

// TricksPerRound is deck size divided by seats.
const TricksPerRound = 36 / NumSeats

// LastTrickBonus is awarded to the winner of the final trick.
const LastTrickBonus = 5

// MatchBonus is awarded to a team that takes every trick of a round.
const MatchBonus = 100

// MaxRoundScore is the highest plain round score a single party can
// reach: 152 card points plus the last-trick bonus.
const MaxRoundScore = 157

// Teammate returns the partner seat (Schieber pairs 0&2 and 1&3).
func Teammate(seat int) int {
	return (seat + 2) % NumSeats
}

// TeamOf maps a seat to its team index (0 or 1).
func TeamOf(seat int) int {
	return seat % 2
}
