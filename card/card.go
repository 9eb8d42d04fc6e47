package card

import "fmt"

// Card is an interned playing-card value.
//
// Encoding:
// - high nibble: suit (0:Schelle, 1:Roesle, 2:Schilte, 3:Eichel)
// - low nibble: rank (6..9, 10:Banner, 11:Under, 12:Ober, 13:Koenig, 14:Ass)
//
// A Card is a plain byte, so two calls to Of with the same suit and rank
// yield the identical value and hand membership works by identity.
type Card byte

// Of returns the canonical Card for a (suit, rank) pair.
func Of(s Suit, r Rank) Card {
	if s > Eichel || r < RankSechser || r > RankAss {
		return CardInvalid
	}
	return Card(byte(s)<<4 | byte(r))
}

func (c Card) Suit() Suit { return Suit(c >> 4) }

func (c Card) Rank() Rank {
	if c == CardInvalid {
		return 0
	}
	return Rank(c & 0x0F)
}

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	return fmt.Sprintf("%s %s", c.Suit(), c.Rank())
}

// Compare orders cards suit-first, then rank: the display order of a
// sorted hand. It says nothing about trick strength.
func Compare(a, b Card) int {
	if a.Suit() != b.Suit() {
		return int(a.Suit()) - int(b.Suit())
	}
	return int(a.Rank()) - int(b.Rank())
}

// IsNeighbour reports whether b directly follows a within one suit.
func IsNeighbour(a, b Card) bool {
	return a.Suit() == b.Suit() && b.Rank() == a.Rank()+1
}
