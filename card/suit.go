package card

type Suit byte

const (
	Schelle Suit = iota
	Roesle
	Schilte
	Eichel
)

var Suits = []Suit{Schelle, Roesle, Schilte, Eichel}

func (s Suit) String() string {
	switch s {
	case Schelle:
		return "Schelle"
	case Roesle:
		return "Roesle"
	case Schilte:
		return "Schilte"
	case Eichel:
		return "Eichel"
	}
	return "?"
}

// Rank runs 6..14; Banner is the ten, Ass counts as 14.
type Rank byte

const (
	RankSechser Rank = 6
	RankSiebner Rank = 7
	RankAchter  Rank = 8
	RankNeune   Rank = 9
	RankBanner  Rank = 10
	RankUnder   Rank = 11
	RankOber    Rank = 12
	RankKoenig  Rank = 13
	RankAss     Rank = 14
)

var Ranks = []Rank{
	RankSechser, RankSiebner, RankAchter, RankNeune, RankBanner,
	RankUnder, RankOber, RankKoenig, RankAss,
}

func (r Rank) String() string {
	switch r {
	case RankBanner:
		return "Banner"
	case RankUnder:
		return "Under"
	case RankOber:
		return "Ober"
	case RankKoenig:
		return "Koenig"
	case RankAss:
		return "Ass"
	default:
		return string('0' + byte(r))
	}
}
