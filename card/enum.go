package card

const CardInvalid Card = 0

// Schelle
const (
	CardSchelle6 Card = iota + 0x06
	CardSchelle7
	CardSchelle8
	CardSchelle9
	CardSchelleBanner
	CardSchelleUnder
	CardSchelleOber
	CardSchelleKoenig
	CardSchelleAss
)

// Roesle
const (
	CardRoesle6 Card = iota + 0x16
	CardRoesle7
	CardRoesle8
	CardRoesle9
	CardRoesleBanner
	CardRoesleUnder
	CardRoesleOber
	CardRoesleKoenig
	CardRoesleAss
)

// Schilte
const (
	CardSchilte6 Card = iota + 0x26
	CardSchilte7
	CardSchilte8
	CardSchilte9
	CardSchilteBanner
	CardSchilteUnder
	CardSchilteOber
	CardSchilteKoenig
	CardSchilteAss
)

// Eichel
const (
	CardEichel6 Card = iota + 0x36
	CardEichel7
	CardEichel8
	CardEichel9
	CardEichelBanner
	CardEichelUnder
	CardEichelOber
	CardEichelKoenig
	CardEichelAss
)

// Deck returns all 36 distinct cards in suit-then-rank order.
func Deck() CardList {
	out := make(CardList, 0, 36)
	for _, s := range Suits {
		for _, r := range Ranks {
			out = append(out, Of(s, r))
		}
	}
	return out
}
