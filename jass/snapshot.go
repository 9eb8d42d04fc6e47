package jass

import "jass-lite/card"

// maxMessages bounds the running message log kept in the state.
const maxMessages = 32

// PlayView is one card on the table, as shown to clients.
type PlayView struct {
	Seat int       `json:"seat"`
	Card card.Card `json:"card"`
	Name string    `json:"name"`
}

// TrickView is the public view of the trick in progress.
type TrickView struct {
	Trump string     `json:"trump"`
	Plays []PlayView `json:"plays"`
}

// TurnIndicator marks whose move it is. Phase is "deciding" while the
// seat is being asked and "played" right after its card landed.
type TurnIndicator struct {
	Seat  int    `json:"seat"`
	Phase string `json:"phase"`
}

// Message is one entry of the running event log: trump announcements,
// trick winners, round results.
type Message struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// GameState is the public table view pushed to every sink after each
// play. It contains nothing private, hands appear only as counts; the
// session layer adds the per-player hand on top.
type GameState struct {
	Mode      string           `json:"mode"`
	Round     int              `json:"round"`
	Trick     *TrickView       `json:"trick,omitempty"`
	Turn      *TurnIndicator   `json:"turn,omitempty"`
	Messages  []Message        `json:"messages"`
	HandSizes [NumSeats]int    `json:"handSizes"`
	Names     [NumSeats]string `json:"names"`
	Totals    [NumSeats]int    `json:"totals"`
}

// clone deep-copies the state so sinks never observe later mutation.
func (s GameState) clone() GameState {
	out := s
	if s.Trick != nil {
		t := *s.Trick
		t.Plays = append([]PlayView{}, s.Trick.Plays...)
		out.Trick = &t
	}
	if s.Turn != nil {
		t := *s.Turn
		out.Turn = &t
	}
	out.Messages = append([]Message{}, s.Messages...)
	return out
}

func viewOfTrick(t *Trick) *TrickView {
	v := &TrickView{Trump: t.Trump.String(), Plays: make([]PlayView, 0, len(t.Plays))}
	for _, p := range t.Plays {
		v.Plays = append(v.Plays, PlayView{Seat: p.Seat, Card: p.Card, Name: p.Card.String()})
	}
	return v
}
