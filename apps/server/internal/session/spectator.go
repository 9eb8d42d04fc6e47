package session

import (
	"sync"

	"jass-lite/apps/server/internal/codec"
	"jass-lite/jass"
)

// Spectator mirrors the public table state to a client that holds no
// seat. It never receives questions or a hand.
type Spectator struct {
	mu sync.Mutex
	ch Channel
}

func NewSpectator(ch Channel) *Spectator {
	return &Spectator{ch: ch}
}

// SetChannel swaps the connection, nil detaches.
func (s *Spectator) SetChannel(ch Channel) {
	s.mu.Lock()
	s.ch = ch
	s.mu.Unlock()
}

// PushState implements jass.StateSink.
func (s *Spectator) PushState(state jass.GameState) {
	s.mu.Lock()
	ch := s.ch
	s.mu.Unlock()
	if ch == nil {
		return
	}
	_ = ch.Send(codec.ServerMessage{Type: codec.TypeGameInfo, Data: codec.GameInfo{
		IsSpectating:  true,
		OwnSeat:       jass.InvalidSeat,
		GameState:     &state,
		OpenQuestions: []codec.Question{},
	}})
}

var _ jass.StateSink = (*Spectator)(nil)
