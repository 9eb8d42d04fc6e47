package lobby

import (
	"time"

	"jass-lite/apps/server/internal/session"
	"jass-lite/jass"
)

// GameType selects the match mode a lobby will start.
type GameType string

const (
	GameTypeSchieber     GameType = "schieber"
	GameTypeDifferenzler GameType = "differenzler"
)

// DefaultLobbyID is the always-open lobby every client lands in.
const DefaultLobbyID = "default"

// lobbyTTL expires private lobbies nobody starts.
const lobbyTTL = 30 * time.Minute

// waiter is one queued human player.
type waiter struct {
	accountID uint64
	player    *session.NetworkPlayer
}

// Lobby is a waiting room for one match. It collects up to four human
// players and carries the chosen game type. Starting flips it to
// in-game: it then holds the running match so late joiners can
// spectate, and leaves the registry once the match closes.
type Lobby struct {
	ID          string
	gameType    GameType
	waiters     []*waiter
	spectators  []*session.Spectator
	createdAt   time.Time
	started     bool
	autoRefresh bool
	match       jass.Match
}

func newLobby(id string, autoRefresh bool) *Lobby {
	return &Lobby{
		ID:          id,
		gameType:    GameTypeSchieber,
		createdAt:   time.Now(),
		autoRefresh: autoRefresh,
	}
}

func (l *Lobby) expired(now time.Time) bool {
	return !l.autoRefresh && !l.started && now.Sub(l.createdAt) > lobbyTTL
}

func (l *Lobby) has(accountID uint64) bool {
	for _, w := range l.waiters {
		if w.accountID == accountID {
			return true
		}
	}
	return false
}

func (l *Lobby) playerNames() []string {
	names := make([]string, 0, len(l.waiters))
	for _, w := range l.waiters {
		names = append(names, w.player.Name())
	}
	return names
}
