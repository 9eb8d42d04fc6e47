package lobby

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"jass-lite/apps/server/internal/codec"
	"jass-lite/apps/server/internal/ledger"
	"jass-lite/apps/server/internal/session"
	"jass-lite/jass"
	"jass-lite/jass/bot"
)

// QueueResult reports what happened to a queue attempt.
type QueueResult string

const (
	QueueSuccess      QueueResult = "success"
	QueueUnknownLobby QueueResult = "unknown-lobby"
	QueueInGame       QueueResult = "in-game"
	QueueFull         QueueResult = "full"
	QueueExpired      QueueResult = "expired"
)

// notifyDebounce batches waiting-players updates so a burst of joins
// produces one push.
const notifyDebounce = 200 * time.Millisecond

// Matchmaker owns all lobbies and running matches. The default lobby
// always exists and refreshes itself when its match starts; private
// lobbies are created on first join and expire unused.
type Matchmaker struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	active  map[string]*activeMatch // reconnect token -> running match entry
	pending map[string]*time.Timer  // lobby ID -> debounced notify

	bots   *bot.Manager
	ledger ledger.Service

	// MatchConfig seeds every started match. Set before serving.
	MatchConfig jass.Config
}

type activeMatch struct {
	matchID string
	player  *session.NetworkPlayer
}

func NewMatchmaker(bots *bot.Manager, lgr ledger.Service) *Matchmaker {
	mm := &Matchmaker{
		lobbies: make(map[string]*Lobby),
		active:  make(map[string]*activeMatch),
		pending: make(map[string]*time.Timer),
		bots:    bots,
		ledger:  lgr,

		MatchConfig: jass.DefaultConfig(),
	}
	mm.lobbies[DefaultLobbyID] = newLobby(DefaultLobbyID, true)
	return mm
}

// QueuePlayer adds np to the lobby. The default lobby is the only one
// joined by well-known ID; other IDs must have been created before via
// CreateLobby.
func (mm *Matchmaker) QueuePlayer(lobbyID string, accountID uint64, np *session.NetworkPlayer) QueueResult {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	l, ok := mm.lobbies[lobbyID]
	if !ok {
		return QueueUnknownLobby
	}
	if l.expired(time.Now()) {
		delete(mm.lobbies, lobbyID)
		return QueueExpired
	}
	if l.started {
		return QueueInGame
	}
	if l.has(accountID) {
		return QueueInGame
	}
	if len(l.waiters) >= jass.NumSeats {
		return QueueFull
	}

	// A player waits in at most one lobby at a time.
	for _, other := range mm.lobbies {
		if other == l || other.started {
			continue
		}
		for i, w := range other.waiters {
			if w.accountID == accountID {
				other.waiters = append(other.waiters[:i], other.waiters[i+1:]...)
				mm.notifyLocked(other)
				break
			}
		}
	}

	l.waiters = append(l.waiters, &waiter{accountID: accountID, player: np})
	mm.notifyLocked(l)
	return QueueSuccess
}

// QueueSpectator attaches a watcher to the lobby. Spectators take no
// seat; joining an in-game lobby hooks straight into the running
// match's broadcast feed.
func (mm *Matchmaker) QueueSpectator(lobbyID string, sp *session.Spectator) QueueResult {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	l, ok := mm.lobbies[lobbyID]
	if !ok {
		return QueueUnknownLobby
	}
	if l.expired(time.Now()) {
		delete(mm.lobbies, lobbyID)
		return QueueExpired
	}
	if l.started {
		l.match.AddSpectator(sp)
		return QueueSuccess
	}
	l.spectators = append(l.spectators, sp)
	return QueueSuccess
}

// CreateLobby opens a private lobby and returns its ID.
func (mm *Matchmaker) CreateLobby() string {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	id := uuid.NewString()
	mm.lobbies[id] = newLobby(id, false)
	return id
}

// Drop removes a queued player before its match started, e.g. when the
// connection dies in the waiting room.
func (mm *Matchmaker) Drop(accountID uint64) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	for _, l := range mm.lobbies {
		for i, w := range l.waiters {
			if w.accountID == accountID && !l.started {
				l.waiters = append(l.waiters[:i], l.waiters[i+1:]...)
				mm.notifyLocked(l)
				return
			}
		}
	}
}

// SetGameType changes the mode a lobby will start. Only queued
// players may change it.
func (mm *Matchmaker) SetGameType(lobbyID string, accountID uint64, gt GameType) error {
	if gt != GameTypeSchieber && gt != GameTypeDifferenzler {
		return fmt.Errorf("unknown game type %q", gt)
	}
	mm.mu.Lock()
	defer mm.mu.Unlock()
	l, ok := mm.lobbies[lobbyID]
	if !ok {
		return fmt.Errorf("unknown lobby %q", lobbyID)
	}
	if !l.has(accountID) {
		return fmt.Errorf("not a member of lobby %q", lobbyID)
	}
	if l.started {
		return fmt.Errorf("lobby %q already started", lobbyID)
	}
	l.gameType = gt
	mm.notifyLocked(l)
	return nil
}

// RequestStart starts the lobby's match on behalf of a queued player,
// filling open seats with bots.
func (mm *Matchmaker) RequestStart(lobbyID string, accountID uint64) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	l, ok := mm.lobbies[lobbyID]
	if !ok {
		return fmt.Errorf("unknown lobby %q", lobbyID)
	}
	if !l.has(accountID) {
		return fmt.Errorf("not a member of lobby %q", lobbyID)
	}
	return mm.startLocked(l)
}

// startLocked consumes the lobby and launches its match. An overfull
// lobby means the queue bookkeeping is broken: it is reported and the
// lobby is left alone rather than silently refreshed.
func (mm *Matchmaker) startLocked(l *Lobby) error {
	if l.started {
		return fmt.Errorf("lobby %q already started", l.ID)
	}
	if len(l.waiters) == 0 {
		return fmt.Errorf("lobby %q has no players", l.ID)
	}
	if len(l.waiters) > jass.NumSeats {
		log.Printf("[Matchmaker] invariant violation: lobby %s holds %d players", l.ID, len(l.waiters))
		return fmt.Errorf("lobby %q is overfull", l.ID)
	}
	var players [jass.NumSeats]jass.Player
	var humans []*session.NetworkPlayer
	var botIDs []uint64
	for i, w := range l.waiters {
		players[i] = w.player
		humans = append(humans, w.player)
	}
	for i := len(l.waiters); i < jass.NumSeats; i++ {
		id, b := mm.bots.Spawn()
		players[i] = b
		botIDs = append(botIDs, id)
	}

	cfg := mm.MatchConfig
	var match jass.Match
	var err error
	switch l.gameType {
	case GameTypeDifferenzler:
		match, err = jass.NewDifferenzler(cfg, players)
	default:
		match, err = jass.NewSchieber(cfg, players)
	}
	if err != nil {
		for _, id := range botIDs {
			mm.bots.Release(id)
		}
		return fmt.Errorf("start lobby %q: %w", l.ID, err)
	}
	l.started = true
	l.match = match

	for _, sp := range l.spectators {
		match.AddSpectator(sp)
	}

	matchID := uuid.NewString()
	for _, np := range humans {
		mm.active[np.Token()] = &activeMatch{matchID: matchID, player: np}
	}

	// A refreshing lobby opens a fresh waiting room under its ID right
	// away; a private lobby stays registered in-game so late joiners
	// can spectate, and is removed once the match closes.
	if l.autoRefresh {
		mm.lobbies[l.ID] = newLobby(l.ID, true)
	}

	log.Printf("[Matchmaker] starting %s match %s from lobby %s (%d humans, %d bots)",
		l.gameType, matchID, l.ID, len(humans), len(botIDs))
	go mm.runMatch(matchID, l, match, humans, botIDs)
	return nil
}

// runMatch plays the match to its end, persists the result and cleans
// up the lobby entry, bots and reconnect entries.
func (mm *Matchmaker) runMatch(matchID string, l *Lobby, match jass.Match,
	humans []*session.NetworkPlayer, botIDs []uint64) {

	start := time.Now()
	if err := jass.Run(context.Background(), match); err != nil {
		log.Printf("[Matchmaker] match %s aborted: %v", matchID, err)
	}

	rec := ledger.MatchRecord{
		MatchID:  matchID,
		Mode:     string(l.gameType),
		PlayedAt: start,
		Rounds:   match.Round(),
	}
	for i, seat := range match.Seats() {
		rec.Seats[i] = ledger.SeatResult{Name: seat.Player.Name(), Total: seat.Total}
	}
	if s, ok := match.(*jass.Schieber); ok {
		tt := s.TeamTotals()
		rec.TeamTotals = &tt
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := mm.ledger.RecordMatch(ctx, rec); err != nil {
		log.Printf("[Matchmaker] match %s not recorded: %v", matchID, err)
	}
	cancel()

	mm.mu.Lock()
	if cur, ok := mm.lobbies[l.ID]; ok && cur == l {
		delete(mm.lobbies, l.ID)
	}
	for _, np := range humans {
		delete(mm.active, np.Token())
	}
	mm.mu.Unlock()
	for _, id := range botIDs {
		mm.bots.Release(id)
	}
	for _, np := range humans {
		np.Close()
	}
	log.Printf("[Matchmaker] match %s finished after %d rounds", matchID, match.Round())
}

// Reconnect reattaches a channel to the player behind token and
// closes the superseded connection. It returns the player so the
// gateway can route answers, false when the token maps to no running
// match.
func (mm *Matchmaker) Reconnect(token string, ch session.Channel) (*session.NetworkPlayer, bool) {
	mm.mu.Lock()
	entry, ok := mm.active[token]
	mm.mu.Unlock()
	if !ok {
		return nil, false
	}
	old := entry.player.SetChannel(ch)
	if closer, ok := old.(io.Closer); ok && old != ch {
		_ = closer.Close()
	}
	log.Printf("[Matchmaker] %s reconnected to match %s", entry.player.Name(), entry.matchID)
	return entry.player, true
}

// CanReconnect reports whether token belongs to a running match.
func (mm *Matchmaker) CanReconnect(token string) bool {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	_, ok := mm.active[token]
	return ok
}

// notifyLocked schedules a debounced waiting-players push for l.
func (mm *Matchmaker) notifyLocked(l *Lobby) {
	if _, pending := mm.pending[l.ID]; pending {
		return
	}
	id := l.ID
	mm.pending[id] = time.AfterFunc(notifyDebounce, func() {
		mm.mu.Lock()
		delete(mm.pending, id)
		cur, ok := mm.lobbies[id]
		if !ok || cur.started {
			mm.mu.Unlock()
			return
		}
		msg := codec.ServerMessage{Type: codec.TypeWaitingPlayers, Data: map[string]any{
			"lobby":    cur.ID,
			"gameType": string(cur.gameType),
			"players":  cur.playerNames(),
		}}
		targets := make([]*session.NetworkPlayer, 0, len(cur.waiters))
		for _, w := range cur.waiters {
			targets = append(targets, w.player)
		}
		mm.mu.Unlock()
		for _, np := range targets {
			if err := np.Notify(msg); err != nil {
				log.Printf("[Matchmaker] waiting update to %s failed: %v", np.Name(), err)
			}
		}
	})
}
