package lobby

import (
	"testing"
	"time"

	"jass-lite/apps/server/internal/ledger"
	"jass-lite/apps/server/internal/session"
	"jass-lite/jass"
	"jass-lite/jass/bot"
)

func testMatchmaker(t *testing.T) *Matchmaker {
	t.Helper()
	t.Setenv("LEDGER_MODE", "memory")
	svc, _, err := ledger.NewServiceFromEnv()
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	mm := NewMatchmaker(bot.NewManager(bot.NewRegistry()), svc)
	cfg := jass.DefaultConfig()
	cfg.TrickPause = 0
	cfg.Rounds = 1
	cfg.TargetScore = 1
	mm.MatchConfig = cfg
	return mm
}

func testPlayer(name string) *session.NetworkPlayer {
	timeouts := session.Timeouts{
		Card:  10 * time.Millisecond,
		Trump: 10 * time.Millisecond,
		Guess: 10 * time.Millisecond,
		Wyys:  10 * time.Millisecond,
	}
	return session.NewNetworkPlayer(name, "tok-"+name, nil, timeouts)
}

func TestQueuePlayer_UnknownLobby(t *testing.T) {
	mm := testMatchmaker(t)
	if got := mm.QueuePlayer("nope", 1, testPlayer("a")); got != QueueUnknownLobby {
		t.Fatalf("result = %v, want %v", got, QueueUnknownLobby)
	}
}

func TestQueuePlayer_DuplicateAndFull(t *testing.T) {
	mm := testMatchmaker(t)
	for i := uint64(1); i <= 4; i++ {
		if got := mm.QueuePlayer(DefaultLobbyID, i, testPlayer("p")); got != QueueSuccess {
			t.Fatalf("join %d: %v", i, got)
		}
	}
	if got := mm.QueuePlayer(DefaultLobbyID, 2, testPlayer("dup")); got != QueueInGame {
		t.Fatalf("duplicate join = %v, want %v", got, QueueInGame)
	}
	if got := mm.QueuePlayer(DefaultLobbyID, 5, testPlayer("fifth")); got != QueueFull {
		t.Fatalf("fifth join = %v, want %v", got, QueueFull)
	}
}

func TestRequestStart_RequiresMembership(t *testing.T) {
	mm := testMatchmaker(t)
	if err := mm.RequestStart(DefaultLobbyID, 42); err == nil {
		t.Fatalf("non-member start must fail")
	}
}

func TestRequestStart_StartsOnceAndRefreshesDefault(t *testing.T) {
	mm := testMatchmaker(t)
	np := testPlayer("solo")
	if got := mm.QueuePlayer(DefaultLobbyID, 1, np); got != QueueSuccess {
		t.Fatalf("join: %v", got)
	}
	if err := mm.RequestStart(DefaultLobbyID, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !mm.CanReconnect(np.Token()) {
		t.Fatalf("running match must be reconnectable")
	}

	// The consumed default lobby is replaced by a fresh one: the same
	// start request finds no membership anymore.
	if err := mm.RequestStart(DefaultLobbyID, 1); err == nil {
		t.Fatalf("second start on the same membership must fail")
	}
	if got := mm.QueuePlayer(DefaultLobbyID, 2, testPlayer("next")); got != QueueSuccess {
		t.Fatalf("refreshed default lobby rejected a join: %v", got)
	}
}

func TestStartedLobby_SpectatableButNotJoinable(t *testing.T) {
	mm := testMatchmaker(t)
	id := mm.CreateLobby()
	if got := mm.QueuePlayer(id, 1, testPlayer("host")); got != QueueSuccess {
		t.Fatalf("join: %v", got)
	}
	if err := mm.RequestStart(id, 1); err != nil {
		t.Fatalf("start: %v", err)
	}

	// The lobby stays registered in-game: seats are gone but late
	// joiners can still watch the running match.
	if got := mm.QueuePlayer(id, 2, testPlayer("late")); got != QueueInGame {
		t.Fatalf("late join = %v, want %v", got, QueueInGame)
	}
	if got := mm.QueueSpectator(id, session.NewSpectator(nil)); got != QueueSuccess {
		t.Fatalf("late spectate = %v, want %v", got, QueueSuccess)
	}
}

func TestRequestStart_EmptyLobby(t *testing.T) {
	mm := testMatchmaker(t)
	id := mm.CreateLobby()
	if got := mm.QueuePlayer(id, 1, testPlayer("a")); got != QueueSuccess {
		t.Fatalf("join private lobby: %v", got)
	}
	mm.Drop(1)
	if err := mm.RequestStart(id, 1); err == nil {
		t.Fatalf("empty lobby must not start")
	}
}

func TestSetGameType(t *testing.T) {
	mm := testMatchmaker(t)
	if got := mm.QueuePlayer(DefaultLobbyID, 1, testPlayer("a")); got != QueueSuccess {
		t.Fatalf("join: %v", got)
	}
	if err := mm.SetGameType(DefaultLobbyID, 1, GameType("tarot")); err == nil {
		t.Fatalf("unknown game type must fail")
	}
	if err := mm.SetGameType(DefaultLobbyID, 2, GameTypeDifferenzler); err == nil {
		t.Fatalf("non-member must not change the game type")
	}
	if err := mm.SetGameType(DefaultLobbyID, 1, GameTypeDifferenzler); err != nil {
		t.Fatalf("SetGameType: %v", err)
	}
}

func TestCanReconnect_UnknownToken(t *testing.T) {
	mm := testMatchmaker(t)
	if mm.CanReconnect("nope") {
		t.Fatalf("unknown token must not be reconnectable")
	}
	if _, ok := mm.Reconnect("nope", nil); ok {
		t.Fatalf("unknown token must not reconnect")
	}
}
