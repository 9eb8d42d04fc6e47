package gateway

import (
	"testing"

	"jass-lite/apps/server/internal/auth"
	"jass-lite/apps/server/internal/ledger"
	"jass-lite/apps/server/internal/lobby"
	"jass-lite/apps/server/internal/session"
	"jass-lite/jass/bot"
)

func testGateway(t *testing.T) (*Gateway, *lobby.Matchmaker, *auth.Manager) {
	t.Helper()
	t.Setenv("LEDGER_MODE", "memory")
	svc, _, err := ledger.NewServiceFromEnv()
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	am := auth.NewManager()
	mm := lobby.NewMatchmaker(bot.NewManager(bot.NewRegistry()), svc)
	return New(mm, am, "test"), mm, am
}

func TestRemoveConnection_LogsOutWaitingPlayer(t *testing.T) {
	g, mm, am := testGateway(t)

	accountID, token, err := am.CreateGuest("Resi")
	if err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}
	np := session.NewNetworkPlayer("Resi", token, nil, session.DefaultTimeouts())
	defer np.Close()
	if got := mm.QueuePlayer(lobby.DefaultLobbyID, accountID, np); got != lobby.QueueSuccess {
		t.Fatalf("queue: %v", got)
	}

	c := &Connection{ID: "conn_test", Gateway: g, player: np, accountID: accountID, lobbyID: lobby.DefaultLobbyID}
	g.removeConnection(c)

	if _, _, ok := am.ResolveSession(token); ok {
		t.Fatalf("waiting-room disconnect must log the session out")
	}
	if got := mm.QueuePlayer(lobby.DefaultLobbyID, accountID, np); got != lobby.QueueSuccess {
		t.Fatalf("seat was not freed: %v", got)
	}
}
