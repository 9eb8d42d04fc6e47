package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"jass-lite/apps/server/internal/auth"
	"jass-lite/apps/server/internal/codec"
	"jass-lite/apps/server/internal/lobby"
	"jass-lite/apps/server/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection represents a WebSocket client connection.
type Connection struct {
	ID      string
	Conn    *websocket.Conn
	SendQ   chan []byte
	Gateway *Gateway

	mu        sync.Mutex
	accountID uint64
	lobbyID   string
	player    *session.NetworkPlayer
	spectator *session.Spectator
}

// Gateway manages WebSocket connections and routes the wire protocol
// into the matchmaker.
type Gateway struct {
	mu          sync.Mutex
	connections map[string]*Connection
	nextConnID  uint64

	matchmaker *lobby.Matchmaker
	auth       *auth.Manager
	version    string
	timeouts   session.Timeouts
}

// New creates a new Gateway instance. version is the protocol build
// tag clients check themselves against.
func New(mm *lobby.Matchmaker, am *auth.Manager, version string) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		matchmaker:  mm,
		auth:        am,
		version:     version,
		timeouts:    session.DefaultTimeouts(),
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	g.mu.Lock()
	g.nextConnID++
	c := &Connection{
		ID:      fmt.Sprintf("conn_%d", g.nextConnID),
		Conn:    conn,
		SendQ:   make(chan []byte, 256),
		Gateway: g,
	}
	g.connections[c.ID] = c
	total := len(g.connections)
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s, total: %d", c.ID, total)

	go c.readPump()
	go c.writePump()
}

// Close tears the websocket down; the read pump exits and cleans up.
func (c *Connection) Close() error {
	return c.Conn.Close()
}

// Send implements session.Channel. A full queue counts as a dead
// connection, the caller decides whether to retry after reconnect.
func (c *Connection) Send(msg codec.ServerMessage) error {
	data, err := codec.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case c.SendQ <- data:
		return nil
	default:
		return fmt.Errorf("connection %s send queue full", c.ID)
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error: %v", err)
			}
			break
		}
		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	var msg codec.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("[Gateway] Failed to unmarshal from %s: %v", c.ID, err)
		c.sendError("bad-message", "invalid message format")
		return
	}

	switch msg.Type {
	case codec.TypeCheckVersion:
		c.handleCheckVersion(msg)
	case codec.TypeLobbyJoin:
		c.handleLobbyJoin(msg)
	case codec.TypeAnswer:
		c.handleAnswer(msg)
	case codec.TypeReconnect:
		c.handleReconnect(msg)
	case codec.TypeCanReconnect:
		c.handleCanReconnect(msg)
	case codec.TypeSetGameOption:
		c.handleSetGameOption(msg)
	default:
		log.Printf("[Gateway] Unknown message type %q from %s", msg.Type, c.ID)
		c.sendError("bad-message", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

// handleCheckVersion tells outdated clients to reload instead of
// letting them fail on protocol drift mid-match.
func (c *Connection) handleCheckVersion(msg codec.ClientMessage) {
	if msg.Version == c.Gateway.version {
		return
	}
	_ = c.Send(codec.ServerMessage{Type: codec.TypeForceReload, Data: map[string]any{
		"serverVersion": c.Gateway.version,
	}})
}

func (c *Connection) handleLobbyJoin(msg codec.ClientMessage) {
	if !msg.Spectate {
		if err := auth.ValidateName(msg.Name); err != nil {
			c.sendError("bad-name", err.Error())
			return
		}
	}
	c.mu.Lock()
	if c.player != nil {
		c.mu.Unlock()
		c.sendError("already-joined", "connection already holds a player")
		return
	}
	c.mu.Unlock()

	lobbyID := msg.Lobby
	switch lobbyID {
	case "":
		lobbyID = lobby.DefaultLobbyID
	case "new":
		lobbyID = c.Gateway.matchmaker.CreateLobby()
	}

	if msg.Spectate {
		sp := session.NewSpectator(c)
		if result := c.Gateway.matchmaker.QueueSpectator(lobbyID, sp); result != lobby.QueueSuccess {
			c.sendError(string(result), fmt.Sprintf("cannot spectate lobby %q: %s", lobbyID, result))
			return
		}
		c.mu.Lock()
		c.lobbyID = lobbyID
		c.spectator = sp
		c.mu.Unlock()
		return
	}

	accountID, token, err := c.Gateway.auth.CreateGuest(msg.Name)
	if err != nil {
		c.sendError("bad-name", err.Error())
		return
	}
	np := session.NewNetworkPlayer(msg.Name, token, c, c.Gateway.timeouts)

	result := c.Gateway.matchmaker.QueuePlayer(lobbyID, accountID, np)
	if result != lobby.QueueSuccess {
		np.Close()
		c.Gateway.auth.Logout(token)
		c.sendError(string(result), fmt.Sprintf("cannot join lobby %q: %s", lobbyID, result))
		return
	}

	c.mu.Lock()
	c.accountID = accountID
	c.lobbyID = lobbyID
	c.player = np
	c.mu.Unlock()

	_ = c.Send(codec.ServerMessage{Type: codec.TypeReconnectToken, Data: map[string]any{
		"token": token,
		"lobby": lobbyID,
	}})
	log.Printf("[Gateway] %s queued %q into lobby %s", c.ID, msg.Name, lobbyID)
}

func (c *Connection) handleAnswer(msg codec.ClientMessage) {
	c.mu.Lock()
	np := c.player
	c.mu.Unlock()
	if np == nil {
		c.sendError("no-game", "connection holds no player")
		return
	}
	np.HandleAnswer(msg.QID, msg.Answer)
}

func (c *Connection) handleReconnect(msg codec.ClientMessage) {
	accountID, _, ok := c.Gateway.auth.ResolveSession(msg.Token)
	if !ok {
		c.sendError("bad-token", "unknown or expired reconnect token")
		return
	}
	np, ok := c.Gateway.matchmaker.Reconnect(msg.Token, c)
	if !ok {
		c.sendError("no-game", "token belongs to no running match")
		return
	}
	c.mu.Lock()
	c.accountID = accountID
	c.player = np
	c.mu.Unlock()
}

func (c *Connection) handleCanReconnect(msg codec.ClientMessage) {
	_, _, ok := c.Gateway.auth.ResolveSession(msg.Token)
	canReconnect := ok && c.Gateway.matchmaker.CanReconnect(msg.Token)
	_ = c.Send(codec.ServerMessage{Type: codec.TypeCanReconnectReply, Data: map[string]any{
		"ok": canReconnect,
	}})
}

func (c *Connection) handleSetGameOption(msg codec.ClientMessage) {
	c.mu.Lock()
	accountID, lobbyID := c.accountID, c.lobbyID
	c.mu.Unlock()
	if lobbyID == "" {
		c.sendError("no-lobby", "connection is not in a lobby")
		return
	}

	switch msg.Option {
	case "request-start-game":
		if err := c.Gateway.matchmaker.RequestStart(lobbyID, accountID); err != nil {
			c.sendError("start-failed", err.Error())
		}
	case "game-type":
		var gt string
		if err := json.Unmarshal(msg.Value, &gt); err != nil {
			c.sendError("bad-option", "game-type value must be a string")
			return
		}
		if err := c.Gateway.matchmaker.SetGameType(lobbyID, accountID, lobby.GameType(gt)); err != nil {
			c.sendError("bad-option", err.Error())
		}
	default:
		c.sendError("bad-option", fmt.Sprintf("unknown game option %q", msg.Option))
	}
}

func (c *Connection) sendError(code, message string) {
	_ = c.Send(codec.ServerMessage{Type: codec.TypeLobbyError, Data: codec.LobbyError{
		Code:    code,
		Message: message,
	}})
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.SendQ:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// removeConnection detaches the channel but keeps the player alive:
// its match continues on timeouts until the token reconnects or the
// match ends.
func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	delete(g.connections, c.ID)
	total := len(g.connections)
	g.mu.Unlock()

	c.mu.Lock()
	np := c.player
	sp := c.spectator
	accountID := c.accountID
	c.mu.Unlock()
	if sp != nil {
		sp.SetChannel(nil)
	}
	if np != nil {
		// Only detach if this connection is still the live one; a
		// reconnect may already have swapped in a fresh channel.
		np.DetachChannel(c)
		if !g.matchmaker.CanReconnect(np.Token()) {
			// Still in the waiting room, free the slot and the session.
			g.matchmaker.Drop(accountID)
			g.auth.Logout(np.Token())
		}
	}
	log.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, total)
}

var _ session.Channel = (*Connection)(nil)
