package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"jass-lite/card"
	"jass-lite/jass"
)

// ClientMessage is the single inbound envelope. Type selects the
// route, the other fields are populated per type.
type ClientMessage struct {
	Type string `json:"type"`

	// answer
	QID    uint64          `json:"qid,omitempty"`
	Answer json.RawMessage `json:"answer,omitempty"`

	// lobby.join / lobby.set-game-option
	Name     string          `json:"name,omitempty"`
	Lobby    string          `json:"lobby,omitempty"`
	Spectate bool            `json:"spectate,omitempty"`
	Option   string          `json:"option,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`

	// lobby.reconnect / lobby.can-reconnect
	Token string `json:"token,omitempty"`

	// server.check-version
	Version string `json:"version,omitempty"`
}

// Inbound message types.
const (
	TypeAnswer        = "answer"
	TypeLobbyJoin     = "lobby.join"
	TypeReconnect     = "lobby.reconnect"
	TypeCanReconnect  = "lobby.can-reconnect"
	TypeSetGameOption = "lobby.set-game-option"
	TypeCheckVersion  = "server.check-version"
)

// Outbound message types.
const (
	TypeGameInfo          = "gameinfo"
	TypeWaitingPlayers    = "lobby.waiting-players-update"
	TypeLobbyError        = "lobby.error"
	TypeReconnectToken    = "server.reconnect-token"
	TypeForceReload       = "server.force-reload"
	TypeCanReconnectReply = "lobby.can-reconnect-result"
)

// ServerMessage is the single outbound envelope.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Question is one open ask shown to the client. QID is strictly
// increasing per player; an invalid answer retires the old QID and the
// question reappears under a fresh one with Note explaining why.
type Question struct {
	QID     uint64 `json:"qid"`
	Kind    string `json:"kind"`
	Payload any    `json:"payload,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Question kinds.
const (
	QuestionCard  = "card"
	QuestionTrump = "trump"
	QuestionGuess = "guess"
	QuestionWyys  = "wyys"
)

// GameInfo is the per-player table packet: the public state plus the
// private hand and the player's open questions.
type GameInfo struct {
	IsSpectating   bool            `json:"isSpectating"`
	OwnSeat        int             `json:"ownSeat"`
	Hand           card.CardList   `json:"hand"`
	GameState      *jass.GameState `json:"gameState,omitempty"`
	OpenQuestions  []Question      `json:"openQuestions"`
	ReconnectToken string          `json:"reconnectToken,omitempty"`
}

// LobbyError is the payload of TypeLobbyError.
type LobbyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Serializer lets a payload substitute its own wire form. The result
// is walked again, so hooks may nest.
type Serializer interface {
	Serialize() any
}

// Marshal encodes a ServerMessage, expanding Serializer hooks
// recursively. A payload the walker cannot express is an error, not a
// silently mangled message; senders report it per recipient.
func Marshal(msg ServerMessage) ([]byte, error) {
	data, err := walk(reflect.ValueOf(msg.Data))
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", msg.Type, err)
	}
	return json.Marshal(ServerMessage{Type: msg.Type, Data: data})
}

func walk(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(Serializer); ok {
			return walk(reflect.ValueOf(s.Serialize()))
		}
	}
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v.Interface(), nil
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil, nil
		}
		return walk(v.Elem())
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []any{}, nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			el, err := walk(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = el
		}
		return out, nil
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key, ok := iter.Key().Interface().(string)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a string", iter.Key())
			}
			el, err := walk(iter.Value())
			if err != nil {
				return nil, err
			}
			out[key] = el
		}
		return out, nil
	case reflect.Struct:
		// Types carrying their own JSON form (time.Time and friends)
		// pass through; plain structs are walked member-wise so hooks
		// in fields get expanded too.
		if _, ok := v.Interface().(json.Marshaler); ok {
			return v.Interface(), nil
		}
		out := make(map[string]any)
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" || f.Tag.Get("json") == "-" {
				continue
			}
			name, omitEmpty := jsonFieldName(f)
			fv := v.Field(i)
			if omitEmpty && fv.IsZero() {
				continue
			}
			el, err := walk(fv)
			if err != nil {
				return nil, err
			}
			out[name] = el
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot serialize %s value", v.Kind())
	}
}

func jsonFieldName(f reflect.StructField) (name string, omitEmpty bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}
