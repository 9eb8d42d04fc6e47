package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"jass-lite/apps/server/internal/codec"
	"jass-lite/card"
	"jass-lite/jass"
)

// Channel is the write side of a client connection. Send must not
// block indefinitely; a dead connection should fail fast.
type Channel interface {
	Send(msg codec.ServerMessage) error
}

// Timeouts bounds each decision kind. A player that does not answer in
// time gets a safe fallback so the match never stalls.
type Timeouts struct {
	Card  time.Duration
	Trump time.Duration
	Guess time.Duration
	Wyys  time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Card:  45 * time.Second,
		Trump: 60 * time.Second,
		Guess: 90 * time.Second,
		Wyys:  30 * time.Second,
	}
}

// fallbackGuess is submitted when a score guess times out.
const fallbackGuess = 40

// question is one pending ask. Its QID is re-issued on an invalid
// answer, the result channel stays the same across retries.
type question struct {
	qid      uint64
	kind     string
	payload  any
	note     string
	validate func(raw json.RawMessage) (any, error)
	result   chan any
	resolved bool
}

// NetworkPlayer adapts a websocket client to jass.Player. Decisions
// become numbered questions pushed inside the gameinfo packet; the
// engine call blocks until a validated answer arrives or the question
// times out. The channel may drop and be replaced mid-question, the
// question survives and is re-pushed to the new connection.
type NetworkPlayer struct {
	name     string
	token    string
	timeouts Timeouts

	mu      sync.Mutex
	ch      Channel
	seat    int
	hand    card.CardList
	state   *jass.GameState
	open    map[uint64]*question
	nextQID uint64

	updates chan codec.GameInfo
	done    chan struct{}
}

func NewNetworkPlayer(name, token string, ch Channel, timeouts Timeouts) *NetworkPlayer {
	p := &NetworkPlayer{
		name:     name,
		token:    token,
		timeouts: timeouts,
		ch:       ch,
		seat:     jass.InvalidSeat,
		open:     make(map[uint64]*question),
		updates:  make(chan codec.GameInfo, 1),
		done:     make(chan struct{}),
	}
	go p.sendLoop()
	return p
}

func (p *NetworkPlayer) Name() string { return p.name }

// Token is the reconnect token bound to this player for the lifetime
// of its match.
func (p *NetworkPlayer) Token() string { return p.token }

// Close stops the send loop. The player must not be used afterwards.
func (p *NetworkPlayer) Close() {
	close(p.done)
}

// SetChannel swaps the connection behind the player, nil detaches. It
// returns the superseded channel so the caller can disconnect it. The
// new connection immediately receives the full gameinfo including any
// open questions, which is all a client needs to resume.
func (p *NetworkPlayer) SetChannel(ch Channel) Channel {
	p.mu.Lock()
	old := p.ch
	p.ch = ch
	if ch != nil {
		p.queuePushLocked()
	}
	p.mu.Unlock()
	return old
}

// DetachChannel drops old if it is still the attached channel. A
// connection that was already superseded by a reconnect no-ops here
// instead of tearing the live channel off the player.
func (p *NetworkPlayer) DetachChannel(old Channel) {
	p.mu.Lock()
	if p.ch == old {
		p.ch = nil
	}
	p.mu.Unlock()
}

// Notify forwards an out-of-band message on the current channel, a
// no-op while detached.
func (p *NetworkPlayer) Notify(msg codec.ServerMessage) error {
	p.mu.Lock()
	ch := p.ch
	p.mu.Unlock()
	if ch == nil {
		return nil
	}
	return ch.Send(msg)
}

// Connected reports whether a channel is currently attached.
func (p *NetworkPlayer) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch != nil
}

// ObserveHand implements jass.HandObserver.
func (p *NetworkPlayer) ObserveHand(seat int, hand card.CardList) {
	p.mu.Lock()
	p.seat = seat
	p.hand = append(card.CardList{}, hand...)
	p.queuePushLocked()
	p.mu.Unlock()
}

// PushState implements jass.StateSink.
func (p *NetworkPlayer) PushState(state jass.GameState) {
	p.mu.Lock()
	p.state = &state
	p.queuePushLocked()
	p.mu.Unlock()
}

// HandleAnswer resolves the question qid with the client's raw answer.
// A stale or unknown qid gets an explicit error back. An answer that
// fails validation retires the qid and re-asks the same question under
// a fresh one, with a note telling the client what was wrong.
func (p *NetworkPlayer) HandleAnswer(qid uint64, raw json.RawMessage) {
	p.mu.Lock()
	q, ok := p.open[qid]
	if !ok {
		ch := p.ch
		p.mu.Unlock()
		if ch != nil {
			_ = ch.Send(codec.ServerMessage{Type: codec.TypeLobbyError, Data: codec.LobbyError{
				Code:    "stale-question",
				Message: fmt.Sprintf("question %d is not open", qid),
			}})
		}
		return
	}
	v, err := q.validate(raw)
	if err != nil {
		delete(p.open, qid)
		p.nextQID++
		q.qid = p.nextQID
		q.note = err.Error()
		p.open[q.qid] = q
		p.queuePushLocked()
		p.mu.Unlock()
		return
	}
	q.resolved = true
	delete(p.open, qid)
	p.queuePushLocked()
	p.mu.Unlock()
	q.result <- v
}

func (p *NetworkPlayer) ChooseCard(ctx context.Context, legal card.CardList) (card.Card, error) {
	v, err := p.ask(ctx, codec.QuestionCard,
		map[string]any{"legal": legal},
		p.timeouts.Card,
		func(raw json.RawMessage) (any, error) {
			var c card.Card
			if err := json.Unmarshal(raw, &c); err != nil {
				return nil, fmt.Errorf("answer is not a card: %w", err)
			}
			if !legal.Contains(c) {
				return nil, fmt.Errorf("%v is not a legal play", c)
			}
			return c, nil
		},
		legal[0],
	)
	if err != nil {
		return card.CardInvalid, err
	}
	c := v.(card.Card)
	p.mu.Lock()
	for i, hc := range p.hand {
		if hc == c {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			break
		}
	}
	p.mu.Unlock()
	return c, nil
}

func (p *NetworkPlayer) ChooseTrump(ctx context.Context, hand card.CardList, options []jass.TrumpChoice) (jass.TrumpChoice, error) {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.String()
	}
	v, err := p.ask(ctx, codec.QuestionTrump,
		map[string]any{"options": names},
		p.timeouts.Trump,
		func(raw json.RawMessage) (any, error) {
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				return nil, fmt.Errorf("answer is not a trump name: %w", err)
			}
			for _, o := range options {
				if o.String() == name {
					return o, nil
				}
			}
			return nil, fmt.Errorf("%q is not among the offered options", name)
		},
		options[0],
	)
	if err != nil {
		return jass.TrumpChoice{}, err
	}
	return v.(jass.TrumpChoice), nil
}

func (p *NetworkPlayer) GuessScore(ctx context.Context, hand card.CardList, min, max int) (int, error) {
	fallback := fallbackGuess
	if fallback < min {
		fallback = min
	}
	if fallback > max {
		fallback = max
	}
	v, err := p.ask(ctx, codec.QuestionGuess,
		map[string]any{"min": min, "max": max},
		p.timeouts.Guess,
		func(raw json.RawMessage) (any, error) {
			var guess int
			if err := json.Unmarshal(raw, &guess); err != nil {
				return nil, fmt.Errorf("answer is not a number: %w", err)
			}
			if guess < min || guess > max {
				return nil, fmt.Errorf("guess %d is outside %d..%d", guess, min, max)
			}
			return guess, nil
		},
		fallback,
	)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (p *NetworkPlayer) DecideWyys(ctx context.Context, offer jass.Wyys) (bool, error) {
	v, err := p.ask(ctx, codec.QuestionWyys,
		map[string]any{"offer": offer.String(), "score": offer.Score(), "cards": offer.Cards},
		p.timeouts.Wyys,
		func(raw json.RawMessage) (any, error) {
			var accept bool
			if err := json.Unmarshal(raw, &accept); err != nil {
				return nil, fmt.Errorf("answer is not a boolean: %w", err)
			}
			return accept, nil
		},
		true,
	)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// ask registers a question, pushes it and waits for the validated
// answer, the timeout fallback or context cancellation, whichever
// comes first. A late answer to a timed-out question is a no-op on the
// game, the client just gets the stale-question error.
func (p *NetworkPlayer) ask(ctx context.Context, kind string, payload any, timeout time.Duration,
	validate func(json.RawMessage) (any, error), fallback any) (any, error) {

	q := &question{
		kind:     kind,
		payload:  payload,
		validate: validate,
		result:   make(chan any, 1),
	}
	p.mu.Lock()
	p.nextQID++
	q.qid = p.nextQID
	p.open[q.qid] = q
	p.queuePushLocked()
	p.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case v := <-q.result:
		return v, nil
	case <-timer.C:
		p.mu.Lock()
		resolved := q.resolved
		if !resolved {
			delete(p.open, q.qid)
			p.queuePushLocked()
		}
		p.mu.Unlock()
		if resolved {
			// The answer won the race against the timer.
			return <-q.result, nil
		}
		log.Printf("[Session] %s: %s question timed out, using fallback", p.name, kind)
		return fallback, nil
	case <-ctx.Done():
		p.mu.Lock()
		delete(p.open, q.qid)
		p.mu.Unlock()
		return nil, ctx.Err()
	}
}

// queuePushLocked coalesces pushes: only the newest packet waits in
// the mailbox, intermediate ones are dropped.
func (p *NetworkPlayer) queuePushLocked() {
	info := p.buildInfoLocked()
	for {
		select {
		case p.updates <- info:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}

func (p *NetworkPlayer) buildInfoLocked() codec.GameInfo {
	info := codec.GameInfo{
		OwnSeat:        p.seat,
		Hand:           append(card.CardList{}, p.hand...),
		GameState:      p.state,
		OpenQuestions:  make([]codec.Question, 0, len(p.open)),
		ReconnectToken: p.token,
	}
	for _, q := range p.open {
		info.OpenQuestions = append(info.OpenQuestions, codec.Question{
			QID:     q.qid,
			Kind:    q.kind,
			Payload: q.payload,
			Note:    q.note,
		})
	}
	return info
}

func (p *NetworkPlayer) sendLoop() {
	for {
		select {
		case <-p.done:
			return
		case info := <-p.updates:
			p.mu.Lock()
			ch := p.ch
			p.mu.Unlock()
			if ch == nil {
				continue
			}
			if err := ch.Send(codec.ServerMessage{Type: codec.TypeGameInfo, Data: info}); err != nil {
				log.Printf("[Session] %s: push failed: %v", p.name, err)
			}
		}
	}
}

var (
	_ jass.Player       = (*NetworkPlayer)(nil)
	_ jass.StateSink    = (*NetworkPlayer)(nil)
	_ jass.HandObserver = (*NetworkPlayer)(nil)
)
