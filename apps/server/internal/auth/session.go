package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	defaultSessionTTL = 24 * time.Hour
	tokenBytes        = 32
)

var ErrInvalidName = errors.New("invalid player name")

var namePattern = regexp.MustCompile(`^[\pL\pN_][\pL\pN_ .-]{1,31}$`)

// Manager provides in-memory guest session management for
// single-binary deployment. Players register a display name and get a
// token; the token outlives the connection and lets them reclaim their
// seat after a drop.
type Manager struct {
	mu sync.Mutex

	nextAccountID uint64
	sessionTTL    time.Duration
	sessions      map[string]sessionRecord
	namesByID     map[uint64]string
}

type sessionRecord struct {
	AccountID uint64
	ExpiresAt time.Time
}

func NewManager() *Manager {
	return &Manager{
		nextAccountID: 100000, // start from a readable non-trivial range
		sessionTTL:    defaultSessionTTL,
		sessions:      make(map[string]sessionRecord),
		namesByID:     make(map[uint64]string),
	}
}

// ValidateName checks a display name without registering it.
func ValidateName(name string) error {
	if !namePattern.MatchString(strings.TrimSpace(name)) {
		return ErrInvalidName
	}
	return nil
}

// CreateGuest registers a guest account under name and issues a token.
func (m *Manager) CreateGuest(name string) (accountID uint64, token string, err error) {
	if err := ValidateName(name); err != nil {
		return 0, "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAccountID++
	accountID = m.nextAccountID
	m.namesByID[accountID] = strings.TrimSpace(name)
	token = m.issueSessionLocked(accountID, time.Now())
	return accountID, token, nil
}

// ResolveSession validates and refreshes a token.
func (m *Manager) ResolveSession(token string) (accountID uint64, name string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if token == "" {
		return 0, "", false
	}
	rec, exists := m.sessions[token]
	if !exists {
		return 0, "", false
	}
	if !now.Before(rec.ExpiresAt) {
		delete(m.sessions, token)
		return 0, "", false
	}
	rec.ExpiresAt = now.Add(m.sessionTTL)
	m.sessions[token] = rec
	return rec.AccountID, m.namesByID[rec.AccountID], true
}

// Logout invalidates a token.
func (m *Manager) Logout(token string) {
	if token == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *Manager) issueSessionLocked(accountID uint64, now time.Time) string {
	token := mustToken()
	m.sessions[token] = sessionRecord{
		AccountID: accountID,
		ExpiresAt: now.Add(m.sessionTTL),
	}
	return token
}

func mustToken() string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
