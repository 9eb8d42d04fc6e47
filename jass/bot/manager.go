package bot

import (
	"math/rand"
	"sync"
	"time"
)

// Manager hands out bot players to fill open seats. It tracks spawned
// bots by ID so the lobby can list and reclaim them.
type Manager struct {
	registry *Registry

	mu        sync.Mutex
	instances map[uint64]*Bot // keyed by fake player ID
	rng       *rand.Rand
	nextID    uint64
}

// NewManager creates a bot manager with the given persona registry.
func NewManager(registry *Registry) *Manager {
	return &Manager{
		registry:  registry,
		instances: make(map[uint64]*Bot),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID:    9_000_000, // bot IDs start from 9M to avoid collision with real users
	}
}

// Registry returns the underlying persona registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Spawn creates the next bot, cycling through the personas. The
// returned ID identifies the bot until Release.
func (m *Manager) Spawn() (uint64, *Bot) {
	persona := m.registry.NextPersona()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	b := New(persona, m.rng.Int63())
	m.instances[id] = b
	return id, b
}

// Get returns the bot behind id, nil when unknown.
func (m *Manager) Get(id uint64) *Bot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.instances[id]
}

// Release forgets a bot once its match is over.
func (m *Manager) Release(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.instances, id)
}

// Active returns the number of live bots.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}
