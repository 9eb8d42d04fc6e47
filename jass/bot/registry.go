package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Registry holds all bot persona definitions.
type Registry struct {
	mu       sync.RWMutex
	personas map[string]*Persona
	order    []string
	next     int
}

// NewRegistry creates a registry preloaded with the built-in personas.
func NewRegistry() *Registry {
	r := &Registry{personas: make(map[string]*Persona)}
	for _, p := range defaultPersonas {
		r.personas[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// LoadFromFile loads bot personas from a JSON file, replacing built-ins
// with matching IDs.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read personas file: %w", err)
	}
	return r.LoadFromJSON(data)
}

// LoadFromJSON loads bot personas from raw JSON bytes.
func (r *Registry) LoadFromJSON(data []byte) error {
	var list []*Persona
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse personas JSON: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range list {
		if p.ID == "" {
			continue
		}
		if _, known := r.personas[p.ID]; !known {
			r.order = append(r.order, p.ID)
		}
		r.personas[p.ID] = p
	}
	return nil
}

// Get returns a persona by ID.
func (r *Registry) Get(id string) *Persona {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.personas[id]
}

// NextPersona hands out personas round-robin, so a table filled with
// several bots gets distinct characters.
func (r *Registry) NextPersona() *Persona {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.personas[r.order[r.next%len(r.order)]]
	r.next++
	return p
}

// Count returns the total number of registered personas.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas)
}
