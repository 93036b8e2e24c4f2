package game

import (
	"fmt"
	"sync"
)

// Descriptor is implemented by every playable casino game so the command
// layer can enumerate games and enforce the shared casino cooldown.
type Descriptor interface {
	// Name returns the game's display name (e.g. "Slots", "Roulette").
	Name() string

	// Command returns the command that triggers this game (e.g. "slots").
	Command() string

	// Description returns a brief rules summary for the help menu.
	Description() string
}

// Registry manages game registration and lookup by command.
type Registry struct {
	games map[string]Descriptor
	mu    sync.RWMutex
}

// NewRegistry creates an empty game registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]Descriptor)}
}

// Register adds a game to the registry. Registering the same command
// twice replaces the earlier entry.
func (r *Registry) Register(d Descriptor) error {
	if d == nil {
		return fmt.Errorf("cannot register nil game")
	}
	if d.Command() == "" {
		return fmt.Errorf("game command cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[d.Command()] = d
	return nil
}

// Get retrieves a game by its command.
func (r *Registry) Get(command string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.games[command]
	return d, ok
}

// List returns all registered games. The returned slice is a copy.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]Descriptor, 0, len(r.games))
	for _, d := range r.games {
		games = append(games, d)
	}
	return games
}

// Commands returns all registered game commands.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]string, 0, len(r.games))
	for cmd := range r.games {
		commands = append(commands, cmd)
	}
	return commands
}

// Count returns the number of registered games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
