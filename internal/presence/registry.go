// Package presence tracks which usernames are currently online.
package presence

import (
	"sort"
	"sync"
)

// Registry is the shared set of authenticated usernames. It is never
// persisted; a restart empties it.
//
// The registry is a plain set, so two concurrent sessions for the same user
// share one entry and the first logoff or disconnect removes it. This is a
// known limitation carried over from the original board.
type Registry struct {
	mu     sync.Mutex
	online map[string]struct{}
}

// NewRegistry creates an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{online: make(map[string]struct{})}
}

// Add marks a username as online.
func (r *Registry) Add(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.online[username] = struct{}{}
}

// Remove marks a username as offline. Removing an absent name is a no-op.
func (r *Registry) Remove(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.online, username)
}

// Online reports whether a username is currently marked online.
func (r *Registry) Online(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.online[username]
	return ok
}

// List returns the online usernames sorted ascending.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.online))
	for name := range r.online {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
