package driver

import (
	"errors"
	"strings"
	"sync"
)

// ErrSourceNotFound is returned when a source id is not registered.
var ErrSourceNotFound = errors.New("source not found")

// SourceStatus describes one registered source for the sources listing.
type SourceStatus struct {
	Name       string `json:"name"`
	Enabled    bool   `json:"enabled"`
	DriverName string `json:"driver_name"`
}

type registryEntry struct {
	driver  Driver
	enabled bool
}

// Registry maps lower-cased source ids to driver instances and tracks a
// per-source enabled flag. Populated once at startup; the flags are the
// only mutable state and are guarded by the mutex. Toggles are not
// linearized against in-flight searches.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
	}
}

// DefaultRegistry registers every known source driver, all enabled.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("pornhub", NewPornhub())
	r.Register("xvideos", NewXvideos())
	r.Register("xnxx", NewXnxx())
	r.Register("spankbang", NewSpankBang())
	r.Register("redtube", NewRedtube())
	r.Register("eporner", NewEporner())
	r.Register("tnaflix", NewTNAFlix())
	r.Register("wowxxx", NewWowXXX())
	return r
}

// Register adds a driver under the given id, enabled by default.
// Re-registering an id replaces the driver and resets its flag.
func (r *Registry) Register(id string, d Driver) {
	id = strings.ToLower(strings.TrimSpace(id))
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	r.entries[id] = &registryEntry{driver: d, enabled: true}
}

// Get returns the driver registered under id, ignoring the enabled flag.
func (r *Registry) Get(id string) (Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[strings.ToLower(id)]
	if !ok {
		return nil, false
	}
	return e.driver, true
}

// Enabled reports whether id is registered and currently enabled.
func (r *Registry) Enabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[strings.ToLower(id)]
	return ok && e.enabled
}

// IDs returns every registered source id in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// SetEnabled sets the enabled flag for id.
func (r *Registry) SetEnabled(id string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[strings.ToLower(id)]
	if !ok {
		return ErrSourceNotFound
	}
	e.enabled = enabled
	return nil
}

// Toggle flips the enabled flag for id and returns the new value.
func (r *Registry) Toggle(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[strings.ToLower(id)]
	if !ok {
		return false, ErrSourceNotFound
	}
	e.enabled = !e.enabled
	return e.enabled, nil
}

// Sources lists every registered source with its current status, in
// registration order.
func (r *Registry) Sources() []SourceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]SourceStatus, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		statuses = append(statuses, SourceStatus{
			Name:       id,
			Enabled:    e.enabled,
			DriverName: e.driver.Name(),
		})
	}
	return statuses
}
