package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Notification is one scheduled daily notification owned by the agent.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind,omitempty"`
	Sound     bool      `json:"sound"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"created_at"`
}

type registryState struct {
	Version           int            `json:"version"`
	PermissionGranted bool           `json:"permission_granted"`
	PermissionDecided bool           `json:"permission_decided"`
	Notifications     []Notification `json:"notifications"`
}

// Registry persists the agent's scheduled-notification set and permission
// grant state as a JSON file. It is the authoritative source of truth the CLI
// reconciles its cached settings against. Safe for concurrent use: HTTP
// handlers mutate it while gocron delivery goroutines read it.
type Registry struct {
	path string

	mu    sync.RWMutex
	state registryState
}

func NewRegistry(dir string) *Registry {
	return &Registry{
		path: filepath.Join(dir, "registry.json"),
	}
}

func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.state = registryState{Version: 1}
			return nil
		}
		return fmt.Errorf("failed to read registry: %w", err)
	}
	if err := json.Unmarshal(data, &r.state); err != nil {
		// A corrupt registry is recreated empty rather than blocking startup.
		r.state = registryState{Version: 1}
	}
	return nil
}

// save writes the current state to disk. Callers must hold r.mu.
func (r *Registry) save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}
	data, err := json.MarshalIndent(r.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

func (r *Registry) List() []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Notification, len(r.state.Notifications))
	copy(out, r.state.Notifications)
	return out
}

func (r *Registry) Add(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Notifications = append(r.state.Notifications, n)
	return r.save()
}

// Remove deletes one notification by id. Returns false if no such id exists.
func (r *Registry) Remove(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.state.Notifications[:0]
	found := false
	for _, n := range r.state.Notifications {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	r.state.Notifications = kept
	if !found {
		return false, nil
	}
	return true, r.save()
}

// RemoveAll deletes every notification and returns how many were removed.
func (r *Registry) RemoveAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := len(r.state.Notifications)
	if removed == 0 {
		return 0, nil
	}
	r.state.Notifications = nil
	return removed, r.save()
}

// PermissionGranted reports the current grant state.
func (r *Registry) PermissionGranted() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.PermissionDecided && r.state.PermissionGranted
}

// DecidePermission records a grant decision.
func (r *Registry) DecidePermission(granted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.PermissionDecided = true
	r.state.PermissionGranted = granted
	return r.save()
}
