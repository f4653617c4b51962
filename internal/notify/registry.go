package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Registry is a file-backed Backend. Pending notifications live in a JSON
// file keyed by notification id, outside the application database, so they
// survive process death and are shared between the foreground daemon and
// the standalone background rescan process.
type Registry struct {
	mu      sync.Mutex
	path    string
	entries map[string]Request
}

// DefaultRegistryPath returns the default location of the pending
// notification file, ~/.local/share/organext/pending.json.
func DefaultRegistryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "pending.json")
	}
	return filepath.Join(home, ".local", "share", "organext", "pending.json")
}

// OpenRegistry loads (or initializes) the registry file at path.
func OpenRegistry(path string) (*Registry, error) {
	r := &Registry{
		path:    path,
		entries: make(map[string]Request),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Schedule replaces any pending entry with the same id.
func (r *Registry) Schedule(req Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[req.ID] = req
	return r.save()
}

// Cancel removes a pending entry if present. Absent ids are a no-op.
func (r *Registry) Cancel(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return nil
	}
	delete(r.entries, id)
	return r.save()
}

// CancelAll clears every pending entry.
func (r *Registry) CancelAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]Request)
	return r.save()
}

// Reload re-reads the registry file from disk, picking up writes made by
// another process.
func (r *Registry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// Pending returns a copy of all pending requests.
func (r *Registry) Pending() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make([]Request, 0, len(r.entries))
	for _, req := range r.entries {
		pending = append(pending, req)
	}
	return pending
}

// Due returns all pending requests whose fire time is at or before now.
func (r *Registry) Due(now time.Time) []Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []Request
	for _, req := range r.entries {
		if !req.FireAt.After(now) {
			due = append(due, req)
		}
	}
	return due
}

// NextFireTime returns the earliest pending fire time, or false when
// nothing is pending.
func (r *Registry) NextFireTime() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var earliest time.Time
	for _, req := range r.entries {
		if earliest.IsZero() || req.FireAt.Before(earliest) {
			earliest = req.FireAt
		}
	}
	return earliest, !earliest.IsZero()
}

// load reads the registry file. A missing or empty file yields an empty
// registry. Callers must hold the mutex.
func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.entries = make(map[string]Request)
			return nil
		}
		return fmt.Errorf("reading registry %s: %w", r.path, err)
	}

	if len(data) == 0 {
		r.entries = make(map[string]Request)
		return nil
	}

	entries := make(map[string]Request)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parsing registry %s: %w", r.path, err)
	}
	r.entries = entries
	return nil
}

// save writes the registry file, creating parent directories as needed.
// Callers must hold the mutex.
func (r *Registry) save() error {
	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating registry directory %s: %w", dir, err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("writing registry %s: %w", r.path, err)
	}
	return nil
}
