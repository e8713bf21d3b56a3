// Package store provides the per-run scoped datastore. Widgets write values
// during collection and read them back during resolution and render, each
// under its own owner namespace.
package store

import (
	"sync"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
)

// Datastore holds (owner, key) -> value pairs for a single pipeline run.
type Datastore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
	log  *logger.Logger
}

// New creates an empty Datastore.
func New(log *logger.Logger) *Datastore {
	return &Datastore{
		data: make(map[string]map[string]string),
		log:  log,
	}
}

// Scope returns a handle bound to ownerID. All reads and writes through the
// handle stay inside that owner's namespace. An empty ownerID yields a nil
// handle whose operations are non-fatal no-ops returning empty values.
func (d *Datastore) Scope(ownerID string) *Scope {
	if ownerID == "" {
		d.log.Warn("datastore scope requested without an owner, operations will return empty")
		return nil
	}
	return &Scope{owner: ownerID, store: d}
}

// Root is the privileged cross-owner accessor reserved for the pipeline.
func (d *Datastore) Root() *Root {
	return &Root{store: d}
}

// Scope is an owner-bound handle into the datastore.
type Scope struct {
	owner string
	store *Datastore
}

// Owner returns the owning widget id, or "" for a nil handle.
func (s *Scope) Owner() string {
	if s == nil {
		return ""
	}
	return s.owner
}

// Set stores value under key in the owner's namespace.
func (s *Scope) Set(key, value string) {
	if s == nil {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	bucket, ok := s.store.data[s.owner]
	if !ok {
		bucket = make(map[string]string)
		s.store.data[s.owner] = bucket
	}
	bucket[key] = value
}

// Get returns the value for key, or "" when absent or the handle is nil.
func (s *Scope) Get(key string) string {
	if s == nil {
		return ""
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return s.store.data[s.owner][key]
}

// Has reports whether key exists in the owner's namespace.
func (s *Scope) Has(key string) bool {
	if s == nil {
		return false
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	_, ok := s.store.data[s.owner][key]
	return ok
}

// ClearAll drops every value in the owner's namespace. The pipeline calls
// this before each fresh collection of the owner.
func (s *Scope) ClearAll() {
	if s == nil {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	delete(s.store.data, s.owner)
}

// Root reads across owner namespaces.
type Root struct {
	store *Datastore
}

// Get returns the value stored by owner under key, or "" when absent.
func (r *Root) Get(owner, key string) string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.data[owner][key]
}

// Owners lists every owner that currently holds at least one value.
func (r *Root) Owners() []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	owners := make([]string, 0, len(r.store.data))
	for owner := range r.store.data {
		owners = append(owners, owner)
	}
	return owners
}
