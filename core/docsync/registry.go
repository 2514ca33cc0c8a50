package docsync

import (
	"context"
	"sync"

	"github.com/trezcool/studydesk/core"
)

// Registry hands out one Synchronizer per session user, mirroring the
// one-instance-per-view lifetime of the dashboard widgets. Synchronizers
// live until the process does; there is no eviction.
type Registry[E any] struct {
	schema Schema[E]
	store  core.DocumentStore

	mu       sync.Mutex
	sessions map[string]*Synchronizer[E]
}

func NewRegistry[E any](schema Schema[E], store core.DocumentStore) *Registry[E] {
	return &Registry[E]{
		schema:   schema,
		store:    store,
		sessions: make(map[string]*Synchronizer[E]),
	}
}

// ForUser returns the user's synchronizer, loading it on first access.
// An Errored synchronizer is not retried here; callers clear it with an
// explicit Reload.
func (r *Registry[E]) ForUser(ctx context.Context, userID string) *Synchronizer[E] {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	if !ok {
		s = New(r.schema, r.store)
		r.sessions[userID] = s
	}
	r.mu.Unlock()

	if s.State() == StateUninitialized {
		_ = s.Load(ctx, userID) // failure surfaces via the synchronizer state
	}
	return s
}

// Reload starts a fresh load cycle for the user, the only way out of an
// Errored state.
func (r *Registry[E]) Reload(ctx context.Context, userID string) *Synchronizer[E] {
	s := r.ForUser(ctx, userID)
	_ = s.Load(ctx, userID)
	return s
}
