package docsync

import (
	"context"
	"sync"

	"github.com/trezcool/studydesk/core"
)

// Synchronizer owns the local copy of one user's records of one entity kind.
// All mutations go through the store; the local snapshot is only patched
// after a confirmed write, so a failed mutation leaves the last known-good
// collection visible (only a failed Load clears it).
//
// Operations are not serialized against each other: two rapid mutations on
// the same id both proceed and the store's per-document semantics decide.
// The mutex only guards the snapshot against torn reads.
type Synchronizer[E any] struct {
	schema Schema[E]
	store  core.DocumentStore

	mu      sync.RWMutex
	userID  string
	state   State
	records []E
	lastErr *OpError
}

func New[E any](schema Schema[E], store core.DocumentStore) *Synchronizer[E] {
	return &Synchronizer[E]{schema: schema, store: store, state: StateUninitialized}
}

func (s *Synchronizer[E]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Synchronizer[E]) Err() *OpError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Records returns a copy of the current snapshot, in store-return order.
func (s *Synchronizer[E]) Records() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]E, len(s.records))
	copy(records, s.records)
	return records
}

func (s *Synchronizer[E]) Get(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if s.schema.ID(rec) == id {
			return rec, true
		}
	}
	var zero E
	return zero, false
}

func (s *Synchronizer[E]) View() View[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := View[E]{State: s.state.String(), Records: make([]E, len(s.records))}
	copy(v.Records, s.records)
	if s.lastErr != nil {
		v.Error = s.lastErr.Message
	}
	return v
}

// Load replaces the whole local collection with the owner's records.
// A missing user id is a no-op, not an error: the view simply renders
// nothing until a session appears.
func (s *Synchronizer[E]) Load(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	s.mu.Lock()
	s.userID = userID
	s.state = StateLoading
	s.mu.Unlock()

	docs, err := s.store.Query(ctx, s.schema.Collection, core.Query{
		Filters:  []core.Filter{s.schema.ownerFilter(userID)},
		Ordering: s.schema.Ordering,
		Limit:    s.schema.Limit,
	})
	if err != nil {
		return s.fail(OpLoad)
	}

	records := make([]E, 0, len(docs))
	for _, doc := range docs {
		rec, err := s.schema.record(doc)
		if err != nil {
			return s.fail(OpLoad)
		}
		records = append(records, rec)
	}

	s.mu.Lock()
	s.records = records
	s.state = StateReady
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Create persists the record's fields for the session user and appends the
// confirmed record locally. The local copy is built from the caller's
// fields plus the store-assigned id; the written document is not re-fetched,
// so a store-side field transformation only shows up on the next Load.
// On failure the local collection is untouched and the caller's draft is
// theirs to keep.
func (s *Synchronizer[E]) Create(ctx context.Context, e E) (E, error) {
	var zero E

	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == "" {
		return zero, &OpError{Op: OpCreate, Message: "no signed-in user"}
	}

	flds, err := s.schema.fields(e)
	if err != nil {
		return zero, s.fail(OpCreate)
	}
	if s.schema.OwnerField != "" {
		flds[s.schema.OwnerField] = userID
	}

	id, err := s.store.Insert(ctx, s.schema.Collection, flds)
	if err != nil {
		return zero, s.fail(OpCreate)
	}

	e = s.schema.WithID(e, id)
	s.mu.Lock()
	s.records = append(s.records, e)
	s.state = StateReady
	s.lastErr = nil
	s.mu.Unlock()
	return e, nil
}

// Update issues a partial update to the store and, once acknowledged,
// shallow-merges the fields into the matching local record. The id must be
// present locally; partial must be non-empty.
func (s *Synchronizer[E]) Update(ctx context.Context, id string, partial map[string]interface{}) (E, error) {
	var zero E
	if len(partial) == 0 {
		return zero, &OpError{Op: OpUpdate, Message: "nothing to update"}
	}
	if _, ok := s.Get(id); !ok {
		return zero, &OpError{Op: OpUpdate, Message: s.schema.Label + " not found"}
	}

	if err := s.store.UpdatePartial(ctx, s.schema.Collection, id, partial); err != nil {
		return zero, s.fail(OpUpdate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merged, ok := s.applyLocked(id, partial)
	if !ok {
		// record vanished while the write was in flight; next Load reconciles
		return zero, &OpError{Op: OpUpdate, Message: s.schema.Label + " not found"}
	}
	s.state = StateReady
	s.lastErr = nil
	return merged, nil
}

// Delete removes the record from the store, then from the local snapshot.
// On failure the record stays visible.
func (s *Synchronizer[E]) Delete(ctx context.Context, id string) error {
	if _, ok := s.Get(id); !ok {
		return &OpError{Op: OpDelete, Message: s.schema.Label + " not found"}
	}

	if err := s.store.Delete(ctx, s.schema.Collection, id); err != nil {
		return s.fail(OpDelete)
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.state = StateReady
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Toggle reads the current boolean value of field on the local record,
// negates it and persists it as a partial update. No store call is made if
// the id is not present locally.
func (s *Synchronizer[E]) Toggle(ctx context.Context, id, field string) (E, error) {
	rec, ok := s.Get(id)
	if !ok {
		var zero E
		return zero, &OpError{Op: OpUpdate, Message: s.schema.Label + " not found"}
	}
	flds, err := s.schema.fields(rec)
	if err != nil {
		var zero E
		return zero, s.fail(OpUpdate)
	}
	cur, _ := flds[field].(bool)
	return s.Update(ctx, id, map[string]interface{}{field: !cur})
}

// Forget drops the record from the local snapshot without touching the
// store. Membership-style listings use it when the session user removes
// themselves from a shared record that must survive for other members.
func (s *Synchronizer[E]) Forget(id string) {
	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()
}

func (s *Synchronizer[E]) fail(op Op) *OpError {
	opErr := &OpError{Op: op, Message: s.schema.failureMessage(op)}
	s.mu.Lock()
	s.state = StateErrored
	s.lastErr = opErr
	if op == OpLoad {
		// only load failures clear the view; mutation failures keep the
		// last known-good collection visible
		s.records = nil
	}
	s.mu.Unlock()
	return opErr
}

func (s *Synchronizer[E]) applyLocked(id string, partial map[string]interface{}) (E, bool) {
	var zero E
	for i, rec := range s.records {
		if s.schema.ID(rec) != id {
			continue
		}
		flds, err := s.schema.fields(rec)
		if err != nil {
			return zero, false
		}
		for k, v := range partial {
			flds[k] = v
		}
		merged, err := s.schema.record(core.Document{ID: id, Fields: flds})
		if err != nil {
			return zero, false
		}
		s.records[i] = merged
		return merged, true
	}
	return zero, false
}

func (s *Synchronizer[E]) removeLocked(id string) {
	for i, rec := range s.records {
		if s.schema.ID(rec) == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return
		}
	}
}
