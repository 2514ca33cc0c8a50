// Package docsync keeps a local, per-user snapshot of one entity kind
// eventually consistent with a remote document store collection.
//
// Every dashboard entity (tasks, classes, events, ...) is one Synchronizer
// instantiation: a filtered load for the session user's records, plus
// create/update/delete operations that write to the store first and only
// patch the local snapshot once the store acknowledges the write.
package docsync

import (
	"encoding/json"
	"fmt"

	"github.com/trezcool/studydesk/core"
)

// State is the synchronizer lifecycle state exposed to presentation layers.
type State int

const (
	// StateUninitialized: no session user yet; nothing renders.
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	}
	return "uninitialized"
}

// Op identifies the synchronizer operation a failure originated from.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// OpError is the only failure surface of a synchronizer: the failed
// operation and a human-readable message. Store faults never escape in any
// other form; there is no structured cause and no retry metadata.
type OpError struct {
	Op      Op
	Message string
}

func (e *OpError) Error() string { return e.Message }

// Schema parameterizes a Synchronizer for one entity kind.
type Schema[E any] struct {
	// Collection is the store collection backing this entity kind.
	Collection string

	// Label (and optionally LabelPlural, defaults to Label+"s") name the
	// entity in user-facing error messages.
	Label       string
	LabelPlural string

	// OwnerField, when set, is injected as the session user id on create
	// and drives the default load filter.
	OwnerField string
	// OwnerFilter overrides the default `OwnerField == userID` load filter.
	// Membership-style entities filter on array containment instead.
	OwnerFilter func(userID string) core.Filter

	// Ordering and Limit, when set, are applied to load queries.
	Ordering []core.Ordering
	Limit    int

	ID     func(e E) string
	WithID func(e E, id string) E
}

func (s Schema[E]) plural() string {
	if s.LabelPlural != "" {
		return s.LabelPlural
	}
	return s.Label + "s"
}

func (s Schema[E]) ownerFilter(userID string) core.Filter {
	if s.OwnerFilter != nil {
		return s.OwnerFilter(userID)
	}
	return core.Filter{Field: s.OwnerField, Op: core.FilterEq, Value: userID}
}

// fields flattens an entity into store fields, dropping the id: the store
// assigns ids, they are never written as document fields.
func (s Schema[E]) fields(e E) (map[string]interface{}, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var flds map[string]interface{}
	if err = json.Unmarshal(raw, &flds); err != nil {
		return nil, err
	}
	delete(flds, "id")
	return flds, nil
}

func (s Schema[E]) record(doc core.Document) (E, error) {
	var e E
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return e, err
	}
	if err = json.Unmarshal(raw, &e); err != nil {
		return e, err
	}
	return s.WithID(e, doc.ID), nil
}

func (s Schema[E]) failureMessage(op Op) string {
	switch op {
	case OpLoad:
		return fmt.Sprintf("failed to fetch %s, please try again", s.plural())
	case OpCreate:
		return fmt.Sprintf("failed to add %s, please try again", s.Label)
	case OpUpdate:
		return fmt.Sprintf("failed to update %s, please try again", s.Label)
	default:
		return fmt.Sprintf("failed to delete %s, please try again", s.Label)
	}
}

// View is the snapshot surface rendered by presentation layers.
type View[E any] struct {
	State   string `json:"state"`
	Records []E    `json:"records"`
	Error   string `json:"error,omitempty"`
}
