package core

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned by DocumentStore implementations when the
// targeted document id does not exist in the collection.
var ErrDocumentNotFound = errors.New("document not found")

// Filter operators. The store is schemaless; operators apply to the
// document field named by Filter.Field.
const (
	FilterEq            = "=="
	FilterGte           = ">="
	FilterLte           = "<="
	FilterArrayContains = "array-contains"
)

type (
	// Filter matches documents whose Field relates to Value per Op.
	Filter struct {
		Field string
		Op    string
		Value interface{}
	}

	// Ordering orders query results on a document field.
	Ordering struct {
		Field     string
		Ascending bool
	}

	// Query describes a filtered (and optionally ordered/capped) collection scan.
	Query struct {
		Filters  []Filter
		Ordering []Ordering
		Limit    int // 0 = no cap
	}

	// Document is a stored record: a store-assigned id plus free-form fields.
	Document struct {
		ID     string
		Fields map[string]interface{}
	}

	// DocumentStore is a generic per-collection document database.
	// Records belong to whoever the caller's filters say they belong to;
	// no access control happens at this level.
	DocumentStore interface {
		Query(ctx context.Context, collection string, q Query) ([]Document, error)
		// Insert stores fields as a new document and returns the assigned id.
		Insert(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
		// UpdatePartial merges fields into an existing document.
		// Fails with ErrDocumentNotFound if id is absent.
		UpdatePartial(ctx context.Context, collection, id string, fields map[string]interface{}) error
		// Delete fails with ErrDocumentNotFound if id is absent.
		Delete(ctx context.Context, collection, id string) error
	}
)

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
