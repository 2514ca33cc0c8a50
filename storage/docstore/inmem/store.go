// Package inmem provides an in-memory DocumentStore for development and
// tests. Documents keep their insertion order within a collection.
package inmem

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/studydesk/core"
)

type document struct {
	id     string
	fields map[string]interface{}
}

type Store struct {
	mu          sync.RWMutex
	collections map[string][]*document
}

var _ core.DocumentStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{collections: make(map[string][]*document)}
}

func (s *Store) Query(ctx context.Context, collection string, q core.Query) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []core.Document
	for _, doc := range s.collections[collection] {
		if matches(doc.fields, q.Filters) {
			docs = append(docs, core.Document{ID: doc.id, Fields: copyFields(doc.fields)})
		}
	}
	order(docs, q.Ordering)
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	flds, err := normalize(fields)
	if err != nil {
		return "", err
	}
	doc := &document{id: uuid.New().String(), fields: flds}
	s.collections[collection] = append(s.collections[collection], doc)
	return doc.id, nil
}

func (s *Store) UpdatePartial(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.get(collection, id)
	if doc == nil {
		return core.ErrDocumentNotFound
	}
	flds, err := normalize(fields)
	if err != nil {
		return err
	}
	for k, v := range flds {
		doc.fields[k] = v
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if doc.id == id {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return core.ErrDocumentNotFound
}

func (s *Store) get(collection, id string) *document {
	for _, doc := range s.collections[collection] {
		if doc.id == id {
			return doc
		}
	}
	return nil
}

func matches(fields map[string]interface{}, filters []core.Filter) bool {
	for _, f := range filters {
		val, ok := fields[f.Field]
		if !ok {
			return false
		}
		switch f.Op {
		case core.FilterEq:
			if stringify(val) != stringify(f.Value) {
				return false
			}
		case core.FilterGte:
			if stringify(val) < stringify(f.Value) {
				return false
			}
		case core.FilterLte:
			if stringify(val) > stringify(f.Value) {
				return false
			}
		case core.FilterArrayContains:
			arr, ok := val.([]interface{})
			if !ok {
				return false
			}
			found := false
			for _, elem := range arr {
				if stringify(elem) == stringify(f.Value) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func order(docs []core.Document, ordering []core.Ordering) {
	if len(ordering) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, ord := range ordering {
			a, b := stringify(docs[i].Fields[ord.Field]), stringify(docs[j].Fields[ord.Field])
			if a == b {
				continue
			}
			if ord.Ascending {
				return a < b
			}
			return a > b
		}
		return false
	})
}

// stringify normalizes values for comparison. Documents round-trip through
// JSON, so numbers arrive as float64 regardless of the Go type inserted.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%020.6f", t), "0"), ".")
	case int:
		return stringify(float64(t))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp
}

// normalize roundtrips fields through JSON so stored values use JSON types
// (float64 numbers, []interface{} arrays) regardless of the Go types written,
// matching what a real document database would hand back.
func normalize(fields map[string]interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	flds := make(map[string]interface{}, len(fields))
	if err = json.Unmarshal(raw, &flds); err != nil {
		return nil, err
	}
	return flds, nil
}
