package inmem

import (
	"context"
	"testing"

	"github.com/trezcool/studydesk/core"
)

func seed(t *testing.T, s *Store, collection string, fields map[string]interface{}) string {
	t.Helper()
	id, err := s.Insert(context.Background(), collection, fields)
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	return id
}

func TestStore_Query_filters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "tasks", map[string]interface{}{"title": "a", "userId": "u1"})
	seed(t, s, "tasks", map[string]interface{}{"title": "b", "userId": "u2"})
	seed(t, s, "tasks", map[string]interface{}{"title": "c", "userId": "u1"})

	docs, err := s.Query(ctx, "tasks", core.Query{
		Filters: []core.Filter{{Field: "userId", Op: core.FilterEq, Value: "u1"}},
	})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Query() = %d docs; want 2", len(docs))
	}
	// insertion order is preserved
	if docs[0].Fields["title"] != "a" || docs[1].Fields["title"] != "c" {
		t.Errorf("Query() order = %v, %v; want a, c", docs[0].Fields["title"], docs[1].Fields["title"])
	}
}

func TestStore_Query_arrayContains(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "groups", map[string]interface{}{"name": "algo", "members": []interface{}{"u1", "u2"}})
	seed(t, s, "groups", map[string]interface{}{"name": "chem", "members": []interface{}{"u2"}})

	docs, err := s.Query(ctx, "groups", core.Query{
		Filters: []core.Filter{{Field: "members", Op: core.FilterArrayContains, Value: "u1"}},
	})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Query() = %d docs; want 1", len(docs))
	}
	if docs[0].Fields["name"] != "algo" {
		t.Errorf("name = %v; want algo", docs[0].Fields["name"])
	}
}

func TestStore_Query_rangeOps(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "events", map[string]interface{}{"date": "2025-01-10"})
	seed(t, s, "events", map[string]interface{}{"date": "2025-03-01"})
	seed(t, s, "events", map[string]interface{}{"date": "2025-02-15"})

	docs, err := s.Query(ctx, "events", core.Query{
		Filters: []core.Filter{
			{Field: "date", Op: core.FilterGte, Value: "2025-02-01"},
			{Field: "date", Op: core.FilterLte, Value: "2025-02-28"},
		},
	})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Query() = %d docs; want 1", len(docs))
	}
	if docs[0].Fields["date"] != "2025-02-15" {
		t.Errorf("date = %v; want 2025-02-15", docs[0].Fields["date"])
	}
}

func TestStore_Query_orderingAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, date := range []string{"2025-01-01", "2025-01-03", "2025-01-02", "2025-01-05", "2025-01-04", "2025-01-06"} {
		seed(t, s, "announcements", map[string]interface{}{"date": date})
	}

	docs, err := s.Query(ctx, "announcements", core.Query{
		Ordering: []core.Ordering{{Field: "date", Ascending: false}},
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 5 {
		t.Fatalf("Query() = %d docs; want 5", len(docs))
	}
	want := []string{"2025-01-06", "2025-01-05", "2025-01-04", "2025-01-03", "2025-01-02"}
	for i, doc := range docs {
		if doc.Fields["date"] != want[i] {
			t.Errorf("docs[%d].date = %v; want %v", i, doc.Fields["date"], want[i])
		}
	}
}

func TestStore_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	id := seed(t, s, "tasks", map[string]interface{}{"title": "a", "completed": false})

	if err := s.UpdatePartial(ctx, "tasks", "nope", map[string]interface{}{"completed": true}); err != core.ErrDocumentNotFound {
		t.Errorf("UpdatePartial() err = %v; want ErrDocumentNotFound", err)
	}

	if err := s.UpdatePartial(ctx, "tasks", id, map[string]interface{}{"completed": true}); err != nil {
		t.Fatalf("UpdatePartial() failed: %v", err)
	}
	docs, err := s.Query(ctx, "tasks", core.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if docs[0].Fields["completed"] != true {
		t.Error("completed not merged")
	}
	if docs[0].Fields["title"] != "a" {
		t.Error("untouched field lost on partial update")
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	id := seed(t, s, "tasks", map[string]interface{}{"title": "a"})

	if err := s.Delete(ctx, "tasks", "nope"); err != core.ErrDocumentNotFound {
		t.Errorf("Delete() err = %v; want ErrDocumentNotFound", err)
	}

	if err := s.Delete(ctx, "tasks", id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	docs, err := s.Query(ctx, "tasks", core.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Query() = %d docs after delete; want 0", len(docs))
	}
}

func TestStore_Query_isolatedCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "tasks", map[string]interface{}{"title": "a"})

	docs, err := s.Query(ctx, "tasks", core.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	docs[0].Fields["title"] = "mutated"

	docs, err = s.Query(ctx, "tasks", core.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if docs[0].Fields["title"] != "a" {
		t.Error("caller mutation leaked into the store")
	}
}
