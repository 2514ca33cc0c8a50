package group_test

import (
	"context"
	"testing"

	"github.com/trezcool/studydesk/core/group"
	"github.com/trezcool/studydesk/storage/docstore/inmem"
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := group.NewService(inmem.NewStore())

	grp, err := svc.Create(ctx, "u1", group.NewGroup{Name: "Algo study", Description: "Tuesdays"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if grp.CreatedBy != "u1" {
		t.Errorf("CreatedBy = %q; want u1", grp.CreatedBy)
	}
	if len(grp.Members) != 1 || grp.Members[0] != "u1" {
		t.Errorf("Members = %v; want [u1]", grp.Members)
	}
}

func TestService_Leave(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	svc := group.NewService(store)

	grp, err := svc.Create(ctx, "u1", group.NewGroup{Name: "Algo study", Description: "Tuesdays"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// u2 joins out of band and loads their view
	if _, err = svc.Session(ctx, "u1").Update(ctx, grp.ID, map[string]interface{}{
		"members": []string{"u1", "u2"},
	}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	u2 := svc.Reload(ctx, "u2")
	if recs := u2.Records(); len(recs) != 1 {
		t.Fatalf("u2 sees %d groups; want 1", len(recs))
	}

	if err = svc.Leave(ctx, "u2", grp.ID); err != nil {
		t.Fatalf("Leave() failed: %v", err)
	}

	// gone from the leaver's view
	if recs := svc.Session(ctx, "u2").Records(); len(recs) != 0 {
		t.Errorf("u2 sees %d groups after leave; want 0", len(recs))
	}

	// the record survives for remaining members; createdBy is untouched
	u1 := svc.Reload(ctx, "u1")
	recs := u1.Records()
	if len(recs) != 1 {
		t.Fatalf("u1 sees %d groups; want 1", len(recs))
	}
	if got := recs[0].Members; len(got) != 1 || got[0] != "u1" {
		t.Errorf("Members = %v; want [u1]", got)
	}
	if recs[0].CreatedBy != "u1" {
		t.Errorf("CreatedBy = %q; want u1", recs[0].CreatedBy)
	}
}

func TestService_Leave_creatorLeaves(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	svc := group.NewService(store)

	grp, err := svc.Create(ctx, "u1", group.NewGroup{Name: "Chem lab", Description: "Fridays"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err = svc.Session(ctx, "u1").Update(ctx, grp.ID, map[string]interface{}{
		"members": []string{"u1", "u2"},
	}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if err = svc.Leave(ctx, "u1", grp.ID); err != nil {
		t.Fatalf("Leave() failed: %v", err)
	}

	// createdBy still names the departed creator
	recs := svc.Reload(ctx, "u2").Records()
	if len(recs) != 1 {
		t.Fatalf("u2 sees %d groups; want 1", len(recs))
	}
	if recs[0].CreatedBy != "u1" {
		t.Errorf("CreatedBy = %q; want u1", recs[0].CreatedBy)
	}
}

func TestService_Leave_unknownGroup(t *testing.T) {
	svc := group.NewService(inmem.NewStore())
	if err := svc.Leave(context.Background(), "u1", "nope"); err == nil {
		t.Fatal("Leave() with unknown id did not fail")
	}
}
