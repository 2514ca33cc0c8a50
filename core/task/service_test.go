package task_test

import (
	"context"
	"testing"

	"github.com/trezcool/studydesk/core/docsync"
	"github.com/trezcool/studydesk/core/task"
	"github.com/trezcool/studydesk/storage/docstore/inmem"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := task.NewService(inmem.NewStore())

	created, err := svc.Create(ctx, "u1", task.NewTask{Title: "study for finals"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.ID == "" {
		t.Error("created id not set")
	}
	if created.Completed {
		t.Error("new task is completed")
	}

	toggled, err := svc.Toggle(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("Completed = false after toggle; want true")
	}

	// tasks are scoped per user
	if recs := svc.Session(ctx, "u2").Records(); len(recs) != 0 {
		t.Errorf("u2 sees %d tasks; want 0", len(recs))
	}

	if err = svc.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if recs := svc.Session(ctx, "u1").Records(); len(recs) != 0 {
		t.Errorf("u1 sees %d tasks after delete; want 0", len(recs))
	}

	if _, err = svc.Toggle(ctx, "u1", created.ID); err == nil {
		t.Fatal("Toggle() on a deleted task did not fail")
	} else if opErr, ok := err.(*docsync.OpError); !ok || opErr.Op != docsync.OpUpdate {
		t.Errorf("err = %v; want update OpError", err)
	}
}
