package task

import (
	"context"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

type Service struct {
	reg *docsync.Registry[Task]
}

func NewService(store core.DocumentStore) *Service {
	return &Service{reg: docsync.NewRegistry(Schema(), store)}
}

// Session returns the user's task synchronizer, loaded on first access.
func (svc *Service) Session(ctx context.Context, userID string) *docsync.Synchronizer[Task] {
	return svc.reg.ForUser(ctx, userID)
}

func (svc *Service) Reload(ctx context.Context, userID string) *docsync.Synchronizer[Task] {
	return svc.reg.Reload(ctx, userID)
}

func (svc *Service) Create(ctx context.Context, userID string, nt NewTask) (Task, error) {
	return svc.Session(ctx, userID).Create(ctx, Task{Title: nt.Title})
}

// Toggle flips the task's completed flag.
func (svc *Service) Toggle(ctx context.Context, userID, id string) (Task, error) {
	return svc.Session(ctx, userID).Toggle(ctx, id, "completed")
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.Session(ctx, userID).Delete(ctx, id)
}
