package resource

import (
	"context"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

type Service struct {
	reg *docsync.Registry[Resource]
}

func NewService(store core.DocumentStore) *Service {
	return &Service{reg: docsync.NewRegistry(Schema(), store)}
}

func (svc *Service) Session(ctx context.Context, userID string) *docsync.Synchronizer[Resource] {
	return svc.reg.ForUser(ctx, userID)
}

func (svc *Service) Reload(ctx context.Context, userID string) *docsync.Synchronizer[Resource] {
	return svc.reg.Reload(ctx, userID)
}

func (svc *Service) Create(ctx context.Context, userID string, nr NewResource) (Resource, error) {
	return svc.Session(ctx, userID).Create(ctx, Resource{
		Title:    nr.Title,
		URL:      nr.URL,
		Category: nr.Category,
	})
}

func (svc *Service) Update(ctx context.Context, userID, id string, ur UpdateResource) (Resource, error) {
	return svc.Session(ctx, userID).Update(ctx, id, ur.Partial())
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.Session(ctx, userID).Delete(ctx, id)
}
