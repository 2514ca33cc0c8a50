package schedule

import (
	"context"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

type Service struct {
	reg *docsync.Registry[Class]
}

func NewService(store core.DocumentStore) *Service {
	return &Service{reg: docsync.NewRegistry(Schema(), store)}
}

func (svc *Service) Session(ctx context.Context, userID string) *docsync.Synchronizer[Class] {
	return svc.reg.ForUser(ctx, userID)
}

func (svc *Service) Reload(ctx context.Context, userID string) *docsync.Synchronizer[Class] {
	return svc.reg.Reload(ctx, userID)
}

func (svc *Service) Create(ctx context.Context, userID string, nc NewClass) (Class, error) {
	return svc.Session(ctx, userID).Create(ctx, Class{
		Name:      nc.Name,
		Day:       nc.Day,
		StartTime: nc.StartTime,
		EndTime:   nc.EndTime,
		Room:      nc.Room,
	})
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.Session(ctx, userID).Delete(ctx, id)
}
