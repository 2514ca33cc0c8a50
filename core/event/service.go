package event

import (
	"context"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

type Service struct {
	reg *docsync.Registry[Event]
}

func NewService(store core.DocumentStore) *Service {
	return &Service{reg: docsync.NewRegistry(Schema(), store)}
}

func (svc *Service) Session(ctx context.Context, userID string) *docsync.Synchronizer[Event] {
	return svc.reg.ForUser(ctx, userID)
}

func (svc *Service) Reload(ctx context.Context, userID string) *docsync.Synchronizer[Event] {
	return svc.reg.Reload(ctx, userID)
}

func (svc *Service) Create(ctx context.Context, userID string, ne NewEvent) (Event, error) {
	return svc.Session(ctx, userID).Create(ctx, Event{
		Title:       ne.Title,
		Description: ne.Description,
		Date:        ne.Date,
		Time:        ne.Time,
	})
}

func (svc *Service) Update(ctx context.Context, userID, id string, ue UpdateEvent) (Event, error) {
	return svc.Session(ctx, userID).Update(ctx, id, ue.Partial())
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.Session(ctx, userID).Delete(ctx, id)
}
