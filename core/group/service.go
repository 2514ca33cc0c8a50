package group

import (
	"context"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

type Service struct {
	reg *docsync.Registry[Group]
}

func NewService(store core.DocumentStore) *Service {
	return &Service{reg: docsync.NewRegistry(Schema(), store)}
}

func (svc *Service) Session(ctx context.Context, userID string) *docsync.Synchronizer[Group] {
	return svc.reg.ForUser(ctx, userID)
}

func (svc *Service) Reload(ctx context.Context, userID string) *docsync.Synchronizer[Group] {
	return svc.reg.Reload(ctx, userID)
}

func (svc *Service) Create(ctx context.Context, userID string, ng NewGroup) (Group, error) {
	return svc.Session(ctx, userID).Create(ctx, Group{
		Name:        ng.Name,
		Description: ng.Description,
		Members:     []string{userID},
		CreatedBy:   userID,
	})
}

// Leave removes the session user from the group's members and drops the
// group from their local listing. The group record itself survives for the
// remaining members; CreatedBy is kept as-is even when the creator leaves.
func (svc *Service) Leave(ctx context.Context, userID, id string) error {
	s := svc.Session(ctx, userID)
	g, ok := s.Get(id)
	if !ok {
		return &docsync.OpError{Op: docsync.OpUpdate, Message: "study group not found"}
	}

	members := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if m != userID {
			members = append(members, m)
		}
	}
	if _, err := s.Update(ctx, id, map[string]interface{}{"members": members}); err != nil {
		return err
	}
	s.Forget(id)
	return nil
}
