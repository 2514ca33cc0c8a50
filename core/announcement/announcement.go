// Package announcement is the read-only "recent announcements" listing:
// the five most recent announcements for the session user, newest first.
// This is the only capped and ordered listing on the dashboard; everything
// else renders in store-return order.
package announcement

import (
	"context"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

const recentLimit = 5

type Announcement struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

func Schema() docsync.Schema[Announcement] {
	return docsync.Schema[Announcement]{
		Collection: "announcements",
		Label:      "announcement",
		OwnerField: "userId",
		Ordering:   []core.Ordering{{Field: "date", Ascending: false}},
		Limit:      recentLimit,
		ID:         func(a Announcement) string { return a.ID },
		WithID:     func(a Announcement, id string) Announcement { a.ID = id; return a },
	}
}

type Service struct {
	reg *docsync.Registry[Announcement]
}

func NewService(store core.DocumentStore) *Service {
	return &Service{reg: docsync.NewRegistry(Schema(), store)}
}

func (svc *Service) Session(ctx context.Context, userID string) *docsync.Synchronizer[Announcement] {
	return svc.reg.ForUser(ctx, userID)
}

func (svc *Service) Reload(ctx context.Context, userID string) *docsync.Synchronizer[Announcement] {
	return svc.reg.Reload(ctx, userID)
}
