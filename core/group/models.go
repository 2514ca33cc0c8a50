package group

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

// Group is a shared study group. Unlike the other dashboard entities it has
// no single owner: it is visible to every user listed in Members, and
// CreatedBy never changes.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	CreatedBy   string   `json:"createdBy"`
}

// NewGroup contains information needed to create a new Group.
// The creator becomes the first (and only) member.
type NewGroup struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (ng *NewGroup) Validate(validate *validator.Validate) error {
	ng.Name = core.CleanString(ng.Name)
	ng.Description = core.CleanString(ng.Description)
	return validate.Struct(ng)
}

func Schema() docsync.Schema[Group] {
	return docsync.Schema[Group]{
		Collection: "studyGroups",
		Label:      "study group",
		OwnerFilter: func(userID string) core.Filter {
			return core.Filter{Field: "members", Op: core.FilterArrayContains, Value: userID}
		},
		ID:     func(g Group) string { return g.ID },
		WithID: func(g Group, id string) Group { g.ID = id; return g },
	}
}
